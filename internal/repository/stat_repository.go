package repository

import (
	"context"
	"time"

	"github.com/crownsite/server/internal/models"
)

// StatRepository implements StatRepo for PostgreSQL/SQLite
type StatRepository struct {
	db DB
}

// NewStatRepository creates a new StatRepository
func NewStatRepository(db DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) FetchAll(ctx context.Context) ([]*models.Stat, error) {
	query := `SELECT id, icon, title, value, position, created_at, updated_at
			  FROM stats ORDER BY position, created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.Stat
	for rows.Next() {
		var s models.Stat
		var icon string
		if err := rows.Scan(&s.ID, &icon, &s.Title, &s.Value, &s.Position,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		// Stored identifiers outside the closed set render as the fallback.
		s.Icon = models.ResolveStatIcon(icon)
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

func (r *StatRepository) Insert(ctx context.Context, stat *models.Stat) (*models.Stat, error) {
	query := `INSERT INTO stats (id, icon, title, value, position, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		stat.ID, stat.Icon, stat.Title, stat.Value, stat.Position,
		stat.CreatedAt, stat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return stat, nil
}

func (r *StatRepository) UpdateByID(ctx context.Context, id string, stat *models.Stat) (*models.Stat, error) {
	query := `UPDATE stats SET icon = $2, title = $3, value = $4, position = $5, updated_at = $6
			  WHERE id = $1`

	stat.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		id, stat.Icon, stat.Title, stat.Value, stat.Position, stat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrRowNotFound
	}

	stat.ID = id
	return stat, nil
}

func (r *StatRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stats WHERE id = $1`, id)
	return err
}
