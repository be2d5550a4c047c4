package repository

import (
	"context"
	"time"

	"github.com/crownsite/server/internal/models"
)

// SponsorRepository implements SponsorRepo for PostgreSQL/SQLite
type SponsorRepository struct {
	db DB
}

// NewSponsorRepository creates a new SponsorRepository
func NewSponsorRepository(db DB) *SponsorRepository {
	return &SponsorRepository{db: db}
}

func (r *SponsorRepository) FetchAll(ctx context.Context) ([]*models.Sponsor, error) {
	query := `SELECT id, name, logo_url, link, position, created_at, updated_at
			  FROM sponsors ORDER BY position, created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sponsors []*models.Sponsor
	for rows.Next() {
		var s models.Sponsor
		if err := rows.Scan(&s.ID, &s.Name, &s.LogoURL, &s.Link, &s.Position,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sponsors = append(sponsors, &s)
	}
	return sponsors, rows.Err()
}

func (r *SponsorRepository) Insert(ctx context.Context, sponsor *models.Sponsor) (*models.Sponsor, error) {
	query := `INSERT INTO sponsors (id, name, logo_url, link, position, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		sponsor.ID, sponsor.Name, sponsor.LogoURL, sponsor.Link, sponsor.Position,
		sponsor.CreatedAt, sponsor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sponsor, nil
}

func (r *SponsorRepository) UpdateByID(ctx context.Context, id string, sponsor *models.Sponsor) (*models.Sponsor, error) {
	query := `UPDATE sponsors SET name = $2, logo_url = $3, link = $4, position = $5, updated_at = $6
			  WHERE id = $1`

	sponsor.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		id, sponsor.Name, sponsor.LogoURL, sponsor.Link, sponsor.Position, sponsor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrRowNotFound
	}

	sponsor.ID = id
	return sponsor, nil
}

func (r *SponsorRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
	return err
}
