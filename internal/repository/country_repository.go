package repository

import (
	"context"
	"strings"

	"github.com/crownsite/server/internal/models"
)

// CountryRepository implements CountryRepo for PostgreSQL/SQLite
type CountryRepository struct {
	db DB
}

// NewCountryRepository creates a new CountryRepository
func NewCountryRepository(db DB) *CountryRepository {
	return &CountryRepository{db: db}
}

// FetchAll returns countries sorted alphabetically. This is the one sort
// applied; later upserts keep their position until the next fetch.
func (r *CountryRepository) FetchAll(ctx context.Context) ([]*models.Country, error) {
	query := `SELECT id, name, created_at FROM countries ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []*models.Country
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		countries = append(countries, &c)
	}
	return countries, rows.Err()
}

func (r *CountryRepository) Insert(ctx context.Context, country *models.Country) (*models.Country, error) {
	exists, err := r.NameExists(ctx, country.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrCountryNameTaken
	}

	query := `INSERT INTO countries (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, country.ID, country.Name, country.CreatedAt); err != nil {
		return nil, err
	}
	return country, nil
}

func (r *CountryRepository) UpdateByID(ctx context.Context, id string, country *models.Country) (*models.Country, error) {
	exists, err := r.NameExists(ctx, country.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrCountryNameTaken
	}

	result, err := r.db.ExecContext(ctx, `UPDATE countries SET name = $2 WHERE id = $1`, id, country.Name)
	if err != nil {
		return nil, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrRowNotFound
	}

	country.ID = id
	return country, nil
}

func (r *CountryRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = $1`, id)
	return err
}

// NameExists reports whether a country with the given name already exists,
// case-insensitively, optionally excluding one id (for edits).
func (r *CountryRepository) NameExists(ctx context.Context, name string, excludeID string) (bool, error) {
	var query string
	var args []interface{}

	if excludeID == "" {
		query = `SELECT EXISTS(SELECT 1 FROM countries WHERE LOWER(name) = $1)`
		args = []interface{}{strings.ToLower(strings.TrimSpace(name))}
	} else {
		query = `SELECT EXISTS(SELECT 1 FROM countries WHERE LOWER(name) = $1 AND id != $2)`
		args = []interface{}{strings.ToLower(strings.TrimSpace(name)), excludeID}
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	return exists, err
}
