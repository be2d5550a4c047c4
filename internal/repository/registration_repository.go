package repository

import (
	"context"
	"encoding/json"

	"github.com/crownsite/server/internal/models"
)

// RegistrationRepository implements RegistrationRepo for PostgreSQL/SQLite.
// Photo paths are stored as a JSON array on the row, same shape as album
// images; registrations are insert-and-delete only, never edited.
type RegistrationRepository struct {
	db DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) FetchAll(ctx context.Context) ([]*models.Registration, error) {
	query := `SELECT id, full_name, email, phone, country, photo_paths, submitted_at
			  FROM registrations ORDER BY submitted_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		var reg models.Registration
		var rawPaths string
		if err := rows.Scan(&reg.ID, &reg.FullName, &reg.Email, &reg.Phone,
			&reg.Country, &rawPaths, &reg.SubmittedAt); err != nil {
			return nil, err
		}
		reg.PhotoPaths = decodePhotoPaths(rawPaths)
		regs = append(regs, &reg)
	}
	return regs, rows.Err()
}

func (r *RegistrationRepository) Insert(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	rawPaths, err := json.Marshal(reg.PhotoPaths)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO registrations (id, full_name, email, phone, country, photo_paths, submitted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		reg.ID, reg.FullName, reg.Email, reg.Phone, reg.Country,
		string(rawPaths), reg.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *RegistrationRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	return err
}

// decodePhotoPaths degrades an unreadable stored array to empty rather
// than failing the listing; a registration row is still useful without
// its photo references.
func decodePhotoPaths(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil || paths == nil {
		return []string{}
	}
	return paths
}
