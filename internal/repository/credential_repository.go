package repository

import (
	"context"
	"database/sql"
	"time"
)

// CredentialRepository implements CredentialRepo over the single-row
// admin_credentials table. The table holds only the bcrypt hash of the
// dashboard passcode, seeded on startup when empty.
type CredentialRepository struct {
	db DB
}

// NewCredentialRepository creates a new CredentialRepository
func NewCredentialRepository(db DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// GetPasscodeHash returns the stored hash, or empty string when no
// passcode has been set yet.
func (r *CredentialRepository) GetPasscodeHash(ctx context.Context) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, `SELECT passcode_hash FROM admin_credentials WHERE id = 1`).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *CredentialRepository) SetPasscodeHash(ctx context.Context, hash string) error {
	query := `INSERT INTO admin_credentials (id, passcode_hash, updated_at) VALUES (1, $1, $2)
			  ON CONFLICT (id) DO UPDATE SET passcode_hash = $1, updated_at = $2`

	_, err := r.db.ExecContext(ctx, query, hash, time.Now().UTC())
	return err
}
