package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crownsite/server/internal/models"
)

// SessionRepository implements SessionRepo for PostgreSQL/SQLite.
// Lookups go through the token hash; the plain token never reaches this
// layer.
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.AdminSession, error) {
	query := `SELECT id, token_hash, created_at, expires_at, last_activity_at, ip_address, is_active
			  FROM admin_sessions WHERE token_hash = $1 AND is_active = true`

	var s models.AdminSession
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&s.ID, &s.TokenHash, &s.CreatedAt, &s.ExpiresAt, &s.LastActivityAt,
		&s.IPAddress, &s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Add(ctx context.Context, session *models.AdminSession) error {
	query := `INSERT INTO admin_sessions (id, token_hash, created_at, expires_at, last_activity_at, ip_address, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.TokenHash, session.CreatedAt, session.ExpiresAt,
		session.LastActivityAt, session.IPAddress, session.IsActive,
	)
	return err
}

// Touch records activity on the session, sliding its last-activity mark.
func (r *SessionRepository) Touch(ctx context.Context, id string) error {
	query := `UPDATE admin_sessions SET last_activity_at = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	return err
}

func (r *SessionRepository) Invalidate(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE admin_sessions SET is_active = false WHERE id = $1`, id)
	return err
}

// CleanupExpired deactivates sessions past their expiry and reports how
// many were swept.
func (r *SessionRepository) CleanupExpired(ctx context.Context) (int, error) {
	query := `UPDATE admin_sessions SET is_active = false WHERE is_active = true AND expires_at < $1`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(affected), nil
}
