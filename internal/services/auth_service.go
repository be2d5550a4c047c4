package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/repository"
)

// AuthService orchestrates the admin login flow. The dashboard is guarded
// by a single passcode whose bcrypt hash lives in the database; a correct
// passcode yields a server-issued session token, and only the token's
// hash is ever stored or compared afterwards.
type AuthService struct {
	credentialRepo repository.CredentialRepo
	sessionRepo    repository.SessionRepo
	sessionTTL     int // hours
}

// NewAuthService creates a new AuthService
func NewAuthService(credentialRepo repository.CredentialRepo, sessionRepo repository.SessionRepo, sessionTTLHours int) *AuthService {
	if sessionTTLHours <= 0 {
		sessionTTLHours = 24
	}
	return &AuthService{
		credentialRepo: credentialRepo,
		sessionRepo:    sessionRepo,
		sessionTTL:     sessionTTLHours,
	}
}

// SeedPasscode stores the hash of the configured passcode when no
// credential row exists yet. An already-set hash is left alone so a
// rotated config value does not silently overwrite a deliberate change.
func (s *AuthService) SeedPasscode(ctx context.Context, passcode string) error {
	if passcode == "" {
		return models.ErrPasscodeRequired
	}

	existing, err := s.credentialRepo.GetPasscodeHash(ctx)
	if err != nil {
		return fmt.Errorf("failed to read credential: %w", err)
	}
	if existing != "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash passcode: %w", err)
	}
	return s.credentialRepo.SetPasscodeHash(ctx, string(hash))
}

// Login verifies the passcode and issues a session. The returned token is
// the only copy of the plain token; it is never persisted.
func (s *AuthService) Login(ctx context.Context, passcode, ipAddress string) (*models.AdminSession, string, error) {
	if passcode == "" {
		return nil, "", models.ErrPasscodeRequired
	}

	hash, err := s.credentialRepo.GetPasscodeHash(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read credential: %w", err)
	}
	if hash == "" {
		return nil, "", models.ErrInvalidPasscode
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)); err != nil {
		return nil, "", models.ErrInvalidPasscode
	}

	session, token := models.NewAdminSession(ipAddress, s.sessionTTL)
	if err := s.sessionRepo.Add(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}
	return session, token, nil
}

// Authenticate resolves a plain token to its active session, sliding the
// activity mark on success.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.AdminSession, error) {
	if token == "" {
		return nil, models.ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, models.HashSessionToken(token))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, models.ErrSessionNotFound
	}
	if session.IsExpired() {
		return nil, models.ErrSessionExpired
	}

	// Activity tracking is best effort; a failed touch never blocks the request.
	_ = s.sessionRepo.Touch(ctx, session.ID)
	return session, nil
}

// Logout invalidates the session behind the given token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, models.HashSessionToken(token))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessionRepo.Invalidate(ctx, session.ID)
}

// CleanupExpiredSessions sweeps expired sessions and reports the count.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int, error) {
	return s.sessionRepo.CleanupExpired(ctx)
}
