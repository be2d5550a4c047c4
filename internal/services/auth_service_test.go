package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownsite/server/internal/models"
)

type fakeCredentialRepo struct {
	hash string
}

func (f *fakeCredentialRepo) GetPasscodeHash(ctx context.Context) (string, error) {
	return f.hash, nil
}

func (f *fakeCredentialRepo) SetPasscodeHash(ctx context.Context, hash string) error {
	f.hash = hash
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.AdminSession // keyed by token hash
	touched  []string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.AdminSession)}
}

func (f *fakeSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.AdminSession, error) {
	return f.sessions[tokenHash], nil
}

func (f *fakeSessionRepo) Add(ctx context.Context, session *models.AdminSession) error {
	f.sessions[session.TokenHash] = session
	return nil
}

func (f *fakeSessionRepo) Touch(ctx context.Context, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeSessionRepo) Invalidate(ctx context.Context, id string) error {
	for hash, s := range f.sessions {
		if s.ID == id {
			delete(f.sessions, hash)
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanupExpired(ctx context.Context) (int, error) {
	removed := 0
	for hash, s := range f.sessions {
		if s.IsExpired() {
			delete(f.sessions, hash)
			removed++
		}
	}
	return removed, nil
}

func TestSeedPasscodeSetsHashOnce(t *testing.T) {
	creds := &fakeCredentialRepo{}
	svc := NewAuthService(creds, newFakeSessionRepo(), 24)

	require.NoError(t, svc.SeedPasscode(context.Background(), "crown-2026"))
	first := creds.hash
	require.NotEmpty(t, first)

	// A later seed with a different passcode must not overwrite
	require.NoError(t, svc.SeedPasscode(context.Background(), "something-else"))
	assert.Equal(t, first, creds.hash)
}

func TestSeedPasscodeRejectsEmpty(t *testing.T) {
	svc := NewAuthService(&fakeCredentialRepo{}, newFakeSessionRepo(), 24)
	err := svc.SeedPasscode(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrPasscodeRequired)
}

func TestLoginIssuesSessionToken(t *testing.T) {
	creds := &fakeCredentialRepo{}
	sessions := newFakeSessionRepo()
	svc := NewAuthService(creds, sessions, 24)
	require.NoError(t, svc.SeedPasscode(context.Background(), "crown-2026"))

	session, token, err := svc.Login(context.Background(), "crown-2026", "203.0.113.7")
	require.NoError(t, err)
	require.NotNil(t, session)
	require.NotEmpty(t, token)

	// Only the hash is stored
	assert.NotEqual(t, token, session.TokenHash)
	assert.Equal(t, models.HashSessionToken(token), session.TokenHash)
	assert.Equal(t, "203.0.113.7", session.IPAddress)
}

func TestLoginRejectsWrongPasscode(t *testing.T) {
	creds := &fakeCredentialRepo{}
	svc := NewAuthService(creds, newFakeSessionRepo(), 24)
	require.NoError(t, svc.SeedPasscode(context.Background(), "crown-2026"))

	_, _, err := svc.Login(context.Background(), "wrong", "203.0.113.7")
	assert.ErrorIs(t, err, models.ErrInvalidPasscode)
}

func TestAuthenticateResolvesTokenAndTouches(t *testing.T) {
	creds := &fakeCredentialRepo{}
	sessions := newFakeSessionRepo()
	svc := NewAuthService(creds, sessions, 24)
	require.NoError(t, svc.SeedPasscode(context.Background(), "crown-2026"))

	issued, token, err := svc.Login(context.Background(), "crown-2026", "")
	require.NoError(t, err)

	resolved, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, resolved.ID)
	assert.Contains(t, sessions.touched, issued.ID)
}

func TestAuthenticateRejectsExpiredSession(t *testing.T) {
	creds := &fakeCredentialRepo{}
	sessions := newFakeSessionRepo()
	svc := NewAuthService(creds, sessions, 24)
	require.NoError(t, svc.SeedPasscode(context.Background(), "crown-2026"))

	issued, token, err := svc.Login(context.Background(), "crown-2026", "")
	require.NoError(t, err)
	issued.ExpiresAt = time.Now().UTC().Add(-time.Minute)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrSessionExpired)
}

func TestAuthenticateRejectsUnknownToken(t *testing.T) {
	svc := NewAuthService(&fakeCredentialRepo{}, newFakeSessionRepo(), 24)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	creds := &fakeCredentialRepo{}
	sessions := newFakeSessionRepo()
	svc := NewAuthService(creds, sessions, 24)
	require.NoError(t, svc.SeedPasscode(context.Background(), "crown-2026"))

	_, token, err := svc.Login(context.Background(), "crown-2026", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	// Logging out an already-gone token is not an error
	assert.NoError(t, svc.Logout(context.Background(), token))
}

func TestCleanupExpiredSessions(t *testing.T) {
	creds := &fakeCredentialRepo{}
	sessions := newFakeSessionRepo()
	svc := NewAuthService(creds, sessions, 24)
	require.NoError(t, svc.SeedPasscode(context.Background(), "crown-2026"))

	live, _, err := svc.Login(context.Background(), "crown-2026", "")
	require.NoError(t, err)
	stale, _, err := svc.Login(context.Background(), "crown-2026", "")
	require.NoError(t, err)
	stale.ExpiresAt = time.Now().UTC().Add(-time.Hour)

	count, err := svc.CleanupExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotEqual(t, live.ID, stale.ID)
}
