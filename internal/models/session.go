package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// AdminSession is a server-issued session for the admin dashboard. Only
// the SHA-256 hash of the token is stored; the plain token is returned
// once at login and verified by hashing on each request. This replaces
// the client-trusted flag the legacy dashboard relied on.
type AdminSession struct {
	ID             string    `json:"id"`
	TokenHash      string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	IPAddress      string    `json:"ipAddress,omitempty"`
	IsActive       bool      `json:"isActive"`
}

// NewAdminSession creates a session and returns it with the plain token.
func NewAdminSession(ipAddress string, ttlHours int) (*AdminSession, string) {
	token := GenerateSessionToken()
	now := time.Now().UTC()

	return &AdminSession{
		ID:             uuid.New().String(),
		TokenHash:      HashSessionToken(token),
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Duration(ttlHours) * time.Hour),
		LastActivityAt: now,
		IPAddress:      ipAddress,
		IsActive:       true,
	}, token
}

// IsExpired checks if the session has expired
func (s *AdminSession) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// GenerateSessionToken creates a cryptographically random token
func GenerateSessionToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// HashSessionToken hashes a plain token for storage and lookup
func HashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Session errors
type SessionError struct {
	Message string
}

func (e SessionError) Error() string {
	return e.Message
}

var (
	ErrSessionNotFound  = SessionError{"session not found"}
	ErrSessionExpired   = SessionError{"session has expired"}
	ErrInvalidPasscode  = SessionError{"invalid passcode"}
	ErrPasscodeRequired = SessionError{"passcode is required"}
)
