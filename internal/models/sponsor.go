package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sponsor is one logo in the sponsor scroller.
type Sponsor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logoUrl"`
	Link      string    `json:"link,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordID returns the stable identifier for collection mirroring.
func (s *Sponsor) RecordID() string { return s.ID }

// NewSponsor creates a sponsor with a generated ID
func NewSponsor(name, logoURL, link string, position int) (*Sponsor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrSponsorNameRequired
	}
	if strings.TrimSpace(logoURL) == "" {
		return nil, ErrMediaURLRequired
	}

	now := time.Now().UTC()
	return &Sponsor{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		LogoURL:   logoURL,
		Link:      strings.TrimSpace(link),
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type SponsorError struct {
	Message string
}

func (e SponsorError) Error() string {
	return e.Message
}

var ErrSponsorNameRequired = SponsorError{"sponsor name is required"}
