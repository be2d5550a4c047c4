package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// HeroSlide is one entry in the landing-page hero carousel.
type HeroSlide struct {
	ID        string    `json:"id"`
	MediaURL  string    `json:"mediaUrl"`
	MediaKind MediaKind `json:"mediaKind"`
	CTALabel  string    `json:"ctaLabel,omitempty"`
	CTAURL    string    `json:"ctaUrl,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordID returns the stable identifier for collection mirroring.
func (s *HeroSlide) RecordID() string { return s.ID }

// NewHeroSlide creates a hero slide with a generated ID
func NewHeroSlide(mediaURL, mediaKind, ctaLabel, ctaURL string, position int) (*HeroSlide, error) {
	if strings.TrimSpace(mediaURL) == "" {
		return nil, ErrMediaURLRequired
	}
	if !IsValidMediaKind(mediaKind) {
		return nil, ErrInvalidMediaKind
	}

	now := time.Now().UTC()
	return &HeroSlide{
		ID:        uuid.New().String(),
		MediaURL:  mediaURL,
		MediaKind: MediaKind(mediaKind),
		CTALabel:  strings.TrimSpace(ctaLabel),
		CTAURL:    strings.TrimSpace(ctaURL),
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
