package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FeaturedPost is a highlighted entry on the landing page.
type FeaturedPost struct {
	ID        string    `json:"id"`
	MediaURL  string    `json:"mediaUrl"`
	MediaKind MediaKind `json:"mediaKind"`
	Caption   string    `json:"caption,omitempty"`
	Link      string    `json:"link,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordID returns the stable identifier for collection mirroring.
func (p *FeaturedPost) RecordID() string { return p.ID }

// NewFeaturedPost creates a featured post with a generated ID
func NewFeaturedPost(mediaURL, mediaKind, caption, link string, position int) (*FeaturedPost, error) {
	if strings.TrimSpace(mediaURL) == "" {
		return nil, ErrMediaURLRequired
	}
	if !IsValidMediaKind(mediaKind) {
		return nil, ErrInvalidMediaKind
	}

	now := time.Now().UTC()
	return &FeaturedPost{
		ID:        uuid.New().String(),
		MediaURL:  mediaURL,
		MediaKind: MediaKind(mediaKind),
		Caption:   strings.TrimSpace(caption),
		Link:      strings.TrimSpace(link),
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
