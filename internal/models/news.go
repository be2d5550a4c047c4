package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewsItem is a dated announcement shown on the news page.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	MediaURL    string    `json:"mediaUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RecordID returns the stable identifier for collection mirroring.
func (n *NewsItem) RecordID() string { return n.ID }

// NewNewsItem creates a news item with a generated ID
func NewNewsItem(title, body, mediaURL string, publishedAt time.Time) (*NewsItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrNewsTitleRequired
	}
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	now := time.Now().UTC()
	return &NewsItem{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Body:        body,
		MediaURL:    mediaURL,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// News errors
type NewsError struct {
	Message string
}

func (e NewsError) Error() string {
	return e.Message
}

var (
	ErrNewsTitleRequired = NewsError{"news title is required"}
	ErrNewsNotFound      = NewsError{"news item not found"}
)
