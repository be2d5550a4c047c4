package models

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Album is a photo gallery. Its images live as a single JSON array value
// on the album row rather than as separate rows, so any mutation of one
// image is a read-modify-write of the whole array (see the repository).
type Album struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CoverURL  string    `json:"coverUrl,omitempty"`
	Images    []Image   `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// ImagesMalformed is set when the stored image array failed to
	// decode. Listings keep the degraded row but flag it so an empty
	// album is distinguishable from unreadable data.
	ImagesMalformed bool `json:"imagesMalformed,omitempty"`
}

// RecordID returns the stable identifier for collection mirroring.
func (a *Album) RecordID() string { return a.ID }

// DisplayName is the searchable name used by the album manager's filter.
func (a *Album) DisplayName() string { return a.Name }

// Image is one entry inside an album's image array. Its identifier is
// generated client-side from a timestamp plus a random suffix and must be
// unique within the parent array.
type Image struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAlbum creates an album with a generated ID and slug
func NewAlbum(name string) (*Album, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrAlbumNameRequired
	}

	now := time.Now().UTC()
	return &Album{
		ID:        uuid.New().String(),
		Slug:      GenerateSlug(name),
		Name:      name,
		Images:    []Image{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewImage creates an image entry with a generated identifier
func NewImage(url, caption string) (*Image, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrMediaURLRequired
	}

	return &Image{
		ID:        NewImageID(),
		URL:       url,
		Caption:   strings.TrimSpace(caption),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewImageID generates an identifier from the current timestamp and a
// random suffix, unique within an album's array for the session.
func NewImageID() string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}

// GenerateSlug creates a URL-friendly slug from a name
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^a-z0-9]+`)
	slug = reg.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > 50 {
		slug = slug[:50]
	}

	// Random suffix for uniqueness
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return slug + "-" + hex.EncodeToString(suffix)
}

// ImagesFromJSON decodes a stored image array. A malformed or non-array
// value degrades to an empty slice plus ErrImagesMalformed so callers can
// show a data-format error with a retry, never crash or silently render
// an empty album as "no data".
func ImagesFromJSON(raw string) ([]Image, error) {
	if strings.TrimSpace(raw) == "" {
		return []Image{}, nil
	}

	var images []Image
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return []Image{}, ErrImagesMalformed
	}
	if images == nil {
		images = []Image{}
	}
	return images, nil
}

// ImagesToJSON encodes an image array for storage
func ImagesToJSON(images []Image) (string, error) {
	if images == nil {
		images = []Image{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Album errors
type AlbumError struct {
	Message string
}

func (e AlbumError) Error() string {
	return e.Message
}

var (
	ErrAlbumNameRequired = AlbumError{"album name is required"}
	ErrAlbumNotFound     = AlbumError{"album not found"}
	ErrImageNotFound     = AlbumError{"image not found in album"}
	ErrImagesMalformed   = AlbumError{"stored image data is malformed"}
)
