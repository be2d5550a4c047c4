package repository

import (
	"context"

	"github.com/crownsite/server/internal/models"
)

// SlideRepo is the store contract for hero slides
type SlideRepo interface {
	FetchAll(ctx context.Context) ([]*models.HeroSlide, error)
	Insert(ctx context.Context, slide *models.HeroSlide) (*models.HeroSlide, error)
	UpdateByID(ctx context.Context, id string, slide *models.HeroSlide) (*models.HeroSlide, error)
	DeleteByID(ctx context.Context, id string) error
}

// PostRepo is the store contract for featured posts
type PostRepo interface {
	FetchAll(ctx context.Context) ([]*models.FeaturedPost, error)
	Insert(ctx context.Context, post *models.FeaturedPost) (*models.FeaturedPost, error)
	UpdateByID(ctx context.Context, id string, post *models.FeaturedPost) (*models.FeaturedPost, error)
	DeleteByID(ctx context.Context, id string) error
}

// StatRepo is the store contract for landing-page stats
type StatRepo interface {
	FetchAll(ctx context.Context) ([]*models.Stat, error)
	Insert(ctx context.Context, stat *models.Stat) (*models.Stat, error)
	UpdateByID(ctx context.Context, id string, stat *models.Stat) (*models.Stat, error)
	DeleteByID(ctx context.Context, id string) error
}

// CountryRepo is the store contract for countries, with the uniqueness
// check backing the debounced name availability probe
type CountryRepo interface {
	FetchAll(ctx context.Context) ([]*models.Country, error)
	Insert(ctx context.Context, country *models.Country) (*models.Country, error)
	UpdateByID(ctx context.Context, id string, country *models.Country) (*models.Country, error)
	DeleteByID(ctx context.Context, id string) error
	NameExists(ctx context.Context, name string, excludeID string) (bool, error)
}

// AlbumRepo is the store contract for albums. Image operations perform the
// read-modify-write of the album's whole JSON image array internally, so
// callers never reconstruct the array themselves.
type AlbumRepo interface {
	FetchAll(ctx context.Context) ([]*models.Album, error)
	GetByID(ctx context.Context, id string) (*models.Album, error)
	GetBySlug(ctx context.Context, slug string) (*models.Album, error)
	Insert(ctx context.Context, album *models.Album) (*models.Album, error)
	UpdateByID(ctx context.Context, id string, album *models.Album) (*models.Album, error)
	DeleteByID(ctx context.Context, id string) error
	AppendImage(ctx context.Context, albumID string, image models.Image) (*models.Album, error)
	ReplaceImage(ctx context.Context, albumID string, image models.Image) (*models.Album, error)
	RemoveImage(ctx context.Context, albumID, imageID string) (*models.Album, error)
}

// NewsRepo is the store contract for news items
type NewsRepo interface {
	FetchAll(ctx context.Context) ([]*models.NewsItem, error)
	Insert(ctx context.Context, item *models.NewsItem) (*models.NewsItem, error)
	UpdateByID(ctx context.Context, id string, item *models.NewsItem) (*models.NewsItem, error)
	DeleteByID(ctx context.Context, id string) error
}

// SponsorRepo is the store contract for sponsors
type SponsorRepo interface {
	FetchAll(ctx context.Context) ([]*models.Sponsor, error)
	Insert(ctx context.Context, sponsor *models.Sponsor) (*models.Sponsor, error)
	UpdateByID(ctx context.Context, id string, sponsor *models.Sponsor) (*models.Sponsor, error)
	DeleteByID(ctx context.Context, id string) error
}

// RegistrationRepo is the store contract for contestant registrations
type RegistrationRepo interface {
	FetchAll(ctx context.Context) ([]*models.Registration, error)
	Insert(ctx context.Context, reg *models.Registration) (*models.Registration, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionRepo persists admin sessions
type SessionRepo interface {
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.AdminSession, error)
	Add(ctx context.Context, session *models.AdminSession) error
	Touch(ctx context.Context, id string) error
	Invalidate(ctx context.Context, id string) error
	CleanupExpired(ctx context.Context) (int, error)
}

// CredentialRepo holds the single admin passcode hash row
type CredentialRepo interface {
	GetPasscodeHash(ctx context.Context) (string, error)
	SetPasscodeHash(ctx context.Context, hash string) error
}
