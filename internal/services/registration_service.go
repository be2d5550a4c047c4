package services

import (
	"context"
	"fmt"
	"io"

	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/repository"
)

// PhotoUpload is one file from the registration form's multipart body.
type PhotoUpload struct {
	Reader   io.Reader
	Filename string
	Size     int64
}

// RegistrationService handles contestant registrations from the public
// site: validates the form, stores the uploaded photos, and persists the
// row. Photo files and the database row are kept consistent on failure.
type RegistrationService struct {
	registrationRepo repository.RegistrationRepo
	countryRepo      repository.CountryRepo
	storage          *MediaStorageService
	maxPhotos        int
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	registrationRepo repository.RegistrationRepo,
	countryRepo repository.CountryRepo,
	storage *MediaStorageService,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		countryRepo:      countryRepo,
		storage:          storage,
		maxPhotos:        5,
	}
}

// Submit validates and persists a registration. Uploaded photos are
// written first; if the insert fails, the stored files are removed so no
// orphans accumulate.
func (s *RegistrationService) Submit(ctx context.Context, fullName, email, phone, country string, photos []PhotoUpload) (*models.Registration, error) {
	if len(photos) > s.maxPhotos {
		return nil, fmt.Errorf("at most %d photos are accepted", s.maxPhotos)
	}

	// The selected country must be one the dashboard manages.
	exists, err := s.countryRepo.NameExists(ctx, country, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check country: %w", err)
	}
	if !exists {
		return nil, models.ErrCountryNotFound
	}

	photoPaths := make([]string, 0, len(photos))
	cleanup := func() {
		for _, p := range photoPaths {
			s.storage.Delete(p)
		}
	}

	for _, photo := range photos {
		storedPath, err := s.storage.Store(photo.Reader, photo.Filename, photo.Size)
		if err != nil {
			cleanup()
			return nil, err
		}
		photoPaths = append(photoPaths, storedPath)
	}

	reg, err := models.NewRegistration(fullName, email, phone, country, photoPaths)
	if err != nil {
		cleanup()
		return nil, err
	}

	stored, err := s.registrationRepo.Insert(ctx, reg)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to save registration: %w", err)
	}
	return stored, nil
}

// DeleteWithPhotos removes a registration row and its stored photo files.
// File removal is best effort; a missing file never blocks the delete.
func (s *RegistrationService) DeleteWithPhotos(ctx context.Context, reg *models.Registration) error {
	if err := s.registrationRepo.DeleteByID(ctx, reg.ID); err != nil {
		return err
	}
	for _, p := range reg.PhotoPaths {
		s.storage.Delete(p)
	}
	return nil
}

// DeletePhotoFile removes one stored photo file, best effort.
func (s *RegistrationService) DeletePhotoFile(storedPath string) {
	s.storage.Delete(storedPath)
}

// PhotoURLs maps a registration's stored paths to public URLs.
func (s *RegistrationService) PhotoURLs(reg *models.Registration) []string {
	urls := make([]string, 0, len(reg.PhotoPaths))
	for _, p := range reg.PhotoPaths {
		urls = append(urls, s.storage.PublicURL(p))
	}
	return urls
}
