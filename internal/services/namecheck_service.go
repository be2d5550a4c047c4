package services

import (
	"context"
	"time"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/repository"
)

// NameCheckService answers country name availability probes for the
// dashboard's create/edit forms. Each websocket connection gets its own
// debouncer so a typing burst collapses to one database probe after the
// quiet period.
type NameCheckService struct {
	countryRepo repository.CountryRepo
	delay       time.Duration
}

// NewNameCheckService creates a new NameCheckService
func NewNameCheckService(countryRepo repository.CountryRepo, delay time.Duration) *NameCheckService {
	if delay <= 0 {
		delay = collection.DefaultDebounceDelay
	}
	return &NameCheckService{
		countryRepo: countryRepo,
		delay:       delay,
	}
}

// NewDebouncer returns a per-connection debouncer with the configured
// quiet period.
func (s *NameCheckService) NewDebouncer() *collection.Debouncer {
	return collection.NewDebouncer(s.delay)
}

// Check reports whether the name is free, optionally ignoring the record
// being edited. A blank name is never available.
func (s *NameCheckService) Check(ctx context.Context, name, excludeID string) (bool, error) {
	if name == "" {
		return false, nil
	}
	exists, err := s.countryRepo.NameExists(ctx, name, excludeID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
