package services

import (
	"context"
	"sync"
	"time"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/repository"
)

// Workspace is one admin session's view of the content collections. Each
// collection gets its own controller so two tabs of the same dashboard
// share a mirror, a filter, and a page position.
type Workspace struct {
	Slides        *collection.Controller[*models.HeroSlide]
	Posts         *collection.Controller[*models.FeaturedPost]
	Stats         *collection.Controller[*models.Stat]
	Countries     *collection.Controller[*models.Country]
	Albums        *collection.Controller[*models.Album]
	News          *collection.Controller[*models.NewsItem]
	Sponsors      *collection.Controller[*models.Sponsor]
	Registrations *collection.Controller[*models.Registration]

	mu         sync.Mutex
	lastAccess time.Time
	loaded     map[string]bool
}

// EnsureLoaded runs load once per collection name for this workspace, so
// attaching a manager section fetches the store exactly once and later
// paging works off the mirror. force reloads regardless.
func (w *Workspace) EnsureLoaded(ctx context.Context, name string, force bool, load func(context.Context) error) error {
	w.mu.Lock()
	already := w.loaded[name]
	w.mu.Unlock()
	if already && !force {
		return nil
	}
	if err := load(ctx); err != nil {
		return err
	}
	w.mu.Lock()
	w.loaded[name] = true
	w.mu.Unlock()
	return nil
}

func (w *Workspace) touch() {
	w.mu.Lock()
	w.lastAccess = time.Now().UTC()
	w.mu.Unlock()
}

// LastAccess reports when this workspace was last used.
func (w *Workspace) LastAccess() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastAccess
}

// DashboardService hands out per-session workspaces over the content
// repositories. Workspaces are created on first use and swept after a
// period of inactivity; recreating one is just a reload from the store.
type DashboardService struct {
	slideRepo        repository.SlideRepo
	postRepo         repository.PostRepo
	statRepo         repository.StatRepo
	countryRepo      repository.CountryRepo
	albumRepo        repository.AlbumRepo
	newsRepo         repository.NewsRepo
	sponsorRepo      repository.SponsorRepo
	registrationRepo repository.RegistrationRepo

	pageSize        int
	mutationTimeout time.Duration

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	slideRepo repository.SlideRepo,
	postRepo repository.PostRepo,
	statRepo repository.StatRepo,
	countryRepo repository.CountryRepo,
	albumRepo repository.AlbumRepo,
	newsRepo repository.NewsRepo,
	sponsorRepo repository.SponsorRepo,
	registrationRepo repository.RegistrationRepo,
	pageSize int,
	mutationTimeout time.Duration,
) *DashboardService {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &DashboardService{
		slideRepo:        slideRepo,
		postRepo:         postRepo,
		statRepo:         statRepo,
		countryRepo:      countryRepo,
		albumRepo:        albumRepo,
		newsRepo:         newsRepo,
		sponsorRepo:      sponsorRepo,
		registrationRepo: registrationRepo,
		pageSize:         pageSize,
		mutationTimeout:  mutationTimeout,
		workspaces:       make(map[string]*Workspace),
	}
}

// Workspace returns the workspace for a session, creating it on first use.
func (s *DashboardService) Workspace(sessionID string) *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.workspaces[sessionID]; ok {
		ws.touch()
		return ws
	}

	ws := s.newWorkspace()
	ws.touch()
	s.workspaces[sessionID] = ws
	return ws
}

func (s *DashboardService) newWorkspace() *Workspace {
	return &Workspace{
		loaded: make(map[string]bool),
		Slides: collection.NewController[*models.HeroSlide](s.slideRepo, s.pageSize,
			collection.WithDisplayName(func(r *models.HeroSlide) string { return r.CTALabel }),
			collection.WithMutationTimeout[*models.HeroSlide](s.mutationTimeout)),
		Posts: collection.NewController[*models.FeaturedPost](s.postRepo, s.pageSize,
			collection.WithDisplayName(func(r *models.FeaturedPost) string { return r.Caption }),
			collection.WithMutationTimeout[*models.FeaturedPost](s.mutationTimeout)),
		Stats: collection.NewController[*models.Stat](s.statRepo, s.pageSize,
			collection.WithDisplayName(func(r *models.Stat) string { return r.Title }),
			collection.WithMutationTimeout[*models.Stat](s.mutationTimeout)),
		Countries: collection.NewController[*models.Country](s.countryRepo, s.pageSize,
			collection.WithDisplayName(func(r *models.Country) string { return r.Name }),
			collection.WithMutationTimeout[*models.Country](s.mutationTimeout)),
		Albums: collection.NewController[*models.Album](s.albumRepo, s.pageSize,
			collection.WithDisplayName(func(r *models.Album) string { return r.Name }),
			collection.WithMutationTimeout[*models.Album](s.mutationTimeout)),
		News: collection.NewController[*models.NewsItem](s.newsRepo, s.pageSize,
			collection.WithDisplayName(func(r *models.NewsItem) string { return r.Title }),
			collection.WithMutationTimeout[*models.NewsItem](s.mutationTimeout)),
		Sponsors: collection.NewController[*models.Sponsor](s.sponsorRepo, s.pageSize,
			collection.WithDisplayName(func(r *models.Sponsor) string { return r.Name }),
			collection.WithMutationTimeout[*models.Sponsor](s.mutationTimeout)),
		Registrations: collection.NewController[*models.Registration](
			registrationStore{s.registrationRepo}, s.pageSize,
			collection.WithDisplayName(func(r *models.Registration) string { return r.FullName }),
			collection.WithMutationTimeout[*models.Registration](s.mutationTimeout)),
	}
}

// Release drops the workspace for a session (logout, session expiry).
func (s *DashboardService) Release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, sessionID)
}

// SweepIdle removes workspaces untouched for longer than maxIdle and
// returns how many were dropped.
func (s *DashboardService) SweepIdle(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	swept := 0
	for id, ws := range s.workspaces {
		if ws.LastAccess().Before(cutoff) {
			delete(s.workspaces, id)
			swept++
		}
	}
	return swept
}

// WorkspaceCount returns the number of live workspaces.
func (s *DashboardService) WorkspaceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// registrationStore adapts RegistrationRepo to the collection store
// contract. Registrations are never edited, only listed, created through
// the public form, and deleted; an update through the dashboard is a
// protocol error.
type registrationStore struct {
	repo repository.RegistrationRepo
}

func (s registrationStore) FetchAll(ctx context.Context) ([]*models.Registration, error) {
	return s.repo.FetchAll(ctx)
}

func (s registrationStore) Insert(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	return s.repo.Insert(ctx, reg)
}

func (s registrationStore) UpdateByID(ctx context.Context, id string, reg *models.Registration) (*models.Registration, error) {
	return nil, models.ErrRegistrationNotFound
}

func (s registrationStore) DeleteByID(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}
