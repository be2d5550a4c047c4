package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/models"
)

type memRepo[T collection.Record] struct {
	mu      sync.Mutex
	items   []T
	fetches atomic.Int32
}

func (r *memRepo[T]) FetchAll(ctx context.Context) ([]T, error) {
	r.fetches.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memRepo[T]) Insert(ctx context.Context, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return item, nil
}

func (r *memRepo[T]) UpdateByID(ctx context.Context, id string, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.RecordID() == id {
			r.items[i] = item
			return item, nil
		}
	}
	var zero T
	return zero, nil
}

func (r *memRepo[T]) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.RecordID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memAlbumRepo struct {
	memRepo[*models.Album]
}

func (r *memAlbumRepo) GetByID(ctx context.Context, id string) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAlbumRepo) GetBySlug(ctx context.Context, slug string) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAlbumRepo) AppendImage(ctx context.Context, albumID string, image models.Image) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.ID == albumID {
			a.Images = append(a.Images, image)
			return a, nil
		}
	}
	return nil, models.ErrAlbumNotFound
}

func (r *memAlbumRepo) ReplaceImage(ctx context.Context, albumID string, image models.Image) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.ID == albumID {
			for i, img := range a.Images {
				if img.ID == image.ID {
					a.Images[i] = image
					return a, nil
				}
			}
		}
	}
	return nil, models.ErrAlbumNotFound
}

func (r *memAlbumRepo) RemoveImage(ctx context.Context, albumID, imageID string) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.ID == albumID {
			for i, img := range a.Images {
				if img.ID == imageID {
					a.Images = append(a.Images[:i], a.Images[i+1:]...)
					break
				}
			}
			return a, nil
		}
	}
	return nil, models.ErrAlbumNotFound
}

func newTestDashboard(t *testing.T, slideRepo *memRepo[*models.HeroSlide]) *DashboardService {
	t.Helper()
	return NewDashboardService(
		slideRepo,
		&memRepo[*models.FeaturedPost]{},
		&memRepo[*models.Stat]{},
		&fakeCountryRepo{},
		&memAlbumRepo{},
		&memRepo[*models.NewsItem]{},
		&memRepo[*models.Sponsor]{},
		&memRepo[*models.Registration]{},
		5,
		time.Second,
	)
}

func TestWorkspaceSharedPerSession(t *testing.T) {
	svc := newTestDashboard(t, &memRepo[*models.HeroSlide]{})

	a := svc.Workspace("session-a")
	again := svc.Workspace("session-a")
	b := svc.Workspace("session-b")

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, svc.WorkspaceCount())
}

func TestEnsureLoadedFetchesOnce(t *testing.T) {
	slides := &memRepo[*models.HeroSlide]{}
	slide, err := models.NewHeroSlide("/media/a.jpg", "image", "Enter now", "/register", 1)
	require.NoError(t, err)
	slides.items = append(slides.items, slide)

	svc := newTestDashboard(t, slides)
	ws := svc.Workspace("session-a")

	for i := 0; i < 3; i++ {
		err := ws.EnsureLoaded(context.Background(), "slides", false, ws.Slides.Load)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), slides.fetches.Load())
	assert.Len(t, ws.Slides.Items(), 1)

	// Forced reload hits the store again
	require.NoError(t, ws.EnsureLoaded(context.Background(), "slides", true, ws.Slides.Load))
	assert.Equal(t, int32(2), slides.fetches.Load())
}

func TestWorkspaceMutationsFlowThroughStore(t *testing.T) {
	slides := &memRepo[*models.HeroSlide]{}
	svc := newTestDashboard(t, slides)
	ws := svc.Workspace("session-a")
	require.NoError(t, ws.EnsureLoaded(context.Background(), "slides", false, ws.Slides.Load))

	slide, err := models.NewHeroSlide("/media/a.jpg", "image", "Enter now", "/register", 1)
	require.NoError(t, err)

	created, err := ws.Slides.Create(context.Background(), slide)
	require.NoError(t, err)
	assert.Len(t, slides.items, 1)

	got, ok := ws.Slides.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Enter now", got.CTALabel)

	require.NoError(t, ws.Slides.Delete(context.Background(), created.ID))
	assert.Empty(t, slides.items)
	assert.Empty(t, ws.Slides.Items())
}

func TestRegistrationsRejectDashboardEdits(t *testing.T) {
	svc := newTestDashboard(t, &memRepo[*models.HeroSlide]{})
	ws := svc.Workspace("session-a")
	require.NoError(t, ws.EnsureLoaded(context.Background(), "registrations", false, ws.Registrations.Load))

	reg, err := models.NewRegistration("Ana Popescu", "ana@example.com", "+373", "Moldova", nil)
	require.NoError(t, err)
	ws.Registrations.Apply(reg)

	_, err = ws.Registrations.Update(context.Background(), reg.ID, reg)
	assert.Error(t, err)
}

func TestReleaseAndSweepIdle(t *testing.T) {
	svc := newTestDashboard(t, &memRepo[*models.HeroSlide]{})

	svc.Workspace("session-a")
	svc.Workspace("session-b")
	require.Equal(t, 2, svc.WorkspaceCount())

	svc.Release("session-a")
	assert.Equal(t, 1, svc.WorkspaceCount())

	// A zero idle allowance sweeps everything touched before now
	time.Sleep(5 * time.Millisecond)
	swept := svc.SweepIdle(0)
	assert.Equal(t, 1, swept)
	assert.Equal(t, 0, svc.WorkspaceCount())
}
