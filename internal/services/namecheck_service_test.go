package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownsite/server/internal/models"
)

type fakeCountryRepo struct {
	countries []*models.Country
	probes    atomic.Int32
}

func (f *fakeCountryRepo) FetchAll(ctx context.Context) ([]*models.Country, error) {
	return f.countries, nil
}

func (f *fakeCountryRepo) Insert(ctx context.Context, country *models.Country) (*models.Country, error) {
	f.countries = append(f.countries, country)
	return country, nil
}

func (f *fakeCountryRepo) UpdateByID(ctx context.Context, id string, country *models.Country) (*models.Country, error) {
	return country, nil
}

func (f *fakeCountryRepo) DeleteByID(ctx context.Context, id string) error {
	return nil
}

func (f *fakeCountryRepo) NameExists(ctx context.Context, name string, excludeID string) (bool, error) {
	f.probes.Add(1)
	for _, c := range f.countries {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func TestCheckReportsAvailability(t *testing.T) {
	repo := &fakeCountryRepo{}
	taken, err := models.NewCountry("Moldova")
	require.NoError(t, err)
	repo.countries = append(repo.countries, taken)

	svc := NewNameCheckService(repo, 10*time.Millisecond)

	available, err := svc.Check(context.Background(), "Moldova", "")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.Check(context.Background(), "Georgia", "")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckExcludesRecordBeingEdited(t *testing.T) {
	repo := &fakeCountryRepo{}
	taken, err := models.NewCountry("Moldova")
	require.NoError(t, err)
	repo.countries = append(repo.countries, taken)

	svc := NewNameCheckService(repo, 10*time.Millisecond)

	// Editing Moldova itself: its own name stays available
	available, err := svc.Check(context.Background(), "Moldova", taken.ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckBlankNameNeverAvailable(t *testing.T) {
	svc := NewNameCheckService(&fakeCountryRepo{}, 10*time.Millisecond)

	available, err := svc.Check(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestDebouncedTypingBurstCostsOneProbe(t *testing.T) {
	repo := &fakeCountryRepo{}
	svc := NewNameCheckService(repo, 30*time.Millisecond)

	debouncer := svc.NewDebouncer()
	defer debouncer.Stop()

	results := make(chan string, 4)
	probe := func(name string) {
		available, err := svc.Check(context.Background(), name, "")
		if err == nil && available {
			results <- name
		}
	}

	// Four keystrokes inside the quiet period
	debouncer.Trigger("G", probe)
	debouncer.Trigger("Ge", probe)
	debouncer.Trigger("Geo", probe)
	debouncer.Trigger("Georgia", probe)

	select {
	case name := <-results:
		assert.Equal(t, "Georgia", name)
	case <-time.After(time.Second):
		t.Fatal("debounced probe never fired")
	}

	assert.Equal(t, int32(1), repo.probes.Load())
}
