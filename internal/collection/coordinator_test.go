package collection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with fault injection for tests.
type fakeStore struct {
	mu      sync.Mutex
	items   []testRecord
	nextID  int
	failing error
	block   chan struct{}
}

func newFakeStore(seed ...testRecord) *fakeStore {
	return &fakeStore{items: seed, nextID: len(seed) + 1}
}

func (s *fakeStore) wait(ctx context.Context) error {
	if s.block == nil {
		return nil
	}
	select {
	case <-s.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeStore) FetchAll(ctx context.Context) ([]testRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return nil, s.failing
	}
	out := make([]testRecord, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *fakeStore) Insert(ctx context.Context, record testRecord) (testRecord, error) {
	if err := s.wait(ctx); err != nil {
		return testRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return testRecord{}, s.failing
	}
	record.ID = "srv-" + record.Name
	s.items = append(s.items, record)
	return record, nil
}

func (s *fakeStore) UpdateByID(ctx context.Context, id string, record testRecord) (testRecord, error) {
	if err := s.wait(ctx); err != nil {
		return testRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return testRecord{}, s.failing
	}
	for i, item := range s.items {
		if item.ID == id {
			record.ID = id
			s.items[i] = record
			return record, nil
		}
	}
	return testRecord{}, errors.New("no such record")
}

func (s *fakeStore) DeleteByID(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return s.failing
	}
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	// Absence is success: the row may already be gone.
	return nil
}

func TestCoordinator_Create(t *testing.T) {
	t.Run("applies the canonical record after confirmation", func(t *testing.T) {
		store := newFakeStore()
		mirror := NewMirror[testRecord]()
		coord := NewCoordinator[testRecord](store, mirror, nil, 0)

		stored, err := coord.Create(context.Background(), testRecord{Name: "one"})

		require.NoError(t, err)
		assert.Equal(t, "srv-one", stored.ID)
		got, ok := mirror.Get("srv-one")
		assert.True(t, ok)
		assert.Equal(t, "one", got.Name)
	})

	t.Run("leaves the mirror untouched on failure", func(t *testing.T) {
		store := newFakeStore(records("a")...)
		store.failing = errors.New("store unreachable")
		mirror := NewMirror[testRecord]()
		mirror.ReplaceAll(records("a"))
		coord := NewCoordinator[testRecord](store, mirror, nil, 0)

		_, err := coord.Create(context.Background(), testRecord{Name: "new"})

		assert.Error(t, err)
		assert.Equal(t, 1, mirror.Len())
	})
}

func TestCoordinator_Update(t *testing.T) {
	t.Run("reconciles with the stored record on success", func(t *testing.T) {
		store := newFakeStore(records("a")...)
		mirror := NewMirror[testRecord]()
		mirror.ReplaceAll(records("a"))
		coord := NewCoordinator[testRecord](store, mirror, nil, 0)

		_, err := coord.Update(context.Background(), "a", testRecord{ID: "a", Name: "edited"})

		require.NoError(t, err)
		got, _ := mirror.Get("a")
		assert.Equal(t, "edited", got.Name)
	})

	t.Run("rolls back to the pre-edit snapshot on failure", func(t *testing.T) {
		store := newFakeStore(records("a")...)
		store.failing = errors.New("store unreachable")
		mirror := NewMirror[testRecord]()
		mirror.ReplaceAll(records("a"))
		coord := NewCoordinator[testRecord](store, mirror, nil, 0)

		_, err := coord.Update(context.Background(), "a", testRecord{ID: "a", Name: "edited"})

		assert.Error(t, err)
		got, _ := mirror.Get("a")
		assert.Equal(t, "item a", got.Name)
	})

	t.Run("rejects an id missing from the mirror", func(t *testing.T) {
		store := newFakeStore()
		mirror := NewMirror[testRecord]()
		coord := NewCoordinator[testRecord](store, mirror, nil, 0)

		_, err := coord.Update(context.Background(), "ghost", testRecord{ID: "ghost"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCoordinator_Delete(t *testing.T) {
	t.Run("removes from the mirror only after confirmation", func(t *testing.T) {
		store := newFakeStore(records("a", "b")...)
		mirror := NewMirror[testRecord]()
		mirror.ReplaceAll(records("a", "b"))
		coord := NewCoordinator[testRecord](store, mirror, nil, 0)

		require.NoError(t, coord.Delete(context.Background(), "a"))
		assert.Equal(t, []string{"b"}, ids(mirror.Items()))
	})

	t.Run("keeps the record on failure", func(t *testing.T) {
		store := newFakeStore(records("a")...)
		store.failing = errors.New("store unreachable")
		mirror := NewMirror[testRecord]()
		mirror.ReplaceAll(records("a"))
		coord := NewCoordinator[testRecord](store, mirror, nil, 0)

		err := coord.Delete(context.Background(), "a")

		assert.Error(t, err)
		assert.Equal(t, 1, mirror.Len())
	})
}

func TestCoordinator_SingleInFlight(t *testing.T) {
	t.Run("second concurrent mutation is rejected as busy", func(t *testing.T) {
		store := newFakeStore(records("a")...)
		store.block = make(chan struct{})
		mirror := NewMirror[testRecord]()
		mirror.ReplaceAll(records("a"))
		coord := NewCoordinator[testRecord](store, mirror, nil, 0)

		started := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			close(started)
			_, err := coord.Update(context.Background(), "a", testRecord{ID: "a", Name: "first"})
			done <- err
		}()

		<-started
		// Let the first mutation reach the store call.
		time.Sleep(20 * time.Millisecond)

		_, err := coord.Update(context.Background(), "a", testRecord{ID: "a", Name: "second"})
		assert.ErrorIs(t, err, ErrBusy)

		close(store.block)
		require.NoError(t, <-done)

		got, _ := mirror.Get("a")
		assert.Equal(t, "first", got.Name)
	})
}

func TestCoordinator_Timeout(t *testing.T) {
	t.Run("slow store surfaces a timeout and rolls back", func(t *testing.T) {
		store := newFakeStore(records("a")...)
		store.block = make(chan struct{}) // never closed
		mirror := NewMirror[testRecord]()
		mirror.ReplaceAll(records("a"))
		coord := NewCoordinator[testRecord](store, mirror, nil, 30*time.Millisecond)

		_, err := coord.Update(context.Background(), "a", testRecord{ID: "a", Name: "edited"})

		assert.ErrorIs(t, err, ErrTimeout)
		got, _ := mirror.Get("a")
		assert.Equal(t, "item a", got.Name)
	})
}
