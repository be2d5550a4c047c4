package collection

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultMutationTimeout bounds how long a single mutation may wait on the
// store before it is treated as failed and rolled back.
const DefaultMutationTimeout = 10 * time.Second

// noopLocker is used when the caller does not share a lock with readers.
type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// Coordinator orchestrates a single logical change against the mirror and
// the store. Creation and deletion are confirm-then-apply: the mirror only
// changes once the store has acknowledged, so new records always carry a
// store-assigned identity and a failed delete never hides data the user
// still needs. Edits to already-identified records apply optimistically
// and roll back to the pre-edit snapshot on failure.
//
// At most one mutation may be in flight per instance. The store here has
// no version token, so overlapping writes are a lost-update hazard; a
// second request fails fast with ErrBusy instead of queueing.
//
// Mirror touches happen under the shared locker; the store call itself
// does not hold it, so readers stay responsive during a slow store.
type Coordinator[T Record] struct {
	store   Store[T]
	mirror  *Mirror[T]
	locker  sync.Locker
	timeout time.Duration

	mu       sync.Mutex
	inFlight bool
}

// NewCoordinator creates a coordinator over the given store and mirror.
// locker guards mirror access shared with readers; nil means unshared.
// A non-positive timeout falls back to DefaultMutationTimeout.
func NewCoordinator[T Record](store Store[T], mirror *Mirror[T], locker sync.Locker, timeout time.Duration) *Coordinator[T] {
	if locker == nil {
		locker = noopLocker{}
	}
	if timeout <= 0 {
		timeout = DefaultMutationTimeout
	}
	return &Coordinator[T]{store: store, mirror: mirror, locker: locker, timeout: timeout}
}

// Create inserts a record, confirm-then-apply. On failure the mirror is
// untouched so the caller can retain the entered values for retry.
func (c *Coordinator[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	if !c.acquire() {
		return zero, ErrBusy
	}
	defer c.release()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stored, err := c.store.Insert(ctx, record)
	if err != nil {
		return zero, mapTimeout(ctx, err)
	}

	c.locker.Lock()
	c.mirror.Upsert(stored)
	c.locker.Unlock()
	return stored, nil
}

// Update applies the edit to the mirror immediately, then confirms with the
// store. On success the mirror is reconciled with the store's canonical
// record; on failure the specific record reverts to its pre-edit snapshot.
func (c *Coordinator[T]) Update(ctx context.Context, id string, record T) (T, error) {
	var zero T
	if !c.acquire() {
		return zero, ErrBusy
	}
	defer c.release()

	c.locker.Lock()
	snapshot, ok := c.mirror.Get(id)
	if !ok {
		c.locker.Unlock()
		return zero, ErrNotFound
	}
	c.mirror.Upsert(record)
	c.locker.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stored, err := c.store.UpdateByID(ctx, id, record)

	c.locker.Lock()
	defer c.locker.Unlock()
	if err != nil {
		c.mirror.Upsert(snapshot)
		return zero, mapTimeout(ctx, err)
	}
	c.mirror.Upsert(stored)
	return stored, nil
}

// Delete removes a record, confirm-then-apply. The mirror is only mutated
// once the store acknowledges the delete.
func (c *Coordinator[T]) Delete(ctx context.Context, id string) error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.DeleteByID(ctx, id); err != nil {
		return mapTimeout(ctx, err)
	}

	c.locker.Lock()
	c.mirror.RemoveByID(id)
	c.locker.Unlock()
	return nil
}

func (c *Coordinator[T]) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Coordinator[T]) release() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

func mapTimeout(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
