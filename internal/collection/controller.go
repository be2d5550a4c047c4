package collection

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Controller is a windowed view over one mirrored collection: it holds the
// mirror, serializes mutations through a coordinator, and derives the
// current page from the (optionally filtered) records.
//
// All methods are safe for concurrent use; internally every operation runs
// under one lock so the single-writer invariant on the mirror holds.
type Controller[T Record] struct {
	mu          sync.Mutex
	store       Store[T]
	mirror      *Mirror[T]
	coordinator *Coordinator[T]
	paginator   *Paginator

	// displayName extracts the searchable name; nil disables filtering.
	displayName func(T) string
	query       string
}

// Option configures a Controller.
type Option[T Record] func(*Controller[T])

// WithDisplayName enables case-insensitive substring filtering over the
// value extracted by fn.
func WithDisplayName[T Record](fn func(T) string) Option[T] {
	return func(c *Controller[T]) {
		c.displayName = fn
	}
}

// WithMutationTimeout overrides the per-mutation deadline.
func WithMutationTimeout[T Record](d time.Duration) Option[T] {
	return func(c *Controller[T]) {
		c.coordinator = NewCoordinator(c.store, c.mirror, &c.mu, d)
	}
}

// NewController creates a controller over the given store.
func NewController[T Record](store Store[T], pageSize int, opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		store:     store,
		mirror:    NewMirror[T](),
		paginator: NewPaginator(pageSize),
	}
	c.coordinator = NewCoordinator(c.store, c.mirror, &c.mu, 0)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the full collection, replaces the mirror, and resets the
// view to page 1. Used on first attach and when switching the active
// collection.
func (c *Controller[T]) Load(ctx context.Context) error {
	records, err := c.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch collection: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mirror.ReplaceAll(records)
	c.query = ""
	c.paginator.Reset()
	c.paginator.SetTotal(c.mirror.Len())
	return nil
}

// Page returns the records on the current page of the filtered view.
func (c *Controller[T]) Page() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	filtered := c.filtered()
	page := PageSlice(filtered, c.paginator)
	out := make([]T, len(page))
	copy(out, page)
	return out
}

// PageInfo describes the current window for rendering a page control.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	Window     []int `json:"window"`
}

// Info returns the current pagination state.
func (c *Controller[T]) Info() PageInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PageInfo{
		Page:       c.paginator.Page(),
		PageSize:   c.paginator.PageSize(),
		TotalItems: c.paginator.total,
		TotalPages: c.paginator.TotalPages(),
		Window:     c.paginator.Window(),
	}
}

// SetPage moves the view to the given page, clamped into range.
func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paginator.SetPage(page)
}

// SetFilter changes the search query. The page resets to 1 whenever the
// filtered result no longer reaches the current page's start index.
func (c *Controller[T]) SetFilter(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if query == c.query {
		return
	}
	c.query = query
	filtered := c.filtered()
	lo := (c.paginator.Page() - 1) * c.paginator.PageSize()
	if lo >= len(filtered) {
		c.paginator.Reset()
	}
	c.paginator.SetTotal(len(filtered))
}

// Create inserts a record through the coordinator and refreshes the window.
func (c *Controller[T]) Create(ctx context.Context, record T) (T, error) {
	stored, err := c.coordinator.Create(ctx, record)
	if err != nil {
		var zero T
		return zero, err
	}
	c.mu.Lock()
	c.paginator.SetTotal(len(c.filtered()))
	c.mu.Unlock()
	return stored, nil
}

// Update edits a record through the coordinator.
func (c *Controller[T]) Update(ctx context.Context, id string, record T) (T, error) {
	return c.coordinator.Update(ctx, id, record)
}

// Delete removes a record through the coordinator. If the removal empties
// the current page and the view is past page 1, the page steps back so the
// user never lands on an empty trailing page.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if err := c.coordinator.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	filtered := c.filtered()
	lo := (c.paginator.Page() - 1) * c.paginator.PageSize()
	if lo >= len(filtered) && c.paginator.Page() > 1 {
		c.paginator.SetPage(c.paginator.Page() - 1)
	}
	c.paginator.SetTotal(len(filtered))
	return nil
}

// Apply upserts a canonical record into the mirror without a store
// round-trip. Used when a sub-resource operation already returned the
// updated parent record.
func (c *Controller[T]) Apply(record T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mirror.Upsert(record)
	c.paginator.SetTotal(len(c.filtered()))
}

// Get returns the mirrored record with the given id.
func (c *Controller[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mirror.Get(id)
}

// Items returns the full (unfiltered) mirrored collection.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.mirror.Items()
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func (c *Controller[T]) filtered() []T {
	items := c.mirror.Items()
	if c.displayName == nil || c.query == "" {
		return items
	}
	needle := strings.ToLower(c.query)
	var out []T
	for _, item := range items {
		if strings.Contains(strings.ToLower(c.displayName(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}
