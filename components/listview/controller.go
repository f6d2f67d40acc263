package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrDuplicateID is returned when a record store contains the same identifier twice.
	ErrDuplicateID = errors.New("listview: duplicate record id")
	// ErrMissingID is returned when the controller has no identity function.
	ErrMissingID = errors.New("listview: record id function is required")
	// ErrRecordNotFound is returned by lookups for unknown identifiers.
	ErrRecordNotFound = errors.New("listview: record not found")
)

// Options configures a Controller.
type Options[T any] struct {
	// Name labels telemetry events (e.g. "bookings").
	Name string
	// ID extracts the unique identifier of a record.
	ID func(T) string
	// PageSize is the paginator window size.
	PageSize int
	// Increment enables the load-more cursor when positive.
	Increment int
	// ReleaseDelay holds a cleared selection for the closing transition.
	// Zero releases immediately; callers pick DefaultReleaseDelay explicitly.
	ReleaseDelay time.Duration
	Clock        Clock
	OnDetail     DetailListener[T]
	Telemetry    Telemetry
}

// Controller composes a record store, filter stage, paginator, load-more cursor
// and selection binding for a single list view.
type Controller[T any] struct {
	mu        sync.Mutex
	name      string
	id        func(T) string
	pageSize  int
	records   []T
	index     map[string]int
	criteria  []Criterion[T]
	view      []T
	page      int
	cursor    Cursor
	selection *Selection[T]
	telemetry Telemetry
}

// NewController builds a controller over a private copy of records.
func NewController[T any](records []T, opts Options[T]) (*Controller[T], error) {
	if opts.ID == nil {
		return nil, ErrMissingID
	}
	working := make([]T, len(records))
	copy(working, records)
	index := make(map[string]int, len(working))
	for i, record := range working {
		id := opts.ID(record)
		if _, exists := index[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		index[id] = i
	}
	c := &Controller[T]{
		name:     opts.Name,
		id:       opts.ID,
		pageSize: normalizeSize(opts.PageSize),
		records:  working,
		index:    index,
		page:     1,
		cursor:   NewCursor(opts.Increment),
		selection: NewSelection(SelectionOptions[T]{
			ReleaseDelay: opts.ReleaseDelay,
			Clock:        opts.Clock,
			OnChange:     opts.OnDetail,
		}),
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
	c.view = Apply(c.records)
	return c, nil
}

// Len returns the size of the record store.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// SetCriterion adds or replaces the criterion with the same name, then resets
// the page and cursor.
func (c *Controller[T]) SetCriterion(ctx context.Context, criterion Criterion[T]) {
	if criterion.Name == "" {
		return
	}
	c.mu.Lock()
	replaced := false
	for i := range c.criteria {
		if c.criteria[i].Name == criterion.Name {
			c.criteria[i] = criterion
			replaced = true
			break
		}
	}
	if !replaced {
		c.criteria = append(c.criteria, criterion)
	}
	total := c.refilterLocked()
	c.mu.Unlock()
	c.record(ctx, "listview.filter.set", map[string]any{
		"criterion": criterion.Name,
		"active":    criterion.Active(),
		"total":     total,
	})
}

// RemoveCriterion drops a criterion by name.
func (c *Controller[T]) RemoveCriterion(ctx context.Context, name string) {
	c.mu.Lock()
	kept := c.criteria[:0]
	removed := false
	for _, existing := range c.criteria {
		if existing.Name == name {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	c.criteria = kept
	if !removed {
		c.mu.Unlock()
		return
	}
	total := c.refilterLocked()
	c.mu.Unlock()
	c.record(ctx, "listview.filter.remove", map[string]any{"criterion": name, "total": total})
}

// ClearCriteria removes every criterion.
func (c *Controller[T]) ClearCriteria(ctx context.Context) {
	c.mu.Lock()
	c.criteria = nil
	total := c.refilterLocked()
	c.mu.Unlock()
	c.record(ctx, "listview.filter.clear", map[string]any{"total": total})
}

// Criteria returns the names of the configured criteria in insertion order.
func (c *Controller[T]) Criteria() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.criteria))
	for i, criterion := range c.criteria {
		names[i] = criterion.Name
	}
	return names
}

func (c *Controller[T]) refilterLocked() int {
	c.view = Apply(c.records, c.criteria...)
	c.page = 1
	c.cursor.Reset()
	return len(c.view)
}

// View returns a copy of the filtered view.
func (c *Controller[T]) View() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.view))
	copy(out, c.view)
	return out
}

// SetPage moves to page, clamped to the valid range.
func (c *Controller[T]) SetPage(ctx context.Context, page int) Page[T] {
	c.mu.Lock()
	c.page = ClampPage(page, len(c.view), c.pageSize)
	out := Paginate(c.view, c.pageSize, c.page)
	c.mu.Unlock()
	c.record(ctx, "listview.page", map[string]any{"requested": page, "page": out.Number})
	return out
}

// NextPage advances one page when possible.
func (c *Controller[T]) NextPage(ctx context.Context) Page[T] {
	return c.SetPage(ctx, c.currentPage()+1)
}

// PrevPage steps back one page when possible.
func (c *Controller[T]) PrevPage(ctx context.Context) Page[T] {
	return c.SetPage(ctx, c.currentPage()-1)
}

func (c *Controller[T]) currentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Page returns the current paginator window. A current page beyond the filtered
// view falls back to page 1.
func (c *Controller[T]) Page() Page[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page > TotalPages(len(c.view), c.pageSize) {
		c.page = 1
	}
	return Paginate(c.view, c.pageSize, c.page)
}

// LoadMore advances the load-more cursor and returns the visible slice.
func (c *Controller[T]) LoadMore(ctx context.Context) Slice[T] {
	c.mu.Lock()
	c.cursor.More(len(c.view))
	out := Visible(c.view, c.cursor)
	c.mu.Unlock()
	c.record(ctx, "listview.load_more", map[string]any{"shown": out.Shown, "total": out.Total})
	return out
}

// Visible returns the load-more slice without advancing the cursor.
func (c *Controller[T]) Visible() Slice[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Visible(c.view, c.cursor)
}

// Record looks up a record in the working copy.
func (c *Controller[T]) Record(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.records[idx], true
}

// Replace swaps a record in the working copy for a new value with the same id.
// The filtered view is recomputed while the current page is kept when still valid.
func (c *Controller[T]) Replace(ctx context.Context, record T) error {
	id := c.id(record)
	c.mu.Lock()
	idx, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	c.records[idx] = record
	c.view = Apply(c.records, c.criteria...)
	c.page = ClampPage(c.page, len(c.view), c.pageSize)
	c.mu.Unlock()
	if current, held := c.selection.Current(); held && c.id(current) == id && c.selection.Open() {
		c.selection.Select(record)
	}
	c.record(ctx, "listview.record.replace", map[string]any{"id": id})
	return nil
}

// Select binds the record with id to the detail surface.
func (c *Controller[T]) Select(ctx context.Context, id string) (T, error) {
	record, ok := c.Record(id)
	if !ok {
		return record, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	c.selection.Select(record)
	c.record(ctx, "listview.select", map[string]any{"id": id})
	return record, nil
}

// ClearSelection closes the detail surface.
func (c *Controller[T]) ClearSelection(ctx context.Context) {
	c.selection.Clear()
	c.record(ctx, "listview.select.clear", nil)
}

// Selection exposes the selection binding.
func (c *Controller[T]) Selection() *Selection[T] {
	return c.selection
}

// Close releases pending selection timers.
func (c *Controller[T]) Close() {
	c.selection.Close()
}

func (c *Controller[T]) record(ctx context.Context, event string, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["view"] = c.name
	c.telemetry.Record(ctx, event, payload)
}
