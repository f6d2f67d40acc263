package listview

// Cursor is a monotonically increasing display count used by "load more" views.
type Cursor struct {
	increment int
	count     int
}

// NewCursor starts a cursor at increment.
func NewCursor(increment int) Cursor {
	increment = normalizeSize(increment)
	return Cursor{increment: increment, count: increment}
}

// Count returns the current display count.
func (c Cursor) Count() int {
	return c.count
}

// Increment returns the step used by More.
func (c Cursor) Increment() int {
	return c.increment
}

// More advances the cursor by one increment, clamped to total.
func (c *Cursor) More(total int) {
	next := c.count + c.increment
	if next > total {
		next = max(total, c.increment)
	}
	if next > c.count {
		c.count = next
	}
}

// Reset returns the cursor to its initial increment.
func (c *Cursor) Reset() {
	c.count = c.increment
}

// Window returns the visible prefix of view.
func (c Cursor) Window(total int) int {
	return min(c.count, total)
}

// Slice is the visible portion of a load-more view.
type Slice[T any] struct {
	Items   []T  `json:"items"`
	Shown   int  `json:"shown"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// Visible applies the cursor to view.
func Visible[T any](view []T, c Cursor) Slice[T] {
	n := c.Window(len(view))
	items := make([]T, n)
	copy(items, view[:n])
	return Slice[T]{
		Items:   items,
		Shown:   n,
		Total:   len(view),
		HasMore: len(view) > n,
	}
}
