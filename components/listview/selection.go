package listview

import (
	"sync"
	"time"
)

// DefaultReleaseDelay keeps a cleared record around long enough for a closing
// transition to render.
const DefaultReleaseDelay = 300 * time.Millisecond

// Timer is the subset of *time.Timer used by Selection.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the wall clock backed by time.AfterFunc.
func SystemClock() Clock {
	return realClock{}
}

// DetailListener is notified when the detail surface opens or closes.
type DetailListener[T any] func(open bool, record T)

// SelectionOptions configures a Selection.
type SelectionOptions[T any] struct {
	ReleaseDelay time.Duration
	Clock        Clock
	OnChange     DetailListener[T]
}

// Selection tracks at most one selected record bound to a detail surface.
type Selection[T any] struct {
	mu       sync.Mutex
	delay    time.Duration
	clock    Clock
	onChange DetailListener[T]

	record  T
	held    bool
	open    bool
	pending Timer
	gen     uint64
	closed  bool
}

// NewSelection builds an empty selection.
func NewSelection[T any](opts SelectionOptions[T]) *Selection[T] {
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.ReleaseDelay < 0 {
		opts.ReleaseDelay = 0
	}
	return &Selection[T]{
		delay:    opts.ReleaseDelay,
		clock:    opts.Clock,
		onChange: opts.OnChange,
	}
}

// Select makes record the current selection and opens the detail surface. Any
// previous selection is replaced and a pending release is cancelled.
func (s *Selection[T]) Select(record T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stopPendingLocked()
	s.record = record
	s.held = true
	s.open = true
	listener := s.onChange
	s.mu.Unlock()
	if listener != nil {
		listener(true, record)
	}
}

// Clear closes the detail surface. The record stays readable through Current
// until the release delay elapses.
func (s *Selection[T]) Clear() {
	s.mu.Lock()
	if s.closed || !s.open {
		s.mu.Unlock()
		return
	}
	s.open = false
	record := s.record
	s.stopPendingLocked()
	s.gen++
	gen := s.gen
	if s.delay == 0 {
		s.releaseLocked()
	} else {
		s.pending = s.clock.AfterFunc(s.delay, func() { s.release(gen) })
	}
	listener := s.onChange
	s.mu.Unlock()
	if listener != nil {
		listener(false, record)
	}
}

// Open reports whether the detail surface is showing.
func (s *Selection[T]) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Current returns the held record, which may outlive Open during the release delay.
func (s *Selection[T]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record, s.held
}

// Close cancels pending timers and releases the record. Further calls are ignored.
func (s *Selection[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPendingLocked()
	s.open = false
	s.releaseLocked()
	s.closed = true
}

func (s *Selection[T]) release(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.open {
		return
	}
	s.pending = nil
	s.releaseLocked()
}

func (s *Selection[T]) releaseLocked() {
	var zero T
	s.record = zero
	s.held = false
}

func (s *Selection[T]) stopPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
