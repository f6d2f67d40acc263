package listview

import (
	"strings"
	"time"
)

// StatusAll disables a status criterion.
const StatusAll = "all"

// Criterion is a named predicate over a record. Criteria combine with logical AND.
type Criterion[T any] struct {
	Name  string
	Match func(T) bool
}

// Active reports whether the criterion filters anything.
func (c Criterion[T]) Active() bool {
	return c.Name != "" && c.Match != nil
}

// Apply returns the records passing every active criterion. Relative order is
// preserved and the input slice is never modified.
func Apply[T any](records []T, criteria ...Criterion[T]) []T {
	active := make([]Criterion[T], 0, len(criteria))
	for _, c := range criteria {
		if c.Active() {
			active = append(active, c)
		}
	}
	out := make([]T, 0, len(records))
	for _, record := range records {
		if matchesAll(record, active) {
			out = append(out, record)
		}
	}
	return out
}

func matchesAll[T any](record T, criteria []Criterion[T]) bool {
	for _, c := range criteria {
		if !c.Match(record) {
			return false
		}
	}
	return true
}

// StatusEquals keeps records whose status equals want. An empty want or
// StatusAll yields an inactive criterion.
func StatusEquals[T any](name string, status func(T) string, want string) Criterion[T] {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, StatusAll) {
		return Criterion[T]{Name: name}
	}
	return Criterion[T]{
		Name: name,
		Match: func(record T) bool {
			return strings.EqualFold(status(record), want)
		},
	}
}

// TextQuery keeps records where any of the fields contains query, ignoring case.
func TextQuery[T any](name, query string, fields ...func(T) string) Criterion[T] {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || len(fields) == 0 {
		return Criterion[T]{Name: name}
	}
	return Criterion[T]{
		Name: name,
		Match: func(record T) bool {
			for _, field := range fields {
				if strings.Contains(strings.ToLower(field(record)), needle) {
					return true
				}
			}
			return false
		},
	}
}

// DateRange describes an inclusive calendar-day interval. Zero bounds are open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Bounds returns the normalized interval: start at 00:00:00 and end at the last
// instant of its day. Reversed bounds are swapped.
func (r DateRange) Bounds() (time.Time, time.Time) {
	start, end := r.Start, r.End
	if !start.IsZero() && !end.IsZero() && startOfDay(start).After(startOfDay(end)) {
		start, end = end, start
	}
	if !start.IsZero() {
		start = startOfDay(start)
	}
	if !end.IsZero() {
		end = startOfDay(end).Add(24*time.Hour - time.Nanosecond)
	}
	return start, end
}

// Contains reports whether t falls inside the normalized interval.
func (r DateRange) Contains(t time.Time) bool {
	start, end := r.Bounds()
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}

// ParseDateRange builds a range from two calendar-day strings. Blank or
// unparsable values leave that bound open.
func ParseDateRange(from, to string) DateRange {
	var r DateRange
	if t, ok := ParseDate(from); ok {
		r.Start = t
	}
	if t, ok := ParseDate(to); ok {
		r.End = t
	}
	return r
}

// InDateRange keeps records whose date falls inside the range. Records with an
// unparsable date never match an active range.
func InDateRange[T any](name string, date func(T) string, r DateRange) Criterion[T] {
	if r.IsZero() {
		return Criterion[T]{Name: name}
	}
	return Criterion[T]{
		Name: name,
		Match: func(record T) bool {
			t, ok := ParseDate(date(record))
			if !ok {
				return false
			}
			return r.Contains(t)
		},
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDate accepts the ISO-8601 shapes used by the datasets. Values without a
// zone are read as UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
