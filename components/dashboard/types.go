package dashboard

import (
	"context"
	"slices"
)

// Section identifies a dashboard card.
type Section string

// Dashboard sections.
const (
	SectionBookings Section = "bookings"
	SectionReviews  Section = "reviews"
	SectionMessages Section = "messages"
	SectionNews     Section = "news"
)

var defaultSectionOrder = SectionOrder{SectionBookings, SectionReviews, SectionMessages, SectionNews}

// SectionOrder is a permutation of the four dashboard sections.
type SectionOrder []Section

// DefaultSectionOrder returns the compiled-in order.
func DefaultSectionOrder() SectionOrder {
	return slices.Clone(defaultSectionOrder)
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	return slices.Contains(defaultSectionOrder, s)
}

// Index returns the position of section or -1.
func (o SectionOrder) Index(section Section) int {
	return slices.Index(o, section)
}

// IsPermutation reports whether o contains every section exactly once.
func (o SectionOrder) IsPermutation() bool {
	if len(o) != len(defaultSectionOrder) {
		return false
	}
	seen := make(map[Section]struct{}, len(o))
	for _, section := range o {
		if !section.Valid() {
			return false
		}
		if _, dup := seen[section]; dup {
			return false
		}
		seen[section] = struct{}{}
	}
	return true
}

// Strings converts the order for transports.
func (o SectionOrder) Strings() []string {
	out := make([]string, len(o))
	for i, section := range o {
		out[i] = string(section)
	}
	return out
}

// Clone returns an independent copy.
func (o SectionOrder) Clone() SectionOrder {
	return slices.Clone(o)
}

// OrderStore loads and saves the persisted section order.
type OrderStore interface {
	LoadOrder(ctx context.Context) (SectionOrder, error)
	SaveOrder(ctx context.Context, order SectionOrder) error
}

// RefreshHook notifies transports (WebSocket, SSE) about section changes.
type RefreshHook interface {
	SectionsUpdated(ctx context.Context, event SectionEvent) error
}

// SectionEvent describes a section order change.
type SectionEvent struct {
	Seq    uint64   `json:"seq"`
	Order  []string `json:"order"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target,omitempty"`
	Reason string   `json:"reason"`
}

// ViewerContext carries the presentation preferences used to render the dashboard.
type ViewerContext struct {
	UserID string
	Locale string
	Theme  string
}
