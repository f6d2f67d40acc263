package catalog

import (
	"context"
	"time"

	"github.com/goliatone/go-travelboard/components/listview"
)

// Default window sizes for the dashboard pages.
const (
	BookingsPageSize = 5
	PaymentsPageSize = 10
	CitiesIncrement  = 8
)

// Criterion names shared by every view.
const (
	CriterionStatus = "status"
	CriterionQuery  = "query"
	CriterionDates  = "dates"
	CriterionRegion = "region"
)

// ViewOptions tunes a list view. Zero sizes take the page defaults; a zero
// ReleaseDelay releases the detail record immediately.
type ViewOptions struct {
	PageSize     int
	Increment    int
	ReleaseDelay time.Duration
	Clock        listview.Clock
	Telemetry    listview.Telemetry
}

// BookingFilter is the filter bar of the bookings page.
type BookingFilter struct {
	Status string
	Query  string
}

// PaymentFilter is the filter bar of the payments page.
type PaymentFilter struct {
	Status string
	From   string
	To     string
	Query  string
}

// CityFilter is the search bar of the cities page.
type CityFilter struct {
	Query  string
	Region string
}

// NewBookingsView builds the paginated bookings list.
func NewBookingsView(bookings []Booking, opts ViewOptions) (*listview.Controller[Booking], error) {
	return listview.NewController(bookings, listview.Options[Booking]{
		Name:         DatasetBookings,
		ID:           func(b Booking) string { return b.ID },
		PageSize:     orDefault(opts.PageSize, BookingsPageSize),
		ReleaseDelay: opts.ReleaseDelay,
		Clock:        opts.Clock,
		Telemetry:    opts.Telemetry,
	})
}

// NewPaymentsView builds the paginated transactions list.
func NewPaymentsView(transactions []Transaction, opts ViewOptions) (*listview.Controller[Transaction], error) {
	return listview.NewController(transactions, listview.Options[Transaction]{
		Name:         DatasetTransactions,
		ID:           func(t Transaction) string { return t.ID },
		PageSize:     orDefault(opts.PageSize, PaymentsPageSize),
		ReleaseDelay: opts.ReleaseDelay,
		Clock:        opts.Clock,
		Telemetry:    opts.Telemetry,
	})
}

// NewCitiesView builds the load-more cities grid.
func NewCitiesView(cities []City, opts ViewOptions) (*listview.Controller[City], error) {
	return listview.NewController(cities, listview.Options[City]{
		Name:         DatasetCities,
		ID:           func(c City) string { return c.ID },
		PageSize:     opts.PageSize,
		Increment:    orDefault(opts.Increment, CitiesIncrement),
		ReleaseDelay: opts.ReleaseDelay,
		Clock:        opts.Clock,
		Telemetry:    opts.Telemetry,
	})
}

// BookingStatusIs filters bookings by status; "all" or blank disables it.
func BookingStatusIs(status string) listview.Criterion[Booking] {
	return listview.StatusEquals(CriterionStatus, func(b Booking) string { return string(b.Status) }, status)
}

// BookingSearch matches hotel or city names.
func BookingSearch(query string) listview.Criterion[Booking] {
	return listview.TextQuery(CriterionQuery, query,
		func(b Booking) string { return b.Hotel },
		func(b Booking) string { return b.City },
	)
}

// TransactionStatusIs filters payments by status.
func TransactionStatusIs(status string) listview.Criterion[Transaction] {
	return listview.StatusEquals(CriterionStatus, func(t Transaction) string { return string(t.Status) }, status)
}

// TransactionSearch matches the payment description.
func TransactionSearch(query string) listview.Criterion[Transaction] {
	return listview.TextQuery(CriterionQuery, query, func(t Transaction) string { return t.Description })
}

// TransactionsBetween keeps payments dated inside the inclusive range.
func TransactionsBetween(r listview.DateRange) listview.Criterion[Transaction] {
	return listview.InDateRange(CriterionDates, func(t Transaction) string { return t.Date }, r)
}

// CitySearch matches city or country names.
func CitySearch(query string) listview.Criterion[City] {
	return listview.TextQuery(CriterionQuery, query,
		func(c City) string { return c.Name },
		func(c City) string { return c.Country },
	)
}

// CityRegion keeps cities in region; "all" or blank disables it.
func CityRegion(region string) listview.Criterion[City] {
	return listview.StatusEquals(CriterionRegion, func(c City) string { return c.Region }, region)
}

// ApplyBookingFilter installs every booking criterion at once.
func ApplyBookingFilter(ctx context.Context, view *listview.Controller[Booking], f BookingFilter) {
	view.SetCriterion(ctx, BookingStatusIs(f.Status))
	view.SetCriterion(ctx, BookingSearch(f.Query))
}

// ApplyPaymentFilter installs every payment criterion at once.
func ApplyPaymentFilter(ctx context.Context, view *listview.Controller[Transaction], f PaymentFilter) {
	view.SetCriterion(ctx, TransactionStatusIs(f.Status))
	view.SetCriterion(ctx, TransactionsBetween(listview.ParseDateRange(f.From, f.To)))
	view.SetCriterion(ctx, TransactionSearch(f.Query))
}

// ApplyCityFilter installs every city criterion at once.
func ApplyCityFilter(ctx context.Context, view *listview.Controller[City], f CityFilter) {
	view.SetCriterion(ctx, CitySearch(f.Query))
	view.SetCriterion(ctx, CityRegion(f.Region))
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
