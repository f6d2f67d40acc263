package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-travelboard/components/catalog"
	"github.com/goliatone/go-travelboard/components/listview"
)

var errMissingCatalog = errors.New("queries: catalog is required")

// BookingsInput selects a filtered page of bookings.
type BookingsInput struct {
	Filter catalog.BookingFilter
	Page   int
}

// PaymentsInput selects a filtered page of transactions.
type PaymentsInput struct {
	Filter catalog.PaymentFilter
	Page   int
}

// CitiesInput selects the load-more window of cities. Loads counts how many
// times "load more" was pressed.
type CitiesInput struct {
	Filter catalog.CityFilter
	Loads  int
}

// PaymentsResult pairs the payments page with the summary of the filtered view.
type PaymentsResult struct {
	Page    listview.Page[catalog.Transaction] `json:"page"`
	Summary catalog.SpendingSummary            `json:"summary"`
}

// BookingsQuery builds a fresh bookings view per request.
type BookingsQuery struct {
	catalog *catalog.Catalog
	opts    catalog.ViewOptions
}

// NewBookingsQuery builds the query.
func NewBookingsQuery(data *catalog.Catalog, opts catalog.ViewOptions) *BookingsQuery {
	return &BookingsQuery{catalog: data, opts: opts}
}

var _ gocommand.Querier[BookingsInput, listview.Page[catalog.Booking]] = (*BookingsQuery)(nil)

// Query filters bookings and returns the requested page.
func (q *BookingsQuery) Query(ctx context.Context, input BookingsInput) (listview.Page[catalog.Booking], error) {
	if q.catalog == nil {
		return listview.Page[catalog.Booking]{}, errMissingCatalog
	}
	view, err := catalog.NewBookingsView(q.catalog.Bookings, q.opts)
	if err != nil {
		return listview.Page[catalog.Booking]{}, err
	}
	defer view.Close()
	catalog.ApplyBookingFilter(ctx, view, input.Filter)
	return view.SetPage(ctx, input.Page), nil
}

// PaymentsQuery builds a fresh payments view per request.
type PaymentsQuery struct {
	catalog *catalog.Catalog
	opts    catalog.ViewOptions
}

// NewPaymentsQuery builds the query.
func NewPaymentsQuery(data *catalog.Catalog, opts catalog.ViewOptions) *PaymentsQuery {
	return &PaymentsQuery{catalog: data, opts: opts}
}

var _ gocommand.Querier[PaymentsInput, PaymentsResult] = (*PaymentsQuery)(nil)

// Query filters transactions and summarizes the filtered view.
func (q *PaymentsQuery) Query(ctx context.Context, input PaymentsInput) (PaymentsResult, error) {
	if q.catalog == nil {
		return PaymentsResult{}, errMissingCatalog
	}
	view, err := catalog.NewPaymentsView(q.catalog.Transactions, q.opts)
	if err != nil {
		return PaymentsResult{}, err
	}
	defer view.Close()
	catalog.ApplyPaymentFilter(ctx, view, input.Filter)
	return PaymentsResult{
		Page:    view.SetPage(ctx, input.Page),
		Summary: catalog.Summary(view.View()),
	}, nil
}

// CitiesQuery builds a fresh cities view per request.
type CitiesQuery struct {
	catalog *catalog.Catalog
	opts    catalog.ViewOptions
}

// NewCitiesQuery builds the query.
func NewCitiesQuery(data *catalog.Catalog, opts catalog.ViewOptions) *CitiesQuery {
	return &CitiesQuery{catalog: data, opts: opts}
}

var _ gocommand.Querier[CitiesInput, listview.Slice[catalog.City]] = (*CitiesQuery)(nil)

// Query filters cities and advances the load-more cursor Loads times.
func (q *CitiesQuery) Query(ctx context.Context, input CitiesInput) (listview.Slice[catalog.City], error) {
	if q.catalog == nil {
		return listview.Slice[catalog.City]{}, errMissingCatalog
	}
	view, err := catalog.NewCitiesView(q.catalog.Cities, q.opts)
	if err != nil {
		return listview.Slice[catalog.City]{}, err
	}
	defer view.Close()
	catalog.ApplyCityFilter(ctx, view, input.Filter)
	out := view.Visible()
	for i := 0; i < input.Loads && out.HasMore; i++ {
		out = view.LoadMore(ctx)
	}
	return out, nil
}
