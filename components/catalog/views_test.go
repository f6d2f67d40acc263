package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestPaymentsViewPagination(t *testing.T) {
	ctx := context.Background()
	view, err := NewPaymentsView(mustCatalog(t).Transactions, ViewOptions{})
	require.NoError(t, err)
	defer view.Close()

	first := view.SetPage(ctx, 1)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 3, first.TotalPages)
	assert.Len(t, view.SetPage(ctx, 2).Items, 10)
	third := view.SetPage(ctx, 3)
	assert.Len(t, third.Items, 5)
	clamped := view.SetPage(ctx, 99)
	assert.Equal(t, third.Items, clamped.Items)
	assert.Equal(t, 3, clamped.Number)
	assert.False(t, clamped.HasNext)
}

func TestPaymentsViewSameDayRangeIsInclusive(t *testing.T) {
	ctx := context.Background()
	view, err := NewPaymentsView(mustCatalog(t).Transactions, ViewOptions{})
	require.NoError(t, err)
	defer view.Close()

	ApplyPaymentFilter(ctx, view, PaymentFilter{From: "2026-01-01", To: "2026-01-01"})
	items := view.View()
	require.Len(t, items, 1)
	assert.Equal(t, "TX-50001", items[0].ID)
	assert.Equal(t, "2026-01-01T23:00", items[0].Date)
}

func TestPaymentsViewCombinedFilters(t *testing.T) {
	ctx := context.Background()
	view, err := NewPaymentsView(mustCatalog(t).Transactions, ViewOptions{})
	require.NoError(t, err)
	defer view.Close()

	view.SetPage(ctx, 3)
	ApplyPaymentFilter(ctx, view, PaymentFilter{Status: "refunded", From: "2026-02-01", To: "2026-05-31"})
	page := view.Page()
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 3, page.Total)
	for _, tx := range page.Items {
		assert.Equal(t, TransactionRefunded, tx.Status)
	}

	ApplyPaymentFilter(ctx, view, PaymentFilter{Status: "all"})
	assert.Len(t, view.View(), 25)
}

func TestBookingsViewFilters(t *testing.T) {
	ctx := context.Background()
	view, err := NewBookingsView(mustCatalog(t).Bookings, ViewOptions{})
	require.NoError(t, err)
	defer view.Close()

	assert.Equal(t, 4, view.Page().TotalPages)
	ApplyBookingFilter(ctx, view, BookingFilter{Status: "completed"})
	assert.Len(t, view.View(), 8)
	ApplyBookingFilter(ctx, view, BookingFilter{Status: "all", Query: "tokyo"})
	items := view.View()
	require.Len(t, items, 1)
	assert.Equal(t, "Shinjuku Garden Inn", items[0].Hotel)
}

func TestCitiesViewSearchAndLoadMore(t *testing.T) {
	ctx := context.Background()
	view, err := NewCitiesView(mustCatalog(t).Cities, ViewOptions{})
	require.NoError(t, err)
	defer view.Close()

	visible := view.Visible()
	assert.Equal(t, 8, visible.Shown)
	assert.True(t, visible.HasMore)
	assert.Equal(t, 16, view.LoadMore(ctx).Shown)
	last := view.LoadMore(ctx)
	assert.Equal(t, 24, last.Shown)
	assert.False(t, last.HasMore)
	assert.Equal(t, 24, view.LoadMore(ctx).Shown)

	ApplyCityFilter(ctx, view, CityFilter{Query: "par"})
	visible = view.Visible()
	require.Len(t, visible.Items, 1)
	assert.Equal(t, "Paris", visible.Items[0].Name)

	ApplyCityFilter(ctx, view, CityFilter{Region: "europe"})
	visible = view.Visible()
	assert.Equal(t, 10, visible.Total)
	assert.Equal(t, 8, visible.Shown)
	assert.Equal(t, 10, view.LoadMore(ctx).Shown)
}

func TestBookingsViewReplaceWithReview(t *testing.T) {
	ctx := context.Background()
	view, err := NewBookingsView(mustCatalog(t).Bookings, ViewOptions{})
	require.NoError(t, err)
	defer view.Close()

	original, ok := view.Record("BK-1002")
	require.True(t, ok)
	require.True(t, Reviewable(original))
	updated := AttachReview(original, Review{Rating: 9, Comment: "Superb"})
	require.NoError(t, view.Replace(ctx, updated))

	got, _ := view.Record("BK-1002")
	require.NotNil(t, got.Review)
	assert.Equal(t, MaxRating, got.Review.Rating)
	assert.Nil(t, original.Review)
}
