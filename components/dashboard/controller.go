package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-travelboard/components/catalog"
)

const (
	defaultTemplate  = "dashboard.html"
	sectionItemLimit = 3
)

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// OrderSource exposes the current section order.
type OrderSource interface {
	Order() SectionOrder
}

// ControllerOptions wires the page controller.
type ControllerOptions struct {
	Sections   OrderSource
	Catalog    *catalog.Catalog
	Renderer   Renderer
	Template   string
	Translator TranslationService
	Chart      *SpendingChart
}

// Controller assembles and renders the customer dashboard page.
type Controller struct {
	opts ControllerOptions
}

// SectionCard is one draggable card on the page.
type SectionCard struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Position int      `json:"position"`
	Items    any      `json:"items"`
	Lines    []string `json:"-"`
	Count    int      `json:"count"`
}

// PageData is the template payload.
type PageData struct {
	Title    string                  `json:"title"`
	Locale   string                  `json:"locale"`
	Theme    string                  `json:"theme"`
	UserID   string                  `json:"user_id,omitempty"`
	DragHint string                  `json:"drag_hint"`
	Sections []SectionCard           `json:"sections"`
	Spending catalog.SpendingSummary `json:"spending"`
	Chart    string                  `json:"-"`
}

// NewController wires the page dependencies.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultTemplate
	}
	return &Controller{opts: opts}
}

// Page builds the dashboard payload for viewer with cards in the current order.
func (c *Controller) Page(ctx context.Context, viewer ViewerContext) (PageData, error) {
	order := DefaultSectionOrder()
	if c.opts.Sections != nil {
		order = c.opts.Sections.Order()
	}
	data := PageData{
		Title:    translateOrFallback(ctx, c.opts.Translator, "dashboard.title", viewer.Locale, "My dashboard", nil),
		Locale:   viewer.Locale,
		Theme:    viewer.Theme,
		UserID:   viewer.UserID,
		DragHint: translateOrFallback(ctx, c.opts.Translator, "dashboard.dragHint", viewer.Locale, "", nil),
	}
	for i, section := range order {
		card := SectionCard{
			ID:       string(section),
			Title:    SectionTitle(ctx, c.opts.Translator, section, viewer.Locale),
			Position: i + 1,
		}
		card.Items, card.Lines, card.Count = c.sectionItems(section)
		data.Sections = append(data.Sections, card)
	}
	if c.opts.Catalog != nil {
		data.Spending = catalog.Summary(c.opts.Catalog.Transactions)
		if c.opts.Chart != nil && len(data.Spending.ByMonth) > 0 {
			title := translateOrFallback(ctx, c.opts.Translator, "payments.spent", viewer.Locale, "Total spent", nil)
			chart, err := c.opts.Chart.Render(viewer, title, data.Spending.ByMonth)
			if err != nil {
				return PageData{}, fmt.Errorf("dashboard: render spending chart: %w", err)
			}
			data.Chart = chart
		}
	}
	return data, nil
}

// RenderTemplate renders the page into out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: renderer is required")
	}
	data, err := c.Page(ctx, viewer)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"page":     data,
		"sections": data.Sections,
		"chart":    data.Chart,
	}
	if _, err := c.opts.Renderer.Render(c.opts.Template, payload, out); err != nil {
		return fmt.Errorf("dashboard: render %s: %w", c.opts.Template, err)
	}
	return nil
}

func (c *Controller) sectionItems(section Section) (any, []string, int) {
	if c.opts.Catalog == nil {
		return nil, nil, 0
	}
	switch section {
	case SectionBookings:
		var upcoming []catalog.Booking
		for _, b := range c.opts.Catalog.Bookings {
			if b.Status == catalog.BookingUpcoming {
				upcoming = append(upcoming, b)
			}
		}
		shown := limit(upcoming)
		return shown, lines(shown, func(b catalog.Booking) string { return b.Hotel + ", " + b.City }), len(upcoming)
	case SectionReviews:
		reviews := catalog.Reviews(c.opts.Catalog.Bookings)
		shown := limit(reviews)
		return shown, lines(shown, func(b catalog.Booking) string {
			return fmt.Sprintf("%s (%d/%d)", b.Hotel, b.Review.Rating, catalog.MaxRating)
		}), len(reviews)
	case SectionMessages:
		shown := limit(c.opts.Catalog.Messages)
		return shown, lines(shown, func(m catalog.Message) string { return m.From + ": " + m.Subject }), catalog.UnreadMessages(c.opts.Catalog.Messages)
	case SectionNews:
		news := catalog.PostsByCategory(c.opts.Catalog.Posts, string(catalog.CategoryNews))
		shown := limit(news)
		return shown, lines(shown, func(p catalog.Post) string { return p.Title }), len(news)
	}
	return nil, nil, 0
}

func limit[T any](items []T) []T {
	if len(items) > sectionItemLimit {
		return items[:sectionItemLimit]
	}
	return items
}

func lines[T any](items []T, label func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = label(item)
	}
	return out
}
