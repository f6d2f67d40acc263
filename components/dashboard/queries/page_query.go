package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-travelboard/components/dashboard"
)

type pageService interface {
	Page(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.PageData, error)
}

// DashboardPageQuery resolves the ordered section cards for a viewer.
type DashboardPageQuery struct {
	service pageService
}

// NewDashboardPageQuery builds the query.
func NewDashboardPageQuery(service pageService) *DashboardPageQuery {
	return &DashboardPageQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.PageData] = (*DashboardPageQuery)(nil)

// Query builds the dashboard payload for the viewer.
func (q *DashboardPageQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.PageData, error) {
	return q.service.Page(ctx, viewer)
}

// SectionOrderInput requests the current order.
type SectionOrderInput struct{}

// SectionOrderResult reports the order together with its lifecycle.
type SectionOrderResult struct {
	Order     []string            `json:"order"`
	Lifecycle dashboard.Lifecycle `json:"lifecycle"`
}

type orderService interface {
	Order() dashboard.SectionOrder
	Lifecycle() dashboard.Lifecycle
}

// SectionOrderQuery reads the in-memory section order.
type SectionOrderQuery struct {
	service orderService
}

// NewSectionOrderQuery builds the query.
func NewSectionOrderQuery(service orderService) *SectionOrderQuery {
	return &SectionOrderQuery{service: service}
}

var _ gocommand.Querier[SectionOrderInput, SectionOrderResult] = (*SectionOrderQuery)(nil)

// Query returns the current order.
func (q *SectionOrderQuery) Query(context.Context, SectionOrderInput) (SectionOrderResult, error) {
	return SectionOrderResult{
		Order:     q.service.Order().Strings(),
		Lifecycle: q.service.Lifecycle(),
	}, nil
}
