package dashboard

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-travelboard/components/catalog"
)

const defaultChartHeight = "320px"

// SpendingChart renders the monthly completed spend as an ECharts bar chart.
type SpendingChart struct {
	cache      RenderCache
	assetsHost string
}

// SpendingChartOption customizes chart rendering.
type SpendingChartOption func(*SpendingChart)

// WithChartCache injects a render cache. A nil cache renders every time.
func WithChartCache(cache RenderCache) SpendingChartOption {
	return func(c *SpendingChart) {
		c.cache = cache
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) SpendingChartOption {
	return func(c *SpendingChart) {
		c.assetsHost = host
	}
}

// NewSpendingChart builds a chart renderer.
func NewSpendingChart(options ...SpendingChartOption) *SpendingChart {
	c := &SpendingChart{}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// ChartTheme maps the viewer theme onto an ECharts theme.
func ChartTheme(theme string) string {
	if theme == "dark" {
		return types.ThemeChalk
	}
	return types.ThemeWesteros
}

// Render returns the chart HTML for months, themed for viewer.
func (c *SpendingChart) Render(viewer ViewerContext, title string, months []catalog.MonthlySpend) (string, error) {
	if len(months) == 0 {
		return "", fmt.Errorf("dashboard: spending chart needs at least one month")
	}
	theme := ChartTheme(viewer.Theme)
	render := func() (string, error) {
		return c.render(title, theme, months)
	}
	if c.cache == nil {
		return render()
	}
	cfg := map[string]any{"title": title, "months": months}
	key := fmt.Sprintf("spending:%s:%s", theme, configHash(cfg))
	return c.cache.GetOrRender(key, render)
}

func (c *SpendingChart) render(title, theme string, months []catalog.MonthlySpend) (string, error) {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if c.assetsHost != "" {
		initOpts.AssetsHost = c.assetsHost
	}
	labels := make([]string, len(months))
	data := make([]opts.BarData, len(months))
	for i, m := range months {
		labels[i] = m.Month
		data[i] = opts.BarData{Name: m.Month, Value: m.Total}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries(title, data)
	return renderChart(bar)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
