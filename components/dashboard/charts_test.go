package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-travelboard/components/catalog"
)

type countingCache struct {
	inner *ChartCache
	calls int
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	return c.inner.GetOrRender(key, func() (string, error) {
		c.calls++
		return render()
	})
}

func TestSpendingChartRendersBar(t *testing.T) {
	chart := NewSpendingChart()
	html, err := chart.Render(ViewerContext{Theme: "dark"}, "Spend", []catalog.MonthlySpend{
		{Month: "2026-01", Total: 120},
		{Month: "2026-02", Total: 80.5},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "2026-02")
	assert.True(t, strings.Contains(html, types.ThemeChalk))
}

func TestSpendingChartUsesCachePerTheme(t *testing.T) {
	cache := &countingCache{inner: NewChartCache(time.Minute)}
	chart := NewSpendingChart(WithChartCache(cache))
	months := []catalog.MonthlySpend{{Month: "2026-03", Total: 42}}

	_, err := chart.Render(ViewerContext{Theme: "light"}, "Spend", months)
	require.NoError(t, err)
	_, err = chart.Render(ViewerContext{Theme: "light"}, "Spend", months)
	require.NoError(t, err)
	_, err = chart.Render(ViewerContext{Theme: "dark"}, "Spend", months)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.calls)
}

func TestSpendingChartRejectsEmptySeries(t *testing.T) {
	_, err := NewSpendingChart().Render(ViewerContext{}, "Spend", nil)
	assert.Error(t, err)
}

func TestChartTheme(t *testing.T) {
	assert.Equal(t, types.ThemeChalk, ChartTheme("dark"))
	assert.Equal(t, types.ThemeWesteros, ChartTheme("light"))
	assert.Equal(t, types.ThemeWesteros, ChartTheme(""))
}
