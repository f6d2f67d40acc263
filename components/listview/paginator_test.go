package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateTwentyFiveByTen(t *testing.T) {
	view := numbers(25)

	p1 := Paginate(view, 10, 1)
	p2 := Paginate(view, 10, 2)
	p3 := Paginate(view, 10, 3)
	p99 := Paginate(view, 10, 99)

	assert.Len(t, p1.Items, 10)
	assert.Len(t, p2.Items, 10)
	assert.Len(t, p3.Items, 5)
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, p3.Items, p99.Items)
	assert.Equal(t, 3, p99.Number)
	assert.False(t, p1.HasPrev)
	assert.True(t, p1.HasNext)
	assert.True(t, p3.HasPrev)
	assert.False(t, p3.HasNext)
}

func TestPaginateClampsLow(t *testing.T) {
	p := Paginate(numbers(7), 3, -4)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
}

func TestPaginateEmptyView(t *testing.T) {
	p := Paginate([]int{}, 10, 5)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasNext)
}

func TestPaginateConcatenationReconstructsView(t *testing.T) {
	for total := 0; total <= 23; total++ {
		view := numbers(total)
		for size := 1; size <= 8; size++ {
			pages := TotalPages(total, size)
			var joined []int
			for n := 1; n <= pages; n++ {
				p := Paginate(view, size, n)
				require.GreaterOrEqual(t, p.Number, 1)
				require.LessOrEqual(t, p.Number, p.TotalPages)
				joined = append(joined, p.Items...)
			}
			if total == 0 {
				require.Empty(t, joined)
				continue
			}
			require.Equal(t, view, joined, "total=%d size=%d", total, size)
		}
	}
}

func TestPaginateNormalizesSize(t *testing.T) {
	p := Paginate(numbers(3), 0, 2)
	assert.Equal(t, 1, p.Size)
	assert.Equal(t, []int{2}, p.Items)
}
