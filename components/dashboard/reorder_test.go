package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorderDownwardLandsAfterTarget(t *testing.T) {
	order := SectionOrder{SectionBookings, SectionReviews, SectionMessages, SectionNews}
	next, changed := Reorder(order, SectionReviews, SectionNews)
	assert.True(t, changed)
	assert.Equal(t, SectionOrder{SectionBookings, SectionMessages, SectionNews, SectionReviews}, next)
	assert.Equal(t, SectionOrder{SectionBookings, SectionReviews, SectionMessages, SectionNews}, order, "input must not change")
}

func TestReorderUpwardLandsBeforeTarget(t *testing.T) {
	next, changed := Reorder(DefaultSectionOrder(), SectionNews, SectionReviews)
	assert.True(t, changed)
	assert.Equal(t, SectionOrder{SectionBookings, SectionNews, SectionReviews, SectionMessages}, next)
}

func TestReorderAdjacent(t *testing.T) {
	next, _ := Reorder(DefaultSectionOrder(), SectionBookings, SectionReviews)
	assert.Equal(t, SectionOrder{SectionReviews, SectionBookings, SectionMessages, SectionNews}, next)
}

func TestReorderSelfAndUnknownAreNoops(t *testing.T) {
	next, changed := Reorder(DefaultSectionOrder(), SectionNews, SectionNews)
	assert.False(t, changed)
	assert.Equal(t, DefaultSectionOrder(), next)

	next, changed = Reorder(DefaultSectionOrder(), Section("weather"), SectionNews)
	assert.False(t, changed)
	assert.Equal(t, DefaultSectionOrder(), next)
}

func TestReorderAlwaysYieldsPermutation(t *testing.T) {
	for _, source := range defaultSectionOrder {
		for _, target := range defaultSectionOrder {
			next, _ := Reorder(DefaultSectionOrder(), source, target)
			if !next.IsPermutation() {
				t.Fatalf("reorder %s -> %s produced %v", source, target, next)
			}
		}
	}
}

func TestSectionOrderIsPermutation(t *testing.T) {
	assert.True(t, DefaultSectionOrder().IsPermutation())
	assert.False(t, SectionOrder{SectionBookings, SectionReviews, SectionMessages}.IsPermutation())
	assert.False(t, SectionOrder{SectionBookings, SectionBookings, SectionMessages, SectionNews}.IsPermutation())
	assert.False(t, SectionOrder{SectionBookings, SectionReviews, SectionMessages, "weather"}.IsPermutation())
}
