package listview

import "testing"

func TestCursorAdvancesAndClamps(t *testing.T) {
	c := NewCursor(8)
	view := numbers(20)
	if got := Visible(view, c); got.Shown != 8 || !got.HasMore {
		t.Fatalf("unexpected initial window %+v", got)
	}
	c.More(len(view))
	if c.Count() != 16 {
		t.Fatalf("expected 16, got %d", c.Count())
	}
	c.More(len(view))
	if c.Count() != 20 {
		t.Fatalf("expected clamp to 20, got %d", c.Count())
	}
	c.More(len(view))
	if got := Visible(view, c); got.Shown != 20 || got.HasMore {
		t.Fatalf("unexpected final window %+v", got)
	}
	c.Reset()
	if c.Count() != 8 {
		t.Fatalf("expected reset to increment, got %d", c.Count())
	}
}

func TestCursorShortView(t *testing.T) {
	c := NewCursor(8)
	c.More(3)
	if c.Count() != 8 {
		t.Fatalf("cursor should not shrink below its increment, got %d", c.Count())
	}
	if got := Visible(numbers(3), c); got.Shown != 3 || got.HasMore {
		t.Fatalf("unexpected window %+v", got)
	}
}
