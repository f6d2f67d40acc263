package catalog

import "testing"

func TestPostsByCategory(t *testing.T) {
	posts := mustCatalog(t).Posts
	if got := len(PostsByCategory(posts, "all")); got != len(posts) {
		t.Fatalf("expected every post, got %d", got)
	}
	for _, p := range PostsByCategory(posts, "tips") {
		if p.Category != CategoryTips {
			t.Fatalf("unexpected category %s", p.Category)
		}
	}
	if got := len(PostsByCategory(posts, "destinations")); got != 3 {
		t.Fatalf("expected 3 destination posts, got %d", got)
	}
}

func TestRelatedPostsExcludesSelf(t *testing.T) {
	posts := mustCatalog(t).Posts
	post, ok := FindPost(posts, "post-1")
	if !ok {
		t.Fatalf("post-1 not found")
	}
	related := RelatedPosts(posts, post, 0)
	if len(related) != 2 {
		t.Fatalf("expected 2 related posts, got %d", len(related))
	}
	for _, p := range related {
		if p.ID == post.ID || p.Category != post.Category {
			t.Fatalf("unexpected related post %+v", p)
		}
	}
	if got := RelatedPosts(posts, post, 1); len(got) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
	if _, ok := FindPost(posts, "post-404"); ok {
		t.Fatalf("expected missing post")
	}
}

func TestUnreadMessages(t *testing.T) {
	if got := UnreadMessages(mustCatalog(t).Messages); got != 6 {
		t.Fatalf("expected 6 unread messages, got %d", got)
	}
}

func TestReviewsAndClamp(t *testing.T) {
	bookings := mustCatalog(t).Bookings
	if got := len(Reviews(bookings)); got != 4 {
		t.Fatalf("expected 4 reviewed bookings, got %d", got)
	}
	low := AttachReview(Booking{ID: "x"}, Review{Rating: -3})
	if low.Review.Rating != MinRating {
		t.Fatalf("expected rating clamped to %d, got %d", MinRating, low.Review.Rating)
	}
}
