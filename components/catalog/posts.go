package catalog

import "strings"

// PostsByCategory filters posts by category; "all" or blank returns every post.
func PostsByCategory(posts []Post, category string) []Post {
	category = strings.TrimSpace(category)
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if category == "" || strings.EqualFold(category, "all") || strings.EqualFold(string(p.Category), category) {
			out = append(out, p)
		}
	}
	return out
}

// FindPost looks up a post by id.
func FindPost(posts []Post, id string) (Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// RelatedPosts returns up to limit posts sharing the category of post,
// excluding post itself.
func RelatedPosts(posts []Post, post Post, limit int) []Post {
	var out []Post
	for _, p := range posts {
		if p.ID == post.ID || p.Category != post.Category {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// UnreadMessages counts messages not yet read.
func UnreadMessages(messages []Message) int {
	n := 0
	for _, m := range messages {
		if !m.Read {
			n++
		}
	}
	return n
}
