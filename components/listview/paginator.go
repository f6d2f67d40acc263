package listview

// Page is the paginator window over a filtered view.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"page"`
	Size       int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// TotalPages returns max(1, ceil(total/size)).
func TotalPages(total, size int) int {
	size = normalizeSize(size)
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ClampPage bounds page to [1, TotalPages(total, size)].
func ClampPage(page, total, size int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(total, size); page > last {
		return last
	}
	return page
}

// Paginate returns the window of view for the requested page. Out of range
// pages clamp to the nearest boundary.
func Paginate[T any](view []T, size, page int) Page[T] {
	size = normalizeSize(size)
	total := len(view)
	page = ClampPage(page, total, size)
	pages := TotalPages(total, size)
	start := (page - 1) * size
	end := min(start+size, total)
	items := make([]T, 0, end-start)
	if start < end {
		items = append(items, view[start:end]...)
	}
	return Page[T]{
		Items:      items,
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
}

func normalizeSize(size int) int {
	if size < 1 {
		return 1
	}
	return size
}
