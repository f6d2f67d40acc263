package dashboard

// Reorder moves source to the position target occupied before the move.
// The target index is taken from the original order, then source is removed
// and reinserted at that index. Dragging downward therefore lands source after
// target, dragging upward lands it before target. Self-drops and unknown
// sections return the order unchanged with changed=false.
func Reorder(order SectionOrder, source, target Section) (SectionOrder, bool) {
	next := order.Clone()
	if source == target {
		return next, false
	}
	from := next.Index(source)
	to := next.Index(target)
	if from < 0 || to < 0 {
		return next, false
	}
	next = append(next[:from], next[from+1:]...)
	if to > len(next) {
		to = len(next)
	}
	next = append(next, "")
	copy(next[to+1:], next[to:])
	next[to] = source
	return next, true
}
