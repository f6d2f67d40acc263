package catalog

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// AttachReview returns a copy of booking carrying review. The rating is
// clamped to MinRating..MaxRating; the original booking is left untouched.
func AttachReview(booking Booking, review Review) Booking {
	review.Rating = min(max(review.Rating, MinRating), MaxRating)
	out := booking
	out.Review = &review
	return out
}

// Reviewable reports whether a guest can leave feedback for booking.
func Reviewable(booking Booking) bool {
	return booking.Status == BookingCompleted && booking.Review == nil
}

// Reviews returns the bookings that carry a review, in input order.
func Reviews(bookings []Booking) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Review != nil {
			out = append(out, b)
		}
	}
	return out
}
