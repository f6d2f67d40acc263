package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-travelboard/components/auth"
	"github.com/goliatone/go-travelboard/components/listview"
)

// DefaultBookingLatency is the simulated round trip for a booking submission.
const DefaultBookingLatency = 1500 * time.Millisecond

// ErrInvalidBooking is returned for incomplete or inconsistent booking forms.
var ErrInvalidBooking = errors.New("catalog: invalid booking request")

// BookingRequest is the booking modal form.
type BookingRequest struct {
	Hotel    string `json:"hotel"`
	City     string `json:"city"`
	Country  string `json:"country"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
	Email    string `json:"email"`
}

// Confirmation is returned once a booking is accepted.
type Confirmation struct {
	Code    string  `json:"code" yaml:"code"`
	Booking Booking `json:"booking" yaml:"booking"`
}

// Validate checks the form before it is submitted.
func (r BookingRequest) Validate() error {
	var problems []string
	if strings.TrimSpace(r.Hotel) == "" {
		problems = append(problems, "hotel is required")
	}
	if r.Guests < 1 {
		problems = append(problems, "at least one guest is required")
	}
	in, okIn := listview.ParseDate(r.CheckIn)
	out, okOut := listview.ParseDate(r.CheckOut)
	switch {
	case !okIn || !okOut:
		problems = append(problems, "check-in and check-out dates are required")
	case !out.After(in):
		problems = append(problems, "check-out must be after check-in")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBooking, strings.Join(problems, "; "))
	}
	return nil
}

// NewBookingSubmitter returns the simulated booking backend. Invalid forms
// resolve immediately with ErrInvalidBooking.
func NewBookingSubmitter(latency time.Duration) auth.Operation[BookingRequest, Confirmation] {
	return bookingSubmitter{delayed: auth.NewSimulated(latency, confirmBooking)}
}

type bookingSubmitter struct {
	delayed auth.Operation[BookingRequest, Confirmation]
}

func (b bookingSubmitter) Submit(ctx context.Context, req BookingRequest) *auth.Future[Confirmation] {
	if err := req.Validate(); err != nil {
		return auth.Resolved(Confirmation{}, err)
	}
	return b.delayed.Submit(ctx, req)
}

func confirmBooking(_ context.Context, req BookingRequest) (Confirmation, error) {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return Confirmation{
		Code: "TB-" + code,
		Booking: Booking{
			ID:       "BK-" + code,
			Hotel:    req.Hotel,
			City:     req.City,
			Country:  req.Country,
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
			Guests:   req.Guests,
			Status:   BookingUpcoming,
		},
	}, nil
}
