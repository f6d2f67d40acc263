package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestBookingSubmitterConfirms(t *testing.T) {
	defer goleak.VerifyNone(t)

	submit := NewBookingSubmitter(0)
	conf, err := submit.Submit(context.Background(), BookingRequest{
		Hotel:    "Canal House",
		City:     "Amsterdam",
		CheckIn:  "2026-06-01",
		CheckOut: "2026-06-04",
		Guests:   2,
	}).Wait(context.Background())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !strings.HasPrefix(conf.Code, "TB-") || len(conf.Code) != 11 {
		t.Fatalf("unexpected confirmation code %q", conf.Code)
	}
	if conf.Booking.Status != BookingUpcoming || conf.Booking.Guests != 2 {
		t.Fatalf("unexpected booking %+v", conf.Booking)
	}
}

func TestBookingSubmitterRejectsInvalidForm(t *testing.T) {
	submit := NewBookingSubmitter(DefaultBookingLatency)
	future := submit.Submit(context.Background(), BookingRequest{
		Hotel:    "Canal House",
		CheckIn:  "2026-06-04",
		CheckOut: "2026-06-01",
		Guests:   0,
	})
	select {
	case <-future.Done():
	default:
		t.Fatalf("invalid form must resolve without waiting for latency")
	}
	_, err := future.Wait(context.Background())
	if !errors.Is(err, ErrInvalidBooking) {
		t.Fatalf("expected ErrInvalidBooking, got %v", err)
	}
	if !strings.Contains(err.Error(), "check-out must be after check-in") {
		t.Fatalf("expected date problem in %v", err)
	}
}
