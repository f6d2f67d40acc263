package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestSimulatedResolvesAfterLatency(t *testing.T) {
	defer goleak.VerifyNone(t)

	op := NewSimulated(5*time.Millisecond, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	future := op.Submit(context.Background(), 21)
	got, err := future.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	select {
	case <-future.Done():
	default:
		t.Fatalf("expected Done to be closed after Wait")
	}
}

func TestSimulatedCancelledBeforeLatency(t *testing.T) {
	defer goleak.VerifyNone(t)

	called := make(chan struct{}, 1)
	op := NewSimulated(time.Hour, func(context.Context, string) (string, error) {
		called <- struct{}{}
		return "late", nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	future := op.Submit(ctx, "req")
	cancel()
	<-future.Done()
	if _, err := future.Wait(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	select {
	case <-called:
		t.Fatalf("operation body must not run after cancellation")
	default:
	}
}

func TestFutureWaitHonoursCallerContext(t *testing.T) {
	future, resolve := NewFuture[int]()
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	if _, err := future.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	resolve(7, nil)
	resolve(8, errors.New("ignored"))
	got, err := future.Wait(context.Background())
	if err != nil || got != 7 {
		t.Fatalf("expected first resolution to win, got %d %v", got, err)
	}
}

func TestResolvedIsImmediatelyDone(t *testing.T) {
	boom := errors.New("boom")
	_, err := Resolved(0, boom).Wait(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
