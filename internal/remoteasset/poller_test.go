package remoteasset

import (
	"context"
	"errors"
	"testing"
	"time"

	"overdub/internal/services"
)

// fakeClock advances by a fixed step every time the poller sleeps.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.now = c.now.Add(d)
	return nil
}

func newTestPoller(clock *fakeClock, maxWait time.Duration) *Poller {
	return NewPoller(
		WithInterval(10*time.Second),
		WithMaxWait(maxWait),
		WithClock(clock.Now),
		WithSleeper(clock.Sleep),
	)
}

func TestWaitUntilActiveAfterOneRequery(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	poller := newTestPoller(clock, time.Minute)

	queries := 0
	query := func(ctx context.Context, name string) (Handle, error) {
		queries++
		return Handle{Name: name, State: StateActive}, nil
	}

	handle, err := poller.WaitUntilActive(context.Background(), Handle{Name: "files/abc", State: StatePending}, query)
	if err != nil {
		t.Fatalf("WaitUntilActive: %v", err)
	}
	if handle.State != StateActive {
		t.Fatalf("expected active handle, got %+v", handle)
	}
	if queries != 1 {
		t.Fatalf("expected exactly one re-query, got %d", queries)
	}
}

func TestWaitUntilActiveAlreadyActive(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	poller := newTestPoller(clock, time.Minute)

	query := func(ctx context.Context, name string) (Handle, error) {
		t.Fatal("query must not run for an already-active handle")
		return Handle{}, nil
	}

	if _, err := poller.WaitUntilActive(context.Background(), Handle{Name: "files/abc", State: StateActive}, query); err != nil {
		t.Fatalf("WaitUntilActive: %v", err)
	}
}

func TestWaitUntilActiveTimeout(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	poller := newTestPoller(clock, 25*time.Second)

	queries := 0
	query := func(ctx context.Context, name string) (Handle, error) {
		queries++
		return Handle{Name: name, State: StatePending}, nil
	}

	_, err := poller.WaitUntilActive(context.Background(), Handle{Name: "files/abc", State: StatePending}, query)
	if !errors.Is(err, services.ErrAssetTimeout) {
		t.Fatalf("expected ErrAssetTimeout, got %v", err)
	}
	if errors.Is(err, services.ErrAssetFailed) {
		t.Fatal("timeout must stay distinct from remote-reported failure")
	}
	// 25s budget with 10s interval: queries at t=10s and t=20s, then the
	// t=30s check exceeds the deadline.
	if queries != 3 {
		t.Fatalf("expected 3 queries before timeout, got %d", queries)
	}
}

func TestWaitUntilActiveFailedImmediately(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	poller := newTestPoller(clock, time.Hour)

	query := func(ctx context.Context, name string) (Handle, error) {
		t.Fatal("failed state must be reported without re-query")
		return Handle{}, nil
	}

	start := clock.Now()
	_, err := poller.WaitUntilActive(context.Background(), Handle{Name: "files/abc", State: StateFailed}, query)
	if !errors.Is(err, services.ErrAssetFailed) {
		t.Fatalf("expected ErrAssetFailed, got %v", err)
	}
	if !clock.Now().Equal(start) {
		t.Fatal("failure must be reported without waiting out the budget")
	}
}

func TestWaitUntilActiveFailedAfterRequery(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	poller := newTestPoller(clock, time.Hour)

	query := func(ctx context.Context, name string) (Handle, error) {
		return Handle{Name: name, State: StateFailed}, nil
	}

	_, err := poller.WaitUntilActive(context.Background(), Handle{Name: "files/abc", State: StatePending}, query)
	if !errors.Is(err, services.ErrAssetFailed) {
		t.Fatalf("expected ErrAssetFailed, got %v", err)
	}
}

func TestWaitUntilActiveQueryError(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	poller := newTestPoller(clock, time.Minute)

	boom := errors.New("connection reset")
	query := func(ctx context.Context, name string) (Handle, error) {
		return Handle{}, boom
	}

	_, err := poller.WaitUntilActive(context.Background(), Handle{Name: "files/abc", State: StatePending}, query)
	if !errors.Is(err, boom) {
		t.Fatalf("expected query error to propagate, got %v", err)
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
}

func TestWaitUntilActiveMissingQuery(t *testing.T) {
	poller := NewPoller()
	_, err := poller.WaitUntilActive(context.Background(), Handle{State: StatePending}, nil)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
