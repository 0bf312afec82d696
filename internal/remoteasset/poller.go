package remoteasset

import (
	"context"
	"fmt"
	"time"

	"overdub/internal/services"
)

// State describes the remote service's view of an uploaded asset.
type State string

const (
	StatePending State = "pending"
	StateActive  State = "active"
	StateFailed  State = "failed"
)

// Handle is an opaque reference to an uploaded asset. The remote service owns
// the asset; callers only observe and re-query it.
type Handle struct {
	Name     string
	URI      string
	MIMEType string
	State    State
}

// StatusFunc re-queries the current handle for an asset name.
type StatusFunc func(ctx context.Context, name string) (Handle, error)

const (
	// DefaultInterval is the fixed delay between status queries. The wrapped
	// service's processing time is bounded and predictable, so a constant
	// interval beats backoff on latency without meaningful extra load.
	DefaultInterval = 10 * time.Second
	// DefaultMaxWait is the wall-clock budget for one asset to become active.
	DefaultMaxWait = 5 * time.Minute
)

// Poller blocks until an uploaded asset becomes active or is declared failed.
type Poller struct {
	interval time.Duration
	maxWait  time.Duration

	sleeper func(context.Context, time.Duration) error
	now     func() time.Time
}

// Option customizes the poller.
type Option func(*Poller)

// WithInterval overrides the fixed polling interval.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithMaxWait overrides the wall-clock budget.
func WithMaxWait(maxWait time.Duration) Option {
	return func(p *Poller) {
		if maxWait > 0 {
			p.maxWait = maxWait
		}
	}
}

// WithSleeper overrides how interval sleeps are performed (used in tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(p *Poller) {
		if sleeper != nil {
			p.sleeper = sleeper
		}
	}
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPoller constructs a poller with the supplied options.
func NewPoller(opts ...Option) *Poller {
	p := &Poller{
		interval: DefaultInterval,
		maxWait:  DefaultMaxWait,
		sleeper:  sleepCtx,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WaitUntilActive blocks until handle reaches the active state, re-querying
// via query at the fixed interval.
//
// An active handle is returned as success. A failed state is reported
// immediately with services.ErrAssetFailed — no point waiting out the budget
// once the remote side has given up. A handle still pending when the budget
// elapses yields services.ErrAssetTimeout, a distinct kind so callers can
// tell slow processing from remote rejection.
func (p *Poller) WaitUntilActive(ctx context.Context, handle Handle, query StatusFunc) (Handle, error) {
	if query == nil {
		return Handle{}, services.Wrap(services.ErrConfiguration, "transcribe", "wait for asset", "status query not provided", nil)
	}

	deadline := p.now().Add(p.maxWait)
	for {
		switch handle.State {
		case StateActive:
			return handle, nil
		case StateFailed:
			return Handle{}, services.Wrap(
				services.ErrAssetFailed, "transcribe", "wait for asset",
				fmt.Sprintf("remote service reported asset %q as failed", handle.Name), nil)
		}

		if p.now().After(deadline) {
			return Handle{}, services.Wrap(
				services.ErrAssetTimeout, "transcribe", "wait for asset",
				fmt.Sprintf("asset %q still %s after %s", handle.Name, handle.State, p.maxWait), nil)
		}

		if err := p.sleeper(ctx, p.interval); err != nil {
			return Handle{}, err
		}

		refreshed, err := query(ctx, handle.Name)
		if err != nil {
			return Handle{}, services.Wrap(
				services.ErrExternalTool, "transcribe", "wait for asset",
				fmt.Sprintf("query status of asset %q", handle.Name), err)
		}
		handle = refreshed
	}
}

func sleepCtx(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
