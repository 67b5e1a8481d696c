// Package handoff executes a composed checkout handoff: open the
// primary payment surface, wait out the follow-up delay, open the
// WhatsApp follow-up. The delay is tied to the caller's context, so
// tearing the session down cancels a pending follow-up instead of
// letting a stale message fire after the user has left.
package handoff

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"

	"github.com/mlde/checkout-api/internal/domain/order"
)

// ErrSubmitInFlight is returned when Dispatch is called while an
// earlier dispatch has not finished. The flag is a reentrancy guard
// against repeated submit clicks, not a queue.
var ErrSubmitInFlight = errors.New("submission already in progress")

// Opener opens a URL in a new browsing context. Implementations range
// from a real browser launcher to a recording stub in tests.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// Dispatcher runs handoffs through an Opener, one at a time.
type Dispatcher struct {
	opener     Opener
	submitting atomic.Bool

	// after is injectable for tests; production uses time.After.
	after func(d time.Duration) <-chan time.Time
}

// NewDispatcher returns a Dispatcher using the given Opener.
func NewDispatcher(opener Opener) *Dispatcher {
	return &Dispatcher{
		opener: opener,
		after:  time.After,
	}
}

// Dispatch opens the handoff's primary URL, then the follow-up after
// its delay. Cancelling ctx during the delay suppresses the follow-up.
// The submit guard is released on every path, including opener failure.
func (d *Dispatcher) Dispatch(ctx context.Context, h *order.Handoff) error {
	if !d.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer d.submitting.Store(false)

	if err := d.opener.Open(ctx, h.Primary); err != nil {
		return errors.Wrap(err, "open primary surface")
	}

	if h.FollowUp == "" {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.after(h.FollowUpDelay):
	}

	if err := d.opener.Open(ctx, h.FollowUp); err != nil {
		return errors.Wrap(err, "open follow-up")
	}
	return nil
}
