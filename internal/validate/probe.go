package validate

import (
	"context"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// AvailabilityProbe runs interactive email-availability checks. Two hazards
// make this more than a plain call:
//
//   - a user can leave the email field twice in quick succession; only the
//     result of the most recent check may reach the error state, so every
//     check is tagged with a sequence number and stale results report
//     themselves as superseded;
//   - each check is one server round trip, so rapid re-checks are throttled
//     with a rate limiter rather than fired per keystroke.
type AvailabilityProbe struct {
	checker EmailChecker
	limiter *rate.Limiter
	seq     atomic.Uint64
}

// NewAvailabilityProbe wraps checker with an rps-limited, sequence-tagged
// probe. rps <= 0 disables throttling.
func NewAvailabilityProbe(checker EmailChecker, rps float64) *AvailabilityProbe {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &AvailabilityProbe{
		checker: checker,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Check verifies that email is still available. It returns the validation
// message ("" when the address is free) and whether the result is current:
// when a newer check started while this one was in flight, current is false
// and the caller must discard the message.
func (p *AvailabilityProbe) Check(ctx context.Context, email string) (msg string, current bool) {
	id := p.seq.Add(1)

	if err := p.limiter.Wait(ctx); err != nil {
		return msgEmailCheckFailed, p.seq.Load() == id
	}

	exists, err := p.checker.CheckEmail(ctx, email)
	switch {
	case err != nil:
		// The check itself is not retried; the user is asked to retry.
		msg = msgEmailCheckFailed
	case exists:
		msg = msgEmailTaken
	}
	return msg, p.seq.Load() == id
}
