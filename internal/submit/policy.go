package submit

import (
	"context"
	"math"
	"time"
)

// Policy is the retry schedule, kept apart from the transport so it can be
// unit-tested against a scripted sequence of statuses.
type Policy struct {
	// MaxRetries is the number of re-sends after the first attempt.
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier float64

	// Sleep is the wait hook between attempts; tests replace it to record
	// delays instead of waiting them out.
	Sleep func(ctx context.Context, d time.Duration) error
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		Multiplier: 2,
	}
}

// Delay returns the backoff before the retry following attempt (0-based):
// BaseDelay × Multiplier^attempt.
func (p Policy) Delay(attempt int) time.Duration {
	return time.Duration(float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt)))
}

func (p Policy) wait(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
