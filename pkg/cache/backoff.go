package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable reports that a remote cache backend could not be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as worth another attempt. A nil error stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err: err}
}

// IsTransient reports whether err, or anything it wraps, was marked by
// [Transient].
func IsTransient(err error) bool {
	var t transientError
	return errors.As(err, &t)
}

// Backoff repeats an operation with a delay that doubles after every
// transient failure.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// ConnectBackoff is used to verify a new Redis connection.
var ConnectBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds, fails permanently or runs out of attempts.
// At least one call is always made. Waiting between calls ends early with
// ctx.Err() once ctx is done.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsTransient(err) || attempt >= b.Attempts {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
