package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseWait   = 1 * time.Second
)

// Option configures a call to Do.
type Option func(*options)

type options struct {
	maxRetries int
	baseWait   time.Duration
}

// WithMaxRetries sets the total number of attempts.
func WithMaxRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithBaseWait sets the wait before the second attempt. Subsequent
// waits double, with jitter.
func WithBaseWait(d time.Duration) Option {
	return func(o *options) { o.baseWait = d }
}

// Do runs f until it succeeds, the attempts are exhausted, or it
// returns an error marked permanent. The wait between attempts grows
// exponentially with 10% jitter and respects context cancellation.
func Do(ctx context.Context, f func() error, opts ...Option) error {
	o := &options{
		maxRetries: DefaultMaxRetries,
		baseWait:   DefaultBaseWait,
	}
	for _, opt := range opts {
		opt(o)
	}

	var lastErr error
	for attempt := 0; attempt < o.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(float64(o.baseWait) * math.Pow(2, float64(attempt-1)))
			jitter := time.Duration(rand.Float64() * float64(backoff) * 0.1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}
		err := f()
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err
	}
	var rec *recoverableError
	if errors.As(lastErr, &rec) {
		return rec.err
	}
	return lastErr
}

type recoverableError struct {
	err error
}

func (e *recoverableError) Error() string { return e.err.Error() }

func (e *recoverableError) Unwrap() error { return e.err }

// NewRecoverableError marks an error as explicitly recoverable.
func NewRecoverableError(err error) error {
	return &recoverableError{err: err}
}

// IsRecoverable reports whether err was marked with NewRecoverableError.
func IsRecoverable(err error) bool {
	var rec *recoverableError
	return errors.As(err, &rec)
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// MarkPermanent wraps err so that Do gives up immediately.
func MarkPermanent(err error) error {
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with MarkPermanent.
func IsPermanent(err error) bool {
	var perm *permanentError
	return errors.As(err, &perm)
}
