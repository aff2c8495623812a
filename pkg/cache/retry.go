package cache

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/matzehuels/tagplacer/pkg/errors"
)

// ErrNetwork is in the chain of every error caused by an unreachable backend.
var ErrNetwork = stderrors.New("cache backend unreachable")

// unreachableError is a failed backend command that may succeed on retry.
type unreachableError struct {
	op  string
	key string
	err error
}

// unreachable records that op on key failed to reach the backend.
func unreachable(op, key string, err error) error {
	return &unreachableError{op: op, key: key, err: err}
}

func (e *unreachableError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.op, e.key, e.err)
}

func (e *unreachableError) Unwrap() []error { return []error{ErrNetwork, e.err} }

// IsTransient reports whether err came from an unreachable backend.
func IsTransient(err error) bool {
	var u *unreachableError
	return stderrors.As(err, &u)
}

// backoff is a bounded exponential retry schedule.
type backoff struct {
	attempts int
	delay    time.Duration
	maxDelay time.Duration
}

// defaultBackoff waits 1s, then 2s, for three attempts in total.
var defaultBackoff = backoff{attempts: 3, delay: time.Second, maxDelay: 4 * time.Second}

// run calls fn until it succeeds or fails with a non-transient error. When
// every attempt is transient the last failure is returned as NETWORK_ERROR.
func (b backoff) run(ctx context.Context, fn func() error) error {
	delay := b.delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt >= b.attempts {
			return errors.Wrap(errors.ErrCodeNetwork, err, "cache unreachable after %d attempts", attempt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, b.maxDelay)
	}
}
