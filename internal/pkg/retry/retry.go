// Package retry re-runs operations that failed for transient reasons,
// with exponential backoff.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retry loop. MaxAttempts counts the first call.
type Policy struct {
	MaxAttempts     uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
	}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0

	retries := uint64(0)
	if p.MaxAttempts > 1 {
		retries = p.MaxAttempts - 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, retries), ctx)
}

// IsTransient reports whether err is worth another attempt. Business
// outcomes (not found, validation, forbidden, conflicts, declines) and
// context cancellation are final.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	switch errs.KindOf(err) {
	case errs.KindUpstreamUnavailable, errs.KindInternal:
		return true
	case errs.KindNotFound,
		errs.KindForbidden,
		errs.KindInvalidState,
		errs.KindInvalidTransition,
		errs.KindConflict,
		errs.KindValidation,
		errs.KindUpstreamDeclined:
	}
	return false
}

// Do calls op until it succeeds, fails permanently, or the policy is
// exhausted. A permanent error is returned unwrapped; a cancelled context
// ends the loop with the context error.
func Do[T any](ctx context.Context, p Policy, logger *slog.Logger, op func(context.Context) (T, error)) (T, error) {
	attempt := 0
	return backoff.RetryNotifyWithData(
		func() (T, error) {
			attempt++
			v, err := op(ctx)
			if err != nil && !IsTransient(err) {
				return v, backoff.Permanent(err)
			}
			return v, err
		},
		p.backOff(ctx),
		func(err error, wait time.Duration) {
			if logger != nil {
				logger.WarnContext(ctx, "retrying after transient failure",
					"attempt", attempt, "wait", wait, "error", err)
			}
		},
	)
}
