package commands

import (
	"context"
	"time"

	"parcel/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// DefaultMaxRetries bounds how often a command re-runs after losing an optimistic-lock race.
const DefaultMaxRetries = 3

// retryOnStaleVersion runs op until it succeeds, fails with anything but a stale version,
// runs out of retries or ctx is done. op must begin and finish its own unit of work, so
// every attempt reloads fresh state.
func retryOnStaleVersion(ctx context.Context, maxRetries uint64, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 10 * time.Millisecond
	policy.MaxInterval = 200 * time.Millisecond

	return backoff.Retry(func() error {
		err := op()
		if err == nil || errs.IsRetryableConflict(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
}
