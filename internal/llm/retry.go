package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider re-sends requests that failed for transient reasons.
// Schema mismatches get a single second chance since resampling usually
// fixes them; truncation never does.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps p with cfg's retry policy.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	wait := r.cfg.InitialWait
	invalidSeen := false
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil || !Retryable(err) || attempt >= r.cfg.MaxAttempts {
			return resp, err
		}
		if kind, _ := KindOf(err); kind == KindInvalidResponse {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}

		pause := r.pause(wait, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < pause {
			// Sleeping would outlive the caller.
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pause):
		}
		wait = time.Duration(float64(wait) * r.cfg.Multiplier)
		if r.cfg.MaxWait > 0 {
			wait = min(wait, r.cfg.MaxWait)
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// pause is the jittered backoff, or the provider's Retry-After when it
// sent one.
func (r *RetryProvider) pause(wait time.Duration, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	if wait <= 0 {
		return 0
	}
	// +/-20%
	return wait + time.Duration(float64(wait)*0.4*(rand.Float64()-0.5))
}
