package llm

import (
	"context"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/sirupsen/logrus"
)

// ResilientProvider guards a provider with a circuit breaker and a
// concurrency limit. Once a provider keeps failing, callers get a
// KindUnavailable error immediately instead of waiting on retries.
type ResilientProvider struct {
	inner   Provider
	name    string
	breaker circuitbreaker.CircuitBreaker[*Response]
	limit   bulkhead.Bulkhead[*Response]
}

// WithResilience wraps p according to cfg. Disabled features are skipped;
// with both disabled p is returned unchanged.
func WithResilience(p Provider, name string, cfg ResilienceConfig, log logrus.FieldLogger) Provider {
	if cfg.FailureThreshold <= 0 && cfg.MaxConcurrent <= 0 {
		return p
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	rp := &ResilientProvider{inner: p, name: name}

	if cfg.FailureThreshold > 0 {
		threshold := cfg.FailureThreshold
		rp.breaker = circuitbreaker.New[*Response](circuitbreaker.Config{
			MaxRequests: 1,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return int(counts.ConsecutiveFailures) >= threshold
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				log.WithFields(logrus.Fields{
					"provider": name,
					"from":     from.String(),
					"to":       to.String(),
				}).Warn("circuit breaker state change")
			},
		})
	}

	if cfg.MaxConcurrent > 0 {
		rp.limit = bulkhead.New[*Response](bulkhead.Config{
			MaxConcurrent: cfg.MaxConcurrent,
			MaxQueue:      cfg.MaxConcurrent * 2,
		})
	}

	return rp
}

func (r *ResilientProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	operation := func(ctx context.Context) (*Response, error) {
		return r.inner.Generate(ctx, req)
	}

	if r.limit != nil {
		inner := operation
		operation = func(ctx context.Context) (*Response, error) {
			return r.limit.Execute(ctx, inner)
		}
	}

	if r.breaker == nil {
		return operation(ctx)
	}

	resp, err := r.breaker.Execute(ctx, operation)
	if err != nil && !IsUpstream(err) && ctx.Err() == nil {
		// Breaker and bulkhead rejections carry no provider error.
		return nil, &Error{Kind: KindUnavailable, Provider: r.name, Err: err}
	}
	return resp, err
}

func (r *ResilientProvider) ModelID() string {
	return r.inner.ModelID()
}
