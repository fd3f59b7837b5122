package submitter

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
)

// BreakerSettings tunes the circuit breaker guarding the ledger.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  5,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker wraps a Submitter in a circuit breaker so a failing ledger stops
// receiving submissions until it recovers.
type Breaker struct {
	inner Submitter
	cb    *gobreaker.CircuitBreaker[*Result]
}

func NewBreaker(inner Submitter, settings BreakerSettings) *Breaker {
	return &Breaker{
		inner: inner,
		cb: gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
			Name:        inner.Name(),
			MaxRequests: settings.MaxRequests,
			Interval:    settings.Interval,
			Timeout:     settings.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= settings.MinRequests && failureRatio >= settings.FailureRatio
			},
		}),
	}
}

func (b *Breaker) Name() string { return b.inner.Name() }

func (b *Breaker) Submit(ctx context.Context, req Request) (*Result, error) {
	res, err := b.cb.Execute(func() (*Result, error) {
		return b.inner.Submit(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, domainErrors.NewDomainError("ledger_unavailable", "circuit breaker open for "+b.inner.Name(), domainErrors.ErrSubmitterUnavailable)
		}
		return nil, err
	}
	return res, nil
}

// State exposes the underlying breaker state for metrics.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
