package submitter

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
)

// SimulatedLedger stands in for the real ledger service. It completes after a
// configurable latency and can be tuned to fail or time out a fraction of
// submissions.
type SimulatedLedger struct {
	name        string
	latency     time.Duration
	failureRate float64 // 0.0 to 1.0
	timeoutRate float64 // 0.0 to 1.0
	now         func() time.Time
}

type SimulatedLedgerOption func(*SimulatedLedger)

func WithLatency(d time.Duration) SimulatedLedgerOption {
	return func(s *SimulatedLedger) { s.latency = d }
}

func WithFailureRate(rate float64) SimulatedLedgerOption {
	return func(s *SimulatedLedger) { s.failureRate = rate }
}

func WithTimeoutRate(rate float64) SimulatedLedgerOption {
	return func(s *SimulatedLedger) { s.timeoutRate = rate }
}

// WithClock overrides the completion clock, for tests.
func WithClock(now func() time.Time) SimulatedLedgerOption {
	return func(s *SimulatedLedger) { s.now = now }
}

func NewSimulatedLedger(name string, opts ...SimulatedLedgerOption) *SimulatedLedger {
	s := &SimulatedLedger{
		name:    name,
		latency: 1500 * time.Millisecond,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *SimulatedLedger) Name() string { return s.name }

func (s *SimulatedLedger) Submit(ctx context.Context, req Request) (*Result, error) {
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if rand.Float64() < s.timeoutRate {
		return nil, domainErrors.ErrSubmitterTimeout
	}
	if rand.Float64() < s.failureRate {
		return nil, domainErrors.NewDomainError(
			"submission_failed",
			fmt.Sprintf("%s: simulated rejection for account %s", s.name, req.SourceAccountID),
			domainErrors.ErrSubmissionFailed,
		)
	}

	completedAt := s.now()
	return &Result{
		Reference:   NewReference(completedAt),
		CompletedAt: completedAt,
	}, nil
}

// NewReference builds an opaque per-transaction reference number: the
// completion year followed by the last eight digits of the epoch-millisecond
// timestamp.
func NewReference(at time.Time) string {
	millis := fmt.Sprintf("%d", at.UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("%d%s", at.Year(), millis)
}
