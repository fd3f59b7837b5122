package submitter

import (
	"context"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
)

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	inner := NewSimulatedLedger("ledger", WithLatency(time.Millisecond))
	b := NewBreaker(inner, DefaultBreakerSettings())

	res, err := b.Submit(context.Background(), testRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reference)
	assert.Equal(t, "ledger", b.Name())
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_OpensAfterRepeatedFailures(t *testing.T) {
	inner := NewSimulatedLedger("ledger",
		WithLatency(time.Millisecond),
		WithFailureRate(1.0),
	)
	settings := DefaultBreakerSettings()
	settings.MinRequests = 3
	settings.FailureRatio = 0.5
	b := NewBreaker(inner, settings)

	for i := 0; i < 3; i++ {
		_, err := b.Submit(context.Background(), testRequest())
		assert.ErrorIs(t, err, domainErrors.ErrSubmissionFailed)
	}

	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Submit(context.Background(), testRequest())
	assert.ErrorIs(t, err, domainErrors.ErrSubmitterUnavailable)
}
