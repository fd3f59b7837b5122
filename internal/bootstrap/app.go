package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/bancoademi/transfers/internal/directory"
	"github.com/bancoademi/transfers/internal/infrastructure/config"
	"github.com/bancoademi/transfers/internal/infrastructure/observability"
	"github.com/bancoademi/transfers/internal/submitter"
	"github.com/bancoademi/transfers/pkg/retry"
)

type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Metrics *observability.Metrics
	Loader  *directory.Loader
	Ledger  submitter.Submitter
}

func New(ctx context.Context, serviceName string, metricsNamespace string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info().Str("service", serviceName).Msg("Starting")

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(serviceName, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			go func() {
				<-ctx.Done()
				observability.Shutdown(context.Background(), tp)
			}()
			logger.Info().Msg("Tracing enabled")
		}
	}

	metrics := observability.NewMetrics(metricsNamespace, nil)
	logger.Info().Msg("Metrics initialized")

	source := newSource(cfg, logger)
	loader := directory.NewLoader(source, logger)

	ledger := submitter.NewBreaker(
		submitter.NewSimulatedLedger(cfg.Submission.LedgerName,
			submitter.WithLatency(cfg.Submission.Latency),
			submitter.WithFailureRate(cfg.Submission.FailureRate),
			submitter.WithTimeoutRate(cfg.Submission.TimeoutRate),
		),
		submitter.BreakerSettings{
			MaxRequests:  5,
			Interval:     cfg.Submission.CircuitBreakerInterval,
			Timeout:      cfg.Submission.CircuitBreakerTimeout,
			MinRequests:  cfg.Submission.CircuitBreakerRequests,
			FailureRatio: cfg.Submission.CircuitBreakerRatio,
		},
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Loader:  loader,
		Ledger:  ledger,
	}, nil
}

func newSource(cfg *config.Config, logger zerolog.Logger) directory.Source {
	if cfg.Directory.Mode == "http" {
		return directory.NewHTTPSource(
			cfg.Directory.AccountsURL,
			cfg.Directory.BeneficiariesURL,
			&http.Client{Timeout: cfg.Directory.FetchTimeout},
			retry.Config{
				MaxAttempts:  cfg.Directory.RetryAttempts,
				InitialDelay: cfg.Directory.RetryDelay,
				MaxDelay:     cfg.Directory.FetchTimeout,
				OnRetry: func(attempt uint, err error) {
					logger.Warn().Err(err).Uint("attempt", attempt).Msg("directory fetch retry")
				},
			},
		)
	}
	return directory.NewFileSource(cfg.Directory.AccountsPath, cfg.Directory.BeneficiariesPath)
}
