package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bancoademi/transfers/internal/directory"
	"github.com/bancoademi/transfers/internal/infrastructure/config"
	"github.com/bancoademi/transfers/internal/infrastructure/observability"
	customMW "github.com/bancoademi/transfers/internal/middleware"
	"github.com/bancoademi/transfers/internal/submitter"
	"github.com/bancoademi/transfers/internal/workflow"
)

type RouterDeps struct {
	Loader        *directory.Loader
	Store         *workflow.Store
	Ledger        submitter.Submitter
	SessionUserID string
	Logger        zerolog.Logger
	Metrics       *observability.Metrics
	CORSConfig    config.CORSConfig
	EnableTracing bool
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if deps.EnableTracing {
		r.Use(customMW.Tracing())
	}
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Loader, deps.SessionUserID)
	catalogH := NewCatalogController(deps.Loader, deps.SessionUserID)
	transferH := NewTransferController(deps.Loader, deps.Store, deps.Ledger, deps.SessionUserID, deps.Logger, deps.Metrics)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Catalogs
		r.Get("/catalog/accounts", catalogH.Accounts)
		r.Get("/catalog/beneficiaries", catalogH.Beneficiaries)

		// Third-party transfer workflow
		r.Route("/transfers/third-party", func(r chi.Router) {
			r.Post("/", transferH.Start)
			r.Get("/{id}", transferH.Get)
			r.Patch("/{id}", transferH.Update)
			r.Post("/{id}/continue", transferH.Continue)
			r.Post("/{id}/back", transferH.Back)
			r.Post("/{id}/proceed", transferH.Proceed)
			r.Post("/{id}/reset", transferH.Reset)
		})
	})

	return r
}
