package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	authhandler "github.com/de-tools/decision-simulator/pkg/handlers/auth"
	"github.com/de-tools/decision-simulator/pkg/handlers/health"
	scenariohandler "github.com/de-tools/decision-simulator/pkg/handlers/scenario"
	simulationhandler "github.com/de-tools/decision-simulator/pkg/handlers/simulation"
	"github.com/de-tools/decision-simulator/pkg/metrics"
	simmiddleware "github.com/de-tools/decision-simulator/pkg/server/middleware"
	"github.com/de-tools/decision-simulator/pkg/services/auth"
	"github.com/de-tools/decision-simulator/pkg/services/scenario"
	"github.com/de-tools/decision-simulator/pkg/services/simulation"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Logger    zerolog.Logger
	Projector simulation.Projector
	Scenarios scenario.Service
	Auth      *auth.Service
	Validator *validation.Validator
	// Metrics and Gatherer are optional; /metrics is only mounted with a Gatherer.
	Metrics  *metrics.Recorder
	Gatherer prometheus.Gatherer
}

type Config struct {
	Addr            string
	AppName         string
	APIPrefix       string
	WebSocketRoute  string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	validator := deps.Validator
	if validator == nil {
		validator = validation.New()
	}

	healthHandler := health.NewHandler(config.AppName, config.WebSocketRoute)
	simHandler := simulationhandler.NewHandler(deps.Projector, validator, deps.Metrics, config.AllowedOrigins)
	scenarioHandler := scenariohandler.NewHandler(deps.Scenarios, validator, deps.Metrics)
	authHandler := authhandler.NewHandler(deps.Auth, validator)
	requireBearer := simmiddleware.RequireBearer(deps.Auth)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(simmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		router.Use(simmiddleware.Metrics(deps.Metrics))
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/", healthHandler.Index)
	router.Get(config.WebSocketRoute, simHandler.ServeWS)
	if deps.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route(config.APIPrefix, func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", scenarioHandler.List)
			r.Post("/run", simHandler.Run)
			r.Get("/{id}", scenarioHandler.Get)
			r.Post("/{id}/run", scenarioHandler.RunByID)

			r.Group(func(r chi.Router) {
				r.Use(requireBearer)
				r.Post("/", scenarioHandler.Create)
				r.Delete("/{id}", scenarioHandler.Delete)
			})
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	logger := config.Dependencies.Logger
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           ConfigureRouter(config),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
