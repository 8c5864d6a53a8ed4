package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/decision-simulator/pkg/metrics"
	"github.com/de-tools/decision-simulator/pkg/server"
	"github.com/de-tools/decision-simulator/pkg/services/auth"
	"github.com/de-tools/decision-simulator/pkg/services/catalog"
	"github.com/de-tools/decision-simulator/pkg/services/config"
	"github.com/de-tools/decision-simulator/pkg/services/scenario"
	"github.com/de-tools/decision-simulator/pkg/services/simulation"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
	"github.com/de-tools/decision-simulator/pkg/store/sqlite"
	scenariostore "github.com/de-tools/decision-simulator/pkg/store/sqlite/scenario"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the Business Decision Simulator",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a settings file (yaml, toml or json); BDS_* environment variables override it")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	validator := validation.New()
	cat := catalog.Default()
	if settings.CatalogPath != "" {
		cat, err = catalog.Load(settings.CatalogPath, validator)
		if err != nil {
			return fmt.Errorf("failed to load scenario catalog: %w", err)
		}
		logger.Info().Str("path", settings.CatalogPath).Msg("scenario catalog loaded")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.NewRecorder("", registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	engine := simulation.NewEngine(settings.Engine)
	projector, err := simulation.NewCachedProjector(
		simulation.WithObserver(engine, recorder), settings.CacheSize, recorder)
	if err != nil {
		return fmt.Errorf("failed to create projector: %w", err)
	}

	var (
		db    *sql.DB
		store scenariostore.Store
	)
	if settings.DatabasePath != "" {
		db, err = sqlite.NewDB(ctx, sqlite.Settings{DbPath: settings.DatabasePath})
		if err != nil {
			return fmt.Errorf("failed to open SQLite database: %w", err)
		}
		defer db.Close()

		store, err = scenariostore.NewStore(db)
		if err != nil {
			return fmt.Errorf("failed to create scenario store: %w", err)
		}
	} else {
		logger.Warn().Msg("database_path is empty, saved scenarios are disabled")
	}

	scenarios, err := scenario.NewService(db, cat, store, projector)
	if err != nil {
		return fmt.Errorf("failed to create scenario service: %w", err)
	}

	authService, err := auth.NewService(auth.Config{
		Secret:    settings.JWTSecret,
		Algorithm: settings.JWTAlgorithm,
		TTL:       settings.AccessTokenTTL(),
	})
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	logger.Info().
		Str("database", settings.DatabasePath).
		Int("cache_size", settings.CacheSize).
		Int("catalog_size", len(cat.List(ctx))).
		Msg("simulator configured")

	web := server.NewWebAPI(server.Config{
		Addr:            settings.Addr,
		AppName:         settings.AppName,
		APIPrefix:       settings.APIPrefix,
		WebSocketRoute:  settings.WebSocketRoute,
		AllowedOrigins:  settings.AllowedOrigins,
		ShutdownTimeout: settings.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Logger:    logger,
			Projector: projector,
			Scenarios: scenarios,
			Auth:      authService,
			Validator: validator,
			Metrics:   recorder,
			Gatherer:  registry,
		},
	})
	return web.Start()
}
