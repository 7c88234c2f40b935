package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/farishtaa/carefinder/internal/adapters/cache"
	"github.com/farishtaa/carefinder/internal/adapters/database"
	"github.com/farishtaa/carefinder/internal/adapters/providers/geodata"
	"github.com/farishtaa/carefinder/internal/adapters/search"
	"github.com/farishtaa/carefinder/internal/api/handlers"
	"github.com/farishtaa/carefinder/internal/api/routes"
	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/providers"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/gemini"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/postgres"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/redis"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/typesense"
	"github.com/farishtaa/carefinder/internal/infrastructure/observability"
	"github.com/farishtaa/carefinder/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// PostgreSQL is the system of record; the process cannot run without it.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; without it enrichment dedup and the categories
	// cache are skipped.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Typesense is optional; without it suggestions return empty.
	var suggestionIndex repositories.PractitionerIndexRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, suggestions disabled")
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		suggestionIndex = adapter
		log.Info().Msg("Typesense client initialized")
	}

	// Adapters
	doctorAdapter := database.NewDoctorAdapter(pgClient)
	hospitalAdapter := database.NewHospitalAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	triageAdapter := database.NewTriageAdapter(pgClient)

	overpassProvider := geodata.NewOverpassProvider(
		cfg.Overpass.URL,
		time.Duration(cfg.Overpass.TimeoutSeconds)*time.Second,
	)

	// Services
	enrichmentService := services.NewEnrichmentService(overpassProvider, hospitalAdapter, suggestionIndex, metrics)
	searchService := services.NewSearchService(doctorAdapter, hospitalAdapter, userAdapter, cacheProvider, enrichmentService, metrics)
	reviewService := services.NewReviewService(doctorAdapter, hospitalAdapter, userAdapter, reviewAdapter)
	directoryService := services.NewDirectoryService(doctorAdapter, hospitalAdapter, userAdapter, reviewAdapter, suggestionIndex, cacheProvider)
	dashboardService := services.NewDashboardService(userAdapter, reviewAdapter)

	var triageHandler *handlers.TriageHandler
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; triage chat disabled")
	} else {
		geminiClient, err := gemini.NewClient(&cfg.Gemini)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize Gemini client, triage chat disabled")
		} else {
			triageService := services.NewTriageService(triageAdapter, userAdapter, geminiClient)
			triageHandler = handlers.NewTriageHandler(triageService)
			log.Info().Msg("Gemini client initialized")
		}
	}

	// Handlers and router
	router := routes.NewRouter(
		handlers.NewSearchHandler(searchService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewPractitionerHandler(directoryService),
		handlers.NewDashboardHandler(dashboardService),
		triageHandler,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
