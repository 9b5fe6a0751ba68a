package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careseek/booking-backend/internal/adapters/cache"
	"github.com/careseek/booking-backend/internal/adapters/database"
	"github.com/careseek/booking-backend/internal/adapters/providers/scheduling"
	"github.com/careseek/booking-backend/internal/adapters/search"
	"github.com/careseek/booking-backend/internal/api/handlers"
	"github.com/careseek/booking-backend/internal/api/routes"
	"github.com/careseek/booking-backend/internal/application/services"
	"github.com/careseek/booking-backend/internal/domain/providers"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/postgres"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/redis"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/typesense"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/upstream"
	"github.com/careseek/booking-backend/internal/infrastructure/observability"
	"github.com/careseek/booking-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize Redis client
	var store providers.StoreProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Redis client; using in-memory store")
		store = cache.NewMemoryAdapter()
	} else {
		defer redisClient.Close()
		store = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized successfully")
	}

	// Initialize Typesense client
	var searchRepo repositories.ServiceSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Typesense client; search disabled")
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
		logger.Info().Msg("Typesense client initialized successfully")
	}

	// Initialize adapters
	baseServiceAdapter := database.NewServiceAdapter(pgClient)
	var serviceAdapter repositories.ServiceRepository
	if redisClient != nil {
		serviceAdapter = database.NewCachedServiceAdapter(baseServiceAdapter, store)
		logger.Info().Msg("service adapter wrapped with caching layer")
	} else {
		serviceAdapter = baseServiceAdapter
	}

	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)

	// Initialize scheduling provider
	var upstreamClient *upstream.Client
	if baseURL := cfg.Upstream.ActiveBaseURL(cfg.Env); baseURL != "" {
		upstreamClient = upstream.NewClient(baseURL, cfg.Upstream.UserAgent)
	}
	schedulingProvider := scheduling.NewInstrumentedProvider(
		scheduling.NewSchedulingProvider(scheduling.ProviderConfig{
			Provider:          cfg.Booking.Provider,
			Client:            upstreamClient,
			AllowMockFallback: cfg.Env != "production",
		}),
		metrics,
	)

	// Initialize services
	catalogService := services.NewCatalogService(serviceAdapter, searchRepo)
	bookingService := services.NewBookingService(
		serviceAdapter,
		appointmentAdapter,
		schedulingProvider,
		store,
		cfg.Booking.ScreenTTL,
	)
	authService := services.NewAuthService(
		userAdapter,
		store,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		cfg.Auth.SessionTTL,
	)
	currencyService := services.NewCurrencyService(store)

	// Initialize handlers
	serviceHandler := handlers.NewServiceHandler(catalogService)
	filterHandler := handlers.NewFilterHandler()
	bookingHandler := handlers.NewBookingHandler(bookingService)
	authHandler := handlers.NewAuthHandler(authService)
	currencyHandler := handlers.NewCurrencyHandler(currencyService)
	localeHandler := handlers.NewLocaleHandler()

	// Set up router
	router := routes.NewRouter(
		serviceHandler,
		filterHandler,
		bookingHandler,
		authHandler,
		currencyHandler,
		localeHandler,
		authService,
		metrics,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
