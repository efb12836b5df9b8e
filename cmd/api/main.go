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

	"github.com/zatekoja/Claimsadministration/internal/adapters/cache"
	"github.com/zatekoja/Claimsadministration/internal/adapters/database"
	"github.com/zatekoja/Claimsadministration/internal/adapters/events"
	"github.com/zatekoja/Claimsadministration/internal/api/handlers"
	"github.com/zatekoja/Claimsadministration/internal/api/middleware"
	"github.com/zatekoja/Claimsadministration/internal/api/routes"
	"github.com/zatekoja/Claimsadministration/internal/application/services"
	"github.com/zatekoja/Claimsadministration/internal/domain/providers"
	"github.com/zatekoja/Claimsadministration/internal/eligibility"
	"github.com/zatekoja/Claimsadministration/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/Claimsadministration/internal/infrastructure/clients/redis"
	"github.com/zatekoja/Claimsadministration/internal/infrastructure/observability"
	"github.com/zatekoja/Claimsadministration/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize adapters
	memberAdapter := database.NewMemberAdapter(pgClient)
	policyAdapter := database.NewPolicyAdapter(pgClient)
	claimAdapter := database.NewClaimAdapter(pgClient)
	preAuthAdapter := database.NewPreAuthAdapter(pgClient)
	auditAdapter := database.NewAuditAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time status updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Build the rule engine from configuration
	engine := eligibility.NewDefaultEngine(eligibility.RuleConfig{
		AmountLimitHard:        cfg.Eligibility.AmountLimitHard,
		CountLimitHard:         cfg.Eligibility.CountLimitHard,
		WaitingPeriodReference: eligibility.WaitingPeriodReference(cfg.Eligibility.WaitingPeriodReference),
	})

	// Initialize services
	eligibilityService := services.NewEligibilityService(
		memberAdapter,
		policyAdapter,
		claimAdapter,
		cacheProvider,
		engine,
		auditAdapter,
	)
	claimService := services.NewClaimService(claimAdapter, preAuthAdapter, eligibilityService, auditAdapter, eventBus)
	preAuthService := services.NewPreAuthService(preAuthAdapter, eligibilityService, auditAdapter, eventBus)

	// Sweep overdue approved pre-authorizations into EXPIRED on a timer;
	// expiry never happens implicitly inside the state machine
	sweepInterval := time.Duration(cfg.PreAuth.ExpirySweepSeconds) * time.Second
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				expired, err := preAuthService.ExpireOverdue(ctx, now)
				if err != nil {
					log.Printf("Pre-authorization expiry sweep failed: %v", err)
					continue
				}
				if expired > 0 {
					log.Printf("Expired %d overdue pre-authorizations", expired)
				}
			}
		}
	}()

	// Initialize handlers
	eligibilityHandler := handlers.NewEligibilityHandler(eligibilityService, auditAdapter)
	claimHandler := handlers.NewClaimHandler(claimService, auditAdapter)
	preAuthHandler := handlers.NewPreAuthHandler(preAuthService, auditAdapter)
	memberHandler := handlers.NewMemberHandler(memberAdapter, policyAdapter)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		eligibilityHandler,
		claimHandler,
		preAuthHandler,
		memberHandler,
		sseHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
