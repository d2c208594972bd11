package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"property-marketplace/internal/config"
	"property-marketplace/internal/fixtures"
	"property-marketplace/internal/handlers"
	"property-marketplace/internal/kvstore"
	"property-marketplace/internal/listing"
	"property-marketplace/internal/ratelimit"
	"property-marketplace/internal/scheduler"
	"property-marketplace/internal/search"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Failed to load .env: %v", err)
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "/app/config/marketplace.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	ctx := context.Background()
	var sources []listing.Source

	// Primary listing store
	store, closeStore, err := openListingStore(appConfig)
	if err != nil {
		log.Fatalf("Failed to open listing store: %v", err)
	}
	defer closeStore()
	if store != nil {
		sources = append(sources, store)
	}

	// Key-value store: leads, KV listings and the result cache
	var (
		kvClient *kvstore.Client
		cache    *kvstore.ResultCache
		stores   handlers.Stores
	)
	if appConfig.Redis.Enabled {
		kvClient, err = kvstore.NewClient(ctx,
			getEnvOrConfig(appConfig.Redis.Addr, "REDIS_ADDR", "localhost:6379"),
			getEnvOrConfig(appConfig.Redis.Password, "REDIS_PASSWORD", ""),
			appConfig.Redis.DB,
		)
		if err != nil {
			log.Printf("Warning: Redis unavailable, lead capture and caching disabled: %v", err)
		} else {
			defer kvClient.Close()
			sources = append(sources, kvstore.NewListingSource(kvClient))
			cache = kvstore.NewResultCache(kvClient, "cache:listings", appConfig.Redis.CacheTTL())
			stores = handlers.NewStores(kvClient)
		}
	}

	if appConfig.Fixtures.Enabled {
		sources = append(sources, fixtures.NewSource(time.Now()))
		log.Printf("Static listings enabled (%d)", len(fixtures.Folders))
	}

	svc := listing.NewService(sources...)
	if cache != nil {
		svc.WithCache(cache)
	}

	// Search index and scheduled reindex
	var (
		searchClient *search.SearchClient
		appScheduler *scheduler.Scheduler
	)
	rateLimiter := ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)

	if appConfig.Search.Enabled {
		searchClient = search.NewSearchClient(
			getEnvOrConfig(appConfig.Search.Meilisearch.Host, "MEILISEARCH_HOST", "http://meilisearch:7700"),
			getEnvOrConfig(appConfig.Search.Meilisearch.APIKey, "MEILISEARCH_KEY", ""),
		)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		}
		svc.WithIndex(search.NewGuardedIndex(searchClient, search.NewCircuitBreaker(3, time.Minute)))

		appScheduler = scheduler.NewScheduler(svc, scheduler.Config{
			DailyRunEnabled: appConfig.Search.DailyRunEnabled,
			DailyRunTime:    appConfig.Search.DailyRunTime,
			PruneInterval:   appConfig.RateLimit.PruneInterval(),
		}, rateLimiter)
		if err := appScheduler.Start(); err != nil {
			log.Printf("Warning: Failed to start scheduler: %v", err)
		}
		defer appScheduler.Stop()

		if appConfig.Search.ReindexOnStartup {
			go func() {
				if err := appScheduler.RunNow(); err != nil {
					log.Printf("Warning: Startup reindex failed: %v", err)
				}
			}()
		}
	}

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", healthCheck)

	routes := handlers.Routes{
		Listings:   handlers.NewListingHandler(svc),
		Limiter:    rateLimiter,
		AdminToken: getEnvOrConfig(appConfig.Server.AdminToken, "ADMIN_TOKEN", ""),
	}
	if searchClient != nil {
		routes.Search = handlers.NewSearchHandler(searchClient)
	}
	if stores != nil {
		routes.Leads = handlers.NewLeadHandler(stores)
	}
	var jobs handlers.Jobs
	if appScheduler != nil {
		jobs = appScheduler
	}
	routes.Admin = handlers.NewAdminHandler(svc, stores, jobs)
	routes.Register(r)

	if routes.AdminToken == "" {
		log.Println("Warning: ADMIN_TOKEN not set, /api/admin is open")
	}

	port := getEnv("PORT", appConfig.Server.Port)
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-quit.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
