package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/suppscan/backend/config"
	httpDelivery "github.com/suppscan/backend/internal/delivery/http"
	"github.com/suppscan/backend/internal/domain"
	"github.com/suppscan/backend/internal/infrastructure/cache"
	"github.com/suppscan/backend/internal/infrastructure/openfoodfacts"
	"github.com/suppscan/backend/internal/infrastructure/openrouter"
	"github.com/suppscan/backend/internal/infrastructure/postgres"
	"github.com/suppscan/backend/internal/usecase"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Load .env for local development; in production everything comes
	// from real environment variables
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SuppScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	offClient := openfoodfacts.NewClient(
		cfg.OpenFoodFacts.BaseURL,
		cfg.OpenFoodFacts.UserAgent,
		cfg.OpenFoodFacts.RequestsPerHour,
	)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		offClient.SetDebug(true)
		log.Printf("OpenFoodFacts client debug mode enabled")
	}
	log.Printf("OpenFoodFacts API configured: %s (%d req/h)",
		cfg.OpenFoodFacts.BaseURL, cfg.OpenFoodFacts.RequestsPerHour)

	orClient := openrouter.NewClient(cfg.OpenRouter.APIKey, cfg.OpenRouter.BaseURL, cfg.OpenRouter.Model)
	if cfg.OpenRouter.APIKey != "" {
		log.Printf("OpenRouter API configured: model=%s (key: %s...)",
			cfg.OpenRouter.Model, maskKey(cfg.OpenRouter.APIKey))
	} else {
		log.Printf("WARNING: OpenRouter API key not set - evaluations will use mock results")
	}

	// The hosted database is optional: without it the secondary product
	// source and the evaluation log are simply disabled.
	var secondary domain.SecondaryProductSource
	var store domain.EvaluationStore
	if cfg.Database.URL != "" {
		db, err := sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		pgStore := postgres.NewStore(db)
		secondary = pgStore
		store = pgStore
		log.Printf("Database configured: product fallback and evaluation log enabled")
	} else {
		log.Printf("Database not configured: running without product fallback and evaluation log")
	}

	// Initialize usecase layer
	lookupService := usecase.NewLookupService(offClient, secondary)
	evaluationService := usecase.NewEvaluationService(orClient, store, usecase.EvaluationServiceConfig{
		MinIngredientLength: cfg.Evaluator.MinIngredientLength,
		MockFallback:        cfg.Evaluator.MockFallback,
	})
	scanService := usecase.NewScanService(memoryCache, lookupService, evaluationService, usecase.ScanServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	})

	log.Printf("Evaluator: min_ingredient_length=%d, mock_fallback=%v",
		cfg.Evaluator.MinIngredientLength, cfg.Evaluator.MockFallback)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(scanService, lookupService, evaluationService, store)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// maskKey returns a short prefix of an API key safe to log
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:8]
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
