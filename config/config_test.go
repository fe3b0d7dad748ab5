package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SUPPSCAN_SERVER_PORT")
		os.Unsetenv("SUPPSCAN_SERVER_ENVIRONMENT")
		os.Unsetenv("SUPPSCAN_OPENFOODFACTS_BASE_URL")
		os.Unsetenv("SUPPSCAN_OPENFOODFACTS_USER_AGENT")
		os.Unsetenv("SUPPSCAN_OPENROUTER_API_KEY")
		os.Unsetenv("SUPPSCAN_OPENROUTER_BASE_URL")
		os.Unsetenv("SUPPSCAN_OPENROUTER_MODEL")
		os.Unsetenv("SUPPSCAN_EVALUATOR_MIN_INGREDIENT_LENGTH")
		os.Unsetenv("SUPPSCAN_EVALUATOR_MOCK_FALLBACK")
		os.Unsetenv("SUPPSCAN_DATABASE_URL")
		os.Unsetenv("SUPPSCAN_CACHE_TTL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.OpenFoodFacts.BaseURL != "https://world.openfoodfacts.org/api/v2" {
			t.Errorf("OpenFoodFacts.BaseURL = %s, want https://world.openfoodfacts.org/api/v2", cfg.OpenFoodFacts.BaseURL)
		}
		if cfg.OpenFoodFacts.UserAgent != "SuppScan/1.0" {
			t.Errorf("OpenFoodFacts.UserAgent = %s, want SuppScan/1.0", cfg.OpenFoodFacts.UserAgent)
		}
		if cfg.OpenRouter.Model != "meta-llama/llama-3-8b-instruct" {
			t.Errorf("OpenRouter.Model = %s, want meta-llama/llama-3-8b-instruct", cfg.OpenRouter.Model)
		}
		if cfg.Evaluator.MinIngredientLength != 20 {
			t.Errorf("Evaluator.MinIngredientLength = %d, want 20", cfg.Evaluator.MinIngredientLength)
		}
		if !cfg.Evaluator.MockFallback {
			t.Error("Evaluator.MockFallback = false, want true")
		}
		if cfg.Database.URL != "" {
			t.Errorf("Database.URL = %s, want empty", cfg.Database.URL)
		}
		if cfg.Cache.TTL != 720*time.Hour {
			t.Errorf("Cache.TTL = %v, want 720h", cfg.Cache.TTL)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SUPPSCAN_SERVER_PORT", "9090")
		os.Setenv("SUPPSCAN_SERVER_ENVIRONMENT", "production")
		os.Setenv("SUPPSCAN_OPENFOODFACTS_BASE_URL", "https://off.example.com/api/v2")
		os.Setenv("SUPPSCAN_OPENROUTER_API_KEY", "sk-or-test-key")
		os.Setenv("SUPPSCAN_OPENROUTER_MODEL", "openai/gpt-4o-mini")
		os.Setenv("SUPPSCAN_EVALUATOR_MIN_INGREDIENT_LENGTH", "10")
		os.Setenv("SUPPSCAN_DATABASE_URL", "postgres://localhost:5432/suppscan")
		os.Setenv("SUPPSCAN_CACHE_TTL", "24h")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.OpenFoodFacts.BaseURL != "https://off.example.com/api/v2" {
			t.Errorf("OpenFoodFacts.BaseURL = %s, want https://off.example.com/api/v2", cfg.OpenFoodFacts.BaseURL)
		}
		if cfg.OpenRouter.APIKey != "sk-or-test-key" {
			t.Errorf("OpenRouter.APIKey = %s, want sk-or-test-key", cfg.OpenRouter.APIKey)
		}
		if cfg.OpenRouter.Model != "openai/gpt-4o-mini" {
			t.Errorf("OpenRouter.Model = %s, want openai/gpt-4o-mini", cfg.OpenRouter.Model)
		}
		if cfg.Evaluator.MinIngredientLength != 10 {
			t.Errorf("Evaluator.MinIngredientLength = %d, want 10", cfg.Evaluator.MinIngredientLength)
		}
		if cfg.Database.URL != "postgres://localhost:5432/suppscan" {
			t.Errorf("Database.URL = %s, want postgres://localhost:5432/suppscan", cfg.Database.URL)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
	})

	t.Run("fails when mock fallback disabled without API key", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SUPPSCAN_EVALUATOR_MOCK_FALLBACK", "false")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want validation error")
		}
	})

	t.Run("allows mock fallback disabled with API key", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SUPPSCAN_EVALUATOR_MOCK_FALLBACK", "false")
		os.Setenv("SUPPSCAN_OPENROUTER_API_KEY", "sk-or-test-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Evaluator.MockFallback {
			t.Error("Evaluator.MockFallback = true, want false")
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			OpenFoodFacts: OpenFoodFactsConfig{BaseURL: "https://world.openfoodfacts.org/api/v2"},
			OpenRouter:    OpenRouterConfig{Model: "meta-llama/llama-3-8b-instruct"},
			Evaluator:     EvaluatorConfig{MinIngredientLength: 20, MockFallback: true},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing OpenFoodFacts base URL",
			mutate:  func(c *Config) { c.OpenFoodFacts.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "negative min ingredient length",
			mutate:  func(c *Config) { c.Evaluator.MinIngredientLength = -1 },
			wantErr: true,
		},
		{
			name:    "missing model",
			mutate:  func(c *Config) { c.OpenRouter.Model = "" },
			wantErr: true,
		},
		{
			name: "no API key and no mock fallback",
			mutate: func(c *Config) {
				c.OpenRouter.APIKey = ""
				c.Evaluator.MockFallback = false
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
