package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	OpenFoodFacts OpenFoodFactsConfig
	OpenRouter    OpenRouterConfig
	Evaluator     EvaluatorConfig
	Database      DatabaseConfig
	Cache         CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenFoodFactsConfig holds OpenFoodFacts API configuration
type OpenFoodFactsConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	UserAgent       string `mapstructure:"user_agent"`
	RequestsPerHour int    `mapstructure:"requests_per_hour"`
}

// OpenRouterConfig holds LLM-gateway configuration. An empty APIKey is
// allowed: the evaluator then runs in mock-only mode.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// EvaluatorConfig holds evaluation policy configuration
type EvaluatorConfig struct {
	MinIngredientLength int  `mapstructure:"min_ingredient_length"`
	MockFallback        bool `mapstructure:"mock_fallback"`
}

// DatabaseConfig holds the optional secondary database configuration.
// When URL is empty the database fallback and evaluation log are disabled.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/suppscan/")

	// Environment variable settings
	v.SetEnvPrefix("SUPPSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// OpenFoodFacts defaults
	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org/api/v2")
	v.SetDefault("openfoodfacts.user_agent", "SuppScan/1.0")
	v.SetDefault("openfoodfacts.requests_per_hour", 1000)

	// OpenRouter defaults
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "meta-llama/llama-3-8b-instruct")

	// Evaluator defaults. The minimum ingredient length gates whether a
	// product has enough text to be worth sending to the model.
	v.SetDefault("evaluator.min_ingredient_length", 20)
	v.SetDefault("evaluator.mock_fallback", true)

	// Cache defaults
	v.SetDefault("cache.ttl", "720h") // 30 days
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenFoodFacts.BaseURL == "" {
		return fmt.Errorf("OpenFoodFacts base URL is required")
	}

	if config.Evaluator.MinIngredientLength < 0 {
		return fmt.Errorf("evaluator.min_ingredient_length must be >= 0, got: %d",
			config.Evaluator.MinIngredientLength)
	}

	if config.OpenRouter.Model == "" {
		return fmt.Errorf("OpenRouter model is required")
	}

	if config.OpenRouter.APIKey == "" && !config.Evaluator.MockFallback {
		return fmt.Errorf("mock fallback is disabled but no OpenRouter API key is set (set SUPPSCAN_OPENROUTER_API_KEY)")
	}

	return nil
}
