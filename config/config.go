package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Token describes the single instrument this deployment serves
type Token struct {
	Symbol  string `yaml:"symbol"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Network string `yaml:"network"`
}

// ProvidersConfig holds settings for the external price providers
type ProvidersConfig struct {
	JupiterBaseURL     string `yaml:"jupiter_base_url"`
	DexScreenerBaseURL string `yaml:"dexscreener_base_url"`
	BirdeyeBaseURL     string `yaml:"birdeye_base_url"`
	BirdeyeAPIKey      string `yaml:"birdeye_api_key"`

	// RequestTimeout bounds each provider call; the fallback chain is the
	// only retry mechanism, there are no per-provider retries
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// RateLimitPerMinute limits outbound requests per provider (0 disables)
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

// ResolverConfig holds price resolution settings
type ResolverConfig struct {
	// PriceTTL is how long a resolved price is served from cache (0 disables caching)
	PriceTTL time.Duration `yaml:"price_ttl"`

	// RefreshInterval drives the background price warm-refresh (0 disables)
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// ChartConfig holds chart rendering settings
type ChartConfig struct {
	WidthPx  int `yaml:"width_px"`
	HeightPx int `yaml:"height_px"`
	DPI      int `yaml:"dpi"`
}

// Messages holds the user-facing reply strings the caller maps errors to
type Messages struct {
	InvalidTimeframe      string `yaml:"invalid_timeframe"`
	PriceFetchFailed      string `yaml:"price_fetch_failed"`
	ChartGenerationFailed string `yaml:"chart_generation_failed"`
}

type Config struct {
	Port      string          `yaml:"port"`
	Token     Token           `yaml:"token"`
	Providers ProvidersConfig `yaml:"providers"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Chart     ChartConfig     `yaml:"chart"`
	Messages  Messages        `yaml:"messages"`
}

// DefaultConfig returns the configuration used when no file overrides it
func DefaultConfig() *Config {
	return &Config{
		Port: "8080",
		Token: Token{
			Symbol:  "ROCKET",
			Name:    "CRYPTOROCKET",
			Address: "79V4Gu6UetViCNwHd8hRHpUxwkanxk2L5VVowB5AJRXz",
			Network: "solana",
		},
		Providers: ProvidersConfig{
			JupiterBaseURL:     "https://price.jup.ag",
			DexScreenerBaseURL: "https://api.dexscreener.com",
			BirdeyeBaseURL:     "https://public-api.birdeye.so",
			RequestTimeout:     10 * time.Second,
			RateLimitPerMinute: 30,
		},
		Resolver: ResolverConfig{
			PriceTTL:        30 * time.Second,
			RefreshInterval: 5 * time.Minute,
		},
		Chart: ChartConfig{
			WidthPx:  1200,
			HeightPx: 800,
			DPI:      150,
		},
		Messages: Messages{
			InvalidTimeframe:      "Invalid timeframe. Use: 1d, 7d, 30d, 90d, 1y",
			PriceFetchFailed:      "Could not fetch price data. Please try again later.",
			ChartGenerationFailed: "Failed to generate chart. Please try again later.",
		},
	}
}

// LoadConfig reads configuration from the given YAML file, falling back to
// defaults when the file is missing. Fields unset in the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: config file %s not found, using defaults", path)
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Token.Address == "" {
		return fmt.Errorf("token address is required")
	}
	if c.Providers.RequestTimeout <= 0 {
		return fmt.Errorf("providers request_timeout must be positive")
	}
	if c.Chart.WidthPx <= 0 || c.Chart.HeightPx <= 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}
	return nil
}
