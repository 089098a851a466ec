package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "ROCKET", cfg.Token.Symbol)
	assert.Equal(t, "solana", cfg.Token.Network)
	assert.Equal(t, 10*time.Second, cfg.Providers.RequestTimeout)
	assert.Equal(t, "https://price.jup.ag", cfg.Providers.JupiterBaseURL)
	assert.Equal(t, 1200, cfg.Chart.WidthPx)
	assert.Equal(t, 150, cfg.Chart.DPI)
	assert.NotEmpty(t, cfg.Messages.InvalidTimeframe)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: "9090"
token:
  symbol: MOON
  address: "SomeAddress111"
providers:
  request_timeout: 5s
  birdeye_api_key: secret
resolver:
  price_ttl: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "MOON", cfg.Token.Symbol)
	assert.Equal(t, "SomeAddress111", cfg.Token.Address)
	assert.Equal(t, 5*time.Second, cfg.Providers.RequestTimeout)
	assert.Equal(t, "secret", cfg.Providers.BirdeyeAPIKey)
	assert.Equal(t, 10*time.Second, cfg.Resolver.PriceTTL)

	// Untouched fields keep their defaults
	assert.Equal(t, "https://api.dexscreener.com", cfg.Providers.DexScreenerBaseURL)
	assert.Equal(t, 800, cfg.Chart.HeightPx)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty token address",
			content: `
token:
  address: ""
`,
		},
		{
			name: "non-positive timeout",
			content: `
providers:
  request_timeout: 0s
`,
		},
		{
			name: "zero chart width",
			content: `
chart:
  width_px: 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not: valid"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
