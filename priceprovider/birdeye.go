package priceprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rockettoken/chartbot/config"
	"github.com/rockettoken/chartbot/metrics"
)

const birdeyePricePath = "/defi/price"

// BirdeyeClient fetches prices from the Birdeye public API
type BirdeyeClient struct {
	baseURL      string
	tokenAddress string
	apiKey       string
	httpClient   *HTTPClient
}

// birdeyeResponse maps the Birdeye /defi/price payload
type birdeyeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Value float64 `json:"value"`
	} `json:"data"`
}

// NewBirdeyeClient creates a Birdeye price client for the configured token
func NewBirdeyeClient(cfg *config.Config) *BirdeyeClient {
	opts := DefaultClientOptions()
	opts.RequestTimeout = cfg.Providers.RequestTimeout
	opts.RateLimitPerMinute = cfg.Providers.RateLimitPerMinute

	return &BirdeyeClient{
		baseURL:      cfg.Providers.BirdeyeBaseURL,
		tokenAddress: cfg.Token.Address,
		apiKey:       cfg.Providers.BirdeyeAPIKey,
		httpClient:   NewHTTPClient(opts, metrics.NewMetricsWriter(metrics.ProviderBirdeye)),
	}
}

func (c *BirdeyeClient) Name() string { return metrics.ProviderBirdeye }

func (c *BirdeyeClient) FetchPrice(ctx context.Context) (float64, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, birdeyePricePath,
		url.Values{"address": {c.tokenAddress}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	body, _, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}

	var parsed birdeyeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("parsing Birdeye response: %w", err)
	}

	if !parsed.Success {
		return 0, fmt.Errorf("Birdeye response not successful for %s", c.tokenAddress)
	}
	if parsed.Data.Value <= 0 {
		return 0, fmt.Errorf("Birdeye returned non-positive price %v", parsed.Data.Value)
	}

	return parsed.Data.Value, nil
}
