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

const jupiterPricePath = "/v6/price"

// JupiterClient fetches prices from the Jupiter price API
type JupiterClient struct {
	baseURL      string
	tokenAddress string
	httpClient   *HTTPClient
}

// jupiterResponse maps the Jupiter /v6/price payload: prices are keyed
// by token address under "data"
type jupiterResponse struct {
	Data map[string]struct {
		Price float64 `json:"price"`
	} `json:"data"`
}

// NewJupiterClient creates a Jupiter price client for the configured token
func NewJupiterClient(cfg *config.Config) *JupiterClient {
	opts := DefaultClientOptions()
	opts.RequestTimeout = cfg.Providers.RequestTimeout
	opts.RateLimitPerMinute = cfg.Providers.RateLimitPerMinute

	return &JupiterClient{
		baseURL:      cfg.Providers.JupiterBaseURL,
		tokenAddress: cfg.Token.Address,
		httpClient:   NewHTTPClient(opts, metrics.NewMetricsWriter(metrics.ProviderJupiter)),
	}
}

func (c *JupiterClient) Name() string { return metrics.ProviderJupiter }

func (c *JupiterClient) FetchPrice(ctx context.Context) (float64, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, jupiterPricePath,
		url.Values{"ids": {c.tokenAddress}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}

	body, _, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}

	var parsed jupiterResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("parsing Jupiter response: %w", err)
	}

	entry, ok := parsed.Data[c.tokenAddress]
	if !ok {
		return 0, fmt.Errorf("token %s missing from Jupiter response", c.tokenAddress)
	}
	if entry.Price <= 0 {
		return 0, fmt.Errorf("Jupiter returned non-positive price %v", entry.Price)
	}

	return entry.Price, nil
}
