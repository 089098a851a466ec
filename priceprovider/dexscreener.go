package priceprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rockettoken/chartbot/config"
	"github.com/rockettoken/chartbot/metrics"
)

const dexScreenerTokensPath = "/latest/dex/tokens"

// DexScreenerClient fetches prices from the DexScreener token pairs API
type DexScreenerClient struct {
	baseURL      string
	tokenAddress string
	httpClient   *HTTPClient
}

// dexScreenerResponse maps the DexScreener token payload; priceUsd is a
// decimal string
type dexScreenerResponse struct {
	Pairs []struct {
		PriceUsd string `json:"priceUsd"`
	} `json:"pairs"`
}

// NewDexScreenerClient creates a DexScreener price client for the configured token
func NewDexScreenerClient(cfg *config.Config) *DexScreenerClient {
	opts := DefaultClientOptions()
	opts.RequestTimeout = cfg.Providers.RequestTimeout
	opts.RateLimitPerMinute = cfg.Providers.RateLimitPerMinute

	return &DexScreenerClient{
		baseURL:      cfg.Providers.DexScreenerBaseURL,
		tokenAddress: cfg.Token.Address,
		httpClient:   NewHTTPClient(opts, metrics.NewMetricsWriter(metrics.ProviderDexScreener)),
	}
}

func (c *DexScreenerClient) Name() string { return metrics.ProviderDexScreener }

func (c *DexScreenerClient) FetchPrice(ctx context.Context) (float64, error) {
	reqURL := fmt.Sprintf("%s%s/%s", c.baseURL, dexScreenerTokensPath, c.tokenAddress)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}

	body, _, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}

	var parsed dexScreenerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("parsing DexScreener response: %w", err)
	}

	if len(parsed.Pairs) == 0 {
		return 0, fmt.Errorf("no pairs in DexScreener response for %s", c.tokenAddress)
	}

	price, err := strconv.ParseFloat(parsed.Pairs[0].PriceUsd, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing DexScreener priceUsd %q: %w", parsed.Pairs[0].PriceUsd, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("DexScreener returned non-positive price %v", price)
	}

	return price, nil
}
