package priceresolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/rockettoken/chartbot/cache"
	"github.com/rockettoken/chartbot/config"
	"github.com/rockettoken/chartbot/metrics"
	"github.com/rockettoken/chartbot/priceprovider"
	"github.com/rockettoken/chartbot/scheduler"
)

// ErrPriceNotFound is returned when every provider in the chain failed
var ErrPriceNotFound = errors.New("price not available from any provider")

const priceCacheKey = "price:current"

// Service resolves the current price through an ordered provider chain and
// synthesizes price history anchored to it
type Service struct {
	config    *config.Config
	providers []priceprovider.Provider
	cache     cache.Cache
	generator *HistoryGenerator
	refresher *scheduler.Scheduler

	successfulFetch atomic.Bool
}

// NewService creates a resolver over the given providers, tried in order.
// cache may be nil to disable price caching.
func NewService(cfg *config.Config, providers []priceprovider.Provider, c cache.Cache) *Service {
	s := &Service{
		config:    cfg,
		providers: providers,
		cache:     c,
		generator: NewHistoryGenerator(),
	}

	if cfg.Resolver.RefreshInterval > 0 {
		s.refresher = scheduler.New(cfg.Resolver.RefreshInterval, func(ctx context.Context) {
			if _, err := s.CurrentPrice(ctx); err != nil {
				log.Printf("Resolver: warm refresh failed: %v", err)
			}
		})
	}

	return s
}

// SetHistoryGenerator replaces the history generator, used by tests to
// inject a seeded random source
func (s *Service) SetHistoryGenerator(g *HistoryGenerator) {
	s.generator = g
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if len(s.providers) == 0 {
		return fmt.Errorf("no price providers configured")
	}
	if s.refresher != nil {
		s.refresher.Start(ctx, true)
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.refresher != nil {
		s.refresher.Stop()
	}
}

// Healthy reports whether at least one resolution has succeeded
func (s *Service) Healthy() bool {
	return s.successfulFetch.Load()
}

// CurrentPrice returns the first strictly positive price produced by the
// provider chain. Provider failures are soft: they are logged and the chain
// advances. When every provider fails the result is ErrPriceNotFound.
func (s *Service) CurrentPrice(ctx context.Context) (float64, error) {
	start := time.Now()

	if price, ok := s.cachedPrice(); ok {
		metrics.RecordResolution("cache", start)
		return price, nil
	}

	for _, provider := range s.providers {
		price, err := provider.FetchPrice(ctx)
		if err != nil {
			log.Printf("Resolver: provider %s failed: %v", provider.Name(), err)
			continue
		}

		log.Printf("Resolver: provider %s returned price %v", provider.Name(), price)
		s.successfulFetch.Store(true)
		s.storePrice(price)
		metrics.RecordResolution(provider.Name(), start)
		return price, nil
	}

	log.Printf("Resolver: all %d providers failed", len(s.providers))
	metrics.RecordResolution("not_found", start)
	return 0, ErrPriceNotFound
}

// PriceHistory resolves the current price and generates a synthetic series
// for the timeframe. Without a base price no series is generated and
// ErrPriceNotFound propagates.
func (s *Service) PriceHistory(ctx context.Context, tf Timeframe) (PriceSeries, error) {
	currentPrice, err := s.CurrentPrice(ctx)
	if err != nil {
		return nil, err
	}

	return s.generator.Generate(tf, currentPrice), nil
}

// TokenInfo returns the configured instrument
func (s *Service) TokenInfo() config.Token {
	return s.config.Token
}

func (s *Service) cachedPrice() (float64, bool) {
	if s.cache == nil || s.config.Resolver.PriceTTL <= 0 {
		return 0, false
	}

	payload, found := s.cache.Get(priceCacheKey)
	if !found {
		return 0, false
	}

	var price float64
	if err := json.Unmarshal(payload, &price); err != nil {
		return 0, false
	}
	return price, true
}

func (s *Service) storePrice(price float64) {
	if s.cache == nil || s.config.Resolver.PriceTTL <= 0 {
		return
	}

	payload, err := json.Marshal(price)
	if err != nil {
		return
	}
	s.cache.Set(priceCacheKey, payload, s.config.Resolver.PriceTTL)
}
