package priceresolver

import (
	"math/rand"
	"sync"
	"time"
)

// History generation bounds relative to the resolved current price
const (
	startRangeLow  = 0.85
	startRangeHigh = 1.15
	clampFloor     = 0.1
	clampCeil      = 3.0

	// convergenceWindow is the trailing fraction of the series where each
	// step is nudged toward the current price
	convergenceWindow = 0.2
	// convergenceGain is the fraction of the relative gap applied per step
	convergenceGain = 0.1

	volumeLow  = 1000.0
	volumeHigh = 10000.0
)

// HistoryGenerator synthesizes a plausible price path anchored to a known
// current price. No historical feed exists for the instrument, so the path
// is a bounded random walk: random start near the current price, timeframe-
// dependent per-step volatility, and a hard anchor at the final point so
// the chart endpoint always matches the displayed price.
type HistoryGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewHistoryGenerator creates a generator seeded from the current time
func NewHistoryGenerator() *HistoryGenerator {
	return NewHistoryGeneratorWithSource(rand.NewSource(time.Now().UnixNano()), time.Now)
}

// NewHistoryGeneratorWithSource creates a generator with an injected random
// source and clock so tests can pin exact sequences
func NewHistoryGeneratorWithSource(src rand.Source, now func() time.Time) *HistoryGenerator {
	return &HistoryGenerator{
		rng: rand.New(src),
		now: now,
	}
}

// Generate builds a series for the timeframe ending at the current price.
// Post-conditions hold for any random source: exact point count from the
// timeframe table, strictly ascending timestamps ending at now, every price
// within [0.1x, 3.0x] of currentPrice, and the final price exactly equal
// to currentPrice.
func (g *HistoryGenerator) Generate(tf Timeframe, currentPrice float64) PriceSeries {
	spec := tf.Spec()
	now := g.now().UTC()

	g.mu.Lock()
	defer g.mu.Unlock()

	series := make(PriceSeries, spec.Points)
	convergenceStart := int(float64(spec.Points) * (1 - convergenceWindow))

	price := currentPrice * (startRangeLow + g.rng.Float64()*(startRangeHigh-startRangeLow))
	for i := 0; i < spec.Points; i++ {
		if i > 0 {
			delta := (g.rng.Float64()*2 - 1) * spec.Volatility
			if i >= convergenceStart {
				delta += convergenceGain * (currentPrice - price) / price
			}
			price *= 1 + delta
		}
		price = clamp(price, currentPrice*clampFloor, currentPrice*clampCeil)

		series[i] = PricePoint{
			Timestamp: now.Add(-time.Duration(spec.Points-1-i) * spec.Interval),
			Price:     price,
			Volume:    volumeLow + g.rng.Float64()*(volumeHigh-volumeLow),
		}
	}

	// Anchor: the endpoint must match the price shown elsewhere in replies
	series[spec.Points-1].Price = currentPrice

	return series
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
