package priceresolver

import (
	"fmt"
	"time"
)

// PricePoint is a single sample of the price history
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
}

// PriceSeries is an ordered sequence of price points, strictly increasing
// by timestamp and ending at the resolved current price
type PriceSeries []PricePoint

// Timeframe is a supported chart window token
type Timeframe string

const (
	Timeframe1D  Timeframe = "1d"
	Timeframe7D  Timeframe = "7d"
	Timeframe30D Timeframe = "30d"
	Timeframe90D Timeframe = "90d"
	Timeframe1Y  Timeframe = "1y"
)

// TimeframeSpec maps a timeframe to its generation parameters
type TimeframeSpec struct {
	// Points is the exact number of samples in the series
	Points int
	// Interval is the spacing between consecutive samples
	Interval time.Duration
	// Volatility is the half-width of the per-step relative price change
	Volatility float64
}

// timeframeTable is the fixed configuration for all supported timeframes
var timeframeTable = map[Timeframe]TimeframeSpec{
	Timeframe1D:  {Points: 24, Interval: time.Hour, Volatility: 0.02},
	Timeframe7D:  {Points: 168, Interval: time.Hour, Volatility: 0.03},
	Timeframe30D: {Points: 30, Interval: 24 * time.Hour, Volatility: 0.05},
	Timeframe90D: {Points: 90, Interval: 24 * time.Hour, Volatility: 0.07},
	Timeframe1Y:  {Points: 365, Interval: 24 * time.Hour, Volatility: 0.10},
}

// ParseTimeframe validates a timeframe token. Matching is case-sensitive:
// "1D" is rejected, only the exact tokens 1d, 7d, 30d, 90d, 1y are accepted.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if _, ok := timeframeTable[tf]; !ok {
		return "", fmt.Errorf("unsupported timeframe %q", s)
	}
	return tf, nil
}

// Spec returns the generation parameters for the timeframe
func (tf Timeframe) Spec() TimeframeSpec {
	return timeframeTable[tf]
}

// String implements fmt.Stringer
func (tf Timeframe) String() string {
	return string(tf)
}

// Timeframes returns all supported timeframes in ascending window order
func Timeframes() []Timeframe {
	return []Timeframe{Timeframe1D, Timeframe7D, Timeframe30D, Timeframe90D, Timeframe1Y}
}
