package priceresolver

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func seededGenerator(seed int64) *HistoryGenerator {
	return NewHistoryGeneratorWithSource(rand.NewSource(seed), fixedNow)
}

func TestGenerate_AllTimeframes(t *testing.T) {
	const currentPrice = 0.0042

	for _, tf := range Timeframes() {
		t.Run(tf.String(), func(t *testing.T) {
			g := seededGenerator(1)
			series := g.Generate(tf, currentPrice)
			spec := tf.Spec()

			// Exact point count from the timeframe table
			require.Len(t, series, spec.Points)

			// Strictly ascending timestamps ending at now
			for i := 1; i < len(series); i++ {
				assert.True(t, series[i].Timestamp.After(series[i-1].Timestamp),
					"timestamps must be strictly ascending at index %d", i)
				assert.Equal(t, spec.Interval, series[i].Timestamp.Sub(series[i-1].Timestamp))
			}
			assert.Equal(t, fixedNow(), series[len(series)-1].Timestamp)

			// Anchoring: endpoint matches the resolved price exactly
			assert.Equal(t, currentPrice, series[len(series)-1].Price)

			// Clamping and volume bounds hold at every index
			for i, point := range series {
				assert.GreaterOrEqual(t, point.Price, currentPrice*clampFloor, "index %d", i)
				assert.LessOrEqual(t, point.Price, currentPrice*clampCeil, "index %d", i)
				assert.GreaterOrEqual(t, point.Volume, volumeLow, "index %d", i)
				assert.LessOrEqual(t, point.Volume, volumeHigh, "index %d", i)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := seededGenerator(42).Generate(Timeframe7D, 1.23)
	b := seededGenerator(42).Generate(Timeframe7D, 1.23)

	assert.Equal(t, a, b)
}

func TestGenerate_SeedsDiffer(t *testing.T) {
	a := seededGenerator(1).Generate(Timeframe7D, 1.23)
	b := seededGenerator(2).Generate(Timeframe7D, 1.23)

	assert.NotEqual(t, a, b)
}

func TestGenerate_StartWithinRange(t *testing.T) {
	const currentPrice = 100.0

	// The first point is drawn before the walk starts; its bounds are
	// tighter than the clamp window
	for seed := int64(0); seed < 50; seed++ {
		series := seededGenerator(seed).Generate(Timeframe1D, currentPrice)
		first := series[0].Price
		assert.GreaterOrEqual(t, first, currentPrice*startRangeLow)
		assert.LessOrEqual(t, first, currentPrice*startRangeHigh)
	}
}

func TestGenerate_ClampHoldsAcrossSeeds(t *testing.T) {
	const currentPrice = 0.0042

	// 1y has the widest volatility; the clamp must hold regardless of seed
	for seed := int64(0); seed < 25; seed++ {
		series := seededGenerator(seed).Generate(Timeframe1Y, currentPrice)
		for _, point := range series {
			require.GreaterOrEqual(t, point.Price, currentPrice*clampFloor)
			require.LessOrEqual(t, point.Price, currentPrice*clampCeil)
		}
	}
}
