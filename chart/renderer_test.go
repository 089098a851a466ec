package chart

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockettoken/chartbot/config"
	"github.com/rockettoken/chartbot/priceresolver"
)

func newTestRenderer() *Renderer {
	cfg := config.DefaultConfig()
	// Small canvas keeps test renders fast
	cfg.Chart.WidthPx = 600
	cfg.Chart.HeightPx = 400
	cfg.Chart.DPI = 96
	return NewRenderer(cfg)
}

// testSeries builds n valid hourly points ending at now
func testSeries(n int, base float64) priceresolver.PriceSeries {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	series := make(priceresolver.PriceSeries, n)
	for i := 0; i < n; i++ {
		series[i] = priceresolver.PricePoint{
			Timestamp: now.Add(-time.Duration(n-1-i) * time.Hour),
			Price:     base * (1 + 0.01*float64(i%5)),
			Volume:    2000 + float64(i),
		}
	}
	return series
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestRender_Success(t *testing.T) {
	renderer := newTestRenderer()

	path, err := renderer.Render(testSeries(24, 0.0042), "ROCKET", priceresolver.Timeframe1D)
	require.NoError(t, err)
	defer os.Remove(path)

	assertPNG(t, path)
}

func TestRender_LargePriceSeries(t *testing.T) {
	renderer := newTestRenderer()

	// Prices above 1.0 exercise the 2-decimal label path
	path, err := renderer.Render(testSeries(30, 123.45), "ROCKET", priceresolver.Timeframe30D)
	require.NoError(t, err)
	defer os.Remove(path)

	assertPNG(t, path)
}

func TestRender_InsufficientData(t *testing.T) {
	renderer := newTestRenderer()

	tests := []struct {
		name   string
		series priceresolver.PriceSeries
	}{
		{"empty", nil},
		{"single point", testSeries(1, 0.0042)},
		{
			"two points one malformed",
			append(testSeries(1, 0.0042), priceresolver.PricePoint{Price: 0.0042}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := renderer.Render(tt.series, "ROCKET", priceresolver.Timeframe1D)
			assert.ErrorIs(t, err, ErrInsufficientData)
		})
	}
}

func TestRender_SkipsMalformedPoints(t *testing.T) {
	renderer := newTestRenderer()

	series := testSeries(10, 0.0042)
	series[3].Timestamp = time.Time{}
	series[5].Price = math.NaN()
	series[7].Price = math.Inf(1)

	path, err := renderer.Render(series, "ROCKET", priceresolver.Timeframe1D)
	require.NoError(t, err)
	defer os.Remove(path)

	assertPNG(t, path)
}

func TestCleanSeries(t *testing.T) {
	series := priceresolver.PriceSeries{
		{Timestamp: time.Time{}, Price: 1, Volume: 10},              // no timestamp
		{Timestamp: time.Unix(1, 0), Price: math.NaN(), Volume: 1}, // bad price
		{Timestamp: time.Unix(2, 0), Price: -3, Volume: 1},         // negative price
		{Timestamp: time.Unix(3, 0), Price: 2, Volume: -5},         // bad volume defaults to 0
		{Timestamp: time.Unix(4, 0), Price: 3, Volume: math.Inf(1)},
		{Timestamp: time.Unix(5, 0), Price: 4, Volume: 7},
	}

	timestamps, prices, volumes := cleanSeries(series)

	require.Len(t, prices, 3)
	assert.Equal(t, []float64{2, 3, 4}, prices)
	assert.Equal(t, []float64{0, 0, 7}, volumes)
	assert.Equal(t, time.Unix(3, 0), timestamps[0])
}

func TestSignPrefix(t *testing.T) {
	assert.Equal(t, "+", signPrefix(12.5))
	assert.Equal(t, "+", signPrefix(0), "zero change is treated as non-negative")
	assert.Equal(t, "", signPrefix(-0.01))
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 50.0, percentChange([]float64{2, 4, 3}), 1e-9)
	assert.InDelta(t, -25.0, percentChange([]float64{4, 4, 3}), 1e-9)
	assert.Zero(t, percentChange([]float64{4, 2, 4}))
}
