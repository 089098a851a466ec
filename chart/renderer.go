package chart

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/rockettoken/chartbot/config"
	"github.com/rockettoken/chartbot/metrics"
	"github.com/rockettoken/chartbot/priceresolver"
)

var (
	// ErrInsufficientData is returned when fewer than 2 valid points remain
	// after input cleaning
	ErrInsufficientData = errors.New("not enough valid data points for chart")

	// ErrRender wraps any failure inside the rendering pipeline
	ErrRender = errors.New("chart rendering failed")
)

// palette is the fixed dark theme, set once at construction
type palette struct {
	background color.Color
	grid       color.Color
	text       color.Color
	priceLine  color.Color
	priceFill  color.Color
	volumeBars color.Color
	positive   color.Color
	negative   color.Color
}

// Renderer draws two-panel price/volume charts to PNG files.
// All plot state is built per call; safe for concurrent use.
type Renderer struct {
	config config.ChartConfig
	colors palette
}

// NewRenderer creates a renderer with the dark theme and the configured
// canvas geometry
func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{
		config: cfg.Chart,
		colors: palette{
			background: color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff},
			grid:       color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0x4d},
			text:       color.White,
			priceLine:  color.RGBA{G: 0xff, B: 0x88, A: 0xff},
			priceFill:  color.RGBA{G: 0xff, B: 0x88, A: 0x1a},
			volumeBars: color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0x99},
			positive:   color.RGBA{G: 0xff, B: 0x88, A: 0xff},
			negative:   color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff},
		},
	}
}

// Render draws the series into a fresh temporary PNG file and returns its
// path. The caller owns the file and deletes it after use. Points with a
// zero timestamp or a non-finite or non-positive price are skipped rather
// than failing the whole render; fewer than 2 surviving points yields
// ErrInsufficientData. Every other failure is wrapped in ErrRender.
func (r *Renderer) Render(series priceresolver.PriceSeries, symbol string, tf priceresolver.Timeframe) (path string, err error) {
	start := time.Now()

	// The plotting library panics on some degenerate inputs; surface those
	// as a single typed failure instead of crashing the request
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrRender, rec)
		}
	}()

	timestamps, prices, volumes := cleanSeries(series)
	if len(prices) < 2 {
		log.Printf("Chart: only %d valid points after cleaning, need 2", len(prices))
		return "", ErrInsufficientData
	}

	change := percentChange(prices)
	changeColor := r.colors.positive
	if change < 0 {
		changeColor = r.colors.negative
	}

	pricePlot, err := r.buildPricePlot(timestamps, prices, symbol, tf, change, changeColor)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	volumePlot, err := r.buildVolumePlot(timestamps, volumes, tf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	path, err = r.writePNG(pricePlot, volumePlot)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	metrics.RecordRender(tf.String(), start)
	log.Printf("Chart: generated %s chart for %s at %s", tf, symbol, path)
	return path, nil
}

// cleanSeries drops malformed points and defaults bad volumes to 0
func cleanSeries(series priceresolver.PriceSeries) ([]time.Time, []float64, []float64) {
	timestamps := make([]time.Time, 0, len(series))
	prices := make([]float64, 0, len(series))
	volumes := make([]float64, 0, len(series))

	for _, point := range series {
		if point.Timestamp.IsZero() {
			log.Printf("Chart: skipping point with missing timestamp")
			continue
		}
		if math.IsNaN(point.Price) || math.IsInf(point.Price, 0) || point.Price <= 0 {
			log.Printf("Chart: skipping point with invalid price %v", point.Price)
			continue
		}

		volume := point.Volume
		if math.IsNaN(volume) || math.IsInf(volume, 0) || volume < 0 {
			volume = 0
		}

		timestamps = append(timestamps, point.Timestamp)
		prices = append(prices, point.Price)
		volumes = append(volumes, volume)
	}

	return timestamps, prices, volumes
}

func (r *Renderer) buildPricePlot(timestamps []time.Time, prices []float64, symbol string, tf priceresolver.Timeframe, change float64, changeColor color.Color) (*plot.Plot, error) {
	p := plot.New()
	r.applyTheme(p)

	p.Title.Text = fmt.Sprintf("%s Price Chart (%s) - %s%.2f%%",
		symbol, strings.ToUpper(tf.String()), signPrefix(change), change)
	p.Title.TextStyle.Color = r.colors.text
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Price (USD)"

	xys := make(plotter.XYs, len(prices))
	for i, price := range prices {
		xys[i] = plotter.XY{X: float64(i), Y: price}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = r.colors.priceLine
	line.LineStyle.Width = vg.Points(2)
	line.FillColor = r.colors.priceFill

	grid := plotter.NewGrid()
	grid.Vertical.Color = r.colors.grid
	grid.Horizontal.Color = r.colors.grid

	p.Add(grid, line)

	// Sub-cent tokens need more precision than ordinary instruments
	decimals := 2
	if maxValue(prices) < 1 {
		decimals = 6
	}
	p.Y.Tick.Marker = priceTicks{decimals: decimals}
	p.X.Tick.Marker = timeTicks(timestamps, tf)

	if err := r.annotateLastPoint(p, xys, changeColor); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Renderer) buildVolumePlot(timestamps []time.Time, volumes []float64, tf priceresolver.Timeframe) (*plot.Plot, error) {
	p := plot.New()
	r.applyTheme(p)
	p.Y.Label.Text = "Volume"

	bars, err := plotter.NewBarChart(plotter.Values(volumes), vg.Points(2))
	if err != nil {
		return nil, err
	}
	bars.Color = r.colors.volumeBars
	bars.LineStyle.Width = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = r.colors.grid
	grid.Horizontal.Color = r.colors.grid

	p.Add(grid, bars)

	p.Y.Tick.Marker = volumeTicks{}
	p.X.Tick.Marker = timeTicks(timestamps, tf)

	return p, nil
}

// annotateLastPoint marks the series endpoint with a dot and its exact price
func (r *Renderer) annotateLastPoint(p *plot.Plot, xys plotter.XYs, changeColor color.Color) error {
	last := xys[len(xys)-1]

	dot, err := plotter.NewScatter(plotter.XYs{last})
	if err != nil {
		return err
	}
	dot.GlyphStyle.Color = changeColor
	dot.GlyphStyle.Radius = vg.Points(3)
	dot.GlyphStyle.Shape = draw.CircleGlyph{}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{last},
		Labels: []string{fmt.Sprintf("$%.6f", last.Y)},
	})
	if err != nil {
		return err
	}
	labels.TextStyle[0].Color = changeColor
	labels.TextStyle[0].Font.Size = vg.Points(11)
	labels.TextStyle[0].XAlign = draw.XRight

	p.Add(dot, labels)
	return nil
}

func (r *Renderer) applyTheme(p *plot.Plot) {
	p.BackgroundColor = r.colors.background

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Color = r.colors.text
		axis.Label.TextStyle.Color = r.colors.text
		axis.Tick.Color = r.colors.text
		axis.Tick.Label.Color = r.colors.text
	}

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// writePNG lays out the two panels (price 3/4, volume 1/4) on one canvas
// and saves it to a fresh temp file
func (r *Renderer) writePNG(pricePlot, volumePlot *plot.Plot) (string, error) {
	dpi := r.config.DPI
	if dpi <= 0 {
		dpi = 150
	}
	width := vg.Length(r.config.WidthPx) / vg.Length(dpi) * vg.Inch
	height := vg.Length(r.config.HeightPx) / vg.Length(dpi) * vg.Inch

	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(r.colors.background),
	)
	canvas := draw.New(img)

	volumeHeight := height / 4
	pricePanel := draw.Crop(canvas, 0, 0, volumeHeight, 0)
	volumePanel := draw.Crop(canvas, 0, 0, 0, volumeHeight-height)

	pricePlot.Draw(pricePanel)
	volumePlot.Draw(volumePanel)

	file, err := os.CreateTemp("", "chart-*.png")
	if err != nil {
		return "", err
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", err
	}

	return file.Name(), nil
}

// percentChange is the relative move between the first and last valid point
func percentChange(prices []float64) float64 {
	return (prices[len(prices)-1] - prices[0]) / prices[0] * 100
}

// signPrefix renders zero change as non-negative
func signPrefix(change float64) string {
	if change < 0 {
		return ""
	}
	return "+"
}

func maxValue(values []float64) float64 {
	maxV := values[0]
	for _, v := range values[1:] {
		if v > maxV {
			maxV = v
		}
	}
	return maxV
}
