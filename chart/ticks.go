package chart

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/plot"

	"github.com/rockettoken/chartbot/priceresolver"
)

// priceTicks formats price axis labels with a fixed number of decimals
type priceTicks struct {
	decimals int
}

func (t priceTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = fmt.Sprintf("$%.*f", t.decimals, tick.Value)
	}
	return ticks
}

// volumeTicks formats volume axis labels as thousands-grouped integers
type volumeTicks struct{}

func (volumeTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = groupThousands(tick.Value)
	}
	return ticks
}

// groupThousands renders v as an integer with comma separators
func groupThousands(v float64) string {
	raw := fmt.Sprintf("%.0f", v)

	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign = "-"
		raw = raw[1:]
	}

	var b strings.Builder
	lead := len(raw) % 3
	if lead > 0 {
		b.WriteString(raw[:lead])
	}
	for i := lead; i < len(raw); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(raw[i : i+3])
	}
	return sign + b.String()
}

// timeTicks places time labels on the shared index axis. Hourly timeframes
// get an HH:MM label every 4 samples; daily timeframes get an MM/DD label
// at an interval keeping roughly 10 ticks visible.
func timeTicks(timestamps []time.Time, tf priceresolver.Timeframe) plot.ConstantTicks {
	step := 4
	layout := "15:04"
	if tf != priceresolver.Timeframe1D && tf != priceresolver.Timeframe7D {
		layout = "01/02"
		step = len(timestamps) / 10
		if step < 1 {
			step = 1
		}
	}

	ticks := make([]plot.Tick, 0, len(timestamps)/step+1)
	for i := 0; i < len(timestamps); i += step {
		ticks = append(ticks, plot.Tick{
			Value: float64(i),
			Label: timestamps[i].Format(layout),
		})
	}
	return plot.ConstantTicks(ticks)
}
