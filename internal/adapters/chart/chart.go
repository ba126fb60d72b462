// Package chart renders the pressure and temperature trend of a completed
// sheet as a PNG line chart.
package chart

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/wellguard/internal/domain/model"
)

// Default rendering constants.
const (
	defaultWidth         = 1024
	defaultHeight        = 480
	defaultLabelRotation = 45.0
	dotWidth             = 4.0
	strokeWidth          = 2.0
)

// Temperature is drawn dashed with larger markers so the two series stay
// distinct without colour.
var (
	pressureStyle    = lineStyle(gochart.ColorBlue, dotWidth, nil)
	temperatureStyle = lineStyle(gochart.ColorRed, dotWidth*1.5, []float64{6, 3})
)

// Series names as shown in the legend.
const (
	PressureSeries    = "Pressure (psi)"
	TemperatureSeries = "Temperature (°C)"
)

// Trend holds the two aligned series in time slot order.
type Trend struct {
	Labels      []string
	Pressure    []float64
	Temperature []float64
}

// BuildTrend extracts the series from a complete sheet. Order follows the
// sheet rows; nothing is sorted, smoothed or converted.
func BuildTrend(sheet *model.Sheet) (Trend, error) {
	rows := sheet.Rows()
	t := Trend{
		Labels:      make([]string, 0, len(rows)),
		Pressure:    make([]float64, 0, len(rows)),
		Temperature: make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		p, okP := row.Pressure.Get()
		c, okT := row.Temperature.Get()
		if !okP || !okT {
			return Trend{}, fmt.Errorf("%w: %s", ErrIncomplete, row.Slot)
		}
		t.Labels = append(t.Labels, row.Slot.String())
		t.Pressure = append(t.Pressure, float64(p))
		t.Temperature = append(t.Temperature, float64(c))
	}
	return t, nil
}

// Renderer draws trend charts.
type Renderer struct {
	width         int
	height        int
	labelRotation float64
}

// New creates a Renderer with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:         defaultWidth,
		height:        defaultHeight,
		labelRotation: defaultLabelRotation,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the trend of sheet and returns PNG bytes.
func (r *Renderer) Render(ctx context.Context, sheet *model.Sheet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	trend, err := BuildTrend(sheet)
	if err != nil {
		return nil, err
	}

	ch := r.build(trend)

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// build lays the labels out at x = 1..n with an explicit tick per slot so the
// axis shows time slot labels instead of numbers.
func (r *Renderer) build(t Trend) gochart.Chart {
	n := len(t.Labels)
	xs := make([]float64, n)
	ticks := make([]gochart.Tick, 0, n)
	for i, label := range t.Labels {
		x := float64(i + 1)
		xs[i] = x
		ticks = append(ticks, gochart.Tick{Value: x, Label: label})
	}

	ch := gochart.Chart{
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 16, Right: 12, Bottom: 48}},
		XAxis: gochart.XAxis{
			Name:  "Timestamp",
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5},
			Style: gochart.Style{TextRotationDegrees: r.labelRotation},
		},
		YAxis: gochart.YAxis{
			Name: "Values",
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    PressureSeries,
				XValues: xs,
				YValues: t.Pressure,
				Style:   pressureStyle,
			},
			gochart.ContinuousSeries{
				Name:    TemperatureSeries,
				XValues: xs,
				YValues: t.Temperature,
				Style:   temperatureStyle,
			},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch
}

// lineStyle draws a line with a marker at every point.
func lineStyle(col drawing.Color, dot float64, dash []float64) gochart.Style {
	return gochart.Style{
		StrokeColor:     col,
		StrokeWidth:     strokeWidth,
		StrokeDashArray: dash,
		DotColor:        col,
		DotWidth:        dot,
	}
}

// DataURI encodes PNG bytes for inline embedding in a page.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
