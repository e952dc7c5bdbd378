package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	backgroundColor = hexColor("#0b1220")
	axisColor       = hexColor("#1f2937")
	labelColor      = hexColor("#9ca3af")
)

// RenderPNG draws d as a PNG image sized to its viewport
func RenderPNG(w io.Writer, d Data) error {
	ch := gochart.Chart{
		Width:  int(d.Viewport.Width),
		Height: int(d.Viewport.Height),
		Background: gochart.Style{
			FillColor: backgroundColor,
			Padding: gochart.Box{
				Top:    int(d.Viewport.Margins.Top),
				Left:   int(d.Viewport.Margins.Left),
				Right:  int(d.Viewport.Margins.Right),
				Bottom: int(d.Viewport.Margins.Bottom),
			},
		},
		Canvas: gochart.Style{FillColor: backgroundColor},
		XAxis: gochart.XAxis{
			Name:      d.XAxis.Label,
			NameStyle: gochart.Style{FontColor: labelColor},
			Style:     gochart.Style{FontColor: labelColor, StrokeColor: axisColor},
			Range:     paddedRange(d.Domain.MinLevel, d.Domain.MaxLevel),
			Ticks:     axisTicks(d.XAxis),
		},
		YAxis: gochart.YAxis{
			Name:      d.YAxis.Label,
			NameStyle: gochart.Style{FontColor: labelColor},
			Style:     gochart.Style{FontColor: labelColor, StrokeColor: axisColor},
			Range:     paddedRange(d.Domain.MinScore, d.Domain.MaxScore),
			Ticks:     axisTicks(d.YAxis),
		},
	}

	for _, s := range d.Series {
		color := hexColor(s.Color)
		cs := gochart.ContinuousSeries{
			Name: s.Label,
			Style: gochart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		}
		for _, p := range s.Points {
			cs.XValues = append(cs.XValues, float64(p.Level))
			cs.YValues = append(cs.YValues, p.Score)
		}
		ch.Series = append(ch.Series, cs)
	}

	if d.Hover != nil {
		level := float64(d.Hover.Level)
		ch.Series = append(ch.Series, gochart.ContinuousSeries{
			Name:    "ilvl " + strconv.Itoa(d.Hover.Level),
			XValues: []float64{level, level},
			YValues: []float64{d.Domain.MinScore, d.Domain.MaxScore},
			Style: gochart.Style{
				StrokeColor:     labelColor,
				StrokeWidth:     1,
				StrokeDashArray: []float64{4, 4},
			},
		})
	}

	// go-chart refuses to render without a series
	if len(ch.Series) == 0 {
		ch.Series = append(ch.Series, gochart.ContinuousSeries{
			XValues: []float64{d.Domain.MinLevel, d.Domain.MaxLevel},
			YValues: []float64{d.Domain.MinScore, d.Domain.MinScore},
			Style:   gochart.Style{Hidden: true},
		})
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func paddedRange(min, max float64) *gochart.ContinuousRange {
	if max <= min {
		min, max = min-1, max+1
	}
	return &gochart.ContinuousRange{Min: min, Max: max}
}

// axisTicks converts the axis labels. go-chart derives the axis range from
// explicit ticks, so fewer than two distinct values fall back to the range.
func axisTicks(a Axis) []gochart.Tick {
	if len(a.Ticks) < 2 || a.Ticks[0].Value == a.Ticks[len(a.Ticks)-1].Value {
		return nil
	}
	ticks := make([]gochart.Tick, 0, len(a.Ticks))
	for _, t := range a.Ticks {
		ticks = append(ticks, gochart.Tick{Value: t.Value, Label: strconv.FormatFloat(t.Value, 'f', -1, 64)})
	}
	return ticks
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
