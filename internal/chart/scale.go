// Package chart maps gear score data onto a drawing surface and tracks the
// pointer interaction state of the chart.
package chart

import (
	"errors"
	"math"

	"github.com/meur/gscheck/internal/gearscore"
)

// Margins are the padding between the viewport edge and the plot area
type Margins struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// DefaultMargins leave room for the axis labels
func DefaultMargins() Margins {
	return Margins{Left: 50, Right: 20, Top: 20, Bottom: 40}
}

// Viewport is the drawing surface in pixels
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Margins Margins `json:"margins"`
}

// ErrNoPlotArea is returned for a viewport whose margins leave no room to draw
var ErrNoPlotArea = errors.New("margins leave no plot area")

// Validate checks that the viewport has a positive size and a non-empty
// plot area inside non-negative margins
func (vp Viewport) Validate() error {
	if vp.Width <= 0 || vp.Height <= 0 {
		return errors.New("width and height must be positive")
	}
	m := vp.Margins
	if m.Left < 0 || m.Right < 0 || m.Top < 0 || m.Bottom < 0 {
		return errors.New("margins must not be negative")
	}
	if m.Left+m.Right >= vp.Width || m.Top+m.Bottom >= vp.Height {
		return ErrNoPlotArea
	}
	return nil
}

// DefaultViewport returns a 900x360 surface with the default margins
func DefaultViewport() Viewport {
	return Viewport{Width: 900, Height: 360, Margins: DefaultMargins()}
}

// Domain is the data range shown on the chart
type Domain struct {
	MinLevel float64 `json:"min_ilvl"`
	MaxLevel float64 `json:"max_ilvl"`
	MinScore float64 `json:"min_gs"`
	MaxScore float64 `json:"max_gs"`
}

// DomainOf spans every indexed level and scores from 0 to the highest
// recorded score
func DomainOf(t *gearscore.Table) Domain {
	return Domain{
		MinLevel: float64(t.MinLevel()),
		MaxLevel: float64(t.MaxLevel()),
		MinScore: 0,
		MaxScore: t.MaxScore(),
	}
}

// Mapper converts between domain values and screen coordinates
type Mapper struct {
	domain Domain
	vp     Viewport
}

// NewMapper returns a mapper from d onto vp
func NewMapper(d Domain, vp Viewport) Mapper {
	return Mapper{domain: d, vp: vp}
}

// Domain returns the mapped data range
func (m Mapper) Domain() Domain { return m.domain }

// Viewport returns the target surface
func (m Mapper) Viewport() Viewport { return m.vp }

func (m Mapper) plotX() (left, right float64) {
	return m.vp.Margins.Left, m.vp.Width - m.vp.Margins.Right
}

func (m Mapper) plotY() (top, bottom float64) {
	return m.vp.Margins.Top, m.vp.Height - m.vp.Margins.Bottom
}

// ScreenX maps an item level to a horizontal pixel position. A single-level
// domain maps everything to the middle of the plot.
func (m Mapper) ScreenX(level float64) float64 {
	left, right := m.plotX()
	span := m.domain.MaxLevel - m.domain.MinLevel
	if span == 0 {
		return (left + right) / 2
	}
	return left + (level-m.domain.MinLevel)/span*(right-left)
}

// ScreenY maps a score to a vertical pixel position, growing upwards
func (m Mapper) ScreenY(score float64) float64 {
	top, bottom := m.plotY()
	span := m.domain.MaxScore - m.domain.MinScore
	if span == 0 {
		return (top + bottom) / 2
	}
	return bottom - (score-m.domain.MinScore)/span*(bottom-top)
}

// DomainLevel maps a horizontal pixel position back to an item level.
// Positions outside the plot clamp to the nearest domain boundary.
func (m Mapper) DomainLevel(px float64) float64 {
	left, right := m.plotX()
	span := m.domain.MaxLevel - m.domain.MinLevel
	if span == 0 || right <= left {
		return m.domain.MinLevel
	}
	frac := (px - left) / (right - left)
	frac = math.Max(0, math.Min(1, frac))
	return m.domain.MinLevel + frac*span
}

// Ticks returns count evenly spaced values from min to max, rounded to the
// nearest integer
func Ticks(min, max float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if count == 1 || min == max {
		return []float64{math.Round(min)}
	}
	step := (max - min) / float64(count-1)
	ticks := make([]float64, count)
	for i := range ticks {
		ticks[i] = math.Round(min + float64(i)*step)
	}
	return ticks
}
