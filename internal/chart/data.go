package chart

import (
	"github.com/meur/gscheck/internal/gearscore"
	"github.com/meur/gscheck/internal/models"
)

// TickCount is the number of labels drawn on each axis
const TickCount = 6

// Data is everything a presentation layer needs to draw the chart
type Data struct {
	Viewport Viewport       `json:"viewport"`
	Domain   Domain         `json:"domain"`
	Series   []Series       `json:"series"`
	XAxis    Axis           `json:"x_axis"`
	YAxis    Axis           `json:"y_axis"`
	Hover    *HoverSnapshot `json:"hover,omitempty"`
}

// Series is the curve of one visible slot type
type Series struct {
	Type   models.SlotType `json:"type"`
	Label  string          `json:"label"`
	Color  string          `json:"color"`
	Points []Point         `json:"points"`
}

// Point is one sample of a series with its screen position
type Point struct {
	Level int     `json:"ilvl"`
	Score float64 `json:"gs"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Axis lists the tick labels of one axis
type Axis struct {
	Label string `json:"label"`
	Ticks []Tick `json:"ticks"`
}

// Tick is one axis label and its pixel position along the axis
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
}

// HoverSnapshot describes the hovered level for the visible slot types
type HoverSnapshot struct {
	Level  int          `json:"ilvl"`
	X      float64      `json:"x"`
	Values []HoverValue `json:"values"`
}

// HoverValue is the score of one slot type at the hovered level. Score is
// nil when the table has no positive score for the pair.
type HoverValue struct {
	Type  models.SlotType `json:"type"`
	Label string          `json:"label"`
	Color string          `json:"color"`
	Score *float64        `json:"gs"`
	Y     *float64        `json:"y,omitempty"`
}

// Build derives the chart data for the given visible types and hover
// state. It reads nothing but its arguments.
func Build(t *gearscore.Table, m Mapper, visible []models.SlotType, hover HoverState) Data {
	d := Data{
		Viewport: m.Viewport(),
		Domain:   m.Domain(),
		Series:   []Series{},
		XAxis:    Axis{Label: "Item Level"},
		YAxis:    Axis{Label: "GearScore"},
	}

	for _, slot := range visible {
		samples := t.Series(slot)
		if len(samples) == 0 {
			continue
		}
		info := slot.Info()
		s := Series{Type: slot, Label: info.Label, Color: info.Color, Points: make([]Point, 0, len(samples))}
		for _, p := range samples {
			s.Points = append(s.Points, Point{
				Level: p.Level,
				Score: p.Score,
				X:     m.ScreenX(float64(p.Level)),
				Y:     m.ScreenY(p.Score),
			})
		}
		d.Series = append(d.Series, s)
	}

	dom := m.Domain()
	for _, v := range Ticks(dom.MinLevel, dom.MaxLevel, TickCount) {
		d.XAxis.Ticks = append(d.XAxis.Ticks, Tick{Value: v, Pos: m.ScreenX(v)})
	}
	for _, v := range Ticks(dom.MinScore, dom.MaxScore, TickCount) {
		d.YAxis.Ticks = append(d.YAxis.Ticks, Tick{Value: v, Pos: m.ScreenY(v)})
	}

	if level, ok := hover.Level(); ok {
		snap := &HoverSnapshot{Level: level, X: m.ScreenX(float64(level)), Values: []HoverValue{}}
		for _, slot := range visible {
			info := slot.Info()
			v := HoverValue{Type: slot, Label: info.Label, Color: info.Color}
			if score, ok := t.Exact(level, slot); ok && score > 0 {
				y := m.ScreenY(score)
				v.Score, v.Y = &score, &y
			}
			snap.Values = append(snap.Values, v)
		}
		d.Hover = snap
	}

	return d
}
