package chart

import (
	"github.com/meur/gscheck/internal/gearscore"
	"github.com/meur/gscheck/internal/models"
)

// HoverState is either Idle or Hovering an indexed item level
type HoverState struct {
	level    int
	hovering bool
}

// Idle is the state with no hovered level
var Idle = HoverState{}

// Hovering returns the state for a hovered level
func Hovering(level int) HoverState {
	return HoverState{level: level, hovering: true}
}

// Level returns the hovered level, if any
func (h HoverState) Level() (int, bool) {
	return h.level, h.hovering
}

// Controller holds the interactive state of one chart: which slot types
// are shown and which level the pointer is over. It is not safe for
// concurrent use.
type Controller struct {
	table   *gearscore.Table
	mapper  Mapper
	visible map[models.SlotType]bool
	hover   HoverState
}

// NewController starts with every charted slot type visible and no hover
func NewController(t *gearscore.Table, vp Viewport) *Controller {
	c := &Controller{
		table:   t,
		mapper:  NewMapper(DomainOf(t), vp),
		visible: make(map[models.SlotType]bool),
	}
	for _, slot := range models.ChartedSlotTypes() {
		c.visible[slot] = true
	}
	return c
}

// PointerMoved snaps the pixel position px to the nearest indexed level
// and hovers it
func (c *Controller) PointerMoved(px float64) int {
	level := c.table.NearestLevel(c.mapper.DomainLevel(px))
	c.hover = Hovering(level)
	return level
}

// PointerLeft clears the hover
func (c *Controller) PointerLeft() {
	c.hover = Idle
}

// SetVisible shows or hides a charted slot type. It reports false for a
// type that has no curve.
func (c *Controller) SetVisible(slot models.SlotType, visible bool) bool {
	if _, ok := c.visible[slot]; !ok {
		return false
	}
	c.visible[slot] = visible
	return true
}

// Resize moves the chart onto a new viewport. The hovered level is kept.
func (c *Controller) Resize(vp Viewport) {
	c.mapper = NewMapper(c.mapper.Domain(), vp)
}

// Visible returns the shown slot types in legend order
func (c *Controller) Visible() []models.SlotType {
	var out []models.SlotType
	for _, slot := range models.ChartedSlotTypes() {
		if c.visible[slot] {
			out = append(out, slot)
		}
	}
	return out
}

// State returns the current hover state
func (c *Controller) State() HoverState { return c.hover }

// Mapper returns the current coordinate mapper
func (c *Controller) Mapper() Mapper { return c.mapper }

// Data builds the chart data for the current state
func (c *Controller) Data() Data {
	return Build(c.table, c.mapper, c.Visible(), c.hover)
}
