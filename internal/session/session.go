// Package session holds the interactive state of one viewer: the search
// query, the visible slot types and the hovered level. Every command
// returns a fresh View.
package session

import (
	"github.com/meur/gscheck/internal/catalog"
	"github.com/meur/gscheck/internal/chart"
	"github.com/meur/gscheck/internal/models"
	"github.com/meur/gscheck/internal/search"
)

// View is the derived view model of a session
type View struct {
	ID      string            `json:"id"`
	Search  search.Result     `json:"search"`
	Chart   chart.Data        `json:"chart"`
	Visible []models.SlotType `json:"visible"`
}

// Session is the state of one viewer. It is not safe for concurrent use;
// Manager serializes commands per session.
type Session struct {
	id      string
	catalog *catalog.Catalog
	chart   *chart.Controller
	result  search.Result
}

// New starts a session over c with the prompt state and every type visible
func New(id string, c *catalog.Catalog, vp chart.Viewport) *Session {
	return &Session{
		id:      id,
		catalog: c,
		chart:   chart.NewController(c.Table(), vp),
		result:  c.Search.Search(""),
	}
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// OnSearchQueryChanged runs a new query
func (s *Session) OnSearchQueryChanged(query string) View {
	s.result = s.catalog.Search.Search(query)
	return s.View()
}

// OnPointerMoved hovers the indexed level closest to pixel x
func (s *Session) OnPointerMoved(x float64) View {
	s.chart.PointerMoved(x)
	return s.View()
}

// OnPointerLeft clears the hover
func (s *Session) OnPointerLeft() View {
	s.chart.PointerLeft()
	return s.View()
}

// OnVisibilityToggled shows or hides a slot type. ok is false when the type
// has no curve.
func (s *Session) OnVisibilityToggled(slot models.SlotType, visible bool) (v View, ok bool) {
	ok = s.chart.SetVisible(slot, visible)
	return s.View(), ok
}

// OnResize moves the chart onto a new viewport
func (s *Session) OnResize(vp chart.Viewport) View {
	s.chart.Resize(vp)
	return s.View()
}

// View derives the current view model
func (s *Session) View() View {
	return View{
		ID:      s.id,
		Search:  s.result,
		Chart:   s.chart.Data(),
		Visible: s.chart.Visible(),
	}
}

// Chart returns the chart data alone
func (s *Session) Chart() chart.Data {
	return s.chart.Data()
}
