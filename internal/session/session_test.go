package session

import (
	"reflect"
	"testing"
	"time"

	"github.com/meur/gscheck/internal/catalog"
	"github.com/meur/gscheck/internal/chart"
	"github.com/meur/gscheck/internal/dataset"
	"github.com/meur/gscheck/internal/models"
	"github.com/meur/gscheck/internal/search"
)

const doc = `{
  "GS_DATA": {"high": {"100": ["4201"], "200": ["4202"]}, "mid": {"200": ["1337"]}},
  "LEGENDARY": {"9999": 1200},
  "ILVL_GS": {"100": [200, 100], "200": [400, 300]},
  "ITEM_TYPE": {"high": 0, "mid": 1}
}`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	ds, err := dataset.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := catalog.New(ds, nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func testViewport() chart.Viewport {
	return chart.Viewport{Width: 570, Height: 260, Margins: chart.DefaultMargins()}
}

func TestSessionStartsIdle(t *testing.T) {
	s := New("abc", testCatalog(t), testViewport())
	v := s.View()

	if v.ID != "abc" || v.Search.Mode != search.ModeEmpty {
		t.Fatalf("unexpected initial view %+v", v)
	}
	if v.Chart.Hover != nil {
		t.Fatal("session should start without hover")
	}
	if !reflect.DeepEqual(v.Visible, models.ChartedSlotTypes()) {
		t.Fatalf("every charted type should start visible, got %v", v.Visible)
	}
}

func TestSessionCommands(t *testing.T) {
	s := New("abc", testCatalog(t), testViewport())

	v := s.OnSearchQueryChanged("42")
	if v.Search.Mode != search.ModeID || v.Search.TotalCount != 2 {
		t.Fatalf("unexpected search %+v", v.Search)
	}

	v = s.OnPointerMoved(10000)
	if v.Chart.Hover == nil || v.Chart.Hover.Level != 200 {
		t.Fatalf("expected hover on 200, got %+v", v.Chart.Hover)
	}
	if v.Search.TotalCount != 2 {
		t.Fatal("pointer events should keep the search result")
	}

	v, ok := s.OnVisibilityToggled(models.SlotMid, false)
	if !ok || len(v.Chart.Series) != 1 {
		t.Fatalf("expected one series after hiding mid, got %+v", v.Chart.Series)
	}
	if _, ok := s.OnVisibilityToggled("offhand", true); ok {
		t.Fatal("unknown type should be rejected")
	}

	v = s.OnResize(chart.Viewport{Width: 1070, Height: 460, Margins: chart.DefaultMargins()})
	if v.Chart.Viewport.Width != 1070 || v.Chart.Hover.X != 1050 {
		t.Fatalf("unexpected chart after resize %+v", v.Chart.Hover)
	}

	v = s.OnPointerLeft()
	if v.Chart.Hover != nil {
		t.Fatal("pointer leave should clear the hover")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	c := testCatalog(t)
	a := New("a", c, testViewport())
	b := New("b", c, testViewport())

	a.OnPointerMoved(50)
	a.OnVisibilityToggled(models.SlotHigh, false)

	if b.View().Chart.Hover != nil || len(b.View().Visible) != len(models.ChartedSlotTypes()) {
		t.Fatal("state leaked between sessions")
	}
}

func TestManager(t *testing.T) {
	m := NewManager(testCatalog(t), testViewport(), time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	v := m.Create()
	if v.ID == "" || m.Len() != 1 {
		t.Fatalf("unexpected create %+v", v)
	}

	got, ok := m.Do(v.ID, func(s *Session) View { return s.OnSearchQueryChanged("1337") })
	if !ok || got.Search.TotalCount != 1 {
		t.Fatalf("unexpected command result %+v", got.Search)
	}

	if _, ok := m.Do("missing", func(s *Session) View { return s.View() }); ok {
		t.Fatal("unknown session should not be found")
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok := m.Do(v.ID, func(s *Session) View { return s.View() }); ok {
		t.Fatal("idle session should expire")
	}
	if m.Len() != 0 {
		t.Fatalf("expired session should be dropped, have %d", m.Len())
	}
}

func TestManagerDeleteAndSweep(t *testing.T) {
	m := NewManager(testCatalog(t), testViewport(), time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	first := m.Create()
	second := m.Create()
	if !m.Delete(second.ID) || m.Delete(second.ID) {
		t.Fatal("delete should succeed once")
	}

	clock = clock.Add(2 * time.Minute)
	m.Create()
	if m.Len() != 1 {
		t.Fatalf("creating a session should sweep idle ones, have %d", m.Len())
	}
	if _, ok := m.Do(first.ID, func(s *Session) View { return s.View() }); ok {
		t.Fatal("swept session should be gone")
	}
}
