package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/meur/gscheck/internal/catalog"
	"github.com/meur/gscheck/internal/chart"
	"github.com/meur/gscheck/internal/dataset"
	"github.com/meur/gscheck/internal/gearscore"
	"github.com/meur/gscheck/internal/models"
	"github.com/meur/gscheck/internal/search"
	"github.com/meur/gscheck/internal/session"
)

const doc = `{
  "GS_DATA": {
    "high": {"200": ["4201", "4202"], "213": ["5000"]},
    "mid": {"200": ["1337"]}
  },
  "LEGENDARY": {"4202": 900, "9999": 1200},
  "ILVL_GS": {"200": [300, 200], "213": [330, 0]},
  "ITEM_TYPE": {"high": 0, "mid": 1}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ds, err := dataset.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := catalog.New(ds, map[string]string{"1337": "Félix's Band"})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	vp := chart.Viewport{Width: 570, Height: 260, Margins: chart.DefaultMargins()}
	return New(c, session.NewManager(c, vp, time.Minute), Options{
		Viewport: vp,
		ItemURL:  "https://db.example/?item=%s",
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestSummary(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	sum := decode[catalog.Summary](t, rec)
	if sum.Total != 5 || sum.ByType["legendary"] != 2 || !sum.HasNames {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestSearchItems(t *testing.T) {
	s := newTestServer(t)

	res := decode[search.Result](t, do(t, s, http.MethodGet, "/api/items?q=42", ""))
	if res.Mode != search.ModeID || res.TotalCount != 2 {
		t.Fatalf("unexpected id search %+v", res)
	}

	res = decode[search.Result](t, do(t, s, http.MethodGet, "/api/items?q=felix", ""))
	if res.Mode != search.ModeName || res.TotalCount != 1 || res.Items[0].ID != "1337" {
		t.Fatalf("unexpected name search %+v", res)
	}

	res = decode[search.Result](t, do(t, s, http.MethodGet, "/api/items", ""))
	if res.Mode != search.ModeEmpty {
		t.Fatalf("expected empty mode, got %s", res.Mode)
	}
}

func TestGetItem(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/items/4202", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	item := decode[map[string]interface{}](t, rec)
	if item["type"] != "legendary" || item["gs"] != 900.0 || item["link"] != "https://db.example/?item=4202" {
		t.Fatalf("unexpected item %v", item)
	}

	rec = do(t, s, http.MethodGet, "/api/items/9999", "")
	item = decode[map[string]interface{}](t, rec)
	if item["ilvl"] != nil {
		t.Fatalf("legendary-only item should have no level, got %v", item["ilvl"])
	}

	if rec := do(t, s, http.MethodGet, "/api/items/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEstimate(t *testing.T) {
	s := newTestServer(t)

	got := decode[map[string]interface{}](t, do(t, s, http.MethodGet, "/api/estimate?level=205&type=high", ""))
	if got["available"] != true || got["basis"] != "nearest" || got["matched_level"] != 200.0 || got["value"] != 300.0 {
		t.Fatalf("unexpected estimate %v", got)
	}
	if _, ok := got["linear"]; !ok {
		t.Fatal("expected a linear projection for high")
	}

	got = decode[map[string]interface{}](t, do(t, s, http.MethodGet, "/api/estimate?level=213&type=high", ""))
	if got["basis"] != "exact" || got["value"] != 330.0 {
		t.Fatalf("unexpected exact estimate %v", got)
	}

	got = decode[map[string]interface{}](t, do(t, s, http.MethodGet, "/api/estimate?level=200&type=low", ""))
	if got["available"] != false {
		t.Fatalf("expected unavailable estimate, got %v", got)
	}
	if _, ok := got["value"]; ok {
		t.Fatal("unavailable estimate should carry no value")
	}

	if rec := do(t, s, http.MethodGet, "/api/estimate?level=abc&type=high", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCoefficients(t *testing.T) {
	got := decode[map[string]interface{}](t, do(t, newTestServer(t), http.MethodGet, "/api/coefficients", ""))
	if got["high"] == nil {
		t.Fatal("expected a model for high")
	}
	if v, ok := got["mid"]; !ok || v != nil {
		t.Fatalf("mid has one positive sample and should be null, got %v", v)
	}
}

func TestTable(t *testing.T) {
	got := decode[struct {
		Types []models.SlotType `json:"types"`
		Rows  []gearscore.Row   `json:"rows"`
	}](t, do(t, newTestServer(t), http.MethodGet, "/api/table", ""))
	if len(got.Types) != 5 {
		t.Fatalf("expected 5 charted types, got %v", got.Types)
	}
	if len(got.Rows) != 2 || got.Rows[0].Level != 213 || got.Rows[1].Scores["mid"] != 200 {
		t.Fatalf("unexpected rows %+v", got.Rows)
	}
}

func TestChart(t *testing.T) {
	s := newTestServer(t)

	d := decode[chart.Data](t, do(t, s, http.MethodGet, "/api/chart?w=570&h=260&hidden=mid&hover_x=9999", ""))
	if len(d.Series) != 1 || d.Series[0].Type != "high" {
		t.Fatalf("unexpected series %+v", d.Series)
	}
	if d.Hover == nil || d.Hover.Level != 213 {
		t.Fatalf("unexpected hover %+v", d.Hover)
	}

	if rec := do(t, s, http.MethodGet, "/api/chart?w=-1", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec := do(t, s, http.MethodGet, "/api/chart.png", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected png response %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected PNG body")
	}
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d", rec.Code)
	}
	view := decode[session.View](t, rec)
	base := "/api/sessions/" + view.ID

	view = decode[session.View](t, do(t, s, http.MethodPut, base+"/query", `{"query":"1337"}`))
	if view.Search.TotalCount != 1 {
		t.Fatalf("unexpected search %+v", view.Search)
	}

	view = decode[session.View](t, do(t, s, http.MethodPost, base+"/pointer", `{"x":-20}`))
	if view.Chart.Hover == nil || view.Chart.Hover.Level != 200 {
		t.Fatalf("unexpected hover %+v", view.Chart.Hover)
	}

	view = decode[session.View](t, do(t, s, http.MethodPut, base+"/visibility/high", `{"visible":false}`))
	for _, slot := range view.Visible {
		if slot == "high" {
			t.Fatal("high should be hidden")
		}
	}
	if rec := do(t, s, http.MethodPut, base+"/visibility/offhand", `{"visible":false}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}

	view = decode[session.View](t, do(t, s, http.MethodPut, base+"/viewport", `{"width":1070,"height":460}`))
	if view.Chart.Viewport.Width != 1070 || view.Chart.Hover.X != 50 {
		t.Fatalf("unexpected viewport %+v", view.Chart)
	}

	view = decode[session.View](t, do(t, s, http.MethodDelete, base+"/pointer", ""))
	if view.Chart.Hover != nil {
		t.Fatal("hover should be cleared")
	}

	rec = do(t, s, http.MethodGet, base+"/chart.png", "")
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("unexpected session chart %d", rec.Code)
	}

	view = decode[session.View](t, do(t, s, http.MethodGet, base, ""))
	if view.Search.Query != "1337" {
		t.Fatalf("session should keep its query, got %q", view.Search.Query)
	}

	if rec := do(t, s, http.MethodDelete, base, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete status %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, base, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestSessionBadRequests(t *testing.T) {
	s := newTestServer(t)
	view := decode[session.View](t, do(t, s, http.MethodPost, "/api/sessions", ""))
	base := "/api/sessions/" + view.ID

	if rec := do(t, s, http.MethodPost, base+"/pointer", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without x, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPut, base+"/viewport", `{"width":0,"height":10}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty viewport, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPut, base+"/viewport", `{"width":100,"height":100,"margins":{"left":60,"right":40}}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for margins wider than the viewport, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPut, base+"/viewport", `{"width":100,"height":100,"margins":{"left":-1}}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative margins, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/chart?w=60&h=100", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a chart narrower than its margins, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPut, "/api/sessions/nope/query", `{"query":"1"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", rec.Code)
	}
}
