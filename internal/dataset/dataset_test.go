package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/meur/gscheck/internal/models"
)

const sample = `{
  "GS_DATA": {
    "mid": {"200": ["30"], "10": ["31", 32]},
    "high": {"10": ["10", "11"], "x": ["99"]}
  },
  "LEGENDARY": {"900": 500, "11": 400, "abc": 1, "777": null},
  "ILVL_GS": {"10": [100, null, 50], "200": [300, 0], "bad": [1]},
  "ITEM_TYPE": {"high": 0, "mid": 1, "low": 2}
}`

func TestParseOrdering(t *testing.T) {
	ds, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(ds.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(ds.Groups))
	}
	if ds.Groups[0].Type != models.SlotMid || ds.Groups[1].Type != models.SlotHigh {
		t.Fatalf("slot types should keep document order, got %s, %s", ds.Groups[0].Type, ds.Groups[1].Type)
	}

	mid := ds.Groups[0].Entries
	if len(mid) != 2 || mid[0].Level != 10 || mid[1].Level != 200 {
		t.Fatalf("levels should be ascending, got %+v", mid)
	}
	if got := mid[0].IDs; len(got) != 2 || got[0] != "31" || got[1] != "32" {
		t.Fatalf("unexpected ids %v", got)
	}

	if high := ds.Groups[1].Entries; len(high) != 1 {
		t.Fatalf("non-numeric level should be skipped, got %+v", high)
	}

	wantLegendary := []string{"11", "900", "abc"}
	if len(ds.Legendary) != len(wantLegendary) {
		t.Fatalf("expected %d overrides, got %+v", len(wantLegendary), ds.Legendary)
	}
	for i, id := range wantLegendary {
		if ds.Legendary[i].ID != id {
			t.Fatalf("override %d: expected %s, got %s", i, id, ds.Legendary[i].ID)
		}
	}
}

func TestParseScoreRows(t *testing.T) {
	ds, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(ds.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(ds.Levels))
	}
	if v, ok := ds.Levels[10].At(0); !ok || v != 100 {
		t.Fatalf("expected 100, got %v %v", v, ok)
	}
	if _, ok := ds.Levels[10].At(1); ok {
		t.Fatal("null cell should be absent")
	}
	if v, ok := ds.Levels[200].At(1); !ok || v != 0 {
		t.Fatalf("recorded zero should be present, got %v %v", v, ok)
	}
	if _, ok := ds.Levels[200].At(5); ok {
		t.Fatal("out of row index should be absent")
	}
	if ds.ItemTypes["mid"] != 1 {
		t.Fatalf("unexpected item types %v", ds.ItemTypes)
	}
}

func TestParseScriptWrapper(t *testing.T) {
	ds, err := Parse([]byte("window.GS_DATA = " + sample + ";\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ds.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(ds.Groups))
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "[1,2]", "{not json", "window.X = 3;"} {
		if _, err := Parse([]byte(input)); err != ErrInvalidDocument {
			t.Fatalf("input %q: expected ErrInvalidDocument, got %v", input, err)
		}
	}
}

func TestParseNames(t *testing.T) {
	names, err := ParseNames([]byte(`window.ITEM_NAMES = {"1": " Félix's Blade ", "x": "skip", "2": "", "3": 4};`))
	if err != nil {
		t.Fatalf("parse names: %v", err)
	}
	if names["1"] != "Félix's Blade" {
		t.Fatalf("expected trimmed name, got %q", names["1"])
	}
	if _, ok := names["x"]; ok {
		t.Fatal("non-numeric id should be dropped")
	}
	if _, ok := names["2"]; ok {
		t.Fatal("empty name should be dropped")
	}
}

func TestLoadFileAndURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GS.json")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(context.Background(), path); err != nil {
		t.Fatalf("load file: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/GS.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(sample))
	}))
	defer srv.Close()

	if _, err := Load(context.Background(), srv.URL+"/GS.json"); err != nil {
		t.Fatalf("load url: %v", err)
	}
	if _, err := Load(context.Background(), srv.URL+"/missing.json"); err == nil {
		t.Fatal("expected error for missing document")
	}
}
