package api

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/meur/gscheck/internal/chart"
	"github.com/meur/gscheck/internal/models"
)

const maxChartSide = 4096

// chartFromQuery builds a one-off chart from ?w=&h=&hidden=&hover_x=
func (s *Server) chartFromQuery(r *http.Request) (chart.Data, error) {
	q := r.URL.Query()

	vp, err := viewportFromQuery(q.Get("w"), q.Get("h"), s.opts.Viewport)
	if err != nil {
		return chart.Data{}, err
	}
	c := chart.NewController(s.catalog.Table(), vp)

	if hidden := q.Get("hidden"); hidden != "" {
		for _, name := range strings.Split(hidden, ",") {
			c.SetVisible(models.SlotType(strings.TrimSpace(name)), false)
		}
	}
	if raw := q.Get("hover_x"); raw != "" {
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return chart.Data{}, fmt.Errorf("hover_x must be a number")
		}
		c.PointerMoved(x)
	}
	return c.Data(), nil
}

func viewportFromQuery(rawW, rawH string, base chart.Viewport) (chart.Viewport, error) {
	vp := base
	if rawW != "" {
		w, err := strconv.Atoi(rawW)
		if err != nil || w <= 0 || w > maxChartSide {
			return vp, fmt.Errorf("w must be between 1 and %d", maxChartSide)
		}
		vp.Width = float64(w)
	}
	if rawH != "" {
		h, err := strconv.Atoi(rawH)
		if err != nil || h <= 0 || h > maxChartSide {
			return vp, fmt.Errorf("h must be between 1 and %d", maxChartSide)
		}
		vp.Height = float64(h)
	}
	if err := vp.Validate(); err != nil {
		return vp, err
	}
	return vp, nil
}

// handleGetChart returns chart data for the query state
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	d, err := s.chartFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// handleGetChartPNG renders the chart for the query state
func (s *Server) handleGetChartPNG(w http.ResponseWriter, r *http.Request) {
	d, err := s.chartFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondPNG(w, d)
}

func respondPNG(w http.ResponseWriter, d chart.Data) {
	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, d); err != nil {
		log.Printf("chart render failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
