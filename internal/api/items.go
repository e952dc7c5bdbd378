package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meur/gscheck/internal/gearscore"
	"github.com/meur/gscheck/internal/models"
)

// handleGetSummary returns item counts per slot type
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Summary())
}

// handleGetTypes returns the slot type legend
func (s *Server) handleGetTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.SlotTypes())
}

// handleGetTable returns the reference table, highest level first
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"types": models.ChartedSlotTypes(),
		"rows":  s.catalog.Table().Rows(),
	})
}

// handleGetCoefficients returns the linear model of every slot type.
// Types without a model are reported as null.
func (s *Server) handleGetCoefficients(w http.ResponseWriter, r *http.Request) {
	out := make(map[models.SlotType]*gearscore.Model)
	for _, slot := range models.ChartedSlotTypes() {
		if m, ok := s.catalog.Coefficients[slot]; ok {
			out[slot] = &m
		} else {
			out[slot] = nil
		}
	}
	respondJSON(w, http.StatusOK, out)
}

type estimateResponse struct {
	Level     int             `json:"ilvl"`
	Type      models.SlotType `json:"type"`
	Available bool            `json:"available"`
	*gearscore.Estimate
	Linear *float64 `json:"linear,omitempty"`
}

// handleGetEstimate estimates the gear score of a level and slot type
func (s *Server) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "level must be an integer")
		return
	}
	slot := models.SlotType(r.URL.Query().Get("type"))
	if slot == "" {
		respondError(w, http.StatusBadRequest, "type is required")
		return
	}

	resp := estimateResponse{Level: level, Type: slot}
	if est, ok := s.catalog.Table().Estimate(level, slot); ok {
		resp.Available = true
		resp.Estimate = &est
	}
	if m, ok := s.catalog.Coefficients[slot]; ok {
		v := m.At(float64(level))
		resp.Linear = &v
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleSearchItems searches items by id or name
func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Search.Search(r.URL.Query().Get("q")))
}

type itemResponse struct {
	models.Item
	Link string `json:"link"`
}

// handleGetItem returns a single item by id
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, ok := s.catalog.Index.Item(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}

	respondJSON(w, http.StatusOK, itemResponse{Item: item, Link: s.itemLink(id)})
}

func (s *Server) itemLink(id string) string {
	if s.opts.ItemURL == "" || !strings.Contains(s.opts.ItemURL, "%s") {
		return ""
	}
	return fmt.Sprintf(s.opts.ItemURL, id)
}
