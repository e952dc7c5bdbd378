package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meur/gscheck/internal/chart"
	"github.com/meur/gscheck/internal/models"
	"github.com/meur/gscheck/internal/session"
)

type queryRequest struct {
	Query string `json:"query"`
}

type pointerRequest struct {
	X *float64 `json:"x"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible"`
}

type viewportRequest struct {
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Margins *chart.Margins `json:"margins,omitempty"`
}

// handleCreateSession starts a new viewer session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusCreated, s.sessions.Create())
}

// withSession runs cmd on the session named in the URL
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, cmd func(*session.Session) session.View) {
	id := chi.URLParam(r, "id")

	view, ok := s.sessions.Do(id, cmd)
	if !ok {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleGetSession returns the current view of a session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, (*session.Session).View)
}

// handleDeleteSession ends a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSetQuery changes the search query of a session
func (s *Server) handleSetQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.withSession(w, r, func(sess *session.Session) session.View {
		return sess.OnSearchQueryChanged(req.Query)
	})
}

// handlePointerMove hovers the level under a pixel position
func (s *Server) handlePointerMove(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if err := decodeJSON(r, &req); err != nil || req.X == nil {
		respondError(w, http.StatusBadRequest, "x is required")
		return
	}
	s.withSession(w, r, func(sess *session.Session) session.View {
		return sess.OnPointerMoved(*req.X)
	})
}

// handlePointerLeave clears the hover of a session
func (s *Server) handlePointerLeave(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, (*session.Session).OnPointerLeft)
}

// handleSetVisibility shows or hides a slot type
func (s *Server) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	slot := models.SlotType(chi.URLParam(r, "type"))

	var req visibilityRequest
	if err := decodeJSON(r, &req); err != nil || req.Visible == nil {
		respondError(w, http.StatusBadRequest, "visible is required")
		return
	}

	known := true
	id := chi.URLParam(r, "id")
	view, ok := s.sessions.Do(id, func(sess *session.Session) session.View {
		v, toggled := sess.OnVisibilityToggled(slot, *req.Visible)
		known = toggled
		return v
	})
	if !ok {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	if !known {
		respondError(w, http.StatusBadRequest, "Unknown slot type")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleSetViewport resizes the chart of a session
func (s *Server) handleSetViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Width > maxChartSide || req.Height > maxChartSide {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("width and height must be at most %d", maxChartSide))
		return
	}

	vp := chart.Viewport{Width: req.Width, Height: req.Height, Margins: s.opts.Viewport.Margins}
	if req.Margins != nil {
		vp.Margins = *req.Margins
	}
	if err := vp.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withSession(w, r, func(sess *session.Session) session.View {
		return sess.OnResize(vp)
	})
}

// handleGetSessionChartPNG renders the chart of a session
func (s *Server) handleGetSessionChartPNG(w http.ResponseWriter, r *http.Request) {
	var data chart.Data
	_, ok := s.sessions.Do(chi.URLParam(r, "id"), func(sess *session.Session) session.View {
		data = sess.Chart()
		return session.View{}
	})
	if !ok {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	respondPNG(w, data)
}
