package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/meur/gscheck/internal/catalog"
	"github.com/meur/gscheck/internal/chart"
	"github.com/meur/gscheck/internal/session"
)

// Options configures the API server
type Options struct {
	Viewport    chart.Viewport
	ItemURL     string   // item page template, %s is the item id
	CORSOrigins []string // defaults to localhost
}

// Server holds the HTTP server dependencies
type Server struct {
	catalog  *catalog.Catalog
	sessions *session.Manager
	opts     Options
	router   chi.Router
}

// New creates a new API server
func New(c *catalog.Catalog, sessions *session.Manager, opts Options) *Server {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"http://localhost:*"}
	}
	s := &Server{
		catalog:  c,
		sessions: sessions,
		opts:     opts,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the router so callers can mount extra handlers
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Dataset
		r.Get("/summary", s.handleGetSummary)
		r.Get("/types", s.handleGetTypes)
		r.Get("/table", s.handleGetTable)
		r.Get("/coefficients", s.handleGetCoefficients)
		r.Get("/estimate", s.handleGetEstimate)

		// Items
		r.Get("/items", s.handleSearchItems)
		r.Get("/items/{id}", s.handleGetItem)

		// Chart
		r.Get("/chart", s.handleGetChart)
		r.Get("/chart.png", s.handleGetChartPNG)

		// Sessions
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Put("/query", s.handleSetQuery)
			r.Post("/pointer", s.handlePointerMove)
			r.Delete("/pointer", s.handlePointerLeave)
			r.Put("/visibility/{type}", s.handleSetVisibility)
			r.Put("/viewport", s.handleSetViewport)
			r.Get("/chart.png", s.handleGetSessionChartPNG)
		})
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
