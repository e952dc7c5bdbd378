package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meur/gscheck/internal/api"
	"github.com/meur/gscheck/internal/catalog"
	"github.com/meur/gscheck/internal/config"
	"github.com/meur/gscheck/internal/dataset"
	"github.com/meur/gscheck/internal/session"
	"github.com/meur/gscheck/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	ctx := context.Background()

	// Load dataset
	ds, err := dataset.Load(ctx, cfg.DataSource)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	names := loadNames(ctx, cfg)

	c, err := catalog.New(ds, names)
	if err != nil {
		log.Fatalf("Failed to index dataset: %v", err)
	}
	report := c.Index.Report()
	for _, slot := range report.SkippedTypes {
		log.Printf("⚠ Slot type %q has no ITEM_TYPE column, skipped", slot)
	}
	for _, dup := range report.Duplicates {
		log.Printf("⚠ Item %s listed as %s and %s, keeping %s", dup.ID, dup.First, dup.Second, dup.Second)
	}

	vp := cfg.Viewport()
	sessions := session.NewManager(c, vp, cfg.SessionIdle)

	// Create router
	s := api.New(c, sessions, api.Options{
		Viewport:    vp,
		ItemURL:     cfg.ItemURL,
		CORSOrigins: cfg.CORSOrigins,
	})

	// Serve frontend static files
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		FileServer(s.Router(), "/", http.Dir(cfg.StaticDir))
	}

	log.Printf("🚀 GS Checker starting on http://localhost:%s", cfg.Port)
	log.Printf("📦 Dataset: %s (%d items, %d levels)", cfg.DataSource, c.Index.Len(), len(c.Table().Levels()))

	if err := http.ListenAndServe(":"+cfg.Port, s); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadNames merges the name cache file with the SQLite name store. Names
// are optional; failures only disable name search.
func loadNames(ctx context.Context, cfg config.Config) map[string]string {
	names := make(map[string]string)

	if cfg.NamesSource != "" {
		cached, err := dataset.LoadNames(ctx, cfg.NamesSource)
		if err != nil {
			log.Printf("Warning: failed to load item names from %s: %v", cfg.NamesSource, err)
		}
		for id, name := range cached {
			names[id] = name
		}
	}

	if cfg.DBPath != "" {
		store, err := storage.New(cfg.DBPath)
		if err != nil {
			log.Printf("Warning: failed to open name store: %v", err)
		} else {
			defer store.Close()
			stored, err := store.GetNames()
			if err != nil {
				log.Printf("Warning: failed to read name store: %v", err)
			}
			for id, name := range stored {
				names[id] = name
			}
		}
	}

	if len(names) == 0 {
		log.Printf("📛 No item names loaded, name search disabled")
		return nil
	}
	log.Printf("📛 Item names: %d", len(names))
	return names
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
