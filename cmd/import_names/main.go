package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/meur/gscheck/internal/dataset"
	"github.com/meur/gscheck/internal/storage"
)

func main() {
	dbPath := flag.String("db", "./gscheck.db", "SQLite database path")
	files := flag.String("files", "./item_names_cache.json,./item-names.js", "Comma-separated name cache files")
	flag.Parse()

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, path := range strings.Split(*files, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		n, err := importNames(ctx, store, path)
		if err != nil {
			log.Printf("Warning: failed to import %s: %v", path, err)
		} else {
			log.Printf("✓ Imported %d names from %s", n, path)
		}
	}

	total, err := store.Count()
	if err != nil {
		log.Fatalf("Failed to count names: %v", err)
	}
	log.Printf("🌱 Import complete! %d names stored", total)
}

func importNames(ctx context.Context, store *storage.Store, path string) (int, error) {
	names, err := dataset.LoadNames(ctx, path)
	if err != nil {
		return 0, err
	}
	if err := store.UpsertNames(names, "import:"+filepath.Base(path)); err != nil {
		return 0, err
	}
	return len(names), nil
}
