package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/meur/gscheck/internal/namecache"
	"github.com/meur/gscheck/internal/storage"
)

func main() {
	dbPath := flag.String("db", "./gscheck.db", "SQLite database path")
	outDir := flag.String("out", ".", "Output directory")
	flag.Parse()

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	names, err := store.GetNames()
	if err != nil {
		log.Fatalf("Failed to read names: %v", err)
	}
	fmt.Printf("Loaded %d names\n", len(names))

	outputs := []struct {
		file  string
		write func(io.Writer, map[string]string) error
	}{
		{"item_names_cache.json", namecache.WriteJSON},
		{"item-names.js", namecache.WriteScript},
	}
	for _, out := range outputs {
		path := filepath.Join(*outDir, out.file)
		if err := writeFile(path, names, out.write); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("✓ Wrote %s\n", path)
	}
}

func writeFile(path string, names map[string]string, write func(io.Writer, map[string]string) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, names); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
