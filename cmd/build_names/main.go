package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/meur/gscheck/internal/dataset"
	"github.com/meur/gscheck/internal/namecache"
	"github.com/meur/gscheck/internal/storage"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func main() {
	dbPath := flag.String("db", "./gscheck.db", "SQLite database path")
	dataPath := flag.String("data", "./GS.json", "GS.json path or URL")
	itemURL := flag.String("item-url", namecache.DefaultItemURL, "Item page URL, %s is the item id")
	all := flag.Bool("all", false, "Refetch ids that already have a name")
	dryRun := flag.Bool("dry-run", false, "Print summary without fetching anything")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ds, err := dataset.Load(ctx, *dataPath)
	if err != nil {
		log.Fatalf("%s✗ Failed to load dataset: %v%s", colorRed, err, colorReset)
	}

	ids := namecache.CollectIDs(ds)
	if len(ids) == 0 {
		log.Fatalf("%s✗ Dataset has no item ids%s", colorRed, colorReset)
	}

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatalf("%s✗ Failed to connect to database: %v%s", colorRed, err, colorReset)
	}
	defer store.Close()

	todo := ids
	if !*all {
		todo, err = store.MissingIDs(ids)
		if err != nil {
			log.Fatalf("%s✗ Failed to read existing names: %v%s", colorRed, err, colorReset)
		}
	}

	fmt.Printf("%s📦 Dataset has %d item ids, %d without a name%s\n", colorCyan, len(ids), len(todo), colorReset)

	if *dryRun {
		log.Printf("Dry run: would fetch %d names from %s", len(todo), *itemURL)
		return
	}
	if len(todo) == 0 {
		fmt.Printf("%s✓ Nothing to fetch%s\n", colorGreen, colorReset)
		return
	}

	source := "fetch:" + *itemURL
	save := func(batch map[string]string) error {
		return store.UpsertNames(batch, source)
	}
	progress := func(done, total int) {
		fmt.Printf("  %d/%d\n", done, total)
	}

	res, err := namecache.Build(ctx, namecache.NewFetcher(*itemURL), todo, save, progress)
	if res.Failed > 0 {
		log.Printf("%s⚠ Warning: %d item page(s) could not be fetched%s", colorYellow, res.Failed, colorReset)
	}
	if err != nil {
		log.Fatalf("%s✗ Stopped after %d ids (%d names saved): %v%s", colorRed, res.Processed, res.Found, err, colorReset)
	}

	fmt.Printf("%s✓ Fetched %d ids, found %d names%s\n", colorGreen, res.Processed, res.Found, colorReset)
}
