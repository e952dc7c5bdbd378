// Package namecache builds the item id -> display name cache by reading
// item pages of the reference database site.
package namecache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/meur/gscheck/internal/models"
	"github.com/tidwall/gjson"
)

const (
	// DefaultItemURL is the item page template; %s is the item id
	DefaultItemURL = "https://wotlk.evowow.com/?item=%s"
	// DefaultUserAgent identifies the fetcher to the site
	DefaultUserAgent = "gscheck item-names/1.0"
	// CheckpointEvery is how many ids are processed between checkpoints
	CheckpointEvery = 50
)

var itemBlob = regexp.MustCompile(`g_items[^\n]*?(\{.+?\})`)

// ParseItemName extracts the item name from an item page. The page embeds
// a `g_items[...]` JSON blob carrying `name_enus` or `name`.
func ParseItemName(page string) (string, bool) {
	m := itemBlob.FindStringSubmatch(page)
	if m == nil || !gjson.Valid(m[1]) {
		return "", false
	}
	blob := gjson.Parse(m[1])
	name := blob.Get("name_enus").String()
	if name == "" {
		name = blob.Get("name").String()
	}
	name = strings.TrimSpace(name)
	return name, name != ""
}

// Fetcher reads item names over HTTP
type Fetcher struct {
	Client    *http.Client
	ItemURL   string
	UserAgent string
}

// NewFetcher returns a fetcher for itemURL with an 8 second timeout
func NewFetcher(itemURL string) *Fetcher {
	if itemURL == "" {
		itemURL = DefaultItemURL
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: 8 * time.Second},
		ItemURL:   itemURL,
		UserAgent: DefaultUserAgent,
	}
}

// Fetch returns the name of item id. ok is false when the page exists but
// has no name, or the site does not answer with 200.
func (f *Fetcher) Fetch(ctx context.Context, id string) (name string, ok bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(f.ItemURL, id), nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("fetch item %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("read item %s: %w", id, err)
	}
	name, ok = ParseItemName(string(body))
	return name, ok, nil
}

// CollectIDs returns every numeric item id of the dataset, sorted and
// without duplicates
func CollectIDs(ds *models.Dataset) []string {
	seen := make(map[string]bool)
	add := func(id string) {
		if isDigits(id) {
			seen[id] = true
		}
	}
	for _, g := range ds.Groups {
		for _, e := range g.Entries {
			for _, id := range e.IDs {
				add(id)
			}
		}
	}
	for _, o := range ds.Legendary {
		add(o.ID)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Result summarizes a Build run
type Result struct {
	Processed int
	Found     int
	Failed    int
}

// Build fetches the names of ids. Every CheckpointEvery ids, and once at
// the end, the names found since the last checkpoint are passed to save.
// Failed fetches are counted and skipped.
func Build(ctx context.Context, f *Fetcher, ids []string, save func(map[string]string) error, progress func(done, total int)) (Result, error) {
	var res Result
	batch := make(map[string]string)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := save(batch); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
		batch = make(map[string]string)
		return nil
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			if ferr := flush(); ferr != nil {
				return res, ferr
			}
			return res, err
		}

		name, ok, err := f.Fetch(ctx, id)
		res.Processed++
		switch {
		case err != nil:
			res.Failed++
		case ok:
			batch[id] = name
			res.Found++
		}

		if res.Processed%CheckpointEvery == 0 {
			if progress != nil {
				progress(res.Processed, len(ids))
			}
			if err := flush(); err != nil {
				return res, err
			}
		}
	}

	return res, flush()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
