// Package dataset decodes the static gear score source and the optional
// item name cache. Both files may be plain JSON or a browser script of the
// form `window.GS_DATA = {...};`.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/meur/gscheck/internal/models"
	"github.com/tidwall/gjson"
)

// ErrInvalidDocument is returned when the source is not a JSON object
var ErrInvalidDocument = errors.New("dataset: document is not a JSON object")

// Load reads a dataset from a file path or an http(s) URL
func Load(ctx context.Context, source string) (*models.Dataset, error) {
	data, err := read(ctx, source)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadNames reads an item name cache from a file path or an http(s) URL
func LoadNames(ctx context.Context, source string) (map[string]string, error) {
	data, err := read(ctx, source)
	if err != nil {
		return nil, err
	}
	return ParseNames(data)
}

func read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, http.DefaultClient, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Parse decodes a GS.json document
func Parse(data []byte) (*models.Dataset, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, err
	}

	ds := &models.Dataset{
		Levels:    make(map[int]models.ScoreRow),
		ItemTypes: make(map[string]int),
	}

	root.Get("ITEM_TYPE").ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			ds.ItemTypes[key.String()] = int(value.Int())
		}
		return true
	})

	root.Get("ILVL_GS").ForEach(func(key, value gjson.Result) bool {
		level, err := strconv.Atoi(key.String())
		if err != nil || !value.IsArray() {
			return true
		}
		cells := value.Array()
		row := make(models.ScoreRow, len(cells))
		for i, cell := range cells {
			if cell.Type == gjson.Number {
				score := cell.Float()
				row[i] = &score
			}
		}
		ds.Levels[level] = row
		return true
	})

	for _, group := range orderedEntries(root.Get("GS_DATA")) {
		slot := models.SlotGroup{Type: models.SlotType(group.key)}
		for _, bucket := range orderedEntries(group.value) {
			level, err := strconv.Atoi(bucket.key)
			if err != nil {
				continue
			}
			entry := models.LevelEntry{Level: level}
			for _, id := range bucket.value.Array() {
				if s := id.String(); s != "" {
					entry.IDs = append(entry.IDs, s)
				}
			}
			slot.Entries = append(slot.Entries, entry)
		}
		ds.Groups = append(ds.Groups, slot)
	}

	for _, o := range orderedEntries(root.Get("LEGENDARY")) {
		if o.value.Type != gjson.Number {
			continue
		}
		ds.Legendary = append(ds.Legendary, models.Override{ID: o.key, Score: o.value.Float()})
	}

	return ds, nil
}

// ParseNames decodes an id -> display name cache. Only numeric ids with a
// non-empty name are kept.
func ParseNames(data []byte) (map[string]string, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	root.ForEach(func(key, value gjson.Result) bool {
		id := key.String()
		name := strings.TrimSpace(value.String())
		if isDigits(id) && name != "" {
			names[id] = name
		}
		return true
	})
	return names, nil
}

func parseObject(data []byte) (gjson.Result, error) {
	data = unwrapScript(data)
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, ErrInvalidDocument
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return gjson.Result{}, ErrInvalidDocument
	}
	return root, nil
}

// unwrapScript strips a BOM and a `name = ...;` assignment around the object
func unwrapScript(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '{' {
		return trimmed
	}
	if i := bytes.IndexByte(trimmed, '='); i >= 0 {
		trimmed = bytes.TrimSpace(trimmed[i+1:])
	}
	return bytes.TrimSpace(bytes.TrimSuffix(trimmed, []byte(";")))
}

type entry struct {
	key   string
	value gjson.Result
}

// orderedEntries lists the members of a JSON object in property order:
// integer keys ascending first, then the remaining keys in document order.
func orderedEntries(obj gjson.Result) []entry {
	var indexed, named []entry
	obj.ForEach(func(key, value gjson.Result) bool {
		e := entry{key: key.String(), value: value}
		if isIndexKey(e.key) {
			indexed = append(indexed, e)
		} else {
			named = append(named, e)
		}
		return true
	})
	sort.SliceStable(indexed, func(i, j int) bool {
		a, _ := strconv.ParseUint(indexed[i].key, 10, 32)
		b, _ := strconv.ParseUint(indexed[j].key, 10, 32)
		return a < b
	})
	return append(indexed, named...)
}

func isIndexKey(key string) bool {
	if !isDigits(key) || (len(key) > 1 && key[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	return err == nil && n < 1<<32-1
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
