// Package search filters the item index by id or by item name.
package search

import (
	"strings"

	"github.com/meur/gscheck/internal/gearscore"
	"github.com/meur/gscheck/internal/models"
)

// MaxResults bounds the number of items returned by a query
const MaxResults = 200

// Mode tells how a query was interpreted
type Mode string

const (
	ModeID      Mode = "id"
	ModeName    Mode = "name"
	ModeEmpty   Mode = "empty"    // blank query, show the prompt
	ModeNoNames Mode = "no-names" // name query but no name cache loaded
)

// Result is the outcome of a query. Items keep index order.
type Result struct {
	Query      string        `json:"query"`
	Mode       Mode          `json:"mode"`
	Items      []models.Item `json:"items"`
	TotalCount int           `json:"total_count"`
	Truncated  bool          `json:"truncated"`
}

// Index answers id and name queries over a gear score index
type Index struct {
	items    []models.Item
	names    []string // normalized, parallel to items
	hasNames bool
}

// New prepares a search index over idx
func New(idx *gearscore.Index) *Index {
	s := &Index{
		items:    idx.Items(),
		hasNames: idx.HasNames(),
	}
	s.names = make([]string, len(s.items))
	for i, item := range s.items {
		if item.Name != "" {
			s.names[i] = Normalize(item.Name)
		}
	}
	return s
}

// Search runs a query. It never fails; an unmatched query yields an empty
// result in the mode the query was read in.
func (s *Index) Search(query string) Result {
	trimmed := strings.TrimSpace(query)
	res := Result{Query: trimmed, Items: []models.Item{}}

	switch {
	case trimmed == "":
		res.Mode = ModeEmpty
		return res
	case isDigits(trimmed):
		res.Mode = ModeID
		s.collect(&res, func(i int) bool {
			return strings.Contains(s.items[i].ID, trimmed)
		})
	case !s.hasNames:
		res.Mode = ModeNoNames
	default:
		res.Mode = ModeName
		needle := Normalize(trimmed)
		if needle == "" {
			return res
		}
		s.collect(&res, func(i int) bool {
			return s.names[i] != "" && strings.Contains(s.names[i], needle)
		})
	}
	return res
}

func (s *Index) collect(res *Result, match func(i int) bool) {
	for i := range s.items {
		if !match(i) {
			continue
		}
		res.TotalCount++
		if len(res.Items) < MaxResults {
			res.Items = append(res.Items, s.items[i])
		}
	}
	res.Truncated = res.TotalCount > len(res.Items)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
