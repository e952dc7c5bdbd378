// Package catalog bundles everything derived from one loaded dataset.
package catalog

import (
	"github.com/meur/gscheck/internal/gearscore"
	"github.com/meur/gscheck/internal/models"
	"github.com/meur/gscheck/internal/search"
)

// Catalog is the read-only view of a loaded dataset. A reload builds a new
// Catalog; an existing one is never modified.
type Catalog struct {
	Index        *gearscore.Index
	Search       *search.Index
	Coefficients map[models.SlotType]gearscore.Model
}

// New indexes ds. names may be nil when no name cache is available.
func New(ds *models.Dataset, names map[string]string) (*Catalog, error) {
	idx, err := gearscore.BuildIndex(ds, names)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Index:        idx,
		Search:       search.New(idx),
		Coefficients: gearscore.EstimateCoefficients(idx.Table()),
	}, nil
}

// Table returns the score table of the catalog
func (c *Catalog) Table() *gearscore.Table {
	return c.Index.Table()
}

// Summary counts the indexed items per slot type
type Summary struct {
	Total    int                     `json:"total"`
	ByType   map[models.SlotType]int `json:"by_type"`
	Levels   int                     `json:"levels"`
	HasNames bool                    `json:"has_names"`
	Report   gearscore.Report        `json:"report"`
}

// Summary returns the item counts shown in the page header
func (c *Catalog) Summary() Summary {
	return Summary{
		Total:    c.Index.Len(),
		ByType:   c.Index.Counts(),
		Levels:   len(c.Table().Levels()),
		HasNames: c.Index.HasNames(),
		Report:   c.Index.Report(),
	}
}
