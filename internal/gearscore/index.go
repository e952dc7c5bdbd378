package gearscore

import (
	"fmt"

	"github.com/meur/gscheck/internal/models"
)

// Index is the flat item index built from a dataset. Items live in a
// single arena; the id lookup stores arena positions, so an override
// patches the one canonical record for an id.
type Index struct {
	items  []models.Item
	byID   map[string]int
	table  *Table
	report Report
	names  int
}

// Report collects data-quality findings from an index build
type Report struct {
	SkippedTypes []models.SlotType `json:"skipped_types,omitempty"` // missing from ITEM_TYPE
	Duplicates   []DuplicateID     `json:"duplicates,omitempty"`
}

// DuplicateID records an id listed more than once in GS_DATA
type DuplicateID struct {
	ID     string          `json:"id"`
	First  models.SlotType `json:"first"`
	Second models.SlotType `json:"second"`
}

// BuildIndex normalizes a dataset into an Index. names is optional.
func BuildIndex(ds *models.Dataset, names map[string]string) (*Index, error) {
	table, err := NewTable(ds.Levels, ds.ItemTypes)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	idx := &Index{
		byID:  make(map[string]int),
		table: table,
	}

	for _, group := range ds.Groups {
		if _, ok := table.TypeIndex(group.Type); !ok {
			idx.report.SkippedTypes = append(idx.report.SkippedTypes, group.Type)
			continue
		}
		for _, entry := range group.Entries {
			score, _ := table.Exact(entry.Level, group.Type)
			for _, id := range entry.IDs {
				level := entry.Level
				item := models.Item{
					ID:       id,
					Level:    &level,
					SlotType: group.Type,
					Score:    score,
				}
				if pos, ok := idx.byID[id]; ok {
					idx.report.Duplicates = append(idx.report.Duplicates, DuplicateID{
						ID:     id,
						First:  idx.items[pos].SlotType,
						Second: group.Type,
					})
					idx.items[pos] = item
					continue
				}
				idx.insert(item)
			}
		}
	}

	for _, o := range ds.Legendary {
		if pos, ok := idx.byID[o.ID]; ok {
			idx.items[pos].Score = o.Score
			idx.items[pos].SlotType = models.SlotLegendary
			continue
		}
		idx.insert(models.Item{
			ID:       o.ID,
			SlotType: models.SlotLegendary,
			Score:    o.Score,
		})
	}

	for i := range idx.items {
		if name, ok := names[idx.items[i].ID]; ok && name != "" {
			idx.items[i].Name = name
			idx.names++
		}
	}

	return idx, nil
}

func (idx *Index) insert(item models.Item) {
	idx.byID[item.ID] = len(idx.items)
	idx.items = append(idx.items, item)
}

// Len returns the number of indexed items
func (idx *Index) Len() int { return len(idx.items) }

// Table returns the score table backing the index
func (idx *Index) Table() *Table { return idx.table }

// Report returns the data-quality findings of the build
func (idx *Index) Report() Report { return idx.report }

// HasNames reports whether any item carries a display name
func (idx *Index) HasNames() bool { return idx.names > 0 }

// Items returns the items in insertion order
func (idx *Index) Items() []models.Item {
	out := make([]models.Item, len(idx.items))
	copy(out, idx.items)
	return out
}

// At returns the item at arena position i
func (idx *Index) At(i int) models.Item { return idx.items[i] }

// Item looks up an item by id
func (idx *Index) Item(id string) (models.Item, bool) {
	pos, ok := idx.byID[id]
	if !ok {
		return models.Item{}, false
	}
	return idx.items[pos], true
}

// Counts returns the number of items per slot type
func (idx *Index) Counts() map[models.SlotType]int {
	counts := make(map[models.SlotType]int)
	for _, item := range idx.items {
		counts[item.SlotType]++
	}
	return counts
}
