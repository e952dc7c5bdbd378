package models

// Dataset is the decoded gear score source, with the key order of the
// source document preserved where it drives item ordering
type Dataset struct {
	Groups    []SlotGroup      // GS_DATA
	Legendary []Override       // LEGENDARY
	Levels    map[int]ScoreRow // ILVL_GS
	ItemTypes map[string]int   // ITEM_TYPE
}

// SlotGroup lists the item ids of one slot type, grouped by item level
type SlotGroup struct {
	Type    SlotType
	Entries []LevelEntry
}

// LevelEntry is one level bucket of a SlotGroup
type LevelEntry struct {
	Level int
	IDs   []string
}

// Override replaces the score of an item with a legendary value
type Override struct {
	ID    string
	Score float64
}

// ScoreRow holds the scores of one item level, indexed by slot type index.
// A nil entry means the pair was never recorded.
type ScoreRow []*float64

// At returns the recorded score at idx, if any
func (r ScoreRow) At(idx int) (float64, bool) {
	if idx < 0 || idx >= len(r) || r[idx] == nil {
		return 0, false
	}
	return *r[idx], true
}
