// Package gearscore indexes the gear score dataset: the score table keyed
// by item level and slot type, the flat item index and the per-type linear
// estimates derived from the table.
package gearscore

import (
	"errors"
	"math"
	"sort"

	"github.com/meur/gscheck/internal/models"
)

// ErrNoLevels is returned when the dataset has no item levels to index
var ErrNoLevels = errors.New("gearscore: score table has no item levels")

// Table holds the score matrix keyed by item level and slot type
type Table struct {
	levels    []int // ascending
	rows      map[int]models.ScoreRow
	typeIndex map[models.SlotType]int
	maxScore  float64
}

// Point is one recorded (level, score) sample
type Point struct {
	Level int     `json:"ilvl"`
	Score float64 `json:"gs"`
}

// Match is the result of a nearest level lookup
type Match struct {
	Score float64 `json:"gs"`
	Level int     `json:"ilvl"`
}

// Row is one line of the reference table. Absent pairs have no entry.
type Row struct {
	Level  int                         `json:"ilvl"`
	Scores map[models.SlotType]float64 `json:"scores"`
}

// NewTable builds the score table from ILVL_GS rows and the ITEM_TYPE
// mapping from slot type name to row index
func NewTable(rows map[int]models.ScoreRow, itemTypes map[string]int) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrNoLevels
	}

	t := &Table{
		levels:    make([]int, 0, len(rows)),
		rows:      make(map[int]models.ScoreRow, len(rows)),
		typeIndex: make(map[models.SlotType]int, len(itemTypes)),
	}
	for name, idx := range itemTypes {
		t.typeIndex[models.SlotType(name)] = idx
	}
	for level, row := range rows {
		t.levels = append(t.levels, level)
		t.rows[level] = row
		for i := range row {
			if v, ok := row.At(i); ok && v > t.maxScore {
				t.maxScore = v
			}
		}
	}
	sort.Ints(t.levels)

	return t, nil
}

// Levels returns the indexed item levels in ascending order
func (t *Table) Levels() []int {
	out := make([]int, len(t.levels))
	copy(out, t.levels)
	return out
}

// MinLevel returns the lowest indexed item level
func (t *Table) MinLevel() int { return t.levels[0] }

// MaxLevel returns the highest indexed item level
func (t *Table) MaxLevel() int { return t.levels[len(t.levels)-1] }

// MaxScore returns the highest score recorded anywhere in the table
func (t *Table) MaxScore() float64 { return t.maxScore }

// TypeIndex resolves the row index of a slot type
func (t *Table) TypeIndex(slot models.SlotType) (int, bool) {
	idx, ok := t.typeIndex[slot]
	return idx, ok
}

// SlotTypes returns the slot types known to the table, ordered by row index
func (t *Table) SlotTypes() []models.SlotType {
	types := make([]models.SlotType, 0, len(t.typeIndex))
	for slot := range t.typeIndex {
		types = append(types, slot)
	}
	sort.Slice(types, func(i, j int) bool {
		a, b := t.typeIndex[types[i]], t.typeIndex[types[j]]
		if a != b {
			return a < b
		}
		return types[i] < types[j]
	})
	return types
}

// Exact returns the score recorded for (level, slot). A recorded zero is
// reported as present.
func (t *Table) Exact(level int, slot models.SlotType) (float64, bool) {
	idx, ok := t.typeIndex[slot]
	if !ok {
		return 0, false
	}
	row, ok := t.rows[level]
	if !ok {
		return 0, false
	}
	return row.At(idx)
}

// Nearest returns the positive score of slot at the level closest to level.
// Ties go to the lower level.
func (t *Table) Nearest(level int, slot models.SlotType) (Match, bool) {
	var best Match
	found := false
	bestDist := math.MaxInt
	for _, l := range t.levels {
		score, ok := t.Exact(l, slot)
		if !ok || score <= 0 {
			continue
		}
		if d := absInt(l - level); d < bestDist {
			best = Match{Score: score, Level: l}
			bestDist = d
			found = true
		}
	}
	return best, found
}

// NearestLevel snaps level to the closest indexed item level. Ties go to
// the lower level.
func (t *Table) NearestLevel(level float64) int {
	best := t.levels[0]
	bestDist := math.Abs(float64(best) - level)
	for _, l := range t.levels[1:] {
		if d := math.Abs(float64(l) - level); d < bestDist {
			best = l
			bestDist = d
		}
	}
	return best
}

// Series returns the positive samples of slot in ascending level order
func (t *Table) Series(slot models.SlotType) []Point {
	var points []Point
	for _, l := range t.levels {
		if score, ok := t.Exact(l, slot); ok && score > 0 {
			points = append(points, Point{Level: l, Score: score})
		}
	}
	return points
}

// Rows returns the reference table with the highest level first
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, len(t.levels))
	for i := len(t.levels) - 1; i >= 0; i-- {
		level := t.levels[i]
		row := Row{Level: level, Scores: make(map[models.SlotType]float64)}
		for slot := range t.typeIndex {
			if score, ok := t.Exact(level, slot); ok {
				row.Scores[slot] = score
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
