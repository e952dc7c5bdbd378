package gearscore

import "github.com/meur/gscheck/internal/models"

// Model is a linear gear score model for one slot type
type Model struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the model at level
func (m Model) At(level float64) float64 {
	return m.Slope*level + m.Intercept
}

// Fit draws a line through the first and last sample. It needs at least two
// samples with distinct levels.
func Fit(samples []Point) (Model, bool) {
	if len(samples) < 2 {
		return Model{}, false
	}
	first, last := samples[0], samples[len(samples)-1]
	if first.Level == last.Level {
		return Model{}, false
	}
	slope := (last.Score - first.Score) / float64(last.Level-first.Level)
	return Model{
		Slope:     slope,
		Intercept: first.Score - slope*float64(first.Level),
	}, true
}

// EstimateCoefficients fits a model for every slot type of the table.
// Types with fewer than two positive samples are left out.
func EstimateCoefficients(t *Table) map[models.SlotType]Model {
	fits := make(map[models.SlotType]Model)
	for _, slot := range t.SlotTypes() {
		if m, ok := Fit(t.Series(slot)); ok {
			fits[slot] = m
		}
	}
	return fits
}

// Basis tells how an estimate was obtained
type Basis string

const (
	BasisExact   Basis = "exact"
	BasisNearest Basis = "nearest"
)

// Estimate is a gear score value for a (level, slot type) query
type Estimate struct {
	Value        float64 `json:"value"`
	Basis        Basis   `json:"basis"`
	MatchedLevel *int    `json:"matched_level,omitempty"`
}

// Estimate returns the exact score for (level, slot) when one is recorded,
// otherwise the score at the nearest level that has one
func (t *Table) Estimate(level int, slot models.SlotType) (Estimate, bool) {
	if score, ok := t.Exact(level, slot); ok && score > 0 {
		return Estimate{Value: score, Basis: BasisExact}, true
	}
	match, ok := t.Nearest(level, slot)
	if !ok {
		return Estimate{}, false
	}
	matched := match.Level
	return Estimate{Value: match.Score, Basis: BasisNearest, MatchedLevel: &matched}, true
}
