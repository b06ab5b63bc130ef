package aggregate

import (
	"fmt"
	"iter"
	"math"

	"github.com/napolitain/solver-wos/internal/models"
)

// TimeModel selects how per-level time accrues in formula mode
type TimeModel string

const (
	// TimeFlat charges TimePerLevel for every level
	TimeFlat TimeModel = "flat"
	// TimeCumulative charges TimePerLevel times the level's position in the range (1-based)
	TimeCumulative TimeModel = "cumulative"
)

// ParseTimeModel validates a configured time model name
func ParseTimeModel(s string) (TimeModel, error) {
	switch m := TimeModel(s); m {
	case TimeFlat, TimeCumulative:
		return m, nil
	case "":
		return TimeFlat, nil
	}
	return "", fmt.Errorf("unknown time model %q (want %q or %q)", s, TimeFlat, TimeCumulative)
}

// Formula computes per-level costs analytically: the cost grows
// geometrically from BaseCost at the first level of the range.
type Formula struct {
	BaseCost               float64
	CostMultiplierPerLevel float64
	TimePerLevel           float64 // seconds
	TimeModel              TimeModel
}

// LevelCost is the raw cost and time of one level
type LevelCost struct {
	Level       int
	Cost        float64
	TimeSeconds float64
}

// Levels yields one row per level in [Start, End], ascending. The sequence
// is lazy and can be ranged over any number of times.
func (f Formula) Levels(r models.LevelRange) iter.Seq[LevelCost] {
	return func(yield func(LevelCost) bool) {
		for lvl := r.Start; lvl <= r.End; lvl++ {
			position := lvl - r.Start
			row := LevelCost{
				Level:       lvl,
				Cost:        f.BaseCost * math.Pow(f.CostMultiplierPerLevel, float64(position)),
				TimeSeconds: f.TimePerLevel,
			}
			if f.TimeModel == TimeCumulative {
				row.TimeSeconds = f.TimePerLevel * float64(position+1)
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Sum folds the formula over the range into raw totals under resource rt.
// Returns ErrInvalidRange when End <= Start.
func (f Formula) Sum(rt models.ResourceType, r models.LevelRange) (models.Totals, error) {
	if err := r.Validate(); err != nil {
		return models.Totals{}, err
	}

	totals := models.NewTotals()
	for row := range f.Levels(r) {
		totals.Resources[rt] += row.Cost
		totals.TimeSeconds += row.TimeSeconds
		totals.Levels++
	}
	return totals, nil
}
