package aggregate

import (
	"fmt"

	"github.com/napolitain/solver-wos/internal/models"
)

// RangePolicy decides which table rows belong to a level range.
// An engine uses exactly one policy for every table it sums.
type RangePolicy string

const (
	// HalfOpen includes rows with Start <= level < End
	HalfOpen RangePolicy = "half-open"
	// LeftOpen includes rows with Start < level <= End, reading each row as
	// the cost to reach its level from the one below
	LeftOpen RangePolicy = "left-open"
)

// ParseRangePolicy validates a configured policy name
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch p := RangePolicy(s); p {
	case HalfOpen, LeftOpen:
		return p, nil
	case "":
		return HalfOpen, nil
	}
	return "", fmt.Errorf("unknown range policy %q (want %q or %q)", s, HalfOpen, LeftOpen)
}

// Contains reports whether level falls in r under the policy
func (p RangePolicy) Contains(r models.LevelRange, level int) bool {
	if p == LeftOpen {
		return level > r.Start && level <= r.End
	}
	return level >= r.Start && level < r.End
}

// SumTable adds up the resources and time of every row inside the range.
// Missing levels and missing resource columns contribute nothing. When no
// row matches, the totals are zero and Empty reports true.
func SumTable(rows []models.CostTimeRow, r models.LevelRange, policy RangePolicy) (models.Totals, error) {
	if err := r.Validate(); err != nil {
		return models.Totals{}, err
	}

	totals := models.NewTotals()
	for _, row := range rows {
		if !policy.Contains(r, row.Level) {
			continue
		}
		totals.Resources.Add(row.Resources, 1)
		totals.TimeSeconds += row.TimeSeconds
		totals.Levels++
	}
	return totals, nil
}

// Rows returns the rows inside the range, in table order
func Rows(rows []models.CostTimeRow, r models.LevelRange, policy RangePolicy) []models.CostTimeRow {
	var out []models.CostTimeRow
	for _, row := range rows {
		if policy.Contains(r, row.Level) {
			out = append(out, row)
		}
	}
	return out
}
