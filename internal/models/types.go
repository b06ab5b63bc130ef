package models

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// ResourceType represents the different resource types in the game
type ResourceType string

const (
	Meat         ResourceType = "meat"
	Wood         ResourceType = "wood"
	Coal         ResourceType = "coal"
	Iron         ResourceType = "iron"
	FireCrystals ResourceType = "firecrystals"
)

// AllResourceTypes returns the known resource types in display order
func AllResourceTypes() []ResourceType {
	return []ResourceType{Meat, Wood, Coal, Iron, FireCrystals}
}

// Label returns the display name of a resource
func (r ResourceType) Label() string {
	switch r {
	case FireCrystals:
		return "Fire Crystals"
	case "":
		return ""
	}
	first, size := utf8.DecodeRuneInString(string(r))
	return string(unicode.ToUpper(first)) + string(r[size:])
}

// Resources maps a resource to a raw (possibly fractional) amount
type Resources map[ResourceType]float64

// Add accumulates other into r, scaled by factor
func (r Resources) Add(other Resources, factor float64) {
	for rt, amount := range other {
		r[rt] += amount * factor
	}
}

// Clone returns an independent copy
func (r Resources) Clone() Resources {
	out := make(Resources, len(r))
	for rt, amount := range r {
		out[rt] = amount
	}
	return out
}

// Types returns the resource types present in r, known types first in
// display order, then unknown ones alphabetically
func (r Resources) Types() []ResourceType {
	return orderedTypes(len(r), func(rt ResourceType) bool {
		_, ok := r[rt]
		return ok
	}, func(fn func(ResourceType)) {
		for rt := range r {
			fn(rt)
		}
	})
}

// Amounts is an adjusted, whole-unit resource mapping
type Amounts map[ResourceType]int64

// Get returns the amount for a resource (zero when absent)
func (a Amounts) Get(rt ResourceType) int64 {
	return a[rt]
}

// Types returns the resource types present in a in display order
func (a Amounts) Types() []ResourceType {
	return orderedTypes(len(a), func(rt ResourceType) bool {
		_, ok := a[rt]
		return ok
	}, func(fn func(ResourceType)) {
		for rt := range a {
			fn(rt)
		}
	})
}

// Add accumulates other into a
func (a Amounts) Add(other Amounts) {
	for rt, amount := range other {
		a[rt] += amount
	}
}

func orderedTypes(n int, has func(ResourceType) bool, each func(func(ResourceType))) []ResourceType {
	types := make([]ResourceType, 0, n)
	known := make(map[ResourceType]bool)
	for _, rt := range AllResourceTypes() {
		known[rt] = true
		if has(rt) {
			types = append(types, rt)
		}
	}
	var extra []ResourceType
	each(func(rt ResourceType) {
		if !known[rt] {
			extra = append(extra, rt)
		}
	})
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(types, extra...)
}

// MaxLevel is the highest level any range may reach
const MaxLevel = 100

// LevelRange is the span of levels an upgrade goes through.
// How the bounds are interpreted depends on the aggregation mode.
type LevelRange struct {
	Start int `validate:"gte=1"`
	End   int `validate:"gtfield=Start,lte=100"` // MaxLevel
}

// Validate returns ErrInvalidRange unless 1 <= Start < End <= MaxLevel
func (r LevelRange) Validate() error {
	if r.Start < 1 || r.End <= r.Start || r.End > MaxLevel {
		return InvalidRangeError(r)
	}
	return nil
}

// CostTimeRow holds the incremental cost and duration of one level
type CostTimeRow struct {
	Level       int
	Resources   Resources
	TimeSeconds float64
}

// Table is the per-level reference data of one building or troop line,
// sorted by ascending level
type Table struct {
	Name string
	Rows []CostTimeRow
}

// Row returns the row for an exact level
func (t *Table) Row(level int) (CostTimeRow, bool) {
	i := sort.Search(len(t.Rows), func(i int) bool { return t.Rows[i].Level >= level })
	if i < len(t.Rows) && t.Rows[i].Level == level {
		return t.Rows[i], true
	}
	return CostTimeRow{}, false
}

// MaxLevel returns the highest level in the table (0 for an empty table)
func (t *Table) MaxLevel() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return t.Rows[len(t.Rows)-1].Level
}

// BonusSelection is the set of bonus toggles and levels chosen by the player
type BonusSelection struct {
	BaseSpeedPercent float64 `validate:"gte=0"`
	SkillLevel       int     `validate:"gte=0,lte=5"` // Zinman construction skill
	PetLevel         int     `validate:"gte=0,lte=5"` // 0 means no pet
	President        bool
	VicePresident    bool
	DoubleTime       bool
}

// Bonus is the resolved form of a BonusSelection
type Bonus struct {
	SpeedPercent   float64
	CostMultiplier float64
}

// NoBonus leaves costs and times unchanged
var NoBonus = Bonus{SpeedPercent: 0, CostMultiplier: 1}

// Totals is a raw aggregate before bonuses are applied
type Totals struct {
	Resources   Resources
	TimeSeconds float64
	Levels      int // number of levels that contributed
}

// NewTotals returns zero totals ready for accumulation
func NewTotals() Totals {
	return Totals{Resources: make(Resources)}
}

// Empty reports whether no level contributed to the totals
func (t Totals) Empty() bool {
	return t.Levels == 0
}

// AggregateResult is the final cost and time after bonuses
type AggregateResult struct {
	Resources   Amounts
	TimeSeconds float64
}
