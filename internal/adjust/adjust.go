package adjust

import (
	"math"

	"github.com/napolitain/solver-wos/internal/models"
)

// floorEpsilon absorbs float error such as 0.94*100 = 93.99999999999999
const floorEpsilon = 1e-9

// Adjuster applies resolved bonuses to raw totals
type Adjuster struct {
	exempt map[models.ResourceType]bool
}

// New creates an adjuster; exempt resources are never discounted by the
// cost multiplier
func New(exempt ...models.ResourceType) *Adjuster {
	a := &Adjuster{exempt: make(map[models.ResourceType]bool, len(exempt))}
	for _, rt := range exempt {
		a.exempt[rt] = true
	}
	return a
}

// IsExempt reports whether rt ignores the cost multiplier
func (a *Adjuster) IsExempt(rt models.ResourceType) bool {
	return a.exempt[rt]
}

// Adjust discounts costs, inflates time when doubleTime is set and then
// shortens it by the speed bonus. Resources are floored to whole units.
func (a *Adjuster) Adjust(raw models.Totals, b models.Bonus, doubleTime bool) models.AggregateResult {
	return models.AggregateResult{
		Resources:   a.Cost(raw.Resources, b.CostMultiplier),
		TimeSeconds: Time(raw.TimeSeconds, b.SpeedPercent, doubleTime),
	}
}

// Cost applies the cost multiplier to every non-exempt resource.
// The multiplier is clamped to [0,1] and results are never negative.
func (a *Adjuster) Cost(raw models.Resources, multiplier float64) models.Amounts {
	multiplier = clamp(multiplier, 0, 1)

	out := make(models.Amounts, len(raw))
	for rt, amount := range raw {
		if !a.exempt[rt] {
			amount *= multiplier
		}
		out[rt] = Floor(amount)
	}
	return out
}

// Time doubles the nominal duration first (when requested) and then divides
// by the speed bonus
func Time(raw, speedPercent float64, doubleTime bool) float64 {
	t := raw
	if doubleTime {
		t *= 2
	}
	if speedPercent < 0 {
		speedPercent = 0
	}
	return t / (1 + speedPercent/100)
}

// maxAmount is 2^63, the first float64 that no longer fits in an int64
const maxAmount = float64(math.MaxInt64)

// Floor truncates a resource amount to whole units, never below zero.
// Amounts too large for an int64 (including +Inf) saturate at MaxInt64.
func Floor(amount float64) int64 {
	if amount <= 0 || math.IsNaN(amount) {
		return 0
	}
	if amount >= maxAmount {
		return math.MaxInt64
	}
	return int64(math.Floor(amount + floorEpsilon))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
