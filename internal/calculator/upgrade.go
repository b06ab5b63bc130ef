package calculator

import (
	"go.uber.org/zap"

	"github.com/napolitain/solver-wos/internal/adjust"
	"github.com/napolitain/solver-wos/internal/aggregate"
	"github.com/napolitain/solver-wos/internal/bonus"
	"github.com/napolitain/solver-wos/internal/format"
	"github.com/napolitain/solver-wos/internal/input"
	"github.com/napolitain/solver-wos/internal/models"
)

// DefaultUpgradeResource names the single resource of formula mode
const DefaultUpgradeResource models.ResourceType = "cost"

// UpgradeRequest describes a formula-mode building upgrade
type UpgradeRequest struct {
	BaseCost               float64 `validate:"gte=0"`
	CostMultiplierPerLevel float64 `validate:"gt=0"`
	TimePerLevelSeconds    float64 `validate:"gte=0"`
	Range                  models.LevelRange
	Bonus                  models.BonusSelection
	Resource               models.ResourceType // defaults to DefaultUpgradeResource
}

// UpgradeRow is one level of the upgrade before and after bonuses
type UpgradeRow struct {
	Level          int
	RawCost        float64
	Cost           int64
	RawTimeSeconds float64
	TimeSeconds    float64
}

// UpgradeResult holds per-level rows and the adjusted totals
type UpgradeResult struct {
	ID        string
	Resource  models.ResourceType
	Rows      []UpgradeRow
	Bonus     models.Bonus
	Breakdown []bonus.Source
	Raw       models.Totals
	Result    models.AggregateResult
	Duration  string
}

// TotalCost returns the adjusted cost of the whole upgrade
func (r *UpgradeResult) TotalCost() int64 {
	return r.Result.Resources[r.Resource]
}

// Upgrade computes the cost and time of a formula-mode upgrade through
// levels Start..End. The range must satisfy Start < End.
func (c *Calculator) Upgrade(req UpgradeRequest) (*UpgradeResult, error) {
	if err := input.ValidateRange(req.Range); err != nil {
		return nil, err
	}
	if err := input.Validate(req); err != nil {
		return nil, err
	}
	if req.Resource == "" {
		req.Resource = DefaultUpgradeResource
	}

	id, log := c.newRun("upgrade")

	b := bonus.Resolve(req.Bonus)
	log.Debug("Resolved bonus",
		zap.Float64("speed_percent", b.SpeedPercent),
		zap.Float64("cost_multiplier", b.CostMultiplier))

	formula := aggregate.Formula{
		BaseCost:               req.BaseCost,
		CostMultiplierPerLevel: req.CostMultiplierPerLevel,
		TimePerLevel:           req.TimePerLevelSeconds,
		TimeModel:              c.timeModel,
	}

	result := &UpgradeResult{
		ID:        id,
		Resource:  req.Resource,
		Bonus:     b,
		Breakdown: bonus.Breakdown(req.Bonus),
		Raw:       models.NewTotals(),
	}

	costFactor := b.CostMultiplier
	if c.adjuster.IsExempt(req.Resource) {
		costFactor = 1
	}

	for row := range formula.Levels(req.Range) {
		result.Rows = append(result.Rows, UpgradeRow{
			Level:          row.Level,
			RawCost:        row.Cost,
			Cost:           adjust.Floor(row.Cost * costFactor),
			RawTimeSeconds: row.TimeSeconds,
			TimeSeconds:    adjust.Time(row.TimeSeconds, b.SpeedPercent, req.Bonus.DoubleTime),
		})
		result.Raw.Resources[req.Resource] += row.Cost
		result.Raw.TimeSeconds += row.TimeSeconds
		result.Raw.Levels++
	}

	result.Result = c.adjuster.Adjust(result.Raw, b, req.Bonus.DoubleTime)
	result.Duration = format.Duration(result.Result.TimeSeconds)

	log.Debug("Upgrade computed",
		zap.Int("levels", result.Raw.Levels),
		zap.Int64("total_cost", result.TotalCost()),
		zap.Float64("total_seconds", result.Result.TimeSeconds))

	return result, nil
}
