package calculator

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/napolitain/solver-wos/internal/adjust"
	"github.com/napolitain/solver-wos/internal/format"
	"github.com/napolitain/solver-wos/internal/input"
	"github.com/napolitain/solver-wos/internal/models"
)

// TroopAction is either training new troops or promoting existing ones
type TroopAction string

const (
	Train   TroopAction = "train"
	Promote TroopAction = "promote"
)

// TroopOrder asks for Count troops of one type. Promotions go from Level
// to TargetLevel; training ignores TargetLevel.
type TroopOrder struct {
	Troop       string `validate:"required"`
	Level       int    `validate:"gte=1"`
	TargetLevel int
	Count       int `validate:"gte=0"`
}

// TroopRequest describes one training or promotion session
type TroopRequest struct {
	Action               TroopAction  `validate:"oneof=train promote"`
	TrainingSpeedPercent float64      `validate:"gte=0"`
	TrainingCapacity     int          `validate:"gte=0"`
	CapacityBonus        bool         // city bonus multiplying the capacity
	Orders               []TroopOrder `validate:"dive"`
}

// TroopOrderResult is the outcome of one order
type TroopOrderResult struct {
	Order    TroopOrder
	Name     string
	Result   models.AggregateResult
	Duration string
	Batches  int
	Note     string
	Err      error
}

// TroopResult aggregates every order of the request
type TroopResult struct {
	ID            string
	Action        TroopAction
	Capacity      int
	Orders        []TroopOrderResult
	Total         models.AggregateResult
	TotalDuration string
}

// Troops computes the resources and time to train or promote troops.
// Training costs Count times the level's row; promoting costs Count times
// the difference between the target and current rows (never negative).
// Orders without reference data contribute zero and carry a note.
func (c *Calculator) Troops(ctx context.Context, req TroopRequest) (*TroopResult, error) {
	if err := input.Validate(req); err != nil {
		return nil, err
	}

	id, log := c.newRun("troops")

	capacity := req.TrainingCapacity
	if req.CapacityBonus {
		capacity *= c.capacityMultiplier
	}

	result := &TroopResult{
		ID:       id,
		Action:   req.Action,
		Capacity: capacity,
		Total:    models.AggregateResult{Resources: make(models.Amounts)},
	}

	for _, order := range req.Orders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		or := c.troopOrder(req, order, capacity)
		if or.Err != nil {
			log.Warn("Troop order skipped", zap.String("troop", order.Troop), zap.Error(or.Err))
		}

		result.Total.Resources.Add(or.Result.Resources)
		result.Total.TimeSeconds += or.Result.TimeSeconds
		result.Orders = append(result.Orders, or)
	}

	result.TotalDuration = format.Duration(result.Total.TimeSeconds)
	log.Debug("Troops computed",
		zap.String("action", string(req.Action)),
		zap.Int("orders", len(result.Orders)),
		zap.Float64("total_seconds", result.Total.TimeSeconds))

	return result, nil
}

func (c *Calculator) troopOrder(req TroopRequest, order TroopOrder, capacity int) TroopOrderResult {
	or := TroopOrderResult{
		Order:    order,
		Name:     order.Troop,
		Result:   models.AggregateResult{Resources: make(models.Amounts)},
		Duration: format.Duration(0),
	}

	fail := func(err error, note string) TroopOrderResult {
		or.Err = err
		or.Note = note
		return or
	}

	entry, err := c.catalog.Troop(order.Troop)
	if err != nil {
		return fail(err, "unknown troop type, counted as zero")
	}
	or.Name = entry.Name

	target := order.Level
	if req.Action == Promote {
		target = order.TargetLevel
		if err := (models.LevelRange{Start: order.Level, End: target}).Validate(); err != nil {
			return fail(err, "target level must be above current level, counted as zero")
		}
	}
	if order.Level < entry.MinLevel || target > entry.MaxLevel {
		return fail(fmt.Errorf("%w: %s levels are %d to %d", models.ErrInvalidRange, entry.Name, entry.MinLevel, entry.MaxLevel),
			"level outside the troop's levels, counted as zero")
	}

	table, err := c.source.Table(entry)
	if err != nil {
		return fail(err, "reference data not found, counted as zero")
	}

	to, ok := table.Row(target)
	if !ok {
		return fail(fmt.Errorf("%w: %s has no level %d", models.ErrMissingReferenceData, entry.Name, target),
			fmt.Sprintf("no data for level %d, counted as zero", target))
	}

	raw := models.NewTotals()
	raw.Levels = 1
	if req.Action == Promote {
		from, ok := table.Row(order.Level)
		if !ok {
			return fail(fmt.Errorf("%w: %s has no level %d", models.ErrMissingReferenceData, entry.Name, order.Level),
				fmt.Sprintf("no data for level %d, counted as zero", order.Level))
		}
		for rt, amount := range to.Resources {
			raw.Resources[rt] = math.Max(0, amount-from.Resources[rt]) * float64(order.Count)
		}
		raw.TimeSeconds = math.Max(0, to.TimeSeconds-from.TimeSeconds) * float64(order.Count)
	} else {
		raw.Resources.Add(to.Resources, float64(order.Count))
		raw.TimeSeconds = to.TimeSeconds * float64(order.Count)
	}

	b := models.Bonus{SpeedPercent: req.TrainingSpeedPercent, CostMultiplier: 1}
	or.Result = models.AggregateResult{
		Resources:   c.adjuster.Cost(raw.Resources, b.CostMultiplier),
		TimeSeconds: adjust.Time(raw.TimeSeconds, b.SpeedPercent, false),
	}
	or.Duration = format.Duration(or.Result.TimeSeconds)

	if capacity > 0 {
		or.Batches = (order.Count + capacity - 1) / capacity
	}
	if order.Count == 0 {
		or.Note = "no troops requested"
	}
	return or
}
