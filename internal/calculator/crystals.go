package calculator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/napolitain/solver-wos/internal/aggregate"
	"github.com/napolitain/solver-wos/internal/bonus"
	"github.com/napolitain/solver-wos/internal/format"
	"github.com/napolitain/solver-wos/internal/input"
	"github.com/napolitain/solver-wos/internal/loader"
	"github.com/napolitain/solver-wos/internal/models"
)

// BuildingSelection is one building to upgrade and its level range
type BuildingSelection struct {
	Building string
	Range    models.LevelRange
}

// CrystalRequest lists the buildings to upgrade together
type CrystalRequest struct {
	Buildings []BuildingSelection
	Bonus     models.BonusSelection
}

// BuildingResult is the outcome for one building. A building that could not
// be computed has a zero Result, a Note and the underlying Err.
type BuildingResult struct {
	Name     string
	Range    models.LevelRange
	Levels   int
	Rows     []models.CostTimeRow // table rows inside the range, before bonuses
	Result   models.AggregateResult
	Duration string
	Note     string
	Err      error
}

// Failed reports whether the building was skipped
func (b BuildingResult) Failed() bool {
	return b.Err != nil
}

// CrystalResult aggregates every selected building
type CrystalResult struct {
	ID            string
	Bonus         models.Bonus
	Buildings     []BuildingResult
	Total         models.AggregateResult
	TotalDuration string
}

// FireCrystals returns the fire crystals needed across all buildings
func (r *CrystalResult) FireCrystals() int64 {
	return r.Total.Resources[models.FireCrystals]
}

// Notes collects the per-building notes in request order
func (r *CrystalResult) Notes() []string {
	var notes []string
	for _, b := range r.Buildings {
		if b.Note != "" {
			notes = append(notes, fmt.Sprintf("%s: %s", b.Name, b.Note))
		}
	}
	return notes
}

// FireCrystals sums the table rows of every selected building over its
// range and applies the bonuses. A building with missing data, an unknown
// name or an invalid range contributes zero and carries a note; the other
// buildings are still aggregated.
func (c *Calculator) FireCrystals(ctx context.Context, req CrystalRequest) (*CrystalResult, error) {
	if err := input.Validate(req.Bonus); err != nil {
		return nil, err
	}

	id, log := c.newRun("fire_crystals")
	b := bonus.Resolve(req.Bonus)

	result := &CrystalResult{
		ID:    id,
		Bonus: b,
		Total: models.AggregateResult{Resources: make(models.Amounts)},
	}

	for _, sel := range req.Buildings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		br := c.building(sel, b, req.Bonus.DoubleTime)
		if br.Failed() {
			log.Warn("Building skipped",
				zap.String("building", sel.Building),
				zap.Int("start", sel.Range.Start),
				zap.Int("end", sel.Range.End),
				zap.Error(br.Err))
		} else {
			log.Debug("Building aggregated",
				zap.String("building", br.Name),
				zap.Int("levels", br.Levels),
				zap.Int64("fire_crystals", br.Result.Resources[models.FireCrystals]))
		}

		result.Total.Resources.Add(br.Result.Resources)
		result.Total.TimeSeconds += br.Result.TimeSeconds
		result.Buildings = append(result.Buildings, br)
	}

	result.TotalDuration = format.Duration(result.Total.TimeSeconds)
	return result, nil
}

func (c *Calculator) building(sel BuildingSelection, b models.Bonus, doubleTime bool) BuildingResult {
	br := BuildingResult{
		Name:   sel.Building,
		Range:  sel.Range,
		Result: models.AggregateResult{Resources: make(models.Amounts)},
	}

	fail := func(err error) BuildingResult {
		br.Err = err
		br.Note = noteFor(err)
		br.Duration = format.Duration(0)
		return br
	}

	entry, err := c.catalog.Building(sel.Building)
	if err != nil {
		return fail(err)
	}
	br.Name = entry.Name

	if err := sel.Range.Validate(); err != nil {
		return fail(err)
	}
	if err := entry.Bounds(sel.Range); err != nil {
		return fail(err)
	}

	table, err := c.source.Table(entry)
	if err != nil {
		return fail(err)
	}

	totals, err := aggregate.SumTable(table.Rows, sel.Range, c.policy)
	if err != nil {
		return fail(err)
	}

	br.Levels = totals.Levels
	br.Rows = aggregate.Rows(table.Rows, sel.Range, c.policy)
	br.Result = c.adjuster.Adjust(totals, b, doubleTime)
	br.Duration = format.Duration(br.Result.TimeSeconds)
	if totals.Empty() {
		br.Note = "no resources needed (no table rows in range)"
	}
	return br
}

func noteFor(err error) string {
	switch {
	case errors.Is(err, models.ErrMissingReferenceData):
		return "reference data not found, counted as zero"
	case errors.Is(err, models.ErrInvalidRange):
		return "start level must be below target level, counted as zero"
	case errors.Is(err, models.ErrUnknownBuilding):
		return "unknown building, counted as zero"
	}
	return fmt.Sprintf("could not be computed (%v), counted as zero", err)
}

// Entries returns the catalog buildings in display order
func (c *Calculator) Entries() []loader.Entry {
	return c.catalog.Buildings
}
