package calculator

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/napolitain/solver-wos/internal/adjust"
	"github.com/napolitain/solver-wos/internal/aggregate"
	"github.com/napolitain/solver-wos/internal/loader"
	"github.com/napolitain/solver-wos/internal/models"
)

// TableSource provides the reference table of a catalog entry
type TableSource interface {
	Table(e loader.Entry) (*models.Table, error)
}

// Options selects the aggregation rules; the zero value uses the defaults
type Options struct {
	RangePolicy        aggregate.RangePolicy
	TimeModel          aggregate.TimeModel
	Exempt             []models.ResourceType
	CapacityMultiplier int
}

// Calculator runs the upgrade, fire crystal and troop calculations.
// It holds no per-request state and is safe for concurrent use.
type Calculator struct {
	catalog            *loader.Catalog
	source             TableSource
	adjuster           *adjust.Adjuster
	policy             aggregate.RangePolicy
	timeModel          aggregate.TimeModel
	capacityMultiplier int
	logger             *zap.Logger
}

// New creates a calculator over a catalog and a table source
func New(catalog *loader.Catalog, source TableSource, opts Options, logger *zap.Logger) *Calculator {
	if opts.RangePolicy == "" {
		opts.RangePolicy = aggregate.HalfOpen
	}
	if opts.TimeModel == "" {
		opts.TimeModel = aggregate.TimeFlat
	}
	if opts.CapacityMultiplier < 1 {
		opts.CapacityMultiplier = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Calculator{
		catalog:            catalog,
		source:             source,
		adjuster:           adjust.New(opts.Exempt...),
		policy:             opts.RangePolicy,
		timeModel:          opts.TimeModel,
		capacityMultiplier: opts.CapacityMultiplier,
		logger:             logger,
	}
}

// RangePolicy returns the policy applied to every table range
func (c *Calculator) RangePolicy() aggregate.RangePolicy {
	return c.policy
}

// newRun tags the log lines of one calculation with a fresh ID
func (c *Calculator) newRun(kind string) (string, *zap.Logger) {
	id := uuid.NewString()
	return id, c.logger.With(zap.String("calculation_id", id), zap.String("calculator", kind))
}
