// Package app wires configuration, logging and reference data into a
// ready-to-use calculator for the command line tools.
package app

import (
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/napolitain/solver-wos/internal/calculator"
	"github.com/napolitain/solver-wos/internal/config"
	"github.com/napolitain/solver-wos/internal/loader"
	"github.com/napolitain/solver-wos/internal/logging"
)

// Flags are the settings every command accepts
type Flags struct {
	ConfigFile string
	DataDir    string
	LogLevel   string
}

// Register adds the shared flags to a command's flag set
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigFile, "config", "c", "", "Path to YAML config file")
	fs.StringVarP(&f.DataDir, "data", "d", "", "Path to reference data directory (overrides config)")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// App bundles what a command needs to run calculations
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Calculator *calculator.Calculator
}

// New loads the configuration, applies flag overrides and builds the calculator
func New(f Flags) (*App, error) {
	cfg, err := config.Load(f.ConfigFile)
	if err != nil {
		return nil, err
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	catalog, err := loader.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	calc := calculator.New(catalog, loader.NewDir(cfg.DataDir), calculator.Options{
		RangePolicy:        cfg.RangePolicy(),
		TimeModel:          cfg.TimeModel(),
		Exempt:             cfg.Exempt(),
		CapacityMultiplier: cfg.Troops.CapacityMultiplier,
	}, logger)

	logger.Debug("Calculator ready",
		zap.String("data_dir", cfg.DataDir),
		zap.String("range_policy", string(cfg.RangePolicy())),
		zap.String("time_model", string(cfg.TimeModel())))

	return &App{Config: cfg, Logger: logger, Calculator: calc}, nil
}

// Close flushes buffered log entries
func (a *App) Close() {
	_ = a.Logger.Sync()
}
