package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/napolitain/solver-wos/internal/aggregate"
	"github.com/napolitain/solver-wos/internal/models"
)

// EnvPrefix prefixes every environment override (WOS_DATA_DIR, ...)
const EnvPrefix = "WOS"

// Config represents the complete calculator configuration
type Config struct {
	DataDir string        `mapstructure:"data_dir"`
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Troops  TroopsConfig  `mapstructure:"troops"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// EngineConfig selects the aggregation rules shared by every calculator
type EngineConfig struct {
	RangePolicy     string   `mapstructure:"range_policy"`
	TimeModel       string   `mapstructure:"time_model"`
	ExemptResources []string `mapstructure:"exempt_resources"`
}

// TroopsConfig contains troop calculator settings
type TroopsConfig struct {
	CapacityMultiplier int `mapstructure:"capacity_multiplier"` // city bonus on training capacity
}

// Load reads configuration from defaults, an optional .env file, an optional
// config file and WOS_* environment variables, in increasing priority
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("logging.level", "warn")

	v.SetDefault("engine.range_policy", string(aggregate.HalfOpen))
	v.SetDefault("engine.time_model", string(aggregate.TimeFlat))
	v.SetDefault("engine.exempt_resources", []string{string(models.FireCrystals)})

	v.SetDefault("troops.capacity_multiplier", 3)
}

// Validate checks that every setting has a usable value
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir cannot be empty")
	}
	if _, err := aggregate.ParseRangePolicy(c.Engine.RangePolicy); err != nil {
		return fmt.Errorf("engine.range_policy: %w", err)
	}
	if _, err := aggregate.ParseTimeModel(c.Engine.TimeModel); err != nil {
		return fmt.Errorf("engine.time_model: %w", err)
	}
	if c.Troops.CapacityMultiplier < 1 {
		return fmt.Errorf("troops.capacity_multiplier must be at least 1, got %d", c.Troops.CapacityMultiplier)
	}
	return nil
}

// RangePolicy returns the parsed range policy (call after Validate)
func (c *Config) RangePolicy() aggregate.RangePolicy {
	p, _ := aggregate.ParseRangePolicy(c.Engine.RangePolicy)
	return p
}

// TimeModel returns the parsed time model (call after Validate)
func (c *Config) TimeModel() aggregate.TimeModel {
	m, _ := aggregate.ParseTimeModel(c.Engine.TimeModel)
	return m
}

// Exempt returns the resources excluded from cost reductions
func (c *Config) Exempt() []models.ResourceType {
	var out []models.ResourceType
	for _, item := range c.Engine.ExemptResources {
		for _, name := range strings.Split(item, ",") {
			if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
				out = append(out, models.ResourceType(name))
			}
		}
	}
	return out
}
