// Package config defines the data structures related to configuration and
// includes functions for loading the config and seeding plans from it.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/sip-planner/internal/plan"
	"github.com/iwvelando/sip-planner/pkg/calculator"
	"github.com/iwvelando/sip-planner/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration holds all configuration for sip-planner.
type Configuration struct {
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
	Plans      []PlanConfig     `yaml:"plans,omitempty"`
	Simulation SimulationConfig `yaml:"simulation,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// PlanConfig describes a plan created when the application starts.
type PlanConfig struct {
	Token              string  `yaml:"token"`
	TotalAmount        float64 `yaml:"totalAmount"`
	Frequency          string  `yaml:"frequency"`
	MaturityMonths     int     `yaml:"maturityMonths"`
	CustomIntervalDays int     `yaml:"customIntervalDays,omitempty"`
}

// SimulationConfig controls the offline plan simulation.
type SimulationConfig struct {
	Executions int `yaml:"executions,omitempty"` // executions applied to every seeded plan
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Input converts the plan configuration into calculator input.
func (p PlanConfig) Input() calculator.PlanInput {
	return calculator.PlanInput{
		Token:              p.Token,
		TotalAmount:        decimal.NewFromFloat(p.TotalAmount),
		Frequency:          calculator.ParseFrequency(p.Frequency),
		MaturityMonths:     p.MaturityMonths,
		CustomIntervalDays: p.CustomIntervalDays,
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Seed plans that fail validation are reported here and
// skipped by SeedStore.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		warnings = append(warnings, err.Error())
	}
	if err := validation.ValidateLogFormat(c.Logging.Format); err != nil {
		warnings = append(warnings, err.Error())
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if c.Simulation.Executions < 0 {
		warnings = append(warnings, fmt.Sprintf("Simulation executions must not be negative, got %d", c.Simulation.Executions))
	}

	for i, p := range c.Plans {
		if p.Token == "" {
			warnings = append(warnings, fmt.Sprintf("Plan %d has no token", i+1))
		}
		result := calculator.Validate(p.Input())
		for _, msg := range result.Errors {
			warnings = append(warnings, fmt.Sprintf("Plan %d (%s): %s", i+1, p.Token, msg))
		}
	}

	return warnings
}

// SeedStore creates every valid configured plan in store, in configuration
// order, and returns the created plans.
func (c *Configuration) SeedStore(logger *zap.Logger, store *plan.Store) ([]plan.Plan, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	created := make([]plan.Plan, 0, len(c.Plans))
	for i, p := range c.Plans {
		input := p.Input()
		if result := calculator.Validate(input); !result.IsValid || p.Token == "" {
			logger.Debug(fmt.Sprintf("skipping invalid seed plan %d", i+1),
				zap.String("op", "config.SeedStore"),
				zap.Strings("errors", result.Errors),
			)
			continue
		}

		newPlan, err := store.Create(input)
		if err != nil {
			return created, fmt.Errorf("failed to seed plan %d (%s): %w", i+1, p.Token, err)
		}
		created = append(created, newPlan)
	}

	logger.Info(fmt.Sprintf("seeded %d of %d configured plans", len(created), len(c.Plans)),
		zap.String("op", "config.SeedStore"),
	)
	return created, nil
}
