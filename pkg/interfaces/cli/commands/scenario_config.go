package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/planwise/allocator/pkg/domain/entities"
)

// ScenarioConfig is the YAML-borne part of a scenario: priority weights,
// override constraints and solver options. The tables themselves come
// from CSV files.
type ScenarioConfig struct {
	Name    string        `yaml:"name"`
	Weights WeightsConfig `yaml:"weights"`
	// Overrides pin minimum satisfaction rates onto specific cells.
	Overrides []OverrideConfig `yaml:"overrides" validate:"dive"`
	Solver    SolverConfig     `yaml:"solver"`
}

type WeightsConfig struct {
	Products map[string]float64 `yaml:"products" validate:"dive,gte=0"`
	Channels map[string]float64 `yaml:"channels" validate:"dive,gte=0"`
	Regions  map[string]float64 `yaml:"regions" validate:"dive,gte=0"`
}

type OverrideConfig struct {
	Product         string  `yaml:"product" validate:"required"`
	Channel         string  `yaml:"channel" validate:"required"`
	Region          string  `yaml:"region" validate:"required"`
	Period          string  `yaml:"period" validate:"required"`
	MinSatisfaction float64 `yaml:"min_satisfaction" validate:"gte=0,lte=1"`
}

type SolverConfig struct {
	Integral bool   `yaml:"integral"`
	Timeout  string `yaml:"timeout"`
}

var configValidator = validator.New()

// LoadScenarioConfig reads and validates a YAML scenario config file.
func LoadScenarioConfig(filename string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario config %s: %w", filename, err)
	}

	var config ScenarioConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scenario config %s: %w", filename, err)
	}

	if err := configValidator.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid scenario config %s: %w", filename, err)
	}
	if _, err := config.SolveTimeout(); err != nil {
		return nil, fmt.Errorf("invalid scenario config %s: %w", filename, err)
	}

	return &config, nil
}

// PriorityWeights converts the config weights onto the default model:
// unlisted products weigh 5, unlisted channels and regions weigh 1.
func (c *ScenarioConfig) PriorityWeights() entities.PriorityWeights {
	weights := entities.NewPriorityWeights()
	for product, w := range c.Weights.Products {
		weights.Product[entities.Product(product)] = w
	}
	for channel, w := range c.Weights.Channels {
		weights.Channel[entities.Channel(channel)] = w
	}
	for region, w := range c.Weights.Regions {
		weights.Region[entities.Region(region)] = w
	}
	return weights
}

// OverrideConstraints converts the configured overrides into domain
// constraints, re-validating each cell reference.
func (c *ScenarioConfig) OverrideConstraints() ([]entities.OverrideConstraint, error) {
	out := make([]entities.OverrideConstraint, 0, len(c.Overrides))
	for i, o := range c.Overrides {
		constraint, err := entities.NewOverrideConstraint(
			entities.Product(o.Product),
			entities.Channel(o.Channel),
			entities.Region(o.Region),
			entities.Period(o.Period),
			o.MinSatisfaction,
		)
		if err != nil {
			return nil, fmt.Errorf("override %d: %w", i+1, err)
		}
		out = append(out, *constraint)
	}
	return out, nil
}

// SolveTimeout parses the configured timeout. Empty means no timeout.
func (c *ScenarioConfig) SolveTimeout() (time.Duration, error) {
	if c.Solver.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Solver.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid solver timeout %q: %w", c.Solver.Timeout, err)
	}
	return d, nil
}
