package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/planwise/allocator/pkg/domain/entities"
	"github.com/planwise/allocator/pkg/forecast"
)

// ForecastParams is the YAML description of a forecast run: the target
// product, its price, and the reference products to blend.
type ForecastParams struct {
	Product     string            `yaml:"product" validate:"required"`
	TargetPrice float64           `yaml:"target_price" validate:"gt=0"`
	References  []ReferenceParams `yaml:"references" validate:"min=1,dive"`

	Elasticity    map[string]float64 `yaml:"elasticity"`
	Sensitivity   map[string]float64 `yaml:"sensitivity"`
	LaunchImpact  map[string]float64 `yaml:"launch_impact" validate:"dive,gte=0"`
	LaunchPeriods int                `yaml:"launch_periods" validate:"gte=0"`
	FeatureUplift float64            `yaml:"feature_uplift" validate:"gte=0"`
}

type ReferenceParams struct {
	Name   string  `yaml:"name" validate:"required"`
	Price  float64 `yaml:"price" validate:"gt=0"`
	Weight float64 `yaml:"weight" validate:"gte=0"`
}

// LoadForecastParams reads and validates a YAML forecast params file.
func LoadForecastParams(filename string) (*ForecastParams, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast params %s: %w", filename, err)
	}

	var params ForecastParams
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse forecast params %s: %w", filename, err)
	}

	if err := configValidator.Struct(&params); err != nil {
		return nil, fmt.Errorf("invalid forecast params %s: %w", filename, err)
	}

	return &params, nil
}

// Params converts the YAML form into the forecast package's input.
func (p *ForecastParams) Params() forecast.Params {
	out := forecast.Params{
		TargetPrice:   p.TargetPrice,
		LaunchPeriods: p.LaunchPeriods,
		FeatureUplift: p.FeatureUplift,
	}
	for _, ref := range p.References {
		out.References = append(out.References, forecast.ReferenceProduct{
			Name:   entities.Product(ref.Name),
			Price:  ref.Price,
			Weight: ref.Weight,
		})
	}
	out.Elasticity = regionMap(p.Elasticity)
	out.Sensitivity = regionMap(p.Sensitivity)
	out.LaunchImpact = regionMap(p.LaunchImpact)
	return out
}

func regionMap(m map[string]float64) map[entities.Region]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[entities.Region]float64, len(m))
	for region, v := range m {
		out[entities.Region(region)] = v
	}
	return out
}
