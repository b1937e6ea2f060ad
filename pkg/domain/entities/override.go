package entities

import "fmt"

// OverrideConstraint forces a minimum satisfaction rate on one specific
// cell. It only binds when the cell has positive demand; on zero-demand
// cells it is silently ignored.
type OverrideConstraint struct {
	Product             Product
	Channel             Channel
	Region              Region
	Period              Period
	MinSatisfactionRate float64
}

// NewOverrideConstraint creates a validated OverrideConstraint
func NewOverrideConstraint(product Product, channel Channel, region Region, period Period, rate float64) (*OverrideConstraint, error) {
	if string(product) == "" {
		return nil, fmt.Errorf("product cannot be empty")
	}
	if string(channel) == "" {
		return nil, fmt.Errorf("channel cannot be empty")
	}
	if string(region) == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}
	if string(period) == "" {
		return nil, fmt.Errorf("period cannot be empty")
	}
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("min satisfaction rate must be in [0,1], got %g", rate)
	}

	return &OverrideConstraint{
		Product:             product,
		Channel:             channel,
		Region:              region,
		Period:              period,
		MinSatisfactionRate: rate,
	}, nil
}

// Cell returns the cell this override targets.
func (o OverrideConstraint) Cell() Cell {
	return Cell{Product: o.Product, Channel: o.Channel, Region: o.Region, Period: o.Period}
}
