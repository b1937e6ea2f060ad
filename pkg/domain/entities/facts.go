package entities

import "fmt"

// SupplyFact is the total available units for one period, across all
// products, channels and regions.
type SupplyFact struct {
	Period   Period
	Quantity float64
}

// NewSupplyFact creates a validated SupplyFact
func NewSupplyFact(period Period, quantity float64) (*SupplyFact, error) {
	if string(period) == "" {
		return nil, fmt.Errorf("period cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("supply cannot be negative, got %g", quantity)
	}

	return &SupplyFact{
		Period:   period,
		Quantity: quantity,
	}, nil
}

// BuildFact records actual build volume for a product in a period. Builds
// are informational only: they widen the product index set but never enter
// the constraint set.
type BuildFact struct {
	Product  Product
	Period   Period
	Quantity float64
}

// NewBuildFact creates a validated BuildFact
func NewBuildFact(product Product, period Period, quantity float64) (*BuildFact, error) {
	if string(product) == "" {
		return nil, fmt.Errorf("product cannot be empty")
	}
	if string(period) == "" {
		return nil, fmt.Errorf("period cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("build quantity cannot be negative, got %g", quantity)
	}

	return &BuildFact{
		Product:  product,
		Period:   period,
		Quantity: quantity,
	}, nil
}

// DemandFact is requested units for one cell. Cells absent from the demand
// table have demand zero; the mapping is total, not partial.
type DemandFact struct {
	Product  Product
	Channel  Channel
	Region   Region
	Period   Period
	Quantity float64
}

// NewDemandFact creates a validated DemandFact
func NewDemandFact(product Product, channel Channel, region Region, period Period, quantity float64) (*DemandFact, error) {
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
	if quantity < 0 {
		return nil, fmt.Errorf("demand cannot be negative, got %g", quantity)
	}

	return &DemandFact{
		Product:  product,
		Channel:  channel,
		Region:   region,
		Period:   period,
		Quantity: quantity,
	}, nil
}
