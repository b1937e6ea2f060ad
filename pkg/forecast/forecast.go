// Package forecast produces sales forecasts for a new product by blending
// the historical sales curves of reference products. It is a data
// producer only: its output feeds the allocation engine as a
// demand-forecast table, nothing in the engine depends on it.
package forecast

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/planwise/allocator/pkg/domain/entities"
)

// SalesRecord is one observed (product, region, period) sales figure.
type SalesRecord struct {
	Product entities.Product
	Region  entities.Region
	Period  entities.Period
	Sales   float64
}

// ReferenceProduct contributes its historical curve to the blend with a
// relative weight and the price it sold at.
type ReferenceProduct struct {
	Name   entities.Product
	Price  float64
	Weight float64
}

// Params configures one forecast run.
type Params struct {
	TargetPrice float64
	References  []ReferenceProduct

	// Per-region price elasticity for the power-law factor
	// (target/reference)^elasticity. Regions not listed use -0.5.
	Elasticity map[entities.Region]float64
	// Per-region linear price sensitivity for the factor
	// 1 - ((target/reference) - 1) * sensitivity. Default 1.0.
	Sensitivity map[entities.Region]float64
	// Per-region multiplicative uplift applied to the launch window.
	LaunchImpact map[entities.Region]float64
	// LaunchPeriods is the number of leading periods (after sorting the
	// period labels) the launch uplift applies to.
	LaunchPeriods int
	// FeatureUplift is a global multiplicative uplift for new product
	// features, applied to every period.
	FeatureUplift float64
}

// Prediction is one forecast figure, rounded to two decimal places.
type Prediction struct {
	Region entities.Region
	Period entities.Period
	Sales  float64
}

const (
	defaultElasticity  = -0.5
	defaultSensitivity = 1.0
)

// priceImpactFactor is the raw elasticity adjustment for the price gap
// between the target and a reference product.
func priceImpactFactor(targetPrice, referencePrice, elasticity float64) float64 {
	if referencePrice == 0 {
		return 1.0
	}
	return math.Pow(targetPrice/referencePrice, elasticity)
}

// linearPriceAdjustment dampens the blend linearly with the relative
// price increase: a 10% price hike at sensitivity 1 scales sales by 0.9.
func linearPriceAdjustment(targetPrice, referencePrice, sensitivity float64) float64 {
	if referencePrice == 0 {
		return 1.0
	}
	return 1.0 - ((targetPrice/referencePrice)-1.0)*sensitivity
}

// Generate blends the reference products' history into a per-region,
// per-period forecast. Reference weights are normalized to sum to one;
// an all-zero weight set degrades to equal weights. Regions whose
// references have no history forecast zero.
func Generate(history []SalesRecord, params Params) []Prediction {
	periods, regions := axes(history)
	references := normalizeWeights(params.References)

	// Launch window: the first N period labels in sorted order.
	launch := make(map[entities.Period]bool)
	if params.LaunchPeriods > 0 {
		sorted := make([]entities.Period, len(periods))
		copy(sorted, periods)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		n := params.LaunchPeriods
		if n > len(sorted) {
			n = len(sorted)
		}
		for _, w := range sorted[:n] {
			launch[w] = true
		}
	}

	var predictions []Prediction
	for _, region := range regions {
		elasticity := paramOrDefault(params.Elasticity, region, defaultElasticity)
		sensitivity := paramOrDefault(params.Sensitivity, region, defaultSensitivity)
		launchImpact := paramOrDefault(params.LaunchImpact, region, 0)

		combined := make(map[entities.Period]float64, len(periods))
		for _, ref := range references {
			if ref.Weight == 0 {
				continue
			}
			curve := regionCurve(history, ref.Name, region)
			if len(curve) == 0 {
				continue
			}
			factor := ref.Weight *
				priceImpactFactor(params.TargetPrice, ref.Price, elasticity) *
				linearPriceAdjustment(params.TargetPrice, ref.Price, sensitivity)
			for period, sales := range curve {
				combined[period] += sales * factor
			}
		}

		for _, period := range periods {
			value := combined[period] * (1 + params.FeatureUplift)
			if launch[period] {
				value *= 1 + launchImpact
			}
			predictions = append(predictions, Prediction{
				Region: region,
				Period: period,
				Sales:  round2(value),
			})
		}
	}
	return predictions
}

// Table folds predictions into the wide demand-forecast form: one row
// for the forecast product, one column per period, regions summed.
func Table(product entities.Product, predictions []Prediction) entities.Table {
	totals := make(map[entities.Period]float64)
	var periods []entities.Period
	for _, p := range predictions {
		if _, seen := totals[p.Period]; !seen {
			periods = append(periods, p.Period)
		}
		totals[p.Period] += p.Sales
	}

	columns := []string{"product"}
	row := []string{string(product)}
	for _, w := range periods {
		columns = append(columns, string(w))
		row = append(row, decimal.NewFromFloat(totals[w]).Round(2).String())
	}
	return entities.Table{Name: "demand_forecast", Columns: columns, Rows: [][]string{row}}
}

func axes(history []SalesRecord) ([]entities.Period, []entities.Region) {
	var periods []entities.Period
	var regions []entities.Region
	seenPeriods := make(map[entities.Period]bool)
	seenRegions := make(map[entities.Region]bool)
	for _, rec := range history {
		if !seenPeriods[rec.Period] {
			seenPeriods[rec.Period] = true
			periods = append(periods, rec.Period)
		}
		if !seenRegions[rec.Region] {
			seenRegions[rec.Region] = true
			regions = append(regions, rec.Region)
		}
	}
	return periods, regions
}

func normalizeWeights(refs []ReferenceProduct) []ReferenceProduct {
	total := 0.0
	for _, ref := range refs {
		total += ref.Weight
	}
	out := make([]ReferenceProduct, len(refs))
	copy(out, refs)
	if total > 0 {
		for i := range out {
			out[i].Weight /= total
		}
		return out
	}
	if len(out) > 0 {
		equal := 1.0 / float64(len(out))
		for i := range out {
			out[i].Weight = equal
		}
	}
	return out
}

func regionCurve(history []SalesRecord, product entities.Product, region entities.Region) map[entities.Period]float64 {
	curve := make(map[entities.Period]float64)
	for _, rec := range history {
		if rec.Product == product && rec.Region == region {
			curve[rec.Period] += rec.Sales
		}
	}
	return curve
}

func paramOrDefault[K comparable](m map[K]float64, key K, fallback float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
