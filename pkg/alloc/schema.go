package alloc

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/planwise/allocator/pkg/domain/entities"
)

// Column names the four input tables must carry.
const (
	ColPeriod      = "week"
	ColTotalSupply = "total_supply"
	ColProduct     = "product"
	ColActualBuild = "actual_build"
	ColChannel     = "channel"
	ColRegion      = "region"
)

// Dataset is the canonical in-memory form of one planning run's inputs:
// ordered index sets with small-integer id lookups, and a dense demand
// arena indexed by those ids. Demand is a total mapping (absent cells are
// zero); supply stays partial, periods missing from it are zero-capped by
// the optimizer.
type Dataset struct {
	Products []entities.Product
	Channels []entities.Channel
	Regions  []entities.Region
	Periods  []entities.Period

	productID map[entities.Product]int
	channelID map[entities.Channel]int
	regionID  map[entities.Region]int
	periodID  map[entities.Period]int

	demand []float64
	supply map[entities.Period]float64
	builds map[buildKey]float64
}

type buildKey struct {
	product entities.Product
	period  entities.Period
}

// Normalize adapts the four raw input tables into a Dataset. A missing
// identifying column fails with *SchemaError; unparseable demand cells
// degrade to zero demand and are reported as ConversionWarnings.
func Normalize(ts entities.TableSet) (*Dataset, []ConversionWarning, error) {
	var warnings []ConversionWarning
	warn := func(table string, row int, column, value string) {
		warnings = append(warnings, ConversionWarning{Table: table, Row: row, Column: column, Value: value})
	}

	if err := requireColumns(ts.Supply, ColPeriod, ColTotalSupply); err != nil {
		return nil, nil, err
	}
	buildsPresent := len(ts.Builds.Columns) > 0
	if buildsPresent {
		if err := requireColumns(ts.Builds, ColPeriod, ColProduct, ColActualBuild); err != nil {
			return nil, nil, err
		}
	}
	if len(ts.Forecast.Columns) > 0 {
		if err := requireColumns(ts.Forecast, ColProduct); err != nil {
			return nil, nil, err
		}
	}
	demandPresent := len(ts.Demand.Columns) > 0
	if demandPresent {
		if err := requireColumns(ts.Demand, ColProduct, ColChannel, ColRegion); err != nil {
			return nil, nil, err
		}
	}

	ds := &Dataset{
		supply: make(map[entities.Period]float64),
		builds: make(map[buildKey]float64),
	}

	// Index sets. Products come from detailed demand, the forecast and
	// builds; channels and regions from detailed demand plus the Default
	// bucket; periods from the detailed-demand columns, falling back to
	// the forecast columns and then the supply table. The forecast only
	// contributes demand when no detailed demand was provided: detailed
	// demand supersedes it.
	productSet := make(map[entities.Product]bool)
	channelSet := map[entities.Channel]bool{entities.DefaultChannel: true}
	regionSet := map[entities.Region]bool{entities.DefaultRegion: true}

	var buildRows [][]string
	buildPeriodIdx, buildProductIdx, buildQtyIdx := -1, -1, -1
	if buildsPresent {
		buildRows = ts.Builds.Rows
		buildPeriodIdx = ts.Builds.ColumnIndex(ColPeriod)
		buildProductIdx = ts.Builds.ColumnIndex(ColProduct)
		buildQtyIdx = ts.Builds.ColumnIndex(ColActualBuild)
	}
	for i, row := range buildRows {
		product := entities.Product(row[buildProductIdx])
		period := entities.Period(row[buildPeriodIdx])
		qty := 0.0
		if parsed, ok := parseCell(row[buildQtyIdx]); !ok {
			warn(ts.Builds.Name, i+1, ColActualBuild, row[buildQtyIdx])
		} else if fact, ferr := entities.NewBuildFact(product, period, parsed); ferr != nil {
			warn(ts.Builds.Name, i+1, ColActualBuild, row[buildQtyIdx])
		} else {
			qty = fact.Quantity
		}
		productSet[product] = true
		ds.builds[buildKey{product: product, period: period}] += qty
	}

	demandProductIdx := -1
	demandChannelIdx := -1
	demandRegionIdx := -1
	var periodCols []int
	if demandPresent {
		demandProductIdx = ts.Demand.ColumnIndex(ColProduct)
		demandChannelIdx = ts.Demand.ColumnIndex(ColChannel)
		demandRegionIdx = ts.Demand.ColumnIndex(ColRegion)
		for i, col := range ts.Demand.Columns {
			if i == demandProductIdx || i == demandChannelIdx || i == demandRegionIdx {
				continue
			}
			periodCols = append(periodCols, i)
			ds.Periods = append(ds.Periods, entities.Period(col))
		}
		for _, row := range ts.Demand.Rows {
			productSet[entities.Product(row[demandProductIdx])] = true
			channelSet[entities.Channel(row[demandChannelIdx])] = true
			regionSet[entities.Region(row[demandRegionIdx])] = true
		}
	}

	forecastProductIdx := -1
	var forecastPeriodCols []int
	useForecast := len(ts.Forecast.Columns) > 0 && !demandPresent
	if useForecast {
		forecastProductIdx = ts.Forecast.ColumnIndex(ColProduct)
		for i, col := range ts.Forecast.Columns {
			if i == forecastProductIdx {
				continue
			}
			forecastPeriodCols = append(forecastPeriodCols, i)
			ds.Periods = append(ds.Periods, entities.Period(col))
		}
		for _, row := range ts.Forecast.Rows {
			productSet[entities.Product(row[forecastProductIdx])] = true
		}
	}

	supplyPeriodIdx := ts.Supply.ColumnIndex(ColPeriod)
	supplyQtyIdx := ts.Supply.ColumnIndex(ColTotalSupply)
	for i, row := range ts.Supply.Rows {
		period := entities.Period(row[supplyPeriodIdx])
		qty := 0.0
		if parsed, ok := parseCell(row[supplyQtyIdx]); !ok {
			warn(ts.Supply.Name, i+1, ColTotalSupply, row[supplyQtyIdx])
		} else if fact, ferr := entities.NewSupplyFact(period, parsed); ferr != nil {
			warn(ts.Supply.Name, i+1, ColTotalSupply, row[supplyQtyIdx])
		} else {
			qty = fact.Quantity
		}
		// Duplicate supply rows for a period are summed.
		ds.supply[period] += qty
		if !demandPresent && !useForecast {
			ds.Periods = appendPeriodOnce(ds.Periods, period)
		}
	}

	for p := range productSet {
		ds.Products = append(ds.Products, p)
	}
	for c := range channelSet {
		ds.Channels = append(ds.Channels, c)
	}
	for r := range regionSet {
		ds.Regions = append(ds.Regions, r)
	}
	sort.Slice(ds.Products, func(i, j int) bool { return ds.Products[i] < ds.Products[j] })
	sort.Slice(ds.Channels, func(i, j int) bool { return ds.Channels[i] < ds.Channels[j] })
	sort.Slice(ds.Regions, func(i, j int) bool { return ds.Regions[i] < ds.Regions[j] })

	ds.productID = make(map[entities.Product]int, len(ds.Products))
	for i, p := range ds.Products {
		ds.productID[p] = i
	}
	ds.channelID = make(map[entities.Channel]int, len(ds.Channels))
	for i, c := range ds.Channels {
		ds.channelID[c] = i
	}
	ds.regionID = make(map[entities.Region]int, len(ds.Regions))
	for i, r := range ds.Regions {
		ds.regionID[r] = i
	}
	ds.periodID = make(map[entities.Period]int, len(ds.Periods))
	for i, w := range ds.Periods {
		ds.periodID[w] = i
	}

	// Dense demand arena over the full cross product, zero-initialized,
	// accumulated from detailed-demand rows. Duplicate rows for the same
	// (product, channel, region) add up rather than overwrite.
	ds.demand = make([]float64, len(ds.Products)*len(ds.Channels)*len(ds.Regions)*len(ds.Periods))
	if demandPresent {
		for i, row := range ts.Demand.Rows {
			product := entities.Product(row[demandProductIdx])
			channel := entities.Channel(row[demandChannelIdx])
			region := entities.Region(row[demandRegionIdx])
			pi := ds.productID[product]
			ci := ds.channelID[channel]
			ri := ds.regionID[region]
			for wi, colIdx := range periodCols {
				raw := row[colIdx]
				if strings.TrimSpace(raw) == "" {
					continue
				}
				qty, ok := parseCell(raw)
				if ok {
					_, ferr := entities.NewDemandFact(product, channel, region, ds.Periods[wi], qty)
					ok = ferr == nil
				}
				if !ok {
					warn(ts.Demand.Name, i+1, ts.Demand.Columns[colIdx], raw)
					continue
				}
				ds.demand[ds.cellIndex(pi, ci, ri, wi)] += qty
			}
		}
	}
	if useForecast {
		ci := ds.channelID[entities.DefaultChannel]
		ri := ds.regionID[entities.DefaultRegion]
		for i, row := range ts.Forecast.Rows {
			product := entities.Product(row[forecastProductIdx])
			pi := ds.productID[product]
			for wi, colIdx := range forecastPeriodCols {
				raw := row[colIdx]
				if strings.TrimSpace(raw) == "" {
					continue
				}
				qty, ok := parseCell(raw)
				if ok {
					_, ferr := entities.NewDemandFact(product, entities.DefaultChannel, entities.DefaultRegion, ds.Periods[wi], qty)
					ok = ferr == nil
				}
				if !ok {
					warn(ts.Forecast.Name, i+1, ts.Forecast.Columns[colIdx], raw)
					continue
				}
				ds.demand[ds.cellIndex(pi, ci, ri, wi)] += qty
			}
		}
	}

	return ds, warnings, nil
}

func (d *Dataset) cellIndex(pi, ci, ri, wi int) int {
	return ((pi*len(d.Channels)+ci)*len(d.Regions)+ri)*len(d.Periods) + wi
}

// DemandAt returns demand for a cell by index-set ids.
func (d *Dataset) DemandAt(pi, ci, ri, wi int) float64 {
	return d.demand[d.cellIndex(pi, ci, ri, wi)]
}

// Demand returns demand for a cell by name; unknown identifiers have zero
// demand, keeping the mapping total.
func (d *Dataset) Demand(p entities.Product, c entities.Channel, r entities.Region, w entities.Period) float64 {
	pi, ok := d.productID[p]
	if !ok {
		return 0
	}
	ci, ok := d.channelID[c]
	if !ok {
		return 0
	}
	ri, ok := d.regionID[r]
	if !ok {
		return 0
	}
	wi, ok := d.periodID[w]
	if !ok {
		return 0
	}
	return d.DemandAt(pi, ci, ri, wi)
}

// Supply returns the total supply for a period and whether the period was
// present in the supply table at all.
func (d *Dataset) Supply(w entities.Period) (float64, bool) {
	qty, ok := d.supply[w]
	return qty, ok
}

// Build returns the recorded actual build for a product and period.
func (d *Dataset) Build(p entities.Product, w entities.Period) (float64, bool) {
	qty, ok := d.builds[buildKey{product: p, period: w}]
	return qty, ok
}

// PeriodIndex returns the position of a period in the time axis, or -1.
func (d *Dataset) PeriodIndex(w entities.Period) int {
	wi, ok := d.periodID[w]
	if !ok {
		return -1
	}
	return wi
}

func requireColumns(t entities.Table, cols ...string) error {
	for _, col := range cols {
		if t.ColumnIndex(col) < 0 {
			return &SchemaError{Table: t.Name, Column: col}
		}
	}
	return nil
}

func parseCell(raw string) (float64, bool) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	f, _ := v.Float64()
	return f, true
}

func appendPeriodOnce(periods []entities.Period, w entities.Period) []entities.Period {
	for _, existing := range periods {
		if existing == w {
			return periods
		}
	}
	return append(periods, w)
}
