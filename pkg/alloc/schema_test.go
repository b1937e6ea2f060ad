package alloc

import (
	"errors"
	"testing"

	"github.com/planwise/allocator/pkg/domain/entities"
)

func TestNormalize_IndexSets(t *testing.T) {
	ts := entities.TableSet{
		Supply: supplyTable([]string{"wk1", "100"}, []string{"wk2", "80"}),
		Builds: buildTable([]string{"wk1", "Dwarf Mini", "40"}),
		Demand: demandTable([]string{"wk1", "wk2"},
			[]string{"Superman Plus", "Online Store", "AMR", "60", "50"},
			[]string{"Dwarf Plus", "Retail Store", "Europe", "30", "20"},
		),
	}

	ds := mustNormalize(t, ts)

	// Products: union of demand and builds, sorted.
	wantProducts := []entities.Product{"Dwarf Mini", "Dwarf Plus", "Superman Plus"}
	if len(ds.Products) != len(wantProducts) {
		t.Fatalf("products = %v, want %v", ds.Products, wantProducts)
	}
	for i, p := range wantProducts {
		if ds.Products[i] != p {
			t.Errorf("products[%d] = %s, want %s", i, ds.Products[i], p)
		}
	}

	// Channels and regions always include the Default bucket.
	foundDefaultChannel := false
	for _, c := range ds.Channels {
		if c == entities.DefaultChannel {
			foundDefaultChannel = true
		}
	}
	if !foundDefaultChannel {
		t.Error("channels must include Default")
	}
	foundDefaultRegion := false
	for _, r := range ds.Regions {
		if r == entities.DefaultRegion {
			foundDefaultRegion = true
		}
	}
	if !foundDefaultRegion {
		t.Error("regions must include Default")
	}

	// Periods keep the demand table's column order.
	if len(ds.Periods) != 2 || ds.Periods[0] != "wk1" || ds.Periods[1] != "wk2" {
		t.Errorf("periods = %v, want [wk1 wk2]", ds.Periods)
	}
	if got := ds.PeriodIndex("wk2"); got != 1 {
		t.Errorf("PeriodIndex(wk2) = %d, want 1", got)
	}
	if got := ds.PeriodIndex("wk99"); got != -1 {
		t.Errorf("PeriodIndex(wk99) = %d, want -1", got)
	}
}

func TestNormalize_DenseDemandDefaultsToZero(t *testing.T) {
	ds := singlePeriodDataset(t, "100",
		[]string{"Superman Plus", "Online Store", "AMR", "60"},
	)

	if got := ds.Demand("Superman Plus", "Online Store", "AMR", "wk1"); got != 60 {
		t.Errorf("demand = %g, want 60", got)
	}
	// Absent combination: zero, not missing.
	if got := ds.Demand("Superman Plus", "Retail Store", "AMR", "wk1"); got != 0 {
		t.Errorf("absent combination demand = %g, want 0", got)
	}
	// Unknown identifier: still zero.
	if got := ds.Demand("Nope", "Online Store", "AMR", "wk1"); got != 0 {
		t.Errorf("unknown product demand = %g, want 0", got)
	}
}

func TestNormalize_DuplicateDemandRowsAccumulate(t *testing.T) {
	ds := singlePeriodDataset(t, "100",
		[]string{"Superman Plus", "Online Store", "AMR", "60"},
		[]string{"Superman Plus", "Online Store", "AMR", "15"},
	)

	if got := ds.Demand("Superman Plus", "Online Store", "AMR", "wk1"); got != 75 {
		t.Errorf("accumulated demand = %g, want 75", got)
	}
}

func TestNormalize_DuplicateSupplyRowsSum(t *testing.T) {
	ts := entities.TableSet{
		Supply: supplyTable([]string{"wk1", "100"}, []string{"wk1", "50"}),
		Demand: demandTable([]string{"wk1"},
			[]string{"Superman Plus", "Online Store", "AMR", "60"},
		),
	}
	ds := mustNormalize(t, ts)
	qty, ok := ds.Supply("wk1")
	if !ok || qty != 150 {
		t.Errorf("supply = %g (present=%v), want 150", qty, ok)
	}
}

func TestNormalize_UnparseableDemandCellWarnsAndZeroes(t *testing.T) {
	ts := entities.TableSet{
		Supply: supplyTable([]string{"wk1", "100"}),
		Demand: demandTable([]string{"wk1", "wk2"},
			[]string{"Superman Plus", "Online Store", "AMR", "n/a", "40"},
		),
	}

	ds, warnings, err := Normalize(ts)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].Column != "wk1" || warnings[0].Value != "n/a" {
		t.Errorf("warning = %+v, want column wk1 value n/a", warnings[0])
	}
	if got := ds.Demand("Superman Plus", "Online Store", "AMR", "wk1"); got != 0 {
		t.Errorf("unparseable cell demand = %g, want 0", got)
	}
	if got := ds.Demand("Superman Plus", "Online Store", "AMR", "wk2"); got != 40 {
		t.Errorf("neighbor cell demand = %g, want 40", got)
	}
}

func TestNormalize_MissingColumnsFailWithSchemaError(t *testing.T) {
	tests := []struct {
		name       string
		tables     entities.TableSet
		wantTable  string
		wantColumn string
	}{
		{
			name: "supply_missing_total_supply",
			tables: entities.TableSet{
				Supply: entities.Table{Name: "total_supply", Columns: []string{"week"}},
			},
			wantTable:  "total_supply",
			wantColumn: "total_supply",
		},
		{
			name: "demand_missing_region",
			tables: entities.TableSet{
				Supply: supplyTable(),
				Demand: entities.Table{Name: "customer_demand", Columns: []string{"product", "channel", "wk1"}},
			},
			wantTable:  "customer_demand",
			wantColumn: "region",
		},
		{
			name: "builds_missing_actual_build",
			tables: entities.TableSet{
				Supply: supplyTable(),
				Builds: entities.Table{Name: "actual_build", Columns: []string{"week", "product"}},
			},
			wantTable:  "actual_build",
			wantColumn: "actual_build",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.tables)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("err = %v, want *SchemaError", err)
			}
			if schemaErr.Table != tt.wantTable || schemaErr.Column != tt.wantColumn {
				t.Errorf("SchemaError = %+v, want table %s column %s", schemaErr, tt.wantTable, tt.wantColumn)
			}
		})
	}
}

func TestNormalize_PeriodsFallBackToSupplyTable(t *testing.T) {
	ts := entities.TableSet{
		Supply: supplyTable([]string{"wk3", "10"}, []string{"wk1", "20"}, []string{"wk3", "5"}),
	}
	ds := mustNormalize(t, ts)
	// Row order preserved, duplicates collapsed.
	if len(ds.Periods) != 2 || ds.Periods[0] != "wk3" || ds.Periods[1] != "wk1" {
		t.Errorf("periods = %v, want [wk3 wk1]", ds.Periods)
	}
}

func TestNormalize_ForecastBecomesDefaultBucketDemand(t *testing.T) {
	ts := entities.TableSet{
		Supply: supplyTable([]string{"wk1", "100"}, []string{"wk2", "100"}),
		Forecast: entities.Table{
			Name:    "demand_forecast",
			Columns: []string{"product", "wk1", "wk2"},
			Rows:    [][]string{{"Princess Plus", "30", "20"}},
		},
	}
	ds := mustNormalize(t, ts)

	// Periods come from the forecast columns, not the supply rows.
	if len(ds.Periods) != 2 || ds.Periods[0] != "wk1" || ds.Periods[1] != "wk2" {
		t.Errorf("periods = %v, want [wk1 wk2]", ds.Periods)
	}
	if got := ds.Demand("Princess Plus", entities.DefaultChannel, entities.DefaultRegion, "wk1"); got != 30 {
		t.Errorf("forecast demand = %g, want 30", got)
	}
	if got := ds.Demand("Princess Plus", entities.DefaultChannel, entities.DefaultRegion, "wk2"); got != 20 {
		t.Errorf("forecast demand = %g, want 20", got)
	}
}

func TestNormalize_DetailedDemandSupersedesForecast(t *testing.T) {
	ts := entities.TableSet{
		Supply: supplyTable([]string{"wk1", "100"}),
		Forecast: entities.Table{
			Name:    "demand_forecast",
			Columns: []string{"product", "wk1"},
			Rows:    [][]string{{"Princess Plus", "30"}},
		},
		Demand: demandTable([]string{"wk1"},
			[]string{"Superman Plus", "Online Store", "AMR", "60"},
		),
	}
	ds := mustNormalize(t, ts)

	if got := ds.Demand("Princess Plus", entities.DefaultChannel, entities.DefaultRegion, "wk1"); got != 0 {
		t.Errorf("superseded forecast contributed demand %g, want 0", got)
	}
	if got := ds.Demand("Superman Plus", "Online Store", "AMR", "wk1"); got != 60 {
		t.Errorf("detailed demand = %g, want 60", got)
	}
}

func TestNormalize_BuildLookup(t *testing.T) {
	ts := entities.TableSet{
		Supply: supplyTable([]string{"wk1", "100"}),
		Builds: buildTable(
			[]string{"wk1", "Superman Plus", "70"},
			[]string{"wk1", "Superman Plus", "30"},
		),
		Demand: demandTable([]string{"wk1"},
			[]string{"Superman Plus", "Online Store", "AMR", "60"},
		),
	}
	ds := mustNormalize(t, ts)
	qty, ok := ds.Build("Superman Plus", "wk1")
	if !ok || qty != 100 {
		t.Errorf("build = %g (present=%v), want 100", qty, ok)
	}
}
