package alloc

import (
	"testing"

	"github.com/planwise/allocator/pkg/domain/entities"
)

// demandRow is (product, channel, region, per-period raw cells).
func demandTable(periods []string, rows ...[]string) entities.Table {
	columns := append([]string{"product", "channel", "region"}, periods...)
	return entities.Table{Name: "customer_demand", Columns: columns, Rows: rows}
}

func supplyTable(rows ...[]string) entities.Table {
	return entities.Table{Name: "total_supply", Columns: []string{"week", "total_supply"}, Rows: rows}
}

func buildTable(rows ...[]string) entities.Table {
	return entities.Table{Name: "actual_build", Columns: []string{"week", "product", "actual_build"}, Rows: rows}
}

func mustNormalize(t *testing.T, ts entities.TableSet) *Dataset {
	t.Helper()
	ds, _, err := Normalize(ts)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return ds
}

// singlePeriodDataset builds the common one-week test fixture: supply for
// wk1 and one demand row per given (product, channel, region, demand).
func singlePeriodDataset(t *testing.T, supply string, cells ...[]string) *Dataset {
	t.Helper()
	rows := make([][]string, len(cells))
	copy(rows, cells)
	return mustNormalize(t, entities.TableSet{
		Supply: supplyTable([]string{"wk1", supply}),
		Demand: demandTable([]string{"wk1"}, rows...),
	})
}
