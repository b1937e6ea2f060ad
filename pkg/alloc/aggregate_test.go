package alloc

import (
	"math"
	"testing"

	"github.com/planwise/allocator/pkg/domain/entities"
)

func sampleRows() []entities.AllocationRow {
	return []entities.AllocationRow{
		{Product: "Superman Plus", Channel: "Online Store", Region: "AMR", Period: "wk1", Demand: 60, Allocation: 60, Satisfaction: 1, Priority: 10},
		{Product: "Superman Plus", Channel: "Online Store", Region: "AMR", Period: "wk2", Demand: 50, Allocation: 25, Satisfaction: 0.5, Priority: 10},
		{Product: "Superman Plus", Channel: "Retail Store", Region: "Europe", Period: "wk1", Demand: 40, Allocation: 10, Satisfaction: 0.25, Priority: 5},
		{Product: "Dwarf Plus", Channel: "Online Store", Region: "AMR", Period: "wk1", Demand: 30, Allocation: 30, Satisfaction: 1, Priority: 1},
	}
}

func TestSummarize_ByProduct(t *testing.T) {
	s := Summarize(sampleRows())

	if len(s.ByProduct) != 2 {
		t.Fatalf("ByProduct rows = %d, want 2", len(s.ByProduct))
	}
	// Sorted by product, so Dwarf Plus first.
	dwarf := s.ByProduct[0]
	if dwarf.Product != "Dwarf Plus" || dwarf.Demand != 30 || dwarf.Allocation != 30 {
		t.Errorf("dwarf summary = %+v", dwarf)
	}
	superman := s.ByProduct[1]
	if superman.Demand != 150 || superman.Allocation != 95 {
		t.Errorf("superman totals = %g/%g, want 95/150", superman.Allocation, superman.Demand)
	}
	if math.Abs(superman.Satisfaction-95.0/150.0) > 1e-9 {
		t.Errorf("superman satisfaction = %g, want %g", superman.Satisfaction, 95.0/150.0)
	}
}

func TestSummarize_ByProductPeriod(t *testing.T) {
	s := Summarize(sampleRows())

	want := map[[2]string][2]float64{
		{"Dwarf Plus", "wk1"}:    {30, 30},
		{"Superman Plus", "wk1"}: {100, 70},
		{"Superman Plus", "wk2"}: {50, 25},
	}
	if len(s.ByProductPeriod) != len(want) {
		t.Fatalf("ByProductPeriod rows = %d, want %d", len(s.ByProductPeriod), len(want))
	}
	for _, row := range s.ByProductPeriod {
		expected, ok := want[[2]string{string(row.Product), string(row.Period)}]
		if !ok {
			t.Errorf("unexpected group %+v", row)
			continue
		}
		if row.Demand != expected[0] || row.Allocation != expected[1] {
			t.Errorf("group %s/%s = %g/%g, want %g/%g",
				row.Product, row.Period, row.Allocation, row.Demand, expected[1], expected[0])
		}
	}
}

func TestSummarize_ByProductChannelRegion(t *testing.T) {
	s := Summarize(sampleRows())

	if len(s.ByProductChannelRegion) != 3 {
		t.Fatalf("ByProductChannelRegion rows = %d, want 3", len(s.ByProductChannelRegion))
	}
	for _, row := range s.ByProductChannelRegion {
		if row.Product == "Superman Plus" && row.Channel == "Online Store" && row.Region == "AMR" {
			if row.Demand != 110 || row.Allocation != 85 {
				t.Errorf("group totals = %g/%g, want 85/110", row.Allocation, row.Demand)
			}
		}
	}
}

func TestSummarize_AggregationConsistency(t *testing.T) {
	rows := sampleRows()
	s := Summarize(rows)

	var totalDemand, totalAllocation float64
	for _, row := range rows {
		totalDemand += row.Demand
		totalAllocation += row.Allocation
	}
	var periodDemand, periodAllocation float64
	for _, group := range s.ByPeriod {
		periodDemand += group.Demand
		periodAllocation += group.Allocation
	}
	if math.Abs(periodDemand-totalDemand) > 1e-9 {
		t.Errorf("by-period demand %g != flat total %g", periodDemand, totalDemand)
	}
	if math.Abs(periodAllocation-totalAllocation) > 1e-9 {
		t.Errorf("by-period allocation %g != flat total %g", periodAllocation, totalAllocation)
	}
}

func TestSummarize_ZeroDemandGroupReportsNaN(t *testing.T) {
	rows := []entities.AllocationRow{
		{Product: "Superman Plus", Channel: "Online Store", Region: "AMR", Period: "wk1", Demand: 0, Allocation: 0},
	}
	s := Summarize(rows)
	if len(s.ByProduct) != 1 {
		t.Fatalf("ByProduct rows = %d, want 1", len(s.ByProduct))
	}
	if !math.IsNaN(s.ByProduct[0].Satisfaction) {
		t.Errorf("satisfaction = %g, want NaN", s.ByProduct[0].Satisfaction)
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := Summarize(nil)
	if len(s.ByProduct)+len(s.ByProductPeriod)+len(s.ByProductChannelRegion)+len(s.ByPeriod) != 0 {
		t.Error("empty input must produce empty summaries")
	}
}
