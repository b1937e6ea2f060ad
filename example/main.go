package main

import (
	"context"
	"fmt"

	"github.com/planwise/allocator/pkg/alloc"
	"github.com/planwise/allocator/pkg/application/services"
	"github.com/planwise/allocator/pkg/domain/entities"
	"github.com/planwise/allocator/pkg/forecast"
	"github.com/planwise/allocator/pkg/infrastructure/events"
	"github.com/planwise/allocator/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Forecast a new product from two predecessors' launch curves.
	history := []forecast.SalesRecord{
		{Product: "Superman", Region: "AMR", Period: "wk1", Sales: 400},
		{Product: "Superman", Region: "AMR", Period: "wk2", Sales: 320},
		{Product: "Dwarf", Region: "AMR", Period: "wk1", Sales: 250},
		{Product: "Dwarf", Region: "AMR", Period: "wk2", Sales: 210},
	}
	predictions := forecast.Generate(history, forecast.Params{
		TargetPrice: 1099,
		References: []forecast.ReferenceProduct{
			{Name: "Superman", Price: 999, Weight: 3},
			{Name: "Dwarf", Price: 899, Weight: 1},
		},
		FeatureUplift: 0.05,
		LaunchImpact:  map[entities.Region]float64{"AMR": 0.3},
		LaunchPeriods: 1,
	})
	forecastTable := forecast.Table("Superman Plus", predictions)
	fmt.Println("Forecast for Superman Plus:")
	for i, column := range forecastTable.Columns[1:] {
		fmt.Printf("  %s: %s units\n", column, forecastTable.Rows[0][i+1])
	}
	fmt.Println()

	// Assemble a scenario: tight supply, two products competing.
	scenario := &entities.Scenario{
		Name: "example",
		Tables: entities.TableSet{
			Supply: entities.Table{
				Name:    "total_supply",
				Columns: []string{"week", "total_supply"},
				Rows:    [][]string{{"wk1", "500"}, {"wk2", "400"}},
			},
			Forecast: forecastTable,
			Demand: entities.Table{
				Name:    "customer_demand",
				Columns: []string{"product", "channel", "region", "wk1", "wk2"},
				Rows: [][]string{
					{"Superman Plus", "Online Store", "AMR", "380", "300"},
					{"Dwarf Plus", "Online Store", "AMR", "220", "180"},
				},
			},
		},
		Weights: entities.NewPriorityWeights(),
	}
	scenario.Weights.Product["Superman Plus"] = 8
	scenario.Weights.Product["Dwarf Plus"] = 2

	// Guarantee the lower-priority product at least 40% fill in wk1.
	override, err := entities.NewOverrideConstraint("Dwarf Plus", "Online Store", "AMR", "wk1", 0.4)
	if err != nil {
		fmt.Printf("bad override: %v\n", err)
		return
	}
	scenario.Overrides = []entities.OverrideConstraint{*override}

	// Keep the scenario around for later reruns.
	repo := memory.NewScenarioRepository()
	if _, err := repo.Save(scenario); err != nil {
		fmt.Printf("saving scenario: %v\n", err)
		return
	}

	store := events.NewInMemoryEventStore()
	service := services.NewPlanningService(alloc.Config{}, store)

	report, err := service.Run(ctx, scenario)
	if err != nil {
		fmt.Printf("allocation failed: %v\n", err)
		return
	}

	fmt.Printf("Run %s: %s in %v\n", report.RunID, report.Status, report.SolveTime)
	fmt.Printf("Allocated %.0f of %.0f demanded\n\n", report.TotalAllocation(), report.TotalDemand())

	fmt.Println("By product:")
	for _, g := range report.Summaries.ByProduct {
		fmt.Printf("  %-15s demand %6.0f  allocated %6.0f  fill %.1f%%\n",
			g.Product, g.Demand, g.Allocation, g.Satisfaction*100)
	}
	fmt.Println()

	fmt.Println("Plan:")
	for _, row := range report.Rows {
		fmt.Printf("  %-15s %-13s %-4s %-4s %6.0f / %-6.0f\n",
			row.Product, row.Channel, row.Region, row.Period, row.Allocation, row.Demand)
	}
	fmt.Println()

	allEvents, _ := store.ReadAllEvents(0)
	fmt.Printf("Run emitted %d events\n", len(allEvents))
}
