package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/planwise/allocator/pkg/alloc"
	"github.com/planwise/allocator/pkg/domain/entities"
	"github.com/planwise/allocator/pkg/infrastructure/events"
)

func testScenario() *entities.Scenario {
	weights := entities.NewPriorityWeights()
	weights.Product["Superman Plus"] = 10
	weights.Product["Dwarf Plus"] = 1

	return &entities.Scenario{
		Name: "launch",
		Tables: entities.TableSet{
			Supply: entities.Table{
				Name:    "total_supply",
				Columns: []string{"week", "total_supply"},
				Rows:    [][]string{{"wk1", "100"}},
			},
			Demand: entities.Table{
				Name:    "customer_demand",
				Columns: []string{"product", "channel", "region", "wk1"},
				Rows: [][]string{
					{"Superman Plus", "Online Store", "AMR", "60"},
					{"Dwarf Plus", "Online Store", "AMR", "60"},
				},
			},
		},
		Weights: weights,
	}
}

func eventTypes(t *testing.T, store *events.InMemoryEventStore) []string {
	t.Helper()
	all, err := store.ReadAllEvents(0)
	if err != nil {
		t.Fatalf("ReadAllEvents failed: %v", err)
	}
	types := make([]string, len(all))
	for i, e := range all {
		types[i] = e.Type()
	}
	return types
}

func TestPlanningService_Run(t *testing.T) {
	store := events.NewInMemoryEventStore()
	service := NewPlanningService(alloc.Config{}, store)

	report, err := service.Run(context.Background(), testScenario())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Scenario != "launch" {
		t.Errorf("scenario = %s, want launch", report.Scenario)
	}
	if report.Status != "Optimal" {
		t.Errorf("status = %s, want Optimal", report.Status)
	}
	if math.Abs(report.TotalAllocation()-100) > 1e-6 {
		t.Errorf("total allocation = %g, want 100", report.TotalAllocation())
	}
	if len(report.Summaries.ByProduct) != 2 {
		t.Errorf("ByProduct groups = %d, want 2", len(report.Summaries.ByProduct))
	}

	want := []string{events.RunStartedEvent, events.RunNormalizedEvent, events.RunCompletedEvent}
	got := eventTypes(t, store)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPlanningService_RunEventsShareOneStream(t *testing.T) {
	store := events.NewInMemoryEventStore()
	service := NewPlanningService(alloc.Config{}, store)

	report, err := service.Run(context.Background(), testScenario())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stream, err := store.ReadEvents("run-"+report.RunID.String(), 0)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(stream) != 3 {
		t.Errorf("run stream has %d events, want 3", len(stream))
	}
}

func TestPlanningService_InfeasibleScenario(t *testing.T) {
	scenario := testScenario()
	override, oerr := entities.NewOverrideConstraint("Superman Plus", "Online Store", "AMR", "wk1", 1.0)
	if oerr != nil {
		t.Fatalf("NewOverrideConstraint failed: %v", oerr)
	}
	scenario.Overrides = []entities.OverrideConstraint{*override}
	// Supply far below the floored demand.
	scenario.Tables.Supply.Rows = [][]string{{"wk1", "10"}}

	store := events.NewInMemoryEventStore()
	service := NewPlanningService(alloc.Config{}, store)

	report, err := service.Run(context.Background(), scenario)
	var infeasible *alloc.InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("err = %v, want *InfeasibleError", err)
	}
	if report == nil {
		t.Fatal("report must be returned even for infeasible runs")
	}
	if len(report.Rows) != 0 {
		t.Errorf("infeasible run produced %d rows", len(report.Rows))
	}

	types := eventTypes(t, store)
	if len(types) == 0 || types[len(types)-1] != events.RunInfeasibleEvent {
		t.Errorf("events = %v, want trailing %s", types, events.RunInfeasibleEvent)
	}
}

func TestPlanningService_BadTablesFailNormalization(t *testing.T) {
	scenario := testScenario()
	scenario.Tables.Supply.Columns = []string{"week"}

	store := events.NewInMemoryEventStore()
	service := NewPlanningService(alloc.Config{}, store)

	report, err := service.Run(context.Background(), scenario)
	var schemaErr *alloc.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *SchemaError", err)
	}
	if report != nil {
		t.Error("no report expected when normalization fails")
	}

	types := eventTypes(t, store)
	if len(types) != 2 || types[1] != events.RunFailedEvent {
		t.Errorf("events = %v, want [started failed]", types)
	}
}

func TestPlanningService_NilScenario(t *testing.T) {
	service := NewPlanningService(alloc.Config{}, nil)
	if _, err := service.Run(context.Background(), nil); err == nil {
		t.Error("expected error for nil scenario")
	}
}
