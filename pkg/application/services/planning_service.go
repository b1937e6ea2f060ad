package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planwise/allocator/pkg/alloc"
	"github.com/planwise/allocator/pkg/application/dto"
	"github.com/planwise/allocator/pkg/domain/entities"
	"github.com/planwise/allocator/pkg/infrastructure/events"
)

// PlanningService runs allocation scenarios end to end: normalize the
// raw tables, solve, and aggregate the plan into a report. Run
// lifecycle events go to the event store when one is configured.
type PlanningService struct {
	optimizer  *alloc.Optimizer
	eventStore events.EventStore
}

// NewPlanningService creates a planning service. eventStore may be nil.
func NewPlanningService(config alloc.Config, eventStore events.EventStore) *PlanningService {
	return &PlanningService{
		optimizer:  alloc.NewOptimizer(config),
		eventStore: eventStore,
	}
}

// Run executes one scenario. The returned report is non-nil whenever
// the input tables normalized, even if the solve itself failed; callers
// get the run ID, status and conversion warnings either way.
func (s *PlanningService) Run(ctx context.Context, scenario *entities.Scenario) (*dto.RunReport, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario must not be nil")
	}

	runID := uuid.New()
	s.emit(events.NewRunStartedEvent(runID, scenario.Name))

	dataset, warnings, err := alloc.Normalize(scenario.Tables)
	if err != nil {
		s.emit(events.NewRunFailedEvent(runID, err))
		return nil, fmt.Errorf("normalizing scenario %q: %w", scenario.Name, err)
	}
	s.emit(events.NewRunNormalizedEvent(runID, len(dataset.Products), len(dataset.Periods), len(warnings)))

	start := time.Now()
	result, err := s.optimizer.Allocate(ctx, dataset, scenario.Weights, scenario.Overrides)
	solveTime := time.Since(start)

	report := &dto.RunReport{
		RunID:     runID,
		Scenario:  scenario.Name,
		Status:    result.Status,
		Objective: result.Objective,
		SolveTime: solveTime,
		Rows:      result.Rows,
		Warnings:  warnings,
	}

	if err != nil {
		var infeasible *alloc.InfeasibleError
		if errors.As(err, &infeasible) {
			s.emit(events.NewRunInfeasibleEvent(runID, infeasible.Error()))
		} else {
			s.emit(events.NewRunFailedEvent(runID, err))
		}
		return report, fmt.Errorf("solving scenario %q: %w", scenario.Name, err)
	}

	report.Summaries = *alloc.Summarize(result.Rows)
	s.emit(events.NewRunCompletedEvent(runID, result.Objective, len(result.Rows), solveTime))

	return report, nil
}

func (s *PlanningService) emit(event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		fmt.Printf("failed to append event %s: %v\n", event.Type(), err)
	}
}
