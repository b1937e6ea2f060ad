package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStartedEvent    = "run.started"
	RunNormalizedEvent = "run.normalized"
	RunCompletedEvent  = "run.completed"
	RunInfeasibleEvent = "run.infeasible"
	RunFailedEvent     = "run.failed"
)

type RunStarted struct {
	RunID    uuid.UUID `json:"run_id"`
	Scenario string    `json:"scenario"`
}

type RunNormalized struct {
	RunID    uuid.UUID `json:"run_id"`
	Products int       `json:"products"`
	Periods  int       `json:"periods"`
	Warnings int       `json:"warnings"`
}

type RunCompleted struct {
	RunID     uuid.UUID     `json:"run_id"`
	Objective float64       `json:"objective"`
	Rows      int           `json:"rows"`
	SolveTime time.Duration `json:"solve_time"`
}

type RunInfeasible struct {
	RunID  uuid.UUID `json:"run_id"`
	Reason string    `json:"reason"`
}

type RunFailed struct {
	RunID uuid.UUID `json:"run_id"`
	Error string    `json:"error"`
}

func runStream(runID uuid.UUID) string {
	return "run-" + runID.String()
}

func NewRunStartedEvent(runID uuid.UUID, scenario string) Event {
	return NewEvent(RunStartedEvent, runStream(runID), RunStarted{RunID: runID, Scenario: scenario})
}

func NewRunNormalizedEvent(runID uuid.UUID, products, periods, warnings int) Event {
	return NewEvent(RunNormalizedEvent, runStream(runID), RunNormalized{
		RunID:    runID,
		Products: products,
		Periods:  periods,
		Warnings: warnings,
	})
}

func NewRunCompletedEvent(runID uuid.UUID, objective float64, rows int, solveTime time.Duration) Event {
	return NewEvent(RunCompletedEvent, runStream(runID), RunCompleted{
		RunID:     runID,
		Objective: objective,
		Rows:      rows,
		SolveTime: solveTime,
	})
}

func NewRunInfeasibleEvent(runID uuid.UUID, reason string) Event {
	return NewEvent(RunInfeasibleEvent, runStream(runID), RunInfeasible{RunID: runID, Reason: reason})
}

func NewRunFailedEvent(runID uuid.UUID, err error) Event {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return NewEvent(RunFailedEvent, runStream(runID), RunFailed{RunID: runID, Error: msg})
}
