package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/planwise/allocator/pkg/alloc"
	"github.com/planwise/allocator/pkg/domain/entities"
)

// RunReport contains the complete output of one allocation run.
type RunReport struct {
	RunID     uuid.UUID
	Scenario  string
	Status    string
	Objective float64
	SolveTime time.Duration

	Rows      []entities.AllocationRow
	Summaries alloc.Summaries
	Warnings  []alloc.ConversionWarning
}

// TotalAllocation sums the allocation column across all rows.
func (r *RunReport) TotalAllocation() float64 {
	total := 0.0
	for _, row := range r.Rows {
		total += row.Allocation
	}
	return total
}

// TotalDemand sums the demand column across all rows.
func (r *RunReport) TotalDemand() float64 {
	total := 0.0
	for _, row := range r.Rows {
		total += row.Demand
	}
	return total
}
