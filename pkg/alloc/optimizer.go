package alloc

import (
	"context"
	"time"

	"github.com/planwise/allocator/pkg/domain/entities"
	"github.com/planwise/allocator/pkg/solver"
)

// Config holds configuration for the allocation optimizer.
type Config struct {
	// Integral forces whole-unit allocations (mixed-integer mode). The
	// default is the continuous LP, which solves faster and can split
	// units fractionally.
	Integral bool
	// Tolerance is the positivity/integrality tolerance. Zero means 1e-6.
	Tolerance float64
	// Timeout bounds the wall-clock time of one solve. Zero means no
	// limit. A timeout surfaces as a solver failure, never as a partial
	// allocation.
	Timeout time.Duration
}

func (c Config) tolerance() float64 {
	if c.Tolerance > 0 {
		return c.Tolerance
	}
	return 1e-6
}

// Result is the optimizer's flat output table plus solve metadata. Rows
// is empty whenever the solve did not reach an optimal status.
type Result struct {
	Rows      []entities.AllocationRow
	Status    string
	Objective float64
}

// Optimizer builds and solves the allocation program. It holds no state
// between runs; every Allocate call is a pure function of its inputs.
type Optimizer struct {
	config Config
}

// NewOptimizer creates an optimizer with the given configuration.
func NewOptimizer(config Config) *Optimizer {
	return &Optimizer{config: config}
}

// cellVar ties one decision variable to its cell and demand.
type cellVar struct {
	pi, ci, ri, wi int
	demand         float64
}

// Allocate computes the priority-weighted allocation for one dataset.
//
// One non-negative variable exists per cell with positive demand; cells
// with zero demand get no variable and are fixed at zero allocation. The
// objective maximizes sum(priority * allocation / demand), i.e. weighted
// fractional satisfaction rather than raw volume, so low-priority
// high-volume cells cannot dominate purely by size. Constraints: a total
// supply cap per period (periods with demand but absent from the supply
// table are capped at zero), allocation <= demand per cell, and override
// floors allocation >= rate * demand on cells with positive demand.
//
// On infeasibility the error is *InfeasibleError; on any other
// non-optimal outcome it is *SolverFailureError. Both come with an empty
// result, never a partial one.
func (o *Optimizer) Allocate(ctx context.Context, ds *Dataset, weights entities.PriorityWeights, overrides []entities.OverrideConstraint) (*Result, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	priorities := buildPriorityTable(ds, weights)
	prob := solver.NewProblem()

	// Decision variables, in index-set order so results come out sorted.
	vars := make([]cellVar, 0)
	varID := make(map[int]int) // dataset cell index -> variable index
	periodVars := make([][]int, len(ds.Periods))
	for pi := range ds.Products {
		for ci := range ds.Channels {
			for ri := range ds.Regions {
				for wi := range ds.Periods {
					demand := ds.DemandAt(pi, ci, ri, wi)
					if demand <= 0 {
						continue
					}
					v := prob.AddVariable(priorities.at(pi, ci, ri) / demand)
					vars = append(vars, cellVar{pi: pi, ci: ci, ri: ri, wi: wi, demand: demand})
					varID[ds.cellIndex(pi, ci, ri, wi)] = v
					periodVars[wi] = append(periodVars[wi], v)
				}
			}
		}
	}

	// Supply cap per period. Periods carrying demand but missing from the
	// supply table get an explicit zero cap.
	for wi, vs := range periodVars {
		if len(vs) == 0 {
			continue
		}
		supplyCap, ok := ds.Supply(ds.Periods[wi])
		if !ok {
			supplyCap = 0
		}
		coeffs := make(map[int]float64, len(vs))
		for _, v := range vs {
			coeffs[v] = 1
		}
		prob.AddLessEq(coeffs, supplyCap)
	}

	// Demand cap per cell.
	for v, cell := range vars {
		prob.AddLessEq(map[int]float64{v: 1}, cell.demand)
	}

	// Override floors, only where the cell exists and has demand.
	for _, ov := range overrides {
		v, demand, ok := o.lookupVar(ds, varID, ov.Cell())
		if !ok {
			continue
		}
		prob.AddGreaterEq(map[int]float64{v: 1}, ov.MinSatisfactionRate*demand)
	}

	sol, err := solver.Solve(ctx, prob, solver.Options{
		Integral:  o.config.Integral,
		Tolerance: o.config.Tolerance,
	})
	if err != nil {
		return &Result{Status: solver.StatusFailed.String()}, &SolverFailureError{Status: sol.Status.String(), Err: err}
	}

	switch sol.Status {
	case solver.StatusOptimal:
		// fall through to extraction
	case solver.StatusInfeasible:
		return &Result{Status: sol.Status.String()}, &InfeasibleError{Status: sol.Status.String()}
	default:
		return &Result{Status: sol.Status.String()}, &SolverFailureError{Status: sol.Status.String()}
	}

	tol := o.config.tolerance()
	result := &Result{Status: sol.Status.String(), Objective: sol.Objective}
	for v, cell := range vars {
		allocation := sol.X[v]
		if allocation <= tol {
			continue
		}
		result.Rows = append(result.Rows, entities.AllocationRow{
			Product:      ds.Products[cell.pi],
			Channel:      ds.Channels[cell.ci],
			Region:       ds.Regions[cell.ri],
			Period:       ds.Periods[cell.wi],
			Demand:       cell.demand,
			Allocation:   allocation,
			Satisfaction: allocation / cell.demand,
			Priority:     priorities.at(cell.pi, cell.ci, cell.ri),
		})
	}
	return result, nil
}

func (o *Optimizer) lookupVar(ds *Dataset, varID map[int]int, cell entities.Cell) (int, float64, bool) {
	pi, ok := ds.productID[cell.Product]
	if !ok {
		return 0, 0, false
	}
	ci, ok := ds.channelID[cell.Channel]
	if !ok {
		return 0, 0, false
	}
	ri, ok := ds.regionID[cell.Region]
	if !ok {
		return 0, 0, false
	}
	wi, ok := ds.periodID[cell.Period]
	if !ok {
		return 0, 0, false
	}
	v, ok := varID[ds.cellIndex(pi, ci, ri, wi)]
	if !ok {
		return 0, 0, false
	}
	return v, ds.DemandAt(pi, ci, ri, wi), true
}
