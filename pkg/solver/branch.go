package solver

import (
	"context"
	"fmt"
	"math"
)

type bbNode struct {
	bounds []constraintRow
}

// branchAndBound searches for the best integral solution by depth-first
// branching on fractional variables of the LP relaxation. Supply- and
// demand-capped allocation problems are bounded, so the search always
// terminates; the node limit guards pathological instances.
func branchAndBound(ctx context.Context, p *Problem, opts Options) (Solution, error) {
	tol := opts.tolerance()
	limit := opts.nodeLimit()

	root, err := solveRelaxation(p, nil)
	if err != nil {
		return root, err
	}
	if root.Status != StatusOptimal {
		return root, nil
	}

	var best Solution
	haveIncumbent := false
	stack := []bbNode{{}}
	nodes := 0

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Solution{Status: StatusFailed}, err
		}
		nodes++
		if nodes > limit {
			return Solution{Status: StatusFailed}, fmt.Errorf("branch and bound node limit %d exceeded", limit)
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sol, err := solveRelaxation(p, node.bounds)
		if err != nil {
			return sol, err
		}
		if sol.Status != StatusOptimal {
			continue // infeasible branch, prune
		}
		if haveIncumbent && sol.Objective <= best.Objective+tol {
			continue // bound: relaxation cannot beat the incumbent
		}

		j := firstFractional(sol.X, tol)
		if j < 0 {
			roundInPlace(sol.X, tol)
			best = sol
			haveIncumbent = true
			continue
		}

		down := append(cloneBounds(node.bounds), constraintRow{
			coeffs: map[int]float64{j: 1},
			rhs:    math.Floor(sol.X[j]),
			sense:  LessEq,
		})
		up := append(cloneBounds(node.bounds), constraintRow{
			coeffs: map[int]float64{j: 1},
			rhs:    math.Ceil(sol.X[j]),
			sense:  GreaterEq,
		})
		stack = append(stack, bbNode{bounds: down}, bbNode{bounds: up})
	}

	if !haveIncumbent {
		// The relaxation was feasible but no integral point exists within
		// the constraint set (override floors can do this).
		return Solution{Status: StatusInfeasible}, nil
	}
	return best, nil
}

func firstFractional(x []float64, tol float64) int {
	for i, v := range x {
		if math.Abs(v-math.Round(v)) > tol {
			return i
		}
	}
	return -1
}

func roundInPlace(x []float64, tol float64) {
	for i, v := range x {
		if math.Abs(v-math.Round(v)) <= tol {
			x[i] = math.Round(v)
		}
	}
}

func cloneBounds(bounds []constraintRow) []constraintRow {
	out := make([]constraintRow, len(bounds), len(bounds)+1)
	copy(out, bounds)
	return out
}
