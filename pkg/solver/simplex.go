package solver

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Solve runs the problem to completion. Continuous problems are a single
// simplex call; integral problems run branch and bound. Cancellation and
// deadlines on ctx are honored between branch-and-bound nodes; a single
// simplex call is not interruptible.
func Solve(ctx context.Context, p *Problem, opts Options) (Solution, error) {
	if p.NumVariables() == 0 {
		// Nothing to decide; the empty allocation is trivially optimal.
		return Solution{Status: StatusOptimal}, nil
	}
	if err := ctx.Err(); err != nil {
		return Solution{Status: StatusFailed}, err
	}
	if opts.Integral {
		return branchAndBound(ctx, p, opts)
	}
	return solveRelaxation(p, nil)
}

// solveRelaxation solves the LP relaxation of p with extra constraint
// rows appended (used for branch-and-bound variable bounds).
func solveRelaxation(p *Problem, extra []constraintRow) (Solution, error) {
	n := p.NumVariables()
	rows := make([]constraintRow, 0, len(p.rows)+len(extra))
	rows = append(rows, p.rows...)
	rows = append(rows, extra...)

	// Standard form: minimize c.z subject to A.z = b, z >= 0, with one
	// slack (<=) or surplus (>=) variable per row. Rows with negative rhs
	// are negated first so that b >= 0 throughout.
	m := len(rows)
	cols := n + m
	c := make([]float64, cols)
	for i, obj := range p.objective {
		c[i] = -obj // maximize -> minimize
	}

	a := mat.NewDense(m, cols, nil)
	b := make([]float64, m)
	for i, row := range rows {
		sign := 1.0
		sense := row.sense
		if row.rhs < 0 {
			sign = -1.0
			if sense == LessEq {
				sense = GreaterEq
			} else {
				sense = LessEq
			}
		}
		for j, coeff := range row.coeffs {
			a.Set(i, j, sign*coeff)
		}
		b[i] = sign * row.rhs
		if sense == LessEq {
			a.Set(i, n+i, 1)
		} else {
			a.Set(i, n+i, -1)
		}
	}

	optF, optX, err := lp.Simplex(c, a, b, pivotTol, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return Solution{Status: StatusInfeasible}, nil
		case errors.Is(err, lp.ErrUnbounded):
			return Solution{Status: StatusUnbounded}, nil
		default:
			return Solution{Status: StatusFailed}, fmt.Errorf("simplex: %w", err)
		}
	}

	x := make([]float64, n)
	copy(x, optX[:n])
	return Solution{Status: StatusOptimal, Objective: -optF, X: x}, nil
}
