// Package solver wraps a simplex LP solver behind a small general-form
// problem builder: non-negative variables, a maximization objective, and
// linear <= / >= constraint rows. An optional branch-and-bound layer
// produces integral solutions from the LP relaxation.
package solver

// Sense is the direction of a linear constraint row.
type Sense int

const (
	LessEq Sense = iota
	GreaterEq
)

// Status classifies the outcome of a solve.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

type constraintRow struct {
	coeffs map[int]float64
	rhs    float64
	sense  Sense
}

// Problem is a linear program over non-negative variables. Problems are
// single-use and not safe for concurrent mutation; concurrent scenario
// runs each build their own.
type Problem struct {
	objective []float64
	rows      []constraintRow
}

// NewProblem creates an empty maximization problem.
func NewProblem() *Problem {
	return &Problem{}
}

// AddVariable adds a non-negative decision variable with the given
// objective coefficient and returns its index.
func (p *Problem) AddVariable(objCoeff float64) int {
	p.objective = append(p.objective, objCoeff)
	return len(p.objective) - 1
}

// NumVariables returns the number of decision variables added so far.
func (p *Problem) NumVariables() int {
	return len(p.objective)
}

// AddLessEq adds the constraint sum(coeffs[i] * x_i) <= rhs.
func (p *Problem) AddLessEq(coeffs map[int]float64, rhs float64) {
	p.rows = append(p.rows, constraintRow{coeffs: coeffs, rhs: rhs, sense: LessEq})
}

// AddGreaterEq adds the constraint sum(coeffs[i] * x_i) >= rhs.
func (p *Problem) AddGreaterEq(coeffs map[int]float64, rhs float64) {
	p.rows = append(p.rows, constraintRow{coeffs: coeffs, rhs: rhs, sense: GreaterEq})
}

// Solution is the result of a solve. X is only meaningful when Status is
// StatusOptimal.
type Solution struct {
	Status    Status
	Objective float64
	X         []float64
}

// Options controls a solve.
type Options struct {
	// Integral forces whole-unit values on every variable via branch and
	// bound over the LP relaxation. Trades solve time for literal units.
	Integral bool
	// Tolerance is the integrality tolerance for branch and bound.
	// Zero means the 1e-6 default.
	Tolerance float64
	// NodeLimit caps branch-and-bound nodes. Zero means the default of
	// 10000; exceeding the limit is a solver failure, not a best effort.
	NodeLimit int
}

const (
	defaultTolerance = 1e-6
	defaultNodeLimit = 10000

	// pivotTol is handed to the simplex for numerical pivoting decisions.
	pivotTol = 1e-10
)

func (o Options) tolerance() float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return defaultTolerance
}

func (o Options) nodeLimit() int {
	if o.NodeLimit > 0 {
		return o.NodeLimit
	}
	return defaultNodeLimit
}
