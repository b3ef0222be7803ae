// Package simplex adapts gonum's dense simplex implementation to the lp.Engine
// interface.
package simplex

import (
	"errors"
	"fmt"
	"math"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/lp"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/mathutil"
	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"
)

// EngineName identifies this engine in logs and reports.
const EngineName = "gonum-simplex"

// CodeError is the status code of solves that failed inside gonum.
const CodeError = "error"

// zeroTolerance is the slack allowed on the right-hand side of a row with no
// coefficients.
const zeroTolerance = 1e-9

// Engine solves models with gonum's simplex method. The zero value is ready
// to use.
type Engine struct {
	// Tolerance is forwarded to gonum; 0 selects gonum's default.
	Tolerance float64
}

// New returns an Engine using gonum's default tolerance.
func New() *Engine {
	return &Engine{}
}

// Name implements lp.Engine.
func (e *Engine) Name() string {
	return EngineName
}

type row struct {
	coefs []float64
	dir   lp.Direction
	rhs   float64
	label string
}

// Solve implements lp.Engine. Infeasible and unbounded models are reported
// through RawSolution.Code with a nil error; any other gonum failure is
// returned as an error alongside a RawSolution carrying CodeError.
func (e *Engine) Solve(model *lp.Model) (raw *lp.RawSolution, err error) {
	if model == nil {
		return nil, fmt.Errorf("model cannot be nil")
	}

	defer func() {
		if r := recover(); r != nil {
			raw = &lp.RawSolution{Code: CodeError}
			err = fmt.Errorf("simplex panicked: %v", r)
		}
	}()

	vars := model.Variables()
	n := len(vars)

	cost := model.Dense(model.Objective)
	if model.Sense == lp.Maximize {
		for j := range cost {
			cost[j] = -cost[j]
		}
	}

	// Shift every variable by its lower bound so the standard form only sees
	// y >= 0, and turn finite upper bounds into rows.
	rows := make([]row, 0, model.NumConstraints()+n)
	for _, c := range model.Constraints() {
		coefs := model.Dense(c.Expr)
		rhs := c.RHS
		for j, v := range vars {
			rhs -= coefs[j] * v.Lower
		}
		rows = append(rows, row{coefs: coefs, dir: c.Dir, rhs: rhs, label: c.Label})
	}
	for j, v := range vars {
		if math.IsInf(v.Upper, 1) {
			continue
		}
		coefs := make([]float64, n)
		coefs[j] = 1
		rows = append(rows, row{coefs: coefs, dir: lp.LessEqual, rhs: v.Upper - v.Lower, label: "ub_" + v.Name})
	}

	// Rows without structural coefficients are either trivially satisfied or
	// make the model infeasible.
	kept := rows[:0]
	for _, r := range rows {
		if !allZero(r.coefs) {
			kept = append(kept, r)
			continue
		}
		if !trivialRowHolds(r) {
			return &lp.RawSolution{Code: lp.CodeInfeasible}, nil
		}
	}
	rows = kept

	// Columns that appear in no row cannot be constrained: they stay at their
	// lower bound unless they improve the objective without limit.
	var cols []int
	for j := 0; j < n; j++ {
		inRow := false
		for _, r := range rows {
			if r.coefs[j] != 0 {
				inRow = true
				break
			}
		}
		if inRow {
			cols = append(cols, j)
			continue
		}
		if cost[j] < 0 {
			return &lp.RawSolution{Code: lp.CodeUnbounded}, nil
		}
	}

	shifted := make([]float64, n)
	if len(rows) > 0 {
		y, code, solveErr := e.solveStandard(cost, rows, cols)
		if solveErr != nil {
			return &lp.RawSolution{Code: code}, solveErr
		}
		if code != lp.CodeOptimal {
			return &lp.RawSolution{Code: code}, nil
		}
		for k, j := range cols {
			shifted[j] = y[k]
		}
	}

	values := make(map[string]float64, n)
	x := make([]float64, n)
	for j, v := range vars {
		y := shifted[j]
		if mathutil.IsNegligible(y) {
			y = 0
		}
		x[j] = y + v.Lower
		values[v.Name] = x[j]
	}

	return &lp.RawSolution{
		Code:      lp.CodeOptimal,
		Objective: lp.EvalExpr(model.Objective, x),
		Values:    values,
	}, nil
}

// solveStandard assembles min c^T z s.t. A z = b, z >= 0 with one slack
// column per inequality row and runs gonum's simplex on it. It returns the
// values of the structural columns listed in cols.
func (e *Engine) solveStandard(cost []float64, rows []row, cols []int) ([]float64, string, error) {
	slacks := 0
	for _, r := range rows {
		if r.dir != lp.Equal {
			slacks++
		}
	}
	m := len(rows)
	width := len(cols) + slacks
	if m > width {
		return nil, CodeError, fmt.Errorf("model has %d rows but only %d columns", m, width)
	}

	c := make([]float64, width)
	for k, j := range cols {
		c[k] = cost[j]
	}

	data := make([]float64, m*width)
	b := make([]float64, m)
	slack := len(cols)
	for i, r := range rows {
		line := data[i*width : (i+1)*width]
		for k, j := range cols {
			line[k] = r.coefs[j]
		}
		switch r.dir {
		case lp.GreaterEqual:
			line[slack] = -1
			slack++
		case lp.LessEqual:
			line[slack] = 1
			slack++
		case lp.Equal:
		default:
			return nil, CodeError, fmt.Errorf("constraint %q has unknown direction %v", r.label, r.dir)
		}
		b[i] = r.rhs
		if b[i] < 0 {
			b[i] = -b[i]
			for k := range line {
				line[k] = -line[k]
			}
		}
	}

	_, z, err := gonumlp.Simplex(c, mat.NewDense(m, width, data), b, e.Tolerance, nil)
	switch {
	case err == nil:
		return z[:len(cols)], lp.CodeOptimal, nil
	case errors.Is(err, gonumlp.ErrInfeasible):
		return nil, lp.CodeInfeasible, nil
	case errors.Is(err, gonumlp.ErrUnbounded):
		return nil, lp.CodeUnbounded, nil
	default:
		return nil, CodeError, fmt.Errorf("simplex failed: %w", err)
	}
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

func trivialRowHolds(r row) bool {
	switch r.dir {
	case lp.GreaterEqual:
		return r.rhs <= zeroTolerance
	case lp.LessEqual:
		return r.rhs >= -zeroTolerance
	default:
		return mathutil.WithinTolerance(r.rhs, 0, zeroTolerance)
	}
}
