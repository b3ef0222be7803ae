package lp

import "strings"

// Status is the normalized outcome of a solve.
type Status int

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	default:
		return "Not Solved"
	}
}

// Engine status codes produced by engines in this module.
const (
	CodeOptimal    = "optimal"
	CodeInfeasible = "infeasible"
	CodeUnbounded  = "unbounded"
)

// RawSolution is what an engine reports for one solve. Code is the engine's
// own status vocabulary; Values and Objective are meaningful only when the
// code normalizes to Optimal.
type RawSolution struct {
	Code      string
	Objective float64
	Values    map[string]float64
}

// Value returns the reported value of the named variable. A variable the
// engine did not report reads as 0.
func (r *RawSolution) Value(name string) float64 {
	if r == nil || r.Values == nil {
		return 0
	}
	return r.Values[name]
}

// Engine solves linear programs. Implementations must honor variable lower
// bounds and report infeasible and unbounded outcomes distinctly.
type Engine interface {
	Name() string
	Solve(model *Model) (*RawSolution, error)
}

var statusCodes = map[string]Status{
	"optimal":          Optimal,
	"mpsolver_optimal": Optimal,
	"koptimal":         Optimal,
	"solved":           Optimal,

	"infeasible":          Infeasible,
	"mpsolver_infeasible": Infeasible,
	"kinfeasible":         Infeasible,
	"primal_infeasible":   Infeasible,

	"unbounded":          Unbounded,
	"mpsolver_unbounded": Unbounded,
	"kunbounded":         Unbounded,
	"dual_infeasible":    Unbounded,
}

// NormalizeStatus maps an engine status code onto Status. Unrecognized codes
// map to NotSolved.
func NormalizeStatus(code string) Status {
	status, ok := statusCodes[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return NotSolved
	}
	return status
}
