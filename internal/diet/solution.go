package diet

import (
	"fmt"
	"math"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/lp"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/mathutil"
)

// bindingTolerance is the relative slack under which a constraint counts as
// binding.
const bindingTolerance = 1e-6

// Quantity is the solved amount of one good.
type Quantity struct {
	Good   string
	Amount float64
}

// Total is the realized total of one attribute.
type Total struct {
	Attribute string
	Amount    float64
}

// ConstraintReport compares an emitted constraint with its realized total.
type ConstraintReport struct {
	Label     string
	Attribute string
	Bound     BoundKind
	Limit     float64
	Realized  float64
	Binding   bool
}

// Solution is the domain result of one solve. Cost, Quantities, Totals and
// Constraints are populated only when Status is lp.Optimal; check Status (or
// HasValues) before reading them.
type Solution struct {
	Status      lp.Status
	Engine      string
	EngineCode  string
	Cause       error
	Cost        float64
	Quantities  []Quantity
	Totals      []Total
	Constraints []ConstraintReport
}

// HasValues reports whether the numeric fields are meaningful.
func (s Solution) HasValues() bool {
	return s.Status == lp.Optimal
}

// Quantity returns the solved amount of good.
func (s Solution) Quantity(good string) (float64, bool) {
	if !s.HasValues() {
		return 0, false
	}
	for _, q := range s.Quantities {
		if q.Good == good {
			return q.Amount, true
		}
	}
	return 0, false
}

// Total returns the realized total of attribute.
func (s Solution) Total(attribute string) (float64, bool) {
	if !s.HasValues() {
		return 0, false
	}
	for _, t := range s.Totals {
		if t.Attribute == attribute {
			return t.Amount, true
		}
	}
	return 0, false
}

// OptimalCost returns the objective value when the solve was optimal.
func (s Solution) OptimalCost() (float64, bool) {
	if !s.HasValues() {
		return 0, false
	}
	return s.Cost, true
}

// SolveAndMap runs m through engine exactly once and maps the outcome into a
// Solution. Engine failures and unrecognized status codes become NotSolved
// with the cause preserved; they are never reported as Optimal.
func SolveAndMap(engine lp.Engine, m *Model) Solution {
	if engine == nil {
		return Solution{Status: lp.NotSolved, Cause: fmt.Errorf("no engine configured")}
	}
	sol := Solution{Status: lp.NotSolved, Engine: engine.Name()}
	if m == nil {
		sol.Cause = fmt.Errorf("model cannot be nil")
		return sol
	}

	raw, err := engine.Solve(m.program)
	if raw != nil {
		sol.EngineCode = raw.Code
	}
	if err != nil {
		sol.Cause = fmt.Errorf("engine %s failed: %w", engine.Name(), err)
		return sol
	}
	if raw == nil {
		sol.Cause = fmt.Errorf("engine %s returned no solution", engine.Name())
		return sol
	}

	sol.Status = lp.NormalizeStatus(raw.Code)
	if sol.Status == lp.NotSolved {
		sol.Cause = fmt.Errorf("engine %s reported unrecognized status %q", engine.Name(), raw.Code)
		return sol
	}
	if sol.Status != lp.Optimal {
		return sol
	}

	amounts := make([]float64, len(m.goods))
	sol.Quantities = make([]Quantity, len(m.goods))
	for g, good := range m.goods {
		amount := raw.Value(m.program.Variable(m.vars[g]).Name)
		if math.IsNaN(amount) {
			amount = 0
		}
		amounts[g] = amount
		sol.Quantities[g] = Quantity{Good: good.Name, Amount: amount}
		sol.Cost += good.Cost * amount
	}

	totals := make([]float64, len(m.attributes))
	sol.Totals = make([]Total, len(m.attributes))
	for a, attribute := range m.attributes {
		for g := range m.goods {
			totals[a] += m.yields[a][g] * amounts[g]
		}
		sol.Totals[a] = Total{Attribute: attribute, Amount: totals[a]}
	}

	index := make(map[string]int, len(m.attributes))
	for a, attribute := range m.attributes {
		index[attribute] = a
	}
	sol.Constraints = make([]ConstraintReport, len(m.constraints))
	for i, c := range m.constraints {
		realized := totals[index[c.Attribute]]
		sol.Constraints[i] = ConstraintReport{
			Label:     c.Label,
			Attribute: c.Attribute,
			Bound:     c.Bound,
			Limit:     c.Limit,
			Realized:  realized,
			Binding:   mathutil.WithinRelative(realized, c.Limit, bindingTolerance),
		}
	}

	return sol
}

// Solve builds in and solves it with engine. Build errors are returned
// before the engine is invoked; solve outcomes are reported in the
// Solution's Status.
func Solve(engine lp.Engine, in Input) (Solution, error) {
	m, err := Build(in)
	if err != nil {
		return Solution{}, err
	}
	return SolveAndMap(engine, m), nil
}
