// Package lp holds an engine-independent description of a linear program:
// an ordered arena of variables, one linear objective and a list of labeled
// linear constraints. Engines implementing the Engine interface consume a
// Model and report a RawSolution.
package lp

import (
	"fmt"
	"math"
)

// Sense is the optimization direction of the objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Direction is the relation between a constraint's expression and its
// right-hand side.
type Direction int

const (
	GreaterEqual Direction = iota
	LessEqual
	Equal
)

func (d Direction) String() string {
	switch d {
	case GreaterEqual:
		return ">="
	case LessEqual:
		return "<="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// VarID addresses a variable inside the Model that created it.
type VarID int

// Variable is a continuous decision variable with inclusive bounds.
// Upper may be +Inf.
type Variable struct {
	Name  string
	Lower float64
	Upper float64
}

// Term is a single coefficient-variable product.
type Term struct {
	Var  VarID
	Coef float64
}

// Expr is a linear expression: the sum of its terms.
type Expr []Term

// Constraint is a linear relation over model variables. Label is an opaque
// diagnostic identifier.
type Constraint struct {
	Label string
	Expr  Expr
	Dir   Direction
	RHS   float64
}

// Model is a linear program. It owns no external resources and may be
// solved any number of times.
type Model struct {
	Name      string
	Sense     Sense
	Objective Expr

	variables   []Variable
	byName      map[string]VarID
	constraints []Constraint
}

// NewModel returns an empty model.
func NewModel(name string, sense Sense) *Model {
	return &Model{
		Name:   name,
		Sense:  sense,
		byName: make(map[string]VarID),
	}
}

// AddVariable appends a variable and returns its handle.
func (m *Model) AddVariable(name string, lower, upper float64) (VarID, error) {
	if name == "" {
		return 0, fmt.Errorf("variable name cannot be empty")
	}
	if _, exists := m.byName[name]; exists {
		return 0, fmt.Errorf("variable %q already defined", name)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return 0, fmt.Errorf("variable %q has invalid bounds [%v, %v]", name, lower, upper)
	}
	if math.IsInf(lower, 0) {
		return 0, fmt.Errorf("variable %q must have a finite lower bound", name)
	}
	id := VarID(len(m.variables))
	m.variables = append(m.variables, Variable{Name: name, Lower: lower, Upper: upper})
	m.byName[name] = id
	return id, nil
}

// AddConstraint appends a constraint after checking that every term refers
// to a variable of this model.
func (m *Model) AddConstraint(c Constraint) error {
	for _, term := range c.Expr {
		if int(term.Var) < 0 || int(term.Var) >= len(m.variables) {
			return fmt.Errorf("constraint %q references unknown variable %d", c.Label, term.Var)
		}
	}
	if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
		return fmt.Errorf("constraint %q has non-finite right-hand side", c.Label)
	}
	m.constraints = append(m.constraints, c)
	return nil
}

// Variables returns the variables in creation order.
func (m *Model) Variables() []Variable {
	return m.variables
}

// Variable returns the variable behind id.
func (m *Model) Variable(id VarID) Variable {
	return m.variables[id]
}

// VarByName looks up a variable handle by name.
func (m *Model) VarByName(name string) (VarID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// Constraints returns the constraints in emission order.
func (m *Model) Constraints() []Constraint {
	return m.constraints
}

// NumVariables returns the number of variables.
func (m *Model) NumVariables() int {
	return len(m.variables)
}

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

// Dense returns the coefficients of expr as a dense row over all model
// variables. Repeated terms for one variable are summed.
func (m *Model) Dense(expr Expr) []float64 {
	row := make([]float64, len(m.variables))
	for _, term := range expr {
		row[term.Var] += term.Coef
	}
	return row
}

// EvalExpr evaluates expr against values indexed by VarID.
func EvalExpr(expr Expr, values []float64) float64 {
	total := 0.0
	for _, term := range expr {
		if int(term.Var) < len(values) {
			total += term.Coef * values[term.Var]
		}
	}
	return total
}
