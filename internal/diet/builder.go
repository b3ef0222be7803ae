package diet

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/lp"
)

// ModelName is the name given to every built linear program.
const ModelName = "Diet_Optimization"

// VariablePrefix prefixes the name of each good's decision variable.
const VariablePrefix = "Food_"

// ConstraintInfo describes one emitted constraint. Label is for diagnostics
// only; Attribute and Bound carry its meaning.
type ConstraintInfo struct {
	Label     string
	Attribute string
	Bound     BoundKind
	Limit     float64
	Index     int
}

// Model is a built diet problem: the abstract linear program plus the
// domain data needed to map a raw solution back.
type Model struct {
	program     *lp.Model
	goods       []Good
	attributes  []string
	vars        []lp.VarID
	byGood      map[string]int
	yields      [][]float64 // [attribute][good]
	constraints []ConstraintInfo
}

// LP returns the underlying linear program.
func (m *Model) LP() *lp.Model {
	return m.program
}

// Goods returns the goods in variable order.
func (m *Model) Goods() []Good {
	return m.goods
}

// Attributes returns the attributes in caller order.
func (m *Model) Attributes() []string {
	return m.attributes
}

// Constraints returns the emitted constraints in emission order.
func (m *Model) Constraints() []ConstraintInfo {
	return m.constraints
}

// VarOf returns the decision variable for good.
func (m *Model) VarOf(good string) (lp.VarID, bool) {
	i, ok := m.byGood[good]
	if !ok {
		return 0, false
	}
	return m.vars[i], true
}

// Build validates in and formulates it as a minimization over one
// non-negative variable per good. Minimum constraints are emitted for every
// attribute in order, followed by maximum constraints in the same order.
func Build(in Input) (*Model, error) {
	if err := validateIdentifiers(in); err != nil {
		return nil, err
	}
	for _, good := range in.Goods {
		if math.IsNaN(good.Cost) || math.IsInf(good.Cost, 0) || good.Cost < 0 {
			return nil, &InvalidCostError{Good: good.Name, Cost: good.Cost}
		}
	}
	if err := validateBounds(in); err != nil {
		return nil, err
	}

	m := &Model{
		program:    lp.NewModel(ModelName, lp.Minimize),
		goods:      slices.Clone(in.Goods),
		attributes: slices.Clone(in.Attributes),
		vars:       make([]lp.VarID, len(in.Goods)),
		byGood:     make(map[string]int, len(in.Goods)),
		yields:     make([][]float64, len(in.Attributes)),
	}

	for a, attribute := range in.Attributes {
		m.yields[a] = make([]float64, len(in.Goods))
		for g, good := range in.Goods {
			y := in.Yields.Yield(good.Name, attribute)
			if math.IsNaN(y) || math.IsInf(y, 0) || y < 0 {
				return nil, &InvalidYieldError{Good: good.Name, Attribute: attribute, Yield: y}
			}
			m.yields[a][g] = y
		}
	}

	objective := make(lp.Expr, 0, len(in.Goods))
	for g, good := range in.Goods {
		id, err := m.program.AddVariable(VariablePrefix+good.Name, 0, math.Inf(1))
		if err != nil {
			return nil, &InvalidInputError{Reason: err.Error()}
		}
		m.vars[g] = id
		m.byGood[good.Name] = g
		objective = append(objective, lp.Term{Var: id, Coef: good.Cost})
	}
	m.program.Objective = objective

	for _, kind := range []BoundKind{BoundMin, BoundMax} {
		bounds := in.MinBounds
		dir := lp.GreaterEqual
		if kind == BoundMax {
			bounds = in.MaxBounds
			dir = lp.LessEqual
		}
		for a, attribute := range in.Attributes {
			limit, ok := bounds[attribute]
			if !ok {
				continue
			}
			info := ConstraintInfo{
				Label:     kind.Label(attribute),
				Attribute: attribute,
				Bound:     kind,
				Limit:     limit,
				Index:     len(m.constraints),
			}
			err := m.program.AddConstraint(lp.Constraint{
				Label: info.Label,
				Expr:  m.attributeExpr(a),
				Dir:   dir,
				RHS:   limit,
			})
			if err != nil {
				return nil, &InvalidBoundError{Attribute: attribute, Reason: err.Error()}
			}
			m.constraints = append(m.constraints, info)
		}
	}

	return m, nil
}

func (m *Model) attributeExpr(a int) lp.Expr {
	expr := make(lp.Expr, len(m.goods))
	for g := range m.goods {
		expr[g] = lp.Term{Var: m.vars[g], Coef: m.yields[a][g]}
	}
	return expr
}

func validateIdentifiers(in Input) error {
	seen := make(map[string]struct{}, len(in.Goods))
	for i, good := range in.Goods {
		if good.Name == "" {
			return &InvalidInputError{Reason: fmt.Sprintf("good at position %d has an empty name", i)}
		}
		if _, dup := seen[good.Name]; dup {
			return &InvalidInputError{Reason: fmt.Sprintf("good %q is listed more than once", good.Name)}
		}
		seen[good.Name] = struct{}{}
	}

	seen = make(map[string]struct{}, len(in.Attributes))
	for i, attribute := range in.Attributes {
		if attribute == "" {
			return &InvalidInputError{Reason: fmt.Sprintf("attribute at position %d has an empty name", i)}
		}
		if _, dup := seen[attribute]; dup {
			return &InvalidInputError{Reason: fmt.Sprintf("attribute %q is listed more than once", attribute)}
		}
		seen[attribute] = struct{}{}
	}
	return nil
}

func validateBounds(in Input) error {
	declared := make(map[string]struct{}, len(in.Attributes))
	for _, attribute := range in.Attributes {
		declared[attribute] = struct{}{}
	}

	check := func(kind BoundKind, bounds map[string]float64) error {
		for _, attribute := range slices.Sorted(maps.Keys(bounds)) {
			if _, ok := declared[attribute]; !ok {
				return &InvalidBoundError{Attribute: attribute, Reason: fmt.Sprintf("%s bound on an undeclared attribute", kind)}
			}
			if v := bounds[attribute]; math.IsNaN(v) || math.IsInf(v, 0) {
				return &InvalidBoundError{Attribute: attribute, Reason: fmt.Sprintf("%s bound %v is not finite", kind, v)}
			}
		}
		return nil
	}
	if err := check(BoundMin, in.MinBounds); err != nil {
		return err
	}
	if err := check(BoundMax, in.MaxBounds); err != nil {
		return err
	}

	for _, attribute := range in.Attributes {
		lo, hasMin := in.MinBounds[attribute]
		hi, hasMax := in.MaxBounds[attribute]
		if hasMin && hasMax && lo > hi {
			return &InvalidBoundError{Attribute: attribute, Reason: fmt.Sprintf("minimum %v exceeds maximum %v", lo, hi)}
		}
	}
	return nil
}
