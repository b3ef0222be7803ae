// Package diet formulates the diet problem as a linear program and maps an
// engine's raw solution back into per-good quantities and attribute totals.
//
// A solve is two steps: Build turns an Input into a Model, SolveAndMap runs
// the Model through an lp.Engine and produces a Solution. Both steps are
// pure with respect to package state, so independent inputs may be solved
// concurrently.
package diet

// Good is a purchasable item with a unit cost.
type Good struct {
	Name string
	Cost float64
}

// YieldTable maps good -> attribute -> amount of that attribute contributed
// by one unit of the good.
type YieldTable map[string]map[string]float64

// Yield returns the yield of attribute for good. Missing entries are 0.
func (y YieldTable) Yield(good, attribute string) float64 {
	if y == nil {
		return 0
	}
	return y[good][attribute]
}

// Input is the full description of one diet problem. Goods and Attributes
// are ordered; the order fixes variable order, constraint emission order and
// the order of reported quantities and totals.
type Input struct {
	Goods      []Good
	Attributes []string
	Yields     YieldTable
	MinBounds  map[string]float64
	MaxBounds  map[string]float64
}

// BoundKind says which side of an attribute total a constraint limits.
type BoundKind int

const (
	BoundMin BoundKind = iota
	BoundMax
)

func (k BoundKind) String() string {
	if k == BoundMax {
		return "max"
	}
	return "min"
}

// Label returns the diagnostic constraint label for a bound on attribute.
func (k BoundKind) Label(attribute string) string {
	if k == BoundMax {
		return "Max_" + attribute
	}
	return "Min_" + attribute
}
