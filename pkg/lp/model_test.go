package lp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVariable(t *testing.T) {
	m := NewModel("test", Minimize)

	x, err := m.AddVariable("x", 0, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, VarID(0), x)

	y, err := m.AddVariable("y", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, VarID(1), y)

	_, err = m.AddVariable("x", 0, 1)
	assert.Error(t, err, "duplicate names are rejected")

	_, err = m.AddVariable("", 0, 1)
	assert.Error(t, err)

	_, err = m.AddVariable("bad", 2, 1)
	assert.Error(t, err)

	_, err = m.AddVariable("free", math.Inf(-1), 1)
	assert.Error(t, err)

	id, ok := m.VarByName("y")
	require.True(t, ok)
	assert.Equal(t, y, id)
	assert.Equal(t, Variable{Name: "y", Lower: 1, Upper: 5}, m.Variable(id))
	assert.Equal(t, 2, m.NumVariables())
}

func TestAddConstraint(t *testing.T) {
	m := NewModel("test", Minimize)
	x, err := m.AddVariable("x", 0, math.Inf(1))
	require.NoError(t, err)

	require.NoError(t, m.AddConstraint(Constraint{Label: "ok", Expr: Expr{{Var: x, Coef: 1}}, Dir: GreaterEqual, RHS: 1}))
	assert.Error(t, m.AddConstraint(Constraint{Label: "unknown", Expr: Expr{{Var: 7, Coef: 1}}, Dir: LessEqual, RHS: 1}))
	assert.Error(t, m.AddConstraint(Constraint{Label: "nan", Expr: Expr{{Var: x, Coef: 1}}, Dir: LessEqual, RHS: math.NaN()}))

	require.Equal(t, 1, m.NumConstraints())
	assert.Equal(t, "ok", m.Constraints()[0].Label)
}

func TestDenseAndEvalExpr(t *testing.T) {
	m := NewModel("test", Minimize)
	x, _ := m.AddVariable("x", 0, math.Inf(1))
	y, _ := m.AddVariable("y", 0, math.Inf(1))

	expr := Expr{{Var: x, Coef: 2}, {Var: y, Coef: 3}, {Var: x, Coef: 1}}
	assert.Equal(t, []float64{3, 3}, m.Dense(expr))
	assert.InDelta(t, 3*2+3*4, EvalExpr(expr, []float64{2, 4}), 1e-12)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, ">=", GreaterEqual.String())
	assert.Equal(t, "<=", LessEqual.String())
	assert.Equal(t, "=", Equal.String())
	assert.Equal(t, "maximize", Maximize.String())
	assert.Equal(t, "minimize", Minimize.String())
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		code string
		want Status
	}{
		{code: "optimal", want: Optimal},
		{code: "Optimal", want: Optimal},
		{code: "MPSOLVER_OPTIMAL", want: Optimal},
		{code: "kOptimal", want: Optimal},
		{code: " infeasible ", want: Infeasible},
		{code: "MPSOLVER_INFEASIBLE", want: Infeasible},
		{code: "unbounded", want: Unbounded},
		{code: "dual_infeasible", want: Unbounded},
		{code: "error", want: NotSolved},
		{code: "", want: NotSolved},
		{code: "kTimeLimit", want: NotSolved},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.code))
		})
	}
}

func TestRawSolutionValue(t *testing.T) {
	raw := &RawSolution{Code: CodeOptimal, Values: map[string]float64{"x": 2.5}}
	assert.Equal(t, 2.5, raw.Value("x"))
	assert.Equal(t, 0.0, raw.Value("missing"))

	var nilRaw *RawSolution
	assert.Equal(t, 0.0, nilRaw.Value("x"))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Optimal", Optimal.String())
	assert.Equal(t, "Infeasible", Infeasible.String())
	assert.Equal(t, "Unbounded", Unbounded.String())
	assert.Equal(t, "Not Solved", NotSolved.String())
}
