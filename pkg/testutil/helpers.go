// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"strings"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/planner"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindScenario(results []planner.Result, name string) *planner.Result {
	for i := range results {
		if results[i].Scenario == name {
			return &results[i]
		}
	}
	return nil
}

// GenerateProblem returns a problem file with the given number of goods and
// attributes. Every good yields every attribute, so each minimum is reachable
// and the problem is feasible.
func GenerateProblem(goods, attributes int) string {
	var b strings.Builder
	b.WriteString("logging:\n  level: error\ngoods:\n")
	for g := 0; g < goods; g++ {
		fmt.Fprintf(&b, "  - name: good%d\n    cost: %.2f\n    yields:\n", g, 1+float64(g%7)*0.35)
		for a := 0; a < attributes; a++ {
			fmt.Fprintf(&b, "      attr%d: %d\n", a, 1+(g*3+a*5)%11)
		}
	}
	b.WriteString("attributes:\n")
	for a := 0; a < attributes; a++ {
		fmt.Fprintf(&b, "  - name: attr%d\n    min: %d\n    max: %d\n", a, 20+a, 400+a)
	}
	return b.String()
}
