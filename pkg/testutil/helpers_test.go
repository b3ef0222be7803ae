package testutil

import (
	"strings"
	"testing"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/config"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/diet"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/planner"
)

func TestFindScenario(t *testing.T) {
	results := []planner.Result{
		{Scenario: "Scenario A", Solution: diet.Solution{Cost: 1000}},
		{Scenario: "Scenario B", Solution: diet.Solution{Cost: 2000}},
		{Scenario: "Another Scenario", Solution: diet.Solution{Cost: 3000}},
	}

	tests := []struct {
		name         string
		searchName   string
		expectFound  bool
		expectedCost float64
	}{
		{name: "Find existing scenario A", searchName: "Scenario A", expectFound: true, expectedCost: 1000},
		{name: "Find existing scenario B", searchName: "Scenario B", expectFound: true, expectedCost: 2000},
		{name: "Find last scenario", searchName: "Another Scenario", expectFound: true, expectedCost: 3000},
		{name: "Scenario not found", searchName: "Missing", expectFound: false},
		{name: "Case sensitive", searchName: "scenario a", expectFound: false},
		{name: "Empty name", searchName: "", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindScenario(results, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("expected nil, got %+v", result)
				}
				return
			}
			if result == nil {
				t.Fatalf("expected to find %q", tt.searchName)
			}
			if result.Solution.Cost != tt.expectedCost {
				t.Errorf("cost = %v, want %v", result.Solution.Cost, tt.expectedCost)
			}
		})
	}
}

func TestFindScenarioEmptyResults(t *testing.T) {
	if result := FindScenario(nil, "Scenario A"); result != nil {
		t.Errorf("expected nil for empty results, got %+v", result)
	}
}

func TestGenerateProblem(t *testing.T) {
	conf, err := config.LoadConfigurationFromReader(strings.NewReader(GenerateProblem(5, 3)))
	if err != nil {
		t.Fatalf("generated problem does not load: %v", err)
	}
	if len(conf.Goods) != 5 || len(conf.Attributes) != 3 {
		t.Fatalf("expected 5 goods and 3 attributes, got %d and %d", len(conf.Goods), len(conf.Attributes))
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if _, err := diet.Build(conf.Input(conf.ActiveScenarios()[0])); err != nil {
		t.Errorf("generated problem does not build: %v", err)
	}
}
