package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testProblem = `
goods:
  - name: chicken
    cost: 2.89
    yields: {protein: 27, fat: 14}
  - name: beans
    cost: 0.95
    yields: {Protein: 15, fat: 1, carbs: 40, sodium: 2}
  - name: water
    cost: 0
attributes:
  - name: Protein
    min: 70
  - name: fat
    min: 20
    max: 70
  - name: carbs
scenarios:
  - name: baseline
    active: true
  - name: lean
    active: true
    bounds:
      FAT: {max: 30}
      carbs: {min: 10}
    clearMin: [fat]
    excludeGoods: [chicken, tofu]
  - name: disabled
    active: false
`

func writeProblem(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Valid problem file",
			configPath: writeProblem(t, testProblem),
			wantError:  false,
		},
		{
			name:       "Missing goods",
			configPath: writeProblem(t, "attributes:\n  - name: protein\n    min: 1\n"),
			wantError:  true,
		},
		{
			name:       "Good without a name",
			configPath: writeProblem(t, "goods:\n  - cost: 1\n"),
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testProblem))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if len(conf.Goods) != 3 {
		t.Fatalf("expected 3 goods, got %d", len(conf.Goods))
	}
	if conf.Goods[0].Name != "chicken" || conf.Goods[0].Cost != 2.89 {
		t.Errorf("unexpected first good %+v", conf.Goods[0])
	}
	if len(conf.Attributes) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(conf.Attributes))
	}
	fat := conf.Attributes[1]
	if fat.Min == nil || *fat.Min != 20 || fat.Max == nil || *fat.Max != 70 {
		t.Errorf("unexpected fat bounds %+v", fat)
	}
	if conf.Attributes[2].Min != nil || conf.Attributes[2].Max != nil {
		t.Errorf("expected carbs to be unbounded")
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("   ")); err == nil {
		t.Errorf("expected error for empty document")
	}
	if _, err := LoadConfigurationFromReader(strings.NewReader("goods: [")); err == nil {
		t.Errorf("expected error for malformed document")
	}
}

func TestLoadConfigurationExample(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", "config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if len(conf.Goods) != 5 {
		t.Errorf("expected 5 goods, got %d", len(conf.Goods))
	}
	if len(conf.ActiveScenarios()) != 3 {
		t.Errorf("expected 3 active scenarios, got %d", len(conf.ActiveScenarios()))
	}
	if conf.Output.Format != "pretty" {
		t.Errorf("expected pretty output, got %q", conf.Output.Format)
	}
}

func TestActiveScenarios(t *testing.T) {
	conf := &Configuration{}
	active := conf.ActiveScenarios()
	if len(active) != 1 || active[0].Name != DefaultScenarioName || !active[0].Active {
		t.Fatalf("expected implicit default scenario, got %+v", active)
	}

	conf.Scenarios = []Scenario{{Name: "a", Active: true}, {Name: "b"}, {Name: "c", Active: true}}
	active = conf.ActiveScenarios()
	if len(active) != 2 || active[0].Name != "a" || active[1].Name != "c" {
		t.Fatalf("unexpected active scenarios %+v", active)
	}
}

func TestInputBaseline(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testProblem))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	in := conf.Input(conf.Scenarios[0])

	if len(in.Goods) != 3 {
		t.Fatalf("expected 3 goods, got %d", len(in.Goods))
	}
	if got := strings.Join(in.Attributes, ","); got != "Protein,fat,carbs" {
		t.Errorf("unexpected attribute order %s", got)
	}
	if got := in.Yields.Yield("chicken", "Protein"); got != 27 {
		t.Errorf("expected case-insensitive protein yield 27, got %v", got)
	}
	if got := in.Yields.Yield("beans", "carbs"); got != 40 {
		t.Errorf("expected carbs yield 40, got %v", got)
	}
	if got := in.Yields.Yield("beans", "sodium"); got != 0 {
		t.Errorf("expected undeclared attribute to be dropped, got %v", got)
	}
	if got := in.Yields.Yield("water", "fat"); got != 0 {
		t.Errorf("expected missing yield to read 0, got %v", got)
	}
	if in.MinBounds["Protein"] != 70 || in.MinBounds["fat"] != 20 || in.MaxBounds["fat"] != 70 {
		t.Errorf("unexpected bounds min=%v max=%v", in.MinBounds, in.MaxBounds)
	}
	if _, ok := in.MinBounds["carbs"]; ok {
		t.Errorf("carbs must not carry a minimum")
	}
}

func TestInputScenarioOverrides(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testProblem))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	in := conf.Input(conf.Scenarios[1])

	if len(in.Goods) != 2 || in.Goods[0].Name != "beans" {
		t.Fatalf("expected chicken to be excluded, got %+v", in.Goods)
	}
	if _, ok := in.Yields["chicken"]; ok {
		t.Errorf("excluded good must not carry yields")
	}
	if in.MaxBounds["fat"] != 30 {
		t.Errorf("expected fat maximum override 30, got %v", in.MaxBounds["fat"])
	}
	if _, ok := in.MinBounds["fat"]; ok {
		t.Errorf("expected fat minimum to be cleared")
	}
	if in.MinBounds["carbs"] != 10 {
		t.Errorf("expected carbs minimum 10, got %v", in.MinBounds["carbs"])
	}
	if in.MinBounds["Protein"] != 70 {
		t.Errorf("expected protein minimum to survive, got %v", in.MinBounds["Protein"])
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testProblem))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	warnings := conf.ValidateConfiguration()
	joined := strings.Join(warnings, "\n")

	expected := []string{
		"Attribute 'carbs' has no bounds",
		"Good 'water' has no yields",
		"Good 'beans' yields undeclared attribute 'sodium'",
		"Scenario 'lean' excludes unknown good 'tofu'",
	}
	for _, want := range expected {
		if !strings.Contains(joined, want) {
			t.Errorf("expected warning containing %q, got:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "disabled") {
		t.Errorf("inactive scenarios must not produce warnings:\n%s", joined)
	}
}

func TestValidateConfigurationNoActiveScenarios(t *testing.T) {
	conf := &Configuration{
		Goods:     []GoodConfig{{Name: "rice", Cost: 1, Yields: map[string]float64{"carbs": 30}}},
		Scenarios: []Scenario{{Name: "off"}},
	}
	warnings := conf.ValidateConfiguration()
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "No active scenarios") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected no-active-scenarios warning, got %v", warnings)
	}
}

func TestValidate(t *testing.T) {
	conf := &Configuration{}
	if err := conf.Validate(); err == nil {
		t.Errorf("expected error for configuration without goods")
	}

	conf.Goods = []GoodConfig{{Name: "rice", Cost: 1}}
	if err := conf.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	conf.Attributes = []AttributeConfig{{}}
	if err := conf.Validate(); err == nil {
		t.Errorf("expected error for attribute without a name")
	}
}
