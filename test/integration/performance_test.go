package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/config"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/diet"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/planner"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/lp/simplex"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/testutil"
	"go.uber.org/zap"
)

// TestPerformance tests that solving completes within reasonable time.
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	conf, err := config.LoadConfigurationFromReader(strings.NewReader(testutil.GenerateProblem(120, 20)))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader failed: %v", err)
	}
	runner, err := planner.NewRunner(zap.NewNop(), simplex.New(), conf)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	start := time.Now()
	results, err := runner.Run(context.Background())
	duration := time.Since(start)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 1 || !results[0].Solution.HasValues() {
		t.Fatalf("expected one optimal result, got %+v", results)
	}

	maxDuration := 5 * time.Second
	if duration > maxDuration {
		t.Errorf("solve took %v, expected less than %v", duration, maxDuration)
	}
	t.Logf("solved 120 goods x 20 attributes in %v", duration)
}

func BenchmarkSolveExample(b *testing.B) {
	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		b.Fatalf("LoadConfiguration failed: %v", err)
	}
	model, err := diet.Build(conf.Input(conf.ActiveScenarios()[0]))
	if err != nil {
		b.Fatalf("Build failed: %v", err)
	}
	engine := simplex.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = diet.SolveAndMap(engine, model)
	}
}
