package mathutil

import (
	"testing"
)

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 1.0, 1.0, 0.1, true},
		{"Within tolerance", 1.0, 1.05, 0.1, true},
		{"Outside tolerance", 1.0, 1.15, 0.1, false},
		{"Negative values within tolerance", -1.0, -1.05, 0.1, true},
		{"Negative values outside tolerance", -1.0, -1.15, 0.1, false},
		{"Zero tolerance exact match", 1.0, 1.0, 0.0, true},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
		{"Large tolerance", 1.0, 5.0, 10.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestWithinRelative(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Small values use absolute scale", 0.5, 0.5000005, 1e-6, true},
		{"Small values outside tolerance", 0.5, 0.51, 1e-6, false},
		{"Large values scale tolerance", 70000, 70000.05, 1e-6, true},
		{"Large values outside tolerance", 70000, 70001, 1e-6, false},
		{"Negative values", -70, -70.00001, 1e-6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinRelative(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinRelative(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestIsNegligible(t *testing.T) {
	if !IsNegligible(0) || !IsNegligible(1e-12) || !IsNegligible(-1e-10) {
		t.Errorf("expected values below quantity tolerance to be negligible")
	}
	if IsNegligible(1e-6) || IsNegligible(-0.001) {
		t.Errorf("expected values above quantity tolerance to be significant")
	}
}
