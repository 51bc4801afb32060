package calculator

import (
	"math"
	"testing"
)

func TestLinearSlope(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   float64
	}{
		{"rising", []int64{1, 2, 3}, 1},
		{"falling", []int64{3, 2, 1}, -1},
		{"flat", []int64{5, 5, 5, 5}, 0},
		{"steep fall", []int64{-8000, -12000, -15000}, -3500},
	}
	for _, tt := range tests {
		got, err := LinearSlope(tt.values)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%s: expected slope %.1f, got %.6f", tt.name, tt.want, got)
		}
	}
}

func TestLinearSlope_InsufficientData(t *testing.T) {
	if _, err := LinearSlope([]int64{1}); err == nil {
		t.Error("expected error for single value")
	}
	if _, err := LinearSlope(nil); err == nil {
		t.Error("expected error for no values")
	}
}

func TestTrendDirection(t *testing.T) {
	if d := TrendDirection([]int64{1, 2, 3}); d != 1 {
		t.Errorf("expected +1 for rising, got %d", d)
	}
	if d := TrendDirection([]int64{3, 2, 1}); d != -1 {
		t.Errorf("expected -1 for falling, got %d", d)
	}
	if d := TrendDirection([]int64{7, 7, 7}); d != 0 {
		t.Errorf("expected 0 for flat, got %d", d)
	}
	if d := TrendDirection([]int64{7}); d != 0 {
		t.Errorf("expected 0 for insufficient data, got %d", d)
	}
}

func TestMinMaxNet(t *testing.T) {
	nets := []int64{-10000, -8000, -12000, -15000, -9000}

	low, err := MinNet(nets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low != -15000 {
		t.Errorf("expected min -15000, got %d", low)
	}

	high, err := MaxNet(nets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != -8000 {
		t.Errorf("expected max -8000, got %d", high)
	}
}

func TestMinMaxNet_Empty(t *testing.T) {
	if _, err := MinNet(nil); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := MaxNet(nil); err == nil {
		t.Error("expected error for empty input")
	}
}
