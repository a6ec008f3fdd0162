package services

import (
	"math"
	"testing"
)

func TestSquaredL2(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}

	if got := SquaredL2(a, a); got != 0 {
		t.Errorf("SquaredL2(a, a) = %v, want 0", got)
	}

	// Two orthogonal unit vectors sit at squared distance 2.
	if got := SquaredL2(a, b); math.Abs(got-2) > 1e-9 {
		t.Errorf("SquaredL2(a, b) = %v, want 2", got)
	}

	if got := SquaredL2([]float32{3, 4}, []float32{0, 0}); math.Abs(got-25) > 1e-9 {
		t.Errorf("SquaredL2 = %v, want 25", got)
	}
}

func TestDistanceToScore(t *testing.T) {
	cases := []struct {
		distance float64
		want     float64
	}{
		{0, 100},
		{1, 50},
		{2, 0},
		{3, 0},      // clamped low
		{-0.5, 100}, // clamped high
	}

	for _, tc := range cases {
		if got := DistanceToScore(tc.distance); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("DistanceToScore(%v) = %v, want %v", tc.distance, got, tc.want)
		}
	}
}
