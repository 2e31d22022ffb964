package stats

import (
	"math"
	"testing"
)

const eps = 1e-3

func TestMean(t *testing.T) {
	m, ok := Mean([]uint64{0, 2, 4})
	if !ok {
		t.Fatal("expected mean to be computable")
	}
	if m != 2 {
		t.Errorf("mean = %f, want 2", m)
	}
}

func TestStdDeviation_Population(t *testing.T) {
	sd, ok := StdDeviation([]uint64{0, 2, 4})
	if !ok {
		t.Fatal("expected std deviation to be computable")
	}
	// sqrt(8/3), not sqrt(8/2)
	if math.Abs(sd-1.633) > eps {
		t.Errorf("std deviation = %f, want ~1.633", sd)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	cv, ok := CoefficientOfVariation([]uint64{0, 2, 4})
	if !ok {
		t.Fatal("expected coefficient of variation to be computable")
	}
	if math.Abs(cv-0.816) > eps {
		t.Errorf("cv = %f, want ~0.816", cv)
	}
}

func TestCoefficientOfVariation_ZeroMean(t *testing.T) {
	if _, ok := CoefficientOfVariation([]uint64{0, 0, 0}); ok {
		t.Error("expected zero mean to be not computable")
	}
}

func TestEmptyInput(t *testing.T) {
	if _, ok := Mean(nil); ok {
		t.Error("Mean(nil) should be absent")
	}
	if _, ok := StdDeviation(nil); ok {
		t.Error("StdDeviation(nil) should be absent")
	}
	if _, _, ok := Mode(nil); ok {
		t.Error("Mode(nil) should be absent")
	}
	if _, ok := CoefficientOfVariation([]uint64{}); ok {
		t.Error("CoefficientOfVariation(empty) should be absent")
	}
	if _, ok := Float64StdDeviation(nil); ok {
		t.Error("Float64StdDeviation(nil) should be absent")
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name      string
		in        []uint64
		wantValue uint64
		wantCount int
	}{
		{"single", []uint64{7}, 7, 1},
		{"clear winner", []uint64{1, 3, 3, 3, 5}, 3, 3},
		{"tie picks smallest", []uint64{4, 4, 2, 2, 9}, 2, 2},
		{"all distinct picks smallest", []uint64{8, 6, 5}, 5, 1},
		{"order independent", []uint64{9, 2, 9, 2}, 2, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, c, ok := Mode(tc.in)
			if !ok {
				t.Fatal("expected mode to be computable")
			}
			if v != tc.wantValue || c != tc.wantCount {
				t.Errorf("Mode(%v) = (%d, %d), want (%d, %d)", tc.in, v, c, tc.wantValue, tc.wantCount)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]uint64{0, 2, 4})
	if s.Count != 3 {
		t.Errorf("count = %d, want 3", s.Count)
	}
	if s.Mean == nil || *s.Mean != 2 {
		t.Errorf("mean = %v, want 2", s.Mean)
	}
	if s.Dispersion == nil || math.Abs(*s.Dispersion-0.816) > eps {
		t.Errorf("dispersion = %v, want ~0.816", s.Dispersion)
	}
	if s.ModeValue == nil || *s.ModeValue != 0 || s.ModeCount != 1 {
		t.Errorf("mode = %v/%d, want 0/1", s.ModeValue, s.ModeCount)
	}

	empty := Summarize(nil)
	if empty.Mean != nil || empty.StdDeviation != nil || empty.Dispersion != nil || empty.ModeValue != nil {
		t.Errorf("expected all absent for empty input, got %+v", empty)
	}
}
