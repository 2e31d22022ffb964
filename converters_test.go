package cohesion

import (
	"testing"

	"github.com/kailas-cloud/cohesion/internal/domain/classification"
	"github.com/kailas-cloud/cohesion/internal/domain/report"
)

func TestClassificationIndex(t *testing.T) {
	c := Classification{{Start: 1, End: 2, Count: 1}, {Start: 2, End: 5, Count: 2}, {Start: 5, End: 8, Count: 3}}
	tests := []struct {
		v    float64
		want int
		ok   bool
	}{
		{1, 0, true},
		{2, 1, true},
		{4.9, 1, true},
		{8, 2, true},
		{0.5, 0, false},
		{8.1, 0, false},
	}
	for _, tc := range tests {
		got, ok := c.Index(tc.v)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("Index(%v) = (%d, %v), want (%d, %v)", tc.v, got, ok, tc.want, tc.ok)
		}
	}
	if c.Total() != 6 {
		t.Errorf("total = %d, want 6", c.Total())
	}
}

func TestClassificationFromDomain(t *testing.T) {
	got := classificationFromDomain(classification.Classification{{Start: 0, End: 3, Count: 4}})
	if len(got) != 1 || got[0] != (Bin{Start: 0, End: 3, Count: 4}) {
		t.Errorf("got %+v", got)
	}
}

func TestReportFromDomain_AbsentFields(t *testing.T) {
	got := reportFromDomain(report.Report{ID: "r", TextCount: 0})
	if got.Mode != nil || got.Partition != nil || got.Mean != nil {
		t.Errorf("expected absent fields, got %+v", got)
	}
	if got.ID != "r" {
		t.Errorf("id = %q", got.ID)
	}
}

func TestReportFromDomain_Partition(t *testing.T) {
	got := reportFromDomain(report.Report{
		Mode: &report.Mode{Value: 2, Count: 3},
		Partition: &report.Partition{
			Bins:       2,
			MaxStdDev:  0.5,
			Classes:    []report.Bin{{Start: 0, End: 1, Count: 2}, {Start: 1, End: 2, Count: 2}},
			Candidates: []report.Candidate{{Bins: 1, MaxStdDev: 0.9}, {Bins: 2, MaxStdDev: 0.5}},
		},
	})
	if got.Mode == nil || *got.Mode != (Mode{Value: 2, Count: 3}) {
		t.Errorf("mode = %+v", got.Mode)
	}
	p := got.Partition
	if p == nil || p.Bins != 2 || len(p.Classification) != 2 || p.Candidates[0].MaxStdDev != 0.9 {
		t.Errorf("partition = %+v", p)
	}
}

func TestClassifyBreaks(t *testing.T) {
	c, err := ClassifyBreaks([]float64{2, 5}, []float64{8, 1, 5, 2, 7, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Classification{{Start: 1, End: 2, Count: 1}, {Start: 2, End: 5, Count: 2}, {Start: 5, End: 8, Count: 3}}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("bin %d = %+v, want %+v", i, c[i], want[i])
		}
	}
	if _, err := ClassifyBreaks([]float64{5, 2}, []float64{1, 8}); err == nil {
		t.Error("expected error for descending breaks")
	}
}
