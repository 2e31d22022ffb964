package report

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/cohesion/internal/domain"
	"github.com/kailas-cloud/cohesion/internal/domain/classification"
	"github.com/kailas-cloud/cohesion/internal/domain/jenks"
	"github.com/kailas-cloud/cohesion/internal/domain/stats"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"ok", Request{Center: "ab", Texts: []string{"ab"}}, nil},
		{"blank center", Request{Center: "  ", Texts: []string{"ab"}}, domain.ErrInvalidRequest},
		{"no texts", Request{Center: "ab"}, domain.ErrEmptyInput},
		{"too many texts", Request{Center: "ab", Texts: []string{"a", "b", "c"}}, domain.ErrInvalidRequest},
		{"negative bins", Request{Center: "ab", Texts: []string{"a"}, MaxBins: -1}, domain.ErrInvalidRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate(2)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestApplyStats(t *testing.T) {
	var r Report
	r.ApplyStats(stats.Summarize([]uint64{2, 2, 5}))
	if r.Mode == nil || r.Mode.Value != 2 || r.Mode.Count != 2 {
		t.Errorf("mode = %+v, want {2 2}", r.Mode)
	}
	if r.Mean == nil || r.Dispersion == nil || r.StdDeviation == nil {
		t.Error("expected statistics to be set")
	}

	var empty Report
	empty.ApplyStats(stats.Summarize(nil))
	if empty.Mode != nil || empty.Mean != nil {
		t.Errorf("expected absent statistics, got %+v", empty)
	}
}

func TestFromPartition(t *testing.T) {
	p := FromPartition(jenks.Partition{
		Bins:           2,
		MaxStdDev:      0.5,
		Classification: classification.Classification{{Start: 0, End: 1, Count: 2}, {Start: 1, End: 3, Count: 1}},
		Candidates:     []jenks.Candidate{{Bins: 1, MaxStdDev: 1}, {Bins: 2, MaxStdDev: 0.5}},
	})
	if p.Bins != 2 || len(p.Classes) != 2 || len(p.Candidates) != 2 {
		t.Fatalf("unexpected partition: %+v", p)
	}
	if p.Classes[1] != (Bin{Start: 1, End: 3, Count: 1}) {
		t.Errorf("class[1] = %+v", p.Classes[1])
	}
}
