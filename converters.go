package cohesion

import (
	"github.com/kailas-cloud/cohesion/internal/domain/classification"
	"github.com/kailas-cloud/cohesion/internal/domain/jenks"
	"github.com/kailas-cloud/cohesion/internal/domain/report"
)

func classificationFromDomain(c classification.Classification) Classification {
	out := make(Classification, len(c))
	for i, b := range c {
		out[i] = Bin{Start: b.Start, End: b.End, Count: b.Count}
	}
	return out
}

func partitionFromDomain(p jenks.Partition) Partition {
	cands := make([]Candidate, len(p.Candidates))
	for i, c := range p.Candidates {
		cands[i] = Candidate{Bins: c.Bins, MaxStdDev: c.MaxStdDev}
	}
	return Partition{
		Bins:           p.Bins,
		Classification: classificationFromDomain(p.Classification),
		MaxStdDev:      p.MaxStdDev,
		Candidates:     cands,
	}
}

func reportFromDomain(r report.Report) Report {
	out := Report{
		ID:             r.ID,
		ComputedAt:     r.ComputedAt,
		TextCount:      r.TextCount,
		VocabularySize: r.VocabularySize,
		Distances:      r.Distances,
		Mean:           r.Mean,
		StdDeviation:   r.StdDeviation,
		Dispersion:     r.Dispersion,
	}
	if r.Mode != nil {
		out.Mode = &Mode{Value: r.Mode.Value, Count: r.Mode.Count}
	}
	if r.Partition != nil {
		p := Partition{
			Bins:           r.Partition.Bins,
			MaxStdDev:      r.Partition.MaxStdDev,
			Classification: make(Classification, len(r.Partition.Classes)),
			Candidates:     make([]Candidate, len(r.Partition.Candidates)),
		}
		for i, b := range r.Partition.Classes {
			p.Classification[i] = Bin{Start: b.Start, End: b.End, Count: b.Count}
		}
		for i, c := range r.Partition.Candidates {
			p.Candidates[i] = Candidate{Bins: c.Bins, MaxStdDev: c.MaxStdDev}
		}
		out.Partition = &p
	}
	return out
}
