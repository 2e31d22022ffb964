// Package report holds the analysis request and the report produced for it.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/cohesion/internal/domain"
	"github.com/kailas-cloud/cohesion/internal/domain/classification"
	"github.com/kailas-cloud/cohesion/internal/domain/jenks"
	"github.com/kailas-cloud/cohesion/internal/domain/stats"
)

// Request asks how tightly Texts cluster around Center.
type Request struct {
	Center  string   `json:"center"`
	Texts   []string `json:"texts"`
	MaxBins int      `json:"max_bins"`
}

// Validate checks the request against the configured text limit.
func (r Request) Validate(maxTexts int) error {
	if strings.TrimSpace(r.Center) == "" {
		return fmt.Errorf("%w: center is required", domain.ErrInvalidRequest)
	}
	if len(r.Texts) == 0 {
		return fmt.Errorf("%w: texts are required", domain.ErrEmptyInput)
	}
	if maxTexts > 0 && len(r.Texts) > maxTexts {
		return fmt.Errorf("%w: %d texts exceed limit %d", domain.ErrInvalidRequest, len(r.Texts), maxTexts)
	}
	if r.MaxBins < 0 {
		return fmt.Errorf("%w: max_bins must not be negative", domain.ErrInvalidRequest)
	}
	return nil
}

// Bin is the JSON form of a classification bin.
type Bin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// Candidate is the score of one evaluated bin count.
type Candidate struct {
	Bins      int     `json:"bins"`
	MaxStdDev float64 `json:"max_std_dev"`
}

// Partition is the best classification of the distances.
type Partition struct {
	Bins       int         `json:"bins"`
	MaxStdDev  float64     `json:"max_std_dev"`
	Classes    []Bin       `json:"classes"`
	Candidates []Candidate `json:"candidates"`
}

// Mode is the most frequent distance.
type Mode struct {
	Value uint64 `json:"value"`
	Count int    `json:"count"`
}

// Report is the complete measurement of one request.
// Optional statistics are nil when they cannot be computed.
type Report struct {
	ID             string     `json:"id"`
	ComputedAt     time.Time  `json:"computed_at"`
	TextCount      int        `json:"text_count"`
	VocabularySize int        `json:"vocabulary_size"`
	Distances      []uint64   `json:"distances"`
	Mean           *float64   `json:"mean,omitempty"`
	StdDeviation   *float64   `json:"std_deviation,omitempty"`
	Dispersion     *float64   `json:"dispersion,omitempty"`
	Mode           *Mode      `json:"mode,omitempty"`
	Partition      *Partition `json:"partition,omitempty"`
}

// ApplyStats copies a statistics summary into the report.
func (r *Report) ApplyStats(s stats.Summary) {
	r.Mean = s.Mean
	r.StdDeviation = s.StdDeviation
	r.Dispersion = s.Dispersion
	if s.ModeValue != nil {
		r.Mode = &Mode{Value: *s.ModeValue, Count: s.ModeCount}
	}
}

// FromClassification converts domain bins to their JSON form.
func FromClassification(c classification.Classification) []Bin {
	out := make([]Bin, len(c))
	for i, b := range c {
		out[i] = Bin{Start: b.Start, End: b.End, Count: b.Count}
	}
	return out
}

// FromPartition converts a Jenks partition to its JSON form.
func FromPartition(p jenks.Partition) *Partition {
	cands := make([]Candidate, len(p.Candidates))
	for i, c := range p.Candidates {
		cands[i] = Candidate{Bins: c.Bins, MaxStdDev: c.MaxStdDev}
	}
	return &Partition{
		Bins:       p.Bins,
		MaxStdDev:  p.MaxStdDev,
		Classes:    FromClassification(p.Classification),
		Candidates: cands,
	}
}
