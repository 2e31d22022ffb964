package jenks

import (
	"fmt"

	"github.com/kailas-cloud/cohesion/internal/domain"
	"github.com/kailas-cloud/cohesion/internal/domain/classification"
	"github.com/kailas-cloud/cohesion/internal/domain/stats"
)

// Candidate is the score of one evaluated bin count.
type Candidate struct {
	Bins      int
	MaxStdDev float64
}

// Partition is the chosen classification together with every evaluated candidate.
type Partition struct {
	Bins           int
	Classification classification.Classification
	MaxStdDev      float64
	Candidates     []Candidate
}

// BestPartition evaluates k = 1..min(maxBins, distinct values) and picks the k whose
// largest per-bin standard deviation is the smallest. Ties keep the smaller k.
// A small result means the data is converged, a large one means it is dispersed.
func BestPartition(sorted []float64, maxBins int) (Partition, error) {
	if len(sorted) == 0 {
		return Partition{}, fmt.Errorf("best partition: %w", domain.ErrEmptyInput)
	}
	distinct := len(classification.UniqueValues(sorted))
	if maxBins < 1 {
		return Partition{}, fmt.Errorf("best partition: %w", domain.NewBinRange(maxBins, distinct))
	}

	limit := min(maxBins, distinct)
	var best Partition
	candidates := make([]Candidate, 0, limit)

	for k := 1; k <= limit; k++ {
		class, err := Classify(k, sorted)
		if err != nil {
			return Partition{}, fmt.Errorf("best partition: k=%d: %w", k, err)
		}
		score, err := MaxBinStdDeviation(sorted, class)
		if err != nil {
			return Partition{}, fmt.Errorf("best partition: k=%d: %w", k, err)
		}
		candidates = append(candidates, Candidate{Bins: k, MaxStdDev: score})
		if k == 1 || score < best.MaxStdDev {
			best = Partition{Bins: k, Classification: class, MaxStdDev: score}
		}
	}

	best.Candidates = candidates
	return best, nil
}

// MaxBinStdDeviation returns the largest population standard deviation among the
// bins of class, each computed over its own contiguous run of sorted data.
func MaxBinStdDeviation(sorted []float64, class classification.Classification) (float64, error) {
	parts, err := classification.BinSlices(sorted, class)
	if err != nil {
		return 0, err
	}
	var worst float64
	for _, part := range parts {
		if sd, ok := stats.Float64StdDeviation(part); ok && sd > worst {
			worst = sd
		}
	}
	return worst, nil
}
