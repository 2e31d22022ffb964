// Package jenks implements Jenks natural-breaks classification over sorted data
// and the search for the bin count whose worst bin is the tightest.
package jenks

import (
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/cohesion/internal/domain"
	"github.com/kailas-cloud/cohesion/internal/domain/classification"
)

// Classify partitions ascending data into k contiguous bins minimizing the total
// within-bin sum of squared deviations. Duplicates are compressed into weighted
// unique runs first, so k may not exceed the number of distinct values.
func Classify(k int, sorted []float64) (classification.Classification, error) {
	if len(sorted) == 0 {
		return nil, fmt.Errorf("jenks classify: %w", domain.ErrEmptyInput)
	}
	if !sort.Float64sAreSorted(sorted) {
		return nil, fmt.Errorf("jenks classify: %w: data is not sorted", domain.ErrInvariant)
	}

	runs := classification.UniqueValues(sorted)
	if k < 1 || k > len(runs) {
		return nil, fmt.Errorf("jenks classify: %w", domain.NewBinRange(k, len(runs)))
	}

	uniqueBreaks := optimalBreaks(k, runs)
	normal := classification.UniqueToNormalBreaks(uniqueBreaks, runs)

	breaks := make([]float64, len(normal))
	for i, idx := range normal {
		breaks[i] = sorted[idx]
	}

	class, err := classification.BreaksToClassification(breaks, sorted)
	if err != nil {
		return nil, fmt.Errorf("jenks classify: %w", err)
	}
	return class, nil
}

// prefix holds cumulative weight, weighted sum and weighted sum of squares over runs.
type prefix struct {
	w, s1, s2 []float64
}

func newPrefix(runs []classification.UniqueVal) prefix {
	n := len(runs)
	p := prefix{
		w:  make([]float64, n+1),
		s1: make([]float64, n+1),
		s2: make([]float64, n+1),
	}
	for i, r := range runs {
		w := float64(r.Weight())
		p.w[i+1] = p.w[i] + w
		p.s1[i+1] = p.s1[i] + w*r.Value
		p.s2[i+1] = p.s2[i] + w*r.Value*r.Value
	}
	return p
}

// ssd is the sum of squared deviations of runs a..b (inclusive) from their mean.
func (p prefix) ssd(a, b int) float64 {
	w := p.w[b+1] - p.w[a]
	s1 := p.s1[b+1] - p.s1[a]
	s2 := p.s2[b+1] - p.s2[a]
	v := s2 - s1*s1/w
	if v < 0 {
		return 0
	}
	return v
}

// optimalBreaks returns the k-1 run indexes that open bins 2..k.
// Ties keep the earliest boundary.
func optimalBreaks(k int, runs []classification.UniqueVal) []int {
	n := len(runs)
	p := newPrefix(runs)

	cost := make([][]float64, k)
	start := make([][]int, k)
	for c := range cost {
		cost[c] = make([]float64, n)
		start[c] = make([]int, n)
	}
	for j := 0; j < n; j++ {
		cost[0][j] = p.ssd(0, j)
	}

	for c := 1; c < k; c++ {
		for j := c; j < n; j++ {
			best := math.Inf(1)
			bestStart := c
			for i := c; i <= j; i++ {
				v := cost[c-1][i-1] + p.ssd(i, j)
				if v < best {
					best = v
					bestStart = i
				}
			}
			cost[c][j] = best
			start[c][j] = bestStart
		}
	}

	breaks := make([]int, k-1)
	j := n - 1
	for c := k - 1; c > 0; c-- {
		b := start[c][j]
		breaks[c-1] = b
		j = b - 1
	}
	return breaks
}
