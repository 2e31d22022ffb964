package classification

import (
	"fmt"

	"github.com/kailas-cloud/cohesion/internal/domain"
)

// Bin is the half-open interval [Start, End) with the number of points inside it.
// The last bin of a Classification is closed on End.
type Bin struct {
	Start float64
	End   float64
	Count int
}

// Contains reports whether x falls inside the bin. last closes the upper bound.
func (b Bin) Contains(x float64, last bool) bool {
	if last {
		return b.Start <= x && x <= b.End
	}
	return b.Start <= x && x < b.End
}

// Classification is an ordered, gapless sequence of bins covering [min, max].
type Classification []Bin

// Total returns the sum of bin counts.
func (c Classification) Total() int {
	total := 0
	for _, b := range c {
		total += b.Count
	}
	return total
}

// BreaksToClassification builds len(breaks)+1 bins spanning [min(data), max(data)]
// and counts the points of data inside each of them.
// breaks are interior boundaries: strictly ascending and within [min, max].
func BreaksToClassification(breaks, data []float64) (Classification, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("breaks to classification: %w", domain.ErrEmptyInput)
	}

	lo, hi := data[0], data[0]
	for _, x := range data {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}

	bounds := make([]float64, 0, len(breaks)+2)
	bounds = append(bounds, lo)
	for i, b := range breaks {
		if b < lo || b > hi {
			return nil, fmt.Errorf("%w: break %v outside [%v, %v]", domain.ErrInvariant, b, lo, hi)
		}
		if i > 0 && b <= breaks[i-1] {
			return nil, fmt.Errorf("%w: breaks not strictly ascending at %d", domain.ErrInvariant, i)
		}
		bounds = append(bounds, b)
	}
	bounds = append(bounds, hi)

	class := make(Classification, len(bounds)-1)
	for i := range class {
		class[i] = Bin{Start: bounds[i], End: bounds[i+1]}
	}

	for _, x := range data {
		idx, ok := ClassifyVal(x, class)
		if !ok {
			return nil, fmt.Errorf("%w: value %v not covered", domain.ErrInvariant, x)
		}
		class[idx].Count++
	}

	if class.Total() != len(data) {
		return nil, fmt.Errorf("%w: bin counts sum to %d, want %d", domain.ErrInvariant, class.Total(), len(data))
	}
	return class, nil
}

// ClassifyVal returns the index of the bin that contains val.
// ok is false when val lies outside [first.Start, last.End] or class is empty.
func ClassifyVal(val float64, class Classification) (int, bool) {
	if len(class) == 0 {
		return 0, false
	}
	last := len(class) - 1
	if val < class[0].Start || val > class[last].End {
		return 0, false
	}
	for i, b := range class {
		if b.Contains(val, i == last) {
			return i, true
		}
	}
	return 0, false
}

// BinSlices splits sorted data into the contiguous runs described by the bin counts.
func BinSlices(sorted []float64, class Classification) ([][]float64, error) {
	if class.Total() != len(sorted) {
		return nil, fmt.Errorf("%w: classification covers %d points, data has %d",
			domain.ErrInvariant, class.Total(), len(sorted))
	}
	out := make([][]float64, len(class))
	offset := 0
	for i, b := range class {
		out[i] = sorted[offset : offset+b.Count]
		offset += b.Count
	}
	return out, nil
}
