// Package stats holds dispersion statistics over distance collections.
// Every function returns ok=false instead of NaN when the result is not computable.
package stats

import "math"

// Mean returns the arithmetic mean.
func Mean(v []uint64) (float64, bool) {
	if len(v) == 0 {
		return 0, false
	}
	var sum float64
	for _, x := range v {
		sum += float64(x)
	}
	return sum / float64(len(v)), true
}

// StdDeviation returns the population standard deviation (divides by len, not len-1).
func StdDeviation(v []uint64) (float64, bool) {
	m, ok := Mean(v)
	if !ok {
		return 0, false
	}
	var acc float64
	for _, x := range v {
		d := m - float64(x)
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(v))), true
}

// Mode returns the most frequent value and its occurrence count.
// Ties resolve to the smallest of the tied values.
func Mode(v []uint64) (value uint64, count int, ok bool) {
	if len(v) == 0 {
		return 0, 0, false
	}
	freq := make(map[uint64]int, len(v))
	for _, x := range v {
		freq[x]++
	}
	for x, c := range freq {
		if c > count || (c == count && x < value) {
			value, count = x, c
		}
	}
	return value, count, true
}

// CoefficientOfVariation returns StdDeviation / Mean.
// Not computable on empty input or when the mean is zero.
func CoefficientOfVariation(v []uint64) (float64, bool) {
	m, ok := Mean(v)
	if !ok || m == 0 {
		return 0, false
	}
	sd, _ := StdDeviation(v)
	return sd / m, true
}

// Float64StdDeviation is StdDeviation over float samples, used for per-bin scoring.
func Float64StdDeviation(v []float64) (float64, bool) {
	if len(v) == 0 {
		return 0, false
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	m := sum / float64(len(v))
	var acc float64
	for _, x := range v {
		d := m - x
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(v))), true
}

// Summary bundles all statistics of one collection. Absent values are nil.
type Summary struct {
	Count        int
	Mean         *float64
	StdDeviation *float64
	Dispersion   *float64
	ModeValue    *uint64
	ModeCount    int
}

// Summarize computes every statistic in one call.
func Summarize(v []uint64) Summary {
	s := Summary{Count: len(v)}
	if m, ok := Mean(v); ok {
		s.Mean = &m
	}
	if sd, ok := StdDeviation(v); ok {
		s.StdDeviation = &sd
	}
	if cv, ok := CoefficientOfVariation(v); ok {
		s.Dispersion = &cv
	}
	if mv, mc, ok := Mode(v); ok {
		s.ModeValue = &mv
		s.ModeCount = mc
	}
	return s
}
