package cohesion

import "time"

// Bin is a half-open interval [Start, End) with the number of distances in it.
// The last bin of a Classification also holds End.
type Bin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// Classification is an ordered run of bins covering the data range.
type Classification []Bin

// Total returns the number of points over all bins.
func (c Classification) Total() int {
	n := 0
	for _, b := range c {
		n += b.Count
	}
	return n
}

// Index returns the bin holding value, or false when value is outside every bin.
func (c Classification) Index(value float64) (int, bool) {
	for i, b := range c {
		last := i == len(c)-1
		if value >= b.Start && (value < b.End || (last && value <= b.End)) {
			return i, true
		}
	}
	return 0, false
}

// Candidate is the score of one evaluated bin count.
type Candidate struct {
	Bins      int     `json:"bins"`
	MaxStdDev float64 `json:"max_std_dev"`
}

// Partition is the bin count whose widest bin has the smallest standard deviation.
type Partition struct {
	Bins           int            `json:"bins"`
	Classification Classification `json:"classes"`
	MaxStdDev      float64        `json:"max_std_dev"`
	Candidates     []Candidate    `json:"candidates"`
}

// Classify returns the bin of the partition that holds a distance.
func (p Partition) Classify(distance float64) (int, bool) {
	return p.Classification.Index(distance)
}

// Mode is the most frequent distance. Ties resolve to the smallest value.
type Mode struct {
	Value uint64 `json:"value"`
	Count int    `json:"count"`
}

// Report is a complete measurement of the current center and list.
// Statistics that cannot be computed are nil.
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
