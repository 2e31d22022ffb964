package classification

// UniqueVal describes one run of identical values in sorted data:
// the value and the indexes of its first and last occurrence.
type UniqueVal struct {
	Value float64
	First int
	Last  int
}

// Weight returns the number of points in the run.
func (u UniqueVal) Weight() int { return u.Last - u.First + 1 }

// UniqueValues compresses ascending data into runs of identical values.
func UniqueValues(sorted []float64) []UniqueVal {
	if len(sorted) == 0 {
		return nil
	}
	runs := []UniqueVal{{Value: sorted[0], First: 0, Last: 0}}
	for i := 1; i < len(sorted); i++ {
		cur := &runs[len(runs)-1]
		if sorted[i] == cur.Value {
			cur.Last = i
			continue
		}
		runs = append(runs, UniqueVal{Value: sorted[i], First: i, Last: i})
	}
	return runs
}

// UniqueToNormalBreaks maps break indexes over the unique runs back to indexes
// over the original sorted data (the first occurrence of each run).
func UniqueToNormalBreaks(uniqueBreaks []int, runs []UniqueVal) []int {
	normal := make([]int, len(uniqueBreaks))
	for i, ub := range uniqueBreaks {
		normal[i] = runs[ub].First
	}
	return normal
}
