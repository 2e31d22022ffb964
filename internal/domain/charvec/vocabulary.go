// Package charvec turns short texts into presence-only character bitmaps and
// measures how far each of them lies from a center text.
package charvec

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Vocabulary maps every character seen in a corpus to a rank index.
// Frequent characters get low indexes so they land in the low bitmap containers.
type Vocabulary struct {
	index  map[rune]uint32
	chars  []rune
	counts []int
}

// BuildVocabulary tallies characters over texts and then center, and ranks them
// by descending count. Equal counts keep first-seen order.
func BuildVocabulary(center string, texts []string) *Vocabulary {
	counts := make(map[rune]int)
	var order []rune
	tally := func(s string) {
		for _, r := range s {
			if _, seen := counts[r]; !seen {
				order = append(order, r)
			}
			counts[r]++
		}
	}
	for _, t := range texts {
		tally(t)
	}
	tally(center)

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	v := &Vocabulary{
		index:  make(map[rune]uint32, len(order)),
		chars:  order,
		counts: make([]int, len(order)),
	}
	for i, r := range order {
		v.index[r] = uint32(i) //nolint:gosec // vocabulary of short texts never nears 2^32
		v.counts[i] = counts[r]
	}
	return v
}

// Size returns the number of distinct characters.
func (v *Vocabulary) Size() int { return len(v.chars) }

// Index returns the rank of r.
func (v *Vocabulary) Index(r rune) (uint32, bool) {
	i, ok := v.index[r]
	return i, ok
}

// Chars returns the characters in rank order.
func (v *Vocabulary) Chars() []rune {
	return append([]rune(nil), v.chars...)
}

// Count returns how often the character at rank i occurred.
func (v *Vocabulary) Count(i int) int { return v.counts[i] }

// Vectorize returns the set of vocabulary indexes present in text.
// Characters outside the vocabulary fall back to index 0.
func (v *Vocabulary) Vectorize(text string) *roaring.Bitmap {
	bm := roaring.New()
	for _, r := range text {
		i, ok := v.index[r]
		if !ok {
			i = 0
		}
		bm.Add(i)
	}
	return bm
}

// Distance is the size of the symmetric difference of two vectors.
func Distance(a, b *roaring.Bitmap) uint64 {
	return roaring.Xor(a, b).GetCardinality()
}
