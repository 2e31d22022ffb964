package charvec

import (
	"slices"
)

// Engine owns one analysis run: the center, the comparison texts, and the
// distance collection derived from them. Distances are cached until an input changes.
// An Engine is not safe for concurrent use.
type Engine struct {
	center    string
	texts     []string
	vocab     *Vocabulary
	distances []uint64
	fresh     bool
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SetCenter records the center text.
func (e *Engine) SetCenter(center string) {
	e.center = center
	e.fresh = false
}

// SetList records the ordered comparison texts.
func (e *Engine) SetList(texts []string) {
	e.texts = append([]string(nil), texts...)
	e.fresh = false
}

// Center returns the recorded center text.
func (e *Engine) Center() string { return e.center }

// Len returns the number of comparison texts.
func (e *Engine) Len() int { return len(e.texts) }

// Distances returns the ascending distance of every comparison text to the center.
// The result has one entry per text and is empty when there are no texts.
func (e *Engine) Distances() []uint64 {
	e.compute()
	return slices.Clone(e.distances)
}

// Vocabulary returns the vocabulary of the current inputs.
func (e *Engine) Vocabulary() *Vocabulary {
	e.compute()
	return e.vocab
}

func (e *Engine) compute() {
	if e.fresh {
		return
	}
	e.vocab = BuildVocabulary(e.center, e.texts)
	e.distances = ComputeDistances(e.vocab, e.center, e.texts)
	e.fresh = true
}

// ComputeDistances vectorizes center once and every text against it and returns
// the sorted symmetric-difference sizes.
func ComputeDistances(vocab *Vocabulary, center string, texts []string) []uint64 {
	c := vocab.Vectorize(center)
	out := make([]uint64, len(texts))
	for i, t := range texts {
		out[i] = Distance(c, vocab.Vectorize(t))
	}
	slices.Sort(out)
	return out
}
