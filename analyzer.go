package cohesion

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cohesion/internal/domain/charvec"
	"github.com/kailas-cloud/cohesion/internal/domain/jenks"
	"github.com/kailas-cloud/cohesion/internal/domain/report"
	"github.com/kailas-cloud/cohesion/internal/domain/stats"
	"github.com/kailas-cloud/cohesion/internal/domain/stopword"
)

// DefaultMaxBins is the bin limit used by Report when none is given.
const DefaultMaxBins = 9

// Analyzer holds one center and one list of texts and measures them.
// Stop words are blanked out as texts are recorded.
// An Analyzer is not safe for concurrent use; create one per goroutine.
type Analyzer struct {
	filter *stopword.Filter
	engine *charvec.Engine
	logger *zap.Logger
	obs    *observer
}

// New creates an Analyzer. It fails when a stop word file cannot be read or
// the metrics cannot be registered.
func New(opts ...Option) (*Analyzer, error) {
	cfg := &analyzerConfig{placeholder: stopword.DefaultPlaceholder}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	words := cfg.stopWords
	for _, path := range cfg.stopWordFiles {
		w, err := stopword.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cohesion: %w", err)
		}
		words = append(words, w...)
	}

	fopts := []stopword.Option{stopword.WithPlaceholder(cfg.placeholder)}
	if cfg.normalize {
		fopts = append(fopts, stopword.WithNormalization())
	}
	f := stopword.New(words, fopts...)

	obs := &observer{logger: cfg.logger}
	if cfg.registerer != nil {
		m, err := newAnalyzerMetrics(cfg.registerer)
		if err != nil {
			return nil, err
		}
		obs.metrics = m
	}
	cfg.logger.Debug("analyzer created", zap.Int("stop_words", len(f.Words())))

	return &Analyzer{
		filter: f,
		engine: charvec.NewEngine(),
		logger: cfg.logger,
		obs:    obs,
	}, nil
}

// SetCenter records the center text.
func (a *Analyzer) SetCenter(text string) {
	a.engine.SetCenter(a.filter.Apply(text))
}

// SetList records the texts compared against the center, in order.
func (a *Analyzer) SetList(texts []string) {
	a.engine.SetList(a.filter.ApplyAll(texts))
}

// Center returns the recorded center after stop word filtering.
func (a *Analyzer) Center() string { return a.engine.Center() }

// Len returns the number of recorded list texts.
func (a *Analyzer) Len() int { return a.engine.Len() }

// Distances returns the ascending distance of every list text to the center.
func (a *Analyzer) Distances() []uint64 {
	return a.engine.Distances()
}

// VocabularySize returns the number of distinct characters over center and list.
func (a *Analyzer) VocabularySize() int {
	return a.engine.Vocabulary().Size()
}

// Mode returns the most frequent distance and its count. ok is false without texts.
func (a *Analyzer) Mode() (value uint64, count int, ok bool) {
	return stats.Mode(a.engine.Distances())
}

// Mean returns the mean distance. ok is false without texts.
func (a *Analyzer) Mean() (float64, bool) {
	return stats.Mean(a.engine.Distances())
}

// StdDeviation returns the population standard deviation of the distances.
func (a *Analyzer) StdDeviation() (float64, bool) {
	return stats.StdDeviation(a.engine.Distances())
}

// Dispersion returns the coefficient of variation of the distances.
// ok is false without texts or when every text equals the center.
func (a *Analyzer) Dispersion() (float64, bool) {
	return stats.CoefficientOfVariation(a.engine.Distances())
}

// BestPartition evaluates bin counts 1..maxBins and returns the one whose
// widest bin is the tightest. The search stops at the number of distinct
// distances. maxBins below 1 returns ErrBinOutOfRange; an empty list returns
// ErrEmptyInput.
func (a *Analyzer) BestPartition(maxBins int) (_ Partition, err error) {
	defer func(start time.Time) { a.obs.observe("best_partition", start, err) }(time.Now())

	p, err := jenks.BestPartition(a.sortedFloats(), maxBins)
	if err != nil {
		return Partition{}, fmt.Errorf("cohesion: %w", err)
	}
	return partitionFromDomain(p), nil
}

// Classify computes the Jenks classification for exactly k bins.
func (a *Analyzer) Classify(k int) (_ Classification, err error) {
	defer func(start time.Time) { a.obs.observe("classify", start, err) }(time.Now())

	c, err := jenks.Classify(k, a.sortedFloats())
	if err != nil {
		return nil, fmt.Errorf("cohesion: %w", err)
	}
	return classificationFromDomain(c), nil
}

// Report computes every measurement at once. maxBins 0 means DefaultMaxBins.
func (a *Analyzer) Report(maxBins int) (_ Report, err error) {
	defer func(start time.Time) { a.obs.observe("report", start, err) }(time.Now())

	if maxBins == 0 {
		maxBins = DefaultMaxBins
	}
	distances := a.engine.Distances()
	rep := report.Report{
		ID:             uuid.NewString(),
		ComputedAt:     time.Now().UTC(),
		TextCount:      len(distances),
		VocabularySize: a.engine.Vocabulary().Size(),
		Distances:      distances,
	}
	rep.ApplyStats(stats.Summarize(distances))

	p, err := jenks.BestPartition(toFloats(distances), maxBins)
	if err != nil {
		return Report{}, fmt.Errorf("cohesion: %w", err)
	}
	rep.Partition = report.FromPartition(p)

	a.logger.Debug("report computed",
		zap.String("report_id", rep.ID),
		zap.Int("texts", rep.TextCount),
		zap.Int("bins", p.Bins),
	)
	return reportFromDomain(rep), nil
}

func (a *Analyzer) sortedFloats() []float64 {
	return toFloats(a.engine.Distances())
}

func toFloats(v []uint64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
