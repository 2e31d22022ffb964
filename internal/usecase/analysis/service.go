package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/cohesion/internal/domain"
	"github.com/kailas-cloud/cohesion/internal/domain/charvec"
	"github.com/kailas-cloud/cohesion/internal/domain/classification"
	"github.com/kailas-cloud/cohesion/internal/domain/jenks"
	"github.com/kailas-cloud/cohesion/internal/domain/report"
	"github.com/kailas-cloud/cohesion/internal/domain/stats"
	logpkg "github.com/kailas-cloud/cohesion/internal/logger"
	"github.com/kailas-cloud/cohesion/internal/metrics"
)

// Defaults applied when Config leaves a field at zero.
const (
	DefaultMaxBins      = 9
	DefaultMaxTexts     = 1000
	DefaultMaxBatchSize = 50
	DefaultWorkers      = 4
)

// Config bounds the work a single call may request.
type Config struct {
	DefaultMaxBins int
	MaxTexts       int
	MaxBatchSize   int
	Workers        int
}

func (c *Config) applyDefaults() {
	if c.DefaultMaxBins <= 0 {
		c.DefaultMaxBins = DefaultMaxBins
	}
	if c.MaxTexts <= 0 {
		c.MaxTexts = DefaultMaxTexts
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
}

// Service runs cohesion analyses: stop-word filtering, distance computation,
// dispersion statistics and the best Jenks partition.
type Service struct {
	filter TextFilter
	cfg    Config
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates an analysis service. filter may be nil.
func New(filter TextFilter, cfg Config, logger *zap.Logger) *Service {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		filter: filter,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithCache enables report caching.
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// Config returns the effective limits.
func (s *Service) Config() Config { return s.cfg }

// Analyze measures how tightly req.Texts cluster around req.Center.
func (s *Service) Analyze(ctx context.Context, req report.Request) (report.Report, error) {
	if err := req.Validate(s.cfg.MaxTexts); err != nil {
		return report.Report{}, err
	}
	if req.MaxBins == 0 {
		req.MaxBins = s.cfg.DefaultMaxBins
	}

	start := time.Now()
	var (
		rep report.Report
		hit bool
		err error
	)
	if s.cache != nil {
		key := s.cache.KeyFor(req, s.fingerprint())
		rep, hit, err = s.cache.GetOrCompute(ctx, key, func() (report.Report, error) {
			return s.compute(req)
		})
	} else {
		rep, err = s.compute(req)
	}
	elapsed := time.Since(start)
	log := logpkg.FromContextOr(ctx, s.logger)

	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("error").Inc()
		log.Warn("Analysis failed",
			zap.Int("texts", len(req.Texts)),
			zap.Int("max_bins", req.MaxBins),
			zap.Error(err),
		)
		return report.Report{}, err
	}

	metrics.AnalysisTotal.WithLabelValues("ok").Inc()
	metrics.AnalysisDuration.Observe(elapsed.Seconds())
	log.Debug("Analysis complete",
		zap.String("report_id", rep.ID),
		zap.Int("texts", rep.TextCount),
		zap.Int("vocabulary", rep.VocabularySize),
		zap.Bool("cache_hit", hit),
		zap.Duration("duration", elapsed),
	)
	return rep, nil
}

func (s *Service) compute(req report.Request) (report.Report, error) {
	eng := s.engine(req.Center, req.Texts)
	distances := eng.Distances()

	rep := report.Report{
		ID:             s.newID(),
		ComputedAt:     s.now().UTC(),
		TextCount:      len(distances),
		VocabularySize: eng.Vocabulary().Size(),
		Distances:      distances,
	}
	rep.ApplyStats(stats.Summarize(distances))

	p, err := jenks.BestPartition(toFloat64(distances), req.MaxBins)
	if err != nil {
		return report.Report{}, fmt.Errorf("best partition: %w", err)
	}
	rep.Partition = report.FromPartition(p)

	metrics.AnalysisTexts.Observe(float64(len(distances)))
	metrics.PartitionBins.Observe(float64(p.Bins))
	return rep, nil
}

// Distances returns the sorted distance collection and the vocabulary size.
// An empty text list yields an empty collection.
func (s *Service) Distances(_ context.Context, center string, texts []string) ([]uint64, int, error) {
	if strings.TrimSpace(center) == "" {
		return nil, 0, fmt.Errorf("%w: center is required", domain.ErrInvalidRequest)
	}
	if len(texts) > s.cfg.MaxTexts {
		return nil, 0, fmt.Errorf("%w: %d texts exceed limit %d", domain.ErrInvalidRequest, len(texts), s.cfg.MaxTexts)
	}
	eng := s.engine(center, texts)
	return eng.Distances(), eng.Vocabulary().Size(), nil
}

// ClassifyResult is a classification built from explicit breaks, plus the
// bin index of each requested value (-1 when a value lies outside every bin).
type ClassifyResult struct {
	Classification classification.Classification
	Indexes        []int
}

// Classify builds bins from interior breaks over data and locates values in them.
func (s *Service) Classify(_ context.Context, breaks, data, values []float64) (ClassifyResult, error) {
	class, err := classification.BreaksToClassification(breaks, data)
	if err != nil {
		return ClassifyResult{}, fmt.Errorf("classify: %w", err)
	}
	res := ClassifyResult{Classification: class}
	if len(values) > 0 {
		res.Indexes = make([]int, len(values))
		for i, v := range values {
			idx, ok := classification.ClassifyVal(v, class)
			if !ok {
				idx = -1
			}
			res.Indexes[i] = idx
		}
	}
	return res, nil
}

// Result is the outcome of one request in a batch.
type Result struct {
	Index  int
	Report *report.Report
	Err    error
}

// AnalyzeBatch analyzes independent requests in parallel, bounded by Config.Workers.
// Per-request failures are reported in the matching Result; only an oversized
// batch fails the call as a whole.
func (s *Service) AnalyzeBatch(ctx context.Context, reqs []report.Request) ([]Result, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", domain.ErrEmptyInput)
	}
	if len(reqs) > s.cfg.MaxBatchSize {
		return nil, fmt.Errorf("%w: batch size %d exceeds %d", domain.ErrInvalidRequest, len(reqs), s.cfg.MaxBatchSize)
	}

	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range reqs {
		g.Go(func() error {
			results[i].Index = i
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			ictx := logpkg.WithFields(gctx, s.logger, zap.Int("batch_index", i))
			rep, err := s.Analyze(ictx, reqs[i])
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Report = &rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze batch: %w", err)
	}
	return results, nil
}

func (s *Service) engine(center string, texts []string) *charvec.Engine {
	eng := charvec.NewEngine()
	if s.filter == nil {
		eng.SetCenter(center)
		eng.SetList(texts)
		return eng
	}
	eng.SetCenter(s.filter.Apply(center))
	filtered := make([]string, len(texts))
	for i, t := range texts {
		filtered[i] = s.filter.Apply(t)
	}
	eng.SetList(filtered)
	return eng
}

func (s *Service) fingerprint() string {
	if s.filter == nil {
		return ""
	}
	return s.filter.Fingerprint()
}

func toFloat64(v []uint64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
