package reportcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/cohesion/internal/db"
	"github.com/kailas-cloud/cohesion/internal/domain/report"
)

const keyPrefix = "cohesion:report:"

// store is the consumer interface for the report cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores analysis reports as JSON in a key-value store.
// Concurrent computations of the same key are collapsed into one.
type Cache struct {
	store      store
	ttl        time.Duration
	group      singleflight.Group
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a report cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly; may be nil.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// keyMaterial is hashed into the cache key. Field order is fixed by the struct.
type keyMaterial struct {
	Fingerprint string   `json:"f"`
	Center      string   `json:"c"`
	Texts       []string `json:"t"`
	MaxBins     int      `json:"b"`
}

// Key derives the cache key of req. fingerprint identifies the text filter setup,
// so that the same texts under different stop words never share an entry.
func Key(req report.Request, fingerprint string) string {
	raw, _ := json.Marshal(keyMaterial{
		Fingerprint: fingerprint,
		Center:      req.Center,
		Texts:       req.Texts,
		MaxBins:     req.MaxBins,
	})
	h := sha256.Sum256(raw)
	return keyPrefix + hex.EncodeToString(h[:])
}

// KeyFor is Key bound to the cache.
func (c *Cache) KeyFor(req report.Request, fingerprint string) string {
	return Key(req, fingerprint)
}

// Get returns a cached report.
func (c *Cache) Get(ctx context.Context, key string) (report.Report, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached report", zap.String("key", key), zap.Error(err))
		}
		return report.Report{}, false
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		c.logger.Warn("Failed to parse cached report", zap.String("key", key), zap.Error(err))
		return report.Report{}, false
	}
	return rep, true
}

// Put stores a report. Failures are logged, never returned.
func (c *Cache) Put(ctx context.Context, key string, rep report.Report) {
	data, err := json.Marshal(rep)
	if err != nil {
		c.logger.Warn("Failed to encode report", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache report", zap.String("key", key), zap.Error(err))
	}
}

// GetOrCompute returns the cached report for key or computes and stores it.
// hit reports whether the value came from the cache.
func (c *Cache) GetOrCompute(
	ctx context.Context,
	key string,
	compute func() (report.Report, error),
) (rep report.Report, hit bool, err error) {
	if rep, ok := c.Get(ctx, key); ok {
		c.incCache("hit")
		return rep, true, nil
	}
	c.incCache("miss")

	v, err, _ := c.group.Do(key, func() (any, error) {
		if rep, ok := c.Get(ctx, key); ok {
			return rep, nil
		}
		rep, err := compute()
		if err != nil {
			return nil, err
		}
		c.Put(ctx, key, rep)
		return rep, nil
	})
	if err != nil {
		return report.Report{}, false, fmt.Errorf("compute report: %w", err)
	}
	return v.(report.Report), false, nil //nolint:forcetypeassert // only report.Report is stored
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
