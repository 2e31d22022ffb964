package cohesion

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// analyzerMetrics are the collectors registered through WithMetrics.
type analyzerMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newAnalyzerMetrics(reg prometheus.Registerer) (*analyzerMetrics, error) {
	m := &analyzerMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cohesion",
			Subsystem: "analyzer",
			Name:      "operations_total",
			Help:      "Analyzer operations by name and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cohesion",
			Subsystem: "analyzer",
			Name:      "operation_duration_seconds",
			Help:      "Analyzer operation duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or swaps in the collector already registered
// under the same descriptor so several Analyzers can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("cohesion: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("cohesion: metric registered with incompatible type %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

type observer struct {
	logger  *zap.Logger
	metrics *analyzerMetrics
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if err != nil {
		o.logger.Warn("operation failed", zap.String("op", op), zap.Duration("duration", dur), zap.Error(err))
		return
	}
	o.logger.Debug("operation completed", zap.String("op", op), zap.Duration("duration", dur))
}
