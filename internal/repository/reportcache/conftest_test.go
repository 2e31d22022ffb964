package reportcache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cohesion/internal/db"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCache(t *testing.T) (*Cache, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := &mockKVStore{}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_report_cache_total",
		Help: "test",
	}, []string{"result"})
	return New(ms, time.Hour, counter, zap.NewNop()), ms, counter
}
