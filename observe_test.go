package cohesion

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	zapobserver "go.uber.org/zap/zaptest/observer"
)

func TestWithMetrics_CountsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := New(WithMetrics(reg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.SetCenter("ab")
	a.SetList([]string{"ab", "ac"})

	if _, err := a.Report(0); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if _, err := a.BestPartition(0); err == nil {
		t.Fatal("expected ErrBinOutOfRange")
	}

	m := a.obs.metrics
	if got := testutil.ToFloat64(m.operations.WithLabelValues("report", "ok")); got != 1 {
		t.Errorf("report ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("best_partition", "error")); got != 1 {
		t.Errorf("best_partition error = %v, want 1", got)
	}
}

func TestWithMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := New(WithMetrics(reg))
	if err != nil {
		t.Fatalf("first New: %v", err)
	}
	b, err := New(WithMetrics(reg))
	if err != nil {
		t.Fatalf("second New: %v", err)
	}
	if a.obs.metrics.operations != b.obs.metrics.operations {
		t.Error("analyzers on one registry should share collectors")
	}
}

func TestObserver_LogsFailures(t *testing.T) {
	core, logs := zapobserver.New(zapcore.DebugLevel)
	a, err := New(WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := a.Classify(3); err == nil {
		t.Fatal("expected error on empty list")
	}

	failed := logs.FilterMessage("operation failed").All()
	if len(failed) != 1 {
		t.Fatalf("failed entries = %d, want 1", len(failed))
	}
	if op := failed[0].ContextMap()["op"]; op != "classify" {
		t.Errorf("op = %v, want classify", op)
	}
}

func TestObserver_Nil(t *testing.T) {
	var o *observer
	o.observe("report", time.Time{}, nil)
}
