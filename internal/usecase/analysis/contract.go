package analysis

import (
	"context"

	"github.com/kailas-cloud/cohesion/internal/domain/report"
)

// Cache stores finished reports keyed by request.
// Implementations must tolerate store failures and fall back to compute.
type Cache interface {
	KeyFor(req report.Request, fingerprint string) string
	GetOrCompute(ctx context.Context, key string, compute func() (report.Report, error)) (report.Report, bool, error)
}

// TextFilter blanks stop words out of a text without changing its length.
type TextFilter interface {
	Apply(text string) string
	Fingerprint() string
}
