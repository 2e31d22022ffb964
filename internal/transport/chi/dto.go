package chi

import (
	"github.com/kailas-cloud/cohesion/internal/domain/report"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeEmptyInput       ErrorCode = "empty_input"
	ErrorCodeBinOutOfRange    ErrorCode = "bin_out_of_range"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// BatchAnalyzeRequest is the body of POST /api/v1/analyze/batch.
type BatchAnalyzeRequest struct {
	Requests []report.Request `json:"requests"`
}

// BatchResultStatus reports whether one batch item succeeded.
type BatchResultStatus string

// Batch item statuses.
const (
	BatchStatusOK    BatchResultStatus = "ok"
	BatchStatusError BatchResultStatus = "error"
)

// BatchResultItem is one entry of BatchAnalyzeResponse.
type BatchResultItem struct {
	Index  int               `json:"index"`
	Status BatchResultStatus `json:"status"`
	Report *report.Report    `json:"report,omitempty"`
	Error  *ErrorResponse    `json:"error,omitempty"`
}

// BatchAnalyzeResponse is the body returned by POST /api/v1/analyze/batch.
type BatchAnalyzeResponse struct {
	Items     []BatchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// DistancesRequest is the body of POST /api/v1/distances.
type DistancesRequest struct {
	Center string   `json:"center"`
	Texts  []string `json:"texts"`
}

// DistancesResponse is the body returned by POST /api/v1/distances.
type DistancesResponse struct {
	Distances      []uint64 `json:"distances"`
	VocabularySize int      `json:"vocabulary_size"`
}

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Breaks []float64 `json:"breaks"`
	Data   []float64 `json:"data"`
	Values []float64 `json:"values,omitempty"`
}

// ClassifyResponse is the body returned by POST /api/v1/classify.
// Indexes holds null for values outside every bin.
type ClassifyResponse struct {
	Classes []report.Bin `json:"classes"`
	Indexes []*int       `json:"indexes,omitempty"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
