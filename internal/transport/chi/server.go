package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cohesion/internal/domain"
	"github.com/kailas-cloud/cohesion/internal/domain/report"
	logpkg "github.com/kailas-cloud/cohesion/internal/logger"
	analysisuc "github.com/kailas-cloud/cohesion/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/cohesion/internal/usecase/health"
)

const defaultMaxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the cohesion JSON API.
type Server struct {
	analysis      *analysisuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(analysis *analysisuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		analysis:     analysis,
		health:       health,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrBinOutOfRange, http.StatusBadRequest, ErrorCodeBinOutOfRange),
		sentinelHandler(domain.ErrInvariant, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrEmptyInput, http.StatusUnprocessableEntity, ErrorCodeEmptyInput),
	}
	return s
}

// WithMaxBodyBytes limits the size of request bodies.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.Analyze)
		r.Post("/analyze/batch", s.AnalyzeBatch)
		r.Post("/distances", s.Distances)
		r.Post("/classify", s.Classify)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// Analyze handles POST /api/v1/analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req report.Request
	if !s.decode(w, r, &req) {
		return
	}

	rep, err := s.analysis.Analyze(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("X-Report-ID", rep.ID)
	writeJSON(w, http.StatusOK, rep)
}

// AnalyzeBatch handles POST /api/v1/analyze/batch.
func (s *Server) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchAnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	results, err := s.analysis.AnalyzeBatch(r.Context(), req.Requests)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := BatchAnalyzeResponse{Items: make([]BatchResultItem, len(results))}
	for i, res := range results {
		item := BatchResultItem{Index: res.Index, Status: BatchStatusOK, Report: res.Report}
		if res.Err != nil {
			item.Status = BatchStatusError
			item.Report = nil
			item.Error = &ErrorResponse{Code: errorCode(res.Err), Message: safeDomainMessage(res.Err)}
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Items[i] = item
	}

	writeJSON(w, http.StatusOK, resp)
}

// Distances handles POST /api/v1/distances.
func (s *Server) Distances(w http.ResponseWriter, r *http.Request) {
	var req DistancesRequest
	if !s.decode(w, r, &req) {
		return
	}

	d, vocab, err := s.analysis.Distances(r.Context(), req.Center, req.Texts)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DistancesResponse{Distances: d, VocabularySize: vocab})
}

// Classify handles POST /api/v1/classify.
func (s *Server) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.analysis.Classify(r.Context(), req.Breaks, req.Data, req.Values)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := ClassifyResponse{Classes: report.FromClassification(res.Classification)}
	if res.Indexes != nil {
		resp.Indexes = make([]*int, len(res.Indexes))
		for i, idx := range res.Indexes {
			if idx >= 0 {
				resp.Indexes[i] = &idx
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	rep := s.health.Check(r.Context())

	checks := make(map[string]string, len(rep.Checks))
	for k, v := range rep.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if rep.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(rep.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorCodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns the client-facing message of err. Validation
// errors carry their detail; anything unrecognised is reported as internal.
func safeDomainMessage(err error) string {
	for _, s := range []error{
		domain.ErrInvalidRequest,
		domain.ErrBinOutOfRange,
		domain.ErrInvariant,
		domain.ErrEmptyInput,
	} {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

func errorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, domain.ErrBinOutOfRange):
		return ErrorCodeBinOutOfRange
	case errors.Is(err, domain.ErrEmptyInput):
		return ErrorCodeEmptyInput
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvariant):
		return ErrorCodeValidationFailed
	default:
		return ErrorCodeInternalError
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
