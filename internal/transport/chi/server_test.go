package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/cohesion/internal/domain/report"
	analysisuc "github.com/kailas-cloud/cohesion/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/cohesion/internal/usecase/health"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestRouter(t *testing.T, health *healthuc.Service) http.Handler {
	t.Helper()
	if health == nil {
		health = healthuc.New()
	}
	svc := analysisuc.New(nil, analysisuc.Config{MaxTexts: 10, MaxBatchSize: 3}, nil)
	r := chi.NewRouter()
	NewServer(svc, health, nil).WithMaxBodyBytes(4096).Register(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&e); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return e
}

func TestAnalyze_OK(t *testing.T) {
	h := newTestRouter(t, nil)
	rr := do(t, h, "POST", "/api/v1/analyze", `{"center":"ab","texts":["ab","ac","xy"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Report-ID") == "" {
		t.Error("expected X-Report-ID header")
	}

	var rep report.Report
	if err := json.NewDecoder(rr.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rep.Distances) != 3 || rep.Distances[2] != 4 {
		t.Errorf("distances = %v, want [0 2 4]", rep.Distances)
	}
	if rep.Partition == nil || rep.Partition.Bins != 3 {
		t.Errorf("partition = %+v, want 3 bins", rep.Partition)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	h := newTestRouter(t, nil)
	tests := []struct {
		name   string
		body   string
		status int
		code   ErrorCode
	}{
		{"malformed", `{"center":`, http.StatusBadRequest, ErrorCodeBadRequest},
		{"unknown field", `{"centre":"ab","texts":["a"]}`, http.StatusBadRequest, ErrorCodeBadRequest},
		{"blank center", `{"center":"","texts":["a"]}`, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"no texts", `{"center":"ab","texts":[]}`, http.StatusUnprocessableEntity, ErrorCodeEmptyInput},
		{"negative bins", `{"center":"ab","texts":["a"],"max_bins":-1}`, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"too large", `{"center":"` + strings.Repeat("a", 5000) + `","texts":["a"]}`,
			http.StatusRequestEntityTooLarge, ErrorCodeBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, "POST", "/api/v1/analyze", tc.body)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tc.status, rr.Body.String())
			}
			if e := decodeError(t, rr); e.Code != tc.code {
				t.Errorf("code = %q, want %q", e.Code, tc.code)
			}
		})
	}
}

func TestAnalyzeBatch(t *testing.T) {
	h := newTestRouter(t, nil)
	body := `{"requests":[{"center":"ab","texts":["ab"]},{"center":"ab","texts":[]}]}`
	rr := do(t, h, "POST", "/api/v1/analyze/batch", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp BatchAnalyzeResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Errorf("succeeded=%d failed=%d, want 1/1", resp.Succeeded, resp.Failed)
	}
	if resp.Items[0].Status != BatchStatusOK || resp.Items[0].Report == nil {
		t.Errorf("item 0 = %+v", resp.Items[0])
	}
	if resp.Items[1].Status != BatchStatusError || resp.Items[1].Error.Code != ErrorCodeEmptyInput {
		t.Errorf("item 1 = %+v", resp.Items[1])
	}
}

func TestAnalyzeBatch_TooLarge(t *testing.T) {
	h := newTestRouter(t, nil)
	item := `{"center":"a","texts":["a"]}`
	body := `{"requests":[` + strings.Repeat(item+",", 3) + item + `]}`
	rr := do(t, h, "POST", "/api/v1/analyze/batch", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestDistances(t *testing.T) {
	h := newTestRouter(t, nil)
	rr := do(t, h, "POST", "/api/v1/distances", `{"center":"ab","texts":["xy","ab"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp DistancesResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Distances) != 2 || resp.Distances[0] != 0 || resp.Distances[1] != 4 || resp.VocabularySize != 4 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClassify(t *testing.T) {
	h := newTestRouter(t, nil)
	rr := do(t, h, "POST", "/api/v1/classify", `{"breaks":[2,5],"data":[1,2,4,5,7,8],"values":[8,0]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp ClassifyResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []report.Bin{{Start: 1, End: 2, Count: 1}, {Start: 2, End: 5, Count: 2}, {Start: 5, End: 8, Count: 3}}
	for i := range want {
		if resp.Classes[i] != want[i] {
			t.Errorf("class %d = %+v, want %+v", i, resp.Classes[i], want[i])
		}
	}
	if len(resp.Indexes) != 2 || resp.Indexes[0] == nil || *resp.Indexes[0] != 2 || resp.Indexes[1] != nil {
		t.Errorf("indexes = %v, want [2 null]", resp.Indexes)
	}
}

func TestClassify_EmptyData(t *testing.T) {
	h := newTestRouter(t, nil)
	rr := do(t, h, "POST", "/api/v1/classify", `{"breaks":[],"data":[]}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"cache down", errors.New("down"), http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(t, healthuc.New().With("cache", &mockPinger{err: tc.err}))
			rr := do(t, h, "GET", "/health", "")
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tc.want {
				t.Errorf("status = %q, want %q", resp.Status, tc.want)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, nil)
	rr := do(t, h, "GET", "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("go_goroutines")) {
		t.Error("expected default Go collectors in metrics output")
	}
}

func TestNotFound(t *testing.T) {
	h := newTestRouter(t, nil)
	rr := do(t, h, "GET", "/api/v1/nope", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != ErrorCodeBadRequest {
		t.Errorf("code = %q", e.Code)
	}
}

func TestErrorCode(t *testing.T) {
	if got := errorCode(errors.New("boom")); got != ErrorCodeInternalError {
		t.Errorf("errorCode = %q, want %q", got, ErrorCodeInternalError)
	}
	if got := safeDomainMessage(errors.New("secret detail")); got != "internal error" {
		t.Errorf("safeDomainMessage leaked %q", got)
	}
}
