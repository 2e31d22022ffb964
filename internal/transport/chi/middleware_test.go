package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/kailas-cloud/cohesion/internal/logger"
)

func TestJSONRecoverer(t *testing.T) {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(zap.NewNop()))
	r.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/panic", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != ErrorCodeInternalError {
		t.Errorf("code = %q", e.Code)
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var sawLogger bool

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(zap.New(core)))
	r.Get("/x", func(w http.ResponseWriter, req *http.Request) {
		logpkg.FromContext(req.Context()).Info("inside")
		sawLogger = true
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/x", http.NoBody))

	if !sawLogger {
		t.Fatal("handler not reached")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("http_request lines = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusTeapot) {
		t.Errorf("status field = %v, want %d", got, http.StatusTeapot)
	}
	if logs.FilterMessage("inside").Len() != 1 {
		t.Error("request logger was not propagated through the context")
	}
}
