package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type observedRequest struct {
	route  string
	method string
	status int
}

type requestSpy struct {
	requests []observedRequest
}

func (s *requestSpy) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	s.requests = append(s.requests, observedRequest{route: route, method: method, status: status})
}

func TestLoggerRecordsRoutePattern(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	spy := &requestSpy{}

	r := chi.NewRouter()
	r.Use(Logger(zap.New(core), spy))
	r.Get("/api/v1/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	for _, path := range []string{"/api/v1/things/42", "/boom", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	want := []observedRequest{
		{route: "/api/v1/things/{id}", method: http.MethodGet, status: http.StatusTeapot},
		{route: "/boom", method: http.MethodGet, status: http.StatusInternalServerError},
		{route: "unmatched", method: http.MethodGet, status: http.StatusNotFound},
	}
	if len(spy.requests) != len(want) {
		t.Fatalf("recorded %d requests, want %d", len(spy.requests), len(want))
	}
	for i := range want {
		if spy.requests[i] != want[i] {
			t.Errorf("request %d = %+v, want %+v", i, spy.requests[i], want[i])
		}
	}

	if logs.Len() != 3 {
		t.Fatalf("logged %d entries, want 3", logs.Len())
	}
	if entry := logs.All()[1]; entry.Level != zap.ErrorLevel {
		t.Errorf("5xx should log at error, got %s", entry.Level)
	}
}
