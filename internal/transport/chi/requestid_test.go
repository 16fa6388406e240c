package chi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func TestRequestID_Echo(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chiMiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set(RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get(RequestIDHeader); got != "req-123" {
		t.Errorf("response header = %q, want req-123", got)
	}
	if seen != "req-123" {
		t.Errorf("context id = %q, want req-123", seen)
	}
}

func TestRequestID_Generated(t *testing.T) {
	h := RequestID(okHandler())

	for _, incoming := range []string{"", strings.Repeat("x", maxRequestIDLen+1)} {
		req := httptest.NewRequest("GET", "/", http.NoBody)
		if incoming != "" {
			req.Header.Set(RequestIDHeader, incoming)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		got := rr.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("expected generated uuid, got %q", got)
		}
	}
}
