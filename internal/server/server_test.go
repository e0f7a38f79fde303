package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/orthogram/orthogram/pkg/cache"
	"github.com/orthogram/orthogram/pkg/diagram"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	runner := diagram.NewRunner(cache.NewNullCache(), nil)
	return New(runner, nil, nil)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleRenderRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	body := strings.NewReader("rows:\n  - [a, b]\nconnections:\n  - start: a\n    end: b\n")
	req := httptest.NewRequest(http.MethodPost, "/v1/render?format=svg", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty SVG body")
	}
}

func TestHandleRenderInvalidDocument(t *testing.T) {
	srv := newTestServer(t)
	body := strings.NewReader("rows:\n  - [a, b]\nconnections:\n  - start: a\n    end: nonexistent\n")
	req := httptest.NewRequest(http.MethodPost, "/v1/render", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestHandleGetRenderWithoutStoreIsNotImplemented(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/renders/abc", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}
}
