package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	h := NewHealthHandler(nil)

	c, rec := newContext(e, http.MethodGet, "/api/health", "", nil)
	if err := h.Liveness(c); err != nil {
		t.Fatal(err)
	}

	var resp livenessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if rec.Code != http.StatusOK || resp.Status != "OK" || resp.Message != "Server is running" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks map[string]Check
		want   int
	}{
		{"all up", map[string]Check{"mongodb": ok, "redis": ok}, http.StatusOK},
		{"optional skipped", map[string]Check{"mongodb": ok, "redis": nil}, http.StatusOK},
		{"mongo down", map[string]Check{"mongodb": down}, http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewHealthHandler(tc.checks)
			c, rec := newContext(e, http.MethodGet, "/api/health/ready", "", nil)
			if err := h.Readiness(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}

			var resp readinessResponse
			_ = json.Unmarshal(rec.Body.Bytes(), &resp)
			if _, listed := resp.Dependencies["redis"]; listed && tc.checks["redis"] == nil {
				t.Fatal("nil check must not be reported")
			}
		})
	}
}
