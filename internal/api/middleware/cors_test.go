package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func corsServer(extra []string, production bool) *echo.Echo {
	e := echo.New()
	e.Use(CORS(extra, production))
	e.GET("/api/projects", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func getWithOrigin(e *echo.Echo, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", origin)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCORS_AllowList(t *testing.T) {
	e := corsServer([]string{"https://portfolio.example.com"}, true)

	for _, origin := range []string{"http://localhost:5173", "https://portfolio.example.com"} {
		rec := getWithOrigin(e, origin)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q", origin, got)
		}
		if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Errorf("origin %s: credentials not allowed", origin)
		}
	}
}

func TestCORS_ProductionRejectsUnknownLocalhost(t *testing.T) {
	rec := getWithOrigin(corsServer(nil, true), "http://localhost:9999")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header, got %q", got)
	}
}

func TestCORS_DevelopmentAllowsAnyLocalhost(t *testing.T) {
	e := corsServer(nil, false)
	for _, origin := range []string{"http://localhost:9999", "http://127.0.0.1:8080"} {
		rec := getWithOrigin(e, origin)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q", origin, got)
		}
	}
	if got := getWithOrigin(e, "https://evil.example.com").Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	e := corsServer(nil, true)
	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("missing allow-origin on preflight: %v", rec.Header())
	}
}
