package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	serviceName    = "Portfolio Backend API"
	serviceVersion = "1.0.0"
	readyTimeout   = 3 * time.Second
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// HealthHandler serves the liveness, readiness and informational endpoints.
type HealthHandler struct {
	checks map[string]Check
}

// NewHealthHandler registers the named readiness checks. Nil checks are
// skipped, which is how optional dependencies stay out of readiness.
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	h := &HealthHandler{checks: make(map[string]Check, len(checks))}
	for name, check := range checks {
		if check != nil {
			h.checks[name] = check
		}
	}
	return h
}

type livenessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness confirms the process is serving.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  livenessResponse
// @Router       /api/health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, livenessResponse{Status: "OK", Message: "Server is running"})
}

// Readiness pings every registered dependency.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /api/health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, readinessResponse{Status: "degraded", Dependencies: deps})
	}
	return c.JSON(http.StatusOK, readinessResponse{Status: "ok", Dependencies: deps})
}

// Root describes the service.
//
// @Summary      Service banner
// @Tags         info
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":       serviceName,
		"version":       serviceVersion,
		"status":        "running",
		"documentation": "/api",
		"endpoints": map[string]string{
			"api":      "/api",
			"health":   "/api/health",
			"auth":     "/api/auth",
			"projects": "/api/projects",
			"docs":     "/swagger/index.html",
		},
	})
}

// Index lists the registered API routes.
//
// @Summary      Endpoint index
// @Tags         info
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api [get]
func (h *HealthHandler) Index(c echo.Context) error {
	var routes []string
	for _, r := range c.Echo().Routes() {
		if strings.HasPrefix(r.Path, "/api") {
			routes = append(routes, r.Method+" "+r.Path)
		}
	}
	sort.Strings(routes)

	return c.JSON(http.StatusOK, map[string]any{
		"message":   serviceName,
		"version":   serviceVersion,
		"endpoints": routes,
	})
}
