package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nhanstudio/portfolio-api/internal/api/metrics"
)

// Metrics records request count and latency per route template. Errors are
// handed to the HTTP error handler first so the final status is observed.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
