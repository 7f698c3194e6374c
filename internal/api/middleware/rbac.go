package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/nhanstudio/portfolio-api/internal/api/metrics"
	"github.com/nhanstudio/portfolio-api/internal/core/authz"
)

// RequireAction gates a route on an action that does not depend on a
// specific resource, such as create. Must run after Auth.
func RequireAction(action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, _ := PrincipalFrom(c)
			err := authz.Authorize(p, action, false).Err()
			if err != nil {
				metrics.ObserveAuthz(string(action), err)
				return err
			}
			return next(c)
		}
	}
}
