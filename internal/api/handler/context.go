package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nhanstudio/portfolio-api/internal/api/middleware"
	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

// principal returns the caller verified by the Auth middleware. Routes that
// reach a handler without one are misconfigured; treat them as anonymous.
func principal(c echo.Context) (*domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}
