package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

const principalKey = "principal"

// Auth verifies the bearer token and stores the caller's principal in the
// context. A missing or malformed header is ErrUnauthenticated; a token that
// fails verification is ErrInvalidToken.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrUnauthenticated
			}

			principal, err := tokens.Verify(raw)
			if err != nil {
				return domain.ErrInvalidToken
			}

			SetPrincipal(c, principal)
			return next(c)
		}
	}
}

// SetPrincipal attaches the authenticated caller to c.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the caller stored by Auth, if any.
func PrincipalFrom(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(principalKey).(*domain.Principal)
	return p, ok && p != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
