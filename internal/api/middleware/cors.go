package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:3000",
}

// CORS allows the local frontend dev servers plus extra. Outside production
// any localhost or 127.0.0.1 origin is accepted as well.
func CORS(extra []string, production bool) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(defaultOrigins)+len(extra))
	for _, o := range append(append([]string{}, defaultOrigins...), extra...) {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := allowed[origin]; ok {
				return true
			}
			return !production && (strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1"))
		},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	})
	return echo.WrapMiddleware(c.Handler)
}
