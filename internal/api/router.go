package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/nhanstudio/portfolio-api/docs"
	"github.com/nhanstudio/portfolio-api/internal/api/handler"
	"github.com/nhanstudio/portfolio-api/internal/api/middleware"
	"github.com/nhanstudio/portfolio-api/internal/core/authz"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

const defaultBodyLimit = "50M"

// Deps carries everything the router wires into handlers.
type Deps struct {
	Logger         zerolog.Logger
	AuthService    ports.AuthService
	ProjectService ports.ProjectService
	Tokens         ports.TokenService
	// Checks feed the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check

	AllowedOrigins []string
	Production     bool
	BodyLimit      string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	bodyLimit := d.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// --- Global middleware ---
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Metrics())
	e.Use(middleware.CORS(d.AllowedOrigins, d.Production))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler(d.Checks)
	authHandler := handler.NewAuthHandler(d.AuthService)
	projectHandler := handler.NewProjectHandler(d.ProjectService)
	requireAuth := middleware.Auth(d.Tokens)

	// --- Info, probes and tooling (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/api", healthHandler.Index)
	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.PUT("/me", authHandler.UpdateProfile, requireAuth)
	auth.PUT("/password", authHandler.ChangePassword, requireAuth)

	// --- Project routes ---
	projects := e.Group("/api/projects")
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", projectHandler.Create, requireAuth, middleware.RequireAction(authz.ActionCreate))
	projects.PUT("/:id", projectHandler.Update, requireAuth)
	projects.DELETE("/:id", projectHandler.Delete, requireAuth)

	return e
}
