package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nhanstudio/portfolio-api/internal/api/middleware"
	"github.com/nhanstudio/portfolio-api/internal/core/domain"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	meFn             func(ctx context.Context, userID string) (*domain.User, error)
	updateProfileFn  func(ctx context.Context, userID string, in ports.ProfileInput) (*domain.User, error)
	changePasswordFn func(ctx context.Context, userID, current, next string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, in)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

type stubProjectService struct {
	listFn   func(ctx context.Context) ([]ports.ProjectView, error)
	getFn    func(ctx context.Context, id string) (*ports.ProjectView, error)
	createFn func(ctx context.Context, caller *domain.Principal, in ports.ProjectInput) (*ports.ProjectView, error)
	updateFn func(ctx context.Context, caller *domain.Principal, id string, patch domain.ProjectPatch) (*ports.ProjectView, error)
	deleteFn func(ctx context.Context, caller *domain.Principal, id string) error
}

func (s *stubProjectService) List(ctx context.Context) ([]ports.ProjectView, error) {
	return s.listFn(ctx)
}

func (s *stubProjectService) Get(ctx context.Context, id string) (*ports.ProjectView, error) {
	return s.getFn(ctx, id)
}

func (s *stubProjectService) Create(ctx context.Context, caller *domain.Principal, in ports.ProjectInput) (*ports.ProjectView, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubProjectService) Update(ctx context.Context, caller *domain.Principal, id string, patch domain.ProjectPatch) (*ports.ProjectView, error) {
	return s.updateFn(ctx, caller, id, patch)
}

func (s *stubProjectService) Delete(ctx context.Context, caller *domain.Principal, id string) error {
	return s.deleteFn(ctx, caller, id)
}

// newTestEcho mirrors the router's error handling without importing it.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context. A non-nil principal simulates the
// Auth middleware having run.
func newContext(e *echo.Echo, method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		middleware.SetPrincipal(c, p)
	}
	return c, rec
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatal("service should not be called")
}
