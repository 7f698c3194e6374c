package ports

import (
	"context"
	"time"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type ProfileInput struct {
	FirstName *string
	LastName  *string
	Avatar    *string
}

// SeedInput describes the out-of-band superuser account.
type SeedInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is returned by a successful login or registration.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// TokenService issues and verifies bearer credentials.
type TokenService interface {
	Issue(userID string, role domain.Role) (string, time.Time, error)
	// Verify returns domain.ErrInvalidToken for any malformed, tampered or
	// expired token.
	Verify(token string) (*domain.Principal, error)
}

// LoginThrottle tracks failed logins per account key.
type LoginThrottle interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
