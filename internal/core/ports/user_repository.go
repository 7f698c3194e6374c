package ports

import (
	"context"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID. A duplicate
	// email yields domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, profile ProfileUpdate) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// ProfileUpdate carries the mutable, non-credential user fields. Nil means
// unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Avatar    *string
}
