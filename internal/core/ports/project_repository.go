package ports

import (
	"context"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects. Every
// mutation is a single-document write.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	// FindByID returns domain.ErrProjectNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns all projects, newest first.
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
