package ports

import (
	"context"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

// ProjectInput carries the fields for a new project. Technologies is
// already normalized by the transport layer.
type ProjectInput struct {
	Title           string
	Description     string
	Image           string
	Date            string
	Technologies    []string
	Link            string
	Images          []string
	Descriptions    []string
	ContentTimeline []domain.TimelineItem
}

// ProjectView is a project with its owner reference populated.
type ProjectView struct {
	*domain.Project
	Owner domain.UserRef
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	List(ctx context.Context) ([]ProjectView, error)
	Get(ctx context.Context, id string) (*ProjectView, error)
	Create(ctx context.Context, caller *domain.Principal, in ProjectInput) (*ProjectView, error)
	Update(ctx context.Context, caller *domain.Principal, id string, patch domain.ProjectPatch) (*ProjectView, error)
	Delete(ctx context.Context, caller *domain.Principal, id string) error
}
