package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhanstudio/portfolio-api/internal/core/authz"
	"github.com/nhanstudio/portfolio-api/internal/core/domain"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

// ProjectService implements project CRUD with the authorization policy
// applied to every mutation.
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	logger   zerolog.Logger
	newID    func() string
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

func (s *ProjectService) List(ctx context.Context) ([]ports.ProjectView, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	ids := make([]string, 0, len(projects))
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.CreatedBy]; ok {
			continue
		}
		seen[p.CreatedBy] = struct{}{}
		ids = append(ids, p.CreatedBy)
	}

	owners := make(map[string]domain.UserRef, len(ids))
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list projects: populate owners: %w", err)
		}
		for _, u := range users {
			owners[u.ID] = u.Ref()
		}
	}

	views := make([]ports.ProjectView, len(projects))
	for i, p := range projects {
		owner, ok := owners[p.CreatedBy]
		if !ok {
			owner = domain.UserRef{ID: p.CreatedBy}
		}
		views[i] = ports.ProjectView{Project: p, Owner: owner}
	}
	return views, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*ports.ProjectView, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, p)
}

func (s *ProjectService) Create(ctx context.Context, caller *domain.Principal, in ports.ProjectInput) (*ports.ProjectView, error) {
	if err := authz.Authorize(caller, authz.ActionCreate, false).Err(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	date := strings.TrimSpace(in.Date)
	if title == "" || description == "" || date == "" {
		return nil, domain.NewValidationError("", "Title, description, and date are required")
	}

	timeline, err := s.prepareTimeline(in.ContentTimeline)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("create project: load owner: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.projects.Create(ctx, &domain.Project{
		Title:           title,
		Description:     description,
		Image:           strings.TrimSpace(in.Image),
		Date:            date,
		Technologies:    domain.CleanList(in.Technologies),
		Link:            strings.TrimSpace(in.Link),
		Images:          nonNil(in.Images),
		Descriptions:    nonNil(in.Descriptions),
		ContentTimeline: timeline,
		CreatedBy:       owner.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info().Str("project_id", created.ID).Str("user_id", owner.ID).Msg("project created")
	return &ports.ProjectView{Project: created, Owner: owner.Ref()}, nil
}

// Update applies patch after the policy allows it. The existence check runs
// first, so an unknown id is reported as not found regardless of the caller.
func (s *ProjectService) Update(ctx context.Context, caller *domain.Principal, id string, patch domain.ProjectPatch) (*ports.ProjectView, error) {
	current, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(caller, authz.ActionUpdate, current); err != nil {
		return nil, err
	}

	patch, err = s.normalizePatch(patch)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.view(ctx, current)
	}

	updated, err := s.projects.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", id).Str("user_id", caller.UserID).Msg("project updated")
	return s.view(ctx, updated)
}

func (s *ProjectService) Delete(ctx context.Context, caller *domain.Principal, id string) error {
	current, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(caller, authz.ActionDelete, current); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("project_id", id).Str("user_id", caller.UserID).Msg("project deleted")
	return nil
}

func (s *ProjectService) authorize(caller *domain.Principal, action authz.Action, p *domain.Project) error {
	isOwner := caller != nil && p.OwnedBy(caller.UserID)
	decision := authz.Authorize(caller, action, isOwner)
	if !decision.Allowed {
		ev := s.logger.Debug().Str("project_id", p.ID).Str("action", string(action)).Str("reason", string(decision.Reason))
		if caller != nil {
			ev = ev.Str("user_id", caller.UserID).Str("role", string(caller.Role))
		}
		ev.Msg("project access denied")
	}
	return decision.Err()
}

func (s *ProjectService) normalizePatch(p domain.ProjectPatch) (domain.ProjectPatch, error) {
	for _, f := range []struct {
		name string
		val  **string
	}{
		{"title", &p.Title},
		{"description", &p.Description},
		{"date", &p.Date},
	} {
		if *f.val == nil {
			continue
		}
		v := strings.TrimSpace(**f.val)
		if v == "" {
			return p, domain.NewValidationError(f.name, "cannot be empty")
		}
		*f.val = &v
	}

	if p.Technologies != nil {
		techs := domain.CleanList(*p.Technologies)
		p.Technologies = &techs
	}
	if p.ContentTimeline != nil {
		timeline, err := s.prepareTimeline(*p.ContentTimeline)
		if err != nil {
			return p, err
		}
		p.ContentTimeline = &timeline
	}
	return p, nil
}

// prepareTimeline validates entries and assigns ids to those without one.
func (s *ProjectService) prepareTimeline(items []domain.TimelineItem) ([]domain.TimelineItem, error) {
	if err := domain.ValidateTimeline(items); err != nil {
		return nil, err
	}
	out := make([]domain.TimelineItem, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			item.ID = s.newID()
		}
		out[i] = item
	}
	return out, nil
}

func (s *ProjectService) view(ctx context.Context, p *domain.Project) (*ports.ProjectView, error) {
	owner := domain.UserRef{ID: p.CreatedBy}
	u, err := s.users.FindByID(ctx, p.CreatedBy)
	switch {
	case err == nil:
		owner = u.Ref()
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("populate owner: %w", err)
	}
	return &ports.ProjectView{Project: p, Owner: owner}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
