package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	seq     int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd ports.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) seed(u domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := u
	r.byID[u.ID] = &stored
	return cloneUser(&stored)
}

type stubProjectRepo struct {
	byID      map[string]*domain.Project
	seq       int
	updates   int
	deletes   int
	createErr error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	clone := *p
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	stored := cloneProject(p)
	stored.ID = fmt.Sprintf("proj-%d", r.seq)
	r.byID[stored.ID] = stored
	return cloneProject(stored), nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	r.updates++
	patch.Apply(p)
	return cloneProject(p), nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProjectNotFound
	}
	r.deletes++
	delete(r.byID, id)
	return nil
}

type stubThrottle struct {
	blocked  bool
	failures map[string]int
	resets   int
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) Blocked(_ context.Context, _ string) (bool, error) { return t.blocked, nil }

func (t *stubThrottle) RecordFailure(_ context.Context, key string) error {
	t.failures[key]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	delete(t.failures, key)
	t.resets++
	return nil
}
