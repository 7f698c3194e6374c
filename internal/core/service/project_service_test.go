package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type projectFixture struct {
	svc      *ProjectService
	projects *stubProjectRepo
	users    *stubUserRepo
	alice    *domain.Principal
	bob      *domain.Principal
	root     *domain.Principal
	admin    *domain.Principal
	customer *domain.Principal
}

func newProjectFixture() *projectFixture {
	users := newStubUserRepo()
	projects := newStubProjectRepo()
	svc := NewProjectService(projects, users, zerolog.Nop())
	n := 0
	svc.newID = func() string {
		n++
		return "item-" + string(rune('0'+n))
	}

	add := func(id, first string, role domain.Role) *domain.Principal {
		users.seed(domain.User{ID: id, FirstName: first, LastName: "Test", Email: id + "@example.com", Role: role})
		return &domain.Principal{UserID: id, Role: role}
	}

	return &projectFixture{
		svc:      svc,
		projects: projects,
		users:    users,
		alice:    add("alice", "Alice", domain.RoleUser),
		bob:      add("bob", "Bob", domain.RoleUser),
		root:     add("root", "Nhan", domain.RoleMe),
		admin:    add("admin", "Ada", domain.RoleAdmin),
		customer: add("cust", "Carl", domain.RoleCustomer),
	}
}

func validInput() ports.ProjectInput {
	return ports.ProjectInput{
		Title:        "  Portfolio  ",
		Description:  " My site ",
		Date:         " 2024-05 ",
		Image:        "cover.png",
		Technologies: []string{" Go ", "", "Mongo"},
		Link:         "https://example.com",
		Images:       []string{"a.png"},
		Descriptions: []string{"first"},
	}
}

func (f *projectFixture) create(t *testing.T, caller *domain.Principal) *ports.ProjectView {
	t.Helper()
	v, err := f.svc.Create(context.Background(), caller, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return v
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestProjectService_Create_Success(t *testing.T) {
	f := newProjectFixture()

	v := f.create(t, f.alice)

	if v.Title != "Portfolio" || v.Description != "My site" || v.Date != "2024-05" {
		t.Errorf("fields not trimmed: %+v", v.Project)
	}
	if !reflect.DeepEqual(v.Technologies, []string{"Go", "Mongo"}) {
		t.Errorf("technologies not normalized: %v", v.Technologies)
	}
	if v.CreatedBy != "alice" {
		t.Errorf("expected createdBy alice, got %q", v.CreatedBy)
	}
	if v.Owner.FirstName != "Alice" || v.Owner.Email != "alice@example.com" {
		t.Errorf("owner not populated: %+v", v.Owner)
	}
	if v.CreatedAt.IsZero() || !v.CreatedAt.Equal(v.UpdatedAt) {
		t.Errorf("unexpected timestamps: %v %v", v.CreatedAt, v.UpdatedAt)
	}
}

func TestProjectService_Create_RoleGate(t *testing.T) {
	f := newProjectFixture()

	for _, p := range []*domain.Principal{f.root, f.admin, f.alice} {
		if _, err := f.svc.Create(context.Background(), p, validInput()); err != nil {
			t.Errorf("%s should be able to create: %v", p.Role, err)
		}
	}

	if _, err := f.svc.Create(context.Background(), f.customer, validInput()); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("customer: expected ErrInsufficientRole, got %v", err)
	}
	if _, err := f.svc.Create(context.Background(), nil, validInput()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := f.svc.Create(context.Background(), &domain.Principal{UserID: "x", Role: "Guest"}, validInput()); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("unknown role: expected ErrInsufficientRole, got %v", err)
	}
}

func TestProjectService_Create_RequiredFields(t *testing.T) {
	f := newProjectFixture()

	for _, mutate := range []func(*ports.ProjectInput){
		func(in *ports.ProjectInput) { in.Title = "   " },
		func(in *ports.ProjectInput) { in.Description = "" },
		func(in *ports.ProjectInput) { in.Date = "\t" },
	} {
		in := validInput()
		mutate(&in)
		if _, err := f.svc.Create(context.Background(), f.alice, in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	}
	if len(f.projects.byID) != 0 {
		t.Fatalf("invalid input must not be persisted")
	}
}

func TestProjectService_Create_TimelineIDsAssigned(t *testing.T) {
	f := newProjectFixture()
	in := validInput()
	in.ContentTimeline = []domain.TimelineItem{
		{Kind: domain.TimelineImage, Content: "a.png"},
		{Kind: domain.TimelineDescription, Content: "text", ID: "keep"},
	}

	v, err := f.svc.Create(context.Background(), f.alice, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.ContentTimeline[0].ID == "" || v.ContentTimeline[1].ID != "keep" {
		t.Fatalf("unexpected timeline ids: %+v", v.ContentTimeline)
	}

	in.ContentTimeline = []domain.TimelineItem{{Kind: "video", Content: "x"}}
	if _, err := f.svc.Create(context.Background(), f.alice, in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad timeline kind, got %v", err)
	}
}

func TestProjectService_Create_VanishedOwner(t *testing.T) {
	f := newProjectFixture()
	ghost := &domain.Principal{UserID: "ghost", Role: domain.RoleUser}

	if _, err := f.svc.Create(context.Background(), ghost, validInput()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Read
// ---------------------------------------------------------------------------

func TestProjectService_ListPopulatesOwners(t *testing.T) {
	f := newProjectFixture()
	first := f.create(t, f.alice)
	f.projects.byID[first.ID].CreatedAt = time.Now().Add(-time.Hour)
	f.create(t, f.bob)

	views, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(views))
	}
	if views[0].Owner.FirstName != "Bob" || views[1].Owner.FirstName != "Alice" {
		t.Fatalf("expected newest first with owners, got %+v / %+v", views[0].Owner, views[1].Owner)
	}
}

func TestProjectService_Get(t *testing.T) {
	f := newProjectFixture()
	created := f.create(t, f.alice)

	v, err := f.svc.Get(context.Background(), created.ID)
	if err != nil || v.ID != created.ID {
		t.Fatalf("get: %+v, %v", v, err)
	}
	if _, err := f.svc.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProjectService_Get_OwnerMissingDegradesToID(t *testing.T) {
	f := newProjectFixture()
	created := f.create(t, f.alice)
	delete(f.users.byID, "alice")

	v, err := f.svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v.Owner != (domain.UserRef{ID: "alice"}) {
		t.Fatalf("expected bare reference, got %+v", v.Owner)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestProjectService_Update_PartialLeavesOtherFields(t *testing.T) {
	f := newProjectFixture()
	created := f.create(t, f.alice)
	before := *f.projects.byID[created.ID]

	v, err := f.svc.Update(context.Background(), f.alice, created.ID, domain.ProjectPatch{Title: strPtr("New")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	want := before
	want.Title = "New"
	if !reflect.DeepEqual(*v.Project, want) {
		t.Fatalf("partial update changed other fields:\n got %+v\nwant %+v", *v.Project, want)
	}
}

func TestProjectService_Update_Normalizes(t *testing.T) {
	f := newProjectFixture()
	created := f.create(t, f.alice)

	techs := []string{" Echo ", " "}
	v, err := f.svc.Update(context.Background(), f.alice, created.ID, domain.ProjectPatch{
		Description:  strPtr("  updated  "),
		Technologies: &techs,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if v.Description != "updated" || !reflect.DeepEqual(v.Technologies, []string{"Echo"}) {
		t.Fatalf("patch not normalized: %+v", v.Project)
	}

	if _, err := f.svc.Update(context.Background(), f.alice, created.ID, domain.ProjectPatch{Title: strPtr("  ")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank title, got %v", err)
	}
}

func TestProjectService_Update_EmptyPatchDoesNotWrite(t *testing.T) {
	f := newProjectFixture()
	created := f.create(t, f.alice)

	if _, err := f.svc.Update(context.Background(), f.alice, created.ID, domain.ProjectPatch{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if f.projects.updates != 0 {
		t.Fatalf("expected no write, got %d", f.projects.updates)
	}
}

func TestProjectService_Update_Authorization(t *testing.T) {
	f := newProjectFixture()
	created := f.create(t, f.alice)
	patch := domain.ProjectPatch{Link: strPtr("https://new.example.com")}

	cases := []struct {
		name   string
		caller *domain.Principal
		want   error
	}{
		{"owner", f.alice, nil},
		{"other user", f.bob, domain.ErrNotOwner},
		{"customer", f.customer, domain.ErrInsufficientRole},
		{"admin", f.admin, nil},
		{"me", f.root, nil},
		{"anonymous", nil, domain.ErrUnauthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Update(context.Background(), tc.caller, created.ID, patch)
			if tc.want == nil && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProjectService_Update_NotFoundBeforeAuthorization(t *testing.T) {
	f := newProjectFixture()

	_, err := f.svc.Update(context.Background(), f.customer, "missing", domain.ProjectPatch{Title: strPtr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found before policy check, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestProjectService_Delete_Scenarios(t *testing.T) {
	f := newProjectFixture()
	created := f.create(t, f.alice)

	if err := f.svc.Delete(context.Background(), f.bob, created.ID); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("bob: expected ErrNotOwner, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), f.customer, created.ID); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("customer: expected ErrInsufficientRole, got %v", err)
	}
	if f.projects.deletes != 0 {
		t.Fatalf("denied deletes must not reach the store")
	}

	if err := f.svc.Delete(context.Background(), f.root, created.ID); err != nil {
		t.Fatalf("me: expected success, got %v", err)
	}
	if _, ok := f.projects.byID[created.ID]; ok {
		t.Fatal("project should be removed")
	}
	if err := f.svc.Delete(context.Background(), f.root, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestProjectService_Delete_OwnerAllowed(t *testing.T) {
	f := newProjectFixture()
	created := f.create(t, f.bob)

	if err := f.svc.Delete(context.Background(), f.bob, created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
