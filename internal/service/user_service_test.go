package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
)

func setupTestUserService() (UserService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())
	return svc, repo
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestUserService_List_FilterByRole(t *testing.T) {
	svc, repo := setupTestUserService()
	seedTestUser(repo, "uid-1", "a@test.dev", "password123", model.RoleMember)
	seedTestUser(repo, "uid-2", "b@test.dev", "password123", model.RoleLead)

	req := &dto.UserListRequest{Role: model.RoleLead}
	req.Page = 1
	req.PageSize = 20

	users, total, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if total != 1 {
		t.Errorf("expected total=1, got %d", total)
	}
	if len(users) == 1 && users[0].Role != model.RoleLead {
		t.Errorf("expected role=lead, got %s", users[0].Role)
	}
}

func TestUserService_UpdateProfile_Self(t *testing.T) {
	svc, repo := setupTestUserService()
	seedTestUser(repo, "uid-1", "a@test.dev", "password123", model.RoleMember)

	name := "New Name"
	stacks := []string{"go", "postgres"}
	resp, err := svc.UpdateProfile(context.Background(), "uid-1", &dto.UpdateProfileRequest{
		Name:   &name,
		Stacks: &stacks,
	}, Caller{UserID: "uid-1", Role: model.RoleMember})
	if err != nil {
		t.Fatalf("UpdateProfile should succeed: %v", err)
	}
	if resp.Name != "New Name" {
		t.Errorf("expected updated name, got %s", resp.Name)
	}
	if len(resp.TechStacks) != 2 {
		t.Errorf("expected 2 tech stacks, got %d", len(resp.TechStacks))
	}
}

func TestUserService_UpdateProfile_OthersForbidden(t *testing.T) {
	svc, repo := setupTestUserService()
	seedTestUser(repo, "uid-1", "a@test.dev", "password123", model.RoleMember)
	seedTestUser(repo, "uid-2", "b@test.dev", "password123", model.RoleMember)

	name := "Hijacked"
	_, err := svc.UpdateProfile(context.Background(), "uid-1", &dto.UpdateProfileRequest{
		Name: &name,
	}, Caller{UserID: "uid-2", Role: model.RoleMember})
	if !errors.Is(err, ErrAdminRequired) {
		t.Errorf("expected ErrAdminRequired, got: %v", err)
	}
}

func TestUserService_UpdateProfile_DuplicateEmail(t *testing.T) {
	svc, repo := setupTestUserService()
	seedTestUser(repo, "uid-1", "a@test.dev", "password123", model.RoleMember)
	seedTestUser(repo, "uid-2", "b@test.dev", "password123", model.RoleMember)

	email := "b@test.dev"
	_, err := svc.UpdateProfile(context.Background(), "uid-1", &dto.UpdateProfileRequest{
		Email: &email,
	}, Caller{UserID: "uid-1", Role: model.RoleMember})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestUserService_AssignRole_AdminOnly(t *testing.T) {
	svc, repo := setupTestUserService()
	seedTestUser(repo, "uid-1", "a@test.dev", "password123", model.RoleMember)

	_, err := svc.AssignRole(context.Background(), "uid-1", &dto.AssignRoleRequest{Role: model.RoleLead},
		Caller{UserID: "uid-1", Role: model.RoleLead})
	if !errors.Is(err, ErrAdminRequired) {
		t.Errorf("expected ErrAdminRequired, got: %v", err)
	}

	resp, err := svc.AssignRole(context.Background(), "uid-1", &dto.AssignRoleRequest{Role: model.RoleLead},
		Caller{UserID: "admin-1", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("admin AssignRole should succeed: %v", err)
	}
	if resp.Role != model.RoleLead {
		t.Errorf("expected role=lead, got %s", resp.Role)
	}
}
