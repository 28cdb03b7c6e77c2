package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
)

// Caller is the authorization capability resolved once per request by the
// auth middleware and passed down to every operation. Services never look up
// the caller's role again.
type Caller struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// shared authorization errors
var (
	ErrAdminRequired = errors.New("admin access required")
	ErrNotTeamLead   = errors.New("only the team lead or an admin may perform this action")
)

// requireProjectLead checks that the caller is the project's team lead or an
// admin. Returns the project so callers avoid a second lookup.
func requireProjectLead(ctx context.Context, repo *repository.Repository, caller Caller, projectID string) (*model.Project, error) {
	project, err := repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if caller.IsAdmin() {
		return project, nil
	}
	if project.TeamLeadID != nil && *project.TeamLeadID == caller.UserID {
		return project, nil
	}
	return nil, ErrNotTeamLead
}
