package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
)

// ── project module errors ──

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectNameExists = errors.New("project name already exists")
	ErrAlreadyMember     = errors.New("user is already a project member")
	ErrNotMember         = errors.New("user is not a project member")
	ErrInvalidTimeOfDay  = errors.New("invalid meeting time: must be HH:MM")
)

// ProjectService is the project business interface.
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest, caller Caller) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error)
	List(ctx context.Context, req *dto.ProjectListRequest) ([]dto.ProjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, caller Caller) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
	ListMembers(ctx context.Context, id string) ([]dto.ProjectMemberResponse, error)
	AddMembers(ctx context.Context, id string, req *dto.AddMembersRequest, caller Caller) error
	RemoveMember(ctx context.Context, id, userID string, caller Caller) error
	// UpdateMeetingSchedule replaces the project's meeting schedule and
	// notifies every member. Notification failures do not fail the update.
	UpdateMeetingSchedule(ctx context.Context, id string, req *dto.UpdateMeetingScheduleRequest, caller Caller) (*dto.ProjectResponse, error)
}

type projectService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, notifier: notifier, logger: logger}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest, caller Caller) (*dto.ProjectResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminRequired
	}

	existing, err := s.repo.Project.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup project failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrProjectNameExists
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.TeamLeadID != "" {
		project.TeamLeadID = &req.TeamLeadID
	}

	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.logger.Error("create project failed", zap.Error(err))
		return nil, err
	}

	return s.toProjectResponse(ctx, project), nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("lookup project failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toProjectResponse(ctx, project), nil
}

func (s *projectService) List(ctx context.Context, req *dto.ProjectListRequest) ([]dto.ProjectResponse, error) {
	projects, err := s.repo.Project.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("list projects failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, *s.toProjectResponse(ctx, &projects[i]))
	}
	return result, nil
}

func (s *projectService) Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, caller Caller) (*dto.ProjectResponse, error) {
	project, err := requireProjectLead(ctx, s.repo, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != project.Name {
		existing, err := s.repo.Project.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrProjectNameExists
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.TeamLeadID != nil {
		// only admins may reassign the lead
		if !caller.IsAdmin() {
			return nil, ErrAdminRequired
		}
		project.TeamLeadID = req.TeamLeadID
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("update project failed", zap.Error(err))
		return nil, err
	}

	return s.toProjectResponse(ctx, project), nil
}

func (s *projectService) Delete(ctx context.Context, id string, caller Caller) error {
	if !caller.IsAdmin() {
		return ErrAdminRequired
	}
	if _, err := s.repo.Project.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return s.repo.Project.Delete(ctx, id)
}

func (s *projectService) ListMembers(ctx context.Context, id string) ([]dto.ProjectMemberResponse, error) {
	if _, err := s.repo.Project.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	members, err := s.repo.Project.ListMembers(ctx, id)
	if err != nil {
		s.logger.Error("list members failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProjectMemberResponse, 0, len(members))
	for _, m := range members {
		resp := dto.ProjectMemberResponse{
			UserID:   m.UserID,
			JoinedAt: m.JoinedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if m.User != nil {
			resp.Name = m.User.Name
			resp.Email = m.User.Email
			resp.Role = m.User.Role
			resp.TechStacks = m.User.TechStacks
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *projectService) AddMembers(ctx context.Context, id string, req *dto.AddMembersRequest, caller Caller) error {
	if _, err := requireProjectLead(ctx, s.repo, caller, id); err != nil {
		return err
	}

	for _, userID := range req.UserIDs {
		if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		isMember, err := s.repo.Project.IsMember(ctx, id, userID)
		if err != nil {
			return err
		}
		if isMember {
			return ErrAlreadyMember
		}
		if err := s.repo.Project.AddMember(ctx, &model.ProjectMember{ProjectID: id, UserID: userID}); err != nil {
			s.logger.Error("add member failed", zap.String("user_id", userID), zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *projectService) RemoveMember(ctx context.Context, id, userID string, caller Caller) error {
	if _, err := requireProjectLead(ctx, s.repo, caller, id); err != nil {
		return err
	}

	isMember, err := s.repo.Project.IsMember(ctx, id, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}
	return s.repo.Project.RemoveMember(ctx, id, userID)
}

func (s *projectService) UpdateMeetingSchedule(ctx context.Context, id string, req *dto.UpdateMeetingScheduleRequest, caller Caller) (*dto.ProjectResponse, error) {
	project, err := requireProjectLead(ctx, s.repo, caller, id)
	if err != nil {
		return nil, err
	}

	if !validTimeOfDay(req.Time) {
		return nil, ErrInvalidTimeOfDay
	}

	days := make([]string, len(req.Days))
	for i, d := range req.Days {
		days[i] = strings.ToLower(d)
	}
	project.MeetingSchedule = &model.MeetingSchedule{Days: days, Time: req.Time}
	project.MeetingBased = true

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("update meeting schedule failed", zap.Error(err))
		return nil, err
	}

	// notify members in parallel; each send is independently fire-and-forget
	members, err := s.repo.Project.ListMembers(ctx, id)
	if err != nil {
		s.logger.Warn("list members for schedule notification failed", zap.Error(err))
	} else {
		title := "Meeting schedule updated"
		content := fmt.Sprintf("The meeting schedule for %s is now %s at %s.",
			project.Name, strings.Join(days, ", "), req.Time)
		var wg sync.WaitGroup
		for _, m := range members {
			wg.Add(1)
			go func(userID string) {
				defer wg.Done()
				_ = s.notifier.Notify(ctx, userID, model.NotificationScheduleChanged, title, content,
					map[string]interface{}{"project_id": id})
			}(m.UserID)
		}
		wg.Wait()
	}

	return s.toProjectResponse(ctx, project), nil
}

func validTimeOfDay(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	for _, c := range []byte{s[0], s[1], s[3], s[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return h <= 23 && m <= 59
}

func (s *projectService) toProjectResponse(ctx context.Context, project *model.Project) *dto.ProjectResponse {
	count, err := s.repo.Project.CountMembers(ctx, project.ProjectID)
	if err != nil {
		s.logger.Warn("count members failed, defaulting to 0", zap.Error(err))
		count = 0
	}

	resp := &dto.ProjectResponse{
		ID:           project.ProjectID,
		Name:         project.Name,
		Description:  project.Description,
		MeetingBased: project.MeetingBased,
		IsActive:     project.IsActive,
		MemberCount:  count,
		CreatedAt:    project.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    project.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if project.TeamLeadID != nil {
		resp.TeamLeadID = *project.TeamLeadID
	}
	if project.TeamLead != nil {
		resp.TeamLeadName = project.TeamLead.Name
	}
	if project.MeetingSchedule != nil {
		resp.MeetingSchedule = &dto.MeetingScheduleResponse{
			Days: project.MeetingSchedule.Days,
			Time: project.MeetingSchedule.Time,
		}
	}
	return resp
}
