package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/service"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/response"
)

// ProjectHandler serves the project endpoints.
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// Create creates a project (admin only).
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminRequired):
			response.Forbidden(c, 10003, "admin access required")
		case errors.Is(err, service.ErrProjectNameExists):
			response.Error(c, http.StatusConflict, 13002, "project name already exists")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "team lead not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, project)
}

// Get returns one project.
// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			response.NotFound(c, 13001, "project not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, project)
}

// List lists projects.
// GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req dto.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	projects, err := h.projectSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, projects)
}

// Update updates project fields.
// PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// Delete removes a project (admin only).
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListMembers lists a project's members.
// GET /api/v1/projects/:id/members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	members, err := h.projectSvc.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			response.NotFound(c, 13001, "project not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, members)
}

// AddMembers adds users to a project.
// POST /api/v1/projects/:id/members
func (h *ProjectHandler) AddMembers(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.projectSvc.AddMembers(c.Request.Context(), c.Param("id"), &req, caller); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyMember):
			response.Error(c, http.StatusConflict, 13003, "user is already a project member")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "user not found")
		default:
			h.handleProjectError(c, err)
		}
		return
	}

	response.OK(c, nil)
}

// RemoveMember removes one user from a project.
// DELETE /api/v1/projects/:id/members/:userID
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	err := h.projectSvc.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userID"), caller)
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			response.NotFound(c, 13004, "user is not a project member")
			return
		}
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// UpdateMeetingSchedule replaces the project's weekly meeting schedule.
// PUT /api/v1/projects/:id/meeting-schedule
func (h *ProjectHandler) UpdateMeetingSchedule(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateMeetingScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	project, err := h.projectSvc.UpdateMeetingSchedule(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeOfDay) {
			response.BadRequest(c, 13005, "meeting time must be HH:MM")
			return
		}
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

func (h *ProjectHandler) handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13001, "project not found")
	case errors.Is(err, service.ErrAdminRequired):
		response.Forbidden(c, 10003, "admin access required")
	case errors.Is(err, service.ErrNotTeamLead):
		response.Forbidden(c, 10003, "team lead or admin access required")
	case errors.Is(err, service.ErrProjectNameExists):
		response.Error(c, http.StatusConflict, 13002, "project name already exists")
	default:
		response.InternalError(c)
	}
}
