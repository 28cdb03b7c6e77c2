package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/service"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/response"
)

// ChecklistHandler serves the per-member onboarding checklist endpoints.
type ChecklistHandler struct {
	checklistSvc service.ChecklistService
}

// NewChecklistHandler creates a ChecklistHandler.
func NewChecklistHandler(checklistSvc service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklistSvc: checklistSvc}
}

// AddItem adds a checklist item for a project member.
// POST /api/v1/projects/:id/checklist
func (h *ChecklistHandler) AddItem(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	item, err := h.checklistSvc.AddItem(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}

	response.Created(c, item)
}

// ListForMember lists one member's checklist in a project.
// GET /api/v1/projects/:id/checklist/:userID
func (h *ChecklistHandler) ListForMember(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	items, err := h.checklistSvc.ListForMember(c.Request.Context(), c.Param("id"), c.Param("userID"), caller)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}

	response.OK(c, items)
}

// ToggleItem flips an item's done flag.
// PUT /api/v1/checklists/:id/toggle
func (h *ChecklistHandler) ToggleItem(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	item, err := h.checklistSvc.ToggleItem(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		h.handleChecklistError(c, err)
		return
	}

	response.OK(c, item)
}

// DeleteItem removes an item.
// DELETE /api/v1/checklists/:id
func (h *ChecklistHandler) DeleteItem(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.checklistSvc.DeleteItem(c.Request.Context(), c.Param("id"), caller); err != nil {
		h.handleChecklistError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ChecklistHandler) handleChecklistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChecklistItemNotFound):
		response.NotFound(c, 17001, "checklist item not found")
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13001, "project not found")
	case errors.Is(err, service.ErrNotMember):
		response.BadRequest(c, 13004, "user is not a project member")
	case errors.Is(err, service.ErrNotTeamLead):
		response.Forbidden(c, 10003, "team lead or admin access required")
	default:
		response.InternalError(c)
	}
}
