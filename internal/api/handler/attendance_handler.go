package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/service"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/response"
)

// AttendanceHandler serves the attendance grid, points, and absence-warning
// endpoints.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
	warningSvc    service.WarningService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService, warningSvc service.WarningService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc, warningSvc: warningSvc}
}

// GetGrid returns the seeded month grid for a project.
// GET /api/v1/projects/:id/attendance?year=2025&month=3
func (h *AttendanceHandler) GetGrid(c *gin.Context) {
	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "year and month query parameters required")
		return
	}

	grid, err := h.attendanceSvc.GetGrid(c.Request.Context(), c.Param("id"), req.Year, time.Month(req.Month))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			response.NotFound(c, 13001, "project not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, grid)
}

// BulkSave upserts a batch of attendance records.
// POST /api/v1/projects/:id/attendance
func (h *AttendanceHandler) BulkSave(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.BulkSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	result, err := h.attendanceSvc.BulkSave(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			response.NotFound(c, 13001, "project not found")
		case errors.Is(err, service.ErrNotTeamLead):
			response.Forbidden(c, 10003, "team lead or admin access required")
		case errors.Is(err, service.ErrInvalidDateKey):
			response.BadRequest(c, 14001, "record dates must be YYYY-MM-DD")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// MonthSummary returns per-member attendance percentages for a month.
// GET /api/v1/projects/:id/attendance/summary?year=2025&month=3
func (h *AttendanceHandler) MonthSummary(c *gin.Context) {
	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "year and month query parameters required")
		return
	}

	summary, err := h.attendanceSvc.MonthSummary(c.Request.Context(), c.Param("id"), req.Year, time.Month(req.Month))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			response.NotFound(c, 13001, "project not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}

// CheckWarnings runs the absence-warning scan for a project month.
// POST /api/v1/projects/:id/attendance/warnings?year=2025&month=3
func (h *AttendanceHandler) CheckWarnings(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "year and month query parameters required")
		return
	}

	result, err := h.warningSvc.CheckAbsences(c.Request.Context(), c.Param("id"), req.Year, time.Month(req.Month), caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			response.NotFound(c, 13001, "project not found")
		case errors.Is(err, service.ErrNotTeamLead):
			response.Forbidden(c, 10003, "team lead or admin access required")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// GetPoints reads a member's attendance point aggregate.
// GET /api/v1/attendance/points/:userID
func (h *AttendanceHandler) GetPoints(c *gin.Context) {
	points, err := h.attendanceSvc.GetPoints(c.Request.Context(), c.Param("userID"))
	if err != nil {
		if errors.Is(err, service.ErrPointsNotFound) {
			response.NotFound(c, 14002, "no points recorded for user")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, points)
}

// RepairPoints recounts and overwrites a member's point aggregate (admin only).
// POST /api/v1/attendance/points/:userID/repair
func (h *AttendanceHandler) RepairPoints(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.RepairPoints(c.Request.Context(), c.Param("userID"), caller)
	if err != nil {
		if errors.Is(err, service.ErrAdminRequired) {
			response.Forbidden(c, 10003, "admin access required")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
