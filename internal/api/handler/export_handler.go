package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/service"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler serves the file export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportMonthGrid downloads a project month as an .xlsx sheet.
// GET /api/v1/projects/:id/attendance/export?year=2025&month=3
func (h *ExportHandler) ExportMonthGrid(c *gin.Context) {
	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "year and month query parameters required")
		return
	}

	buf, filename, err := h.exportSvc.ExportMonthGrid(c.Request.Context(), c.Param("id"), req.Year, time.Month(req.Month))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, xlsxContentType, filename, buf.Bytes())
}

// ExportMeetingCalendar downloads a project's meeting schedule as an .ics file.
// GET /api/v1/projects/:id/calendar/export
func (h *ExportHandler) ExportMeetingCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportMeetingCalendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, icsContentType, filename, buf.Bytes())
}

func writeDownload(c *gin.Context, contentType, filename string, body []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentType)
	c.Data(http.StatusOK, contentType, body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13001, "project not found")
	case errors.Is(err, service.ErrExportNoMembers):
		response.BadRequest(c, 16001, "project has no members to export")
	case errors.Is(err, service.ErrExportNoSchedule):
		response.BadRequest(c, 16002, "project has no meeting schedule configured")
	default:
		response.InternalError(c)
	}
}
