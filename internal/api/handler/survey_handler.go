package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/service"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/response"
)

// SurveyHandler serves the survey endpoints.
type SurveyHandler struct {
	surveySvc service.SurveyService
}

// NewSurveyHandler creates a SurveyHandler.
func NewSurveyHandler(surveySvc service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// Create creates a survey with its questions (admin only).
// POST /api/v1/surveys
func (h *SurveyHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	survey, err := h.surveySvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		if errors.Is(err, service.ErrAdminRequired) {
			response.Forbidden(c, 10003, "admin access required")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, survey)
}

// Get returns one survey with its questions.
// GET /api/v1/surveys/:id
func (h *SurveyHandler) Get(c *gin.Context) {
	survey, err := h.surveySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			response.NotFound(c, 19001, "survey not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, survey)
}

// ListPending returns active surveys the caller has neither answered nor
// dismissed.
// GET /api/v1/surveys/pending
func (h *SurveyHandler) ListPending(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	surveys, err := h.surveySvc.ListPending(c.Request.Context(), caller)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, surveys)
}

// Submit records the caller's answers.
// POST /api/v1/surveys/:id/responses
func (h *SurveyHandler) Submit(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.surveySvc.Submit(c.Request.Context(), c.Param("id"), &req, caller); err != nil {
		switch {
		case errors.Is(err, service.ErrSurveyNotFound):
			response.NotFound(c, 19001, "survey not found")
		case errors.Is(err, service.ErrSurveyClosed):
			response.BadRequest(c, 19002, "survey is closed")
		case errors.Is(err, service.ErrAlreadyResponded):
			response.Error(c, http.StatusConflict, 19003, "survey already answered")
		case errors.Is(err, service.ErrUnknownQuestion):
			response.BadRequest(c, 19004, "answer references unknown question")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Dismiss hides a survey prompt for the caller.
// POST /api/v1/surveys/:id/dismiss
func (h *SurveyHandler) Dismiss(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.surveySvc.Dismiss(c.Request.Context(), c.Param("id"), caller); err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			response.NotFound(c, 19001, "survey not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Close closes a survey to further responses (admin only).
// PUT /api/v1/surveys/:id/close
func (h *SurveyHandler) Close(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.surveySvc.Close(c.Request.Context(), c.Param("id"), caller); err != nil {
		switch {
		case errors.Is(err, service.ErrSurveyNotFound):
			response.NotFound(c, 19001, "survey not found")
		case errors.Is(err, service.ErrAdminRequired):
			response.Forbidden(c, 10003, "admin access required")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
