package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/service"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/response"
)

// BannerHandler serves the news banner endpoints.
type BannerHandler struct {
	bannerSvc service.BannerService
}

// NewBannerHandler creates a BannerHandler.
func NewBannerHandler(bannerSvc service.BannerService) *BannerHandler {
	return &BannerHandler{bannerSvc: bannerSvc}
}

// ListActive returns banners currently inside their display window.
// GET /api/v1/banners/active
func (h *BannerHandler) ListActive(c *gin.Context) {
	banners, err := h.bannerSvc.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, banners)
}

// ListAll returns every banner regardless of window or flag (admin only).
// GET /api/v1/banners
func (h *BannerHandler) ListAll(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	banners, err := h.bannerSvc.ListAll(c.Request.Context(), caller)
	if err != nil {
		h.handleBannerError(c, err)
		return
	}

	response.OK(c, banners)
}

// Create creates a banner (admin only).
// POST /api/v1/banners
func (h *BannerHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	banner, err := h.bannerSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleBannerError(c, err)
		return
	}

	response.Created(c, banner)
}

// Update updates a banner (admin only).
// PUT /api/v1/banners/:id
func (h *BannerHandler) Update(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	banner, err := h.bannerSvc.Update(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		h.handleBannerError(c, err)
		return
	}

	response.OK(c, banner)
}

// Delete removes a banner (admin only).
// DELETE /api/v1/banners/:id
func (h *BannerHandler) Delete(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.bannerSvc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		h.handleBannerError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *BannerHandler) handleBannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBannerNotFound):
		response.NotFound(c, 18001, "banner not found")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 18002, "ends_at must be after starts_at")
	case errors.Is(err, service.ErrAdminRequired):
		response.Forbidden(c, 10003, "admin access required")
	default:
		response.InternalError(c)
	}
}
