package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/service"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/response"
)

// MustGetUserID extracts user_id injected by the JWT middleware.
// Writes a 401 and returns false when the value is missing. Callers should
// return immediately on ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetCaller builds the service-layer caller capability from the context.
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return service.Caller{}, false
	}
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return service.Caller{}, false
	}
	role, ok := v.(string)
	if !ok || role == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return service.Caller{}, false
	}
	return service.Caller{UserID: userID, Role: role}, true
}
