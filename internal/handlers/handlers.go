package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"hospital-appointment-server/internal/services"
	"hospital-appointment-server/internal/utils"
)

// respondServiceError maps the service failure taxonomy onto HTTP responses.
// Every workflow failure surfaces as a user-visible message; nothing is
// retried and nothing is fatal to the process.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAuthentication):
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrAuthorization):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid "+name+" parameter: "+raw)
		return 0, false
	}
	return uint(id), true
}
