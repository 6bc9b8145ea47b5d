package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotogether/server/services"
	"github.com/gotogether/server/utils"
)

var errInternal = errors.New("internal server error")

// respondServiceError maps the service sentinel errors onto HTTP
// statuses. Anything unrecognized is logged and surfaced as a generic
// 500 so database details never reach the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrNotEventCreator),
		errors.Is(err, services.ErrNotAuthorized):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrDuplicateRequest),
		errors.Is(err, services.ErrInvalidStatus):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
	}
}
