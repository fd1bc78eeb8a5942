// Package handlers wires the social engine and the identity store to
// the JSON API: request validation, pagination parameters and the
// mapping of engine outcomes onto HTTP statuses live here.
package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/pixelgram-app/pixelgram-backend/server/middlewares"
	"github.com/pixelgram-app/pixelgram-backend/social"
	"github.com/pixelgram-app/pixelgram-backend/utils"
	Logger "github.com/pixelgram-app/pixelgram-backend/utils/log"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": status < http.StatusBadRequest,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondValidationError(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"message": "Validation error",
		"errors":  fieldErrors,
	})
}

// respondEngineError translates an engine outcome into the API error
// envelope. Not-found always wins over not-owner because the engine
// checks existence first.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, social.ErrPostNotFound):
		respond(c, http.StatusNotFound, "Post not found", nil)
	case errors.Is(err, social.ErrCommentNotFound):
		respond(c, http.StatusNotFound, "Comment not found", nil)
	case errors.Is(err, social.ErrUserNotFound):
		respond(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, social.ErrNotOwner):
		respond(c, http.StatusForbidden, "This action is unauthorized", nil)
	default:
		Logger.Log.Error(fmt.Sprintf("internal failure on %s %s: %v", c.Request.Method, c.Request.URL.Path, err))
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func actorID(c *gin.Context) string {
	return c.GetString(middlewares.UserIDKey)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(utils.DefaultPageSize)))
	return utils.SanitizePageParams(page, perPage)
}
