package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryjtoh/mydevduck-api/internal/application"
	"github.com/ryjtoh/mydevduck-api/pkg/response"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, application.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, details interface{}) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Never leak internals on unexpected failures.
		msg = "internal server error"
	}
	resp := response.Error[any](c, status, msg, details)
	c.JSON(resp.Status, resp)
}

func respond[T any](c *gin.Context, status int, data T, message string) {
	resp := response.Success(c, status, data, message, nil)
	c.JSON(resp.Status, resp)
}

// bearerToken pulls the raw token out of the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(h, "Bearer "), true
}
