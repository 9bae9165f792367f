package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/tasklist/internal/auth"
	"github.com/mmynk/tasklist/internal/models"
	"github.com/mmynk/tasklist/internal/service"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Message string             `json:"message"`
	Errors  models.FieldErrors `json:"errors,omitempty"`
}

// errorText carries the route-specific messages for 500 and 403.
type errorText struct {
	internal  string
	forbidden string
}

// statusFor maps a service error to an HTTP status and client message.
func statusFor(err error, text errorText) (int, errorBody) {
	var fieldErrs models.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return http.StatusBadRequest, errorBody{Message: fieldErrs.Error(), Errors: fieldErrs}
	case errors.Is(err, auth.ErrEmailExists):
		return http.StatusBadRequest, errorBody{Message: "User already exists with this email"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest, errorBody{Message: "Invalid email or password"}
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, errorBody{Message: "Token is not valid"}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, errorBody{Message: "Task not found"}
	case errors.Is(err, service.ErrForbidden):
		msg := text.forbidden
		if msg == "" {
			msg = "Not authorized to access this task"
		}
		return http.StatusForbidden, errorBody{Message: msg}
	default:
		msg := text.internal
		if msg == "" {
			msg = "Server error"
		}
		return http.StatusInternalServerError, errorBody{Message: msg}
	}
}

func writeError(c *gin.Context, err error, text errorText) {
	status, body := statusFor(err, text)
	if status == http.StatusInternalServerError {
		// Attached so the request logger records the cause.
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

// bindJSON decodes the request body, answering 400 when it is malformed.
// An empty body decodes as {} so the handler's validation reports what is missing.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorBody{Message: "Invalid request body"})
		return false
	}
	return true
}
