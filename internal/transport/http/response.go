package http

import (
	"errors"
	"net/http"

	"github.com/MichalMitros/crm-console/internal/api"
	"github.com/MichalMitros/crm-console/internal/dashboard"
	"github.com/MichalMitros/crm-console/internal/filter"
	"github.com/MichalMitros/crm-console/internal/session"
	"github.com/MichalMitros/crm-console/internal/users"
	"github.com/gin-gonic/gin"
)

// response is body of every local API response.
type response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   bool   `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, response{Data: data})
}

// respondError writes error response. Data is optional state to show along the error.
func respondError(c *gin.Context, err error, message string, data any) {
	if message == "" {
		message = api.Message(err, err.Error())
	}

	c.JSON(statusFor(err), response{
		Message: message,
		Data:    data,
		Error:   true,
	})
}

// statusFor maps store errors to response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, filter.ErrInvalidFilter),
		errors.Is(err, session.ErrValidation),
		errors.Is(err, users.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, dashboard.ErrHistoryDisabled),
		api.Status(err) == http.StatusNotFound:
		return http.StatusNotFound
	case errors.Is(err, api.ErrUnauthorized),
		errors.Is(err, session.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrTransport),
		errors.Is(err, api.ErrServer),
		errors.Is(err, api.ErrDecode),
		errors.Is(err, dashboard.ErrUnrecognizedShape),
		errors.Is(err, dashboard.ErrInvalidStats):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
