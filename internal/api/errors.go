package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // Message formatting

	"finance_tracker/internal/domain"     // Error taxonomy
	"finance_tracker/internal/middleware" // Request id lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps the error taxonomy to a status code and a client-safe message.
// subject names the resource for not-found and forbidden messages.
func statusFor(err error, subject string) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest, subject + " already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, domain.ErrMalformedHeader), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Not authorized to modify this " + strings.ToLower(subject)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, subject + " not found"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// respondError logs the cause and writes only the mapped message
func respondError(c *gin.Context, log *logrus.Logger, op, subject string, err error) {
	status, msg := statusFor(err, subject)
	entry := log.WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey), // Correlates with the access log
		"operation":  op,                                   // Failing operation
		"status":     status,                               // Mapped status
		"error":      err.Error(),                          // Underlying cause
	})
	if id, ok := middleware.CurrentUserID(c); ok {
		entry = entry.WithField("user_id", id)
	}
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}
	c.JSON(status, gin.H{"message": msg})
}

// badRequest answers 400 with a fixed message and logs the binding error
func badRequest(c *gin.Context, log *logrus.Logger, op, msg string, err error) {
	log.WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"operation":  op,
		"error":      err.Error(),
	}).Warn("Invalid request")
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
