package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"job-tracker-api/internal/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Validation failures name the field;
// internal errors hide their cause outside debug mode.
func respondError(c *gin.Context, err error, failure string) {
	status := statusForError(err)
	_ = c.Error(err)

	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		body := gin.H{"error": "Validation failed", "details": vErr.Message}
		if vErr.Field != "" {
			body["field"] = vErr.Field
		}
		c.AbortWithStatusJSON(status, body)
	case status == http.StatusInternalServerError:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error(failure)
		body := gin.H{"error": failure}
		if gin.IsDebugging() {
			body["details"] = err.Error()
		}
		c.AbortWithStatusJSON(status, body)
	default:
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
	}
}

// respondEnvelopeError writes the {success: false, message} body used by the
// global jobs routes.
func respondEnvelopeError(c *gin.Context, err error, failure string) {
	status := statusForError(err)
	_ = c.Error(err)

	var vErr *services.ValidationError
	body := gin.H{"success": false}
	switch {
	case errors.As(err, &vErr):
		body["message"] = fmt.Sprintf("%s %s", vErr.Field, vErr.Message)
	case status == http.StatusTooManyRequests:
		body["message"] = "Rate limit exceeded. Please try again later."
	case status == http.StatusInternalServerError:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error(failure)
		body["message"] = failure
		if gin.IsDebugging() {
			body["error"] = err.Error()
		}
	default:
		body["message"] = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}

// RejectJSON is a middleware.RejectFunc producing {"error": message}.
func RejectJSON(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// RejectEnvelope is a middleware.RejectFunc producing {success: false, message}.
func RejectEnvelope(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"success": false, "message": message})
}
