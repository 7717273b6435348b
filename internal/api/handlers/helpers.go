package handlers

import (
	"net/http"

	"job-tracker-api/internal/api/middleware"
	"job-tracker-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// actorOrAbort resolves the authenticated caller, answering 401 if missing.
func actorOrAbort(c *gin.Context) (dto.Actor, bool) {
	actor, err := middleware.GetActorFromContext(c)
	if err != nil {
		log.WithError(err).Error("Error getting actor from context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return dto.Actor{}, false
	}
	return actor, true
}

// parseIDParam parses the :id path parameter, answering 400 if malformed.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// formValues flattens multipart or urlencoded values. Repeated keys become lists.
func formValues(values map[string][]string) map[string]any {
	raw := make(map[string]any, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
		case 1:
			raw[key] = vals[0]
		default:
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			raw[key] = list
		}
	}
	return raw
}
