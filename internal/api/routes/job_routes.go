package routes

import (
	"job-tracker-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterGlobalJobRoutes registers the external job board proxy.
// requestValidator may be nil.
func RegisterGlobalJobRoutes(rg *gin.RouterGroup, h handlers.JobSearchHandlerInterface, authMiddleware, requestValidator gin.HandlerFunc) {
	jobs := rg.Group("/global-jobs")
	jobs.Use(chain(authMiddleware, requestValidator)...)
	{
		jobs.GET("/search", h.Search)
		jobs.POST("/save", h.Save)
	}
}
