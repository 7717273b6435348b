package routes

import (
	"job-tracker-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers the applicant-facing application routes.
func RegisterApplicationRoutes(rg *gin.RouterGroup, h handlers.ApplicationHandlerInterface, authMiddleware gin.HandlerFunc) {
	applications := rg.Group("/applications")
	applications.Use(authMiddleware)
	{
		applications.POST("", h.Submit)
		applications.GET("/my-applications", h.ListMine)
		applications.GET("/:id", h.Get)
		applications.PUT("/:id", h.Update)
		applications.DELETE("/:id", h.Delete)
	}
}
