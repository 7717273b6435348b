package routes

import (
	"job-tracker-api/internal/api/handlers"
	"job-tracker-api/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers triage and analytics routes behind the admin gate.
// requestValidator may be nil.
func RegisterAdminRoutes(rg *gin.RouterGroup, h handlers.AdminHandlerInterface, authMiddleware, requestValidator gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(chain(authMiddleware, middleware.RequireAdmin(), requestValidator)...)
	{
		admin.GET("/applications", h.ListApplications)
		admin.PUT("/applications/:id/status", h.UpdateStatus)
		admin.DELETE("/applications/:id", h.DeleteApplication)
		admin.GET("/analytics", h.Analytics)
	}
}
