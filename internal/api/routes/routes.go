package routes

import (
	"net/http"

	"job-tracker-api/internal/api/handlers"
	"job-tracker-api/internal/api/middleware"
	"job-tracker-api/internal/app"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {
	api := router.Group("/api")

	authHandler := handlers.NewAuthHandler(app.Users)
	applicationHandler := handlers.NewApplicationHandler(app.Applications, app.Uploads)
	adminHandler := handlers.NewAdminHandler(app.Admin)
	jobSearchHandler := handlers.NewJobSearchHandler(app.JobSearch)

	authMiddleware := middleware.JWTAuthMiddleware(app.Users)

	var adminValidator, jobsValidator gin.HandlerFunc
	if app.OpenAPI != nil {
		adminValidator = middleware.OpenAPIValidator(app.OpenAPI, handlers.RejectJSON)
		jobsValidator = middleware.OpenAPIValidator(app.OpenAPI, handlers.RejectEnvelope)
	}

	RegisterAuthRoutes(api, authHandler, authMiddleware)
	RegisterApplicationRoutes(api, applicationHandler, authMiddleware)
	RegisterAdminRoutes(api, adminHandler, authMiddleware, adminValidator)
	RegisterGlobalJobRoutes(api, jobSearchHandler, authMiddleware, jobsValidator)

	api.GET("/health", handlers.HealthCheck)

	if app.OpenAPI != nil {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.JSON(http.StatusOK, app.OpenAPI)
		})
		log.Debug("Configuring Swagger UI handler")
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))
	}
}

// chain drops nil middlewares.
func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
