package middleware

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/gin-gonic/gin"
	ginmiddleware "github.com/oapi-codegen/gin-middleware"
	log "github.com/sirupsen/logrus"
)

// RejectFunc writes the error body for a request that failed validation.
// It must abort the context.
type RejectFunc func(c *gin.Context, statusCode int, message string)

// OpenAPIValidator rejects requests that do not match doc. Authentication is
// left to JWTAuthMiddleware, so security requirements are not re-checked.
func OpenAPIValidator(doc *openapi3.T, reject RejectFunc) gin.HandlerFunc {
	return ginmiddleware.OapiRequestValidatorWithOptions(doc, &ginmiddleware.Options{
		ErrorHandler: func(c *gin.Context, message string, statusCode int) {
			log.WithFields(log.Fields{
				"path":   c.Request.URL.Path,
				"status": statusCode,
			}).Info("Request failed OpenAPI validation")
			reject(c, statusCode, message)
		},
		Options: openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
		// The relative /api server carries no host, so there is no Host check to warn about.
		SilenceServersWarning: true,
	})
}
