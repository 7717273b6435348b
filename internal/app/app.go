package app

import (
	"job-tracker-api/config"
	"job-tracker-api/internal/services"
	"job-tracker-api/internal/uploads"

	"github.com/getkin/kin-openapi/openapi3"
)

// Application holds core application dependencies.
type Application struct {
	Config *config.Config

	Applications services.ApplicationService
	Admin        services.AdminService
	JobSearch    services.JobSearchService
	Users        services.UserService

	Uploads *uploads.Store
	OpenAPI *openapi3.T
}
