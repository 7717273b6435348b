package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"job-tracker-api/config"
	"job-tracker-api/internal/api/openapi"
	"job-tracker-api/internal/api/routes"
	"job-tracker-api/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	doc, err := openapi.Load(context.Background())
	require.NoError(t, err)

	router := gin.New()
	routes.RegisterRoutes(router, &app.Application{Config: &config.Config{}, OpenAPI: doc})
	return router
}

func TestRegisterRoutes(t *testing.T) {
	router := setupRouter(t)

	expected := map[string]bool{}
	for _, route := range []string{
		"GET /api/health",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/me",
		"POST /api/auth/logout",
		"POST /api/applications",
		"GET /api/applications/my-applications",
		"GET /api/applications/:id",
		"PUT /api/applications/:id",
		"DELETE /api/applications/:id",
		"GET /api/admin/applications",
		"PUT /api/admin/applications/:id/status",
		"DELETE /api/admin/applications/:id",
		"GET /api/admin/analytics",
		"GET /api/global-jobs/search",
		"POST /api/global-jobs/save",
		"GET /openapi.json",
		"GET /swagger/*any",
	} {
		expected[route] = false
	}

	for _, route := range router.Routes() {
		key := route.Method + " " + route.Path
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}
	for route, found := range expected {
		assert.True(t, found, "route %s not registered", route)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupRouter(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodPost, "/api/applications"},
		{http.MethodGet, "/api/applications/my-applications"},
		{http.MethodGet, "/api/admin/analytics"},
		{http.MethodGet, "/api/global-jobs/search?query=go"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestHealthAndDocs(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Server is running"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/global-jobs/search"`)
	assert.Contains(t, w.Body.String(), `"openapi":"3.0.3"`)
}
