package openapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Job Tracker API", doc.Info.Title)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "/api", doc.Servers[0].URL)

	for _, path := range []string{
		"/health",
		"/auth/login",
		"/applications",
		"/applications/my-applications",
		"/applications/{id}",
		"/admin/applications",
		"/admin/applications/{id}/status",
		"/admin/analytics",
		"/global-jobs/search",
		"/global-jobs/save",
	} {
		assert.NotNil(t, doc.Paths.Value(path), path)
	}

	status := doc.Components.Schemas["Status"].Value
	assert.Len(t, status.Enum, 5)
}
