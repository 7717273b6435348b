package postgres

import (
	"strings"
	"testing"
	"time"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApplicationListQuery(t *testing.T) {
	ownerID := uuid.New()
	status := models.StatusInterview

	tests := []struct {
		name         string
		filter       storage.ApplicationFilter
		wantContains []string
		wantMissing  []string
		wantArgs     []any
	}{
		{
			name:         "no filter",
			filter:       storage.ApplicationFilter{},
			wantContains: []string{`FROM "applications"`, `ORDER BY "submitted_at" DESC`},
			wantMissing:  []string{"WHERE"},
			wantArgs:     nil,
		},
		{
			name:         "owner and status",
			filter:       storage.ApplicationFilter{OwnerID: &ownerID, Status: &status},
			wantContains: []string{`"user_id" = $1`, `"status" = $2`, " AND "},
			wantMissing:  []string{"ILIKE", "ANY("},
			wantArgs:     []any{ownerID, "Interview"},
		},
		{
			name:         "role is case-insensitive substring",
			filter:       storage.ApplicationFilter{DesiredRole: "engineer"},
			wantContains: []string{`"desired_role" ILIKE $1`},
			wantArgs:     []any{"%engineer%"},
		},
		{
			name:         "search matches name or email",
			filter:       storage.ApplicationFilter{Search: "jane"},
			wantContains: []string{`"full_name" ILIKE $1`, " OR ", `"email" ILIKE $2`},
			wantArgs:     []any{"%jane%", "%jane%"},
		},
		{
			name:         "skill membership",
			filter:       storage.ApplicationFilter{Skill: "Go"},
			wantContains: []string{`$1 = ANY("skills")`},
			wantArgs:     []any{"Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildApplicationListQuery(tt.filter)

			assert.Contains(t, query, "SELECT")
			for _, fragment := range tt.wantContains {
				assert.Contains(t, query, fragment)
			}
			for _, fragment := range tt.wantMissing {
				assert.NotContains(t, query, fragment)
			}
			if tt.wantArgs != nil {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestBuildApplicationListQuery_AllFiltersKeepOrdering(t *testing.T) {
	ownerID := uuid.New()
	status := models.StatusApplied

	query, args := buildApplicationListQuery(storage.ApplicationFilter{
		OwnerID:     &ownerID,
		Status:      &status,
		DesiredRole: "dev",
		Search:      "ann",
		Skill:       "SQL",
	})

	assert.Len(t, args, 6)
	assert.Contains(t, query, `$6 = ANY("skills")`)
	assert.True(t, strings.HasSuffix(query, `ORDER BY "submitted_at" DESC`))
}

func TestBuildApplicationInsert(t *testing.T) {
	app := &models.Application{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Skills:      []string{"Go"},
		Source:      models.SourceSubmitted,
		Status:      models.StatusApplied,
		SubmittedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}

	query, args, err := buildApplicationInsert(app)
	require.NoError(t, err)

	assert.Contains(t, query, `INSERT INTO "applications"`)
	assert.Contains(t, query, "RETURNING")
	assert.Len(t, args, len(applicationColumns))
	assert.Equal(t, []byte("[]"), args[13], "nil work experience encodes as an empty array")
}

func TestBuildApplicationUpdate_SkipsImmutableColumns(t *testing.T) {
	app := &models.Application{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Source: models.SourceSubmitted,
		Status: models.StatusUnderReview,
	}
	app.EnsureSlices()

	query, args, err := buildApplicationUpdate(app)
	require.NoError(t, err)

	assert.Contains(t, query, `UPDATE "applications" SET`)
	assert.Contains(t, query, `"status" =`)
	assert.NotContains(t, query, `"user_id" =`)
	assert.NotContains(t, query, `"submitted_at" =`)
	// mutable columns plus the id in the WHERE clause
	assert.Len(t, args, len(applicationColumns)-len(immutableColumns)+1)
	assert.Equal(t, app.ID, args[len(args)-1])
}
