package services

import (
	"fmt"
	"testing"
	"time"

	"job-tracker-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsApp(name, role string, status models.Status, submitted time.Time, skills ...string) models.Application {
	return models.Application{
		FullName:    name,
		DesiredRole: role,
		Status:      status,
		Skills:      skills,
		SubmittedAt: submitted,
	}
}

func TestComputeAnalytics_Empty(t *testing.T) {
	summary := ComputeAnalytics(nil, time.Now())

	assert.Zero(t, summary.TotalApplications)
	assert.Empty(t, summary.StatusCounts)
	assert.Empty(t, summary.RoleCounts)
	assert.Empty(t, summary.SkillCounts)
	assert.Empty(t, summary.ApplicationsOverTime)
	assert.Empty(t, summary.RecentApplications)
}

func TestComputeAnalytics_Counts(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	apps := []models.Application{
		analyticsApp("C", "Backend", models.StatusInterview, now.Add(-time.Hour), "Go", "Rust"),
		analyticsApp("B", "Frontend", models.StatusApplied, now.Add(-2*time.Hour), "Go", "Python"),
		analyticsApp("A", "Backend", models.StatusApplied, now.Add(-3*time.Hour)),
	}

	summary := ComputeAnalytics(apps, now)

	assert.Equal(t, 3, summary.TotalApplications)
	assert.Equal(t, []models.StatusCount{
		{Status: models.StatusApplied, Count: 2},
		{Status: models.StatusInterview, Count: 1},
	}, summary.StatusCounts)
	assert.Equal(t, []models.LabelCount{
		{Label: "Backend", Count: 2},
		{Label: "Frontend", Count: 1},
	}, summary.RoleCounts)
	assert.Equal(t, []models.LabelCount{
		{Label: "Go", Count: 2},
		{Label: "Rust", Count: 1},
		{Label: "Python", Count: 1},
	}, summary.SkillCounts)
}

func TestComputeAnalytics_TopLimits(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	var apps []models.Application
	for i := 0; i < 20; i++ {
		apps = append(apps, analyticsApp("x", fmt.Sprintf("role-%02d", i), models.StatusApplied, now,
			fmt.Sprintf("skill-%02d", i)))
	}
	// role-19 and skill-19 become the most frequent.
	apps = append(apps, analyticsApp("y", "role-19", models.StatusApplied, now, "skill-19"))

	summary := ComputeAnalytics(apps, now)

	require.Len(t, summary.RoleCounts, 10)
	require.Len(t, summary.SkillCounts, 15)
	assert.Equal(t, models.LabelCount{Label: "role-19", Count: 2}, summary.RoleCounts[0])
	assert.Equal(t, models.LabelCount{Label: "skill-19", Count: 2}, summary.SkillCounts[0])
	// Ties keep first-seen order.
	assert.Equal(t, "role-00", summary.RoleCounts[1].Label)
	assert.Equal(t, "skill-13", summary.SkillCounts[14].Label)
}

func TestComputeAnalytics_MonthlyWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	apps := []models.Application{
		analyticsApp("a", "r", models.StatusApplied, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		analyticsApp("b", "r", models.StatusApplied, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)),
		analyticsApp("c", "r", models.StatusApplied, time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)),
		analyticsApp("d", "r", models.StatusApplied, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)),
		analyticsApp("e", "r", models.StatusApplied, time.Date(2023, 11, 30, 23, 59, 59, 0, time.UTC)),
	}

	summary := ComputeAnalytics(apps, now)

	assert.Equal(t, []models.MonthCount{
		{Year: 2023, Month: time.December, Count: 1},
		{Year: 2024, Month: time.March, Count: 1},
		{Year: 2024, Month: time.June, Count: 2},
	}, summary.ApplicationsOverTime)
}

func TestComputeAnalytics_WindowAcrossYearBoundary(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	apps := []models.Application{
		analyticsApp("a", "r", models.StatusApplied, time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)),
		analyticsApp("b", "r", models.StatusApplied, time.Date(2023, 7, 31, 0, 0, 0, 0, time.UTC)),
	}

	summary := ComputeAnalytics(apps, now)

	assert.Equal(t, []models.MonthCount{{Year: 2023, Month: time.August, Count: 1}}, summary.ApplicationsOverTime)
}

func TestComputeAnalytics_RecentApplications(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	var apps []models.Application
	for i := 0; i < 7; i++ {
		apps = append(apps, analyticsApp(fmt.Sprintf("app-%d", i), "r", models.StatusApplied, now.Add(time.Duration(i)*time.Hour)))
	}

	summary := ComputeAnalytics(apps, now)

	require.Len(t, summary.RecentApplications, 5)
	for i, want := range []string{"app-6", "app-5", "app-4", "app-3", "app-2"} {
		assert.Equal(t, want, summary.RecentApplications[i].FullName)
	}
	assert.Equal(t, "app-0", apps[0].FullName, "input order must not change")
}
