package services

import (
	"cmp"
	"slices"
	"time"

	"job-tracker-api/internal/models"
)

const (
	topRolesLimit      = 10
	topSkillsLimit     = 15
	trendWindowMonths  = 6
	recentApplications = 5
)

// ComputeAnalytics derives the admin dashboard figures from apps, which is
// expected in store order (newest first). now anchors the monthly window.
func ComputeAnalytics(apps []models.Application, now time.Time) *models.Analytics {
	return &models.Analytics{
		TotalApplications:    len(apps),
		StatusCounts:         statusHistogram(apps),
		RoleCounts:           topLabels(apps, topRolesLimit, func(a *models.Application) []string { return []string{a.DesiredRole} }),
		SkillCounts:          topLabels(apps, topSkillsLimit, func(a *models.Application) []string { return a.Skills }),
		ApplicationsOverTime: monthlyTrend(apps, now),
		RecentApplications:   recent(apps, recentApplications),
	}
}

// statusHistogram lists only the statuses present, in pipeline order.
func statusHistogram(apps []models.Application) []models.StatusCount {
	counts := make(map[models.Status]int)
	for i := range apps {
		counts[apps[i].Status]++
	}

	out := []models.StatusCount{}
	for _, status := range models.Statuses {
		if n := counts[status]; n > 0 {
			out = append(out, models.StatusCount{Status: status, Count: n})
		}
	}
	return out
}

// topLabels counts labels and returns the limit most frequent. Ties keep
// first-seen order.
func topLabels(apps []models.Application, limit int, labels func(*models.Application) []string) []models.LabelCount {
	index := make(map[string]int)
	out := []models.LabelCount{}
	for i := range apps {
		for _, label := range labels(&apps[i]) {
			if pos, ok := index[label]; ok {
				out[pos].Count++
				continue
			}
			index[label] = len(out)
			out = append(out, models.LabelCount{Label: label, Count: 1})
		}
	}

	slices.SortStableFunc(out, func(a, b models.LabelCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// monthlyTrend counts submissions per calendar month from the first day of
// the month six months before now, oldest month first.
func monthlyTrend(apps []models.Application, now time.Time) []models.MonthCount {
	now = now.UTC()
	cutoff := time.Date(now.Year(), now.Month()-trendWindowMonths, 1, 0, 0, 0, 0, time.UTC)

	type month struct {
		year  int
		month time.Month
	}
	counts := make(map[month]int)
	for i := range apps {
		at := apps[i].SubmittedAt.UTC()
		if at.Before(cutoff) {
			continue
		}
		counts[month{at.Year(), at.Month()}]++
	}

	out := make([]models.MonthCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, models.MonthCount{Year: m.year, Month: m.month, Count: n})
	}
	slices.SortFunc(out, func(a, b models.MonthCount) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// recent projects the n most recently submitted applications.
func recent(apps []models.Application, n int) []models.RecentApplication {
	sorted := slices.Clone(apps)
	slices.SortStableFunc(sorted, func(a, b models.Application) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]models.RecentApplication, 0, len(sorted))
	for _, app := range sorted {
		out = append(out, models.RecentApplication{
			FullName:    app.FullName,
			DesiredRole: app.DesiredRole,
			Status:      app.Status,
			SubmittedAt: app.SubmittedAt,
		})
	}
	return out
}
