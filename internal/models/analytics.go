package models

import "time"

// StatusCount is one bucket of the status histogram.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// LabelCount is a counted label, used for roles and skills.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthCount is the number of submissions in one calendar month.
type MonthCount struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// RecentApplication is the dashboard projection of an application.
type RecentApplication struct {
	FullName    string    `json:"fullName"`
	DesiredRole string    `json:"desiredRole"`
	Status      Status    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Analytics is the admin dashboard summary.
type Analytics struct {
	TotalApplications    int                 `json:"totalApplications"`
	StatusCounts         []StatusCount       `json:"statusCounts"`
	RoleCounts           []LabelCount        `json:"roleCounts"`
	SkillCounts          []LabelCount        `json:"skillCounts"`
	ApplicationsOverTime []MonthCount        `json:"applicationsOverTime"`
	RecentApplications   []RecentApplication `json:"recentApplications"`
}
