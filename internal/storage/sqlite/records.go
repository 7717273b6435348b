package sqlite

import (
	"fmt"
	"time"

	"job-tracker-api/internal/models"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/datatypes"
)

type userRecord struct {
	ID           string    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	FullName     string    `gorm:"not null"`
	Phone        string
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (userRecord) TableName() string { return "users" }

func newUserRecord(u *models.User) userRecord {
	return userRecord{
		ID:           u.ID.String(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		FullName:     u.FullName,
		Phone:        u.Phone,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

func (r userRecord) toModel() (*models.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", r.ID, err)
	}
	return &models.User{
		ID:           id,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         models.Role(r.Role),
		FullName:     r.FullName,
		Phone:        r.Phone,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

type applicationRecord struct {
	ID     string `gorm:"primaryKey"`
	UserID string `gorm:"index;not null"`

	FullName  string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Phone     string
	Address   string
	LinkedIn  string `gorm:"column:linkedin"`
	GitHub    string `gorm:"column:github"`
	Portfolio string

	HighestQualification string
	UniversityName       string
	GraduationYear       int
	GPA                  string `gorm:"column:gpa"`

	WorkExperience datatypes.JSONSlice[models.WorkExperience]
	Skills         datatypes.JSONSlice[string]
	Certifications datatypes.JSONSlice[string]

	ResumeURL      string `gorm:"column:resume_url"`
	ResumeFileName string
	CoverLetter    string

	DesiredRole         string `gorm:"index"`
	ExpectedSalary      string
	LocationPreferences datatypes.JSONSlice[string]

	JobTitle       string
	CompanyName    string
	JobLocation    string
	JobPostingLink string
	JobType        string

	Source     string `gorm:"not null"`
	Status     string `gorm:"index;not null"`
	AdminNotes string

	SubmittedAt time.Time `gorm:"index;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`

	// Case-folded copies searched by List; SQLite's LOWER only folds ASCII.
	FullNameFold    string `gorm:"column:full_name_fold"`
	EmailFold       string `gorm:"column:email_fold"`
	DesiredRoleFold string `gorm:"column:desired_role_fold"`
}

func (applicationRecord) TableName() string { return "applications" }

// fold case-folds s for the *_fold search columns and their LIKE patterns.
func fold(s string) string {
	return cases.Fold().String(s)
}

func newApplicationRecord(a *models.Application) applicationRecord {
	app := *a
	app.EnsureSlices()
	return applicationRecord{
		ID:                   app.ID.String(),
		UserID:               app.UserID.String(),
		FullName:             app.FullName,
		Email:                app.Email,
		Phone:                app.Phone,
		Address:              app.Address,
		LinkedIn:             app.LinkedIn,
		GitHub:               app.GitHub,
		Portfolio:            app.Portfolio,
		HighestQualification: string(app.HighestQualification),
		UniversityName:       app.UniversityName,
		GraduationYear:       app.GraduationYear,
		GPA:                  app.GPA,
		WorkExperience:       datatypes.NewJSONSlice(app.WorkExperience),
		Skills:               datatypes.NewJSONSlice(app.Skills),
		Certifications:       datatypes.NewJSONSlice(app.Certifications),
		ResumeURL:            app.ResumeURL,
		ResumeFileName:       app.ResumeFileName,
		CoverLetter:          app.CoverLetter,
		DesiredRole:          app.DesiredRole,
		ExpectedSalary:       app.ExpectedSalary,
		LocationPreferences:  datatypes.NewJSONSlice(app.LocationPreferences),
		JobTitle:             app.JobTitle,
		CompanyName:          app.CompanyName,
		JobLocation:          app.JobLocation,
		JobPostingLink:       app.JobPostingLink,
		JobType:              app.JobType,
		Source:               string(app.Source),
		Status:               string(app.Status),
		AdminNotes:           app.AdminNotes,
		SubmittedAt:          app.SubmittedAt.UTC(),
		UpdatedAt:            app.UpdatedAt.UTC(),
		FullNameFold:         fold(app.FullName),
		EmailFold:            fold(app.Email),
		DesiredRoleFold:      fold(app.DesiredRole),
	}
}

func (r applicationRecord) toModel() (*models.Application, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("parse application id %q: %w", r.ID, err)
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse owner id %q: %w", r.UserID, err)
	}

	app := &models.Application{
		ID:                   id,
		UserID:               userID,
		FullName:             r.FullName,
		Email:                r.Email,
		Phone:                r.Phone,
		Address:              r.Address,
		LinkedIn:             r.LinkedIn,
		GitHub:               r.GitHub,
		Portfolio:            r.Portfolio,
		HighestQualification: models.Qualification(r.HighestQualification),
		UniversityName:       r.UniversityName,
		GraduationYear:       r.GraduationYear,
		GPA:                  r.GPA,
		WorkExperience:       r.WorkExperience,
		Skills:               r.Skills,
		Certifications:       r.Certifications,
		ResumeURL:            r.ResumeURL,
		ResumeFileName:       r.ResumeFileName,
		CoverLetter:          r.CoverLetter,
		DesiredRole:          r.DesiredRole,
		ExpectedSalary:       r.ExpectedSalary,
		LocationPreferences:  r.LocationPreferences,
		JobTitle:             r.JobTitle,
		CompanyName:          r.CompanyName,
		JobLocation:          r.JobLocation,
		JobPostingLink:       r.JobPostingLink,
		JobType:              r.JobType,
		Source:               models.Source(r.Source),
		Status:               models.Status(r.Status),
		AdminNotes:           r.AdminNotes,
		SubmittedAt:          r.SubmittedAt,
		UpdatedAt:            r.UpdatedAt,
	}
	app.EnsureSlices()
	return app, nil
}
