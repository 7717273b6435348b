package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkExperience is one entry of an applicant's employment history.
// EndDate is meaningless while CurrentlyWorking is set.
type WorkExperience struct {
	CompanyName      string `json:"companyName" validate:"required"`
	Role             string `json:"role" validate:"required"`
	StartDate        string `json:"startDate" validate:"required,partialdate"`
	EndDate          string `json:"endDate,omitempty" validate:"omitempty,partialdate"`
	CurrentlyWorking bool   `json:"currentlyWorking"`
	Responsibilities string `json:"responsibilities" validate:"required"`
}

// Application is one applicant's job application.
//
// Validation tags express the invariants every persisted record satisfies.
// Skills and the resume are only mandatory for records the applicant submitted.
type Application struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"userId" db:"user_id" validate:"required"`

	// Personal
	FullName  string `json:"fullName" db:"full_name" validate:"required"`
	Email     string `json:"email" db:"email" validate:"required"`
	Phone     string `json:"phone" db:"phone" validate:"required"`
	Address   string `json:"address" db:"address" validate:"required"`
	LinkedIn  string `json:"linkedIn,omitempty" db:"linkedin"`
	GitHub    string `json:"github,omitempty" db:"github"`
	Portfolio string `json:"portfolio,omitempty" db:"portfolio"`

	// Education
	HighestQualification Qualification `json:"highestQualification" db:"highest_qualification" validate:"required,qualification"`
	UniversityName       string        `json:"universityName" db:"university_name" validate:"required"`
	GraduationYear       int           `json:"graduationYear" db:"graduation_year" validate:"required,gte=1900,lte=2200"`
	GPA                  string        `json:"gpa" db:"gpa" validate:"required"`

	WorkExperience []WorkExperience `json:"workExperience" db:"work_experience" validate:"dive"`
	Skills         []string         `json:"skills" db:"skills" validate:"required_if=Source submitted,dive,required"`
	Certifications []string         `json:"certifications" db:"certifications" validate:"dive,required"`

	ResumeURL      string `json:"resumeUrl" db:"resume_url" validate:"required_if=Source submitted"`
	ResumeFileName string `json:"resumeFileName" db:"resume_file_name"`
	CoverLetter    string `json:"coverLetter,omitempty" db:"cover_letter"`

	// Preferences
	DesiredRole         string   `json:"desiredRole" db:"desired_role" validate:"required"`
	ExpectedSalary      string   `json:"expectedSalary" db:"expected_salary" validate:"required"`
	LocationPreferences []string `json:"locationPreferences" db:"location_preferences" validate:"required,dive,required"`

	// Listing the application targets, filled for saved external listings.
	JobTitle       string `json:"jobTitle,omitempty" db:"job_title"`
	CompanyName    string `json:"companyName,omitempty" db:"company_name"`
	JobLocation    string `json:"jobLocation,omitempty" db:"job_location"`
	JobPostingLink string `json:"jobPostingLink,omitempty" db:"job_posting_link"`
	JobType        string `json:"jobType,omitempty" db:"job_type"`

	Source     Source `json:"source" db:"source" validate:"required,oneof=submitted external"`
	Status     Status `json:"status" db:"status" validate:"application_status"`
	AdminNotes string `json:"adminNotes,omitempty" db:"admin_notes"`

	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateLocked reports whether the owner can no longer edit the content.
func (a *Application) UpdateLocked() bool {
	return a.Status != StatusApplied
}

// EnsureSlices replaces nil list fields with empty ones so they persist and
// serialize as empty arrays.
func (a *Application) EnsureSlices() {
	if a.WorkExperience == nil {
		a.WorkExperience = []WorkExperience{}
	}
	if a.Skills == nil {
		a.Skills = []string{}
	}
	if a.Certifications == nil {
		a.Certifications = []string{}
	}
	if a.LocationPreferences == nil {
		a.LocationPreferences = []string{}
	}
}

// ExternalListing is a job posting returned by the upstream search API.
type ExternalListing struct {
	ExternalID     string `json:"externalId"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Salary         string `json:"salary"`
	ApplyLink      string `json:"applyLink"`
	Description    string `json:"description"`
	EmploymentType string `json:"employmentType"`
	IsRemote       bool   `json:"isRemote"`
}
