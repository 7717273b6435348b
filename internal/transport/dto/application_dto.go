package dto

import (
	"job-tracker-api/internal/models"
)

// ResumeAttachment describes a resume already stored by the upload collaborator.
type ResumeAttachment struct {
	URL      string
	FileName string
}

// ApplicationPayload is the canonical shape of a submission after the list
// fields have been decoded from their text form.
type ApplicationPayload struct {
	FullName             string                  `json:"fullName"`
	Email                string                  `json:"email"`
	Phone                string                  `json:"phone"`
	Address              string                  `json:"address"`
	LinkedIn             string                  `json:"linkedIn"`
	GitHub               string                  `json:"github"`
	Portfolio            string                  `json:"portfolio"`
	HighestQualification string                  `json:"highestQualification"`
	UniversityName       string                  `json:"universityName"`
	GraduationYear       int                     `json:"graduationYear"`
	GPA                  string                  `json:"gpa"`
	WorkExperience       []models.WorkExperience `json:"workExperience"`
	Skills               []string                `json:"skills"`
	Certifications       []string                `json:"certifications"`
	CoverLetter          string                  `json:"coverLetter"`
	DesiredRole          string                  `json:"desiredRole"`
	ExpectedSalary       string                  `json:"expectedSalary"`
	LocationPreferences  []string                `json:"locationPreferences"`
}

// ApplicationPatch carries the owner-editable fields of an update. Nil means
// the field was absent from the request and stays unchanged.
type ApplicationPatch struct {
	FullName             *string                  `json:"fullName"`
	Email                *string                  `json:"email"`
	Phone                *string                  `json:"phone"`
	Address              *string                  `json:"address"`
	LinkedIn             *string                  `json:"linkedIn"`
	GitHub               *string                  `json:"github"`
	Portfolio            *string                  `json:"portfolio"`
	HighestQualification *string                  `json:"highestQualification"`
	UniversityName       *string                  `json:"universityName"`
	GraduationYear       *int                     `json:"graduationYear"`
	GPA                  *string                  `json:"gpa"`
	WorkExperience       *[]models.WorkExperience `json:"workExperience"`
	Skills               *[]string                `json:"skills"`
	Certifications       *[]string                `json:"certifications"`
	CoverLetter          *string                  `json:"coverLetter"`
	DesiredRole          *string                  `json:"desiredRole"`
	ExpectedSalary       *string                  `json:"expectedSalary"`
	LocationPreferences  *[]string                `json:"locationPreferences"`
}

// ListApplicationsQuery holds the optional filter criteria of a listing.
// Search and Skills are only honored in the admin scope.
type ListApplicationsQuery struct {
	Status string `form:"status"`
	Role   string `form:"role"`
	Search string `form:"search"`
	Skills string `form:"skills"`
}

// UpdateStatusRequest is the admin triage body. Absent fields stay unchanged;
// a present empty AdminNotes clears the notes.
type UpdateStatusRequest struct {
	Status     *models.Status `json:"status"`
	AdminNotes *string        `json:"adminNotes"`
}
