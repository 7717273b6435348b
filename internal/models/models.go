package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Application Status Enum ---
type Status string

const (
	StatusApplied     Status = "Applied"
	StatusUnderReview Status = "Under Review"
	StatusInterview   Status = "Interview"
	StatusRejected    Status = "Rejected"
	StatusAccepted    Status = "Accepted"
)

// Statuses lists every status in review-pipeline order.
var Statuses = []Status{StatusApplied, StatusUnderReview, StatusInterview, StatusRejected, StatusAccepted}

// Valid reports whether s is one of the five pipeline statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusUnderReview, StatusInterview, StatusRejected, StatusAccepted:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for Status
func (s *Status) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Status: value is not string or []byte")
		}
	}
	v := Status(strVal)
	if !v.Valid() {
		return fmt.Errorf("invalid Status value: %s", strVal)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for Status
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid Status value: %s", string(s))
	}
	return string(s), nil
}

// --- User Role Enum ---
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	v := Role(strVal)
	switch v {
	case RoleApplicant, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Qualification Enum ---
type Qualification string

const (
	QualificationHighSchool Qualification = "High School"
	QualificationAssociate  Qualification = "Associate Degree"
	QualificationBachelor   Qualification = "Bachelor's Degree"
	QualificationMaster     Qualification = "Master's Degree"
	QualificationPhD        Qualification = "PhD"
	QualificationOther      Qualification = "Other"
)

func (q Qualification) Valid() bool {
	switch q {
	case QualificationHighSchool, QualificationAssociate, QualificationBachelor,
		QualificationMaster, QualificationPhD, QualificationOther:
		return true
	default:
		return false
	}
}

// --- Application Source Enum ---
type Source string

const (
	SourceSubmitted Source = "submitted" // filled in by the applicant through the form
	SourceExternal  Source = "external"  // synthesized from a saved job listing
)

// User represents an account that can own applications.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	FullName     string    `json:"fullName" db:"full_name"`
	Phone        string    `json:"phone" db:"phone"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
