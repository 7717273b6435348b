package dto

import (
	"job-tracker-api/internal/models"

	"github.com/google/uuid"
)

// JobSearchRequest defines the query parameters of an external job search.
type JobSearchRequest struct {
	Query    string `form:"query"`
	Location string `form:"location"`
	Remote   bool   `form:"remote"`
	Page     int    `form:"page,default=1" validate:"omitempty,gte=1,lte=100"`
}

// JobSearchResponse is the envelope returned to the search page.
type JobSearchResponse struct {
	Success bool                     `json:"success"`
	Data    []models.ExternalListing `json:"data"`
	Total   int                      `json:"total"`
}

// SaveListingRequest defines the body for saving an external listing to the tracker.
// UserID is optional; when present it must match the authenticated user.
type SaveListingRequest struct {
	UserID         *uuid.UUID `json:"userId"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	Salary         string     `json:"salary"`
	ApplyLink      string     `json:"applyLink"`
	Description    string     `json:"description"`
	EmploymentType string     `json:"employmentType"`
}

// SaveListingResponse is the envelope returned after saving a listing.
type SaveListingResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *models.Application `json:"data"`
}
