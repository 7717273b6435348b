package services

import (
	"context"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/transport/dto"

	"github.com/google/uuid"
)

// ApplicationService defines the applicant-facing application lifecycle.
type ApplicationService interface {
	Submit(ctx context.Context, actor dto.Actor, raw map[string]any, resume *dto.ResumeAttachment) (*models.Application, error)
	ListOwned(ctx context.Context, actor dto.Actor, query dto.ListApplicationsQuery) ([]models.Application, error)
	GetOwned(ctx context.Context, actor dto.Actor, id uuid.UUID) (*models.Application, error)
	UpdateOwned(ctx context.Context, actor dto.Actor, id uuid.UUID, raw map[string]any) (*models.Application, error)
	DeleteOwned(ctx context.Context, actor dto.Actor, id uuid.UUID) error
}

// AdminService defines triage operations. Callers must already hold admin privilege.
type AdminService interface {
	ListAll(ctx context.Context, query dto.ListApplicationsQuery) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateStatusRequest) (*models.Application, error)
	DeleteAny(ctx context.Context, id uuid.UUID) error
	Analytics(ctx context.Context) (*models.Analytics, error)
}

// JobSearchService defines the external listing proxy.
type JobSearchService interface {
	Search(ctx context.Context, req *dto.JobSearchRequest) ([]models.ExternalListing, error)
	SaveListing(ctx context.Context, actor dto.Actor, req *dto.SaveListingRequest) (*models.Application, error)
}

// UserService defines account and session logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
	Logout(ctx context.Context, claims *SessionClaims) error
	VerifyToken(ctx context.Context, token string) (*SessionClaims, error)
	EnsureAdmin(ctx context.Context, email, password, fullName string) error
}

// ResumeStore removes stored resume blobs by their public URL.
type ResumeStore interface {
	Remove(url string) error
}

// ListingSearcher queries the upstream job-listing API.
type ListingSearcher interface {
	Search(ctx context.Context, query string, page int) ([]models.ExternalListing, error)
}
