package storage

import (
	"context"
	"time"

	"job-tracker-api/internal/models"

	"github.com/google/uuid"
)

// ApplicationFilter is the store-level query built by the services from the
// caller's criteria. Zero values mean "no filter"; all set criteria are ANDed.
type ApplicationFilter struct {
	OwnerID     *uuid.UUID
	Status      *models.Status
	DesiredRole string // case-insensitive substring
	Search      string // case-insensitive substring of full name OR email
	Skill       string // exact membership in skills
}

// ApplicationRepository defines the Resource Store operations on applications.
// List returns matches ordered by submission time, newest first.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
	Update(ctx context.Context, app *models.Application) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenRevocationStore remembers logged-out token ids until they expire.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
