package dto

import (
	"job-tracker-api/internal/models"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation, resolved from the
// request's token by the auth middleware.
type Actor struct {
	UserID uuid.UUID
	Role   models.Role
}

// IsAdmin reports whether the actor holds admin privilege.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
