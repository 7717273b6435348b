package sqlite

import (
	"context"
	"errors"
	"fmt"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserRepo implements storage.UserRepository on SQLite through gorm.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ storage.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	record := newUserRecord(user)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("User with email %s already exists", user.Email)
			return nil, storage.ErrDuplicateEmail
		}
		log.WithError(err).Errorf("Error creating user %s", user.Email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("User created successfully with ID: %s", record.ID)
	return record.toModel()
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("User not found with ID: %s", id)
			return nil, storage.ErrNotFound
		}
		log.WithError(err).Errorf("Error getting user by ID %s", id)
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return record.toModel()
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("User not found with email: %s", email)
			return nil, storage.ErrNotFound
		}
		log.WithError(err).Errorf("Error getting user by email %s", email)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return record.toModel()
}
