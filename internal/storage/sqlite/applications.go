package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ApplicationRepo implements storage.ApplicationRepository on SQLite through gorm.
type ApplicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	record := newApplicationRecord(app)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			log.WithError(err).Errorf("Error creating application for user %s (constraint violation)", app.UserID)
			return nil, fmt.Errorf("failed to create application: %w", storage.ErrConflict)
		}
		log.WithError(err).Errorf("Error creating application for user %s", app.UserID)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Application created successfully with ID: %s", record.ID)
	return record.toModel()
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var record applicationRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Application not found with ID: %s", id)
			return nil, storage.ErrNotFound
		}
		log.WithError(err).Errorf("Error retrieving application by ID %s", id)
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}
	return record.toModel()
}

func (r *ApplicationRepo) List(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	query := r.db.WithContext(ctx).Model(&applicationRecord{})

	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", filter.OwnerID.String())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.DesiredRole != "" {
		query = query.Where(`desired_role_fold LIKE ? ESCAPE '\'`, containsPattern(filter.DesiredRole))
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(`(full_name_fold LIKE ? ESCAPE '\' OR email_fold LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if filter.Skill != "" {
		query = query.Where("EXISTS (SELECT 1 FROM json_each(applications.skills) WHERE json_each.value = ?)", filter.Skill)
	}

	var records []applicationRecord
	if err := query.Order("submitted_at DESC").Find(&records).Error; err != nil {
		log.WithError(err).Error("Error querying applications")
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps := make([]models.Application, 0, len(records))
	for _, record := range records {
		app, err := record.toModel()
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

func (r *ApplicationRepo) Update(ctx context.Context, app *models.Application) (*models.Application, error) {
	record := newApplicationRecord(app)

	res := r.db.WithContext(ctx).
		Model(&applicationRecord{}).
		Where("id = ?", record.ID).
		Select("*").
		Omit("id", "user_id", "submitted_at").
		Updates(&record)
	if res.Error != nil {
		log.WithError(res.Error).Errorf("Error updating application %s", app.ID)
		return nil, fmt.Errorf("failed to update application %s: %w", app.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("Application not found for update with ID: %s", app.ID)
		return nil, storage.ErrNotFound
	}
	return r.GetByID(ctx, app.ID)
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&applicationRecord{})
	if res.Error != nil {
		log.WithError(res.Error).Errorf("Error deleting application %s", id)
		return fmt.Errorf("failed to delete application %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("Application not found for deletion with ID: %s", id)
		return storage.ErrNotFound
	}

	log.Printf("Application deleted successfully with ID: %s", id)
	return nil
}

// containsPattern builds a case-folded LIKE pattern matching s anywhere,
// escaping LIKE wildcards in s.
func containsPattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(fold(s))
	return "%" + escaped + "%"
}
