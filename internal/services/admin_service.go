package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"
	"job-tracker-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type adminService struct {
	repo     storage.ApplicationRepository
	resumes  ResumeStore
	validate *validator.Validate
	now      func() time.Time
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(repo storage.ApplicationRepository, resumes ResumeStore, validate *validator.Validate) AdminService {
	return &adminService{
		repo:     repo,
		resumes:  resumes,
		validate: validate,
		now:      time.Now,
	}
}

// ListAll returns every application matching the criteria, newest first.
func (s *adminService) ListAll(ctx context.Context, query dto.ListApplicationsQuery) ([]models.Application, error) {
	filter, err := buildFilter(query, true)
	if err != nil {
		return nil, err
	}

	apps, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err, "listing applications")
	}
	return apps, nil
}

// UpdateStatus changes status and/or admin notes. Absent fields are left
// unchanged; a present empty note clears the notes.
func (s *adminService) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateStatusRequest) (*models.Application, error) {
	logger := opLogger("UpdateStatus", log.Fields{"application_id": id})

	if req.Status != nil && !req.Status.Valid() {
		logger.WithField("status", *req.Status).Warn("Rejected unknown status")
		return nil, newValidationError("status", "must be one of %s", joinQuoted(statusNames()))
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s for status update", id))
	}

	previous := app.Status
	if req.Status != nil {
		app.Status = *req.Status
	}
	if req.AdminNotes != nil {
		app.AdminNotes = strings.TrimSpace(*req.AdminNotes)
	}
	app.UpdatedAt = laterOf(s.now(), app.SubmittedAt)

	if err := validateStruct(s.validate, app); err != nil {
		logger.WithError(err).Error("Stored application violates invariants")
		return nil, err
	}

	updated, err := s.repo.Update(ctx, app)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("updating status of application %s", id))
	}

	logger.WithFields(log.Fields{"from": previous, "to": updated.Status}).Info("Application status updated")
	return updated, nil
}

// DeleteAny hard-deletes any application.
func (s *adminService) DeleteAny(ctx context.Context, id uuid.UUID) error {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching application %s for deletion", id))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, fmt.Sprintf("deleting application %s", id))
	}

	opLogger("DeleteAny", log.Fields{"application_id": id}).Info("Application deleted by admin")
	removeResume(s.resumes, app)
	return nil
}

// Analytics recomputes the dashboard summary from the whole collection.
func (s *adminService) Analytics(ctx context.Context) (*models.Analytics, error) {
	apps, err := s.repo.List(ctx, storage.ApplicationFilter{})
	if err != nil {
		return nil, mapRepoError(err, "loading applications for analytics")
	}
	return ComputeAnalytics(apps, s.now()), nil
}
