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

type applicationService struct {
	repo     storage.ApplicationRepository
	resumes  ResumeStore
	validate *validator.Validate
	now      func() time.Time
}

// NewApplicationService creates a new instance of ApplicationService.
// resumes may be nil when uploaded blobs need no cleanup.
func NewApplicationService(repo storage.ApplicationRepository, resumes ResumeStore, validate *validator.Validate) ApplicationService {
	return &applicationService{
		repo:     repo,
		resumes:  resumes,
		validate: validate,
		now:      time.Now,
	}
}

// Submit validates the raw payload and stores a new application owned by the actor.
func (s *applicationService) Submit(ctx context.Context, actor dto.Actor, raw map[string]any, resume *dto.ResumeAttachment) (*models.Application, error) {
	logger := opLogger("Submit", log.Fields{"user_id": actor.UserID})

	payload, err := DecodeApplicationPayload(raw)
	if err != nil {
		logger.WithError(err).Warn("Rejected application payload")
		s.discardResume(resume)
		return nil, err
	}

	app := newApplication(actor.UserID, models.SourceSubmitted, payload, s.now())
	if resume != nil {
		app.ResumeURL = resume.URL
		app.ResumeFileName = resume.FileName
	}

	if err := finalizeApplication(s.validate, app); err != nil {
		logger.WithError(err).Warn("Application failed validation")
		s.discardResume(resume)
		return nil, err
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		s.discardResume(resume)
		return nil, mapRepoError(err, "creating application")
	}

	logger.WithField("application_id", created.ID).Info("Application submitted")
	return created, nil
}

// ListOwned returns the actor's applications, newest first. Only the status
// and role criteria apply in this scope.
func (s *applicationService) ListOwned(ctx context.Context, actor dto.Actor, query dto.ListApplicationsQuery) ([]models.Application, error) {
	filter, err := buildFilter(query, false)
	if err != nil {
		return nil, err
	}
	filter.OwnerID = &actor.UserID

	apps, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err, "listing own applications")
	}
	return apps, nil
}

// GetOwned returns the application if the actor owns it or is an admin.
func (s *applicationService) GetOwned(ctx context.Context, actor dto.Actor, id uuid.UUID) (*models.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s", id))
	}
	if app.UserID != actor.UserID && !actor.IsAdmin() {
		opLogger("GetOwned", log.Fields{"user_id": actor.UserID, "application_id": id}).Warn("Access to foreign application denied")
		return nil, fmt.Errorf("%w: application belongs to another user", ErrForbidden)
	}
	return app, nil
}

// UpdateOwned applies the patch to an application that is still Applied.
// Only the owner may use this path.
func (s *applicationService) UpdateOwned(ctx context.Context, actor dto.Actor, id uuid.UUID, raw map[string]any) (*models.Application, error) {
	logger := opLogger("UpdateOwned", log.Fields{"user_id": actor.UserID, "application_id": id})

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s for update", id))
	}
	if app.UserID != actor.UserID {
		logger.Warn("Update of foreign application denied")
		return nil, fmt.Errorf("%w: only the owner can update an application", ErrForbidden)
	}
	if app.UpdateLocked() {
		logger.WithField("status", app.Status).Warn("Update attempted after review started")
		return nil, fmt.Errorf("%w: application can only be updated while %q, current status is %q",
			ErrInvalidState, models.StatusApplied, app.Status)
	}

	patch, err := DecodeApplicationPatch(raw)
	if err != nil {
		return nil, err
	}
	applyPatch(app, patch)
	app.UpdatedAt = laterOf(s.now(), app.SubmittedAt)

	if err := finalizeApplication(s.validate, app); err != nil {
		logger.WithError(err).Warn("Patched application failed validation")
		return nil, err
	}

	updated, err := s.repo.Update(ctx, app)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("updating application %s", id))
	}

	logger.Info("Application updated")
	return updated, nil
}

// DeleteOwned hard-deletes the actor's application regardless of status.
func (s *applicationService) DeleteOwned(ctx context.Context, actor dto.Actor, id uuid.UUID) error {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching application %s for deletion", id))
	}
	if app.UserID != actor.UserID {
		opLogger("DeleteOwned", log.Fields{"user_id": actor.UserID, "application_id": id}).Warn("Deletion of foreign application denied")
		return fmt.Errorf("%w: only the owner can delete an application", ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, fmt.Sprintf("deleting application %s", id))
	}
	removeResume(s.resumes, app)
	return nil
}

func (s *applicationService) discardResume(resume *dto.ResumeAttachment) {
	if resume == nil || s.resumes == nil {
		return
	}
	if err := s.resumes.Remove(resume.URL); err != nil {
		log.WithError(err).WithField("resume_url", resume.URL).Warn("Failed to remove orphaned resume")
	}
}

// newApplication is the single constructor for both submitted and synthesized
// applications. The result still has to pass finalizeApplication.
func newApplication(owner uuid.UUID, source models.Source, p *dto.ApplicationPayload, now time.Time) *models.Application {
	return &models.Application{
		ID:                   uuid.New(),
		UserID:               owner,
		FullName:             p.FullName,
		Email:                p.Email,
		Phone:                p.Phone,
		Address:              p.Address,
		LinkedIn:             p.LinkedIn,
		GitHub:               p.GitHub,
		Portfolio:            p.Portfolio,
		HighestQualification: models.Qualification(p.HighestQualification),
		UniversityName:       p.UniversityName,
		GraduationYear:       p.GraduationYear,
		GPA:                  p.GPA,
		WorkExperience:       p.WorkExperience,
		Skills:               p.Skills,
		Certifications:       p.Certifications,
		CoverLetter:          p.CoverLetter,
		DesiredRole:          p.DesiredRole,
		ExpectedSalary:       p.ExpectedSalary,
		LocationPreferences:  p.LocationPreferences,
		Source:               source,
		Status:               models.StatusApplied,
		SubmittedAt:          now,
		UpdatedAt:            now,
	}
}

// finalizeApplication checks every persisted-record invariant and fills
// empty list fields.
func finalizeApplication(v *validator.Validate, app *models.Application) error {
	if err := validateStruct(v, app); err != nil {
		return err
	}
	app.EnsureSlices()
	return nil
}

func applyPatch(app *models.Application, p *dto.ApplicationPatch) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&app.FullName, p.FullName)
	setString(&app.Email, p.Email)
	setString(&app.Phone, p.Phone)
	setString(&app.Address, p.Address)
	setString(&app.LinkedIn, p.LinkedIn)
	setString(&app.GitHub, p.GitHub)
	setString(&app.Portfolio, p.Portfolio)
	if p.HighestQualification != nil {
		app.HighestQualification = models.Qualification(*p.HighestQualification)
	}
	setString(&app.UniversityName, p.UniversityName)
	if p.GraduationYear != nil {
		app.GraduationYear = *p.GraduationYear
	}
	setString(&app.GPA, p.GPA)
	if p.WorkExperience != nil {
		app.WorkExperience = *p.WorkExperience
	}
	if p.Skills != nil {
		app.Skills = *p.Skills
	}
	if p.Certifications != nil {
		app.Certifications = *p.Certifications
	}
	setString(&app.CoverLetter, p.CoverLetter)
	setString(&app.DesiredRole, p.DesiredRole)
	setString(&app.ExpectedSalary, p.ExpectedSalary)
	if p.LocationPreferences != nil {
		app.LocationPreferences = *p.LocationPreferences
	}
	// Empty lists must fail required checks like on submission.
	for _, list := range []*[]string{&app.Skills, &app.Certifications, &app.LocationPreferences} {
		if len(*list) == 0 {
			*list = nil
		}
	}
	if len(app.WorkExperience) == 0 {
		app.WorkExperience = nil
	}
}

// buildFilter translates listing criteria into a store filter. The admin
// scope additionally honors search and skills.
func buildFilter(query dto.ListApplicationsQuery, adminScope bool) (storage.ApplicationFilter, error) {
	var filter storage.ApplicationFilter

	status := strings.TrimSpace(query.Status)
	if status != "" && !strings.EqualFold(status, "all") {
		s := models.Status(status)
		if !s.Valid() {
			return filter, newValidationError("status", "must be \"all\" or one of %s", joinQuoted(statusNames()))
		}
		filter.Status = &s
	}
	filter.DesiredRole = strings.TrimSpace(query.Role)

	if adminScope {
		filter.Search = strings.TrimSpace(query.Search)
		filter.Skill = strings.TrimSpace(query.Skills)
	}
	return filter, nil
}

func removeResume(resumes ResumeStore, app *models.Application) {
	if resumes == nil || app.ResumeURL == "" {
		return
	}
	if err := resumes.Remove(app.ResumeURL); err != nil {
		log.WithError(err).WithField("application_id", app.ID).Warn("Failed to remove resume of deleted application")
	}
}

// laterOf keeps updatedAt from ever preceding submittedAt.
func laterOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return b
	}
	return a
}
