package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-tracker-api/internal/jobsearch"
	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"
	"job-tracker-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// Literal defaults for fields a saved listing cannot provide.
const (
	defaultNotSpecified = "Not specified"
	defaultSalary       = "Not disclosed"
	defaultJobType      = "Full-time"
)

type jobSearchService struct {
	searcher ListingSearcher
	apps     storage.ApplicationRepository
	users    storage.UserRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewJobSearchService creates a new instance of JobSearchService.
func NewJobSearchService(searcher ListingSearcher, apps storage.ApplicationRepository, users storage.UserRepository, validate *validator.Validate) JobSearchService {
	return &jobSearchService{
		searcher: searcher,
		apps:     apps,
		users:    users,
		validate: validate,
		now:      time.Now,
	}
}

// Search forwards the composed query to the upstream API.
func (s *jobSearchService) Search(ctx context.Context, req *dto.JobSearchRequest) ([]models.ExternalListing, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, newValidationError("query", "is required")
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	composed := ComposeSearchQuery(query, req.Location, req.Remote)
	listings, err := s.searcher.Search(ctx, composed, page)
	if err != nil {
		logger := opLogger("Search", log.Fields{"query": composed, "page": page})
		if errors.Is(err, jobsearch.ErrRateLimited) {
			logger.Warn("Upstream job search rate limited")
			return nil, fmt.Errorf("%w: try again later", ErrRateLimited)
		}
		logger.WithError(err).Error("Upstream job search failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return listings, nil
}

// ComposeSearchQuery appends " in {location}" unless the location is empty
// or "any", and " remote" when remoteOnly is set.
func ComposeSearchQuery(query, location string, remoteOnly bool) string {
	composed := strings.TrimSpace(query)
	if location = strings.TrimSpace(location); location != "" && !strings.EqualFold(location, "any") {
		composed += " in " + location
	}
	if remoteOnly {
		composed += " remote"
	}
	return composed
}

// SaveListing synthesizes an Applied application owned by the actor from
// an external listing.
func (s *jobSearchService) SaveListing(ctx context.Context, actor dto.Actor, req *dto.SaveListingRequest) (*models.Application, error) {
	logger := opLogger("SaveListing", log.Fields{"user_id": actor.UserID})

	if req.UserID != nil && *req.UserID != actor.UserID {
		logger.WithField("body_user_id", *req.UserID).Warn("Listing save for another user denied")
		return nil, fmt.Errorf("%w: cannot save listings for another user", ErrForbidden)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, newValidationError("title", "is required")
	}
	company := strings.TrimSpace(req.Company)
	if company == "" {
		return nil, newValidationError("company", "is required")
	}

	owner, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching owner %s of saved listing", actor.UserID))
	}

	now := s.now()
	location := orDefault(req.Location, defaultNotSpecified)
	payload := &dto.ApplicationPayload{
		FullName:             owner.FullName,
		Email:                owner.Email,
		Phone:                orDefault(owner.Phone, defaultNotSpecified),
		Address:              defaultNotSpecified,
		HighestQualification: string(models.QualificationOther),
		UniversityName:       defaultNotSpecified,
		GraduationYear:       now.Year(),
		GPA:                  defaultNotSpecified,
		CoverLetter:          jobsearch.PlainText(req.Description),
		DesiredRole:          title,
		ExpectedSalary:       orDefault(req.Salary, defaultSalary),
		LocationPreferences:  []string{location},
	}
	normalizePayload(payload)

	app := newApplication(actor.UserID, models.SourceExternal, payload, now)
	app.JobTitle = title
	app.CompanyName = company
	app.JobLocation = location
	app.JobPostingLink = strings.TrimSpace(req.ApplyLink)
	app.JobType = orDefault(req.EmploymentType, defaultJobType)

	if err := finalizeApplication(s.validate, app); err != nil {
		logger.WithError(err).Warn("Synthesized application failed validation")
		return nil, err
	}

	created, err := s.apps.Create(ctx, app)
	if err != nil {
		return nil, mapRepoError(err, "saving external listing")
	}

	logger.WithField("application_id", created.ID).Info("External listing saved to tracker")
	return created, nil
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
