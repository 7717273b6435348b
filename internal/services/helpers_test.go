package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"
	"job-tracker-api/internal/storage/sqlite"
	"job-tracker-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixedClock is a settable clock for deterministic timestamps.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *fixedClock { return &fixedClock{t: t} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeResumes records removed resume URLs.
type fakeResumes struct {
	removed []string
}

func (f *fakeResumes) Remove(url string) error {
	f.removed = append(f.removed, url)
	return nil
}

// memoryRevocations is an in-process TokenRevocationStore.
type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (m *memoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = make(map[string]time.Duration)
	}
	m.revoked[tokenID] = ttl
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// MockApplicationRepository is a mock type for the storage.ApplicationRepository interface
type MockApplicationRepository struct {
	mock.Mock
}

var _ storage.ApplicationRepository = (*MockApplicationRepository)(nil)

func (m *MockApplicationRepository) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	args := m.Called(ctx, app)
	if res, ok := args.Get(0).(*models.Application); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	args := m.Called(ctx, id)
	if res, ok := args.Get(0).(*models.Application); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	args := m.Called(ctx, filter)
	if res, ok := args.Get(0).([]models.Application); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, app *models.Application) (*models.Application, error) {
	args := m.Called(ctx, app)
	if res, ok := args.Get(0).(*models.Application); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockListingSearcher is a mock type for the ListingSearcher interface
type MockListingSearcher struct {
	mock.Mock
}

func (m *MockListingSearcher) Search(ctx context.Context, query string, page int) ([]models.ExternalListing, error) {
	args := m.Called(ctx, query, page)
	if res, ok := args.Get(0).([]models.ExternalListing); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// testEnv wires the services over a temporary sqlite database.
type testEnv struct {
	clock   *fixedClock
	apps    *sqlite.ApplicationRepo
	users   *sqlite.UserRepo
	resumes *fakeResumes

	appSvc   *applicationService
	adminSvc *adminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	clock := newClock(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	apps := sqlite.NewApplicationRepo(db)
	resumes := &fakeResumes{}
	validate := NewValidator()

	appSvc := NewApplicationService(apps, resumes, validate).(*applicationService)
	appSvc.now = clock.Now
	adminSvc := NewAdminService(apps, resumes, validate).(*adminService)
	adminSvc.now = clock.Now

	return &testEnv{
		clock:    clock,
		apps:     apps,
		users:    sqlite.NewUserRepo(db),
		resumes:  resumes,
		appSvc:   appSvc,
		adminSvc: adminSvc,
	}
}

func applicant() dto.Actor {
	return dto.Actor{UserID: uuid.New(), Role: models.RoleApplicant}
}

func admin() dto.Actor {
	return dto.Actor{UserID: uuid.New(), Role: models.RoleAdmin}
}

var testResume = &dto.ResumeAttachment{URL: "/uploads/resume.pdf", FileName: "resume.pdf"}

// validRaw is a complete submission as a multipart form would deliver it.
func validRaw() map[string]any {
	return map[string]any{
		"fullName":             "  Jane Doe ",
		"email":                "jane@example.com",
		"phone":                "555-0100",
		"address":              "1 Main St",
		"linkedIn":             "https://linkedin.com/in/jane",
		"highestQualification": "Bachelor's Degree",
		"universityName":       "State University",
		"graduationYear":       "2020",
		"gpa":                  "3.8",
		"workExperience":       `[{"companyName":"Acme","role":"Engineer","startDate":"2021-01","currentlyWorking":true,"responsibilities":"APIs"}]`,
		"skills":               `["Go", " SQL ", "Go", ""]`,
		"certifications":       `[]`,
		"coverLetter":          "Hello",
		"desiredRole":          "Backend Engineer",
		"expectedSalary":       "$100k",
		"locationPreferences":  `["Remote"]`,
	}
}

func submit(t *testing.T, env *testEnv, actor dto.Actor, mutate func(map[string]any)) *models.Application {
	t.Helper()
	raw := validRaw()
	if mutate != nil {
		mutate(raw)
	}
	app, err := env.appSvc.Submit(context.Background(), actor, raw, testResume)
	require.NoError(t, err)
	return app
}

func setStatus(t *testing.T, env *testEnv, id uuid.UUID, status models.Status) {
	t.Helper()
	_, err := env.adminSvc.UpdateStatus(context.Background(), id, &dto.UpdateStatusRequest{Status: &status})
	require.NoError(t, err)
}
