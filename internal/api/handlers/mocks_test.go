package handlers_test

import (
	"context"
	"mime/multipart"

	"job-tracker-api/internal/api/handlers"
	"job-tracker-api/internal/models"
	"job-tracker-api/internal/services"
	"job-tracker-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockApplicationService is a mock type for services.ApplicationService
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Submit(ctx context.Context, actor dto.Actor, raw map[string]any, resume *dto.ResumeAttachment) (*models.Application, error) {
	args := m.Called(ctx, actor, raw, resume)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) ListOwned(ctx context.Context, actor dto.Actor, query dto.ListApplicationsQuery) ([]models.Application, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationService) GetOwned(ctx context.Context, actor dto.Actor, id uuid.UUID) (*models.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateOwned(ctx context.Context, actor dto.Actor, id uuid.UUID, raw map[string]any) (*models.Application, error) {
	args := m.Called(ctx, actor, id, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) DeleteOwned(ctx context.Context, actor dto.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

// MockAdminService is a mock type for services.AdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListAll(ctx context.Context, query dto.ListApplicationsQuery) ([]models.Application, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockAdminService) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateStatusRequest) (*models.Application, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockAdminService) DeleteAny(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminService) Analytics(ctx context.Context) (*models.Analytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analytics), args.Error(1)
}

// MockJobSearchService is a mock type for services.JobSearchService
type MockJobSearchService struct {
	mock.Mock
}

func (m *MockJobSearchService) Search(ctx context.Context, req *dto.JobSearchRequest) ([]models.ExternalListing, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExternalListing), args.Error(1)
}

func (m *MockJobSearchService) SaveListing(ctx context.Context, actor dto.Actor, req *dto.SaveListingRequest) (*models.Application, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

// MockUserService is a mock type for services.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, claims *services.SessionClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockUserService) VerifyToken(ctx context.Context, token string) (*services.SessionClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SessionClaims), args.Error(1)
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, email, password, fullName string) error {
	args := m.Called(ctx, email, password, fullName)
	return args.Error(0)
}

// MockUploader is a mock type for handlers.ResumeUploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) SaveFileHeader(fh *multipart.FileHeader) (*dto.ResumeAttachment, error) {
	args := m.Called(fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ResumeAttachment), args.Error(1)
}

func (m *MockUploader) MaxSize() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

// Ensure mocks implement the interfaces
var (
	_ services.ApplicationService = (*MockApplicationService)(nil)
	_ services.AdminService       = (*MockAdminService)(nil)
	_ services.JobSearchService   = (*MockJobSearchService)(nil)
	_ services.UserService        = (*MockUserService)(nil)
	_ handlers.ResumeUploader     = (*MockUploader)(nil)
)
