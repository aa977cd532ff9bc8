package handler

import (
	"context"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/service"
	"gamereviews/internal/importer"
	"gamereviews/internal/pkg/pagination"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	args := m.Called(username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	args := m.Called(username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListReviews(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error) {
	args := m.Called(q)
	return args.Get(0).([]models.Review), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockCatalogService) GetReview(ctx context.Context, slug string) (*service.ReviewDetail, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewDetail), args.Error(1)
}

func (m *MockCatalogService) ListPublishers(ctx context.Context, q pagination.Query) ([]models.Company, pagination.Meta, error) {
	args := m.Called(q)
	return args.Get(0).([]models.Company), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockCatalogService) GetPublisher(ctx context.Context, slug string) (*service.CompanyDetail, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompanyDetail), args.Error(1)
}

func (m *MockCatalogService) ListDevelopers(ctx context.Context, q pagination.Query) ([]models.Company, pagination.Meta, error) {
	args := m.Called(q)
	return args.Get(0).([]models.Company), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockCatalogService) GetDeveloper(ctx context.Context, slug string) (*service.CompanyDetail, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompanyDetail), args.Error(1)
}

func (m *MockCatalogService) ListGenres(ctx context.Context, q pagination.Query) ([]models.Genre, pagination.Meta, error) {
	args := m.Called(q)
	return args.Get(0).([]models.Genre), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockCatalogService) GetGenre(ctx context.Context, id int64) (*service.GenreDetail, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenreDetail), args.Error(1)
}

func (m *MockCatalogService) Navigation(ctx context.Context) (*service.Navigation, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Navigation), args.Error(1)
}

func (m *MockCatalogService) InvalidateNavigation(ctx context.Context) {
	m.Called()
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ReviewPopulate(ctx context.Context, page int) (*service.ReviewPopulatePage, error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewPopulatePage), args.Error(1)
}

func (m *MockAdminService) ReviewAction(ctx context.Context, action service.Action, ids []int64) (service.Message, error) {
	args := m.Called(action, ids)
	return args.Get(0).(service.Message), args.Error(1)
}

func (m *MockAdminService) DeleteReview(ctx context.Context, id int64) service.Message {
	return m.Called(id).Get(0).(service.Message)
}

func (m *MockAdminService) PublisherPopulate(ctx context.Context, page int) (*service.CompanyPopulatePage, error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompanyPopulatePage), args.Error(1)
}

func (m *MockAdminService) PublisherAction(ctx context.Context, action service.Action, ids []int64) (service.Message, error) {
	args := m.Called(action, ids)
	return args.Get(0).(service.Message), args.Error(1)
}

func (m *MockAdminService) DeveloperPopulate(ctx context.Context, page int) (*service.CompanyPopulatePage, error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompanyPopulatePage), args.Error(1)
}

func (m *MockAdminService) DeveloperAction(ctx context.Context, action service.Action, ids []int64) (service.Message, error) {
	args := m.Called(action, ids)
	return args.Get(0).(service.Message), args.Error(1)
}

func (m *MockAdminService) ApproveComments(ctx context.Context, ids []int64) service.Message {
	return m.Called(ids).Get(0).(service.Message)
}

func (m *MockAdminService) ApproveUserReviews(ctx context.Context, ids []int64) service.Message {
	return m.Called(ids).Get(0).(service.Message)
}

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Search(ctx context.Context, term string, limit int) ([]service.SearchResult, error) {
	args := m.Called(term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SearchResult), args.Error(1)
}

func (m *MockImportService) ImportSelection(ctx context.Context, selections []importer.Selection) (*importer.BatchReport, error) {
	args := m.Called(selections)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.BatchReport), args.Error(1)
}

func (m *MockImportService) AutoGenerate(ctx context.Context, opts importer.AutoOptions) (*importer.BatchReport, error) {
	args := m.Called(opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.BatchReport), args.Error(1)
}

type MockEngagementService struct {
	mock.Mock
}

func (m *MockEngagementService) ToggleLike(ctx context.Context, slug, userID string) (bool, int64, error) {
	args := m.Called(slug, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockEngagementService) CreateComment(ctx context.Context, slug, userID, body string) (*models.UserComment, error) {
	args := m.Called(slug, userID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserComment), args.Error(1)
}

func (m *MockEngagementService) UpdateComment(ctx context.Context, slug string, commentID int64, userID, body string) (*models.UserComment, error) {
	args := m.Called(slug, commentID, userID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserComment), args.Error(1)
}

func (m *MockEngagementService) DeleteComment(ctx context.Context, slug string, commentID int64, userID string) error {
	return m.Called(slug, commentID, userID).Error(0)
}

func (m *MockEngagementService) CreateUserReview(ctx context.Context, slug, userID string, rating int, text string) (*models.UserReview, error) {
	args := m.Called(slug, userID, rating, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserReview), args.Error(1)
}

func (m *MockEngagementService) UpdateUserReview(ctx context.Context, slug string, id int64, userID string, rating int, text string) (*models.UserReview, error) {
	args := m.Called(slug, id, userID, rating, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserReview), args.Error(1)
}

func (m *MockEngagementService) DeleteUserReview(ctx context.Context, slug string, id int64, userID string) error {
	return m.Called(slug, id, userID).Error(0)
}
