package service

import (
	"context"
	"time"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/repository"
	"gamereviews/internal/importer"
	"gamereviews/internal/ingestion/igdb"
	"gamereviews/internal/pkg/pagination"

	"github.com/stretchr/testify/mock"
)

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) ListPublished(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Review), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockReviewStore) ListAll(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Review), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockReviewStore) CountFeatured(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewStore) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Review, error) {
	args := m.Called(ctx, slug, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewStore) FindByTitleOrSlug(ctx context.Context, title, slug string) (*models.Review, error) {
	args := m.Called(ctx, title, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewStore) IncrementViews(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewStore) ListPublishedBy(ctx context.Context, column string, id int64) ([]models.Review, error) {
	args := m.Called(ctx, column, id)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewStore) ListPublishedByGenre(ctx context.Context, genreID int64) ([]models.Review, error) {
	args := m.Called(ctx, genreID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewStore) DeleteByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewStore) SetFlag(ctx context.Context, ids []int64, flag repository.ReviewFlag, value bool) (int64, error) {
	args := m.Called(ctx, ids, flag, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewStore) ToggleLike(ctx context.Context, reviewID int64, userID string) (bool, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewStore) LikesCount(ctx context.Context, reviewID int64) (int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCompanyStore[T models.CompanyModel] struct {
	mock.Mock
	kind string
}

func (m *MockCompanyStore[T]) Kind() string         { return m.kind }
func (m *MockCompanyStore[T]) ReviewColumn() string { return m.kind + "_id" }

func (m *MockCompanyStore[T]) List(ctx context.Context, q pagination.Query) ([]T, pagination.Meta, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]T), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockCompanyStore[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCompanyStore[T]) ListInUse(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockCompanyStore[T]) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyStore[T]) DeleteUnused(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockGenreStore struct {
	mock.Mock
}

func (m *MockGenreStore) List(ctx context.Context, q pagination.Query) ([]models.Genre, pagination.Meta, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Genre), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockGenreStore) GetByID(ctx context.Context, id int64) (*models.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreStore) ListInUse(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Genre), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *models.UserComment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, c *models.UserComment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64, authorID string) error {
	return m.Called(ctx, id, authorID).Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.UserComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserComment), args.Error(1)
}

func (m *MockCommentRepository) ListApproved(ctx context.Context, reviewID int64) ([]models.UserComment, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).([]models.UserComment), args.Error(1)
}

func (m *MockCommentRepository) Approve(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserReviewRepository struct {
	mock.Mock
}

func (m *MockUserReviewRepository) Create(ctx context.Context, ur *models.UserReview) error {
	return m.Called(ctx, ur).Error(0)
}

func (m *MockUserReviewRepository) Update(ctx context.Context, ur *models.UserReview) error {
	return m.Called(ctx, ur).Error(0)
}

func (m *MockUserReviewRepository) Delete(ctx context.Context, id int64, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockUserReviewRepository) GetByID(ctx context.Context, id int64) (*models.UserReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserReview), args.Error(1)
}

func (m *MockUserReviewRepository) GetByUser(ctx context.Context, reviewID int64, userID string) (*models.UserReview, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserReview), args.Error(1)
}

func (m *MockUserReviewRepository) ListApproved(ctx context.Context, reviewID int64) ([]models.UserReview, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).([]models.UserReview), args.Error(1)
}

func (m *MockUserReviewRepository) Approve(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Search(ctx context.Context, term string, limit int) ([]igdb.GameRecord, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]igdb.GameRecord), args.Error(1)
}

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) ImportSelection(ctx context.Context, sels []importer.Selection) (*importer.BatchReport, error) {
	args := m.Called(ctx, sels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.BatchReport), args.Error(1)
}

func (m *MockImporter) AutoGenerate(ctx context.Context, opts importer.AutoOptions) (*importer.BatchReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.BatchReport), args.Error(1)
}

func (m *MockImporter) ValidateAuto(opts importer.AutoOptions) error {
	return m.Called(opts).Error(0)
}

// countingNav records navigation invalidations.
type countingNav struct {
	calls int
}

func (n *countingNav) InvalidateNavigation(context.Context) { n.calls++ }
