package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gamereviews/internal/cache"
	"gamereviews/internal/http-api/models"
	"gamereviews/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	reviews     *MockReviewStore
	publishers  *MockCompanyStore[models.Publisher]
	developers  *MockCompanyStore[models.Developer]
	genres      *MockGenreStore
	comments    *MockCommentRepository
	userReviews *MockUserReviewRepository
	cache       *memCache
	svc         CatalogService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		reviews:     new(MockReviewStore),
		publishers:  &MockCompanyStore[models.Publisher]{kind: "publisher"},
		developers:  &MockCompanyStore[models.Developer]{kind: "developer"},
		genres:      new(MockGenreStore),
		comments:    new(MockCommentRepository),
		userReviews: new(MockUserReviewRepository),
		cache:       newMemCache(),
	}
	f.svc = NewCatalogService(CatalogDeps{
		Reviews:     f.reviews,
		Publishers:  f.publishers,
		Developers:  f.developers,
		Genres:      f.genres,
		Comments:    f.comments,
		UserReviews: f.userReviews,
		Cache:       f.cache,
		CacheTTL:    time.Minute,
		Logger:      quietLogger(),
	})
	return f
}

func TestGetReview_IncrementsViewsAndLoadsEngagement(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	review := &models.Review{ID: 7, Title: "Halo", Slug: "halo", Views: 3}

	f.reviews.On("GetBySlug", ctx, "halo", true).Return(review, nil)
	f.reviews.On("IncrementViews", ctx, int64(7)).Return(nil)
	f.comments.On("ListApproved", ctx, int64(7)).Return([]models.UserComment{{ID: 1, Body: "first"}}, nil)
	f.userReviews.On("ListApproved", ctx, int64(7)).Return([]models.UserReview{{ID: 2, Rating: 8}}, nil)

	detail, err := f.svc.GetReview(ctx, "halo")
	require.NoError(t, err)
	assert.Equal(t, uint(4), detail.Review.Views)
	assert.Len(t, detail.Comments, 1)
	assert.Len(t, detail.UserReviews, 1)
	f.reviews.AssertExpectations(t)
}

func TestGetReview_UnknownSlug(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	f.reviews.On("GetBySlug", ctx, "nope", true).Return(nil, fmt.Errorf("get review by slug: %w", gorm.ErrRecordNotFound))

	_, err := f.svc.GetReview(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	f.reviews.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestGetPublisher_ListsPublishedReviews(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	pub := &models.Publisher{Company: models.Company{ID: 3, Name: "Microsoft", Slug: "microsoft"}}

	f.publishers.On("GetBySlug", ctx, "microsoft").Return(pub, nil)
	f.reviews.On("ListPublishedBy", ctx, "publisher_id", int64(3)).Return([]models.Review{{ID: 1}, {ID: 2}}, nil)

	detail, err := f.svc.GetPublisher(ctx, "microsoft")
	require.NoError(t, err)
	assert.Equal(t, "Microsoft", detail.Company.Name)
	assert.Len(t, detail.Reviews, 2)
}

func TestGetDeveloper_UnknownSlug(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	f.developers.On("GetBySlug", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.GetDeveloper(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPublishers_FlattensCompanies(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	q := pagination.Query{Page: 1, Size: pagination.ListSize, Sort: pagination.SortAZ}
	f.publishers.On("List", ctx, q).Return([]models.Publisher{
		{Company: models.Company{ID: 1, Name: "Capcom", GamesCount: 2}},
	}, pagination.Meta{Total: 1, CurrentPage: 1, TotalPage: 1}, nil)

	list, meta, err := f.svc.ListPublishers(ctx, q)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Capcom", list[0].Name)
	assert.Equal(t, int64(2), list[0].GamesCount)
	assert.Equal(t, int64(1), meta.Total)
}

func TestNavigation_CachesUntilInvalidated(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	f.genres.On("ListInUse", ctx).Return([]models.Genre{{ID: 1, Name: "Shooter", GamesCount: 2}}, nil).Twice()
	f.publishers.On("ListInUse", ctx).Return([]models.Publisher{{Company: models.Company{ID: 1, Name: "Microsoft"}}}, nil).Twice()
	f.developers.On("ListInUse", ctx).Return([]models.Developer{}, nil).Twice()

	nav, err := f.svc.Navigation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Shooter", nav.Genres[0].Name)
	assert.Equal(t, "Microsoft", nav.Publishers[0].Name)
	assert.NotNil(t, nav.Developers)

	// second call is served from the cache
	_, err = f.svc.Navigation(ctx)
	require.NoError(t, err)
	f.genres.AssertNumberOfCalls(t, "ListInUse", 1)

	f.svc.InvalidateNavigation(ctx)
	assert.ElementsMatch(t, cache.NavKeys, f.cache.deleted)

	_, err = f.svc.Navigation(ctx)
	require.NoError(t, err)
	f.genres.AssertNumberOfCalls(t, "ListInUse", 2)
	f.publishers.AssertNumberOfCalls(t, "ListInUse", 2)
}

type brokenCache struct{}

func (brokenCache) GetJSON(context.Context, string, any) error {
	return errors.New("redis: connection refused")
}
func (brokenCache) SetJSON(context.Context, string, any, time.Duration) error {
	return errors.New("redis: connection refused")
}
func (brokenCache) Delete(context.Context, ...string) error {
	return errors.New("redis: connection refused")
}

func TestNavigation_BrokenCacheFallsBackToStore(t *testing.T) {
	f := newCatalogFixture()
	svc := NewCatalogService(CatalogDeps{
		Reviews:    f.reviews,
		Publishers: f.publishers,
		Developers: f.developers,
		Genres:     f.genres,
		Cache:      brokenCache{},
		Logger:     quietLogger(),
	})
	ctx := context.Background()
	f.genres.On("ListInUse", ctx).Return([]models.Genre{{Name: "RPG"}}, nil)
	f.publishers.On("ListInUse", ctx).Return([]models.Publisher{}, nil)
	f.developers.On("ListInUse", ctx).Return([]models.Developer{}, nil)

	nav, err := svc.Navigation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RPG", nav.Genres[0].Name)
	svc.InvalidateNavigation(ctx)
}
