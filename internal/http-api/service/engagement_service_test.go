package service

import (
	"context"
	"testing"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engagementFixture struct {
	reviews     *MockReviewStore
	comments    *MockCommentRepository
	userReviews *MockUserReviewRepository
	svc         EngagementService
}

func newEngagementFixture() *engagementFixture {
	f := &engagementFixture{
		reviews:     new(MockReviewStore),
		comments:    new(MockCommentRepository),
		userReviews: new(MockUserReviewRepository),
	}
	f.svc = NewEngagementService(f.reviews, f.comments, f.userReviews, quietLogger())
	f.reviews.On("GetBySlug", mock.Anything, "halo", true).Return(&models.Review{ID: 10, Slug: "halo"}, nil)
	f.reviews.On("GetBySlug", mock.Anything, "missing", true).Return(nil, gorm.ErrRecordNotFound)
	return f
}

func TestToggleLike(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	f.reviews.On("ToggleLike", ctx, int64(10), "u1").Return(true, nil)
	f.reviews.On("LikesCount", ctx, int64(10)).Return(int64(5), nil)

	liked, count, err := f.svc.ToggleLike(ctx, "halo", "u1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(5), count)

	_, _, err = f.svc.ToggleLike(ctx, "missing", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateComment(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	f.comments.On("Create", ctx, mock.MatchedBy(func(c *models.UserComment) bool {
		return c.ReviewID == 10 && c.AuthorID == "u1" && c.Body == "Great read" && !c.Approved
	})).Return(nil)

	comment, err := f.svc.CreateComment(ctx, "halo", "u1", "  Great read ")
	require.NoError(t, err)
	assert.Equal(t, "Great read", comment.Body)

	_, err = f.svc.CreateComment(ctx, "halo", "u1", "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestUpdateComment_ResetsApproval(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	f.comments.On("GetByID", ctx, int64(3)).Return(&models.UserComment{ID: 3, ReviewID: 10, AuthorID: "u1", Body: "old", Approved: true}, nil)
	f.comments.On("Update", ctx, mock.AnythingOfType("*models.UserComment")).Return(nil)

	comment, err := f.svc.UpdateComment(ctx, "halo", 3, "u1", "new text")
	require.NoError(t, err)
	assert.Equal(t, "new text", comment.Body)
	assert.False(t, comment.Approved)
}

func TestUpdateComment_Ownership(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	f.comments.On("GetByID", ctx, int64(3)).Return(&models.UserComment{ID: 3, ReviewID: 10, AuthorID: "u1"}, nil)
	f.comments.On("GetByID", ctx, int64(4)).Return(&models.UserComment{ID: 4, ReviewID: 99, AuthorID: "u2"}, nil)

	_, err := f.svc.UpdateComment(ctx, "halo", 3, "u2", "hijack")
	assert.ErrorIs(t, err, ErrNotOwner)

	// comment of another review is not reachable through this slug
	_, err = f.svc.UpdateComment(ctx, "halo", 4, "u2", "text")
	assert.ErrorIs(t, err, ErrNotFound)

	f.comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteComment(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	f.comments.On("GetByID", ctx, int64(3)).Return(&models.UserComment{ID: 3, ReviewID: 10, AuthorID: "u1"}, nil)
	f.comments.On("Delete", ctx, int64(3), "u1").Return(repository.ErrNotOwnedOrMissing)

	assert.ErrorIs(t, f.svc.DeleteComment(ctx, "halo", 3, "u1"), ErrNotFound)
}

func TestCreateUserReview(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		f := newEngagementFixture()
		f.userReviews.On("GetByUser", ctx, int64(10), "u1").Return(nil, gorm.ErrRecordNotFound)
		f.userReviews.On("Create", ctx, mock.AnythingOfType("*models.UserReview")).Return(nil)

		ur, err := f.svc.CreateUserReview(ctx, "halo", "u1", 9, "Loved it")
		require.NoError(t, err)
		assert.Equal(t, 9, ur.Rating)
		assert.False(t, ur.Approved)
	})

	t.Run("second review", func(t *testing.T) {
		f := newEngagementFixture()
		f.userReviews.On("GetByUser", ctx, int64(10), "u1").Return(&models.UserReview{ID: 1}, nil)
		_, err := f.svc.CreateUserReview(ctx, "halo", "u1", 9, "Again")
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		f := newEngagementFixture()
		f.userReviews.On("GetByUser", ctx, int64(10), "u1").Return(nil, gorm.ErrRecordNotFound)
		f.userReviews.On("Create", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey)
		_, err := f.svc.CreateUserReview(ctx, "halo", "u1", 9, "Again")
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("rating bounds", func(t *testing.T) {
		f := newEngagementFixture()
		for _, rating := range []int{0, 11, -3} {
			_, err := f.svc.CreateUserReview(ctx, "halo", "u1", rating, "text")
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
	})
}

func TestUpdateUserReview_ResetsApproval(t *testing.T) {
	f := newEngagementFixture()
	ctx := context.Background()
	f.userReviews.On("GetByID", ctx, int64(5)).Return(&models.UserReview{ID: 5, ReviewID: 10, UserID: "u1", Rating: 4, Approved: true}, nil)
	f.userReviews.On("Update", ctx, mock.AnythingOfType("*models.UserReview")).Return(nil)

	ur, err := f.svc.UpdateUserReview(ctx, "halo", 5, "u1", 7, "Better on replay")
	require.NoError(t, err)
	assert.Equal(t, 7, ur.Rating)
	assert.False(t, ur.Approved)

	_, err = f.svc.UpdateUserReview(ctx, "halo", 5, "u2", 7, "x")
	assert.ErrorIs(t, err, ErrNotOwner)
}
