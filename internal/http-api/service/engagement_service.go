package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gamereviews/database"
	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/repository"
)

var (
	ErrNotOwner        = errors.New("you can only change your own entries")
	ErrAlreadyReviewed = errors.New("you have already reviewed this game")
	ErrInvalidRating   = errors.New("rating must be between 1 and 10")
	ErrEmptyText       = errors.New("text must not be empty")
)

// EngagementService covers what signed-in readers do on a review page.
// Every edit sends the entry back to moderation.
type EngagementService interface {
	ToggleLike(ctx context.Context, slug, userID string) (liked bool, likes int64, err error)

	CreateComment(ctx context.Context, slug, userID, body string) (*models.UserComment, error)
	UpdateComment(ctx context.Context, slug string, commentID int64, userID, body string) (*models.UserComment, error)
	DeleteComment(ctx context.Context, slug string, commentID int64, userID string) error

	CreateUserReview(ctx context.Context, slug, userID string, rating int, text string) (*models.UserReview, error)
	UpdateUserReview(ctx context.Context, slug string, id int64, userID string, rating int, text string) (*models.UserReview, error)
	DeleteUserReview(ctx context.Context, slug string, id int64, userID string) error
}

type engagementService struct {
	reviews     ReviewStore
	comments    repository.CommentRepository
	userReviews repository.UserReviewRepository
	logger      *slog.Logger
}

func NewEngagementService(reviews ReviewStore, comments repository.CommentRepository, userReviews repository.UserReviewRepository, logger *slog.Logger) EngagementService {
	if logger == nil {
		logger = slog.Default()
	}
	return &engagementService{reviews: reviews, comments: comments, userReviews: userReviews, logger: logger}
}

func (s *engagementService) review(ctx context.Context, slug string) (*models.Review, error) {
	r, err := s.reviews.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (s *engagementService) ToggleLike(ctx context.Context, slug, userID string) (bool, int64, error) {
	review, err := s.review(ctx, slug)
	if err != nil {
		return false, 0, err
	}
	liked, err := s.reviews.ToggleLike(ctx, review.ID, userID)
	if err != nil {
		return false, 0, err
	}
	count, err := s.reviews.LikesCount(ctx, review.ID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (s *engagementService) CreateComment(ctx context.Context, slug, userID, body string) (*models.UserComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyText
	}
	review, err := s.review(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment := &models.UserComment{ReviewID: review.ID, AuthorID: userID, Body: body}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Info("comment_created", "comment_id", comment.ID, "review_id", review.ID, "user_id", userID)
	return comment, nil
}

// ownComment loads a comment of the review at slug that userID wrote.
func (s *engagementService) ownComment(ctx context.Context, slug string, commentID int64, userID string) (*models.UserComment, error) {
	review, err := s.review(ctx, slug)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFound(err)
	}
	if comment.ReviewID != review.ID {
		return nil, ErrNotFound
	}
	if comment.AuthorID != userID {
		return nil, ErrNotOwner
	}
	return comment, nil
}

func (s *engagementService) UpdateComment(ctx context.Context, slug string, commentID int64, userID, body string) (*models.UserComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyText
	}
	comment, err := s.ownComment(ctx, slug, commentID, userID)
	if err != nil {
		return nil, err
	}

	comment.Body = body
	comment.Approved = false
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *engagementService) DeleteComment(ctx context.Context, slug string, commentID int64, userID string) error {
	if _, err := s.ownComment(ctx, slug, commentID, userID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID, userID); err != nil {
		if errors.Is(err, repository.ErrNotOwnedOrMissing) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validateUserReview(rating int, text string) (string, error) {
	if rating < 1 || rating > 10 {
		return "", ErrInvalidRating
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func (s *engagementService) CreateUserReview(ctx context.Context, slug, userID string, rating int, text string) (*models.UserReview, error) {
	text, err := validateUserReview(rating, text)
	if err != nil {
		return nil, err
	}
	review, err := s.review(ctx, slug)
	if err != nil {
		return nil, err
	}

	if _, err := s.userReviews.GetByUser(ctx, review.ID, userID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(notFound(err), ErrNotFound) {
		return nil, err
	}

	ur := &models.UserReview{ReviewID: review.ID, UserID: userID, Rating: rating, ReviewText: text}
	if err := s.userReviews.Create(ctx, ur); err != nil {
		// two concurrent submissions both passed the check above
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	s.logger.Info("user_review_created", "user_review_id", ur.ID, "review_id", review.ID, "user_id", userID)
	return ur, nil
}

func (s *engagementService) ownUserReview(ctx context.Context, slug string, id int64, userID string) (*models.UserReview, error) {
	review, err := s.review(ctx, slug)
	if err != nil {
		return nil, err
	}
	ur, err := s.userReviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if ur.ReviewID != review.ID {
		return nil, ErrNotFound
	}
	if ur.UserID != userID {
		return nil, ErrNotOwner
	}
	return ur, nil
}

func (s *engagementService) UpdateUserReview(ctx context.Context, slug string, id int64, userID string, rating int, text string) (*models.UserReview, error) {
	text, err := validateUserReview(rating, text)
	if err != nil {
		return nil, err
	}
	ur, err := s.ownUserReview(ctx, slug, id, userID)
	if err != nil {
		return nil, err
	}

	ur.Rating = rating
	ur.ReviewText = text
	ur.Approved = false
	if err := s.userReviews.Update(ctx, ur); err != nil {
		return nil, err
	}
	return ur, nil
}

func (s *engagementService) DeleteUserReview(ctx context.Context, slug string, id int64, userID string) error {
	if _, err := s.ownUserReview(ctx, slug, id, userID); err != nil {
		return err
	}
	if err := s.userReviews.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotOwnedOrMissing) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
