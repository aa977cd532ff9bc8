package repository

import (
	"context"
	"fmt"

	"gamereviews/internal/http-api/models"

	"gorm.io/gorm"
)

type UserReviewRepository interface {
	Create(ctx context.Context, ur *models.UserReview) error
	Update(ctx context.Context, ur *models.UserReview) error
	Delete(ctx context.Context, id int64, userID string) error
	GetByID(ctx context.Context, id int64) (*models.UserReview, error)
	GetByUser(ctx context.Context, reviewID int64, userID string) (*models.UserReview, error)
	ListApproved(ctx context.Context, reviewID int64) ([]models.UserReview, error)
	Approve(ctx context.Context, ids []int64) (int64, error)
}

type userReviewRepository struct {
	db *gorm.DB
}

func NewUserReviewRepository(db *gorm.DB) UserReviewRepository {
	return &userReviewRepository{db: db}
}

// Create inserts ur. A second review by the same user surfaces as gorm.ErrDuplicatedKey
// when the connection was opened with TranslateError.
func (r *userReviewRepository) Create(ctx context.Context, ur *models.UserReview) error {
	if err := r.db.WithContext(ctx).Create(ur).Error; err != nil {
		return fmt.Errorf("create user review: %w", err)
	}
	return nil
}

func (r *userReviewRepository) Update(ctx context.Context, ur *models.UserReview) error {
	if err := r.db.WithContext(ctx).Model(ur).
		Select("rating", "review_text", "approved").
		Updates(ur).Error; err != nil {
		return fmt.Errorf("update user review: %w", err)
	}
	return nil
}

func (r *userReviewRepository) Delete(ctx context.Context, id int64, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.UserReview{})
	if res.Error != nil {
		return fmt.Errorf("delete user review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotOwnedOrMissing
	}
	return nil
}

func (r *userReviewRepository) GetByID(ctx context.Context, id int64) (*models.UserReview, error) {
	var ur models.UserReview
	if err := r.db.WithContext(ctx).Preload("User").First(&ur, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get user review: %w", err)
	}
	return &ur, nil
}

func (r *userReviewRepository) GetByUser(ctx context.Context, reviewID int64, userID string) (*models.UserReview, error) {
	var ur models.UserReview
	if err := r.db.WithContext(ctx).First(&ur, "review_id = ? AND user_id = ?", reviewID, userID).Error; err != nil {
		return nil, fmt.Errorf("get user review by user: %w", err)
	}
	return &ur, nil
}

func (r *userReviewRepository) ListApproved(ctx context.Context, reviewID int64) ([]models.UserReview, error) {
	var list []models.UserReview
	if err := r.db.WithContext(ctx).
		Where("review_id = ? AND approved = ?", reviewID, true).
		Preload("User").
		Order("created_on desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return list, nil
}

func (r *userReviewRepository) Approve(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.UserReview{}).Where("id IN ?", ids).Update("approved", true)
	if res.Error != nil {
		return 0, fmt.Errorf("approve user reviews: %w", res.Error)
	}
	return res.RowsAffected, nil
}
