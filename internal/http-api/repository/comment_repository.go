package repository

import (
	"context"
	"errors"
	"fmt"

	"gamereviews/internal/http-api/models"

	"gorm.io/gorm"
)

var ErrNotOwnedOrMissing = errors.New("record not found or not owned by user")

type CommentRepository interface {
	Create(ctx context.Context, comment *models.UserComment) error
	Update(ctx context.Context, comment *models.UserComment) error
	Delete(ctx context.Context, commentID int64, authorID string) error
	GetByID(ctx context.Context, commentID int64) (*models.UserComment, error)
	ListApproved(ctx context.Context, reviewID int64) ([]models.UserComment, error)
	Approve(ctx context.Context, ids []int64) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.UserComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.UserComment) error {
	if err := r.db.WithContext(ctx).Model(comment).
		Select("body", "approved").
		Updates(comment).Error; err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes the comment only if authorID wrote it.
func (r *commentRepository) Delete(ctx context.Context, commentID int64, authorID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", commentID, authorID).Delete(&models.UserComment{})
	if res.Error != nil {
		return fmt.Errorf("delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotOwnedOrMissing
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.UserComment, error) {
	var comment models.UserComment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

// ListApproved returns a review's approved comments, oldest first.
func (r *commentRepository) ListApproved(ctx context.Context, reviewID int64) ([]models.UserComment, error) {
	var comments []models.UserComment
	if err := r.db.WithContext(ctx).
		Where("review_id = ? AND approved = ?", reviewID, true).
		Preload("Author").
		Order("created_on asc").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) Approve(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.UserComment{}).Where("id IN ?", ids).Update("approved", true)
	if res.Error != nil {
		return 0, fmt.Errorf("approve comments: %w", res.Error)
	}
	return res.RowsAffected, nil
}
