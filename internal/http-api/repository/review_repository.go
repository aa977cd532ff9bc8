package repository

import (
	"context"
	"fmt"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/pkg/pagination"

	"gorm.io/gorm"
)

const reviewLikesCount = "reviews.*, (SELECT COUNT(*) FROM review_likes rl WHERE rl.review_id = reviews.id) AS likes_count"

// ReviewFlag is a boolean column that bulk actions may toggle.
type ReviewFlag string

const (
	FlagPublished ReviewFlag = "is_published"
	FlagFeatured  ReviewFlag = "is_featured"
)

type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func preloadCatalog(db *gorm.DB) *gorm.DB {
	return db.Preload("Publisher").Preload("Developer").Preload("Genres")
}

// ListPublished returns one page of published reviews.
func (r *ReviewRepo) ListPublished(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error) {
	var list []models.Review
	base := r.db.WithContext(ctx).Model(&models.Review{}).Where("reviews.is_published = ?", true)
	meta, err := pagination.Paginate(base, q, &list, preloadCatalog, func(db *gorm.DB) *gorm.DB {
		return db.Select(reviewLikesCount).
			Order(q.Sort.OrderClause("reviews.title", "reviews.created_on")).
			Order("reviews.id")
	})
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list reviews: %w", err)
	}
	return list, meta, nil
}

// ListAll returns every review regardless of state, newest first.
func (r *ReviewRepo) ListAll(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error) {
	var list []models.Review
	meta, err := pagination.Paginate(r.db.WithContext(ctx).Model(&models.Review{}), q, &list, preloadCatalog, func(db *gorm.DB) *gorm.DB {
		return db.Order("reviews.created_on desc").Order("reviews.id desc")
	})
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list all reviews: %w", err)
	}
	return list, meta, nil
}

func (r *ReviewRepo) CountFeatured(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("is_featured = ?", true).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count featured reviews: %w", err)
	}
	return n, nil
}

// GetBySlug loads one review with its catalog relations and reviewer.
func (r *ReviewRepo) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Review, error) {
	var review models.Review
	q := preloadCatalog(r.db.WithContext(ctx)).Preload("ReviewedBy").Select(reviewLikesCount).Where("reviews.slug = ?", slug)
	if publishedOnly {
		q = q.Where("reviews.is_published = ?", true)
	}
	if err := q.First(&review).Error; err != nil {
		return nil, fmt.Errorf("get review by slug: %w", err)
	}
	return &review, nil
}

// FindByTitleOrSlug matches title case-insensitively or slug exactly. Returns nil, nil when absent.
func (r *ReviewRepo) FindByTitleOrSlug(ctx context.Context, title, slug string) (*models.Review, error) {
	var list []models.Review
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) = LOWER(?) OR slug = ?", title, slug).
		Limit(1).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find review by title: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r *ReviewRepo) IncrementViews(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// ListPublishedBy returns published reviews whose column (publisher_id, developer_id) equals id.
func (r *ReviewRepo) ListPublishedBy(ctx context.Context, column string, id int64) ([]models.Review, error) {
	var list []models.Review
	if err := preloadCatalog(r.db.WithContext(ctx)).
		Where("reviews."+column+" = ? AND reviews.is_published = ?", id, true).
		Order("reviews.created_on desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list reviews by %s: %w", column, err)
	}
	return list, nil
}

func (r *ReviewRepo) ListPublishedByGenre(ctx context.Context, genreID int64) ([]models.Review, error) {
	var list []models.Review
	if err := preloadCatalog(r.db.WithContext(ctx)).
		Joins("JOIN review_genres rg ON rg.review_id = reviews.id").
		Where("rg.genre_id = ? AND reviews.is_published = ?", genreID, true).
		Order("reviews.created_on desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list reviews by genre: %w", err)
	}
	return list, nil
}

func (r *ReviewRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Review{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete reviews: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByID removes one review and returns it as it was.
func (r *ReviewRepo) DeleteByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&review).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete review: %w", err)
	}
	return &review, nil
}

// SetFlag updates flag on the given reviews and reports how many rows changed.
func (r *ReviewRepo) SetFlag(ctx context.Context, ids []int64, flag ReviewFlag, value bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("id IN ?", ids).Update(string(flag), value)
	if res.Error != nil {
		return 0, fmt.Errorf("update %s: %w", flag, res.Error)
	}
	return res.RowsAffected, nil
}

// ToggleLike adds or removes userID from the review's likes. Returns the new state.
func (r *ReviewRepo) ToggleLike(ctx context.Context, reviewID int64, userID string) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table("review_likes").Where("review_id = ? AND user_id = ?", reviewID, userID).Count(&n).Error; err != nil {
			return err
		}
		review := &models.Review{ID: reviewID}
		user := &models.User{ID: userID}
		if n > 0 {
			return tx.Model(review).Association("Likes").Delete(user)
		}
		liked = true
		return tx.Model(review).Omit("Likes.*").Association("Likes").Append(user)
	})
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

func (r *ReviewRepo) LikesCount(ctx context.Context, reviewID int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table("review_likes").Where("review_id = ?", reviewID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}
