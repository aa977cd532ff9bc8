package repository

import (
	"context"
	"fmt"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/pkg/pagination"

	"gorm.io/gorm"
)

const genreGamesCount = "genres.*, (SELECT COUNT(*) FROM review_genres rg WHERE rg.genre_id = genres.id) AS games_count"

type GenreRepo struct {
	db *gorm.DB
}

func NewGenreRepo(db *gorm.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// List pages through genres. Genres carry no timestamps so newest/oldest sort by id.
func (r *GenreRepo) List(ctx context.Context, q pagination.Query) ([]models.Genre, pagination.Meta, error) {
	var list []models.Genre
	meta, err := pagination.Paginate(r.db.WithContext(ctx).Model(&models.Genre{}), q, &list, func(db *gorm.DB) *gorm.DB {
		return db.Select(genreGamesCount).Order(q.Sort.OrderClause("genres.name", "genres.id"))
	})
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list genres: %w", err)
	}
	return list, meta, nil
}

func (r *GenreRepo) GetByID(ctx context.Context, id int64) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.WithContext(ctx).Select(genreGamesCount).First(&g, "genres.id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return &g, nil
}

func (r *GenreRepo) ListInUse(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).
		Select(genreGamesCount).
		Where("EXISTS (SELECT 1 FROM review_genres rg WHERE rg.genre_id = genres.id)").
		Order("genres.name asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list genres in use: %w", err)
	}
	return list, nil
}
