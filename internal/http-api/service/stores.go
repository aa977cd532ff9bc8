package service

import (
	"context"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/repository"
	"gamereviews/internal/pkg/pagination"
)

// The interfaces below are the slices of the repositories each service uses.

type ReviewStore interface {
	ListPublished(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error)
	ListAll(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error)
	CountFeatured(ctx context.Context) (int64, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Review, error)
	FindByTitleOrSlug(ctx context.Context, title, slug string) (*models.Review, error)
	IncrementViews(ctx context.Context, id int64) error
	ListPublishedBy(ctx context.Context, column string, id int64) ([]models.Review, error)
	ListPublishedByGenre(ctx context.Context, genreID int64) ([]models.Review, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteByID(ctx context.Context, id int64) (*models.Review, error)
	SetFlag(ctx context.Context, ids []int64, flag repository.ReviewFlag, value bool) (int64, error)
	ToggleLike(ctx context.Context, reviewID int64, userID string) (bool, error)
	LikesCount(ctx context.Context, reviewID int64) (int64, error)
}

type CompanyStore[T models.CompanyModel] interface {
	Kind() string
	ReviewColumn() string
	List(ctx context.Context, q pagination.Query) ([]T, pagination.Meta, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	ListInUse(ctx context.Context) ([]T, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteUnused(ctx context.Context) (int64, error)
}

type GenreStore interface {
	List(ctx context.Context, q pagination.Query) ([]models.Genre, pagination.Meta, error)
	GetByID(ctx context.Context, id int64) (*models.Genre, error)
	ListInUse(ctx context.Context) ([]models.Genre, error)
}

var (
	_ ReviewStore                    = (*repository.ReviewRepo)(nil)
	_ CompanyStore[models.Publisher] = (*repository.CompanyRepo[models.Publisher])(nil)
	_ CompanyStore[models.Developer] = (*repository.CompanyRepo[models.Developer])(nil)
	_ GenreStore                     = (*repository.GenreRepo)(nil)
)

// bases flattens publishers or developers to their shared columns.
func bases[T models.CompanyModel](list []T) []models.Company {
	out := make([]models.Company, 0, len(list))
	for _, c := range list {
		out = append(out, c.Base())
	}
	return out
}
