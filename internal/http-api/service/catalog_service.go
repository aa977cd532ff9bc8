package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gamereviews/internal/cache"
	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/repository"
	"gamereviews/internal/pkg/pagination"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// ReviewDetail is a published review with the engagement shown beneath it.
type ReviewDetail struct {
	Review      models.Review
	Comments    []models.UserComment
	UserReviews []models.UserReview
}

// CompanyDetail is a publisher or developer with its published reviews.
type CompanyDetail struct {
	Company models.Company
	Reviews []models.Review
}

type GenreDetail struct {
	Genre   models.Genre
	Reviews []models.Review
}

// Navigation lists the catalog entries that have at least one review.
type Navigation struct {
	Genres     []models.Genre   `json:"genres"`
	Publishers []models.Company `json:"publishers"`
	Developers []models.Company `json:"developers"`
}

type CatalogService interface {
	ListReviews(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error)
	GetReview(ctx context.Context, slug string) (*ReviewDetail, error)
	ListPublishers(ctx context.Context, q pagination.Query) ([]models.Company, pagination.Meta, error)
	GetPublisher(ctx context.Context, slug string) (*CompanyDetail, error)
	ListDevelopers(ctx context.Context, q pagination.Query) ([]models.Company, pagination.Meta, error)
	GetDeveloper(ctx context.Context, slug string) (*CompanyDetail, error)
	ListGenres(ctx context.Context, q pagination.Query) ([]models.Genre, pagination.Meta, error)
	GetGenre(ctx context.Context, id int64) (*GenreDetail, error)
	Navigation(ctx context.Context) (*Navigation, error)
	InvalidateNavigation(ctx context.Context)
}

type catalogService struct {
	reviews     ReviewStore
	publishers  CompanyStore[models.Publisher]
	developers  CompanyStore[models.Developer]
	genres      GenreStore
	comments    repository.CommentRepository
	userReviews repository.UserReviewRepository
	cache       cache.Store
	cacheTTL    time.Duration
	logger      *slog.Logger
}

type CatalogDeps struct {
	Reviews     ReviewStore
	Publishers  CompanyStore[models.Publisher]
	Developers  CompanyStore[models.Developer]
	Genres      GenreStore
	Comments    repository.CommentRepository
	UserReviews repository.UserReviewRepository
	Cache       cache.Store
	CacheTTL    time.Duration
	Logger      *slog.Logger
}

func NewCatalogService(d CatalogDeps) CatalogService {
	if d.Cache == nil {
		d.Cache = cache.NopStore{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &catalogService{
		reviews:     d.Reviews,
		publishers:  d.Publishers,
		developers:  d.Developers,
		genres:      d.Genres,
		comments:    d.Comments,
		userReviews: d.UserReviews,
		cache:       d.Cache,
		cacheTTL:    d.CacheTTL,
		logger:      d.Logger,
	}
}

// notFound turns gorm's record-not-found into ErrNotFound and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *catalogService) ListReviews(ctx context.Context, q pagination.Query) ([]models.Review, pagination.Meta, error) {
	return s.reviews.ListPublished(ctx, q)
}

// GetReview loads a published review and counts the visit.
func (s *catalogService) GetReview(ctx context.Context, slug string) (*ReviewDetail, error) {
	review, err := s.reviews.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, notFound(err)
	}

	if err := s.reviews.IncrementViews(ctx, review.ID); err != nil {
		s.logger.Warn("review_view_count_failed", "review_id", review.ID, "error", err)
	} else {
		review.Views++
	}

	comments, err := s.comments.ListApproved(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	userReviews, err := s.userReviews.ListApproved(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	return &ReviewDetail{Review: *review, Comments: comments, UserReviews: userReviews}, nil
}

func (s *catalogService) ListPublishers(ctx context.Context, q pagination.Query) ([]models.Company, pagination.Meta, error) {
	return listCompanies(ctx, s.publishers, q)
}

func (s *catalogService) GetPublisher(ctx context.Context, slug string) (*CompanyDetail, error) {
	return s.companyDetail(ctx, s.publishers.ReviewColumn(), func() (models.Company, error) {
		p, err := s.publishers.GetBySlug(ctx, slug)
		if err != nil {
			return models.Company{}, err
		}
		return p.Base(), nil
	})
}

func (s *catalogService) ListDevelopers(ctx context.Context, q pagination.Query) ([]models.Company, pagination.Meta, error) {
	return listCompanies(ctx, s.developers, q)
}

func (s *catalogService) GetDeveloper(ctx context.Context, slug string) (*CompanyDetail, error) {
	return s.companyDetail(ctx, s.developers.ReviewColumn(), func() (models.Company, error) {
		d, err := s.developers.GetBySlug(ctx, slug)
		if err != nil {
			return models.Company{}, err
		}
		return d.Base(), nil
	})
}

func listCompanies[T models.CompanyModel](ctx context.Context, store CompanyStore[T], q pagination.Query) ([]models.Company, pagination.Meta, error) {
	list, meta, err := store.List(ctx, q)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return bases(list), meta, nil
}

func (s *catalogService) companyDetail(ctx context.Context, column string, load func() (models.Company, error)) (*CompanyDetail, error) {
	company, err := load()
	if err != nil {
		return nil, notFound(err)
	}
	reviews, err := s.reviews.ListPublishedBy(ctx, column, company.ID)
	if err != nil {
		return nil, err
	}
	return &CompanyDetail{Company: company, Reviews: reviews}, nil
}

func (s *catalogService) ListGenres(ctx context.Context, q pagination.Query) ([]models.Genre, pagination.Meta, error) {
	return s.genres.List(ctx, q)
}

func (s *catalogService) GetGenre(ctx context.Context, id int64) (*GenreDetail, error) {
	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	reviews, err := s.reviews.ListPublishedByGenre(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GenreDetail{Genre: *genre, Reviews: reviews}, nil
}

// Navigation serves each list from the cache and falls back to the database.
// A broken cache only costs a query.
func (s *catalogService) Navigation(ctx context.Context) (*Navigation, error) {
	var nav Navigation
	var err error

	nav.Genres, err = cached(ctx, s, cache.KeyNavGenres, s.genres.ListInUse)
	if err != nil {
		return nil, err
	}
	nav.Publishers, err = cached(ctx, s, cache.KeyNavPublishers, func(ctx context.Context) ([]models.Company, error) {
		list, err := s.publishers.ListInUse(ctx)
		return bases(list), err
	})
	if err != nil {
		return nil, err
	}
	nav.Developers, err = cached(ctx, s, cache.KeyNavDevelopers, func(ctx context.Context) ([]models.Company, error) {
		list, err := s.developers.ListInUse(ctx)
		return bases(list), err
	})
	if err != nil {
		return nil, err
	}
	return &nav, nil
}

func cached[T any](ctx context.Context, s *catalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var list []T
	err := s.cache.GetJSON(ctx, key, &list)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("cache_read_failed", "key", key, "error", err)
	}

	list, err = load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if list == nil {
		list = []T{}
	}
	if err := s.cache.SetJSON(ctx, key, list, s.cacheTTL); err != nil {
		s.logger.Warn("cache_write_failed", "key", key, "error", err)
	}
	return list, nil
}

func (s *catalogService) InvalidateNavigation(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.NavKeys...); err != nil {
		s.logger.Warn("cache_invalidate_failed", "keys", cache.NavKeys, "error", err)
	}
}
