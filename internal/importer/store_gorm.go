package importer

import (
	"context"
	"errors"
	"fmt"

	"gamereviews/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on Postgres. Nested transactions become savepoints.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) FindReview(ctx context.Context, title, slug string) (*models.Review, error) {
	var list []models.Review
	if err := s.db.WithContext(ctx).
		Where("LOWER(title) = LOWER(?) OR slug = ?", title, slug).
		Limit(1).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// firstOrCreate looks the row up by query, otherwise inserts the seeded row with
// ON CONFLICT DO NOTHING and reads back whatever won. A plain failed INSERT would
// abort the enclosing Postgres transaction, so the conflict must never raise.
func firstOrCreate[T any](ctx context.Context, db *gorm.DB, seed func() (T, error), query string, args ...any) (*T, bool, error) {
	db = db.WithContext(ctx)

	var found T
	err := db.Where(query, args...).Take(&found).Error
	if err == nil {
		return &found, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	row, err := seed()
	if err != nil {
		return nil, false, err
	}
	res := db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &row, true, nil
	}

	var winner T
	if err := db.Where(query, args...).Take(&winner).Error; err != nil {
		return nil, false, fmt.Errorf("read back after conflict: %w", err)
	}
	return &winner, false, nil
}

func (s *GormStore) FirstOrCreateDeveloper(ctx context.Context, name string, seed func() models.Company) (*models.Developer, bool, error) {
	d, created, err := firstOrCreate(ctx, s.db, func() (models.Developer, error) {
		c := seed()
		c.Name = name
		return models.Developer{Company: c}, nil
	}, "name = ?", name)
	if err != nil {
		return nil, false, fmt.Errorf("get or create developer %q: %w", name, err)
	}
	return d, created, nil
}

func (s *GormStore) FirstOrCreatePublisher(ctx context.Context, name string, seed func() models.Company) (*models.Publisher, bool, error) {
	p, created, err := firstOrCreate(ctx, s.db, func() (models.Publisher, error) {
		c := seed()
		c.Name = name
		return models.Publisher{Company: c}, nil
	}, "name = ?", name)
	if err != nil {
		return nil, false, fmt.Errorf("get or create publisher %q: %w", name, err)
	}
	return p, created, nil
}

func (s *GormStore) FirstOrCreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	g, _, err := firstOrCreate(ctx, s.db, func() (models.Genre, error) {
		return models.Genre{Name: name}, nil
	}, "name = ?", name)
	if err != nil {
		return nil, fmt.Errorf("get or create genre %q: %w", name, err)
	}
	return g, nil
}

func (s *GormStore) FirstOrCreateReview(ctx context.Context, review *models.Review) (*models.Review, bool, error) {
	r, created, err := firstOrCreate(ctx, s.db, func() (models.Review, error) {
		return *review, nil
	}, "title = ? AND slug = ?", review.Title, review.Slug)
	if err != nil {
		return nil, false, fmt.Errorf("get or create review %q: %w", review.Title, err)
	}
	return r, created, nil
}

// AttachGenres appends to the review's genre set; existing links are left alone.
func (s *GormStore) AttachGenres(ctx context.Context, review *models.Review, genres []models.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Review{ID: review.ID}).
		Omit("Genres.*").
		Association("Genres").
		Append(genres); err != nil {
		return fmt.Errorf("attach genres: %w", err)
	}
	return nil
}

func (s *GormStore) RandomUser(ctx context.Context) (*models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("RANDOM()").Limit(1).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("pick reviewer: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (s *GormStore) FirstOrCreateUser(ctx context.Context, username string, seed func() (models.User, error)) (*models.User, error) {
	u, _, err := firstOrCreate(ctx, s.db, seed, "username = ?", username)
	if err != nil {
		return nil, fmt.Errorf("get or create user %q: %w", username, err)
	}
	return u, nil
}
