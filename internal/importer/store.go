package importer

import (
	"context"

	"gamereviews/internal/http-api/models"
)

// Store is the persistence the importer needs. Transaction nests: calling it on
// a Store handed to fn opens a savepoint.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// FindReview matches title case-insensitively or slug exactly; nil when absent.
	FindReview(ctx context.Context, title, slug string) (*models.Review, error)
	// FirstOrCreateReview looks up (title, slug) and inserts review only if absent.
	FirstOrCreateReview(ctx context.Context, review *models.Review) (*models.Review, bool, error)

	// seed is only called when the row has to be created.
	FirstOrCreateDeveloper(ctx context.Context, name string, seed func() models.Company) (*models.Developer, bool, error)
	FirstOrCreatePublisher(ctx context.Context, name string, seed func() models.Company) (*models.Publisher, bool, error)
	FirstOrCreateGenre(ctx context.Context, name string) (*models.Genre, error)
	AttachGenres(ctx context.Context, review *models.Review, genres []models.Genre) error

	// RandomUser returns nil when the users table is empty.
	RandomUser(ctx context.Context) (*models.User, error)
	FirstOrCreateUser(ctx context.Context, username string, seed func() (models.User, error)) (*models.User, error)
}
