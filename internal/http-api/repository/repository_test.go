package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"gamereviews/database"
	"gamereviews/internal/http-api/models"
	"gamereviews/internal/pkg/pagination"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// RepositorySuite runs the count and cleanup queries against a real Postgres.
// Set TEST_DATABASE_URL to a disposable database to enable it.
type RepositorySuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context
}

func (s *RepositorySuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		s.T().Skip("TEST_DATABASE_URL not set, skipping Postgres integration tests")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))

	s.db = db
	s.ctx = context.Background()
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NoError(s.db.Exec(
		"TRUNCATE review_genres, review_likes, user_comments, user_reviews, reviews, genres, publishers, developers, users RESTART IDENTITY CASCADE",
	).Error)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.db == nil {
		return
	}
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// seedReview creates one review owned by pub and dev.
func (s *RepositorySuite) seedReview(title string, pub *models.Publisher, dev *models.Developer) *models.Review {
	review := &models.Review{
		Title:       title,
		PublisherID: pub.ID,
		DeveloperID: dev.ID,
		ReleaseDate: time.Date(2001, time.November, 15, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.db.Omit(clause.Associations).Create(review).Error)
	return review
}

func (s *RepositorySuite) companies() (used, empty *models.Publisher, dev *models.Developer) {
	used = &models.Publisher{Company: models.Company{Name: "Xbox Game Studios"}}
	empty = &models.Publisher{Company: models.Company{Name: "Acclaim"}}
	dev = &models.Developer{Company: models.Company{Name: "343 Industries"}}
	s.Require().NoError(s.db.Create(used).Error)
	s.Require().NoError(s.db.Create(empty).Error)
	s.Require().NoError(s.db.Create(dev).Error)
	return used, empty, dev
}

func (s *RepositorySuite) TestPublisherGamesCount() {
	used, _, dev := s.companies()
	s.seedReview("Halo Infinite", used, dev)

	repo := NewPublisherRepo(s.db)
	list, meta, err := repo.List(s.ctx, pagination.Query{Page: 1, Size: pagination.ListSize, Sort: pagination.SortAZ})
	s.Require().NoError(err)
	s.Equal(int64(2), meta.Total)

	counts := map[string]int64{}
	for _, p := range list {
		counts[p.Name] = p.GamesCount
	}
	s.Equal(map[string]int64{"Xbox Game Studios": 1, "Acclaim": 0}, counts)

	got, err := repo.GetBySlug(s.ctx, "acclaim")
	s.Require().NoError(err)
	s.Equal(int64(0), got.GamesCount)
}

func (s *RepositorySuite) TestListInUseExcludesEmptyCompanies() {
	used, _, dev := s.companies()
	s.seedReview("Halo Infinite", used, dev)

	list, err := NewPublisherRepo(s.db).ListInUse(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Xbox Game Studios", list[0].Name)
	s.Equal(int64(1), list[0].GamesCount)
}

func (s *RepositorySuite) TestDeleteUnusedRemovesOnlyEmptyCompanies() {
	used, _, dev := s.companies()
	s.seedReview("Halo Infinite", used, dev)

	n, err := NewPublisherRepo(s.db).DeleteUnused(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	var names []string
	s.Require().NoError(s.db.Model(&models.Publisher{}).Pluck("name", &names).Error)
	s.Equal([]string{"Xbox Game Studios"}, names)

	n, err = NewDeveloperRepo(s.db).DeleteUnused(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *RepositorySuite) TestGenreCounts() {
	used, _, dev := s.companies()
	review := s.seedReview("Halo Infinite", used, dev)
	shooter := &models.Genre{Name: "Shooter"}
	puzzle := &models.Genre{Name: "Puzzle"}
	s.Require().NoError(s.db.Create(shooter).Error)
	s.Require().NoError(s.db.Create(puzzle).Error)
	s.Require().NoError(s.db.Model(review).Omit("Genres.*").Association("Genres").Append(shooter))

	repo := NewGenreRepo(s.db)
	list, _, err := repo.List(s.ctx, pagination.Query{Page: 1, Size: pagination.ListSize, Sort: pagination.SortAZ})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Puzzle", list[0].Name)
	s.Equal(int64(0), list[0].GamesCount)
	s.Equal(int64(1), list[1].GamesCount)

	inUse, err := repo.ListInUse(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(inUse, 1)
	s.Equal("Shooter", inUse[0].Name)
}

func (s *RepositorySuite) TestToggleLikeLeavesUserUntouched() {
	used, _, dev := s.companies()
	review := s.seedReview("Halo Infinite", used, dev)
	user := &models.User{Username: "reader", Email: "reader@example.com", Password: "x"}
	s.Require().NoError(s.db.Create(user).Error)

	repo := NewReviewRepo(s.db)
	liked, err := repo.ToggleLike(s.ctx, review.ID, user.ID)
	s.Require().NoError(err)
	s.True(liked)

	n, err := repo.LikesCount(s.ctx, review.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, "id = ?", user.ID).Error)
	s.Equal("reader", stored.Username)
	s.Equal("reader@example.com", stored.Email)

	liked, err = repo.ToggleLike(s.ctx, review.ID, user.ID)
	s.Require().NoError(err)
	s.False(liked)
	n, err = repo.LikesCount(s.ctx, review.ID)
	s.Require().NoError(err)
	s.Zero(n)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}
