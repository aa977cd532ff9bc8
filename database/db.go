package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gamereviews/internal/config"
	"gamereviews/internal/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Postgres SQLSTATE for unique_violation
const uniqueViolation = "23505"

// OpenGorm connects to Postgres and migrates the schema.
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey.
func OpenGorm(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDevelopment() && cfg.LogLevel == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		// close the handle if ping fails to avoid leaking it
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database_connected")
	return db, nil
}

// Migrate creates or updates every table the catalog uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Publisher{},
		&models.Developer{},
		&models.Genre{},
		&models.Review{},
		&models.UserComment{},
		&models.UserReview{},
	)
}

// IsUniqueViolation reports whether err came from a unique index, either as
// gorm's translated error or as the raw Postgres error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
