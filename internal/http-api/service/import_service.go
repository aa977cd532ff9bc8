package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/importer"
	"gamereviews/internal/ingestion/igdb"
)

const (
	DefaultSearchLimit = 50
	maxSearchLimit     = 500
)

// SearchResult is one catalog hit on the populate page.
type SearchResult struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	Year       int    `json:"year,omitempty"`
	Platforms  string `json:"platforms"`
	Summary    string `json:"summary"`
	HasReview  bool   `json:"has_review"`
	ReviewSlug string `json:"review_slug,omitempty"`
	// RawData is posted back unchanged as one selected_games entry.
	RawData string `json:"raw_data"`
}

// Importer is satisfied by *importer.Orchestrator.
type Importer interface {
	ImportSelection(ctx context.Context, selections []importer.Selection) (*importer.BatchReport, error)
	AutoGenerate(ctx context.Context, opts importer.AutoOptions) (*importer.BatchReport, error)
	ValidateAuto(opts importer.AutoOptions) error
}

type ImportService interface {
	Search(ctx context.Context, term string, limit int) ([]SearchResult, error)
	ImportSelection(ctx context.Context, selections []importer.Selection) (*importer.BatchReport, error)
	AutoGenerate(ctx context.Context, opts importer.AutoOptions) (*importer.BatchReport, error)
}

type importService struct {
	catalog  igdb.Searcher
	importer Importer
	reviews  ReviewStore
	nav      NavigationInvalidator
	logger   *slog.Logger
}

// NewImportService wires the populate workflow. catalog may be nil when IGDB is not configured.
func NewImportService(catalog igdb.Searcher, imp Importer, reviews ReviewStore, nav NavigationInvalidator, logger *slog.Logger) ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &importService{catalog: catalog, importer: imp, reviews: reviews, nav: nav, logger: logger}
}

// ClampSearchLimit keeps limit inside what the catalog accepts.
func ClampSearchLimit(limit int) int {
	if limit < 1 {
		return DefaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

// Search previews catalog results and marks the ones that already have a review.
func (s *importService) Search(ctx context.Context, term string, limit int) ([]SearchResult, error) {
	if s.catalog == nil {
		return nil, importer.ErrNoCatalog
	}
	games, err := s.catalog.Search(ctx, strings.TrimSpace(term), ClampSearchLimit(limit))
	if err != nil {
		s.logger.Warn("catalog_search_failed", "term", term, "error", err)
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	results := make([]SearchResult, 0, len(games))
	for i, g := range games {
		raw, err := json.Marshal(g)
		if err != nil {
			return nil, fmt.Errorf("encode game %q: %w", g.Name, err)
		}

		title := g.Name
		if title == "" {
			title = "Unknown"
		}
		res := SearchResult{
			Index:     i + 1,
			Title:     title,
			Year:      g.ReleaseYear(),
			Platforms: g.PlatformNames(),
			Summary:   g.Summary,
			RawData:   string(raw),
		}

		existing, err := s.reviews.FindByTitleOrSlug(ctx, title, models.Slugify(title))
		if err != nil {
			return nil, err
		}
		if existing != nil {
			res.HasReview = true
			res.ReviewSlug = existing.Slug
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *importService) ImportSelection(ctx context.Context, selections []importer.Selection) (*importer.BatchReport, error) {
	report, err := s.importer.ImportSelection(ctx, selections)
	if err != nil {
		return nil, err
	}
	s.afterImport(ctx, report)
	return report, nil
}

func (s *importService) AutoGenerate(ctx context.Context, opts importer.AutoOptions) (*importer.BatchReport, error) {
	if err := s.importer.ValidateAuto(opts); err != nil {
		return nil, err
	}
	report, err := s.importer.AutoGenerate(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.afterImport(ctx, report)
	return report, nil
}

func (s *importService) afterImport(ctx context.Context, report *importer.BatchReport) {
	if report.Created > 0 && s.nav != nil {
		s.nav.InvalidateNavigation(ctx)
	}
	s.logger.Info("import_finished", "mode", report.Mode, "created", report.Created,
		"skipped", report.Skipped, "errors", report.Errors, "skip_reasons", report.SkipCounts())
}
