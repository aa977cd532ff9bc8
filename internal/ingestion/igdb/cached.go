package igdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gamereviews/internal/cache"
	"gamereviews/internal/metrics"
)

// CachedSearcher memoizes search results so repeated populate-page searches skip IGDB.
type CachedSearcher struct {
	next   Searcher
	store  cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedSearcher(next Searcher, store cache.Store, ttl time.Duration, logger *slog.Logger) *CachedSearcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSearcher{next: next, store: store, ttl: ttl, logger: logger}
}

func searchKey(term string, limit int) string {
	return fmt.Sprintf("igdb:search:%s:%d", strings.ToLower(strings.TrimSpace(term)), limit)
}

func (s *CachedSearcher) Search(ctx context.Context, term string, limit int) ([]GameRecord, error) {
	key := searchKey(term, limit)

	var records []GameRecord
	err := s.store.GetJSON(ctx, key, &records)
	if err == nil {
		metrics.CatalogRequests.WithLabelValues("cache_hit").Inc()
		return records, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("catalog_cache_read_failed", "key", key, "error", err)
	}

	records, err = s.next.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetJSON(ctx, key, records, s.ttl); err != nil {
		s.logger.Warn("catalog_cache_write_failed", "key", key, "error", err)
	}
	return records, nil
}
