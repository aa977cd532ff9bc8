package igdb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gamereviews/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "igdb-api"

// BreakerSearcher stops calling IGDB for a while after repeated failures.
type BreakerSearcher struct {
	next   Searcher
	cb     *gobreaker.CircuitBreaker[[]GameRecord]
	logger *slog.Logger
}

// NewBreakerSearcher opens after 5 consecutive failures and probes again after 30s.
func NewBreakerSearcher(next Searcher, logger *slog.Logger) *BreakerSearcher {
	if logger == nil {
		logger = slog.Default()
	}
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]GameRecord](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up is not the catalog's fault
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
	return &BreakerSearcher{next: next, cb: cb, logger: logger}
}

func (b *BreakerSearcher) Search(ctx context.Context, term string, limit int) ([]GameRecord, error) {
	records, err := b.cb.Execute(func() ([]GameRecord, error) {
		return b.next.Search(ctx, term, limit)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CatalogRequests.WithLabelValues("rejected").Inc()
		return nil, err
	case err != nil:
		metrics.CatalogRequests.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.CatalogRequests.WithLabelValues("success").Inc()
	return records, nil
}

// State exposes the breaker state for health output.
func (b *BreakerSearcher) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
