package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"gamereviews/internal/ingestion/igdb"
	"gamereviews/internal/media"
	"gamereviews/internal/metrics"
	"gamereviews/internal/textgen"

	"github.com/go-playground/validator/v10"
)

const autoSearchLimit = 10

// Orchestrator turns catalog records into reviews plus their publishers,
// developers and genres. One call is one store transaction; each candidate
// runs in its own nested transaction so a bad one only rolls back itself.
type Orchestrator struct {
	store      Store
	catalog    igdb.Searcher
	mirror     media.Mirror
	generator  textgen.Generator
	logger     *slog.Logger
	now        func() time.Time
	franchises []string
	validate   *validator.Validate

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Orchestrator)

// WithRand fixes the random source used by auto mode.
func WithRand(r *rand.Rand) Option {
	return func(o *Orchestrator) { o.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func WithFranchises(terms []string) Option {
	return func(o *Orchestrator) { o.franchises = terms }
}

// New wires an orchestrator. catalog may be nil when IGDB is not configured;
// only AutoGenerate needs it.
func New(store Store, catalog igdb.Searcher, mirror media.Mirror, generator textgen.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:      store,
		catalog:    catalog,
		mirror:     mirror,
		generator:  generator,
		logger:     slog.Default(),
		now:        time.Now,
		franchises: Franchises,
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.mirror == nil {
		o.mirror = media.NopMirror{}
	}
	if o.generator == nil {
		o.generator = textgen.Disabled{}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return o
}

// candidate is a decoded record plus the per-item choices for it.
type candidate struct {
	record    igdb.GameRecord
	score     float64
	published bool
	featured  bool
	mode      Mode
}

// ImportSelection imports operator-picked records. The error is non-nil only when
// the batch transaction itself could not run; per-candidate problems are in the report.
func (o *Orchestrator) ImportSelection(ctx context.Context, selections []Selection) (*BatchReport, error) {
	if len(selections) == 0 {
		return nil, ErrNoSelection
	}

	start := time.Now()
	report := &BatchReport{Mode: ModeManual}
	err := o.store.Transaction(ctx, func(tx Store) error {
		for _, sel := range selections {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Attempts++

			var rec igdb.GameRecord
			if err := json.Unmarshal([]byte(sel.Payload), &rec); err != nil {
				o.record(report, ItemResult{
					Title:   "selected game",
					Outcome: OutcomeFailed,
					Reason:  ReasonInvalidPayload,
					Error:   fmt.Sprintf("invalid game data: %v", err),
				})
				continue
			}

			score, ok := parseScore(sel.Score)
			if !ok {
				o.record(report, ItemResult{Title: rec.Name, Outcome: OutcomeSkipped, Reason: ReasonInvalidScore})
				continue
			}

			o.record(report, o.importOne(ctx, tx, candidate{
				record:    rec,
				score:     score,
				published: sel.Published,
				featured:  sel.Featured,
				mode:      ModeManual,
			}))
		}
		return nil
	})
	metrics.ImportBatchDuration.WithLabelValues(string(ModeManual)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("import selection: %w", err)
	}

	o.logger.Info("import_batch_done", "mode", ModeManual,
		"created", report.Created, "skipped", report.Skipped, "errors", report.Errors)
	return report, nil
}

// AutoGenerate samples franchise searches until opts.Count reviews were created
// or 3*Count attempts were spent.
func (o *Orchestrator) AutoGenerate(ctx context.Context, opts AutoOptions) (*BatchReport, error) {
	if err := o.ValidateAuto(opts); err != nil {
		return nil, err
	}
	if o.catalog == nil {
		return nil, ErrNoCatalog
	}

	start := time.Now()
	maxAttempts := opts.Count * 3
	report := &BatchReport{Mode: ModeAuto}
	err := o.store.Transaction(ctx, func(tx Store) error {
		for report.Created < opts.Count && report.Attempts < maxAttempts {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Attempts++

			term := o.pickTerm()
			games, err := o.catalog.Search(ctx, term, autoSearchLimit)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				o.record(report, ItemResult{Title: term, Outcome: OutcomeFailed, Reason: ReasonCatalogError, Error: err.Error()})
				continue
			}
			if len(games) == 0 {
				o.record(report, ItemResult{Title: term, Outcome: OutcomeSkipped, Reason: ReasonNoResults})
				continue
			}

			o.record(report, o.importOne(ctx, tx, candidate{
				record:    games[o.intN(len(games))],
				score:     o.randomScore(opts.MinScore, opts.MaxScore),
				published: true,
				featured:  false,
				mode:      ModeAuto,
			}))
		}
		return nil
	})
	metrics.ImportBatchDuration.WithLabelValues(string(ModeAuto)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("auto generate: %w", err)
	}

	o.logger.Info("import_batch_done", "mode", ModeAuto, "attempts", report.Attempts,
		"created", report.Created, "skipped", report.Skipped, "errors", report.Errors)
	return report, nil
}

// ValidateAuto checks count and score bounds.
func (o *Orchestrator) ValidateAuto(opts AutoOptions) error {
	err := o.validate.Struct(opts)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Count" {
				return ErrInvalidCount
			}
		}
		return ErrInvalidScoreRange
	}
	return err
}

// importOne runs one candidate inside a savepoint and classifies the result.
func (o *Orchestrator) importOne(ctx context.Context, tx Store, c candidate) ItemResult {
	title := strings.TrimSpace(c.record.Name)
	if title == "" {
		return ItemResult{Outcome: OutcomeSkipped, Reason: ReasonMissingTitle}
	}

	var result ItemResult
	err := tx.Transaction(ctx, func(sp Store) error {
		var err error
		result, err = o.resolve(ctx, sp, title, c)
		return err
	})
	if err != nil {
		return ItemResult{Title: title, Outcome: OutcomeFailed, Reason: ReasonError, Error: err.Error()}
	}
	return result
}

func (o *Orchestrator) record(report *BatchReport, item ItemResult) {
	report.add(item)
	metrics.ImportCandidates.WithLabelValues(string(report.Mode), string(item.Outcome)).Inc()

	switch item.Outcome {
	case OutcomeFailed:
		o.logger.Warn("import_candidate_failed", "mode", report.Mode, "title", item.Title,
			"reason", item.Reason, "error", item.Error)
	case OutcomeCreated:
		o.logger.Info("import_candidate_created", "mode", report.Mode, "title", item.Title,
			"review_id", item.ReviewID, "score", item.Score)
	default:
		o.logger.Debug("import_candidate_skipped", "mode", report.Mode, "title", item.Title, "reason", item.Reason)
	}
}

// parseScore: nil means no score was posted for this index and the default applies.
func parseScore(raw *string) (float64, bool) {
	if raw == nil {
		return DefaultManualScore, true
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 10 {
		return 0, false
	}
	return roundScore(v), true
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

func (o *Orchestrator) pickTerm() string {
	return o.franchises[o.intN(len(o.franchises))]
}

func (o *Orchestrator) intN(n int) int {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	return o.rng.IntN(n)
}

// randomScore is uniform in [lo, hi], rounded to one decimal and kept inside the range.
func (o *Orchestrator) randomScore(lo, hi float64) float64 {
	o.rngMu.Lock()
	f := o.rng.Float64()
	o.rngMu.Unlock()

	score := roundScore(lo + f*(hi-lo))
	if score < lo {
		score = math.Ceil(lo*10) / 10
	}
	if score > hi {
		score = math.Floor(hi*10) / 10
	}
	return score
}

func (o *Orchestrator) today() time.Time {
	y, m, d := o.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
