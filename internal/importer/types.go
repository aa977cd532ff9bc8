package importer

import (
	"errors"
	"fmt"
	"strings"
)

type Mode string

const (
	ModeManual Mode = "manual"
	ModeAuto   Mode = "auto"
)

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// SkipReason explains a skipped or failed candidate.
type SkipReason string

const (
	ReasonDuplicate        SkipReason = "duplicate"
	ReasonInvalidScore     SkipReason = "invalid_score"
	ReasonMissingTitle     SkipReason = "missing_title"
	ReasonMissingDeveloper SkipReason = "missing_developer"
	ReasonMissingPublisher SkipReason = "missing_publisher"
	ReasonNoResults        SkipReason = "no_results"
	ReasonCatalogError     SkipReason = "catalog_error"
	ReasonInvalidPayload   SkipReason = "invalid_payload"
	ReasonError            SkipReason = "error"
)

const DefaultManualScore = 5.0

var (
	ErrNoSelection       = errors.New("no games selected")
	ErrInvalidCount      = errors.New("count must be between 1 and 100")
	ErrInvalidScoreRange = errors.New("invalid score range (1-10, min < max)")
	ErrNoCatalog         = errors.New("game catalog is not configured")
)

// Selection is one operator-picked candidate from the populate page.
type Selection struct {
	// Payload is the game record as JSON, exactly as it was posted back.
	Payload string
	// Score is the raw score field; nil when fewer scores than games were posted.
	Score     *string
	Published bool
	Featured  bool
}

// AutoOptions drives AutoGenerate.
type AutoOptions struct {
	Count    int     `validate:"gte=1,lte=100"`
	MinScore float64 `validate:"gte=1,ltfield=MaxScore"`
	MaxScore float64 `validate:"lte=10"`
}

func DefaultAutoOptions() AutoOptions {
	return AutoOptions{Count: 50, MinScore: 5, MaxScore: 10}
}

type ItemResult struct {
	Title    string     `json:"title"`
	Outcome  Outcome    `json:"outcome"`
	Reason   SkipReason `json:"reason,omitempty"`
	ReviewID int64      `json:"review_id,omitempty"`
	Slug     string     `json:"slug,omitempty"`
	Score    float64    `json:"score,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// BatchReport is the result of one orchestrator run.
// Skipped counts duplicates only; other skips are visible through Items and SkipCounts.
type BatchReport struct {
	Mode     Mode         `json:"mode"`
	Created  int          `json:"created"`
	Skipped  int          `json:"skipped"`
	Errors   int          `json:"errors"`
	Attempts int          `json:"attempts"`
	Items    []ItemResult `json:"items"`
}

func (r *BatchReport) add(item ItemResult) {
	switch item.Outcome {
	case OutcomeCreated:
		r.Created++
	case OutcomeDuplicate:
		r.Skipped++
	case OutcomeFailed:
		r.Errors++
	}
	r.Items = append(r.Items, item)
}

// Summary renders the operator-facing success line.
func (r *BatchReport) Summary() string {
	msg := fmt.Sprintf("Successfully created %d review(s)", r.Created)
	if r.Skipped > 0 {
		msg += fmt.Sprintf(" (skipped %d existing review(s))", r.Skipped)
	}
	return msg
}

// ErrorMessages lists one line per failed candidate.
func (r *BatchReport) ErrorMessages() []string {
	var out []string
	for _, it := range r.Items {
		if it.Outcome == OutcomeFailed {
			out = append(out, fmt.Sprintf("Error processing %s: %s", it.Title, it.Error))
		}
	}
	return out
}

// SkipCounts tallies non-duplicate skips by reason.
func (r *BatchReport) SkipCounts() map[SkipReason]int {
	counts := map[SkipReason]int{}
	for _, it := range r.Items {
		if it.Outcome == OutcomeSkipped {
			counts[it.Reason]++
		}
	}
	return counts
}

// CreatedTitles is a short human list, mostly for CLI output.
func (r *BatchReport) CreatedTitles() string {
	var titles []string
	for _, it := range r.Items {
		if it.Outcome == OutcomeCreated {
			titles = append(titles, it.Title)
		}
	}
	return strings.Join(titles, ", ")
}
