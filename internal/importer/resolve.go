package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/ingestion/igdb"
	"gamereviews/internal/media"
	"gamereviews/internal/middleware/auth"
	"gamereviews/internal/textgen"
)

const (
	fallbackReviewerName  = "reviewer"
	fallbackReviewerEmail = "reviewer@example.com"
)

// resolve does the writes for one candidate. Returning an error rolls back the
// candidate's savepoint; skips and duplicates return a nil error.
func (o *Orchestrator) resolve(ctx context.Context, tx Store, title string, c candidate) (ItemResult, error) {
	slug := models.Slugify(title)
	if slug == "" {
		return ItemResult{Title: title, Outcome: OutcomeSkipped, Reason: ReasonMissingTitle}, nil
	}

	existing, err := tx.FindReview(ctx, title, slug)
	if err != nil {
		return ItemResult{}, err
	}
	if existing != nil {
		return duplicateOf(title, existing), nil
	}

	// both names are checked before anything is written
	devData, ok := firstNamed(c.record.Developers)
	if !ok {
		return ItemResult{Title: title, Outcome: OutcomeSkipped, Reason: ReasonMissingDeveloper}, nil
	}
	pubData, ok := firstNamed(c.record.Publishers)
	if !ok {
		return ItemResult{Title: title, Outcome: OutcomeSkipped, Reason: ReasonMissingPublisher}, nil
	}

	developer, _, err := tx.FirstOrCreateDeveloper(ctx, devData.Name, o.companySeed(ctx, devData))
	if err != nil {
		return ItemResult{}, err
	}
	publisher, _, err := tx.FirstOrCreatePublisher(ctx, pubData.Name, o.companySeed(ctx, pubData))
	if err != nil {
		return ItemResult{}, err
	}

	reviewer, err := o.resolveReviewer(ctx, tx)
	if err != nil {
		return ItemResult{}, err
	}

	description := c.record.Summary
	if description == "" && c.mode == ModeAuto {
		description = "Great game: " + title
	}

	now := o.now()
	score := c.score
	review := &models.Review{
		Title:         title,
		Slug:          slug,
		PublisherID:   publisher.ID,
		DeveloperID:   developer.ID,
		Description:   description,
		ReleaseDate:   o.releaseDate(c.record),
		ReviewScore:   &score,
		ReviewText:    o.reviewText(ctx, title, c.mode),
		ReviewedByID:  &reviewer.ID,
		ReviewDate:    &now,
		FeaturedImage: o.coverImage(ctx, c.record, title),
		IsPublished:   c.published,
		IsFeatured:    c.featured,
	}

	saved, created, err := tx.FirstOrCreateReview(ctx, review)
	if err != nil {
		return ItemResult{}, err
	}
	if !created {
		return duplicateOf(title, saved), nil
	}

	if err := o.attachGenres(ctx, tx, saved, c.record.Genres); err != nil {
		return ItemResult{}, err
	}

	return ItemResult{
		Title:    title,
		Outcome:  OutcomeCreated,
		ReviewID: saved.ID,
		Slug:     saved.Slug,
		Score:    score,
	}, nil
}

func duplicateOf(title string, r *models.Review) ItemResult {
	return ItemResult{Title: title, Outcome: OutcomeDuplicate, Reason: ReasonDuplicate, ReviewID: r.ID, Slug: r.Slug}
}

// firstNamed only looks at the first sub-record, matching how the catalog orders credits.
func firstNamed(list []igdb.Company) (igdb.Company, bool) {
	if len(list) == 0 {
		return igdb.Company{}, false
	}
	c := list[0]
	c.Name = strings.TrimSpace(c.Name)
	return c, c.Name != ""
}

// companySeed builds the creation defaults. The logo is only mirrored when the
// company is actually new.
func (o *Orchestrator) companySeed(ctx context.Context, data igdb.Company) func() models.Company {
	return func() models.Company {
		var founded *int
		if data.FoundedYear != nil && *data.FoundedYear != 0 {
			y := *data.FoundedYear
			founded = &y
		}
		return models.Company{
			Name:        data.Name,
			Description: data.Description,
			Website:     data.Website,
			FoundedYear: founded,
			Logo:        o.logo(ctx, data),
		}
	}
}

// logo: mirrored copy, else the raw remote URL, else the placeholder.
func (o *Orchestrator) logo(ctx context.Context, data igdb.Company) string {
	url := media.NormalizeURL(data.LogoURL)
	if url == "" {
		return models.PlaceholderImage
	}
	if ref, ok := o.mirror.Upload(ctx, url, data.Name+" logo"); ok {
		return ref
	}
	return url
}

func (o *Orchestrator) coverImage(ctx context.Context, rec igdb.GameRecord, title string) string {
	url := media.NormalizeURL(rec.CoverSource())
	if url == "" {
		return models.PlaceholderImage
	}
	if ref, ok := o.mirror.Upload(ctx, url, title); ok {
		return ref
	}
	return models.PlaceholderImage
}

// releaseDate is the first release date in UTC, or today when missing or unreadable.
func (o *Orchestrator) releaseDate(rec igdb.GameRecord) time.Time {
	t, ok := rec.ReleaseTime()
	if !ok {
		return o.today()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// reviewText skips generation in auto mode to stay clear of provider rate limits.
func (o *Orchestrator) reviewText(ctx context.Context, title string, mode Mode) string {
	if mode == ModeManual {
		if text, ok := o.generator.Generate(ctx, title); ok {
			return text
		}
	}
	return textgen.StockReview(title)
}

func (o *Orchestrator) resolveReviewer(ctx context.Context, tx Store) (*models.User, error) {
	user, err := tx.RandomUser(ctx)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	user, err = tx.FirstOrCreateUser(ctx, fallbackReviewerName, func() (models.User, error) {
		hash, err := auth.UnusablePassword()
		if err != nil {
			return models.User{}, fmt.Errorf("hash reviewer password: %w", err)
		}
		return models.User{Username: fallbackReviewerName, Email: fallbackReviewerEmail, Password: hash}, nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (o *Orchestrator) attachGenres(ctx context.Context, tx Store, review *models.Review, genres []igdb.Named) error {
	var resolved []models.Genre
	seen := map[string]bool{}
	for _, g := range genres {
		name := strings.TrimSpace(g.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		genre, err := tx.FirstOrCreateGenre(ctx, name)
		if err != nil {
			return err
		}
		resolved = append(resolved, *genre)
	}
	return tx.AttachGenres(ctx, review, resolved)
}
