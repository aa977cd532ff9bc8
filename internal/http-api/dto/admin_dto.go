package dto

import (
	"gamereviews/internal/http-api/service"
	"gamereviews/internal/importer"
	"gamereviews/internal/pkg/pagination"
)

// AutoGenerateRequest is the auto-generate form. Zero values fall back to the defaults.
type AutoGenerateRequest struct {
	Count    *int     `form:"count" json:"count"`
	MinScore *float64 `form:"min_score" json:"min_score"`
	MaxScore *float64 `form:"max_score" json:"max_score"`
}

func (r AutoGenerateRequest) Options() importer.AutoOptions {
	opts := importer.DefaultAutoOptions()
	if r.Count != nil {
		opts.Count = *r.Count
	}
	if r.MinScore != nil {
		opts.MinScore = *r.MinScore
	}
	if r.MaxScore != nil {
		opts.MaxScore = *r.MaxScore
	}
	return opts
}

// ReviewPopulateResponse carries messages only when the catalog search failed.
type ReviewPopulateResponse struct {
	Messages      []service.Message      `json:"messages,omitempty"`
	Reviews       []ReviewResponse       `json:"existing_reviews"`
	Pagination    pagination.Meta        `json:"pagination"`
	FeaturedCount int64                  `json:"featured_count"`
	Games         []service.SearchResult `json:"games,omitempty"`
	SearchTerm    string                 `json:"search_term,omitempty"`
	Limit         int                    `json:"limit,omitempty"`
}

func FromReviewPopulatePage(p *service.ReviewPopulatePage) ReviewPopulateResponse {
	return ReviewPopulateResponse{
		Reviews:       FromModelsToReviewResponses(p.Reviews),
		Pagination:    p.Meta,
		FeaturedCount: p.FeaturedCount,
	}
}

type CompanyPopulateResponse struct {
	Companies  []CompanyResponse `json:"existing"`
	Pagination pagination.Meta   `json:"pagination"`
}

func FromCompanyPopulatePage(p *service.CompanyPopulatePage) CompanyPopulateResponse {
	return CompanyPopulateResponse{
		Companies:  FromModelsToCompanyResponses(p.Companies),
		Pagination: p.Meta,
	}
}

// ImportResponse carries the envelope plus the per-candidate report.
type ImportResponse struct {
	MessageResponse
	Report *importer.BatchReport `json:"report,omitempty"`
}
