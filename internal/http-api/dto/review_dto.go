package dto

import (
	"time"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/service"
	"gamereviews/internal/pkg/pagination"
)

type CompanyRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type GenreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReviewResponse for list views
type ReviewResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	ReleaseDate   string     `json:"release_date"`
	ReviewScore   *float64   `json:"review_score"`
	ScoreDisplay  string     `json:"score_display"`
	FeaturedImage string     `json:"featured_image"`
	IsFeatured    bool       `json:"is_featured"`
	IsPublished   bool       `json:"is_published"`
	Views         uint       `json:"views"`
	LikesCount    int64      `json:"likes_count"`
	Publisher     CompanyRef `json:"publisher"`
	Developer     CompanyRef `json:"developer"`
	Genres        []GenreRef `json:"genres"`
	CreatedOn     time.Time  `json:"created_on"`
}

func companyRef(c models.Company) CompanyRef {
	return CompanyRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(r models.Review) ReviewResponse {
	genres := make([]GenreRef, 0, len(r.Genres))
	for _, g := range r.Genres {
		genres = append(genres, GenreRef{ID: g.ID, Name: g.Name})
	}
	return ReviewResponse{
		ID:            r.ID,
		Title:         r.Title,
		Slug:          r.Slug,
		Description:   r.Description,
		ReleaseDate:   r.ReleaseDate.Format(time.DateOnly),
		ReviewScore:   r.ReviewScore,
		ScoreDisplay:  r.ScoreDisplay(),
		FeaturedImage: r.FeaturedImage,
		IsFeatured:    r.IsFeatured,
		IsPublished:   r.IsPublished,
		Views:         r.Views,
		LikesCount:    r.LikesCount,
		Publisher:     companyRef(r.Publisher.Company),
		Developer:     companyRef(r.Developer.Company),
		Genres:        genres,
		CreatedOn:     r.CreatedOn,
	}
}

func FromModelsToReviewResponses(list []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromModelToReviewResponse(r))
	}
	return out
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Approved  bool      `json:"approved"`
	CreatedOn time.Time `json:"created_on"`
}

func FromModelToCommentResponse(c models.UserComment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Author:    c.Author.Username,
		Body:      c.Body,
		Approved:  c.Approved,
		CreatedOn: c.CreatedOn,
	}
}

type UserReviewResponse struct {
	ID           int64     `json:"id"`
	User         string    `json:"user"`
	Rating       int       `json:"rating"`
	ReviewText   string    `json:"review_text"`
	Approved     bool      `json:"approved"`
	HelpfulVotes uint      `json:"helpful_votes"`
	CreatedOn    time.Time `json:"created_on"`
}

func FromModelToUserReviewResponse(ur models.UserReview) UserReviewResponse {
	return UserReviewResponse{
		ID:           ur.ID,
		User:         ur.User.Username,
		Rating:       ur.Rating,
		ReviewText:   ur.ReviewText,
		Approved:     ur.Approved,
		HelpfulVotes: ur.HelpfulVotes,
		CreatedOn:    ur.CreatedOn,
	}
}

// ReviewDetailResponse is the review page: the review, its text and approved engagement.
type ReviewDetailResponse struct {
	ReviewResponse
	ReviewText  string               `json:"review_text"`
	ReviewedBy  string               `json:"reviewed_by,omitempty"`
	ReviewDate  *time.Time           `json:"review_date,omitempty"`
	Comments    []CommentResponse    `json:"comments"`
	UserReviews []UserReviewResponse `json:"user_reviews"`
}

func FromDetailToReviewDetailResponse(d *service.ReviewDetail) ReviewDetailResponse {
	resp := ReviewDetailResponse{
		ReviewResponse: FromModelToReviewResponse(d.Review),
		ReviewText:     d.Review.ReviewText,
		ReviewDate:     d.Review.ReviewDate,
		Comments:       make([]CommentResponse, 0, len(d.Comments)),
		UserReviews:    make([]UserReviewResponse, 0, len(d.UserReviews)),
	}
	if d.Review.ReviewedBy != nil {
		resp.ReviewedBy = d.Review.ReviewedBy.Username
	}
	for _, c := range d.Comments {
		resp.Comments = append(resp.Comments, FromModelToCommentResponse(c))
	}
	for _, ur := range d.UserReviews {
		resp.UserReviews = append(resp.UserReviews, FromModelToUserReviewResponse(ur))
	}
	return resp
}

// PaginatedResponse wraps one page of any list.
type PaginatedResponse[T any] struct {
	Data       []T             `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

func NewPaginatedResponse[T any](data []T, meta pagination.Meta) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{Data: data, Pagination: meta}
}
