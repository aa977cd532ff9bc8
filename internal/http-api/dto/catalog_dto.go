package dto

import (
	"time"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/service"
)

type CompanyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	FoundedYear *int      `json:"founded_year"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	GamesCount  int64     `json:"games_count"`
	CreatedOn   time.Time `json:"created_on"`
}

func FromModelToCompanyResponse(c models.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		FoundedYear: c.FoundedYear,
		Website:     c.Website,
		Description: c.Description,
		Logo:        c.Logo,
		GamesCount:  c.GamesCount,
		CreatedOn:   c.CreatedOn,
	}
}

func FromModelsToCompanyResponses(list []models.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromModelToCompanyResponse(c))
	}
	return out
}

type CompanyDetailResponse struct {
	CompanyResponse
	Reviews []ReviewResponse `json:"reviews"`
}

func FromDetailToCompanyDetailResponse(d *service.CompanyDetail) CompanyDetailResponse {
	return CompanyDetailResponse{
		CompanyResponse: FromModelToCompanyResponse(d.Company),
		Reviews:         FromModelsToReviewResponses(d.Reviews),
	}
}

type GenreResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	GamesCount int64  `json:"games_count"`
}

func FromModelsToGenreResponses(list []models.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(list))
	for _, g := range list {
		out = append(out, GenreResponse{ID: g.ID, Name: g.Name, GamesCount: g.GamesCount})
	}
	return out
}

type GenreDetailResponse struct {
	GenreResponse
	Reviews []ReviewResponse `json:"reviews"`
}

func FromDetailToGenreDetailResponse(d *service.GenreDetail) GenreDetailResponse {
	return GenreDetailResponse{
		GenreResponse: GenreResponse{ID: d.Genre.ID, Name: d.Genre.Name, GamesCount: d.Genre.GamesCount},
		Reviews:       FromModelsToReviewResponses(d.Reviews),
	}
}

type NavigationResponse struct {
	Genres     []GenreResponse   `json:"genres"`
	Publishers []CompanyResponse `json:"publishers"`
	Developers []CompanyResponse `json:"developers"`
}

func FromNavigation(n *service.Navigation) NavigationResponse {
	return NavigationResponse{
		Genres:     FromModelsToGenreResponses(n.Genres),
		Publishers: FromModelsToCompanyResponses(n.Publishers),
		Developers: FromModelsToCompanyResponses(n.Developers),
	}
}
