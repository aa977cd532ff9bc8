package handler

import (
	"net/http"
	"strconv"

	"gamereviews/internal/http-api/dto"
	"gamereviews/internal/http-api/service"
	"gamereviews/internal/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public list and detail pages.
type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews", h.ListReviews)
	rg.GET("/reviews/:slug", h.GetReview)
	rg.GET("/publishers", h.ListPublishers)
	rg.GET("/publishers/:slug", h.GetPublisher)
	rg.GET("/developers", h.ListDevelopers)
	rg.GET("/developers/:slug", h.GetDeveloper)
	rg.GET("/genres", h.ListGenres)
	rg.GET("/genres/:id", h.GetGenre)
	rg.GET("/navigation", h.Navigation)
}

// ListReviews GET /api/reviews?sort=az|za|newest|oldest&page=N
func (h *CatalogHandler) ListReviews(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	list, meta, err := h.svc.ListReviews(ctx, pagination.FromContext(c, pagination.ListSize))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromModelsToReviewResponses(list), meta))
}

// GetReview GET /api/reviews/:slug
func (h *CatalogHandler) GetReview(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	detail, err := h.svc.GetReview(ctx, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDetailToReviewDetailResponse(detail))
}

func (h *CatalogHandler) ListPublishers(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	list, meta, err := h.svc.ListPublishers(ctx, pagination.FromContext(c, pagination.ListSize))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromModelsToCompanyResponses(list), meta))
}

func (h *CatalogHandler) GetPublisher(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	detail, err := h.svc.GetPublisher(ctx, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDetailToCompanyDetailResponse(detail))
}

func (h *CatalogHandler) ListDevelopers(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	list, meta, err := h.svc.ListDevelopers(ctx, pagination.FromContext(c, pagination.ListSize))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromModelsToCompanyResponses(list), meta))
}

func (h *CatalogHandler) GetDeveloper(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	detail, err := h.svc.GetDeveloper(ctx, c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDetailToCompanyDetailResponse(detail))
}

func (h *CatalogHandler) ListGenres(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	list, meta, err := h.svc.ListGenres(ctx, pagination.FromContext(c, pagination.ListSize))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromModelsToGenreResponses(list), meta))
}

func (h *CatalogHandler) GetGenre(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	detail, err := h.svc.GetGenre(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDetailToGenreDetailResponse(detail))
}

// Navigation GET /api/navigation
func (h *CatalogHandler) Navigation(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	nav, err := h.svc.Navigation(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromNavigation(nav))
}
