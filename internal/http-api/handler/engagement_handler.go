package handler

import (
	"net/http"
	"strconv"

	"gamereviews/internal/http-api/dto"
	"gamereviews/internal/http-api/middleware"
	"gamereviews/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	svc service.EngagementService
}

func NewEngagementHandler(svc service.EngagementService) *EngagementHandler {
	return &EngagementHandler{svc: svc}
}

// RegisterRoutes expects rg to be behind AuthMiddleware.
func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews/:slug")
	{
		reviews.POST("/like", h.ToggleLike)

		text := reviews.Group("", middleware.SanitizeJSON())
		text.POST("/comments", h.CreateComment)
		text.PUT("/comments/:id", h.UpdateComment)
		text.DELETE("/comments/:id", h.DeleteComment)

		text.POST("/user-reviews", h.CreateUserReview)
		text.PUT("/user-reviews/:id", h.UpdateUserReview)
		text.DELETE("/user-reviews/:id", h.DeleteUserReview)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// ToggleLike POST /api/reviews/:slug/like
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	liked, count, err := h.svc.ToggleLike(ctx, c.Param("slug"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: liked, LikesCount: count})
}

// CreateComment POST /api/reviews/:slug/comments
func (h *EngagementHandler) CreateComment(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.svc.CreateComment(ctx, c.Param("slug"), middleware.UserID(c), req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(*comment))
}

// UpdateComment PUT /api/reviews/:slug/comments/:id
func (h *EngagementHandler) UpdateComment(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.svc.UpdateComment(ctx, c.Param("slug"), id, middleware.UserID(c), req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(*comment))
}

// DeleteComment DELETE /api/reviews/:slug/comments/:id
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteComment(ctx, c.Param("slug"), id, middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateUserReview POST /api/reviews/:slug/user-reviews
func (h *EngagementHandler) CreateUserReview(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	var req dto.UserReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ur, err := h.svc.CreateUserReview(ctx, c.Param("slug"), middleware.UserID(c), req.Rating, req.ReviewText)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserReviewResponse(*ur))
}

// UpdateUserReview PUT /api/reviews/:slug/user-reviews/:id
func (h *EngagementHandler) UpdateUserReview(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UserReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ur, err := h.svc.UpdateUserReview(ctx, c.Param("slug"), id, middleware.UserID(c), req.Rating, req.ReviewText)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserReviewResponse(*ur))
}

// DeleteUserReview DELETE /api/reviews/:slug/user-reviews/:id
func (h *EngagementHandler) DeleteUserReview(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUserReview(ctx, c.Param("slug"), id, middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
