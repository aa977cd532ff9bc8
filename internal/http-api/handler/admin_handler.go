package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gamereviews/internal/http-api/dto"
	"gamereviews/internal/http-api/service"
	"gamereviews/internal/importer"
	"gamereviews/internal/pkg/pagination"

	"github.com/gin-gonic/gin"
)

const (
	reviewPopulatePath    = "/api/admin/reviews/populate"
	autoGeneratePath      = "/api/admin/reviews/auto-generate"
	publisherPopulatePath = "/api/admin/publishers/populate"
	developerPopulatePath = "/api/admin/developers/populate"
)

// AdminHandler serves the superuser populate and moderation endpoints.
type AdminHandler struct {
	admin   service.AdminService
	imports service.ImportService
}

func NewAdminHandler(admin service.AdminService, imports service.ImportService) *AdminHandler {
	return &AdminHandler{admin: admin, imports: imports}
}

// RegisterRoutes expects rg to be behind AuthMiddleware and RequireSuperuser.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.GET("/populate", h.ReviewPopulate)
		reviews.POST("/populate", h.ReviewPopulatePost)
		reviews.POST("/populate/create", h.CreateFromSelection)
		reviews.POST("/auto-generate", h.AutoGenerate)
	}

	rg.GET("/publishers/populate", h.PublisherPopulate)
	rg.POST("/publishers/populate", h.PublisherAction)
	rg.GET("/developers/populate", h.DeveloperPopulate)
	rg.POST("/developers/populate", h.DeveloperAction)

	rg.POST("/comments/approve", h.ApproveComments)
	rg.POST("/user-reviews/approve", h.ApproveUserReviews)
}

func respond(c *gin.Context, status int, redirect string, msgs ...service.Message) {
	c.JSON(status, dto.NewMessageResponse(redirect, msgs...))
}

func (h *AdminHandler) reviewPage(c *gin.Context) (*dto.ReviewPopulateResponse, bool) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	page, err := h.admin.ReviewPopulate(ctx, pagination.ParsePage(c.Query("page")))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	resp := dto.FromReviewPopulatePage(page)
	return &resp, true
}

// ReviewPopulate GET /api/admin/reviews/populate?page=N
func (h *AdminHandler) ReviewPopulate(c *gin.Context) {
	resp, ok := h.reviewPage(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReviewPopulatePost POST /api/admin/reviews/populate
// A form with action runs a bulk action, delete_review removes one review, anything else
// searches the catalog and returns the page with the preview.
func (h *AdminHandler) ReviewPopulatePost(c *gin.Context) {
	page := currentPage(c)

	if action := c.PostForm("action"); action != "" {
		ctx, cancel := withTimeout(c, requestTimeout)
		defer cancel()

		msg, err := h.admin.ReviewAction(ctx, service.Action(action), formIDs(c, "existing_review_ids"))
		if errors.Is(err, service.ErrUnknownAction) {
			respond(c, http.StatusBadRequest, dto.PageRedirect(reviewPopulatePath, page),
				dto.ErrorMessage(fmt.Sprintf("Unknown action: %s", action)))
			return
		}
		respond(c, http.StatusOK, dto.PageRedirect(reviewPopulatePath, page), msg)
		return
	}

	if _, ok := c.GetPostForm("delete_review"); ok {
		ctx, cancel := withTimeout(c, requestTimeout)
		defer cancel()

		id, err := strconv.ParseInt(c.PostForm("review_id"), 10, 64)
		if err != nil {
			respond(c, http.StatusBadRequest, dto.PageRedirect(reviewPopulatePath, page),
				dto.ErrorMessage("Review not found"))
			return
		}
		respond(c, http.StatusOK, dto.PageRedirect(reviewPopulatePath, page), h.admin.DeleteReview(ctx, id))
		return
	}

	h.search(c)
}

func (h *AdminHandler) search(c *gin.Context) {
	term := c.PostForm("search")
	limit := service.DefaultSearchLimit
	if raw := c.PostForm("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond(c, http.StatusBadRequest, reviewPopulatePath, dto.ErrorMessage("Limit must be a number"))
			return
		}
		limit = service.ClampSearchLimit(n)
	}

	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()
	games, err := h.imports.Search(ctx, term, limit)
	var msgs []service.Message
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, err)
		return
	case errors.Is(err, importer.ErrNoCatalog):
		msgs = append(msgs, dto.ErrorMessage("Game catalog is not configured"))
	case err != nil:
		msgs = append(msgs, dto.ErrorMessage(fmt.Sprintf("Error searching games: %v", err)))
	}

	resp, ok := h.reviewPage(c)
	if !ok {
		return
	}
	resp.Messages = msgs
	resp.Games = games
	resp.SearchTerm = term
	resp.Limit = limit
	c.JSON(http.StatusOK, resp)
}

// selections reads the create form. Checkbox keys are indexed by position in selected_games.
func selections(c *gin.Context) []importer.Selection {
	games := c.PostFormArray("selected_games")
	scores := append(c.PostFormArray("review_scores"), c.PostFormArray("review_scores[]")...)

	out := make([]importer.Selection, 0, len(games))
	for i, payload := range games {
		sel := importer.Selection{Payload: payload}
		if i < len(scores) {
			score := scores[i]
			sel.Score = &score
		}
		_, sel.Published = c.GetPostForm(fmt.Sprintf("is_published_%d", i))
		_, sel.Featured = c.GetPostForm(fmt.Sprintf("is_featured_%d", i))
		out = append(out, sel)
	}
	return out
}

// CreateFromSelection POST /api/admin/reviews/populate/create
func (h *AdminHandler) CreateFromSelection(c *gin.Context) {
	ctx, cancel := withTimeout(c, importTimeout)
	defer cancel()

	report, err := h.imports.ImportSelection(ctx, selections(c))
	switch {
	case errors.Is(err, importer.ErrNoSelection):
		respond(c, http.StatusBadRequest, reviewPopulatePath, dto.ErrorMessage("No games selected"))
		return
	case err != nil:
		respond(c, http.StatusInternalServerError, reviewPopulatePath,
			dto.ErrorMessage(fmt.Sprintf("Error creating reviews: %v", err)))
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{
		MessageResponse: dto.NewMessageResponse(reviewPopulatePath, reportMessages(report)...),
		Report:          report,
	})
}

func reportMessages(report *importer.BatchReport) []service.Message {
	var msgs []service.Message
	for _, line := range report.ErrorMessages() {
		msgs = append(msgs, dto.ErrorMessage(line))
	}
	return append(msgs, service.Message{Level: service.LevelSuccess, Text: report.Summary()})
}

// AutoGenerate POST /api/admin/reviews/auto-generate
func (h *AdminHandler) AutoGenerate(c *gin.Context) {
	var req dto.AutoGenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		respond(c, http.StatusBadRequest, autoGeneratePath, dto.ErrorMessage("Invalid auto-generate parameters"))
		return
	}
	opts := req.Options()

	ctx, cancel := withTimeout(c, importTimeout)
	defer cancel()

	report, err := h.imports.AutoGenerate(ctx, opts)
	switch {
	case errors.Is(err, importer.ErrInvalidCount):
		respond(c, http.StatusBadRequest, autoGeneratePath, dto.ErrorMessage("Count must be between 1 and 100"))
		return
	case errors.Is(err, importer.ErrInvalidScoreRange):
		respond(c, http.StatusBadRequest, autoGeneratePath, dto.ErrorMessage("Invalid score range (1-10, min < max)"))
		return
	case errors.Is(err, importer.ErrNoCatalog):
		respond(c, http.StatusServiceUnavailable, autoGeneratePath, dto.ErrorMessage("Game catalog is not configured"))
		return
	case err != nil:
		respond(c, http.StatusInternalServerError, autoGeneratePath,
			dto.ErrorMessage(fmt.Sprintf("Error generating reviews: %v", err)))
		return
	}

	msg := service.Message{
		Level: service.LevelSuccess,
		Text: fmt.Sprintf("Successfully generated %d reviews with scores %.1f-%.1f!",
			report.Created, opts.MinScore, opts.MaxScore),
	}
	c.JSON(http.StatusOK, dto.ImportResponse{
		MessageResponse: dto.NewMessageResponse(autoGeneratePath, msg),
		Report:          report,
	})
}

type companyPopulateFunc func(ctx context.Context, page int) (*service.CompanyPopulatePage, error)

type companyActionFunc func(ctx context.Context, action service.Action, ids []int64) (service.Message, error)

func companyPopulate(c *gin.Context, populate companyPopulateFunc) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	page, err := populate(ctx, pagination.ParsePage(c.Query("page")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCompanyPopulatePage(page))
}

func companyAction(c *gin.Context, act companyActionFunc, path, idsKey string) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	page := currentPage(c)
	action := service.Action(c.PostForm("action"))
	msg, err := act(ctx, action, formIDs(c, idsKey))
	if errors.Is(err, service.ErrUnknownAction) {
		respond(c, http.StatusBadRequest, dto.PageRedirect(path, page),
			dto.ErrorMessage(fmt.Sprintf("Unknown action: %s", action)))
		return
	}

	// delete_unused may empty the current page, so it always lands on the first one.
	redirect := dto.PageRedirect(path, page)
	if action == service.ActionDeleteUnused {
		redirect = path
	}
	respond(c, http.StatusOK, redirect, msg)
}

func (h *AdminHandler) PublisherPopulate(c *gin.Context) {
	companyPopulate(c, h.admin.PublisherPopulate)
}

// PublisherAction POST /api/admin/publishers/populate
func (h *AdminHandler) PublisherAction(c *gin.Context) {
	companyAction(c, h.admin.PublisherAction, publisherPopulatePath, "existing_publisher_ids")
}

func (h *AdminHandler) DeveloperPopulate(c *gin.Context) {
	companyPopulate(c, h.admin.DeveloperPopulate)
}

// DeveloperAction POST /api/admin/developers/populate
func (h *AdminHandler) DeveloperAction(c *gin.Context) {
	companyAction(c, h.admin.DeveloperAction, developerPopulatePath, "existing_developer_ids")
}

// ApproveComments POST /api/admin/comments/approve with ids[]
func (h *AdminHandler) ApproveComments(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()
	respond(c, http.StatusOK, "", h.admin.ApproveComments(ctx, formIDs(c, "ids")))
}

// ApproveUserReviews POST /api/admin/user-reviews/approve with ids[]
func (h *AdminHandler) ApproveUserReviews(c *gin.Context) {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()
	respond(c, http.StatusOK, "", h.admin.ApproveUserReviews(ctx, formIDs(c, "ids")))
}
