package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/repository"
	"gamereviews/internal/pkg/pagination"
)

var ErrUnknownAction = errors.New("unknown action")

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one operator-facing notice produced by an admin action.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

func success(format string, args ...any) Message {
	return Message{Level: LevelSuccess, Text: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Message {
	return Message{Level: LevelError, Text: fmt.Sprintf(format, args...)}
}

type Action string

const (
	ActionDeleteSelected    Action = "delete_selected"
	ActionDeleteUnused      Action = "delete_unused"
	ActionPublishSelected   Action = "publish_selected"
	ActionUnpublishSelected Action = "unpublish_selected"
	ActionFeatureSelected   Action = "feature_selected"
	ActionUnfeatureSelected Action = "unfeature_selected"
)

type ReviewPopulatePage struct {
	Reviews       []models.Review
	Meta          pagination.Meta
	FeaturedCount int64
}

type CompanyPopulatePage struct {
	Companies []models.Company
	Meta      pagination.Meta
}

// AdminService backs the populate pages. Store failures come back as error
// messages; the returned error is only ErrUnknownAction.
type AdminService interface {
	ReviewPopulate(ctx context.Context, page int) (*ReviewPopulatePage, error)
	ReviewAction(ctx context.Context, action Action, ids []int64) (Message, error)
	DeleteReview(ctx context.Context, id int64) Message

	PublisherPopulate(ctx context.Context, page int) (*CompanyPopulatePage, error)
	PublisherAction(ctx context.Context, action Action, ids []int64) (Message, error)
	DeveloperPopulate(ctx context.Context, page int) (*CompanyPopulatePage, error)
	DeveloperAction(ctx context.Context, action Action, ids []int64) (Message, error)

	ApproveComments(ctx context.Context, ids []int64) Message
	ApproveUserReviews(ctx context.Context, ids []int64) Message
}

// NavigationInvalidator drops the cached navigation lists.
type NavigationInvalidator interface {
	InvalidateNavigation(ctx context.Context)
}

type adminService struct {
	reviews     ReviewStore
	publishers  CompanyStore[models.Publisher]
	developers  CompanyStore[models.Developer]
	comments    repository.CommentRepository
	userReviews repository.UserReviewRepository
	nav         NavigationInvalidator
	logger      *slog.Logger
}

type AdminDeps struct {
	Reviews     ReviewStore
	Publishers  CompanyStore[models.Publisher]
	Developers  CompanyStore[models.Developer]
	Comments    repository.CommentRepository
	UserReviews repository.UserReviewRepository
	Navigation  NavigationInvalidator
	Logger      *slog.Logger
}

func NewAdminService(d AdminDeps) AdminService {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &adminService{
		reviews:     d.Reviews,
		publishers:  d.Publishers,
		developers:  d.Developers,
		comments:    d.Comments,
		userReviews: d.UserReviews,
		nav:         d.Navigation,
		logger:      d.Logger,
	}
}

func (s *adminService) invalidate(ctx context.Context) {
	if s.nav != nil {
		s.nav.InvalidateNavigation(ctx)
	}
}

func (s *adminService) ReviewPopulate(ctx context.Context, page int) (*ReviewPopulatePage, error) {
	list, meta, err := s.reviews.ListAll(ctx, pagination.Query{Page: page, Size: pagination.AdminSize})
	if err != nil {
		return nil, err
	}
	featured, err := s.reviews.CountFeatured(ctx)
	if err != nil {
		return nil, err
	}
	return &ReviewPopulatePage{Reviews: list, Meta: meta, FeaturedCount: featured}, nil
}

type flagAction struct {
	flag  repository.ReviewFlag
	value bool
	done  string // past tense for the success message
	doing string
}

var reviewFlagActions = map[Action]flagAction{
	ActionPublishSelected:   {repository.FlagPublished, true, "published", "publishing"},
	ActionUnpublishSelected: {repository.FlagPublished, false, "unpublished", "unpublishing"},
	ActionFeatureSelected:   {repository.FlagFeatured, true, "featured", "featuring"},
	ActionUnfeatureSelected: {repository.FlagFeatured, false, "unfeatured", "unfeaturing"},
}

func (s *adminService) ReviewAction(ctx context.Context, action Action, ids []int64) (Message, error) {
	if action == ActionDeleteSelected {
		if len(ids) == 0 {
			return Message{Level: LevelWarning, Text: "No reviews selected for deletion"}, nil
		}
		n, err := s.reviews.DeleteByIDs(ctx, ids)
		if err != nil {
			s.logger.Error("admin_reviews_delete_failed", "ids", ids, "error", err)
			return failure("Error deleting reviews: %v", err), nil
		}
		s.invalidate(ctx)
		s.logger.Info("admin_reviews_deleted", "count", n)
		return success("Successfully deleted %d review(s)", n), nil
	}

	fa, ok := reviewFlagActions[action]
	if !ok {
		return Message{}, ErrUnknownAction
	}
	if len(ids) == 0 {
		return Message{Level: LevelWarning, Text: "No reviews selected"}, nil
	}
	n, err := s.reviews.SetFlag(ctx, ids, fa.flag, fa.value)
	if err != nil {
		s.logger.Error("admin_reviews_update_failed", "action", action, "error", err)
		return failure("Error %s reviews: %v", fa.doing, err), nil
	}
	s.logger.Info("admin_reviews_updated", "action", action, "count", n)
	return success("Successfully %s %d review(s)", fa.done, n), nil
}

// DeleteReview is the single-review form kept for older admin pages.
func (s *adminService) DeleteReview(ctx context.Context, id int64) Message {
	review, err := s.reviews.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return failure("Review not found")
		}
		return failure("Error deleting review: %v", err)
	}
	s.invalidate(ctx)
	return success("Successfully deleted review: %s", review.Title)
}

func (s *adminService) PublisherPopulate(ctx context.Context, page int) (*CompanyPopulatePage, error) {
	return companyPopulate(ctx, s.publishers, page)
}

func (s *adminService) PublisherAction(ctx context.Context, action Action, ids []int64) (Message, error) {
	return companyAction(ctx, s, s.publishers, action, ids)
}

func (s *adminService) DeveloperPopulate(ctx context.Context, page int) (*CompanyPopulatePage, error) {
	return companyPopulate(ctx, s.developers, page)
}

func (s *adminService) DeveloperAction(ctx context.Context, action Action, ids []int64) (Message, error) {
	return companyAction(ctx, s, s.developers, action, ids)
}

func companyPopulate[T models.CompanyModel](ctx context.Context, store CompanyStore[T], page int) (*CompanyPopulatePage, error) {
	list, meta, err := store.List(ctx, pagination.Query{Page: page, Size: pagination.AdminSize, Sort: pagination.SortNewest})
	if err != nil {
		return nil, err
	}
	return &CompanyPopulatePage{Companies: bases(list), Meta: meta}, nil
}

func companyAction[T models.CompanyModel](ctx context.Context, s *adminService, store CompanyStore[T], action Action, ids []int64) (Message, error) {
	kind := store.Kind()
	switch action {
	case ActionDeleteSelected:
		if len(ids) == 0 {
			return Message{Level: LevelWarning, Text: fmt.Sprintf("No %ss selected", kind)}, nil
		}
		n, err := store.DeleteByIDs(ctx, ids)
		if err != nil {
			s.logger.Error("admin_companies_delete_failed", "kind", kind, "error", err)
			return failure("Error deleting %ss: %v", kind, err), nil
		}
		s.invalidate(ctx)
		s.logger.Info("admin_companies_deleted", "kind", kind, "count", n)
		return success("Successfully deleted %d %s(s)", n, kind), nil

	case ActionDeleteUnused:
		n, err := store.DeleteUnused(ctx)
		if err != nil {
			s.logger.Error("admin_companies_delete_unused_failed", "kind", kind, "error", err)
			return failure("Error deleting unused %ss: %v", kind, err), nil
		}
		if n == 0 {
			return Message{Level: LevelInfo, Text: fmt.Sprintf("No unused %ss found", kind)}, nil
		}
		s.invalidate(ctx)
		s.logger.Info("admin_companies_deleted_unused", "kind", kind, "count", n)
		return success("Successfully deleted %d unused %s(s)", n, kind), nil

	default:
		return Message{}, ErrUnknownAction
	}
}

func (s *adminService) ApproveComments(ctx context.Context, ids []int64) Message {
	if len(ids) == 0 {
		return Message{Level: LevelWarning, Text: "No comments selected"}
	}
	n, err := s.comments.Approve(ctx, ids)
	if err != nil {
		return failure("Error approving comments: %v", err)
	}
	return success("Successfully approved %d comment(s)", n)
}

func (s *adminService) ApproveUserReviews(ctx context.Context, ids []int64) Message {
	if len(ids) == 0 {
		return Message{Level: LevelWarning, Text: "No user reviews selected"}
	}
	n, err := s.userReviews.Approve(ctx, ids)
	if err != nil {
		return failure("Error approving user reviews: %v", err)
	}
	return success("Successfully approved %d user review(s)", n)
}
