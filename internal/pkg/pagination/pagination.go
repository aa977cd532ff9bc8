package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	// ListSize is the fixed page size of the public list pages.
	ListSize = 12
	// AdminSize is the page size of the admin populate pages.
	AdminSize = 50
)

type SortMode string

const (
	SortAZ     SortMode = "az"
	SortZA     SortMode = "za"
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
)

// ParseSort maps a query value to a SortMode. Unknown values fall back to az.
func ParseSort(s string) SortMode {
	switch SortMode(s) {
	case SortZA, SortNewest, SortOldest:
		return SortMode(s)
	default:
		return SortAZ
	}
}

// OrderClause returns the ORDER BY expression for the mode.
func (m SortMode) OrderClause(nameCol, createdCol string) string {
	switch m {
	case SortZA:
		return nameCol + " DESC"
	case SortNewest:
		return createdCol + " DESC"
	case SortOldest:
		return createdCol + " ASC"
	default:
		return nameCol + " ASC"
	}
}

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
	Sort SortMode
}

// Meta describes the page that was actually served.
type Meta struct {
	Total       int64    `json:"total"`
	CurrentPage int      `json:"current_page"`
	TotalPage   int      `json:"total_page"`
	Size        int      `json:"size"`
	HasNextPage bool     `json:"has_next_page"`
	HasPrevPage bool     `json:"has_prev_page"`
	Sort        SortMode `json:"sort,omitempty"`
}

// FromContext reads page and sort from the request. size is fixed by the caller.
func FromContext(c *gin.Context, size int) Query {
	return Query{
		Page: ParsePage(c.Query("page")),
		Size: size,
		Sort: ParseSort(c.Query("sort")),
	}
}

// ParsePage returns DefaultPage for anything that is not a positive integer.
func ParsePage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

// Clamp pulls page into [1, last page]. An empty result set has a single page.
func Clamp(page int, total int64, size int) (int, int) {
	if size < 1 {
		size = ListSize
	}
	totalPage := int((total + int64(size) - 1) / int64(size))
	if totalPage < 1 {
		totalPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPage {
		page = totalPage
	}
	return page, totalPage
}

// Paginate counts rows matched by db, clamps the requested page and loads it into dest.
// scopes are applied after counting (selects, ordering, preloads).
func Paginate[T any](db *gorm.DB, q Query, dest *[]T, scopes ...func(*gorm.DB) *gorm.DB) (Meta, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Meta{}, err
	}

	page, totalPage := Clamp(q.Page, total, q.Size)
	offset := (page - 1) * q.Size
	if err := db.Session(&gorm.Session{}).Scopes(scopes...).Offset(offset).Limit(q.Size).Find(dest).Error; err != nil {
		return Meta{}, err
	}

	return Meta{
		Total:       total,
		CurrentPage: page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: page < totalPage,
		HasPrevPage: page > 1,
		Sort:        q.Sort,
	}, nil
}
