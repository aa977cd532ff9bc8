package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gamereviews/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

// importTimeout covers a whole import batch, which talks to IGDB and the media bucket per candidate.
const importTimeout = 10 * time.Minute

func withTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}

// formIDs reads every value posted under key (and key[]) as int64, ignoring junk.
func formIDs(c *gin.Context, key string) []int64 {
	values := append(c.PostFormArray(key), c.PostFormArray(key+"[]")...)
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// currentPage prefers the posted current_page over the page query value.
func currentPage(c *gin.Context) int {
	raw := c.PostForm("current_page")
	if raw == "" {
		raw = c.Query("page")
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// writeError maps service sentinels to status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
