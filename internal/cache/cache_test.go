package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNopStore(t *testing.T) {
	var s Store = NopStore{}
	ctx := context.Background()

	assert.NoError(t, s.SetJSON(ctx, KeyNavGenres, []string{"Shooter"}, time.Minute))

	var got []string
	assert.ErrorIs(t, s.GetJSON(ctx, KeyNavGenres, &got), ErrMiss)
	assert.Empty(t, got)
	assert.NoError(t, s.Delete(ctx, NavKeys...))
}

func TestNewRedisStoreRejectsBadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not-a-redis-url")
	assert.ErrorContains(t, err, "parse redis url")
}
