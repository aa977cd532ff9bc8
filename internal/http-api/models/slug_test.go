package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Halo", "halo"},
		{"Assassin's Creed: Valhalla", "assassins-creed-valhalla"},
		{"  The Witcher 3  ", "the-witcher-3"},
		{"Pokémon Red", "pokemon-red"},
		{"Counter-Strike -- Global   Offensive", "counter-strike-global-offensive"},
		{"!!!", ""},
		{"under_score", "under_score"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	got := Slugify(strings.Repeat("a ", 300))
	assert.LessOrEqual(t, len(got), maxSlugLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestScoreDisplay(t *testing.T) {
	score := 9.5
	assert.Equal(t, "9.5/10", Review{ReviewScore: &score}.ScoreDisplay())
	assert.Equal(t, "No Score", Review{}.ScoreDisplay())
}
