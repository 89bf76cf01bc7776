package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Open House 2024!", "open-house-2024"},
		{"  --Sports   Day--  ", "sports-day"},
		{"Form 1 & 2: Orientation", "form-1-2-orientation"},
		{"Élan Club", "lan-club"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestResolveSlug(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		title string
		id    int
		want  string
	}{
		{"keeps valid slug", "term-dates", "Something Else", 1, "term-dates"},
		{"empty uses title", "", "Open House 2024!", 1, "open-house-2024"},
		{"literal null uses title", "null", "Prize Giving", 3, "prize-giving"},
		{"literal undefined uses title", "undefined", "Prize Giving", 3, "prize-giving"},
		{"no title uses id", "", "", 42, "announcement-42"},
		{"punctuation-only title uses id", "null", "???", 7, "announcement-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSlug(tt.raw, tt.title, "announcement", tt.id))
		})
	}
}

func TestResolveSlug_Idempotent(t *testing.T) {
	inputs := []struct {
		raw, title string
		id         int
	}{
		{"", "Open House 2024!", 1},
		{"null", "", 42},
		{"already-fine", "Whatever", 5},
	}
	for _, in := range inputs {
		once := ResolveSlug(in.raw, in.title, "announcement", in.id)
		twice := ResolveSlug(once, in.title, "announcement", in.id)
		assert.Equal(t, once, twice)
		assert.Equal(t, once, ResolveSlug(in.raw, in.title, "announcement", in.id))
	}
}

func TestIsBlankSlug(t *testing.T) {
	for _, s := range []string{"", " ", "null", "undefined"} {
		assert.True(t, IsBlankSlug(s), s)
	}
	assert.False(t, IsBlankSlug("nullable-things"))
}
