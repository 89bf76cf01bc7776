package slideshow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slides(n int) []Slide {
	out := make([]Slide, n)
	for i := range out {
		out[i] = Slide{URL: "/img/" + string(rune('a'+i)) + ".jpg"}
	}
	return out
}

func TestNew_DropsEmptySlides(t *testing.T) {
	s := New([]Slide{{URL: "/a.jpg"}, {}, {URL: "/b.jpg"}}, 0)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, DefaultInterval.Milliseconds(), s.View().IntervalMS)
}

func TestManualControls(t *testing.T) {
	s := New(slides(3), time.Second)

	tests := []struct {
		name string
		op   func() int
		want int
	}{
		{"next", s.Next, 1},
		{"next", s.Next, 2},
		{"next wraps", s.Next, 0},
		{"prev wraps", s.Prev, 2},
		{"jump", func() int { return s.Jump(1) }, 1},
		{"jump out of range ignored", func() int { return s.Jump(5) }, 1},
		{"jump negative ignored", func() int { return s.Jump(-1) }, 1},
		{"prev", s.Prev, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op())
			assert.Equal(t, tt.want, s.Current())
		})
	}
}

func TestView(t *testing.T) {
	tests := []struct {
		name    string
		slides  int
		rotates bool
	}{
		{"empty", 0, false},
		{"single slide stays put", 1, false},
		{"two slides rotate", 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(slides(tt.slides), 2*time.Second)
			s.Next()

			v := s.View()
			assert.Equal(t, tt.rotates, v.Rotates)
			assert.Len(t, v.Slides, tt.slides)
			assert.Equal(t, int64(2000), v.IntervalMS)
			if !tt.rotates {
				assert.Equal(t, 0, v.Current)
			}
		})
	}
}
