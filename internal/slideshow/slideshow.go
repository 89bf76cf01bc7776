// Package slideshow holds the rotating hero image state.
package slideshow

import "time"

// DefaultInterval is how long each slide stays up.
const DefaultInterval = 5 * time.Second

// Slide is one image in the rotation.
type Slide struct {
	URL     string
	Caption string
}

// Slideshow is the hero rotation rendered into a page. The browser script
// (web/static/js/slideshow.js) runs the timer from the View and applies the
// same wrap-around rules as Next, Prev and Jump. Manual moves and the timer
// share one index, so a manual move is relative to whatever is shown.
//
// A Slideshow is not safe for concurrent use; build one per render.
type Slideshow struct {
	slides   []Slide
	interval time.Duration
	current  int
}

// New drops slides without a URL. A non-positive interval uses
// DefaultInterval.
func New(slides []Slide, interval time.Duration) *Slideshow {
	kept := make([]Slide, 0, len(slides))
	for _, s := range slides {
		if s.URL != "" {
			kept = append(kept, s)
		}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Slideshow{slides: kept, interval: interval}
}

// Len is the number of slides.
func (s *Slideshow) Len() int {
	return len(s.slides)
}

// Current returns the displayed index.
func (s *Slideshow) Current() int {
	return s.current
}

// Next advances one slide, wrapping around.
func (s *Slideshow) Next() int {
	return s.step(1)
}

// Prev goes back one slide, wrapping around.
func (s *Slideshow) Prev() int {
	return s.step(-1)
}

func (s *Slideshow) step(delta int) int {
	n := len(s.slides)
	if n == 0 {
		return 0
	}
	s.current = ((s.current+delta)%n + n) % n
	return s.current
}

// Jump shows slide i. Out-of-range indexes are ignored.
func (s *Slideshow) Jump(i int) int {
	if i >= 0 && i < len(s.slides) {
		s.current = i
	}
	return s.current
}

// Rotates reports whether the browser timer should run at all.
func (s *Slideshow) Rotates() bool {
	return len(s.slides) > 1
}

// View is the template model the browser script starts from.
type View struct {
	Slides     []Slide
	Current    int
	IntervalMS int64
	Rotates    bool
}

func (s *Slideshow) View() View {
	return View{
		Slides:     s.slides,
		Current:    s.current,
		IntervalMS: s.interval.Milliseconds(),
		Rotates:    s.Rotates(),
	}
}
