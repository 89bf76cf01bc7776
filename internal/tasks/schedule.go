package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// FallbackInterval is used when a schedule has no rule or the rule has no
// further occurrences.
const FallbackInterval = time.Minute

// Schedule computes run times from an RRULE such as "FREQ=MINUTELY;INTERVAL=5".
type Schedule struct {
	rule *rrule.RRule
}

// NewSchedule parses rule with occurrences anchored at start. An invalid rule
// still yields a usable schedule on the fallback interval, alongside the
// parse error so the caller can log it.
func NewSchedule(rule string, start time.Time) (Schedule, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return Schedule{}, nil
	}
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid schedule %q: %w", rule, err)
	}
	r.DTStart(start)
	return Schedule{rule: r}, nil
}

// Next returns the first run strictly after t.
func (s Schedule) Next(t time.Time) time.Time {
	if s.rule != nil {
		if next := s.rule.After(t, false); !next.IsZero() {
			return next
		}
	}
	return t.Add(FallbackInterval)
}

func (s Schedule) String() string {
	if s.rule == nil {
		return "every " + FallbackInterval.String()
	}
	return s.rule.String()
}
