package cms

import (
	"fmt"
	"net/http"
)

// ErrorClass groups fetch failures for the degradation policy.
type ErrorClass string

const (
	ClassTransport ErrorClass = "transport"
	ClassTimeout   ErrorClass = "timeout"
	ClassStatus    ErrorClass = "status"
	ClassDecode    ErrorClass = "decode"
)

// FetchError describes a failed CMS request.
type FetchError struct {
	Class    ErrorClass
	Status   int
	URL      string
	HasToken bool
	Err      error
}

func (e *FetchError) Error() string {
	var msg string
	switch e.Class {
	case ClassStatus:
		msg = fmt.Sprintf("cms fetch failed: %d %s", e.Status, http.StatusText(e.Status))
		if !e.HasToken {
			msg += " (no API token configured)"
		}
	case ClassTimeout:
		msg = "cms fetch timed out"
	case ClassDecode:
		msg = "cms response could not be decoded"
	default:
		msg = "cms unreachable"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NotFound reports a 404 from the CMS.
func (e *FetchError) NotFound() bool {
	return e.Class == ClassStatus && e.Status == http.StatusNotFound
}

// Action is what the policy does with a failure of a given class.
type Action int

const (
	// Propagate returns the failure to the caller.
	Propagate Action = iota
	// SubstituteDefault replaces the response with the {data: null} sentinel.
	SubstituteDefault
	// ServeStale replaces the response with the last good snapshot, or the
	// sentinel when there is none.
	ServeStale
)

func (a Action) String() string {
	switch a {
	case SubstituteDefault:
		return "substitute"
	case ServeStale:
		return "stale"
	default:
		return "propagate"
	}
}

// Policy decides, per error class, whether a failure degrades or propagates.
// Classes missing from the map propagate.
type Policy map[ErrorClass]Action

// ProductionPolicy keeps pages rendering while the CMS is down or cold.
func ProductionPolicy() Policy {
	return Policy{
		ClassTransport: ServeStale,
		ClassTimeout:   ServeStale,
		ClassStatus:    ServeStale,
		ClassDecode:    ServeStale,
	}
}

// DevelopmentPolicy surfaces every failure.
func DevelopmentPolicy() Policy {
	return Policy{
		ClassTransport: Propagate,
		ClassTimeout:   Propagate,
		ClassStatus:    Propagate,
		ClassDecode:    Propagate,
	}
}

// For returns the action for a class.
func (p Policy) For(class ErrorClass) Action {
	if a, ok := p[class]; ok {
		return a
	}
	return Propagate
}

// Outcome records where a Result's value came from.
type Outcome int

const (
	Fresh Outcome = iota
	Cached
	Stale
	Substituted
	Failed
)

func (o Outcome) String() string {
	return [...]string{"fresh", "cached", "stale", "substituted", "failed"}[o]
}

// Result is a fetch outcome. Err is set whenever the request failed, even if
// the policy replaced the value; Get only returns it when the failure was
// propagated.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     *FetchError
}

// Get returns the value, or the error when the policy propagated a failure.
func (r Result[T]) Get() (T, error) {
	if r.Outcome == Failed {
		return r.Value, r.Err
	}
	return r.Value, nil
}

// Degraded reports whether the value is a stand-in for a failed request.
func (r Result[T]) Degraded() bool {
	return r.Outcome == Stale || r.Outcome == Substituted
}
