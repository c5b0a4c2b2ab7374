package model

import (
	"fmt"
	"time"
)

// Status classifies the outcome of a single poll.
type Status int

const (
	StatusOK          Status = iota // Source answered with a usable payload
	StatusDegraded                  // Source reachable but rejected the request or answered badly
	StatusUnavailable               // Transport failure, timeout or missing client
)

// String returns a human-readable name for the Status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText lets Status appear as its name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a Status name.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusOK, StatusDegraded, StatusUnavailable} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Result is the outcome of one poll of one source.
// Value is the full payload for StatusOK, a partial payload for
// StatusDegraded and the zero value for StatusUnavailable.
type Result[T any] struct {
	Status Status
	Value  T
	Reason string
	At     time.Time
}

// OK returns a successful result.
func OK[T any](v T) Result[T] {
	return Result[T]{Status: StatusOK, Value: v, At: time.Now()}
}

// Degraded returns a result for a reachable source that answered badly.
func Degraded[T any](reason string, partial T) Result[T] {
	return Result[T]{Status: StatusDegraded, Value: partial, Reason: reason, At: time.Now()}
}

// Unavailable returns a result for a source that could not be reached.
func Unavailable[T any](reason string) Result[T] {
	var zero T
	return Result[T]{Status: StatusUnavailable, Value: zero, Reason: reason, At: time.Now()}
}

// IsOK reports whether the poll succeeded.
func (r Result[T]) IsOK() bool {
	return r.Status == StatusOK
}

// Report erases the payload type so results from different sources can
// share one map.
func (r Result[T]) Report(id SourceID) Report {
	rep := Report{
		Source: id,
		Status: r.Status,
		Reason: r.Reason,
		At:     r.At,
	}
	if r.Status != StatusUnavailable {
		rep.Payload = r.Value
	}
	return rep
}

// Report is a type-erased Result tagged with its source.
type Report struct {
	Source  SourceID  `json:"source"`
	Status  Status    `json:"status"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// Stale reports whether the result is older than maxAge at now.
func (r Report) Stale(now time.Time, maxAge time.Duration) bool {
	return r.At.IsZero() || now.Sub(r.At) > maxAge
}
