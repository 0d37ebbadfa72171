package domain

import "time"

// Status is a campaign lifecycle label. UPCOMING, ACTIVE and ENDED are
// derived from the campaign time window; CANCELLED is an explicit
// administrator action and is absorbing.
type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusActive    Status = "ACTIVE"
	StatusEnded     Status = "ENDED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is one of the four canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusEnded, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusCancelled
}

// Resolve derives the time-accurate status of c at the given instant.
// It never mutates anything; persisting the result is the caller's
// decision. A persisted CANCELLED always resolves to CANCELLED
// regardless of the time window.
func Resolve(c Campaign, now time.Time) Status {
	if c.Status == StatusCancelled {
		return StatusCancelled
	}
	switch {
	case now.Before(c.StartTime):
		return StatusUpcoming
	case now.After(c.EndTime):
		return StatusEnded
	default:
		return StatusActive
	}
}
