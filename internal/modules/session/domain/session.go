package domain

import (
	"time"

	"libtrack/internal/platform/duration"
)

// ActiveSession is a visit in progress: a student signed in with no
// sign-out time yet.
type ActiveSession struct {
	ID          string    `json:"id"`
	StudentName string    `json:"studentName"`
	Level       int       `json:"level"`
	TimeIn      time.Time `json:"timeIn"`
}

// CompletedSession is a closed visit. Duration caches the whole-second
// decomposition of TimeOut - TimeIn.
type CompletedSession struct {
	ID          string            `json:"id"`
	StudentName string            `json:"studentName"`
	Level       int               `json:"level"`
	TimeIn      time.Time         `json:"timeIn"`
	TimeOut     time.Time         `json:"timeOut"`
	Duration    duration.Duration `json:"duration"`
	Notes       string            `json:"notes,omitempty"`
}

// Derive computes the cached duration for a time-in/time-out pair.
// Fractional seconds truncate; a negative span clamps to zero.
func Derive(timeIn, timeOut time.Time) duration.Duration {
	return duration.Decompose(int(timeOut.Sub(timeIn).Seconds()))
}
