package dto

import "time"

type TimeInInput struct {
	StudentName string
	Level       int
}

type TimeInOutput struct {
	SessionID   string
	StudentName string
	Level       int
	TimeIn      time.Time
}

type TimeOutOutput struct {
	// Completed is false when the id did not match an active session and
	// the call was a no-op.
	Completed bool
	SessionID string
}

// CompletedInput carries the fields of a manual backfill entry or an edit.
type CompletedInput struct {
	StudentName string
	Level       int
	TimeIn      time.Time
	TimeOut     time.Time
	Notes       string
}

type ActiveSessionOutput struct {
	SessionID   string
	StudentName string
	Level       int
	TimeIn      time.Time
}

type CompletedSessionOutput struct {
	SessionID   string
	StudentName string
	Level       int
	TimeIn      time.Time
	TimeOut     time.Time
	Seconds     int
	Notes       string
}
