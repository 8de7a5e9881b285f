package apperrors

import "errors"

var (
	ErrEmptyName            = errors.New("student name is empty")
	ErrStudentAlreadyActive = errors.New("student is already signed in")
	ErrInvalidTimeRange     = errors.New("time in must be earlier than time out")
	ErrNotFound             = errors.New("not found")
	ErrNoChartData          = errors.New("not enough data to display chart")
	ErrNoExportData         = errors.New("no data to export")
	ErrAssistantUnavailable = errors.New("assistant service is unavailable")
)
