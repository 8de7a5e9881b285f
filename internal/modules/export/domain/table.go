package domain

import (
	"strconv"
	"time"

	"libtrack/internal/platform/duration"
)

// Table is the renderer-neutral descriptor consumed by the PDF and PNG
// writers. Row order is exactly the caller's order; builders never
// re-filter or re-sort.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// timeLayout renders sign-in and sign-out stamps in exports.
const timeLayout = "2006-01-02 15:04:05"

type LogRow struct {
	StudentName string
	Level       int
	TimeIn      time.Time
	TimeOut     time.Time
	Seconds     int
	Notes       string
}

type LeaderboardRow struct {
	StudentName    string
	Level          int
	SessionCount   int
	AverageSeconds float64
	TotalSeconds   int
}

type ChartRow struct {
	Label string
	Value float64
	// Formatted is the display rendering of Value: a duration string for
	// time buckets, the bare number for count buckets.
	Formatted string
}

var logHeaders = []string{"Student Name", "Level", "Time In", "Time Out", "Duration (HH:MM:SS)", "Notes"}

var leaderboardHeaders = []string{"Student Name", "Level", "Session Count", "Average Session Time (HH:MM:SS)", "Total Time Spent (HH:MM:SS)"}

var chartHeaders = []string{"Label", "Value (Formatted)", "Value (Raw Seconds/Count)"}

// LogTable lays out the session log for document rendering. Empty notes
// render as N/A so the column is never blank.
func LogTable(rows []LogRow) Table {
	table := Table{Title: "Library Session Log", Headers: logHeaders}
	for _, r := range rows {
		notes := r.Notes
		if notes == "" {
			notes = "N/A"
		}
		table.Rows = append(table.Rows, []string{
			r.StudentName,
			strconv.Itoa(r.Level),
			r.TimeIn.Format(timeLayout),
			r.TimeOut.Format(timeLayout),
			duration.FormatClock(r.Seconds),
			notes,
		})
	}
	return table
}

// LogCSV renders the session log as CSV. The timestamp cells are always
// quoted; name and notes are escaped only when needed.
func LogCSV(rows []LogRow) string {
	csvRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		csvRows = append(csvRows, []string{
			EscapeField(r.StudentName),
			strconv.Itoa(r.Level),
			QuoteField(r.TimeIn.Format(timeLayout)),
			QuoteField(r.TimeOut.Format(timeLayout)),
			duration.FormatClock(r.Seconds),
			EscapeField(r.Notes),
		})
	}
	return JoinCSV(logHeaders, csvRows)
}

// LeaderboardTable lays out the per-student totals for document
// rendering.
func LeaderboardTable(rows []LeaderboardRow) Table {
	table := Table{Title: "Student Leaderboard", Headers: leaderboardHeaders}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.StudentName,
			strconv.Itoa(r.Level),
			strconv.Itoa(r.SessionCount),
			duration.FormatClock(int(r.AverageSeconds)),
			duration.FormatClock(r.TotalSeconds),
		})
	}
	return table
}

func LeaderboardCSV(rows []LeaderboardRow) string {
	csvRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		csvRows = append(csvRows, []string{
			EscapeField(r.StudentName),
			strconv.Itoa(r.Level),
			strconv.Itoa(r.SessionCount),
			duration.FormatClock(int(r.AverageSeconds)),
			duration.FormatClock(r.TotalSeconds),
		})
	}
	return JoinCSV(leaderboardHeaders, csvRows)
}

// ChartCSV renders chart buckets as CSV. Label and formatted value are
// always quoted; the raw value rides along unquoted for spreadsheets.
func ChartCSV(rows []ChartRow) string {
	csvRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		csvRows = append(csvRows, []string{
			QuoteField(r.Label),
			QuoteField(r.Formatted),
			formatValue(r.Value),
		})
	}
	return JoinCSV(chartHeaders, csvRows)
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
