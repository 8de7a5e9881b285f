package domain_test

import (
	"strings"
	"testing"
	"time"

	"libtrack/internal/modules/export/domain"
)

func TestEscapeFieldQuotesOnlyWhenNeeded(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"O'Brien, Jr.", `"O'Brien, Jr."`},
		{`said "hi"`, `"said ""hi"""`},
		{"line\nbreak", "\"line\nbreak\""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := domain.EscapeField(tc.in); got != tc.want {
			t.Errorf("EscapeField(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLogCSVQuotesTimestampsUnconditionally(t *testing.T) {
	t.Parallel()
	timeIn := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	csv := domain.LogCSV([]domain.LogRow{{
		StudentName: "Ama",
		Level:       200,
		TimeIn:      timeIn,
		TimeOut:     timeIn.Add(95 * time.Minute),
		Seconds:     5700,
		Notes:       "finished essay, left early",
	}})

	lines := strings.Split(csv, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	if lines[0] != "Student Name,Level,Time In,Time Out,Duration (HH:MM:SS),Notes" {
		t.Fatalf("header = %q", lines[0])
	}
	want := `Ama,200,"2026-08-14 09:00:00","2026-08-14 10:35:00",01:35:00,"finished essay, left early"`
	if lines[1] != want {
		t.Fatalf("row = %q, want %q", lines[1], want)
	}
}

func TestLeaderboardCSVRendersClockTimes(t *testing.T) {
	t.Parallel()
	csv := domain.LeaderboardCSV([]domain.LeaderboardRow{{
		StudentName:    "Kofi",
		Level:          300,
		SessionCount:   3,
		AverageSeconds: 3725.5,
		TotalSeconds:   11176,
	}})
	lines := strings.Split(csv, "\n")
	// The fractional average truncates toward zero.
	if lines[1] != "Kofi,300,3,01:02:05,03:06:16" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestChartCSVQuotesLabelAndFormatted(t *testing.T) {
	t.Parallel()
	csv := domain.ChartCSV([]domain.ChartRow{
		{Label: "Level 100", Value: 3, Formatted: "3"},
		{Label: "Other Students", Value: 5400, Formatted: "1h 30m"},
	})
	lines := strings.Split(csv, "\n")
	if lines[1] != `"Level 100","3",3` {
		t.Fatalf("count row = %q", lines[1])
	}
	if lines[2] != `"Other Students","1h 30m",5400` {
		t.Fatalf("time row = %q", lines[2])
	}
}

func TestLogTableFillsEmptyNotes(t *testing.T) {
	t.Parallel()
	table := domain.LogTable([]domain.LogRow{{StudentName: "Ama", Level: 100}})
	if table.Title != "Library Session Log" {
		t.Fatalf("title = %q", table.Title)
	}
	row := table.Rows[0]
	if row[len(row)-1] != "N/A" {
		t.Fatalf("empty notes cell = %q, want N/A", row[len(row)-1])
	}
}

func TestTablesPreserveRowOrder(t *testing.T) {
	t.Parallel()
	rows := []domain.LeaderboardRow{
		{StudentName: "Zulu"},
		{StudentName: "Alpha"},
	}
	table := domain.LeaderboardTable(rows)
	if table.Rows[0][0] != "Zulu" || table.Rows[1][0] != "Alpha" {
		t.Fatalf("builder must not reorder rows: %+v", table.Rows)
	}
}
