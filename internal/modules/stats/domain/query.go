package domain

import (
	"sort"
	"strings"
	"time"

	sessiondomain "libtrack/internal/modules/session/domain"
)

type SortKey int

const (
	SortByName SortKey = iota
	SortByLevel
	SortByTotal
	SortByAverage
	SortByCount
)

type ActiveSortKey int

const (
	ActiveByTimeIn ActiveSortKey = iota
	ActiveByName
)

// FilterTotals keeps entries whose name contains the query,
// case-insensitively. An empty query keeps everything.
func FilterTotals(totals []StudentTotal, query string) []StudentTotal {
	if query == "" {
		return append([]StudentTotal(nil), totals...)
	}
	needle := strings.ToLower(query)
	filtered := make([]StudentTotal, 0, len(totals))
	for _, t := range totals {
		if strings.Contains(strings.ToLower(t.StudentName), needle) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// SortTotals orders a copy of the totals by the given key. Ties on any
// key break by case-insensitive name ascending regardless of direction,
// so repeated queries over the same data always agree.
func SortTotals(totals []StudentTotal, key SortKey, descending bool) []StudentTotal {
	sorted := append([]StudentTotal(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if c := compareTotals(a, b, key); c != 0 {
			if descending {
				return c > 0
			}
			return c < 0
		}
		return strings.ToLower(a.StudentName) < strings.ToLower(b.StudentName)
	})
	return sorted
}

func compareTotals(a, b StudentTotal, key SortKey) int {
	switch key {
	case SortByName:
		return strings.Compare(strings.ToLower(a.StudentName), strings.ToLower(b.StudentName))
	case SortByLevel:
		return a.Level - b.Level
	case SortByAverage:
		switch {
		case a.AverageSeconds < b.AverageSeconds:
			return -1
		case a.AverageSeconds > b.AverageSeconds:
			return 1
		}
		return 0
	case SortByCount:
		return a.SessionCount - b.SessionCount
	default:
		return a.TotalSeconds - b.TotalSeconds
	}
}

// LogFilter selects completed sessions. Level zero means any level; zero
// From/To leave that side of the range open. From and To are normalized
// to the start and end of their day before comparison, so a range of one
// calendar day matches everything signed in that day.
type LogFilter struct {
	Name  string
	Level int
	From  time.Time
	To    time.Time
}

func FilterSessions(sessions []sessiondomain.CompletedSession, filter LogFilter) []sessiondomain.CompletedSession {
	needle := strings.ToLower(filter.Name)
	var from, to time.Time
	if !filter.From.IsZero() {
		from = dayStart(filter.From)
	}
	if !filter.To.IsZero() {
		to = dayStart(filter.To).Add(24*time.Hour - time.Nanosecond)
	}

	filtered := make([]sessiondomain.CompletedSession, 0, len(sessions))
	for _, s := range sessions {
		if needle != "" && !strings.Contains(strings.ToLower(s.StudentName), needle) {
			continue
		}
		if filter.Level != 0 && s.Level != filter.Level {
			continue
		}
		if !from.IsZero() && s.TimeIn.Before(from) {
			continue
		}
		if !to.IsZero() && s.TimeIn.After(to) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SortActive orders a copy of the active sessions. Name ties break by
// time-in ascending (earliest first) and time-in ties break by
// case-insensitive name ascending; both tie-breaks ignore the requested
// direction.
func SortActive(sessions []sessiondomain.ActiveSession, key ActiveSortKey, descending bool) []sessiondomain.ActiveSession {
	sorted := append([]sessiondomain.ActiveSession(nil), sessions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch key {
		case ActiveByName:
			c := strings.Compare(strings.ToLower(a.StudentName), strings.ToLower(b.StudentName))
			if c != 0 {
				if descending {
					return c > 0
				}
				return c < 0
			}
			return a.TimeIn.Before(b.TimeIn)
		default:
			if !a.TimeIn.Equal(b.TimeIn) {
				if descending {
					return a.TimeIn.After(b.TimeIn)
				}
				return a.TimeIn.Before(b.TimeIn)
			}
			return strings.ToLower(a.StudentName) < strings.ToLower(b.StudentName)
		}
	})
	return sorted
}

// TotalSessionSeconds sums the durations of the given sessions.
func TotalSessionSeconds(sessions []sessiondomain.CompletedSession) int {
	total := 0
	for _, s := range sessions {
		total += s.Duration.TotalSeconds()
	}
	return total
}
