package service

import (
	"strings"

	sessiondomain "libtrack/internal/modules/session/domain"
	"libtrack/internal/modules/stats/domain"
)

// topStudents caps the per-student pie before the catch-all bucket.
const topStudents = 9

// StatsService derives analytics from session snapshots. It holds no
// state; every result is recomputed from the input on each call.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

// Leaderboard filters, sorts, and truncates the per-student totals.
// Limit <= 0 keeps everything.
func (s *StatsService) Leaderboard(sessions []sessiondomain.CompletedSession, search string, key domain.SortKey, descending bool, limit int) []domain.StudentTotal {
	totals := domain.FilterTotals(domain.TotalsByStudent(sessions), search)
	totals = domain.SortTotals(totals, key, descending)
	if limit > 0 && limit < len(totals) {
		totals = totals[:limit]
	}
	return totals
}

func (s *StatsService) LevelBuckets(sessions []sessiondomain.CompletedSession) []domain.Bucket {
	return domain.BucketsByLevel(domain.TotalsByStudent(sessions))
}

func (s *StatsService) StudentBuckets(sessions []sessiondomain.CompletedSession) []domain.Bucket {
	return domain.BucketsByStudent(domain.TotalsByName(sessions), topStudents)
}

func (s *StatsService) PieByLevel(sessions []sessiondomain.CompletedSession) (domain.PieLayout, error) {
	return domain.LayoutPie(s.LevelBuckets(sessions))
}

func (s *StatsService) PieByStudent(sessions []sessiondomain.CompletedSession) (domain.PieLayout, error) {
	return domain.LayoutPie(s.StudentBuckets(sessions))
}

// BarChart lays out the leaderboard selection as vertical bars.
func (s *StatsService) BarChart(sessions []sessiondomain.CompletedSession, search string, key domain.SortKey, descending bool, limit int) domain.BarLayout {
	totals := s.Leaderboard(sessions, search, key, descending, limit)
	data := make([]domain.BarDatum, 0, len(totals))
	for _, t := range totals {
		data = append(data, domain.BarDatum{Label: t.StudentName, Seconds: t.TotalSeconds})
	}
	return domain.LayoutBars(data)
}

// Log filters the completed log and sums the surviving durations. Row
// order is the store's order; filtering never reorders.
func (s *StatsService) Log(sessions []sessiondomain.CompletedSession, filter domain.LogFilter) ([]sessiondomain.CompletedSession, int) {
	filtered := domain.FilterSessions(sessions, filter)
	return filtered, domain.TotalSessionSeconds(filtered)
}

// ActiveSorted narrows the active sessions by name substring and orders
// them.
func (s *StatsService) ActiveSorted(sessions []sessiondomain.ActiveSession, search string, key domain.ActiveSortKey, descending bool) []sessiondomain.ActiveSession {
	if search != "" {
		needle := strings.ToLower(search)
		narrowed := make([]sessiondomain.ActiveSession, 0, len(sessions))
		for _, a := range sessions {
			if strings.Contains(strings.ToLower(a.StudentName), needle) {
				narrowed = append(narrowed, a)
			}
		}
		sessions = narrowed
	}
	return domain.SortActive(sessions, key, descending)
}
