package domain

import (
	"fmt"
	"sort"

	sessiondomain "libtrack/internal/modules/session/domain"
)

// StudentTotal is the per-student, per-level summary derived from the
// completed collection. Recomputed fully on every read; never stored.
type StudentTotal struct {
	StudentName    string
	Level          int
	TotalSeconds   int
	SessionCount   int
	AverageSeconds float64
}

// NameTotal sums a student's time across every level they attended under.
type NameTotal struct {
	StudentName  string
	TotalSeconds int
}

// Bucket is one labeled region of a pie chart. Value carries seconds for
// per-student buckets and an entry count for per-level buckets.
type Bucket struct {
	Label string
	Value float64
	Color string
}

// levelColors is keyed by the known level tiers; anything else falls
// back to the neutral gray.
var levelColors = map[int]string{
	100: "#6366F1",
	200: "#14B8A6",
	300: "#F43F5E",
	400: "#F59E0B",
}

const defaultLevelColor = "#6B7280"

// studentPalette is cycled by bucket index for the per-student pie; the
// final gray entry lines up with the "Other Students" catch-all when the
// chart is full.
var studentPalette = []string{
	"#6366F1", "#14B8A6", "#F43F5E", "#F59E0B", "#8B5CF6",
	"#3B82F6", "#EC4899", "#10B981", "#F97316", "#6B7280",
}

// OtherStudentsLabel names the synthetic bucket merging everyone beyond
// the top-N cut.
const OtherStudentsLabel = "Other Students"

type totalKey struct {
	name  string
	level int
}

// TotalsByStudent groups completed sessions by the exact-case name and
// level pair. The grouping is deliberately case-sensitive even though
// duplicate-active detection is not: "Bob" and "bob" are one person at
// the door but two rows on the leaderboard. Result order is first-seen.
func TotalsByStudent(sessions []sessiondomain.CompletedSession) []StudentTotal {
	byKey := make(map[totalKey]*StudentTotal)
	var order []totalKey
	for _, s := range sessions {
		key := totalKey{name: s.StudentName, level: s.Level}
		total, ok := byKey[key]
		if !ok {
			total = &StudentTotal{StudentName: s.StudentName, Level: s.Level}
			byKey[key] = total
			order = append(order, key)
		}
		total.TotalSeconds += s.Duration.TotalSeconds()
		total.SessionCount++
	}

	totals := make([]StudentTotal, 0, len(order))
	for _, key := range order {
		total := *byKey[key]
		if total.SessionCount > 0 {
			total.AverageSeconds = float64(total.TotalSeconds) / float64(total.SessionCount)
		}
		totals = append(totals, total)
	}
	return totals
}

// TotalsByName sums each student's time across all levels, descending by
// total time.
func TotalsByName(sessions []sessiondomain.CompletedSession) []NameTotal {
	byName := make(map[string]int)
	var order []string
	for _, s := range sessions {
		if _, ok := byName[s.StudentName]; !ok {
			order = append(order, s.StudentName)
		}
		byName[s.StudentName] += s.Duration.TotalSeconds()
	}

	totals := make([]NameTotal, 0, len(order))
	for _, name := range order {
		totals = append(totals, NameTotal{StudentName: name, TotalSeconds: byName[name]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalSeconds > totals[j].TotalSeconds
	})
	return totals
}

// BucketsByLevel counts leaderboard entries per level, ascending by
// level. The value is an entry count, not time.
func BucketsByLevel(totals []StudentTotal) []Bucket {
	counts := make(map[int]int)
	for _, t := range totals {
		counts[t.Level]++
	}
	levels := make([]int, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	buckets := make([]Bucket, 0, len(levels))
	for _, level := range levels {
		color, ok := levelColors[level]
		if !ok {
			color = defaultLevelColor
		}
		buckets = append(buckets, Bucket{
			Label: fmt.Sprintf("Level %d", level),
			Value: float64(counts[level]),
			Color: color,
		})
	}
	return buckets
}

// BucketsByStudent keeps the topN largest totals distinct and merges the
// rest into a single catch-all bucket. Colors cycle through the fixed
// palette by index.
func BucketsByStudent(totals []NameTotal, topN int) []Bucket {
	if len(totals) == 0 {
		return nil
	}
	top := totals
	if topN < len(totals) {
		top = totals[:topN]
	}

	buckets := make([]Bucket, 0, len(top)+1)
	for _, t := range top {
		buckets = append(buckets, Bucket{Label: t.StudentName, Value: float64(t.TotalSeconds)})
	}
	if topN < len(totals) {
		other := 0
		for _, t := range totals[topN:] {
			other += t.TotalSeconds
		}
		buckets = append(buckets, Bucket{Label: OtherStudentsLabel, Value: float64(other)})
	}
	for i := range buckets {
		buckets[i].Color = studentPalette[i%len(studentPalette)]
	}
	return buckets
}
