package duration

import (
	"fmt"
	"strings"
)

// Duration is a whole-second visit length decomposed for display.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Decompose splits a second count into hours, minutes, and seconds.
// Negative input clamps to zero.
func Decompose(totalSeconds int) Duration {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return Duration{
		Hours:   totalSeconds / 3600,
		Minutes: (totalSeconds % 3600) / 60,
		Seconds: totalSeconds % 60,
	}
}

// TotalSeconds is the inverse of Decompose.
func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Format renders a second count the way the tracker displays it:
// hours appear only when non-zero, minutes whenever hours or minutes are
// non-zero, and seconds only when both are zero. A 45-minute visit is
// "45m", a 90-minute one "1h 30m", a 10-second one "10s".
func Format(totalSeconds int) string {
	d := Decompose(totalSeconds)
	var sb strings.Builder
	if d.Hours > 0 {
		fmt.Fprintf(&sb, "%dh ", d.Hours)
	}
	if d.Hours > 0 || d.Minutes > 0 {
		fmt.Fprintf(&sb, "%dm ", d.Minutes)
	}
	if d.Hours == 0 && d.Minutes == 0 {
		fmt.Fprintf(&sb, "%ds", d.Seconds)
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "0s"
	}
	return out
}

// FormatClock renders a second count as zero-padded HH:MM:SS.
func FormatClock(totalSeconds int) string {
	d := Decompose(totalSeconds)
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}
