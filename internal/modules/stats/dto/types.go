package dto

import "time"

type StudentTotalOutput struct {
	StudentName    string
	Level          int
	TotalSeconds   int
	SessionCount   int
	AverageSeconds float64
}

// LeaderboardQuery narrows and orders the derived totals. SortKey is one
// of "name", "level", "total", "average", "count"; an unknown key falls
// back to "total". Limit <= 0 means no limit.
type LeaderboardQuery struct {
	Search     string
	SortKey    string
	Descending bool
	Limit      int
}

type LeaderboardOutput struct {
	Totals        []StudentTotalOutput
	TotalSessions int
}

type BucketOutput struct {
	Label string
	Value float64
	Color string
}

type PieSliceOutput struct {
	Label      string
	Value      float64
	Color      string
	StartAngle float64
	EndAngle   float64
	Percent    float64
	Path       string
}

type PieOutput struct {
	ViewboxWidth  float64
	ViewboxHeight float64
	CenterX       float64
	CenterY       float64
	Radius        float64
	Total         float64
	Slices        []PieSliceOutput
}

type BarChartOutput struct {
	ViewboxWidth  float64
	ViewboxHeight float64
	AxisMax       int
	Ticks         []AxisTickOutput
	Bars          []BarItemOutput
}

type AxisTickOutput struct {
	Value float64
	Label string
	Y     float64
}

type BarItemOutput struct {
	Label  string
	Value  int
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  string
}

// LogQuery filters the completed session log. Zero Level matches any
// level; zero From/To leave the range open on that side.
type LogQuery struct {
	Name  string
	Level int
	From  time.Time
	To    time.Time
}

type LogEntryOutput struct {
	SessionID   string
	StudentName string
	Level       int
	TimeIn      time.Time
	TimeOut     time.Time
	Seconds     int
	Notes       string
}

type LogOutput struct {
	Entries      []LogEntryOutput
	TotalSeconds int
}

type ActiveQuery struct {
	Search     string
	SortKey    string // "name" or "timein"
	Descending bool
}

type ActiveEntryOutput struct {
	SessionID   string
	StudentName string
	Level       int
	TimeIn      time.Time
}
