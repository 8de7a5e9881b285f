package domain

import (
	"fmt"
	"math"

	apperrors "libtrack/internal/platform/errors"
)

// Pie layout constants. The viewbox grows vertically when the legend
// outgrows the minimum pie area.
const (
	pieViewboxWidth    = 420.0
	pieMinHeight       = 220.0
	pieCenterX         = 100.0
	pieRadius          = 80.0
	legendYStart       = 40.0
	legendItemHeight   = 20.0
	legendBottomMargin = 50.0
)

type Slice struct {
	Label      string
	Value      float64
	Color      string
	StartAngle float64
	EndAngle   float64
	Percent    float64
	Path       string
}

type PieLayout struct {
	ViewboxWidth  float64
	ViewboxHeight float64
	CenterX       float64
	CenterY       float64
	Radius        float64
	Total         float64
	Slices        []Slice
}

// LayoutPie turns buckets into arc slices starting at 12 o'clock and
// proceeding clockwise. Each slice spans value/total of the circle.
func LayoutPie(buckets []Bucket) (PieLayout, error) {
	total := 0.0
	for _, b := range buckets {
		total += b.Value
	}
	if total == 0 {
		return PieLayout{}, apperrors.ErrNoChartData
	}

	legendHeight := legendYStart + float64(len(buckets))*legendItemHeight + legendBottomMargin
	layout := PieLayout{
		ViewboxWidth:  pieViewboxWidth,
		ViewboxHeight: math.Max(pieMinHeight, legendHeight),
		CenterX:       pieCenterX,
		Radius:        pieRadius,
		Total:         total,
	}
	layout.CenterY = layout.ViewboxHeight / 2

	startAngle := 0.0
	for _, b := range buckets {
		angle := b.Value / total * 360
		endAngle := startAngle + angle
		layout.Slices = append(layout.Slices, Slice{
			Label:      b.Label,
			Value:      b.Value,
			Color:      b.Color,
			StartAngle: startAngle,
			EndAngle:   endAngle,
			Percent:    b.Value / total * 100,
			Path:       describeArc(layout.CenterX, layout.CenterY, layout.Radius, startAngle, endAngle),
		})
		startAngle = endAngle
	}
	return layout, nil
}

// describeArc builds the closed wedge path between two angles. A span of
// the full circle would collapse to a zero-length arc, so it is
// re-described with the end angle pulled back by a hundredth of a
// degree.
func describeArc(cx, cy, radius, startAngle, endAngle float64) string {
	if math.Abs(endAngle-startAngle) >= 360 {
		endAngle -= 0.01
	}
	startX, startY := polarToCartesian(cx, cy, radius, endAngle)
	endX, endY := polarToCartesian(cx, cy, radius, startAngle)
	largeArc := "0"
	if endAngle-startAngle > 180 {
		largeArc = "1"
	}
	return fmt.Sprintf("M %g %g A %g %g 0 %s 0 %g %g L %g %g Z",
		startX, startY, radius, radius, largeArc, endX, endY, cx, cy)
}

// polarToCartesian places zero degrees at 12 o'clock, increasing
// clockwise.
func polarToCartesian(cx, cy, radius, angleDegrees float64) (float64, float64) {
	rad := (angleDegrees - 90) * math.Pi / 180
	return cx + radius*math.Cos(rad), cy + radius*math.Sin(rad)
}
