package domain

import (
	"math"

	"libtrack/internal/platform/duration"
)

// Bar chart layout constants. The viewbox widens past 800 when there are
// more bars than fit a 60-unit slot each; the bottom margin leaves room
// for rotated name labels.
const (
	barViewboxHeight = 400.0
	barMinWidth      = 800.0
	barSlotMinWidth  = 60.0
	barMarginTop     = 20.0
	barMarginRight   = 20.0
	barMarginBottom  = 120.0
	barMarginLeft    = 60.0
	barFillRatio     = 0.8
	barTickCount     = 4
)

// barPalette is cycled by bar index.
var barPalette = []string{
	"#6366f1", "#14b8a6", "#f43f5e", "#0ea5e9", "#f59e0b",
	"#84cc16", "#8b5cf6", "#06b6d4", "#d946ef",
}

type BarDatum struct {
	Label   string
	Seconds int
}

type Bar struct {
	Label  string
	Value  int
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  string
}

type AxisTick struct {
	Value float64
	Label string
	Y     float64
}

type BarLayout struct {
	ViewboxWidth  float64
	ViewboxHeight float64
	InnerWidth    float64
	InnerHeight   float64
	AxisMax       int
	// Ticks run top-down: the axis maximum first, zero last.
	Ticks []AxisTick
	Bars  []Bar
}

// LayoutBars positions one vertical bar per datum. The axis maximum is
// the hour ceiling of the largest value, relaxed to a minute ceiling
// below fifteen minutes so short sessions do not flatten against a
// one-hour scale, with a one-minute floor. Empty input yields the
// default one-hour axis and no bars.
func LayoutBars(data []BarDatum) BarLayout {
	layout := BarLayout{
		ViewboxHeight: barViewboxHeight,
		ViewboxWidth:  math.Max(barMinWidth, float64(len(data))*barSlotMinWidth),
		AxisMax:       3600,
	}
	layout.InnerWidth = layout.ViewboxWidth - barMarginLeft - barMarginRight
	layout.InnerHeight = layout.ViewboxHeight - barMarginTop - barMarginBottom
	if len(data) == 0 {
		return layout
	}

	maxVal := 0
	for _, d := range data {
		if d.Seconds > maxVal {
			maxVal = d.Seconds
		}
	}
	layout.AxisMax = axisMax(maxVal)

	for i := barTickCount; i >= 0; i-- {
		value := float64(layout.AxisMax) / barTickCount * float64(i)
		layout.Ticks = append(layout.Ticks, AxisTick{
			Value: value,
			Label: duration.Format(int(value)),
			Y:     barMarginTop + layout.InnerHeight - value/float64(layout.AxisMax)*layout.InnerHeight,
		})
	}

	slot := layout.InnerWidth / float64(len(data))
	for i, d := range data {
		height := float64(d.Seconds) / float64(layout.AxisMax) * layout.InnerHeight
		layout.Bars = append(layout.Bars, Bar{
			Label:  d.Label,
			Value:  d.Seconds,
			X:      barMarginLeft + slot*float64(i) + slot*(1-barFillRatio)/2,
			Width:  slot * barFillRatio,
			Height: height,
			Y:      barMarginTop + layout.InnerHeight - height,
			Color:  barPalette[i%len(barPalette)],
		})
	}
	return layout
}

func axisMax(maxVal int) int {
	axis := int(math.Ceil(float64(maxVal)/3600)) * 3600
	if maxVal > 0 && axis == 0 {
		axis = 3600
	}
	if maxVal < 900 {
		axis = int(math.Ceil(float64(maxVal)/60)) * 60
	}
	if axis == 0 {
		axis = 60
	}
	return axis
}
