package domain_test

import (
	"math"
	"testing"

	"libtrack/internal/modules/stats/domain"
)

func TestAxisMaxRoundsToHourCeiling(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		seconds int
		want    int
	}{
		{"ninety minutes rounds to two hours", 5400, 7200},
		{"exactly one hour stays", 3600, 3600},
		{"under fifteen minutes rounds to minute", 890, 900},
		{"ninety seconds rounds to two minutes", 90, 120},
		{"zero floors at one minute", 0, 60},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			layout := domain.LayoutBars([]domain.BarDatum{{Label: "x", Seconds: tc.seconds}})
			if layout.AxisMax != tc.want {
				t.Fatalf("axis max = %d, want %d", layout.AxisMax, tc.want)
			}
		})
	}
}

func TestAxisNeverReadsZeroForNonZeroData(t *testing.T) {
	t.Parallel()
	layout := domain.LayoutBars([]domain.BarDatum{{Label: "x", Seconds: 1}})
	if layout.AxisMax <= 0 {
		t.Fatalf("axis max = %d", layout.AxisMax)
	}
	if layout.Bars[0].Height <= 0 {
		t.Fatalf("non-zero value rendered a flat bar")
	}
}

func TestLayoutBarsTicksTopDown(t *testing.T) {
	t.Parallel()
	layout := domain.LayoutBars([]domain.BarDatum{{Label: "x", Seconds: 7200}})
	if len(layout.Ticks) != 5 {
		t.Fatalf("got %d ticks, want 5", len(layout.Ticks))
	}
	if layout.Ticks[0].Value != 7200 || layout.Ticks[4].Value != 0 {
		t.Fatalf("ticks = %+v", layout.Ticks)
	}
	if layout.Ticks[0].Label != "2h 0m" || layout.Ticks[1].Label != "1h 30m" {
		t.Fatalf("tick labels = %q, %q", layout.Ticks[0].Label, layout.Ticks[1].Label)
	}
	// Top tick sits at the top margin, zero tick at the baseline.
	if layout.Ticks[0].Y != 20 || layout.Ticks[4].Y != 280 {
		t.Fatalf("tick positions = %v, %v", layout.Ticks[0].Y, layout.Ticks[4].Y)
	}
}

func TestLayoutBarsGeometry(t *testing.T) {
	t.Parallel()
	layout := domain.LayoutBars([]domain.BarDatum{
		{Label: "full", Seconds: 3600},
		{Label: "half", Seconds: 1800},
	})
	if layout.ViewboxWidth != 800 || layout.ViewboxHeight != 400 {
		t.Fatalf("viewbox = %vx%v", layout.ViewboxWidth, layout.ViewboxHeight)
	}
	slot := layout.InnerWidth / 2
	full, half := layout.Bars[0], layout.Bars[1]
	if math.Abs(full.Width-slot*0.8) > 1e-9 {
		t.Fatalf("bar width = %v, want 80%% of the slot", full.Width)
	}
	if math.Abs(full.X-(60+slot*0.1)) > 1e-9 {
		t.Fatalf("first bar x = %v", full.X)
	}
	if full.Height != layout.InnerHeight {
		t.Fatalf("axis-max bar must fill the inner height, got %v", full.Height)
	}
	if math.Abs(half.Height-layout.InnerHeight/2) > 1e-9 {
		t.Fatalf("half-value bar height = %v", half.Height)
	}
	if full.Color != "#6366f1" || half.Color != "#14b8a6" {
		t.Fatalf("bar colors = %s, %s", full.Color, half.Color)
	}
}

func TestLayoutBarsWidensForManyBars(t *testing.T) {
	t.Parallel()
	var data []domain.BarDatum
	for i := 0; i < 20; i++ {
		data = append(data, domain.BarDatum{Label: "x", Seconds: 60})
	}
	layout := domain.LayoutBars(data)
	if layout.ViewboxWidth != 1200 {
		t.Fatalf("viewbox width = %v, want 20 bars x 60", layout.ViewboxWidth)
	}
}

func TestLayoutBarsEmptyInputDefaults(t *testing.T) {
	t.Parallel()
	layout := domain.LayoutBars(nil)
	if layout.AxisMax != 3600 || len(layout.Ticks) != 0 || len(layout.Bars) != 0 {
		t.Fatalf("empty layout = %+v", layout)
	}
}
