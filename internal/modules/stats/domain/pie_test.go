package domain_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"libtrack/internal/modules/stats/domain"
	apperrors "libtrack/internal/platform/errors"
)

func TestLayoutPieSliceAnglesSumToFullCircle(t *testing.T) {
	t.Parallel()
	buckets := []domain.Bucket{
		{Label: "a", Value: 1},
		{Label: "b", Value: 1},
		{Label: "c", Value: 2},
	}
	layout, err := domain.LayoutPie(buckets)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	spans := []float64{90, 90, 180}
	for i, slice := range layout.Slices {
		if got := slice.EndAngle - slice.StartAngle; math.Abs(got-spans[i]) > 1e-9 {
			t.Fatalf("slice %d spans %v degrees, want %v", i, got, spans[i])
		}
	}
	last := layout.Slices[len(layout.Slices)-1]
	if math.Abs(last.EndAngle-360) > 1e-9 {
		t.Fatalf("slices end at %v degrees, want 360", last.EndAngle)
	}
	if layout.Slices[1].StartAngle != layout.Slices[0].EndAngle {
		t.Fatalf("slices must be contiguous")
	}
}

func TestLayoutPieSingleBucketAvoidsDegeneratePath(t *testing.T) {
	t.Parallel()
	layout, err := domain.LayoutPie([]domain.Bucket{{Label: "only", Value: 5}})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	slice := layout.Slices[0]
	if slice.EndAngle != 360 {
		t.Fatalf("reported end angle = %v, want 360", slice.EndAngle)
	}
	// The arc start and end points must not coincide, or the wedge
	// collapses to a line.
	fields := strings.Fields(slice.Path)
	if fields[0] != "M" || fields[len(fields)-1] != "Z" {
		t.Fatalf("unexpected path shape: %s", slice.Path)
	}
	if fields[1] == fields[9] && fields[2] == fields[10] {
		t.Fatalf("full-circle slice produced a zero-length arc: %s", slice.Path)
	}
	if !strings.Contains(slice.Path, " A 80 80 0 1 0 ") {
		t.Fatalf("near-full slice must use the large-arc flag: %s", slice.Path)
	}
}

func TestLayoutPieZeroTotalReportsNoChartData(t *testing.T) {
	t.Parallel()
	_, err := domain.LayoutPie([]domain.Bucket{{Label: "empty", Value: 0}})
	if !errors.Is(err, apperrors.ErrNoChartData) {
		t.Fatalf("got %v, want ErrNoChartData", err)
	}
	if _, err := domain.LayoutPie(nil); !errors.Is(err, apperrors.ErrNoChartData) {
		t.Fatalf("no buckets: got %v, want ErrNoChartData", err)
	}
}

func TestLayoutPieViewboxGrowsWithLegend(t *testing.T) {
	t.Parallel()
	small, _ := domain.LayoutPie([]domain.Bucket{{Label: "a", Value: 1}})
	if small.ViewboxHeight != 220 {
		t.Fatalf("small legend height = %v, want the 220 minimum", small.ViewboxHeight)
	}
	if small.CenterY != 110 || small.CenterX != 100 || small.Radius != 80 {
		t.Fatalf("pie placement = (%v, %v) r=%v", small.CenterX, small.CenterY, small.Radius)
	}

	var many []domain.Bucket
	for i := 0; i < 10; i++ {
		many = append(many, domain.Bucket{Label: "x", Value: 1})
	}
	big, _ := domain.LayoutPie(many)
	// 40 legend start + 10 rows of 20 + 50 bottom padding.
	if big.ViewboxHeight != 290 {
		t.Fatalf("large legend height = %v, want 290", big.ViewboxHeight)
	}
}
