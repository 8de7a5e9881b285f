package usecase

import (
	"context"

	"libtrack/internal/modules/stats/domain"
	"libtrack/internal/modules/stats/dto"
	"libtrack/internal/modules/stats/port/out"
	"libtrack/internal/modules/stats/service"
)

type Interactor struct {
	service *service.StatsService
	source  out.SessionSource
}

func NewInteractor(svc *service.StatsService, source out.SessionSource) *Interactor {
	return &Interactor{service: svc, source: source}
}

func (i *Interactor) Leaderboard(ctx context.Context, query dto.LeaderboardQuery) (dto.LeaderboardOutput, error) {
	sessions, err := i.source.CompletedSessions(ctx)
	if err != nil {
		return dto.LeaderboardOutput{}, err
	}
	totals := i.service.Leaderboard(sessions, query.Search, sortKey(query.SortKey), query.Descending, query.Limit)

	// The badge counts every completed session, not just the rows that
	// survive the search and limit.
	output := dto.LeaderboardOutput{
		Totals:        make([]dto.StudentTotalOutput, 0, len(totals)),
		TotalSessions: len(sessions),
	}
	for _, t := range totals {
		output.Totals = append(output.Totals, dto.StudentTotalOutput{
			StudentName:    t.StudentName,
			Level:          t.Level,
			TotalSeconds:   t.TotalSeconds,
			SessionCount:   t.SessionCount,
			AverageSeconds: t.AverageSeconds,
		})
	}
	return output, nil
}

func (i *Interactor) LevelBuckets(ctx context.Context) ([]dto.BucketOutput, error) {
	sessions, err := i.source.CompletedSessions(ctx)
	if err != nil {
		return nil, err
	}
	return toBucketOutputs(i.service.LevelBuckets(sessions)), nil
}

func (i *Interactor) StudentBuckets(ctx context.Context) ([]dto.BucketOutput, error) {
	sessions, err := i.source.CompletedSessions(ctx)
	if err != nil {
		return nil, err
	}
	return toBucketOutputs(i.service.StudentBuckets(sessions)), nil
}

func (i *Interactor) PieByLevel(ctx context.Context) (dto.PieOutput, error) {
	sessions, err := i.source.CompletedSessions(ctx)
	if err != nil {
		return dto.PieOutput{}, err
	}
	layout, err := i.service.PieByLevel(sessions)
	if err != nil {
		return dto.PieOutput{}, err
	}
	return toPieOutput(layout), nil
}

func (i *Interactor) PieByStudent(ctx context.Context) (dto.PieOutput, error) {
	sessions, err := i.source.CompletedSessions(ctx)
	if err != nil {
		return dto.PieOutput{}, err
	}
	layout, err := i.service.PieByStudent(sessions)
	if err != nil {
		return dto.PieOutput{}, err
	}
	return toPieOutput(layout), nil
}

func (i *Interactor) BarChart(ctx context.Context, query dto.LeaderboardQuery) (dto.BarChartOutput, error) {
	sessions, err := i.source.CompletedSessions(ctx)
	if err != nil {
		return dto.BarChartOutput{}, err
	}
	layout := i.service.BarChart(sessions, query.Search, sortKey(query.SortKey), query.Descending, query.Limit)

	output := dto.BarChartOutput{
		ViewboxWidth:  layout.ViewboxWidth,
		ViewboxHeight: layout.ViewboxHeight,
		AxisMax:       layout.AxisMax,
	}
	for _, tick := range layout.Ticks {
		output.Ticks = append(output.Ticks, dto.AxisTickOutput{Value: tick.Value, Label: tick.Label, Y: tick.Y})
	}
	for _, bar := range layout.Bars {
		output.Bars = append(output.Bars, dto.BarItemOutput{
			Label: bar.Label, Value: bar.Value,
			X: bar.X, Y: bar.Y, Width: bar.Width, Height: bar.Height,
			Color: bar.Color,
		})
	}
	return output, nil
}

func (i *Interactor) Log(ctx context.Context, query dto.LogQuery) (dto.LogOutput, error) {
	sessions, err := i.source.CompletedSessions(ctx)
	if err != nil {
		return dto.LogOutput{}, err
	}
	filtered, totalSeconds := i.service.Log(sessions, domain.LogFilter{
		Name:  query.Name,
		Level: query.Level,
		From:  query.From,
		To:    query.To,
	})

	output := dto.LogOutput{TotalSeconds: totalSeconds}
	for _, s := range filtered {
		output.Entries = append(output.Entries, dto.LogEntryOutput{
			SessionID:   s.ID,
			StudentName: s.StudentName,
			Level:       s.Level,
			TimeIn:      s.TimeIn,
			TimeOut:     s.TimeOut,
			Seconds:     s.Duration.TotalSeconds(),
			Notes:       s.Notes,
		})
	}
	return output, nil
}

func (i *Interactor) ActiveSorted(ctx context.Context, query dto.ActiveQuery) ([]dto.ActiveEntryOutput, error) {
	sessions, err := i.source.ActiveSessions(ctx)
	if err != nil {
		return nil, err
	}
	sorted := i.service.ActiveSorted(sessions, query.Search, activeSortKey(query.SortKey), query.Descending)

	outputs := make([]dto.ActiveEntryOutput, 0, len(sorted))
	for _, s := range sorted {
		outputs = append(outputs, dto.ActiveEntryOutput{
			SessionID:   s.ID,
			StudentName: s.StudentName,
			Level:       s.Level,
			TimeIn:      s.TimeIn,
		})
	}
	return outputs, nil
}

func sortKey(key string) domain.SortKey {
	switch key {
	case "name":
		return domain.SortByName
	case "level":
		return domain.SortByLevel
	case "average":
		return domain.SortByAverage
	case "count":
		return domain.SortByCount
	default:
		return domain.SortByTotal
	}
}

func activeSortKey(key string) domain.ActiveSortKey {
	if key == "name" {
		return domain.ActiveByName
	}
	return domain.ActiveByTimeIn
}

func toBucketOutputs(buckets []domain.Bucket) []dto.BucketOutput {
	outputs := make([]dto.BucketOutput, 0, len(buckets))
	for _, b := range buckets {
		outputs = append(outputs, dto.BucketOutput{Label: b.Label, Value: b.Value, Color: b.Color})
	}
	return outputs
}

func toPieOutput(layout domain.PieLayout) dto.PieOutput {
	output := dto.PieOutput{
		ViewboxWidth:  layout.ViewboxWidth,
		ViewboxHeight: layout.ViewboxHeight,
		CenterX:       layout.CenterX,
		CenterY:       layout.CenterY,
		Radius:        layout.Radius,
		Total:         layout.Total,
	}
	for _, s := range layout.Slices {
		output.Slices = append(output.Slices, dto.PieSliceOutput{
			Label:      s.Label,
			Value:      s.Value,
			Color:      s.Color,
			StartAngle: s.StartAngle,
			EndAngle:   s.EndAngle,
			Percent:    s.Percent,
			Path:       s.Path,
		})
	}
	return output
}
