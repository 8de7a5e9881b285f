package in

import (
	"context"

	"libtrack/internal/modules/stats/dto"
)

type Usecase interface {
	Leaderboard(ctx context.Context, query dto.LeaderboardQuery) (dto.LeaderboardOutput, error)
	LevelBuckets(ctx context.Context) ([]dto.BucketOutput, error)
	StudentBuckets(ctx context.Context) ([]dto.BucketOutput, error)
	PieByLevel(ctx context.Context) (dto.PieOutput, error)
	PieByStudent(ctx context.Context) (dto.PieOutput, error)
	BarChart(ctx context.Context, query dto.LeaderboardQuery) (dto.BarChartOutput, error)
	Log(ctx context.Context, query dto.LogQuery) (dto.LogOutput, error)
	ActiveSorted(ctx context.Context, query dto.ActiveQuery) ([]dto.ActiveEntryOutput, error)
}
