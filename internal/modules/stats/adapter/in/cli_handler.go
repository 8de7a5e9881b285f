package in

import (
	"context"

	statsdto "libtrack/internal/modules/stats/dto"
	statsin "libtrack/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Leaderboard(ctx context.Context, search, sortKey string, descending bool, limit int) (statsdto.LeaderboardOutput, error) {
	return h.usecase.Leaderboard(ctx, statsdto.LeaderboardQuery{
		Search:     search,
		SortKey:    sortKey,
		Descending: descending,
		Limit:      limit,
	})
}

func (h CLIHandler) LevelBuckets(ctx context.Context) ([]statsdto.BucketOutput, error) {
	return h.usecase.LevelBuckets(ctx)
}

func (h CLIHandler) StudentBuckets(ctx context.Context) ([]statsdto.BucketOutput, error) {
	return h.usecase.StudentBuckets(ctx)
}

func (h CLIHandler) Log(ctx context.Context, query statsdto.LogQuery) (statsdto.LogOutput, error) {
	return h.usecase.Log(ctx, query)
}
