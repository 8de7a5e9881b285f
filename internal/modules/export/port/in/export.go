package in

import (
	"context"

	"libtrack/internal/modules/export/domain"
)

// Usecase turns prepared rows into export artifacts. Rows arrive already
// filtered and sorted by the caller; every operation rejects an empty
// row set with ErrNoExportData.
type Usecase interface {
	LogCSV(ctx context.Context, rows []domain.LogRow) (string, error)
	LeaderboardCSV(ctx context.Context, rows []domain.LeaderboardRow) (string, error)
	ChartCSV(ctx context.Context, rows []domain.ChartRow) (string, error)
	LogPDF(ctx context.Context, rows []domain.LogRow, path string) error
	LeaderboardPDF(ctx context.Context, rows []domain.LeaderboardRow, path string) error
	LogPNG(ctx context.Context, rows []domain.LogRow, dark bool, path string) error
	LeaderboardPNG(ctx context.Context, rows []domain.LeaderboardRow, dark bool, path string) error
}
