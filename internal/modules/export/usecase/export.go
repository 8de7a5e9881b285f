package usecase

import (
	"context"
	"fmt"

	"libtrack/internal/modules/export/domain"
	"libtrack/internal/modules/export/port/out"
	apperrors "libtrack/internal/platform/errors"
)

type Interactor struct {
	pdf out.DocumentWriter
	png out.ImageWriter
}

func NewInteractor(pdf out.DocumentWriter, png out.ImageWriter) *Interactor {
	return &Interactor{pdf: pdf, png: png}
}

func (i *Interactor) LogCSV(_ context.Context, rows []domain.LogRow) (string, error) {
	if len(rows) == 0 {
		return "", apperrors.ErrNoExportData
	}
	return domain.LogCSV(rows), nil
}

func (i *Interactor) LeaderboardCSV(_ context.Context, rows []domain.LeaderboardRow) (string, error) {
	if len(rows) == 0 {
		return "", apperrors.ErrNoExportData
	}
	return domain.LeaderboardCSV(rows), nil
}

func (i *Interactor) ChartCSV(_ context.Context, rows []domain.ChartRow) (string, error) {
	if len(rows) == 0 {
		return "", apperrors.ErrNoExportData
	}
	return domain.ChartCSV(rows), nil
}

func (i *Interactor) LogPDF(ctx context.Context, rows []domain.LogRow, path string) error {
	if len(rows) == 0 {
		return apperrors.ErrNoExportData
	}
	if err := i.pdf.WriteTable(ctx, domain.LogTable(rows), path); err != nil {
		return fmt.Errorf("write log pdf: %w", err)
	}
	return nil
}

func (i *Interactor) LeaderboardPDF(ctx context.Context, rows []domain.LeaderboardRow, path string) error {
	if len(rows) == 0 {
		return apperrors.ErrNoExportData
	}
	if err := i.pdf.WriteTable(ctx, domain.LeaderboardTable(rows), path); err != nil {
		return fmt.Errorf("write leaderboard pdf: %w", err)
	}
	return nil
}

func (i *Interactor) LogPNG(ctx context.Context, rows []domain.LogRow, dark bool, path string) error {
	if len(rows) == 0 {
		return apperrors.ErrNoExportData
	}
	if err := i.png.WriteTable(ctx, domain.LogTable(rows), dark, path); err != nil {
		return fmt.Errorf("write log png: %w", err)
	}
	return nil
}

func (i *Interactor) LeaderboardPNG(ctx context.Context, rows []domain.LeaderboardRow, dark bool, path string) error {
	if len(rows) == 0 {
		return apperrors.ErrNoExportData
	}
	if err := i.png.WriteTable(ctx, domain.LeaderboardTable(rows), dark, path); err != nil {
		return fmt.Errorf("write leaderboard png: %w", err)
	}
	return nil
}
