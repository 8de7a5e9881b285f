package out

import (
	"context"

	"libtrack/internal/modules/export/domain"
)

// DocumentWriter renders a table into a paginated document file.
type DocumentWriter interface {
	WriteTable(ctx context.Context, table domain.Table, path string) error
}

// ImageWriter rasterizes a table into a bitmap file using the light or
// dark palette.
type ImageWriter interface {
	WriteTable(ctx context.Context, table domain.Table, dark bool, path string) error
}
