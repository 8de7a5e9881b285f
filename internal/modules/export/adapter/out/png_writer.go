package out

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"libtrack/internal/modules/export/domain"
	exportout "libtrack/internal/modules/export/port/out"
)

type tablePalette struct {
	background color.RGBA
	headerFill color.RGBA
	evenRow    color.RGBA
	border     color.RGBA
	text       color.RGBA
}

var lightPalette = tablePalette{
	background: color.RGBA{0xff, 0xff, 0xff, 0xff},
	headerFill: color.RGBA{0xf3, 0xf4, 0xf6, 0xff},
	evenRow:    color.RGBA{0xf9, 0xfa, 0xfb, 0xff},
	border:     color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
	text:       color.RGBA{0x1f, 0x29, 0x37, 0xff},
}

var darkPalette = tablePalette{
	background: color.RGBA{0x1f, 0x29, 0x37, 0xff},
	headerFill: color.RGBA{0x37, 0x41, 0x51, 0xff},
	evenRow:    color.RGBA{0x27, 0x31, 0x42, 0xff},
	border:     color.RGBA{0x4b, 0x55, 0x63, 0xff},
	text:       color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
}

const (
	cellPadding = 8
	rowHeight   = 22
	titleHeight = 30
	glyphWidth  = 7 // basicfont.Face7x13 advance
)

// BasicfontWriter rasterizes a table with the fixed 7x13 bitmap face.
// Column widths follow the widest cell; even data rows get a tinted
// background like the on-screen table.
type BasicfontWriter struct{}

func NewBasicfontWriter() exportout.ImageWriter {
	return BasicfontWriter{}
}

func (BasicfontWriter) WriteTable(_ context.Context, table domain.Table, dark bool, path string) error {
	palette := lightPalette
	if dark {
		palette = darkPalette
	}

	widths := columnWidths(table)
	totalWidth := 1
	for _, w := range widths {
		totalWidth += w + 1
	}
	totalHeight := titleHeight + (len(table.Rows)+1)*(rowHeight+1) + 1

	img := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{palette.background}, image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{palette.text},
		Face: basicfont.Face7x13,
	}
	drawer.Dot = fixed.P(cellPadding, titleHeight-12)
	drawer.DrawString(table.Title)

	y := titleHeight
	y = drawRow(img, &drawer, table.Headers, widths, y, palette.headerFill, palette.border)
	for i, row := range table.Rows {
		fill := palette.background
		if i%2 == 1 {
			fill = palette.evenRow
		}
		y = drawRow(img, &drawer, row, widths, y, fill, palette.border)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode png %s: %w", path, err)
	}
	return nil
}

func columnWidths(table domain.Table) []int {
	widths := make([]int, len(table.Headers))
	for i, h := range table.Headers {
		widths[i] = len(h)*glyphWidth + 2*cellPadding
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := len(cell)*glyphWidth + 2*cellPadding; w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func drawRow(img *image.RGBA, drawer *font.Drawer, cells []string, widths []int, y int, fill, border color.RGBA) int {
	x := 1
	for i, w := range widths {
		cellRect := image.Rect(x, y, x+w, y+rowHeight)
		draw.Draw(img, cellRect, &image.Uniform{fill}, image.Point{}, draw.Src)
		strokeRect(img, cellRect, border)
		if i < len(cells) {
			drawer.Dot = fixed.P(x+cellPadding, y+rowHeight-7)
			drawer.DrawString(cells[i])
		}
		x += w + 1
	}
	return y + rowHeight + 1
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X - 1; x <= r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y-1, c)
		img.SetRGBA(x, r.Max.Y, c)
	}
	for y := r.Min.Y - 1; y <= r.Max.Y; y++ {
		img.SetRGBA(r.Min.X-1, y, c)
		img.SetRGBA(r.Max.X, y, c)
	}
}
