// Package grid sizes the output canvas and composites aligned images into
// their cells.
//
// Cells are laid out row-major: index 0 is the top-left cell, index columns-1
// ends the first row. Cells never overlap, so compositing into distinct cells
// touches disjoint canvas regions.
package grid

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Layout describes the output grid: cell counts, the fixed cell size, and
// the resulting canvas size. Immutable once computed.
type Layout struct {
	Columns    int
	Rows       int
	CellWidth  int
	CellHeight int
	Width      int
	Height     int
}

// Plan derives the grid layout for count images.
//
// With preferredColumns == 0 the column count is ceil(sqrt(count)), which
// keeps the grid as close to square as possible; otherwise preferredColumns
// is used as-is. Rows are always ceil(count/columns). The canvas is exactly
// columns*cellW by rows*cellH with no remainder cropping.
//
// count == 0 yields a zero-sized layout, which is a valid empty result.
func Plan(count, preferredColumns, cellW, cellH int) Layout {
	if count == 0 {
		return Layout{CellWidth: cellW, CellHeight: cellH}
	}

	columns := preferredColumns
	if columns == 0 {
		columns = int(math.Ceil(math.Sqrt(float64(count))))
	}
	rows := (count + columns - 1) / columns

	return Layout{
		Columns:    columns,
		Rows:       rows,
		CellWidth:  cellW,
		CellHeight: cellH,
		Width:      columns * cellW,
		Height:     rows * cellH,
	}
}

// CellOrigin returns the canvas-absolute top-left corner of the i-th cell in
// row-major order.
func (l Layout) CellOrigin(i int) image.Point {
	col := i % l.Columns
	row := i / l.Columns
	return image.Pt(col*l.CellWidth, row*l.CellHeight)
}

// NewCanvas allocates the output buffer for the layout. With a nil
// background every pixel starts fully transparent; otherwise the canvas is
// flood-filled with bg at full opacity before any image is placed.
func NewCanvas(l Layout, bg color.Color) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, l.Width, l.Height))
	if bg != nil {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return canvas
}
