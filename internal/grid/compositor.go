package grid

import (
	"fmt"
	"image"
	"image/color"

	"github.com/facetools/facegrid/internal/geom"
)

// Composite pastes src onto canvas inside the cell whose canvas-absolute
// top-left corner is cellOrigin. offset is src's position in the cell's
// local frame, so negative values and images larger than the cell are fine:
// the paste is clipped to the part of src that falls inside the cell.
//
// Written pixels take src's RGB with alpha forced to fully opaque; pixels of
// the cell the image does not cover are left untouched. This is an opaque
// overwrite, not a blend.
//
// An empty intersection between the image and its cell means the alignment
// and layout math disagree about geometry, which no per-image recovery can
// fix; it is returned as an error the caller must treat as fatal.
func Composite(canvas *image.NRGBA, src *image.NRGBA, offset, cellOrigin image.Point, cellW, cellH int) error {
	cellRect := image.Rect(0, 0, cellW, cellH)
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	imageRect := image.Rect(offset.X, offset.Y, offset.X+srcW, offset.Y+srcH)

	// Overlap comes back in the cell's local frame.
	overlap, ok := geom.Intersect(cellRect, imageRect)
	if !ok {
		return fmt.Errorf("image at offset (%d,%d) sized %dx%d does not intersect its %dx%d cell",
			offset.X, offset.Y, srcW, srcH, cellW, cellH)
	}

	for y := overlap.Min.Y; y < overlap.Max.Y; y++ {
		srcY := y - offset.Y
		for x := overlap.Min.X; x < overlap.Max.X; x++ {
			srcX := x - offset.X
			px := src.NRGBAAt(srcX, srcY)
			canvas.SetNRGBA(cellOrigin.X+x, cellOrigin.Y+y, color.NRGBA{R: px.R, G: px.G, B: px.B, A: 255})
		}
	}
	return nil
}
