// Package align rescales a photograph so its detected face lands centered,
// at a consistent size, inside a fixed grid cell.
package align

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/facetools/facegrid/internal/geom"
)

// Nominal face proportions used to derive the target face box from a cell.
// Real faces are roughly 3:4, and leaving headroom around the box keeps
// hair and chin inside the cell, so the fitted box is shrunk by a base
// factor before the user's face-scale multiplier applies.
const (
	nominalFaceW  = 75.0
	nominalFaceH  = 100.0
	baseFaceScale = 0.6
)

// Aligned is a rescaled source image plus the cell-local position at which
// its top-left corner should be pasted so that the face is centered in the
// cell. The offset may be negative, and the image may extend past the cell
// on any side; the compositor clips it.
type Aligned struct {
	Image  *image.NRGBA
	Offset image.Point
}

// TargetFaceBox derives the box a face is scaled to fit into, from the cell
// dimensions and the user's face-scale multiplier. Computed once per run and
// shared by every alignment.
func TargetFaceBox(cellW, cellH int, faceScale float64) geom.Size {
	nominal := geom.FitInside(
		geom.Size{W: float64(cellW), H: float64(cellH)},
		geom.Size{W: nominalFaceW, H: nominalFaceH},
	)
	s := baseFaceScale * faceScale
	return geom.Size{W: nominal.W * s, H: nominal.H * s}
}

// Align rescales src so that face fits the target box, and computes the
// offset that centers the scaled face in a cellW x cellH cell.
//
// The face rectangle is in src's coordinate frame and must have positive
// width and height. Scaling is uniform: the factor that fits the face's
// width also applies to its height and to the whole image, so aspect ratio
// is preserved everywhere.
func Align(src image.Image, face geom.Rect, cellW, cellH int, target geom.Size) Aligned {
	fitted := geom.FitInside(target, face.Size())
	scale := fitted.W / face.W

	srcW := float64(src.Bounds().Dx())
	srcH := float64(src.Bounds().Dy())
	newW, newH := geom.RoundSize(geom.Size{W: srcW * scale, H: srcH * scale})

	resized := imaging.Resize(src, newW, newH, imaging.Lanczos)

	faceCX, faceCY := face.Center()
	offset := geom.RoundPt(
		float64(cellW)/2-faceCX*scale,
		float64(cellH)/2-faceCY*scale,
	)

	return Aligned{Image: resized, Offset: offset}
}
