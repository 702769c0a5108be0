package geom

import (
	"image"
	"math"
)

// Size is a width/height pair in floating-point coordinates.
type Size struct {
	W float64
	H float64
}

// Rect is an axis-aligned rectangle in floating-point coordinates,
// described by its top-left corner and extents.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Size returns the rectangle's extents.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Center returns the rectangle's center point.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// FitInside returns the largest size with content's aspect ratio that fits
// entirely within container on both axes. At least one axis of the result
// equals the corresponding container axis.
//
// Both content dimensions must be positive; a zero dimension would divide by
// zero and the caller is expected to guard against it.
func FitInside(container, content Size) Size {
	scale := math.Min(container.W/content.W, container.H/content.H)
	return Size{W: content.W * scale, H: content.H * scale}
}

// Intersect computes the overlap of two integer rectangles expressed in the
// same frame, and returns it translated into a's local frame: the result's
// Min is the offset of the overlap from a's top-left corner.
//
// The second return value is false when the rectangles do not overlap,
// including when they only touch along an edge (zero-area overlap).
func Intersect(a, b image.Rectangle) (image.Rectangle, bool) {
	overlap := a.Intersect(b)
	if overlap.Empty() {
		return image.Rectangle{}, false
	}
	return overlap.Sub(a.Min), true
}

// Round converts a float coordinate to an integer one, rounding half away
// from zero. This is the only rounding rule used for pixel coordinates.
func Round(v float64) int {
	return int(math.Round(v))
}

// RoundPt converts a float point to an integer image.Point using Round on
// both axes.
func RoundPt(x, y float64) image.Point {
	return image.Pt(Round(x), Round(y))
}

// RoundSize converts a float Size to integer width and height using Round on
// both axes.
func RoundSize(s Size) (w, h int) {
	return Round(s.W), Round(s.H)
}
