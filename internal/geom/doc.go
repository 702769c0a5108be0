// Package geom provides the coordinate math used to align faces into grid cells.
//
// The package works in two coordinate domains:
//
//   - Floating-point sizes and rectangles (Size, Rect) for face bounding boxes
//     and scale computations, where sub-pixel precision matters.
//   - Integer pixel rectangles (the standard image.Rectangle) for everything
//     that touches actual pixels.
//
// All coordinates follow the image convention: origin (0,0) at the top-left,
// X increasing rightward, Y increasing downward. Which origin a value is
// relative to (source image, grid cell, or output canvas) is stated on each
// function that cares.
//
// # Rounding
//
// Every float-to-integer conversion in this package rounds half away from
// zero (math.Round). Callers must not re-round values obtained here; doing so
// can shift alignment by a pixel.
package geom
