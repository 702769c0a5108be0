// Package detect finds faces in decoded images.
//
// The Detector interface is the boundary the rest of the program depends on;
// CascadeDetector is the production implementation, built on the pigo
// pixel-intensity-comparison cascade classifier. Detection results are
// bounding boxes in image-local coordinates with a confidence score.
package detect

import (
	"image"

	"github.com/facetools/facegrid/internal/geom"
)

// Face is one detected face: its bounding box in the source image's
// coordinate frame and the classifier's confidence in the detection.
type Face struct {
	Rect       geom.Rect
	Confidence float64
}

// Detector locates faces in an image. Implementations must be safe for
// concurrent use by multiple goroutines.
type Detector interface {
	// Detect returns all faces found in img, in no particular order.
	// An image with no faces yields an empty slice and a nil error.
	Detect(img image.Image) ([]Face, error)
}
