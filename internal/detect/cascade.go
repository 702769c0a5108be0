package detect

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/facetools/facegrid/internal/geom"
)

// Cascade tuning. The shift and scale factors trade detection density for
// speed; the IoU threshold merges overlapping detections of the same face.
const (
	minFaceSize     = 20
	shiftFactor     = 0.1
	scaleFactor     = 1.1
	clusterIoU      = 0.2
	minQualityScore = 5.0
)

// CascadeDetector implements Detector using a pigo binary cascade.
//
// The zero value is not usable; construct with NewCascadeDetector. A single
// CascadeDetector may be shared across goroutines: RunCascade does not
// mutate classifier state.
type CascadeDetector struct {
	classifier *pigo.Pigo
}

// NewCascadeDetector reads and unpacks the facefinder cascade at path.
// Returns an error if the file cannot be read or is not a valid cascade.
func NewCascadeDetector(path string) (*CascadeDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack cascade file: %w", err)
	}

	return &CascadeDetector{classifier: classifier}, nil
}

// Detect runs the cascade over img and returns the detections that survive
// clustering and the quality threshold. Pigo reports square detections as a
// center and scale; they are converted to top-left rectangles here.
func (d *CascadeDetector) Detect(img image.Image) ([]Face, error) {
	src := pigo.ImgToNRGBA(img)
	pixels := pigo.RgbToGrayscale(src)

	cols := src.Bounds().Dx()
	rows := src.Bounds().Dy()
	maxSize := cols
	if rows < maxSize {
		maxSize = rows
	}

	params := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: shiftFactor,
		ScaleFactor: scaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, clusterIoU)

	faces := make([]Face, 0, len(dets))
	for _, det := range dets {
		if det.Q < minQualityScore {
			continue
		}
		scale := float64(det.Scale)
		faces = append(faces, Face{
			Rect: geom.Rect{
				X: float64(det.Col) - scale/2,
				Y: float64(det.Row) - scale/2,
				W: scale,
				H: scale,
			},
			Confidence: float64(det.Q),
		})
	}
	return faces, nil
}
