// Package pipeline runs the two-phase face-grid build: a parallel alignment
// phase over every input image, then a sequential layout-and-composite phase
// once the number of usable images is known.
//
// Alignment of one image has no data dependency on any other, so it runs on
// a bounded worker pool. Each worker writes its result into a pre-reserved
// slot indexed by the image's position in the sorted input list, which keeps
// grid placement deterministic regardless of completion order. The layout
// phase cannot start until every slot is settled; that wait is the barrier
// between the phases.
package pipeline

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/schollz/progressbar/v3"

	"github.com/facetools/facegrid/internal/align"
	"github.com/facetools/facegrid/internal/detect"
	"github.com/facetools/facegrid/internal/geom"
	"github.com/facetools/facegrid/internal/grid"
	"github.com/facetools/facegrid/internal/imgio"
)

// Config carries everything the pipeline needs for one run.
type Config struct {
	// Pattern is the glob matching input image paths, e.g. "photos/*.jpg".
	Pattern string

	// CellWidth and CellHeight are the fixed cell dimensions in pixels.
	// Both must be positive.
	CellWidth  int
	CellHeight int

	// FaceScale multiplies how large faces appear relative to the cell.
	// 1.0 is the default sizing.
	FaceScale float64

	// Columns fixes the grid's column count; 0 picks ceil(sqrt(n)) for a
	// near-square grid.
	Columns int

	// MaxImages bounds how many aligned images are used; 0 means all.
	MaxImages int

	// OutputPath is where the composed grid is written. The codec is
	// inferred from the extension.
	OutputPath string

	// Background is an optional hex color (e.g. "#1e1e2e") for canvas
	// pixels no image covers. Empty leaves them fully transparent.
	Background string

	// Workers is the alignment parallelism; 0 or less uses NumCPU.
	Workers int
}

// Stats counts per-image outcomes across a run.
type Stats struct {
	Matched      int // paths matched by the input pattern
	DecodeFailed int // skipped: not readable as an image
	DetectFailed int // skipped: face detection returned an error
	NoFace       int // skipped: zero faces found
	MultiFace    int // skipped: more than one face found
	Aligned      int // aligned images placed into the grid
	Composited   int // cells actually painted
}

// Skipped returns the total number of images excluded from the grid.
func (s *Stats) Skipped() int {
	return s.DecodeFailed + s.DetectFailed + s.NoFace + s.MultiFace
}

type skipReason int

const (
	skipNone skipReason = iota
	skipDecode
	skipDetect
	skipNoFace
	skipMultiFace
)

// outcome is one slot's result from the alignment phase.
type outcome struct {
	aligned align.Aligned
	skip    skipReason
}

// Run executes the pipeline and returns the outcome counts. A non-nil error
// is fatal: invalid configuration, a canceled context, a geometry invariant
// violation during compositing, or a failure to write the output.
func Run(ctx context.Context, cfg Config, det detect.Detector, logger *log.Logger) (*Stats, error) {
	if cfg.CellWidth <= 0 || cfg.CellHeight <= 0 {
		return nil, fmt.Errorf("cell dimensions must be positive, got %dx%d", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.FaceScale <= 0 {
		return nil, fmt.Errorf("face scale must be positive, got %v", cfg.FaceScale)
	}

	var bg color.Color
	if cfg.Background != "" {
		c, err := colorful.Hex(cfg.Background)
		if err != nil {
			return nil, fmt.Errorf("invalid background color %q: %w", cfg.Background, err)
		}
		r, g, b := c.RGB255()
		bg = color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	paths, err := filepath.Glob(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid input pattern %q: %w", cfg.Pattern, err)
	}
	// Enumeration order is filesystem-dependent; sorting makes cell
	// placement reproducible across runs and machines.
	sort.Strings(paths)

	stats := &Stats{Matched: len(paths)}
	logger.Info("matched input files", "pattern", cfg.Pattern, "count", len(paths))

	target := align.TargetFaceBox(cfg.CellWidth, cfg.CellHeight, cfg.FaceScale)
	logger.Debug("derived target face box", "w", target.W, "h", target.H)

	slots := make([]outcome, len(paths))
	if err := alignAll(ctx, cfg, det, paths, target, slots, logger); err != nil {
		return stats, err
	}

	results := make([]align.Aligned, 0, len(paths))
	for i, slot := range slots {
		switch slot.skip {
		case skipNone:
			if cfg.MaxImages > 0 && len(results) >= cfg.MaxImages {
				logger.Debug("over max-images, dropping", "path", paths[i])
				continue
			}
			results = append(results, slot.aligned)
		case skipDecode:
			stats.DecodeFailed++
		case skipDetect:
			stats.DetectFailed++
		case skipNoFace:
			stats.NoFace++
		case skipMultiFace:
			stats.MultiFace++
		}
	}
	stats.Aligned = len(results)
	logger.Info("alignment done", "usable", stats.Aligned, "skipped", stats.Skipped())

	// An empty grid is a valid outcome, but a zero-sized raster cannot be
	// encoded, so there is nothing to write.
	if len(results) == 0 {
		logger.Warn("no usable images, output not written")
		return stats, nil
	}

	layout := grid.Plan(len(results), cfg.Columns, cfg.CellWidth, cfg.CellHeight)
	logger.Info("planned grid",
		"columns", layout.Columns, "rows", layout.Rows,
		"canvas", fmt.Sprintf("%dx%d", layout.Width, layout.Height))

	canvas := grid.NewCanvas(layout, bg)

	bar := newBar(len(results), "Compositing")
	for i, res := range results {
		origin := layout.CellOrigin(i)
		if err := grid.Composite(canvas, res.Image, res.Offset, origin, layout.CellWidth, layout.CellHeight); err != nil {
			return stats, fmt.Errorf("compositing cell %d: %w", i, err)
		}
		stats.Composited++
		bar.Add(1)
	}
	bar.Finish()

	if err := imgio.Save(canvas, cfg.OutputPath); err != nil {
		return stats, err
	}
	logger.Info("wrote output", "path", cfg.OutputPath)
	return stats, nil
}

// alignAll fans the per-image work out over a worker pool. Every worker owns
// the slot it writes, so no locking is needed; the WaitGroup is the barrier
// that settles all slots before layout starts.
func alignAll(ctx context.Context, cfg Config, det detect.Detector, paths []string, target geom.Size, slots []outcome, logger *log.Logger) error {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	bar := newBar(len(paths), "Aligning")
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i] = alignOne(cfg, det, paths[i], target, logger)
				bar.Add(1)
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	return ctx.Err()
}

// alignOne processes a single input path: decode, detect, enforce the
// exactly-one-face policy, align. Failures here are per-image skips, never
// fatal to the run.
func alignOne(cfg Config, det detect.Detector, path string, target geom.Size, logger *log.Logger) outcome {
	img, err := imgio.Load(path)
	if err != nil {
		logger.Debug("skipping unreadable file", "path", path, "err", err)
		return outcome{skip: skipDecode}
	}

	faces, err := det.Detect(img)
	if err != nil {
		logger.Debug("skipping after detection error", "path", path, "err", err)
		return outcome{skip: skipDetect}
	}

	// Zero or multiple detections are both rejected: with several faces
	// there is no principled choice of which one to center on.
	switch {
	case len(faces) == 0:
		logger.Debug("skipping, no face found", "path", path)
		return outcome{skip: skipNoFace}
	case len(faces) > 1:
		logger.Debug("skipping, multiple faces found", "path", path, "count", len(faces))
		return outcome{skip: skipMultiFace}
	}

	logger.Debug("face found", "path", path, "confidence", faces[0].Confidence)
	return outcome{aligned: align.Align(img, faces[0].Rect, cfg.CellWidth, cfg.CellHeight, target)}
}

// newBar builds a progress bar for one phase, written to stderr so stdout
// stays clean.
func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
