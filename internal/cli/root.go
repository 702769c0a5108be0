// Package cli implements the facegrid command-line interface.
//
// The tool is a single command: it takes a glob of input photographs, runs
// face detection on each, and composes every image with exactly one detected
// face into a grid where all faces are centered and consistently sized.
// Images that fail to decode or that contain zero or several faces are
// skipped and counted; the run only fails on configuration errors, detector
// initialization failure, a geometry invariant violation, or an unwritable
// output file.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/facetools/facegrid/internal/detect"
	"github.com/facetools/facegrid/internal/pipeline"
)

var (
	version = "dev" // semantic version, injected via ldflags
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version. Called by
// the main package with values injected at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the facegrid CLI and returns an error if the run fails.
// The context bounds the whole run; canceling it stops the alignment phase.
func Execute(ctx context.Context) error {
	var (
		input      string
		cellSize   string
		faceScale  float64
		output     string
		columns    int
		maxImages  int
		cascade    string
		background string
		workers    int
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "facegrid",
		Short: "Compose face-aligned photos into a grid",
		Long: `facegrid builds a single composite image: a grid of cells, each holding one
input photograph rescaled and repositioned so that its detected face is
centered and sized consistently across all cells.

Inputs with no detectable face, or with more than one face, are skipped.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cellW, cellH, err := parseCellSize(cellSize)
			if err != nil {
				return err
			}

			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			logger.Debug("facegrid", "version", version, "commit", commit, "built", date)

			detector, err := detect.NewCascadeDetector(cascade)
			if err != nil {
				return err
			}

			cfg := pipeline.Config{
				Pattern:    input,
				CellWidth:  cellW,
				CellHeight: cellH,
				FaceScale:  faceScale,
				Columns:    columns,
				MaxImages:  maxImages,
				OutputPath: output,
				Background: background,
				Workers:    workers,
			}

			stats, err := pipeline.Run(cmd.Context(), cfg, detector, logger)
			if err != nil {
				return err
			}

			logger.Info("run complete",
				"processed", stats.Matched,
				"skipped_decode", stats.DecodeFailed+stats.DetectFailed,
				"skipped_no_face", stats.NoFace,
				"skipped_multi_face", stats.MultiFace,
				"composited", stats.Composited,
			)
			return nil
		},
	}

	root.Flags().StringVar(&input, "input", "*.jpg", "glob pattern for input images")
	root.Flags().StringVar(&cellSize, "cell-size", "100x100", "cell dimensions as WIDTHxHEIGHT")
	root.Flags().Float64Var(&faceScale, "face-scale", 1.0, "how large the face appears relative to the cell")
	root.Flags().StringVar(&output, "output", "face-grid.png", "output file (format inferred from extension)")
	root.Flags().IntVar(&columns, "columns", 0, "grid columns (0 = as square as possible)")
	root.Flags().IntVar(&maxImages, "max-images", 0, "maximum number of images to place (0 = unlimited)")
	root.Flags().StringVar(&cascade, "cascade", "facefinder", "path to the pigo face cascade file")
	root.Flags().StringVar(&background, "background", "", "hex background color for empty areas (default transparent)")
	root.Flags().IntVar(&workers, "workers", 0, "alignment parallelism (0 = number of CPUs)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return root.ExecuteContext(ctx)
}
