package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the run logger. Timestamps are formatted as
// "HH:MM:SS.ms" and messages below level are filtered out.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
