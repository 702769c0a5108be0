package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCellSize parses a "WIDTHxHEIGHT" string (e.g. "100x100") into pixel
// dimensions. Both values must be positive integers.
func parseCellSize(s string) (w, h int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("cell size %q must use WIDTHxHEIGHT", s)
	}

	w, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell width %q: %w", parts[0], err)
	}
	h, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell height %q: %w", parts[1], err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("cell size %q must have positive dimensions", s)
	}
	return w, h, nil
}
