// Package imgio handles reading source photographs and writing the composed
// grid. Decoding supports PNG, JPEG, GIF, and BMP; the output codec is
// inferred from the destination file's extension.
package imgio

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// Load decodes the image at path.
//
// Returns an error if the file does not exist, cannot be read, or is not a
// valid image in a supported format. Callers treat a load failure as a
// per-image skip, not a fatal condition.
func Load(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Save encodes img to path, choosing the format from the file extension
// (.png, .jpg/.jpeg, .gif, .tif/.tiff, .bmp). PNG is the sensible choice for
// grid output since it preserves the alpha channel.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save output image: %w", err)
	}
	return nil
}
