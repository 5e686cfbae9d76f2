package encoder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidColorFormat is returned when a color is not 6 hex digits.
	ErrInvalidColorFormat = errors.New("color must be 6 hex digits, like 1e88e5")
	// ErrInvalidDimensions is returned for non-positive or oversized width/height.
	ErrInvalidDimensions = errors.New("width and height must be positive integers")
	// ErrUnsupportedFormat is returned for any output format other than png.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// maxDimension is the largest width or height a PNG header may carry (2^31-1).
const maxDimension = 1<<31 - 1

// RGB is a solid fill color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as 6 lowercase hex digits, without a leading '#'.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// Image describes a solid-color image to encode.
type Image struct {
	Width  int
	Height int
	Fill   RGB
}

// Validate checks the dimensions against the PNG limits.
func (img Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, img.Width, img.Height)
	}
	if img.Width > maxDimension || img.Height > maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, img.Width, img.Height, maxDimension)
	}
	return nil
}

// Encoder encodes a solid-color image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "png").
	Format() string

	// Extension returns the file extension without dot.
	Extension() string

	// Encode converts the image descriptor to a complete file body.
	Encode(img Image) ([]byte, error)
}
