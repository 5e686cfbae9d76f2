// Package fixture writes encoded solid-color images to disk.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/pngfixture/internal/encoder"
	"github.com/AnyUserName/pngfixture/internal/hasher"
)

// Defaults applied to empty Request fields.
const (
	DefaultFormat = "png"
	DefaultColor  = "000000"
)

// Request describes one fixture file to generate.
type Request struct {
	Out    string
	Width  int
	Height int
	Format string
	Color  string
}

// Result describes a fixture that was written.
type Result struct {
	Path   string
	Width  int
	Height int
	Format string
	Color  string // normalized lowercase hex, no '#'
	Size   int64
	Hash   string // xxhash64, hasher.FixtureHexLen hex chars
}

// Generate validates req, encodes the image and writes it to req.Out,
// creating parent directories and overwriting any existing file.
// Nothing touches the filesystem until encoding has succeeded.
func Generate(reg *encoder.Registry, req Request) (Result, error) {
	format := req.Format
	if format == "" {
		format = DefaultFormat
	}
	colorHex := req.Color
	if colorHex == "" {
		colorHex = DefaultColor
	}

	enc, err := reg.Get(format)
	if err != nil {
		return Result{}, err
	}
	fill, err := encoder.ParseColor(colorHex)
	if err != nil {
		return Result{}, err
	}
	img := encoder.Image{Width: req.Width, Height: req.Height, Fill: fill}
	if err := img.Validate(); err != nil {
		return Result{}, err
	}
	if req.Out == "" {
		return Result{}, errors.New("output path is required")
	}

	data, err := enc.Encode(img)
	if err != nil {
		return Result{}, fmt.Errorf("encode %s: %w", format, err)
	}

	if err := os.MkdirAll(filepath.Dir(req.Out), 0o755); err != nil {
		return Result{}, fmt.Errorf("create dir: %w", err)
	}
	if err := writeFile(req.Out, data); err != nil {
		return Result{}, err
	}

	return Result{
		Path:   req.Out,
		Width:  img.Width,
		Height: img.Height,
		Format: enc.Format(),
		Color:  fill.Hex(),
		Size:   int64(len(data)),
		Hash:   hasher.ContentHash(data, hasher.FixtureHexLen),
	}, nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
