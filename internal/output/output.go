// Package output saves a rendered FrameBuffer, choosing the encoder from the
// destination's file extension.
package output

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"aa-triangle-renderer/internal/ppm"
	"aa-triangle-renderer/internal/raster"
)

// ErrUnknownFormat is returned for an extension with no registered encoder.
var ErrUnknownFormat = errors.New("output: unknown format")

// Format identifies an output encoding.
type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
)

// FormatFor maps a path to its format. Paths without an extension are PPM.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "", "ppm", "pnm":
		return PPM, nil
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "tga":
		return TGA, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Encode writes fb to w in format f.
func Encode(w io.Writer, f Format, fb *raster.FrameBuffer) error {
	switch f {
	case PPM:
		return ppm.Encode(w, fb)
	case PNG:
		return png.Encode(w, fb.ToNRGBA())
	case WebP:
		return nativewebp.Encode(w, fb.ToNRGBA(), nil)
	case TGA:
		return tga.Encode(w, fb.ToNRGBA())
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Write saves fb to path, creating parent directories as needed. Errors name
// path and wrap the underlying cause.
func Write(path string, fb *raster.FrameBuffer) (err error) {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("couldn't create %s: %w", path, err)
		}
	}
	if format == PPM {
		return ppm.WriteFile(path, fb)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("couldn't create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("couldn't close %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, format, fb); err != nil {
		return fmt.Errorf("couldn't write to %s: %s encode: %w", path, format, err)
	}
	return nil
}
