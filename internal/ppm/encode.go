// Package ppm reads and writes binary pixel maps ("P6", maxval 255).
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"aa-triangle-renderer/internal/raster"
)

// Magic is the binary pixel-map format tag.
const Magic = "P6"

// Header returns the ASCII header for a w×h image.
func Header(w, h int) string {
	return fmt.Sprintf("%s\n%d %d\n255\n", Magic, w, h)
}

// Size returns the exact encoded length of a w×h image.
func Size(w, h int) int {
	return len(Header(w, h)) + w*h*3
}

// Encode writes fb as P6: header, then W*H*3 raw bytes, top-to-bottom,
// left-to-right.
func Encode(w io.Writer, fb *raster.FrameBuffer) error {
	if fb == nil {
		return errors.New("ppm: nil frame buffer")
	}
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, Header(fb.Width, fb.Height)); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}
	for y := 0; y < fb.Height; y++ {
		if _, err := bw.Write(fb.Row(y)); err != nil {
			return fmt.Errorf("ppm: write row %d: %w", y, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ppm: flush: %w", err)
	}
	return nil
}

// WriteFile creates path and encodes fb into it. Every error names path.
func WriteFile(path string, fb *raster.FrameBuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("couldn't create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("couldn't close %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, fb); err != nil {
		return fmt.Errorf("couldn't write to %s: %w", path, err)
	}
	return nil
}
