// Package texture loads background images and scales them into a frame buffer.
package texture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	_ "aa-triangle-renderer/internal/ppm"
	"aa-triangle-renderer/internal/raster"
)

// Load reads a PNG, JPEG, TGA or PPM file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// Fill scales src over the whole of fb with bilinear filtering. Alpha is
// composited over the buffer's existing contents.
func Fill(fb *raster.FrameBuffer, src image.Image) {
	dst := fb.ToNRGBA()
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	for y := 0; y < fb.Height; y++ {
		row := fb.Row(y)
		si := y * dst.Stride
		for x := 0; x < fb.Width; x++ {
			row[x*3] = dst.Pix[si+x*4]
			row[x*3+1] = dst.Pix[si+x*4+1]
			row[x*3+2] = dst.Pix[si+x*4+2]
		}
	}
}

// LoadInto loads path and fills fb with it.
func LoadInto(fb *raster.FrameBuffer, path string) error {
	img, err := Load(path)
	if err != nil {
		return err
	}
	Fill(fb, img)
	return nil
}
