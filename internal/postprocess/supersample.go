package postprocess

import (
	"image"

	"golang.org/x/image/draw"

	"aa-triangle-renderer/internal/raster"
)

// Downsample reduces a supersampled buffer to w×h with CatmullRom filtering.
// Buffers already at or below the target size are returned unchanged.
func Downsample(fb *raster.FrameBuffer, w, h int) *raster.FrameBuffer {
	if fb.Width <= w && fb.Height <= h {
		return fb
	}

	src := fb.ToNRGBA()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := raster.NewFrameBuffer(w, h)
	for y := 0; y < h; y++ {
		row := out.Row(y)
		si := y * dst.Stride
		for x := 0; x < w; x++ {
			row[x*3] = dst.Pix[si+x*4]
			row[x*3+1] = dst.Pix[si+x*4+1]
			row[x*3+2] = dst.Pix[si+x*4+2]
		}
	}
	return out
}

// SupersampledViewport returns the render viewport for a w×h target at
// factor× resolution. Factors below 2 leave the size unchanged.
func SupersampledViewport(w, h, factor int) raster.Viewport {
	if factor < 2 {
		return raster.Viewport{Width: w, Height: h}
	}
	return raster.Viewport{Width: w * factor, Height: h * factor}
}
