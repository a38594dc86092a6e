package raster

import (
	"image"
	"image/color"
)

// RGB is one stored pixel: 8-bit denormalized channels.
type RGB [3]uint8

// FrameBuffer holds the rendering target as one flat slice for cache locality.
// Pixels are row-major with the origin at the top-left.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGB interleaved, len = W*H*3
}

// NewFrameBuffer allocates a zeroed (black) buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*3),
	}
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (fb *FrameBuffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width && y < fb.Height
}

// PixOffset returns the index of the first channel of (x, y) in Pix.
func (fb *FrameBuffer) PixOffset(x, y int) int {
	return (y*fb.Width + x) * 3
}

// At returns the pixel at (x, y). ok is false outside the buffer.
func (fb *FrameBuffer) At(x, y int) (px RGB, ok bool) {
	if !fb.InBounds(x, y) {
		return RGB{}, false
	}
	i := fb.PixOffset(x, y)
	return RGB{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]}, true
}

// Set writes the pixel at (x, y). Out-of-bounds writes are ignored.
func (fb *FrameBuffer) Set(x, y int, px RGB) {
	if !fb.InBounds(x, y) {
		return
	}
	i := fb.PixOffset(x, y)
	fb.Pix[i] = px[0]
	fb.Pix[i+1] = px[1]
	fb.Pix[i+2] = px[2]
}

// Fill sets every pixel to px.
func (fb *FrameBuffer) Fill(px RGB) {
	for i := 0; i < len(fb.Pix); i += 3 {
		fb.Pix[i] = px[0]
		fb.Pix[i+1] = px[1]
		fb.Pix[i+2] = px[2]
	}
}

// Row returns the bytes of row y, aliasing Pix.
func (fb *FrameBuffer) Row(y int) []uint8 {
	start := y * fb.Width * 3
	return fb.Pix[start : start+fb.Width*3]
}

// Equal reports whether two buffers have the same size and contents.
func (fb *FrameBuffer) Equal(other *FrameBuffer) bool {
	if fb.Width != other.Width || fb.Height != other.Height {
		return false
	}
	for i := range fb.Pix {
		if fb.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// ToNRGBA converts the buffer to an opaque NRGBA image for the image encoders.
func (fb *FrameBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		src := fb.Row(y)
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < fb.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 255
		}
	}
	return img
}

// FromImage builds a buffer from any image, dropping alpha.
func FromImage(src image.Image) *FrameBuffer {
	b := src.Bounds()
	fb := NewFrameBuffer(b.Dx(), b.Dy())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			fb.Set(x, y, RGB{c.R, c.G, c.B})
		}
	}
	return fb
}
