package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aa-triangle-renderer/internal/raster"
)

func TestDownsampleUniform(t *testing.T) {
	fb := raster.NewFrameBuffer(40, 20)
	fb.Fill(raster.RGB{200, 100, 50})

	out := Downsample(fb, 10, 5)
	assert.Equal(t, 10, out.Width)
	assert.Equal(t, 5, out.Height)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			px, _ := out.At(x, y)
			assert.Equal(t, raster.RGB{200, 100, 50}, px)
		}
	}
}

func TestDownsampleAveragesEdge(t *testing.T) {
	// Left half white, right half black: the center column lands between.
	fb := raster.NewFrameBuffer(64, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 32; x++ {
			fb.Set(x, y, raster.RGB{255, 255, 255})
		}
	}
	out := Downsample(fb, 16, 2)

	left, _ := out.At(0, 0)
	right, _ := out.At(15, 0)
	assert.Equal(t, uint8(255), left[0])
	assert.Equal(t, uint8(0), right[0])
}

func TestDownsampleNoop(t *testing.T) {
	fb := raster.NewFrameBuffer(10, 10)
	assert.Same(t, fb, Downsample(fb, 10, 10))
}

func TestSupersampledViewport(t *testing.T) {
	assert.Equal(t, raster.Viewport{Width: 203, Height: 101}, SupersampledViewport(203, 101, 1))
	assert.Equal(t, raster.Viewport{Width: 406, Height: 202}, SupersampledViewport(203, 101, 2))
}
