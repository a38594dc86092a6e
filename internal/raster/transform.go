package raster

import (
	"math"

	"aa-triangle-renderer/internal/mathutil"
)

// PixelCoord addresses one cell of the pixel grid.
type PixelCoord struct {
	X, Y int
}

// Viewport maps between normalized device space ([-1,1] on both axes) and
// the pixel grid [0, W-1]×[0, H-1]. The y axis points down in both spaces.
type Viewport struct {
	Width  int
	Height int
}

// NormalizedToDenormalized maps c from [-1,1] to [0, dim-1] per axis.
func (v Viewport) NormalizedToDenormalized(c mathutil.Vec2) mathutil.Vec2 {
	return mathutil.Vec2{
		(c[0] + 1) * float64(v.Width-1) / 2,
		(c[1] + 1) * float64(v.Height-1) / 2,
	}
}

// PixelToNormalized is the inverse of NormalizedToDenormalized.
func (v Viewport) PixelToNormalized(c mathutil.Vec2) mathutil.Vec2 {
	return mathutil.Vec2{
		c[0]*2/float64(v.Width-1) - 1,
		c[1]*2/float64(v.Height-1) - 1,
	}
}

// ToPixel maps a normalized coordinate to the grid cell containing it.
// Denormalized values are truncated toward zero, no half-pixel bias.
func (v Viewport) ToPixel(c mathutil.Vec2) PixelCoord {
	d := v.NormalizedToDenormalized(c)
	return PixelCoord{X: int(d[0]), Y: int(d[1])}
}

// ToPlane maps a grid cell to its normalized coordinate.
func (v Viewport) ToPlane(p PixelCoord) mathutil.Vec2 {
	return v.PixelToNormalized(mathutil.Vec2{float64(p.X), float64(p.Y)})
}

// PixelWidth is the anti-aliasing half band in normalized units:
// 1 / sqrt(W² + H²).
func (v Viewport) PixelWidth() float64 {
	w, h := float64(v.Width), float64(v.Height)
	return 1 / math.Sqrt(w*w+h*h)
}

// Contains reports whether p lies on the grid.
func (v Viewport) Contains(p PixelCoord) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < v.Width && p.Y < v.Height
}
