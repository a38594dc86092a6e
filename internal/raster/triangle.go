package raster

import (
	"errors"
	"fmt"
	"math"

	"aa-triangle-renderer/internal/mathutil"
)

// ErrDegenerateTriangle is returned when two vertices coincide on the grid.
var ErrDegenerateTriangle = errors.New("raster: degenerate triangle")

// Triangle is one rasterization call: three normalized vertices and a color.
type Triangle struct {
	A, B, C mathutil.Vec2
	Color   Color
}

// Swapped returns the triangle with the opposite winding (A, C, B).
func (t Triangle) Swapped() Triangle {
	return Triangle{A: t.A, B: t.C, C: t.B, Color: t.Color}
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() mathutil.Vec2 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3)
}

// Validate rejects triangles with non-finite vertices or with any two
// vertices falling into the same pixel of vp.
func (t Triangle) Validate(vp Viewport) error {
	verts := [3]mathutil.Vec2{t.A, t.B, t.C}
	for i, v := range verts {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vertex %d is %v", ErrDegenerateTriangle, i, v)
		}
	}
	px := [3]PixelCoord{vp.ToPixel(t.A), vp.ToPixel(t.B), vp.ToPixel(t.C)}
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if px[i] == px[j] {
			return fmt.Errorf("%w: vertices %d and %d share pixel (%d,%d)",
				ErrDegenerateTriangle, i, j, px[i].X, px[i].Y)
		}
	}
	return nil
}

// Coverage is the signed distance field of a triangle: negative inside,
// zero on the boundary, positive outside.
type Coverage struct {
	Edges      [3]Edge // A→B, B→C, C→A
	PixelWidth float64
	space      Space
	vp         Viewport
}

// NewCoverage composes the three directed edges of tri in the given space.
func NewCoverage(vp Viewport, space Space, tri Triangle) (*Coverage, error) {
	a, b, c := tri.A, tri.B, tri.C
	pw := vp.PixelWidth()
	if space == SpacePixel {
		a = vp.NormalizedToDenormalized(a)
		b = vp.NormalizedToDenormalized(b)
		c = vp.NormalizedToDenormalized(c)
		pw = math.Sqrt2
	}

	cov := &Coverage{PixelWidth: pw, space: space, vp: vp}
	pts := [3]mathutil.Vec2{a, b, c}
	for i := 0; i < 3; i++ {
		e, err := NewEdge(pts[i], pts[(i+1)%3])
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		cov.Edges[i] = e
	}
	return cov, nil
}

// Eval returns the signed triangle distance at u. A point is inside only if it
// is inside all three half-planes, so the largest edge value governs.
func (c *Coverage) Eval(u mathutil.Vec2) float64 {
	return math.Max(math.Max(c.Edges[0].Eval(u), c.Edges[1].Eval(u)), c.Edges[2].Eval(u))
}

// At evaluates the pixel p in the coverage's space.
func (c *Coverage) At(p PixelCoord) float64 {
	if c.space == SpacePixel {
		return c.Eval(mathutil.Vec2{float64(p.X), float64(p.Y)})
	}
	return c.Eval(c.vp.ToPlane(p))
}
