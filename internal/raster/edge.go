package raster

import (
	"errors"
	"fmt"

	"aa-triangle-renderer/internal/mathutil"
)

// ErrDegenerateEdge is returned for an edge whose endpoints coincide.
var ErrDegenerateEdge = errors.New("raster: degenerate edge")

// Edge is the signed-distance (half-space) function of the directed line
// through two points. The unit normal is the edge tangent rotated by -90°,
// so a clockwise triangle on the y-down screen evaluates negative inside.
type Edge struct {
	Origin mathutil.Vec2
	Normal mathutil.Vec2
}

// NewEdge builds the half-space function for the line a→b.
func NewEdge(a, b mathutil.Vec2) (Edge, error) {
	if !a.IsFinite() || !b.IsFinite() {
		return Edge{}, fmt.Errorf("%w: non-finite endpoint %v→%v", ErrDegenerateEdge, a, b)
	}
	n := b.Sub(a).Normalize()
	if n == (mathutil.Vec2{}) {
		return Edge{}, fmt.Errorf("%w: %v→%v", ErrDegenerateEdge, a, b)
	}
	return Edge{Origin: a, Normal: n.Perp()}, nil
}

// Eval returns the signed distance from u to the line. Negative values lie on
// the inside half-plane.
func (e Edge) Eval(u mathutil.Vec2) float64 {
	return u.Sub(e.Origin).Dot(e.Normal)
}
