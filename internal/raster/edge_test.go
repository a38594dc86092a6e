package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aa-triangle-renderer/internal/mathutil"
)

func TestEdgeDistance(t *testing.T) {
	// Horizontal line y = 1 running left to right.
	e, err := NewEdge(mathutil.Vec2{0, 1}, mathutil.Vec2{4, 1})
	require.NoError(t, err)

	assert.InDelta(t, 0, e.Eval(mathutil.Vec2{2, 1}), 1e-12)
	assert.InDelta(t, -2, e.Eval(mathutil.Vec2{7, 3}), 1e-12)
	assert.InDelta(t, 3, e.Eval(mathutil.Vec2{-5, -2}), 1e-12)
	assert.InDelta(t, 1, e.Normal.Len(), 1e-12)
}

func TestEdgeReverseFlipsSign(t *testing.T) {
	a := mathutil.Vec2{-0.3, 0.2}
	b := mathutil.Vec2{0.7, -0.4}
	fwd, err := NewEdge(a, b)
	require.NoError(t, err)
	rev, err := NewEdge(b, a)
	require.NoError(t, err)

	for _, u := range []mathutil.Vec2{{0, 0}, {1, 1}, {-1, 0.5}, {0.25, -0.9}} {
		assert.InDelta(t, -fwd.Eval(u), rev.Eval(u), 1e-12, "point %v", u)
	}
}

func TestEdgeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		a, b mathutil.Vec2
	}{
		{"coincident", mathutil.Vec2{0.5, 0.5}, mathutil.Vec2{0.5, 0.5}},
		{"nan", mathutil.Vec2{math.NaN(), 0}, mathutil.Vec2{1, 1}},
		{"inf", mathutil.Vec2{0, 0}, mathutil.Vec2{math.Inf(1), 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEdge(tt.a, tt.b)
			assert.ErrorIs(t, err, ErrDegenerateEdge)
		})
	}
}
