package raster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aa-triangle-renderer/internal/mathutil"
)

func renderReference(t *testing.T, r *Renderer, tri Triangle) *FrameBuffer {
	t.Helper()
	fb := NewFrameBuffer(r.Viewport.Width, r.Viewport.Height)
	require.NoError(t, r.DrawTriangle(context.Background(), fb, tri))
	return fb
}

func countCovered(fb *FrameBuffer) int {
	n := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if px, _ := fb.At(x, y); px != (RGB{}) {
				n++
			}
		}
	}
	return n
}

func TestDrawTriangleCoversCentroid(t *testing.T) {
	for _, policy := range []ShadingPolicy{Banded, Continuous} {
		for _, space := range []Space{SpaceNormalized, SpacePixel} {
			t.Run(policy.String()+"/"+space.String(), func(t *testing.T) {
				r := &Renderer{Viewport: testViewport, Policy: policy, Space: space}
				fb := renderReference(t, r, referenceTriangle)

				c := testViewport.ToPixel(referenceTriangle.Centroid())
				px, ok := fb.At(c.X, c.Y)
				require.True(t, ok)
				assert.Equal(t, RGB{255, 255, 255}, px)

				for _, far := range []PixelCoord{{0, 0}, {testWidth - 1, testHeight - 1}, {testWidth - 1, 0}, {0, testHeight - 1}} {
					px, _ := fb.At(far.X, far.Y)
					assert.Equal(t, RGB{}, px, "pixel %v", far)
				}
			})
		}
	}
}

func TestDrawTriangleColor(t *testing.T) {
	r := &Renderer{Viewport: testViewport}
	tri := referenceTriangle
	tri.Color = Color{1, 0.5, 0}
	fb := renderReference(t, r, tri)

	px, _ := fb.At(101, 101)
	assert.Equal(t, RGB{255, 128, 0}, px)
}

func TestDrawTriangleAntialiasBand(t *testing.T) {
	// Pixel space widens the band to a pixel diagonal, so partially covered
	// gray pixels must appear along the edges.
	r := &Renderer{Viewport: testViewport, Policy: Continuous, Space: SpacePixel}
	fb := renderReference(t, r, referenceTriangle)

	gray := 0
	for i := 0; i < len(fb.Pix); i += 3 {
		if v := fb.Pix[i]; v > 0 && v < 255 {
			gray++
		}
	}
	assert.Positive(t, gray)
}

func TestDrawTriangleDeterministic(t *testing.T) {
	r := &Renderer{Viewport: testViewport, Policy: Banded}
	a := renderReference(t, r, referenceTriangle)
	b := renderReference(t, r, referenceTriangle)
	assert.True(t, a.Equal(b))
}

func TestDrawTriangleParallelMatchesSequential(t *testing.T) {
	for _, policy := range []ShadingPolicy{Banded, Continuous} {
		seq := renderReference(t, &Renderer{Viewport: testViewport, Policy: policy}, referenceTriangle)
		for _, workers := range []int{2, 3, 8, 500} {
			par := renderReference(t, &Renderer{Viewport: testViewport, Policy: policy, Workers: workers}, referenceTriangle)
			assert.True(t, seq.Equal(par), "policy %s workers %d", policy, workers)
		}
	}
}

func TestDrawTriangleSwappedWinding(t *testing.T) {
	r := &Renderer{Viewport: testViewport, Policy: Banded}
	fwd := renderReference(t, r, referenceTriangle)
	rev := renderReference(t, r, referenceTriangle.Swapped())

	assert.False(t, fwd.Equal(rev))
	c := testViewport.ToPixel(referenceTriangle.Centroid())
	px, _ := rev.At(c.X, c.Y)
	assert.Equal(t, RGB{}, px)
	assert.Positive(t, countCovered(fwd))
	assert.Zero(t, countCovered(rev))
}

func TestDrawTriangleDegenerate(t *testing.T) {
	r := &Renderer{Viewport: testViewport}
	fb := NewFrameBuffer(testWidth, testHeight)
	tri := Triangle{A: mathutil.Vec2{0.3, 0.3}, B: mathutil.Vec2{0.3, 0.3}, C: mathutil.Vec2{-0.5, 0.5}, Color: White}

	err := r.DrawTriangle(context.Background(), fb, tri)
	assert.ErrorIs(t, err, ErrDegenerateTriangle)
	assert.Zero(t, countCovered(fb))
}

func TestDrawTriangleBufferMismatch(t *testing.T) {
	r := &Renderer{Viewport: testViewport}
	err := r.DrawTriangle(context.Background(), NewFrameBuffer(10, 10), referenceTriangle)
	assert.Error(t, err)
	assert.Error(t, r.DrawTriangle(context.Background(), nil, referenceTriangle))
}

func TestDrawTriangleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		r := &Renderer{Viewport: testViewport, Workers: workers}
		err := r.DrawTriangle(ctx, NewFrameBuffer(testWidth, testHeight), referenceTriangle)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestDrawTriangleBlendsOverBackground(t *testing.T) {
	r := &Renderer{Viewport: testViewport}
	fb := NewFrameBuffer(testWidth, testHeight)
	bg := RGB{0, 0, 200}
	fb.Fill(bg)
	require.NoError(t, r.DrawTriangle(context.Background(), fb, referenceTriangle))

	px, _ := fb.At(0, 0)
	assert.Equal(t, bg, px)
	px, _ = fb.At(101, 101)
	assert.Equal(t, RGB{255, 255, 255}, px)
}

func TestDrawHalfSpaceComplement(t *testing.T) {
	vp := Viewport{Width: 64, Height: 64}
	r := &Renderer{Viewport: vp, Policy: Banded}
	a := mathutil.Vec2{-1, -0.3}
	b := mathutil.Vec2{1, 0.4}

	fwd := NewFrameBuffer(vp.Width, vp.Height)
	require.NoError(t, r.DrawHalfSpace(context.Background(), fwd, a, b, White))
	rev := NewFrameBuffer(vp.Width, vp.Height)
	require.NoError(t, r.DrawHalfSpace(context.Background(), rev, b, a, White))

	for y := 0; y < vp.Height; y++ {
		for x := 0; x < vp.Width; x++ {
			f, _ := fwd.At(x, y)
			g, _ := rev.At(x, y)
			assert.True(t, f != (RGB{}) || g != (RGB{}), "pixel (%d,%d) covered by neither side", x, y)
		}
	}
	// Top row is on one side only.
	top, _ := fwd.At(32, 0)
	topRev, _ := rev.At(32, 0)
	assert.NotEqual(t, top, topRev)
}

func TestDrawHalfSpaceDegenerate(t *testing.T) {
	r := &Renderer{Viewport: testViewport}
	fb := NewFrameBuffer(testWidth, testHeight)
	p := mathutil.Vec2{0.1, 0.1}
	assert.ErrorIs(t, r.DrawHalfSpace(context.Background(), fb, p, p, White), ErrDegenerateEdge)
}

func TestDrawPoint(t *testing.T) {
	r := &Renderer{Viewport: testViewport}
	fb := NewFrameBuffer(testWidth, testHeight)
	r.DrawPoint(fb, mathutil.Vec2{1, 1}, RGB{255, 255, 255})
	r.DrawPoint(fb, mathutil.Vec2{3, 3}, RGB{255, 255, 255})

	px, _ := fb.At(testWidth-1, testHeight-1)
	assert.Equal(t, RGB{255, 255, 255}, px)
	assert.Equal(t, 1, countCovered(fb))
}
