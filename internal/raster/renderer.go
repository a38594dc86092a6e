package raster

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"aa-triangle-renderer/internal/mathutil"
)

// Renderer rasterizes signed distance fields into a FrameBuffer.
type Renderer struct {
	Viewport Viewport
	Policy   ShadingPolicy
	Space    Space
	// Workers > 1 splits the rows into that many disjoint bands rendered
	// concurrently. Output is identical to the sequential loop.
	Workers int
}

// field is a signed distance evaluated per pixel, negative inside.
type field interface {
	At(p PixelCoord) float64
}

// DrawTriangle validates tri and shades every pixel of fb in row-major order.
func (r *Renderer) DrawTriangle(ctx context.Context, fb *FrameBuffer, tri Triangle) error {
	if err := r.checkBuffer(fb); err != nil {
		return err
	}
	if err := tri.Validate(r.Viewport); err != nil {
		return err
	}
	cov, err := NewCoverage(r.Viewport, r.Space, tri)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDegenerateTriangle, err)
	}
	return r.shade(ctx, fb, cov, cov.PixelWidth, tri.Color)
}

// DrawHalfSpace shades the half-plane on the inside of the directed line a→b.
func (r *Renderer) DrawHalfSpace(ctx context.Context, fb *FrameBuffer, a, b mathutil.Vec2, color Color) error {
	if err := r.checkBuffer(fb); err != nil {
		return err
	}
	pw := r.Viewport.PixelWidth()
	if r.Space == SpacePixel {
		a = r.Viewport.NormalizedToDenormalized(a)
		b = r.Viewport.NormalizedToDenormalized(b)
		pw = math.Sqrt2
	}
	e, err := NewEdge(a, b)
	if err != nil {
		return err
	}
	return r.shade(ctx, fb, halfSpace{edge: e, space: r.Space, vp: r.Viewport}, pw, color)
}

// DrawPoint sets the pixel containing the normalized coordinate c.
func (r *Renderer) DrawPoint(fb *FrameBuffer, c mathutil.Vec2, px RGB) {
	p := r.Viewport.ToPixel(c)
	fb.Set(p.X, p.Y, px)
}

func (r *Renderer) checkBuffer(fb *FrameBuffer) error {
	if fb == nil {
		return fmt.Errorf("raster: nil frame buffer")
	}
	if fb.Width != r.Viewport.Width || fb.Height != r.Viewport.Height {
		return fmt.Errorf("raster: buffer %dx%d does not match viewport %dx%d",
			fb.Width, fb.Height, r.Viewport.Width, r.Viewport.Height)
	}
	return nil
}

func (r *Renderer) shade(ctx context.Context, fb *FrameBuffer, f field, pw float64, color Color) error {
	h := fb.Height
	workers := r.Workers
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		return r.shadeRows(ctx, fb, f, pw, color, 0, h)
	}

	g, gctx := errgroup.WithContext(ctx)
	band := (h + workers - 1) / workers
	for y0 := 0; y0 < h; y0 += band {
		y1 := min(y0+band, h)
		g.Go(func() error {
			return r.shadeRows(gctx, fb, f, pw, color, y0, y1)
		})
	}
	return g.Wait()
}

// shadeRows owns rows [y0, y1) of fb exclusively.
func (r *Renderer) shadeRows(ctx context.Context, fb *FrameBuffer, f field, pw float64, color Color, y0, y1 int) error {
	policy := r.Policy
	w := fb.Width
	for y := y0; y < y1; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rowOff := y * w * 3
		for x := 0; x < w; x++ {
			t, write := policy.Intensity(f.At(PixelCoord{X: x, Y: y}), pw)
			if !write {
				continue
			}
			i := rowOff + x*3
			out := Blend(RGB{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]}, color, t)
			fb.Pix[i] = out[0]
			fb.Pix[i+1] = out[1]
			fb.Pix[i+2] = out[2]
		}
	}
	return nil
}

type halfSpace struct {
	edge  Edge
	space Space
	vp    Viewport
}

func (h halfSpace) At(p PixelCoord) float64 {
	if h.space == SpacePixel {
		return h.edge.Eval(mathutil.Vec2{float64(p.X), float64(p.Y)})
	}
	return h.edge.Eval(h.vp.ToPlane(p))
}
