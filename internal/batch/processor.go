package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"aa-triangle-renderer/internal/config"
	"aa-triangle-renderer/internal/mathutil"
	"aa-triangle-renderer/internal/output"
	"aa-triangle-renderer/internal/postprocess"
	"aa-triangle-renderer/internal/raster"
	"aa-triangle-renderer/internal/texture"
)

// Result holds the outcome of rendering one scene.
type Result struct {
	Name    string
	Output  string
	Success bool
	Error   string
}

// Options tunes a batch run.
type Options struct {
	// Progress, if set, is called after each scene finishes.
	Progress func(done, total int)
}

// RenderScene rasterizes one scene into a new cfg.Width×cfg.Height buffer:
// optional background, the triangle, then the supersample downsample.
func RenderScene(ctx context.Context, cfg config.Config, scene config.Scene) (*raster.FrameBuffer, error) {
	tri, err := scene.Triangle()
	if err != nil {
		return nil, err
	}

	vp := postprocess.SupersampledViewport(cfg.Width, cfg.Height, cfg.Supersample)
	r, err := cfg.Renderer(vp)
	if err != nil {
		return nil, err
	}

	fb := raster.NewFrameBuffer(vp.Width, vp.Height)
	if scene.Background != "" {
		if err := texture.LoadInto(fb, scene.Background); err != nil {
			return nil, err
		}
	}
	if err := r.DrawTriangle(ctx, fb, tri); err != nil {
		return nil, err
	}
	if cfg.MarkVertices {
		for _, v := range []mathutil.Vec2{tri.A, tri.B, tri.C} {
			r.DrawPoint(fb, v, raster.White.RGB())
		}
	}

	return finish(cfg, vp, fb), nil
}

// RenderHalfSpace renders the half-plane inside edge i (0: A→B, 1: B→C,
// 2: C→A) of the scene's triangle, for inspecting a single edge function.
func RenderHalfSpace(ctx context.Context, cfg config.Config, scene config.Scene, edge int) (*raster.FrameBuffer, error) {
	tri, err := scene.Triangle()
	if err != nil {
		return nil, err
	}
	if edge < 0 || edge > 2 {
		return nil, fmt.Errorf("edge index %d outside [0,2]", edge)
	}
	verts := [3]mathutil.Vec2{tri.A, tri.B, tri.C}

	vp := postprocess.SupersampledViewport(cfg.Width, cfg.Height, cfg.Supersample)
	r, err := cfg.Renderer(vp)
	if err != nil {
		return nil, err
	}
	fb := raster.NewFrameBuffer(vp.Width, vp.Height)
	if err := r.DrawHalfSpace(ctx, fb, verts[edge], verts[(edge+1)%3], tri.Color); err != nil {
		return nil, err
	}
	return finish(cfg, vp, fb), nil
}

func finish(cfg config.Config, vp raster.Viewport, fb *raster.FrameBuffer) *raster.FrameBuffer {
	if vp.Width != cfg.Width || vp.Height != cfg.Height {
		return postprocess.Downsample(fb, cfg.Width, cfg.Height)
	}
	return fb
}

// Run renders all scenes using a pool of cfg.Workers goroutines. Each scene
// is rendered sequentially inside its worker.
func Run(ctx context.Context, cfg config.Config, scenes []config.Scene, opts Options) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	sceneCfg := cfg
	sceneCfg.Workers = 1

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(ctx, sceneCfg, scenes[idx])
				n := processed.Add(1)
				if opts.Progress != nil {
					opts.Progress(int(n), total)
				}
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()

	return results
}

func processScene(ctx context.Context, cfg config.Config, scene config.Scene) Result {
	res := Result{Name: scene.Name, Output: scene.Output}
	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	fb, err := RenderScene(ctx, cfg, scene)
	if err != nil {
		res.Error = fmt.Sprintf("render: %v", err)
		return res
	}
	if err := output.Write(scene.Output, fb); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}
