package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aa-triangle-renderer/internal/batch"
	"aa-triangle-renderer/internal/output"
)

func runRender(ctx context.Context, s *settings) error {
	logger := loggerFromContext(ctx)
	cfg, err := s.load()
	if err != nil {
		return err
	}
	scene := cfg.MainScene()
	logger.Debug("render settings",
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"policy", cfg.Policy, "space", cfg.Space,
		"workers", cfg.Workers, "supersample", cfg.Supersample)

	prog := newProgress(logger)
	fb, err := batch.RenderScene(ctx, cfg, scene)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	logger.Infof("Writing image to file %s", scene.Output)
	if err := output.Write(scene.Output, fb); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Successfully wrote to %s", scene.Output))
	return nil
}

func newBatchCmd(s *settings) *cobra.Command {
	var manifest bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render every scene listed in the config file",
		Long:  `batch renders each [[scenes]] entry of the config to its own image, one triangle per image, using --workers scenes in parallel.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := s.load()
			if err != nil {
				return err
			}
			if len(cfg.Scenes) == 0 {
				return fmt.Errorf("batch: no scenes in config")
			}

			logger.Info("Rendering scenes", "count", len(cfg.Scenes), "workers", cfg.Workers, "dir", cfg.OutputDir)
			prog := newProgress(logger)
			results := batch.Run(ctx, cfg, cfg.Scenes, batch.Options{
				Progress: func(done, total int) {
					logger.Debugf("[%d/%d] scenes done", done, total)
				},
			})

			failed := 0
			for _, r := range results {
				if r.Success {
					logger.Debug("wrote", "scene", r.Name, "path", r.Output)
					continue
				}
				failed++
				logger.Error("scene failed", "scene", r.Name, "err", r.Error)
			}
			prog.done(fmt.Sprintf("Rendered %d/%d scenes", len(results)-failed, len(results)))

			if manifest {
				if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
					return fmt.Errorf("batch: %w", err)
				}
				path := filepath.Join(cfg.OutputDir, "manifest.json")
				if err := batch.WriteManifest(path, cfg, cfg.Scenes, results); err != nil {
					return fmt.Errorf("batch: write manifest %s: %w", path, err)
				}
				logger.Info("Manifest written", "path", path)
			}

			if failed > 0 {
				return fmt.Errorf("batch: %d of %d scenes failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&s.flags.OutputDir, "output-dir", "", "directory for scene images (default .)")
	cmd.Flags().BoolVar(&manifest, "manifest", true, "write manifest.json to the output directory")
	return cmd
}

func newHalfSpaceCmd(s *settings) *cobra.Command {
	var edge int
	var out string

	cmd := &cobra.Command{
		Use:   "halfspace",
		Short: "Render the half-plane of one triangle edge",
		Long:  `halfspace shades the inside of a single directed edge (0: A→B, 1: B→C, 2: C→A) of the configured triangle with the same anti-aliasing policy.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := s.load()
			if err != nil {
				return err
			}
			fb, err := batch.RenderHalfSpace(ctx, cfg, cfg.MainScene(), edge)
			if err != nil {
				return fmt.Errorf("halfspace: %w", err)
			}
			if err := output.Write(out, fb); err != nil {
				return err
			}
			logger.Infof("Successfully wrote to %s", out)
			return nil
		},
	}

	cmd.Flags().IntVar(&edge, "edge", 0, "edge index: 0 (A→B), 1 (B→C) or 2 (C→A)")
	cmd.Flags().StringVarP(&out, "output", "o", "halfspace.ppm", "output path")
	return cmd
}
