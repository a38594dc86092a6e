package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"aa-triangle-renderer/internal/mathutil"
	"aa-triangle-renderer/internal/raster"
)

// Defaults used by Resolve.
const (
	DefaultWidth  = 203
	DefaultHeight = 203
	DefaultOutput = "output"
	DefaultPolicy = "banded"
	DefaultSpace  = "normalized"
)

// DefaultVertices is a clockwise triangle around the image center.
var DefaultVertices = [][2]float64{{0, -0.5}, {0.5, 0}, {-0.5, 0.5}}

// DefaultColor is white.
var DefaultColor = []float64{1, 1, 1}

// Config holds the output settings and the scene(s) to render.
type Config struct {
	// Image
	Width       int    `json:"width" toml:"width"`
	Height      int    `json:"height" toml:"height"`
	Output      string `json:"output" toml:"output"`
	OutputDir   string `json:"output_dir" toml:"output_dir"`
	Background  string `json:"background" toml:"background"`
	Supersample int    `json:"supersample" toml:"supersample"`

	// MarkVertices sets the pixel under each vertex to white after shading.
	MarkVertices bool `json:"mark_vertices" toml:"mark_vertices"`

	// Shading
	Policy  string `json:"policy" toml:"policy"`
	Space   string `json:"space" toml:"space"`
	Workers int    `json:"workers" toml:"workers"`

	// Single-scene triangle; also the fallback for scenes that omit them.
	Vertices [][2]float64 `json:"vertices" toml:"vertices"`
	Color    []float64    `json:"color" toml:"color"`

	Scenes []Scene `json:"scenes" toml:"scenes"`
}

// Scene is one image in a batch: a single triangle and its destination.
type Scene struct {
	Name       string       `json:"name" toml:"name"`
	Output     string       `json:"output" toml:"output"`
	Vertices   [][2]float64 `json:"vertices" toml:"vertices"`
	Color      []float64    `json:"color" toml:"color"`
	Background string       `json:"background" toml:"background"`
}

// Load reads a JSON or TOML (by extension) config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width        int
	Height       int
	Output       string
	OutputDir    string
	Background   string
	Supersample  int
	Policy       string
	Space        string
	Workers      int
	MarkVertices bool
}

// Resolve applies flags and fills any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Policy != "" {
		c.Policy = flags.Policy
	}
	if flags.Space != "" {
		c.Space = flags.Space
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.MarkVertices {
		c.MarkVertices = true
	}

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Policy == "" {
		c.Policy = DefaultPolicy
	}
	if c.Space == "" {
		c.Space = DefaultSpace
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if len(c.Vertices) == 0 {
		c.Vertices = append([][2]float64(nil), DefaultVertices...)
	}
	if len(c.Color) == 0 {
		c.Color = append([]float64(nil), DefaultColor...)
	}

	// Scenes inherit the top-level triangle, color and background.
	for i := range c.Scenes {
		s := &c.Scenes[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("scene-%d", i)
		}
		if s.Output == "" {
			s.Output = filepath.Join(c.OutputDir, s.Name+".ppm")
		} else if !filepath.IsAbs(s.Output) {
			s.Output = filepath.Join(c.OutputDir, s.Output)
		}
		if len(s.Vertices) == 0 {
			s.Vertices = c.Vertices
		}
		if len(s.Color) == 0 {
			s.Color = c.Color
		}
		if s.Background == "" {
			s.Background = c.Background
		}
	}
}

// Validate reports every problem that would stop a render.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path is empty"))
	}
	if _, err := raster.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := raster.ParseSpace(c.Space); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.MainScene().Triangle(); err != nil {
		errs = append(errs, err)
	}
	for _, s := range c.Scenes {
		if _, err := s.Triangle(); err != nil {
			errs = append(errs, fmt.Errorf("scene %s: %w", s.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// MainScene returns the single scene described by the top-level fields.
func (c Config) MainScene() Scene {
	return Scene{
		Name:       "main",
		Output:     c.Output,
		Vertices:   c.Vertices,
		Color:      c.Color,
		Background: c.Background,
	}
}

// Renderer builds the raster settings for a width×height viewport.
func (c Config) Renderer(vp raster.Viewport) (*raster.Renderer, error) {
	policy, err := raster.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}
	space, err := raster.ParseSpace(c.Space)
	if err != nil {
		return nil, err
	}
	return &raster.Renderer{Viewport: vp, Policy: policy, Space: space, Workers: c.Workers}, nil
}

// Triangle converts the scene's vertices and color.
func (s Scene) Triangle() (raster.Triangle, error) {
	if len(s.Vertices) != 3 {
		return raster.Triangle{}, fmt.Errorf("triangle needs 3 vertices, got %d", len(s.Vertices))
	}
	if len(s.Color) != 3 {
		return raster.Triangle{}, fmt.Errorf("color needs 3 channels, got %d", len(s.Color))
	}
	for i, ch := range s.Color {
		if ch < 0 || ch > 1 {
			return raster.Triangle{}, fmt.Errorf("color channel %d = %g outside [0,1]", i, ch)
		}
	}
	return raster.Triangle{
		A:     mathutil.Vec2(s.Vertices[0]),
		B:     mathutil.Vec2(s.Vertices[1]),
		C:     mathutil.Vec2(s.Vertices[2]),
		Color: raster.Color{R: s.Color[0], G: s.Color[1], B: s.Color[2]},
	}, nil
}
