package raster

import (
	"fmt"
	"math"
	"strings"

	"aa-triangle-renderer/internal/mathutil"
)

// Color is a normalized RGB triple, each channel in [0, 1].
type Color struct {
	R, G, B float64
}

// White is the default triangle color.
var White = Color{1, 1, 1}

// RGB converts c to stored 8-bit channels, saturating.
func (c Color) RGB() RGB {
	return RGB{clamp255(c.R * 255), clamp255(c.G * 255), clamp255(c.B * 255)}
}

// ShadingPolicy selects how the signed triangle distance becomes intensity.
type ShadingPolicy int

const (
	// Banded writes full color well inside and interpolates only across the
	// band [-pw, pw]; pixels past +pw are left untouched.
	Banded ShadingPolicy = iota
	// Continuous maps clamp(0.5 - v/pw, 0, 1) over the whole grid and blends
	// wherever that coverage is non-zero.
	Continuous
)

func (p ShadingPolicy) String() string {
	switch p {
	case Banded:
		return "banded"
	case Continuous:
		return "continuous"
	}
	return fmt.Sprintf("ShadingPolicy(%d)", int(p))
}

// ParsePolicy parses "banded" or "continuous" (case-insensitive).
func ParsePolicy(s string) (ShadingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "banded", "band":
		return Banded, nil
	case "continuous", "coverage":
		return Continuous, nil
	}
	return 0, fmt.Errorf("raster: unknown shading policy %q", s)
}

// Intensity maps signed distance v to a blend factor in [0, 1]. write is
// false when the pixel must be left untouched.
func (p ShadingPolicy) Intensity(v, pw float64) (t float64, write bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	switch p {
	case Continuous:
		t = mathutil.Clamp01(0.5 - v/pw)
		return t, t > 0
	default:
		if v < -pw {
			return 1, true
		}
		if v < pw {
			return mathutil.Clamp01((pw - v) / (2 * pw)), true
		}
		return 0, false
	}
}

// Space selects the plane in which edge functions are evaluated.
type Space int

const (
	// SpaceNormalized evaluates at [-1,1] coordinates; pw = 1/sqrt(W²+H²).
	SpaceNormalized Space = iota
	// SpacePixel evaluates at grid coordinates with pw = sqrt(2), one pixel
	// diagonal. The band is therefore wider than in SpaceNormalized, whose pw
	// is about a third of a pixel on a square image: the two spaces are
	// separate anti-aliasing settings, not equivalent evaluations.
	SpacePixel
)

func (s Space) String() string {
	switch s {
	case SpaceNormalized:
		return "normalized"
	case SpacePixel:
		return "pixel"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// ParseSpace parses "normalized" or "pixel" (case-insensitive).
func ParseSpace(s string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normalized", "screen", "ndc":
		return SpaceNormalized, nil
	case "pixel", "image":
		return SpacePixel, nil
	}
	return 0, fmt.Errorf("raster: unknown evaluation space %q", s)
}

// Blend mixes target over bg by t: bg + (target - bg) * t per channel.
func Blend(bg RGB, target Color, t float64) RGB {
	tr, tg, tb := target.R*255, target.G*255, target.B*255
	return RGB{
		clamp255(float64(bg[0]) + (tr-float64(bg[0]))*t),
		clamp255(float64(bg[1]) + (tg-float64(bg[1]))*t),
		clamp255(float64(bg[2]) + (tb-float64(bg[2]))*t),
	}
}

func clamp255(v float64) uint8 {
	if v != v || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
