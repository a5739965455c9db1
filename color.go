package marks

import "github.com/gogpu/marks/internal/color"

// Color is a straight-alpha RGBA color with float32 components.
// Components are in linear light, not sRGB: the renderer blends in
// linear space and applies the sRGB transfer curve (when requested)
// only at output time.
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque linear-light color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a linear-light color with explicit alpha.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ColorFromSRGB8 converts 8-bit sRGB-encoded channels to a linear
// opaque color.
func ColorFromSRGB8(r, g, b uint8) Color {
	return Color{
		R: color.SRGB8ToLinear(r),
		G: color.SRGB8ToLinear(g),
		B: color.SRGB8ToLinear(b),
		A: 1,
	}
}

// ColorFromSRGBA8 converts 8-bit sRGB-encoded channels plus linear
// alpha to a linear color.
func ColorFromSRGBA8(r, g, b, a uint8) Color {
	c := ColorFromSRGB8(r, g, b)
	c.A = float32(a) / 255
	return c
}

// Lerp performs linear interpolation between two colors component-wise.
// t=0 returns c, t=1 returns d.
func (c Color) Lerp(d Color, t float32) Color {
	return Color{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}
