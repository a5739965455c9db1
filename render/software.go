// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/gogpu/marks"
	"github.com/gogpu/marks/internal/color"
)

// SoftwareRenderer is the CPU reference implementation. It reproduces
// the GPU fragment shading exactly: the same coverage ramp, discard
// threshold, output transfer, and blend equations, evaluated per pixel
// against the inverse camera transform.
//
// It exists both as a fallback when no GPU is available and as the
// ground truth the GPU output is compared against in tests.
type SoftwareRenderer struct {
	radiusMode marks.RadiusMode
}

var _ Renderer = (*SoftwareRenderer)(nil)

// NewSoftwareRenderer creates a CPU renderer.
func NewSoftwareRenderer(opts ...Option) *SoftwareRenderer {
	c := buildConfig(opts)
	return &SoftwareRenderer{radiusMode: c.radiusMode}
}

// Close implements Renderer. The software renderer holds no resources.
func (r *SoftwareRenderer) Close() error { return nil }

// RenderFrame draws the frame into dst: clear, then line segments,
// then circles on top.
func (r *SoftwareRenderer) RenderFrame(u marks.CameraUniform, frame Frame, dst *marks.Pixmap) error {
	if dst == nil {
		return ErrNilTarget
	}
	if dst.Width() == 0 || dst.Height() == 0 {
		return errors.New("render: empty target")
	}

	dst.Clear(frame.Clear)
	r.drawLines(u, frame.Lines, frame.LineTopology, dst)
	r.drawCircles(u, frame.Circles, dst)
	return nil
}

// outputTransfer applies the sRGB transfer to the RGB channels when
// the uniform requests it. Alpha is never converted. This mirrors the
// shader's output_transfer function. The encode runs once per covered
// pixel, so it goes through the byte lookup table; the target stores
// 8 bits per channel, which the table fully resolves.
func outputTransfer(u marks.CameraUniform, c marks.Color) marks.Color {
	if u.SRGBFlag == 0 {
		return c
	}
	return marks.Color{
		R: float32(color.LinearToSRGB8(c.R)) / 255,
		G: float32(color.LinearToSRGB8(c.G)) / 255,
		B: float32(color.LinearToSRGB8(c.B)) / 255,
		A: c.A,
	}
}

// worldToScreen projects a world position to pixel coordinates
// (origin top-left, Y down).
func worldToScreen(u marks.CameraUniform, p marks.Vec2, w, h float32) marks.Vec2 {
	ndc := u.ViewProj.MulVec4(marks.Vec4{X: p.X, Y: p.Y, W: 1})
	return marks.Vec2{
		X: (ndc.X + 1) / 2 * w,
		Y: (1 - ndc.Y) / 2 * h,
	}
}

// screenToWorld maps a pixel-space position back to world coordinates
// through the inverted view-projection matrix.
func screenToWorld(inv marks.Mat4, p marks.Vec2, w, h float32) marks.Vec2 {
	ndc := marks.Vec4{
		X: p.X/w*2 - 1,
		Y: 1 - p.Y/h*2,
		Z: 0,
		W: 1,
	}
	world := inv.MulVec4(ndc)
	return marks.Vec2{X: world.X, Y: world.Y}
}

// drawLines rasterizes the vertex stream as hard single-pixel
// segments with per-step color interpolation. No anti-aliasing,
// matching the GPU line pipeline.
func (r *SoftwareRenderer) drawLines(u marks.CameraUniform, verts []marks.LineVertex, topo marks.LineTopology, dst *marks.Pixmap) {
	if len(verts) < 2 {
		return
	}
	w, h := float32(dst.Width()), float32(dst.Height())

	step := 2
	if topo == marks.LineStrip {
		step = 1
	}
	for i := 0; i+1 < len(verts); i += step {
		a, b := verts[i], verts[i+1]
		sa := worldToScreen(u, a.Position, w, h)
		sb := worldToScreen(u, b.Position, w, h)
		r.drawSegment(u, sa, sb, a.Color, b.Color, dst)
	}
}

// drawSegment walks from sa to sb one pixel at a time, interpolating
// the endpoint colors by the parametric position along the segment.
func (r *SoftwareRenderer) drawSegment(u marks.CameraUniform, sa, sb marks.Vec2, ca, cb marks.Color, dst *marks.Pixmap) {
	dx := sb.X - sa.X
	dy := sb.Y - sa.Y
	steps := int(math32.Max(math32.Abs(dx), math32.Abs(dy)))
	if steps == 0 {
		dst.BlendPixel(pixelIndex(sa.X), pixelIndex(sa.Y), outputTransfer(u, ca))
		return
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		p := sa.Lerp(sb, t)
		src := outputTransfer(u, ca.Lerp(cb, t))
		dst.BlendPixel(pixelIndex(p.X), pixelIndex(p.Y), src)
	}
}

// drawCircles shades each circle instance over its screen bounding
// box with the fragment stage's exact coverage math.
func (r *SoftwareRenderer) drawCircles(u marks.CameraUniform, circles []marks.CircleInstance, dst *marks.Pixmap) {
	if len(circles) == 0 {
		return
	}
	inv, ok := u.ViewProj.Inverse()
	if !ok {
		return
	}
	w, h := float32(dst.Width()), float32(dst.Height())

	for i := range circles {
		c := &circles[i]
		// Half side of the camera-space quad the instance stretches
		// the unit quad over.
		half := c.RadiusScale * r.radiusMode.Scale() / 2
		if half <= 0 {
			continue
		}

		lo := worldToScreen(u, c.Center.Sub(marks.V2(half, half)), w, h)
		hi := worldToScreen(u, c.Center.Add(marks.V2(half, half)), w, h)
		// Screen Y is flipped relative to world Y.
		x0 := clampInt(int(math32.Floor(math32.Min(lo.X, hi.X))), 0, dst.Width()-1)
		x1 := clampInt(int(math32.Ceil(math32.Max(lo.X, hi.X))), 0, dst.Width()-1)
		y0 := clampInt(int(math32.Floor(math32.Min(lo.Y, hi.Y))), 0, dst.Height()-1)
		y1 := clampInt(int(math32.Ceil(math32.Max(lo.Y, hi.Y))), 0, dst.Height()-1)

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				center := marks.V2(float32(x)+0.5, float32(y)+0.5)
				world := screenToWorld(inv, center, w, h)
				// uv spans [-1, 1] across the quad so distance 1 is
				// the quad edge, as in the fragment shader.
				uv := world.Sub(c.Center).Div(half)
				coverage := marks.CircleCoverage(uv.Length())
				if coverage < marks.CoverageDiscardThreshold {
					continue
				}
				src := outputTransfer(u, c.Color)
				src.A = c.Color.A * coverage
				dst.BlendPixel(x, y, src)
			}
		}
	}
}

// pixelIndex floors a screen coordinate to its pixel index so
// slightly negative coordinates stay out of bounds instead of
// truncating onto pixel 0.
func pixelIndex(v float32) int {
	return int(math32.Floor(v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
