// Package marks renders anti-aliased 2D primitives — filled circles and
// colored line segments — through a shared camera transform.
//
// The package is split into a CPU-side data model (this package), a
// software rasterizer and GPU renderer (package render), and the GPU
// plumbing itself (internal/gpu). Circles are drawn as camera-space
// instanced quads shaded by a radial coverage function; lines are drawn
// as per-vertex colored segments. Both write straight-alpha RGBA8 output,
// optionally converted from linear light to the sRGB transfer curve when
// the target surface does not perform that conversion itself.
//
// All geometry and color values are float32, matching the GPU vertex and
// uniform layouts byte for byte.
package marks
