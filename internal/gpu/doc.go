//go:build !nogpu

// Package gpu renders circle and line primitives on the GPU through
// the gogpu/wgpu Pure Go WebGPU implementation (zero CGO).
//
// The renderer draws in two passes inside one render pass: line
// segments first, then circles as instanced camera-space quads shaded
// by a radial coverage function in the fragment shader. The target is
// an offscreen RGBA8 texture read back into a CPU pixmap after a
// fence wait.
//
// Shader sources are WGSL, assembled from shared chunks so both
// pipelines use identical camera, coverage, and output transfer code.
package gpu
