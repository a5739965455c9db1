// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render exposes the frame renderers for marks primitives.
//
// Two implementations share one contract: SoftwareRenderer rasterizes
// on the CPU with the exact shading math of the GPU fragment stage,
// and GPURenderer (available unless built with the nogpu tag) submits
// the same frame through WebGPU. Both take a camera uniform, a Frame
// of primitives, and a destination pixmap, so outputs are directly
// comparable pixel by pixel.
package render
