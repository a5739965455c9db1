// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"fmt"

	"github.com/gogpu/marks"
	"github.com/gogpu/marks/internal/gpu"
)

// GPURenderer draws frames through the WebGPU backend. Construction
// either opens its own Vulkan device or, with WithDevice, attaches to
// a device shared by the host application.
type GPURenderer struct {
	r *gpu.Renderer
}

var _ Renderer = (*GPURenderer)(nil)

// NewGPURenderer creates a GPU renderer. Fails when no usable GPU
// adapter is available; callers can fall back to NewSoftwareRenderer.
func NewGPURenderer(opts ...Option) (*GPURenderer, error) {
	c := buildConfig(opts)
	gpu.SetLogger(marks.Logger())

	var (
		r   *gpu.Renderer
		err error
	)
	if c.device != nil {
		r, err = gpu.NewWithProvider(c.device, c.radiusMode)
	} else {
		r, err = gpu.New(c.radiusMode)
	}
	if err != nil {
		return nil, fmt.Errorf("render: init GPU renderer: %w", err)
	}
	return &GPURenderer{r: r}, nil
}

// RenderFrame draws the frame on the GPU and reads the result back
// into dst.
func (g *GPURenderer) RenderFrame(u marks.CameraUniform, frame Frame, dst *marks.Pixmap) error {
	if dst == nil {
		return ErrNilTarget
	}
	return g.r.RenderFrame(u, frame.Clear, frame.Circles, frame.Lines, frame.LineTopology, dst)
}

// Close releases the GPU resources. Shared devices passed via
// WithDevice are not destroyed.
func (g *GPURenderer) Close() error {
	g.r.Close()
	return nil
}
