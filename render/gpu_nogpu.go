// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nogpu

package render

import (
	"errors"

	"github.com/gogpu/marks"
)

// ErrGPUDisabled is returned by NewGPURenderer in nogpu builds.
var ErrGPUDisabled = errors.New("render: GPU support disabled by nogpu build tag")

// GPURenderer is a stub in nogpu builds; NewGPURenderer always fails.
type GPURenderer struct{}

var _ Renderer = (*GPURenderer)(nil)

// NewGPURenderer returns ErrGPUDisabled in nogpu builds.
func NewGPURenderer(_ ...Option) (*GPURenderer, error) {
	return nil, ErrGPUDisabled
}

// RenderFrame returns ErrGPUDisabled in nogpu builds.
func (g *GPURenderer) RenderFrame(marks.CameraUniform, Frame, *marks.Pixmap) error {
	return ErrGPUDisabled
}

// Close is a no-op in nogpu builds.
func (g *GPURenderer) Close() error { return nil }
