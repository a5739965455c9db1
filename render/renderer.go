// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/marks"
)

// ErrNilTarget is returned by RenderFrame when dst is nil.
var ErrNilTarget = errors.New("render: nil target")

// Frame holds everything drawn in one render pass. Line segments draw
// first, circles composite on top.
type Frame struct {
	// Clear is the background color the target is filled with before
	// drawing. It is written verbatim, without the output transfer.
	Clear marks.Color

	// Circles are the circle instances to draw.
	Circles []marks.CircleInstance

	// Lines is the line vertex stream, assembled into segments
	// according to LineTopology.
	Lines []marks.LineVertex

	// LineTopology selects list or strip assembly for Lines.
	LineTopology marks.LineTopology
}

// Renderer draws frames of marks primitives to a pixmap.
//
// Renderers are safe for repeated use: the camera uniform, frame
// contents, and target size may change between calls. They are NOT
// safe for concurrent use from multiple goroutines.
type Renderer interface {
	// RenderFrame draws the frame under the given camera uniform into
	// dst, replacing its previous contents.
	RenderFrame(u marks.CameraUniform, frame Frame, dst *marks.Pixmap) error

	// Close releases any resources held by the renderer. The renderer
	// must not be used after Close.
	Close() error
}

// Option configures a renderer constructor.
type Option func(*config)

type config struct {
	radiusMode marks.RadiusMode
	device     DeviceHandle
}

// WithRadiusMode sets how CircleInstance.RadiusScale is interpreted.
// The default is marks.RadiusModeRadius.
func WithRadiusMode(mode marks.RadiusMode) Option {
	return func(c *config) { c.radiusMode = mode }
}

// WithDevice makes the GPU renderer use a shared device from the host
// application instead of creating its own. Beyond the DeviceHandle
// method set the provider must expose HalDevice() any and
// HalQueue() any returning the HAL device and queue, as gogpu
// providers do.
//
// The software renderer ignores this option.
func WithDevice(provider DeviceHandle) Option {
	return func(c *config) { c.device = provider }
}

func buildConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
