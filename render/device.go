// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gpucontext"

// DeviceHandle provides GPU device access from the host application.
//
// This is the integration point between marks and GPU frameworks like
// gogpu: the host implements DeviceHandle and passes it via
// WithDevice, so the renderer shares the host's device and queue
// instead of creating its own.
//
// Key principle: the renderer RECEIVES the device from the host, it
// does not own it. Close never destroys a shared device.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, giving the
// interface a marks-specific name while staying fully compatible with
// the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider
