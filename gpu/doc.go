// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu opens the GPU device and queue shared by every window of
// an application.
//
// The device is created once, through gogpu/wgpu, and is read-mostly
// afterward: windows only enqueue their own present work through
// [Device.Submit], which uploads each presented frame into device
// textures kept per window and, for windows that preserve their drawing
// buffer, blits the offscreen copy onto the drawable in a render pass.
// [Device] implements gpucontext.DeviceProvider so it
// can be handed to gg and other gogpu libraries.
//
//	dev, err := gpu.Open()
//	if err != nil {
//	    return err // fatal: nothing can render
//	}
//	defer dev.Release()
package gpu
