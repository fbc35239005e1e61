// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frame implements per-window frame synchronization: when a
// drawable is acquired from the swapchain, whether its contents are
// cleared or preserved, and when it is presented.
//
// A Synchronizer moves between two states:
//
//	Idle --Acquire--> Acquired --Present--> Idle
//
// At most one drawable is outstanding at a time. Acquire while Acquired
// returns nil, Present while Idle does nothing. Neither call blocks and
// neither raises: a frame that cannot be acquired is simply skipped.
//
// With preserve-drawing-buffer disabled, each acquired drawable is
// cleared to transparent before it is handed out, since swapchains
// recycle their images. With it enabled, callers draw into a stable
// offscreen texture that is copied onto the drawable at present time.
//
// Typical use, once per render opportunity:
//
//	if tex := sync.Acquire(); tex != nil {
//	    dc := tex.Context()
//	    dc.SetRGB(1, 0, 0)
//	    dc.DrawRectangle(20, 50, 150, 150)
//	    _ = dc.Fill()
//	    sync.Present()
//	}
package frame
