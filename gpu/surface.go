// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/ggwin/frame"
)

// surfaceTarget holds the device textures mirroring one window's
// drawable and, while it preserves, its offscreen buffer.
type surfaceTarget struct {
	width, height uint32

	drawable     *wgpu.Texture
	drawableView *wgpu.TextureView

	offscreen     *wgpu.Texture
	offscreenView *wgpu.TextureView
	offscreenBind *wgpu.BindGroup
}

func newSurfaceTarget(device *wgpu.Device, width, height uint32) (*surfaceTarget, error) {
	tex, view, err := createTexture(device, "ggwin_drawable", width, height,
		gputypes.TextureUsageCopyDst|gputypes.TextureUsageCopySrc|gputypes.TextureUsageRenderAttachment)
	if err != nil {
		return nil, err
	}
	return &surfaceTarget{width: width, height: height, drawable: tex, drawableView: view}, nil
}

// ensureOffscreen creates the sampled offscreen texture and its blit
// bind group on first use.
func (t *surfaceTarget) ensureOffscreen(device *wgpu.Device, blit *blitPipeline) error {
	if t.offscreen != nil {
		return nil
	}
	tex, view, err := createTexture(device, "ggwin_offscreen", t.width, t.height,
		gputypes.TextureUsageCopyDst|gputypes.TextureUsageTextureBinding)
	if err != nil {
		return err
	}
	bg, err := blit.bindGroup(device, view)
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}
	t.offscreen, t.offscreenView, t.offscreenBind = tex, view, bg
	return nil
}

func (t *surfaceTarget) releaseOffscreen() {
	if t.offscreenBind != nil {
		t.offscreenBind.Release()
		t.offscreenBind = nil
	}
	if t.offscreenView != nil {
		t.offscreenView.Release()
		t.offscreenView = nil
	}
	if t.offscreen != nil {
		t.offscreen.Release()
		t.offscreen = nil
	}
}

func (t *surfaceTarget) release() {
	t.releaseOffscreen()
	t.drawableView.Release()
	t.drawable.Release()
}

func createTexture(device *wgpu.Device, label string, width, height uint32, usage gputypes.TextureUsage) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("gpu: create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("gpu: create %s view: %w", label, err)
	}
	return tex, view, nil
}

// upload writes the CPU pixels of src into dst.
func upload(queue *wgpu.Queue, dst *wgpu.Texture, src *frame.Texture) error {
	w, h := uint32(src.Width()), uint32(src.Height())
	return queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: dst, Aspect: gputypes.TextureAspectAll},
		src.Pixels(),
		&wgpu.ImageDataLayout{BytesPerRow: uint32(src.Stride()), RowsPerImage: h},
		&wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
}
