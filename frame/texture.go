// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/ggwin/internal/logging"
)

// Texture is a CPU-backed RGBA8 drawing target handed to callers for
// one frame. Pixels are premultiplied RGBA, 4 bytes per pixel.
//
// Draw through Context, which renders with gg directly into the
// texture's pixels.
type Texture struct {
	pm  *gg.Pixmap
	ctx *gg.Context
}

// NewTexture allocates a transparent texture.
func NewTexture(width, height int) *Texture {
	return &Texture{pm: gg.NewPixmap(width, height)}
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.pm.Width() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.pm.Height() }

// Format returns the pixel format (RGBA8).
func (t *Texture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *Texture) Pixels() []byte { return t.pm.Data() }

// Stride returns the number of bytes per row.
func (t *Texture) Stride() int { return t.pm.Width() * 4 }

// Pixmap returns the underlying gg pixmap.
func (t *Texture) Pixmap() *gg.Pixmap { return t.pm }

// Context returns a gg drawing context that renders into this texture.
// The context is created on first use. A texture handed out by
// Synchronizer.Acquire always starts with a new context, so drawing
// state (transform, colors, the current path) never carries over from
// an earlier frame.
func (t *Texture) Context() *gg.Context {
	if t.ctx == nil {
		t.ctx = gg.NewContextForPixmap(t.pm)
	}
	return t.ctx
}

// RGBA returns an *image.RGBA that shares memory with the texture.
func (t *Texture) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    t.pm.Data(),
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width(), t.Height()),
	}
}

// At returns the straight-alpha color of one pixel.
func (t *Texture) At(x, y int) gg.RGBA { return t.pm.GetPixel(x, y) }

// Clear sets every pixel to c.
func (t *Texture) Clear(c color.Color) {
	img := t.RGBA()
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	t.pm.NotifyPixelsChanged()
}

// CopyFrom replaces the overlapping region of t with src and returns the
// copied rectangle. Sizes may differ.
func (t *Texture) CopyFrom(src *Texture) image.Rectangle {
	r := image.Rect(0, 0, min(t.Width(), src.Width()), min(t.Height(), src.Height()))
	draw.Copy(t.RGBA(), image.Point{}, src.RGBA(), r, draw.Src, nil)
	t.pm.NotifyPixelsChanged()
	return r
}

// flush completes pending drawing on the context, if one was created.
func (t *Texture) flush() {
	if t.ctx == nil {
		return
	}
	if err := t.ctx.FlushGPU(); err != nil {
		logging.Logger().Warn("frame: flush failed", "err", err)
	}
}

// release closes the drawing context. Pixels are kept.
func (t *Texture) release() {
	if t.ctx == nil {
		return
	}
	if err := t.ctx.Close(); err != nil {
		logging.Logger().Warn("frame: context close failed", "err", err)
	}
	t.ctx = nil
}

func (t *Texture) sameSize(w, h int) bool {
	return t.Width() == w && t.Height() == h
}

var _ gpucontext.Texture = (*Texture)(nil)
