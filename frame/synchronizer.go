// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"image"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/internal/logging"
)

// State is the acquisition state of a Synchronizer.
type State uint8

const (
	// Idle means no drawable is held.
	Idle State = iota
	// Acquired means a drawable is held and its texture was handed out.
	Acquired
)

func (s State) String() string {
	if s == Acquired {
		return "Acquired"
	}
	return "Idle"
}

// Presentation is one presented frame handed to a Submitter.
type Presentation struct {
	Label string

	// Surface identifies the presenting window. It is stable for the
	// window's lifetime.
	Surface any

	// Drawable holds the pixels shown for this frame.
	Drawable *Texture

	// Offscreen is the preserved drawing buffer the frame was drawn
	// into, or nil when the drawing buffer is discarded.
	Offscreen *Texture
}

// Submitter enqueues GPU work for a presented frame. It is typically the
// application's shared device.
type Submitter interface {
	Submit(p Presentation) error
}

// SurfaceReleaser is implemented by Submitters that keep resources per
// surface. ReleaseSurface is called once when a Synchronizer is released.
type SurfaceReleaser interface {
	ReleaseSurface(surface any)
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithSubmitter sets the GPU submitter invoked before each present.
func WithSubmitter(sub Submitter) Option {
	return func(s *Synchronizer) {
		s.submitter = sub
	}
}

// WithPreserveDrawingBuffer sets the initial preserve-drawing-buffer mode.
func WithPreserveDrawingBuffer(preserve bool) Option {
	return func(s *Synchronizer) {
		s.preserve = preserve
	}
}

// Synchronizer owns the acquire/present cycle of one window.
//
// Synchronizer is NOT safe for concurrent use. It is driven from the
// thread that runs the application loop.
type Synchronizer struct {
	window    gpucontext.WindowProvider
	chain     Swapchain
	submitter Submitter

	preserve bool

	state      State
	drawable   *Drawable
	target     *Texture
	preserving bool
	offscreen  *Texture

	frames   uint64
	released bool
}

// New creates a Synchronizer that sizes drawables from window and
// obtains them from chain.
func New(window gpucontext.WindowProvider, chain Swapchain, opts ...Option) *Synchronizer {
	s := &Synchronizer{window: window, chain: chain}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PhysicalSize converts logical points to physical pixels.
// A non-positive scale is treated as 1.
func PhysicalSize(width, height int, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return int(math.Round(float64(width) * scale)), int(math.Round(float64(height) * scale))
}

// State returns the current state.
func (s *Synchronizer) State() State { return s.state }

// PreserveDrawingBuffer reports the requested preserve mode.
func (s *Synchronizer) PreserveDrawingBuffer() bool { return s.preserve }

// SetPreserveDrawingBuffer changes the preserve mode. The new mode
// applies from the next Acquire; a frame in flight keeps the mode it was
// acquired with. Turning preservation off discards the preserved
// pixels.
func (s *Synchronizer) SetPreserveDrawingBuffer(preserve bool) {
	s.preserve = preserve
	if !preserve && s.state == Idle && s.offscreen != nil {
		s.offscreen.release()
		s.offscreen = nil
	}
}

// Frames returns the number of frames presented.
func (s *Synchronizer) Frames() uint64 { return s.frames }

// DrawableSize returns the size the next drawable would have.
func (s *Synchronizer) DrawableSize() (int, int) {
	w, h := s.window.Size()
	return PhysicalSize(w, h, s.window.ScaleFactor())
}

// Acquire obtains the next drawable and returns the texture to draw into
// for this frame. It returns nil if a drawable is already outstanding,
// the window has a zero dimension, or the swapchain has no image ready.
func (s *Synchronizer) Acquire() *Texture {
	if s.released {
		return nil
	}
	if s.state == Acquired {
		logging.Logger().Debug("frame: acquire while a drawable is outstanding")
		return nil
	}

	w, h := s.DrawableSize()
	if w <= 0 || h <= 0 {
		return nil
	}

	d, err := s.chain.NextDrawable(w, h)
	if err != nil || d == nil {
		logging.Logger().Debug("frame: no drawable", "width", w, "height", h, "err", err)
		return nil
	}

	s.preserving = s.preserve
	if !s.preserving && s.offscreen != nil {
		s.offscreen.release()
		s.offscreen = nil
	}
	if s.preserving {
		if s.offscreen == nil || !s.offscreen.sameSize(w, h) {
			if s.offscreen != nil {
				s.offscreen.release()
			}
			s.offscreen = NewTexture(w, h)
		}
		s.target = s.offscreen
	} else {
		d.tex.Clear(image.Transparent)
		s.target = d.tex
	}

	// Every frame starts from the default drawing state, whichever
	// image the swapchain handed out.
	s.target.release()

	s.drawable = d
	s.state = Acquired
	return s.target
}

// Present displays the outstanding frame. It does nothing when no
// drawable is outstanding. The synchronizer returns to Idle even if
// submission or presentation fails.
func (s *Synchronizer) Present() {
	if s.state != Acquired {
		return
	}
	d := s.drawable
	defer func() {
		s.drawable = nil
		s.target = nil
		s.state = Idle
	}()

	s.target.flush()

	if s.preserving {
		dst := d.tex
		if !dst.sameSize(s.offscreen.Width(), s.offscreen.Height()) {
			dst.Clear(image.Transparent)
		}
		dst.CopyFrom(s.offscreen)
	}

	if s.submitter != nil {
		p := Presentation{Label: "ggwin.present", Surface: s, Drawable: d.tex}
		if s.preserving {
			p.Offscreen = s.offscreen
		}
		if err := s.submitter.Submit(p); err != nil {
			logging.Logger().Warn("frame: submit failed", "err", err)
		}
	}

	if err := s.chain.Present(d); err != nil {
		logging.Logger().Warn("frame: present failed", "seq", d.seq, "err", err)
		return
	}
	s.frames++
}

// Release drops any outstanding drawable and frees the offscreen texture
// and the swapchain. It is safe to call more than once.
func (s *Synchronizer) Release() {
	if s.released {
		return
	}
	s.released = true
	s.drawable = nil
	s.target = nil
	s.state = Idle
	if s.offscreen != nil {
		s.offscreen.release()
		s.offscreen = nil
	}
	if r, ok := s.submitter.(SurfaceReleaser); ok {
		r.ReleaseSurface(s)
	}
	s.chain.Release()
}
