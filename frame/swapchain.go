// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"errors"
	"image"
	"sync"
)

// Swapchain errors.
var (
	// ErrDrawableUnavailable is returned when the swapchain cannot hand out
	// an image right now (occluded window, all images in flight).
	ErrDrawableUnavailable = errors.New("frame: drawable unavailable")

	// ErrForeignDrawable is returned when presenting a drawable the
	// swapchain did not hand out, or one already presented.
	ErrForeignDrawable = errors.New("frame: drawable not owned by swapchain")

	// ErrSwapchainReleased is returned after Release.
	ErrSwapchainReleased = errors.New("frame: swapchain released")
)

// Drawable is one swapchain image handed out for a single frame.
type Drawable struct {
	tex  *Texture
	slot int
	seq  uint64
}

// Texture returns the drawable's backing texture.
func (d *Drawable) Texture() *Texture { return d.tex }

// Seq returns the frame sequence number assigned by the swapchain.
func (d *Drawable) Seq() uint64 { return d.seq }

// Swapchain hands out drawables and presents them to the display.
// Implementations recycle their images, so a drawable may carry pixels
// from an earlier frame.
type Swapchain interface {
	// NextDrawable returns an image of exactly width x height pixels.
	NextDrawable(width, height int) (*Drawable, error)

	// Present displays d. The drawable must not be used afterward.
	Present(d *Drawable) error

	// Release frees every image.
	Release()
}

// PresentFunc receives each presented image. Platforms use it to upload
// pixels to the screen.
type PresentFunc func(tex *Texture) error

// DefaultImageCount is the number of images in a SoftwareSwapchain.
const DefaultImageCount = 3

// SoftwareSwapchain is a CPU swapchain that cycles through a fixed ring
// of textures. The most recently presented image is kept as a snapshot,
// readable with Front.
//
// Methods are safe for concurrent use so that a platform's display
// goroutine may read Front while the loop thread presents.
type SoftwareSwapchain struct {
	mu       sync.Mutex
	images   []*Texture
	next     int
	inFlight *Drawable
	seq      uint64

	front     *image.RGBA
	presented uint64
	onPresent PresentFunc
	occluded  bool
	released  bool
}

// NewSoftwareSwapchain creates a swapchain with count images (at least 2).
// onPresent may be nil.
func NewSoftwareSwapchain(count int, onPresent PresentFunc) *SoftwareSwapchain {
	if count < 2 {
		count = DefaultImageCount
	}
	return &SoftwareSwapchain{
		images:    make([]*Texture, count),
		onPresent: onPresent,
	}
}

// SetOccluded marks the surface hidden. While occluded NextDrawable fails
// with ErrDrawableUnavailable.
func (s *SoftwareSwapchain) SetOccluded(occluded bool) {
	s.mu.Lock()
	s.occluded = occluded
	s.mu.Unlock()
}

// NextDrawable implements Swapchain.
func (s *SoftwareSwapchain) NextDrawable(width, height int) (*Drawable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.released:
		return nil, ErrSwapchainReleased
	case s.occluded, s.inFlight != nil, width <= 0, height <= 0:
		return nil, ErrDrawableUnavailable
	}

	slot := s.next
	s.next = (s.next + 1) % len(s.images)

	tex := s.images[slot]
	if tex == nil || !tex.sameSize(width, height) {
		if tex != nil {
			tex.release()
		}
		tex = NewTexture(width, height)
		s.images[slot] = tex
	}

	s.seq++
	s.inFlight = &Drawable{tex: tex, slot: slot, seq: s.seq}
	return s.inFlight, nil
}

// Present implements Swapchain.
func (s *SoftwareSwapchain) Present(d *Drawable) error {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return ErrSwapchainReleased
	}
	if d == nil || d != s.inFlight {
		s.mu.Unlock()
		return ErrForeignDrawable
	}
	s.inFlight = nil

	src := d.tex.RGBA()
	if s.front == nil || s.front.Rect != src.Rect {
		s.front = image.NewRGBA(src.Rect)
	}
	copy(s.front.Pix, src.Pix)
	s.presented++
	hook := s.onPresent
	s.mu.Unlock()

	if hook != nil {
		return hook(d.tex)
	}
	return nil
}

// Front returns a copy of the most recently presented image, or nil if
// nothing has been presented.
func (s *SoftwareSwapchain) Front() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.front == nil {
		return nil
	}
	out := image.NewRGBA(s.front.Rect)
	copy(out.Pix, s.front.Pix)
	return out
}

// Presented returns the number of frames presented so far.
func (s *SoftwareSwapchain) Presented() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presented
}

// Release implements Swapchain. It is safe to call more than once.
func (s *SoftwareSwapchain) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	for i, tex := range s.images {
		if tex != nil {
			tex.release()
		}
		s.images[i] = nil
	}
	s.inFlight = nil
}

var _ Swapchain = (*SoftwareSwapchain)(nil)
