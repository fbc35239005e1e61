// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless is an in-memory platform backend. Windows present
// into software swapchains and native events are injected by the
// program, which makes the backend suitable for tests, CI and offscreen
// rendering.
package headless

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/platform"
)

// Name is the registry name of the backend.
const Name = "headless"

// DefaultRefreshInterval is a 60 Hz display.
const DefaultRefreshInterval = time.Second / 60

// ErrClosed is returned after Close.
var ErrClosed = errors.New("headless: platform closed")

func init() {
	platform.Register(Name, func() (platform.Platform, error) {
		return New(), nil
	})
}

// Option configures a Platform.
type Option func(*Platform)

// WithScale sets the backing scale factor of new windows.
func WithScale(scale float64) Option {
	return func(p *Platform) {
		p.scale = scale
	}
}

// WithRefreshInterval sets the reported display refresh period.
func WithRefreshInterval(d time.Duration) Option {
	return func(p *Platform) {
		p.refresh = d
	}
}

// WithImageCount sets the number of swapchain images per window.
func WithImageCount(n int) Option {
	return func(p *Platform) {
		p.images = n
	}
}

// Platform is the headless backend.
type Platform struct {
	gpucontext.NullPlatformProvider

	mu      sync.Mutex
	pending []platform.Event
	wake    chan struct{}

	windows map[platform.WindowID]*Window
	nextID  platform.WindowID

	clipboard    string
	clipboardErr error
	urls         []string
	appearance   platform.Appearance
	cursor       gpucontext.CursorShape

	scale   float64
	refresh time.Duration
	images  int
	closed  bool
}

// New creates a headless platform.
func New(opts ...Option) *Platform {
	p := &Platform{
		wake:    make(chan struct{}, 1),
		windows: make(map[platform.WindowID]*Window),
		scale:   1,
		refresh: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements platform.Platform.
func (p *Platform) Name() string { return Name }

// RefreshInterval implements platform.Platform.
func (p *Platform) RefreshInterval() time.Duration { return p.refresh }

// CreateWindow implements platform.Platform.
func (p *Platform) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	p.nextID++
	w := newWindow(p, p.nextID, cfg)
	p.windows[w.id] = w
	return w, nil
}

// Window returns the window with the given id, or nil.
func (p *Platform) Window(id platform.WindowID) *Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.windows[id]
}

// Inject queues a native event for the next WaitEvents. Safe for
// concurrent use.
func (p *Platform) Inject(events ...platform.Event) {
	p.mu.Lock()
	p.pending = append(p.pending, events...)
	p.mu.Unlock()
	p.Wake()
}

// Pending returns the number of injected events not yet delivered.
func (p *Platform) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// WaitEvents implements platform.Platform.
func (p *Platform) WaitEvents(timeout time.Duration, fn func(platform.Event)) error {
	if p.Pending() == 0 && timeout != 0 {
		p.wait(timeout)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, e := range batch {
		fn(e)
	}
	return nil
}

func (p *Platform) wait(timeout time.Duration) {
	if timeout < 0 {
		<-p.wake
		return
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.wake:
	case <-timer.C:
	}
}

// Wake implements platform.Platform.
func (p *Platform) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// ClipboardRead implements gpucontext.PlatformProvider.
func (p *Platform) ClipboardRead() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clipboardErr != nil {
		return "", p.clipboardErr
	}
	return p.clipboard, nil
}

// ClipboardWrite implements gpucontext.PlatformProvider.
func (p *Platform) ClipboardWrite(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clipboardErr != nil {
		return p.clipboardErr
	}
	p.clipboard = text
	return nil
}

// FailClipboard makes clipboard calls fail with err until called with nil.
func (p *Platform) FailClipboard(err error) {
	p.mu.Lock()
	p.clipboardErr = err
	p.mu.Unlock()
}

// SetCursor implements gpucontext.PlatformProvider.
func (p *Platform) SetCursor(shape gpucontext.CursorShape) {
	p.mu.Lock()
	p.cursor = shape
	p.mu.Unlock()
}

// Cursor returns the last cursor shape set on any window.
func (p *Platform) Cursor() gpucontext.CursorShape {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// DarkMode implements gpucontext.PlatformProvider.
func (p *Platform) DarkMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.appearance == platform.AppearanceDark
}

// SetAppearance implements platform.Platform.
func (p *Platform) SetAppearance(a platform.Appearance) error {
	p.mu.Lock()
	p.appearance = a
	p.mu.Unlock()
	return nil
}

// Appearance returns the last appearance set.
func (p *Platform) Appearance() platform.Appearance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.appearance
}

// OpenURL implements platform.Platform. URLs are recorded, not opened.
func (p *Platform) OpenURL(url string) error {
	p.mu.Lock()
	p.urls = append(p.urls, url)
	p.mu.Unlock()
	return nil
}

// OpenedURLs returns every URL passed to OpenURL.
func (p *Platform) OpenedURLs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.urls)
}

// Close implements platform.Platform.
func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *Platform) remove(id platform.WindowID) {
	p.mu.Lock()
	delete(p.windows, id)
	p.mu.Unlock()
}

var _ platform.Platform = (*Platform)(nil)
