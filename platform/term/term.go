// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package term is a platform backend that draws into a terminal with
// tcell.
//
// The terminal hosts a single window covering the whole screen. Each
// character cell shows two vertically stacked pixels using the upper
// half block glyph, so a terminal of c columns and r rows is a window
// of c x 2r logical points at scale 1. Mouse and keyboard input arrive
// through tcell; terminals report no key releases, so every key press
// is followed by a synthetic release.
package term

import (
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/internal/logging"
	"github.com/gogpu/ggwin/platform"
)

// Name is the registry name of the terminal backend.
const Name = "term"

// DefaultRefreshInterval paces frames; terminals redraw slowly.
const DefaultRefreshInterval = time.Second / 30

// Errors returned by the terminal backend.
var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("term: platform closed")

	// ErrWindowExists is returned when a second window is created.
	ErrWindowExists = errors.New("term: terminal already hosts a window")
)

func init() {
	platform.Register(Name, func() (platform.Platform, error) {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		p, err := New(screen)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

// Option configures the terminal backend.
type Option func(*Platform)

// WithRefreshInterval sets the frame pacing interval.
func WithRefreshInterval(d time.Duration) Option {
	return func(p *Platform) {
		if d > 0 {
			p.refresh = d
		}
	}
}

// Platform is the terminal backend.
type Platform struct {
	gpucontext.NullPlatformProvider

	screen tcell.Screen
	events chan tcell.Event
	wake   chan struct{}
	done   chan struct{}

	mu         sync.Mutex
	pending    []platform.Event
	window     *Window
	nextID     platform.WindowID
	clipboard  string
	appearance platform.Appearance
	cursor     gpucontext.CursorShape

	// Mouse state, touched only by WaitEvents.
	clicks  clickTracker
	buttons tcell.ButtonMask
	mouseX  int
	mouseY  int

	refresh   time.Duration
	closeOnce sync.Once
	closed    bool
}

// New initializes screen and starts reading its events.
func New(screen tcell.Screen, opts ...Option) (*Platform, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.Clear()

	p := &Platform{
		screen:  screen,
		events:  make(chan tcell.Event, 256),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		refresh: DefaultRefreshInterval,
		mouseX:  -1,
		mouseY:  -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.read()
	return p, nil
}

func (p *Platform) read() {
	defer close(p.events)
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case p.events <- ev:
		case <-p.done:
			return
		}
	}
}

// Name implements platform.Platform.
func (p *Platform) Name() string { return Name }

// RefreshInterval implements platform.Platform.
func (p *Platform) RefreshInterval() time.Duration { return p.refresh }

// Screen returns the tcell screen.
func (p *Platform) Screen() tcell.Screen { return p.screen }

// CreateWindow implements platform.Platform. The window always covers
// the whole terminal; the requested size is ignored.
func (p *Platform) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	if p.window != nil {
		return nil, ErrWindowExists
	}
	p.nextID++
	cols, rows := p.screen.Size()
	w := newWindow(p, p.nextID, cols, rows)
	if cfg.Title != "" {
		p.screen.SetTitle(cfg.Title)
	}
	w.title = cfg.Title
	p.window = w
	logging.Logger().Debug("term: window created",
		"cols", cols, "rows", rows, "requested", [2]int{cfg.Width, cfg.Height})
	return w, nil
}

func (p *Platform) post(e platform.Event) {
	p.mu.Lock()
	p.pending = append(p.pending, e)
	p.mu.Unlock()
	p.Wake()
}

func (p *Platform) takePending() []platform.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.pending
	p.pending = nil
	return out
}

func (p *Platform) hasPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending) > 0
}

// WaitEvents implements platform.Platform.
func (p *Platform) WaitEvents(timeout time.Duration, fn func(platform.Event)) error {
	if p.isClosed() {
		return ErrClosed
	}

	var first tcell.Event
	var open bool
	if timeout != 0 && !p.hasPending() {
		first, open = p.wait(timeout)
	} else {
		select {
		case first, open = <-p.events:
		default:
			open = true
		}
	}

	for _, e := range p.takePending() {
		fn(e)
	}
	if first == nil {
		if !open {
			return ErrClosed
		}
		return nil
	}
	p.translate(first, fn)

	for {
		select {
		case ev, ok := <-p.events:
			if !ok {
				return nil
			}
			p.translate(ev, fn)
		default:
			return nil
		}
	}
}

func (p *Platform) wait(timeout time.Duration) (tcell.Event, bool) {
	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}
	select {
	case ev, ok := <-p.events:
		return ev, ok
	case <-p.wake:
	case <-timer:
	}
	return nil, true
}

// Wake implements platform.Platform.
func (p *Platform) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// ClipboardRead implements gpucontext.PlatformProvider. Terminals cannot
// be read back, so this returns the last text written by the process.
func (p *Platform) ClipboardRead() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clipboard, nil
}

// ClipboardWrite implements gpucontext.PlatformProvider. The text is also
// sent to the terminal, which may forward it to the system clipboard.
func (p *Platform) ClipboardWrite(text string) error {
	p.mu.Lock()
	p.clipboard = text
	p.mu.Unlock()
	p.screen.SetClipboard([]byte(text))
	return nil
}

// SetCursor implements gpucontext.PlatformProvider. Terminals keep their
// own pointer; the shape is only recorded.
func (p *Platform) SetCursor(shape gpucontext.CursorShape) {
	p.mu.Lock()
	p.cursor = shape
	p.mu.Unlock()
}

// DarkMode implements gpucontext.PlatformProvider. Unless overridden a
// terminal is assumed dark.
func (p *Platform) DarkMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.appearance != platform.AppearanceLight
}

// SetAppearance implements platform.Platform.
func (p *Platform) SetAppearance(a platform.Appearance) error {
	p.mu.Lock()
	p.appearance = a
	p.mu.Unlock()
	return nil
}

// OpenURL implements platform.Platform. Terminals cannot open links.
func (p *Platform) OpenURL(url string) error {
	logging.Logger().Debug("term: cannot open url", "url", url)
	return errors.ErrUnsupported
}

// Close implements platform.Platform. It restores the terminal.
func (p *Platform) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		close(p.done)
		p.screen.Fini()
	})
	return nil
}

func (p *Platform) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Platform) remove(w *Window) {
	p.mu.Lock()
	if p.window == w {
		p.window = nil
	}
	p.mu.Unlock()
}

func (p *Platform) current() *Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}

var _ platform.Platform = (*Platform)(nil)
