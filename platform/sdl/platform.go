//go:build sdl

package sdl

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	sdl2 "github.com/veandco/go-sdl2/sdl"

	"github.com/gogpu/ggwin/internal/logging"
	"github.com/gogpu/ggwin/platform"
)

// Name is the registry name of the SDL backend.
const Name = "sdl"

// ErrClosed is returned after Close.
var ErrClosed = errors.New("sdl: platform closed")

func init() {
	runtime.LockOSThread()
	platform.Register(Name, func() (platform.Platform, error) {
		p, err := New()
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

// Platform is the SDL backend.
type Platform struct {
	gpucontext.NullPlatformProvider

	wakeType uint32
	refresh  time.Duration

	windows map[platform.WindowID]*Window
	cursors map[gpucontext.CursorShape]*sdl2.Cursor
	cursor  gpucontext.CursorShape
	theme   platform.Appearance

	// Input state carried between events.
	pendingKey *platform.Event
	pendingSym sdl2.Keycode
	mouseX     float64
	mouseY     float64
	buttons    gpucontext.Buttons

	closeOnce sync.Once
	closed    bool
}

// New initializes SDL video.
func New() (*Platform, error) {
	if err := sdl2.Init(sdl2.INIT_VIDEO | sdl2.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}
	wake := sdl2.RegisterEvents(1)
	if wake == ^uint32(0) {
		sdl2.Quit()
		return nil, errors.New("sdl: no user events left")
	}

	p := &Platform{
		wakeType: wake,
		refresh:  time.Second / 60,
		windows:  make(map[platform.WindowID]*Window),
		cursors:  make(map[gpucontext.CursorShape]*sdl2.Cursor),
	}
	if mode, err := sdl2.GetCurrentDisplayMode(0); err == nil && mode.RefreshRate > 0 {
		p.refresh = time.Second / time.Duration(mode.RefreshRate)
	}
	sdl2.StartTextInput()
	logging.Logger().Info("sdl: platform opened", "refresh", p.refresh)
	return p, nil
}

// Name implements platform.Platform.
func (p *Platform) Name() string { return Name }

// RefreshInterval implements platform.Platform.
func (p *Platform) RefreshInterval() time.Duration { return p.refresh }

// CreateWindow implements platform.Platform.
func (p *Platform) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	if p.closed {
		return nil, ErrClosed
	}
	w, err := newWindow(p, cfg)
	if err != nil {
		return nil, err
	}
	p.windows[w.id] = w
	return w, nil
}

// WaitEvents implements platform.Platform.
func (p *Platform) WaitEvents(timeout time.Duration, fn func(platform.Event)) error {
	if p.closed {
		return ErrClosed
	}

	var first sdl2.Event
	switch {
	case timeout == 0:
		first = sdl2.PollEvent()
	case timeout < 0:
		first = sdl2.WaitEvent()
	default:
		first = sdl2.WaitEventTimeout(max(int(timeout/time.Millisecond), 1))
	}
	for ev := first; ev != nil; ev = sdl2.PollEvent() {
		p.translate(ev, fn)
	}
	p.flushKey(fn)
	return nil
}

// Wake implements platform.Platform. SDL_PushEvent is thread-safe.
func (p *Platform) Wake() {
	if _, err := sdl2.PushEvent(&sdl2.UserEvent{Type: p.wakeType}); err != nil {
		logging.Logger().Debug("sdl: wake failed", "err", err)
	}
}

// ClipboardRead implements gpucontext.PlatformProvider.
func (p *Platform) ClipboardRead() (string, error) {
	return sdl2.GetClipboardText()
}

// ClipboardWrite implements gpucontext.PlatformProvider.
func (p *Platform) ClipboardWrite(text string) error {
	return sdl2.SetClipboardText(text)
}

// SetCursor implements gpucontext.PlatformProvider.
func (p *Platform) SetCursor(shape gpucontext.CursorShape) {
	if shape == p.cursor {
		return
	}
	p.cursor = shape
	if shape == gpucontext.CursorNone {
		sdl2.ShowCursor(sdl2.DISABLE)
		return
	}
	sdl2.ShowCursor(sdl2.ENABLE)
	c, ok := p.cursors[shape]
	if !ok {
		c = sdl2.CreateSystemCursor(systemCursor(shape))
		p.cursors[shape] = c
	}
	sdl2.SetCursor(c)
}

func systemCursor(shape gpucontext.CursorShape) sdl2.SystemCursor {
	switch shape {
	case gpucontext.CursorPointer:
		return sdl2.SYSTEM_CURSOR_HAND
	case gpucontext.CursorText:
		return sdl2.SYSTEM_CURSOR_IBEAM
	case gpucontext.CursorCrosshair:
		return sdl2.SYSTEM_CURSOR_CROSSHAIR
	case gpucontext.CursorMove:
		return sdl2.SYSTEM_CURSOR_SIZEALL
	case gpucontext.CursorResizeNS:
		return sdl2.SYSTEM_CURSOR_SIZENS
	case gpucontext.CursorResizeEW:
		return sdl2.SYSTEM_CURSOR_SIZEWE
	case gpucontext.CursorResizeNWSE:
		return sdl2.SYSTEM_CURSOR_SIZENWSE
	case gpucontext.CursorResizeNESW:
		return sdl2.SYSTEM_CURSOR_SIZENESW
	case gpucontext.CursorNotAllowed:
		return sdl2.SYSTEM_CURSOR_NO
	case gpucontext.CursorWait:
		return sdl2.SYSTEM_CURSOR_WAIT
	default:
		return sdl2.SYSTEM_CURSOR_ARROW
	}
}

// DarkMode implements gpucontext.PlatformProvider. SDL2 cannot query the
// system theme; only an explicit override is reported.
func (p *Platform) DarkMode() bool { return p.theme == platform.AppearanceDark }

// SetAppearance implements platform.Platform.
func (p *Platform) SetAppearance(a platform.Appearance) error {
	p.theme = a
	return nil
}

// OpenURL implements platform.Platform.
func (p *Platform) OpenURL(url string) error {
	return sdl2.OpenURL(url)
}

// Close implements platform.Platform.
func (p *Platform) Close() error {
	p.closeOnce.Do(func() {
		p.closed = true
		for _, w := range p.windows {
			w.Destroy()
		}
		for _, c := range p.cursors {
			sdl2.FreeCursor(c)
		}
		sdl2.StopTextInput()
		sdl2.Quit()
	})
	return nil
}

var _ platform.Platform = (*Platform)(nil)
