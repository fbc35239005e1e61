//go:build sdl

package sdl

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gpucontext"
	sdl2 "github.com/veandco/go-sdl2/sdl"

	"github.com/gogpu/ggwin/frame"
	"github.com/gogpu/ggwin/internal/logging"
	"github.com/gogpu/ggwin/platform"
)

// Window is an SDL window with its renderer and streaming texture.
type Window struct {
	p  *Platform
	id platform.WindowID

	window   *sdl2.Window
	renderer *sdl2.Renderer
	texture  *sdl2.Texture
	texW     int
	texH     int

	buttons   [3]bool
	destroyed bool

	chain *frame.SoftwareSwapchain
}

func newWindow(p *Platform, cfg platform.WindowConfig) (*Window, error) {
	flags := uint32(sdl2.WINDOW_HIDDEN | sdl2.WINDOW_ALLOW_HIGHDPI)
	if cfg.Resizable {
		flags |= sdl2.WINDOW_RESIZABLE
	}
	win, err := sdl2.CreateWindow(cfg.Title,
		sdl2.WINDOWPOS_CENTERED, sdl2.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}
	renderer, err := sdl2.CreateRenderer(win, -1, sdl2.RENDERER_ACCELERATED|sdl2.RENDERER_PRESENTVSYNC)
	if err != nil {
		_ = win.Destroy()
		return nil, fmt.Errorf("sdl: create renderer: %w", err)
	}
	id, err := win.GetID()
	if err != nil {
		_ = renderer.Destroy()
		_ = win.Destroy()
		return nil, fmt.Errorf("sdl: window id: %w", err)
	}

	w := &Window{
		p:        p,
		id:       platform.WindowID(id),
		window:   win,
		renderer: renderer,
		buttons:  [3]bool{true, true, true},
	}
	w.chain = frame.NewSoftwareSwapchain(frame.DefaultImageCount, w.present)
	return w, nil
}

// ID implements platform.Window.
func (w *Window) ID() platform.WindowID { return w.id }

// Size implements gpucontext.WindowProvider.
func (w *Window) Size() (int, int) {
	if w.destroyed {
		return 0, 0
	}
	width, height := w.window.GetSize()
	return int(width), int(height)
}

// ScaleFactor implements gpucontext.WindowProvider. It is the ratio of
// the renderer output to the window size.
func (w *Window) ScaleFactor() float64 {
	if w.destroyed {
		return 1
	}
	width, _ := w.window.GetSize()
	out, _, err := w.renderer.GetOutputSize()
	if err != nil || width <= 0 || out <= 0 {
		return 1
	}
	return float64(out) / float64(width)
}

// RequestRedraw implements gpucontext.WindowProvider.
func (w *Window) RequestRedraw() { w.p.Wake() }

// Show implements platform.Window.
func (w *Window) Show() {
	w.window.Show()
	w.window.Raise()
}

// Destroy implements platform.Window.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.chain.Release()
	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	_ = w.renderer.Destroy()
	_ = w.window.Destroy()
	delete(w.p.windows, w.id)
}

// Title implements platform.Window.
func (w *Window) Title() string { return w.window.GetTitle() }

// SetTitle implements platform.Window.
func (w *Window) SetTitle(title string) { w.window.SetTitle(title) }

// SetSize implements platform.Window.
func (w *Window) SetSize(width, height int) {
	w.window.SetSize(int32(max(width, 0)), int32(max(height, 0)))
}

// Resizable implements platform.Window.
func (w *Window) Resizable() bool {
	return w.window.GetFlags()&sdl2.WINDOW_RESIZABLE != 0
}

// SetResizable implements platform.Window.
func (w *Window) SetResizable(resizable bool) { w.window.SetResizable(resizable) }

// ButtonVisible implements platform.Window. SDL2 draws no title bar of
// its own; visibility is tracked and the whole border toggled.
func (w *Window) ButtonVisible(b platform.ChromeButton) bool {
	if int(b) >= len(w.buttons) {
		return false
	}
	return w.buttons[b]
}

// SetButtonVisible implements platform.Window. Hiding every button
// removes the window border.
func (w *Window) SetButtonVisible(b platform.ChromeButton, visible bool) {
	if int(b) >= len(w.buttons) {
		return
	}
	w.buttons[b] = visible
	w.window.SetBordered(w.buttons != [3]bool{})
}

// SetCursor implements platform.Window.
func (w *Window) SetCursor(shape gpucontext.CursorShape) { w.p.SetCursor(shape) }

// Swapchain implements platform.Window.
func (w *Window) Swapchain() frame.Swapchain { return w.chain }

// present uploads tex to the streaming texture and shows it.
func (w *Window) present(tex *frame.Texture) error {
	if w.destroyed {
		return nil
	}
	if w.texture == nil || w.texW != tex.Width() || w.texH != tex.Height() {
		if w.texture != nil {
			_ = w.texture.Destroy()
		}
		t, err := w.renderer.CreateTexture(sdl2.PIXELFORMAT_ABGR8888, sdl2.TEXTUREACCESS_STREAMING,
			int32(tex.Width()), int32(tex.Height()))
		if err != nil {
			w.texture = nil
			return fmt.Errorf("sdl: create texture: %w", err)
		}
		w.texture, w.texW, w.texH = t, tex.Width(), tex.Height()
		logging.Logger().Debug("sdl: texture allocated", "id", w.id, "width", w.texW, "height", w.texH)
	}

	pix := tex.Pixels()
	if len(pix) == 0 {
		return nil
	}
	rect := &sdl2.Rect{W: int32(w.texW), H: int32(w.texH)}
	if err := w.texture.Update(rect, unsafe.Pointer(&pix[0]), tex.Stride()); err != nil {
		return fmt.Errorf("sdl: update texture: %w", err)
	}
	if err := w.renderer.Clear(); err != nil {
		return err
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return err
	}
	w.renderer.Present()
	return nil
}

var _ platform.Window = (*Window)(nil)
