package headless

import (
	"image"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/frame"
	"github.com/gogpu/ggwin/platform"
)

// Window is an offscreen window.
type Window struct {
	p  *Platform
	id platform.WindowID

	mu        sync.Mutex
	title     string
	width     int
	height    int
	scale     float64
	resizable bool
	buttons   [3]bool
	visible   bool
	destroyed bool
	cursor    gpucontext.CursorShape
	redraws   int

	chain *frame.SoftwareSwapchain
}

func newWindow(p *Platform, id platform.WindowID, cfg platform.WindowConfig) *Window {
	return &Window{
		p:         p,
		id:        id,
		title:     cfg.Title,
		width:     max(cfg.Width, 0),
		height:    max(cfg.Height, 0),
		scale:     p.scale,
		resizable: cfg.Resizable,
		buttons:   [3]bool{true, true, true},
		chain:     frame.NewSoftwareSwapchain(p.images, nil),
	}
}

// ID implements platform.Window.
func (w *Window) ID() platform.WindowID { return w.id }

// Size implements gpucontext.WindowProvider.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// ScaleFactor implements gpucontext.WindowProvider.
func (w *Window) ScaleFactor() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale
}

// RequestRedraw implements gpucontext.WindowProvider.
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	w.redraws++
	w.mu.Unlock()
}

// Show implements platform.Window. It emits FocusGained.
func (w *Window) Show() {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	w.p.Inject(platform.Event{Kind: platform.FocusGained, Window: w.id})
}

// Visible reports whether Show was called.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Destroy implements platform.Window.
func (w *Window) Destroy() {
	w.mu.Lock()
	w.destroyed = true
	w.visible = false
	w.mu.Unlock()
	w.p.remove(w.id)
}

// Destroyed reports whether Destroy was called.
func (w *Window) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

// Title implements platform.Window.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// SetTitle implements platform.Window.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

// SetSize implements platform.Window. Negative sizes clamp to zero, and
// a Resized event is emitted as a native window would.
func (w *Window) SetSize(width, height int) {
	w.Resize(width, height)
}

// Resize simulates the user resizing the window.
func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = max(width, 0), max(height, 0)
	width, height = w.width, w.height
	w.mu.Unlock()
	w.p.Inject(platform.Event{Kind: platform.Resized, Window: w.id, Width: width, Height: height})
}

// SetScale simulates moving the window to a display with another scale
// factor. The drawable size changes, so a Resized event is emitted.
func (w *Window) SetScale(scale float64) {
	w.mu.Lock()
	w.scale = scale
	width, height := w.width, w.height
	w.mu.Unlock()
	w.p.Inject(platform.Event{Kind: platform.Resized, Window: w.id, Width: width, Height: height})
}

// Resizable implements platform.Window.
func (w *Window) Resizable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resizable
}

// SetResizable implements platform.Window.
func (w *Window) SetResizable(resizable bool) {
	w.mu.Lock()
	w.resizable = resizable
	w.mu.Unlock()
}

// ButtonVisible implements platform.Window.
func (w *Window) ButtonVisible(b platform.ChromeButton) bool {
	if int(b) >= len(w.buttons) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buttons[b]
}

// SetButtonVisible implements platform.Window.
func (w *Window) SetButtonVisible(b platform.ChromeButton, visible bool) {
	if int(b) >= len(w.buttons) {
		return
	}
	w.mu.Lock()
	w.buttons[b] = visible
	w.mu.Unlock()
}

// SetCursor implements platform.Window.
func (w *Window) SetCursor(shape gpucontext.CursorShape) {
	w.mu.Lock()
	w.cursor = shape
	w.mu.Unlock()
	w.p.SetCursor(shape)
}

// Cursor returns the window's cursor shape.
func (w *Window) Cursor() gpucontext.CursorShape {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursor
}

// Swapchain implements platform.Window.
func (w *Window) Swapchain() frame.Swapchain { return w.chain }

// SetOccluded simulates the window being covered or uncovered.
func (w *Window) SetOccluded(hidden bool) {
	w.chain.SetOccluded(hidden)
	w.p.Inject(platform.Event{Kind: platform.Occluded, Window: w.id, Hidden: hidden})
}

// Front returns a copy of the last presented frame, or nil.
func (w *Window) Front() *image.RGBA { return w.chain.Front() }

// Presented returns the number of frames presented.
func (w *Window) Presented() uint64 { return w.chain.Presented() }

// RequestClose simulates the user clicking the close button.
func (w *Window) RequestClose() {
	w.p.Inject(platform.Event{Kind: platform.CloseRequested, Window: w.id})
}

var _ platform.Window = (*Window)(nil)
