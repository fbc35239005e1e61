package term

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/frame"
	"github.com/gogpu/ggwin/internal/logging"
	"github.com/gogpu/ggwin/platform"
)

// Window is the full-screen terminal window.
type Window struct {
	p  *Platform
	id platform.WindowID

	mu        sync.Mutex
	title     string
	cols      int
	rows      int
	visible   bool
	destroyed bool
	cursor    gpucontext.CursorShape

	chain *frame.SoftwareSwapchain
}

func newWindow(p *Platform, id platform.WindowID, cols, rows int) *Window {
	w := &Window{p: p, id: id, cols: cols, rows: rows}
	w.chain = frame.NewSoftwareSwapchain(frame.DefaultImageCount, w.present)
	return w
}

// ID implements platform.Window.
func (w *Window) ID() platform.WindowID { return w.id }

// Size implements gpucontext.WindowProvider: one point per column and
// two per row.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cols, w.rows * 2
}

// ScaleFactor implements gpucontext.WindowProvider.
func (w *Window) ScaleFactor() float64 { return 1 }

// RequestRedraw implements gpucontext.WindowProvider.
func (w *Window) RequestRedraw() { w.p.Wake() }

func (w *Window) setCells(cols, rows int) (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cols, w.rows = cols, rows
	return cols, rows * 2
}

func (w *Window) cells() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cols, w.rows
}

// Show implements platform.Window.
func (w *Window) Show() {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	w.p.post(platform.Event{Kind: platform.FocusGained, Window: w.id})
}

// Destroy implements platform.Window. The screen is cleared.
func (w *Window) Destroy() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	w.visible = false
	w.mu.Unlock()

	w.chain.Release()
	w.p.remove(w)
	if !w.p.isClosed() {
		w.p.screen.Clear()
		w.p.screen.Show()
	}
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
	w.p.screen.SetTitle(title)
}

// SetSize implements platform.Window. A terminal cannot be resized by
// the program, so the request is ignored.
func (w *Window) SetSize(width, height int) {
	logging.Logger().Debug("term: ignoring window resize", "width", width, "height", height)
}

// Resizable implements platform.Window. Only the user resizes a terminal.
func (w *Window) Resizable() bool { return false }

// SetResizable implements platform.Window.
func (w *Window) SetResizable(bool) {}

// ButtonVisible implements platform.Window. Terminals have no chrome.
func (w *Window) ButtonVisible(platform.ChromeButton) bool { return false }

// SetButtonVisible implements platform.Window.
func (w *Window) SetButtonVisible(platform.ChromeButton, bool) {}

// SetCursor implements platform.Window.
func (w *Window) SetCursor(shape gpucontext.CursorShape) {
	w.mu.Lock()
	w.cursor = shape
	w.mu.Unlock()
	w.p.SetCursor(shape)
}

// Swapchain implements platform.Window.
func (w *Window) Swapchain() frame.Swapchain { return w.chain }

var _ platform.Window = (*Window)(nil)
