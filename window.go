package ggwin

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/event"
	"github.com/gogpu/ggwin/frame"
	"github.com/gogpu/ggwin/platform"
)

// Window is a window session: a native window, its frame synchronizer
// and its normalized event queue.
//
// Width and Height are logical points; textures returned by
// AcquireTexture are sized in physical pixels (see DrawableSize).
type Window struct {
	app    *App
	native platform.Window
	sync   *frame.Synchronizer
	queue  *event.Queue
	clock  frameClock
	cursor Cursor

	closed    bool
	destroyed bool
}

// NewWindow creates a hidden window on the shared App. Failure is fatal.
func NewWindow(width, height int, title string, opts ...WindowOption) *Window {
	return Shared().MustNewWindow(width, height, title, opts...)
}

// MustNewWindow is like NewWindow but reports failure through the App's
// fatal handler. It returns nil if the handler returns.
func (a *App) MustNewWindow(width, height int, title string, opts ...WindowOption) *Window {
	w, err := a.NewWindow(width, height, title, opts...)
	if err != nil {
		a.fatal(err)
		return nil
	}
	return w
}

// NewWindow creates a hidden window of width x height logical points.
// Call Show to display it and start its frame clock.
func (a *App) NewWindow(width, height int, title string, opts ...WindowOption) (*Window, error) {
	if a.closed {
		return nil, ErrAppClosed
	}
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	o := defaultWindowOptions()
	for _, opt := range opts {
		opt(&o)
	}

	native, err := a.platform.CreateWindow(platform.WindowConfig{
		Title:     title,
		Width:     width,
		Height:    height,
		Resizable: o.resizable,
	})
	if err != nil {
		return nil, err
	}
	for b, hidden := range o.hidden {
		if hidden {
			native.SetButtonVisible(platform.ChromeButton(b), false)
		}
	}
	if o.cursor != CursorDefault {
		native.SetCursor(o.cursor.Shape())
	}

	w := &Window{
		app:    a,
		native: native,
		sync: frame.New(native, native.Swapchain(),
			frame.WithSubmitter(a.device),
			frame.WithPreserveDrawingBuffer(o.preserve),
		),
		queue:  event.NewQueue(a.queueCap),
		clock:  frameClock{interval: a.interval},
		cursor: o.cursor,
	}
	a.windows[native.ID()] = w
	a.order = append(a.order, w)
	Logger().Debug("ggwin: window created", "id", native.ID(), "title", title, "width", width, "height", height)
	return w, nil
}

// ID returns the native window id.
func (w *Window) ID() platform.WindowID { return w.native.ID() }

// Native returns the platform window.
func (w *Window) Native() platform.Window { return w.native }

// Show makes the window visible and starts its frame clock.
func (w *Window) Show() {
	if w.destroyed {
		return
	}
	w.native.Show()
	if !w.closed {
		w.clock.arm(w.app.clock.Now())
	}
}

// Close queues a Close event as if the user had clicked the close
// button. Nothing is queued after it. The window stays open until
// Destroy.
func (w *Window) Close() {
	if w.closed || w.destroyed {
		return
	}
	w.closed = true
	w.clock.disarm()
	w.queue.Push(event.Event{Kind: event.Close})
}

// Closed reports whether a Close event has been queued.
func (w *Window) Closed() bool { return w.closed }

// Destroy releases the window's drawables and closes the native window.
// Destroying a window twice does nothing.
func (w *Window) Destroy() {
	if w.destroyed {
		Logger().Warn("ggwin: window already destroyed", "id", w.native.ID())
		return
	}
	w.destroyed = true
	w.clock.disarm()
	w.sync.Release()
	w.native.Destroy()
	w.app.remove(w)
	Logger().Debug("ggwin: window destroyed", "id", w.native.ID())
}

// Destroyed reports whether Destroy has been called.
func (w *Window) Destroyed() bool { return w.destroyed }

// PollEvent removes and returns the oldest queued event. It never
// blocks; ok is false when the queue is empty.
func (w *Window) PollEvent() (e event.Event, ok bool) {
	return w.queue.Poll()
}

// Pending returns the number of queued events.
func (w *Window) Pending() int { return w.queue.Len() }

// AcquireTexture returns the texture to draw the next frame into, or nil
// if no drawable is available. Pair each non-nil result with Present.
func (w *Window) AcquireTexture() *frame.Texture {
	if w.destroyed {
		return nil
	}
	return w.sync.Acquire()
}

// Present shows the texture acquired by AcquireTexture. It does nothing
// when no texture is acquired.
func (w *Window) Present() {
	if w.destroyed {
		return
	}
	w.sync.Present()
}

// Frame acquires a texture, calls draw with a gg context on it and
// presents. It reports whether a frame was drawn.
func (w *Window) Frame(draw func(dc *gg.Context)) bool {
	tex := w.AcquireTexture()
	if tex == nil {
		return false
	}
	draw(tex.Context())
	w.Present()
	return true
}

// Frames returns the number of presented frames.
func (w *Window) Frames() uint64 { return w.sync.Frames() }

// Title returns the window title.
func (w *Window) Title() string { return w.native.Title() }

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) { w.native.SetTitle(title) }

// Width returns the content width in logical points.
func (w *Window) Width() int {
	width, _ := w.native.Size()
	return width
}

// SetWidth resizes the content width, in logical points.
func (w *Window) SetWidth(width int) {
	_, height := w.native.Size()
	w.native.SetSize(max(width, 0), height)
}

// Height returns the content height in logical points.
func (w *Window) Height() int {
	_, height := w.native.Size()
	return height
}

// SetHeight resizes the content height, in logical points.
func (w *Window) SetHeight(height int) {
	width, _ := w.native.Size()
	w.native.SetSize(width, max(height, 0))
}

// ScaleFactor returns the ratio of physical pixels to logical points.
func (w *Window) ScaleFactor() float64 { return w.native.ScaleFactor() }

// DrawableSize returns the size of the next drawable in physical pixels.
func (w *Window) DrawableSize() (int, int) { return w.sync.DrawableSize() }

// Resizable reports whether the user can resize the window.
func (w *Window) Resizable() bool { return w.native.Resizable() }

// SetResizable sets whether the user can resize the window.
func (w *Window) SetResizable(resizable bool) { w.native.SetResizable(resizable) }

// CloseButtonVisible reports whether the title bar close button is shown.
func (w *Window) CloseButtonVisible() bool {
	return w.native.ButtonVisible(platform.CloseButton)
}

// SetCloseButtonVisible shows or hides the title bar close button.
func (w *Window) SetCloseButtonVisible(visible bool) {
	w.native.SetButtonVisible(platform.CloseButton, visible)
}

// MiniaturizeButtonVisible reports whether the minimize button is shown.
func (w *Window) MiniaturizeButtonVisible() bool {
	return w.native.ButtonVisible(platform.MiniaturizeButton)
}

// SetMiniaturizeButtonVisible shows or hides the minimize button.
func (w *Window) SetMiniaturizeButtonVisible(visible bool) {
	w.native.SetButtonVisible(platform.MiniaturizeButton, visible)
}

// ZoomButtonVisible reports whether the zoom button is shown.
func (w *Window) ZoomButtonVisible() bool {
	return w.native.ButtonVisible(platform.ZoomButton)
}

// SetZoomButtonVisible shows or hides the zoom button.
func (w *Window) SetZoomButtonVisible(visible bool) {
	w.native.SetButtonVisible(platform.ZoomButton, visible)
}

// Cursor returns the cursor shown over the window.
func (w *Window) Cursor() Cursor { return w.cursor }

// SetCursor changes the cursor shown over the window.
func (w *Window) SetCursor(c Cursor) {
	w.cursor = c
	w.native.SetCursor(c.Shape())
}

// PreserveDrawingBuffer reports whether drawing accumulates across frames.
func (w *Window) PreserveDrawingBuffer() bool { return w.sync.PreserveDrawingBuffer() }

// SetPreserveDrawingBuffer switches between accumulating and cleared
// frames. It takes effect at the next AcquireTexture.
func (w *Window) SetPreserveDrawingBuffer(preserve bool) {
	w.sync.SetPreserveDrawingBuffer(preserve)
}

var _ gpucontext.WindowProvider = (*Window)(nil)

// Size returns the content size in logical points.
func (w *Window) Size() (int, int) { return w.native.Size() }

// RequestRedraw asks the platform for a redraw.
func (w *Window) RequestRedraw() { w.native.RequestRedraw() }
