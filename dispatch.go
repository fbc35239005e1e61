package ggwin

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/event"
	"github.com/gogpu/ggwin/frame"
	"github.com/gogpu/ggwin/input"
	"github.com/gogpu/ggwin/platform"
)

// handle normalizes a raw platform event into the window's queue. It
// reports whether anything was queued.
func (w *Window) handle(raw platform.Event) bool {
	mods := input.ModifiersFrom(raw.Mods)

	switch raw.Kind {
	case platform.MouseDown, platform.MouseUp:
		kind := event.PointerDown
		if raw.Kind == platform.MouseUp {
			kind = event.PointerUp
		}
		ok := w.queue.Push(event.Event{
			Kind:       kind,
			Mods:       mods,
			X:          raw.X,
			Y:          raw.Y,
			Button:     raw.Button,
			Buttons:    raw.Buttons,
			ClickCount: max(raw.Clicks, 1),
		})
		if ok && kind == event.PointerDown && raw.Button == gpucontext.ButtonRight {
			w.queue.Push(event.Event{Kind: event.ContextMenu, Mods: mods, X: raw.X, Y: raw.Y})
		}
		return ok

	case platform.MouseMove:
		return w.queue.Push(event.Event{
			Kind:    event.PointerMove,
			Mods:    mods,
			X:       raw.X,
			Y:       raw.Y,
			Button:  gpucontext.ButtonNone,
			Buttons: raw.Buttons,
		})

	case platform.Scroll:
		return w.queue.Push(event.Event{
			Kind:   event.Wheel,
			Mods:   mods,
			X:      raw.X,
			Y:      raw.Y,
			DeltaX: -raw.ScrollX,
			DeltaY: -raw.ScrollY,
		})

	case platform.KeyPress, platform.KeyRelease:
		d := input.Decode(input.RawKey{
			Key:    raw.Key,
			Code:   raw.Code,
			Text:   raw.Text,
			Mods:   raw.Mods,
			Repeat: raw.Repeat,
		})
		kind := event.KeyDown
		if raw.Kind == platform.KeyRelease {
			kind = event.KeyUp
		}
		return w.queue.Push(event.Event{
			Kind:   kind,
			Mods:   d.Mods,
			Code:   raw.Key,
			Key:    d.Key,
			Text:   d.Text,
			Dead:   d.Dead,
			Repeat: d.Repeat,
		})

	case platform.Resized:
		width, height := frame.PhysicalSize(raw.Width, raw.Height, w.native.ScaleFactor())
		return w.queue.Push(event.Event{Kind: event.Resize, Width: width, Height: height})

	case platform.CloseRequested:
		if w.closed {
			return false
		}
		w.Close()
		return true

	case platform.FocusGained:
		return w.queue.Push(event.Event{Kind: event.Focus})

	case platform.FocusLost:
		return w.queue.Push(event.Event{Kind: event.Blur})

	case platform.Occluded:
		Logger().Debug("ggwin: occlusion changed", "id", raw.Window, "hidden", raw.Hidden)
		return false
	}
	return false
}
