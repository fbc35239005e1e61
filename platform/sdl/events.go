//go:build sdl

package sdl

import (
	"unicode"

	"github.com/gogpu/gpucontext"
	sdl2 "github.com/veandco/go-sdl2/sdl"

	"github.com/gogpu/ggwin/platform"
)

// translate converts one SDL event into raw events. A key press is held
// back until the following event so that the text produced by the same
// keystroke can be attached to it.
func (p *Platform) translate(ev sdl2.Event, fn func(platform.Event)) {
	if e, ok := ev.(*sdl2.TextInputEvent); ok {
		p.textInput(e, fn)
		return
	}
	p.flushKey(fn)

	switch e := ev.(type) {
	case *sdl2.UserEvent:
		// wake

	case *sdl2.QuitEvent:
		for id := range p.windows {
			fn(platform.Event{Kind: platform.CloseRequested, Window: id})
		}

	case *sdl2.WindowEvent:
		p.windowEvent(e, fn)

	case *sdl2.KeyboardEvent:
		raw := platform.Event{
			Kind:   platform.KeyPress,
			Window: platform.WindowID(e.WindowID),
			Mods:   modifiers(sdl2.Keymod(e.Keysym.Mod)),
			Key:    scancodeKey(e.Keysym.Scancode),
			Code:   uint16(e.Keysym.Scancode),
			Repeat: e.Repeat != 0,
		}
		if e.Type == sdl2.KEYUP {
			raw.Kind = platform.KeyRelease
			raw.Text = keycodeText(e.Keysym.Sym)
			fn(raw)
			return
		}
		p.pendingKey = &raw
		p.pendingSym = e.Keysym.Sym

	case *sdl2.MouseMotionEvent:
		p.mouseX, p.mouseY = float64(e.X), float64(e.Y)
		fn(platform.Event{
			Kind:    platform.MouseMove,
			Window:  platform.WindowID(e.WindowID),
			Mods:    modifiers(sdl2.GetModState()),
			X:       p.mouseX,
			Y:       p.mouseY,
			Button:  gpucontext.ButtonNone,
			Buttons: p.buttons,
		})

	case *sdl2.MouseButtonEvent:
		b := mouseButton(e.Button)
		raw := platform.Event{
			Kind:   platform.MouseDown,
			Window: platform.WindowID(e.WindowID),
			Mods:   modifiers(sdl2.GetModState()),
			X:      float64(e.X),
			Y:      float64(e.Y),
			Button: b,
			Clicks: int(e.Clicks),
		}
		if e.Type == sdl2.MOUSEBUTTONUP {
			raw.Kind = platform.MouseUp
			p.buttons &^= platform.ButtonsFor(b)
		} else {
			p.buttons |= platform.ButtonsFor(b)
		}
		raw.Buttons = p.buttons
		fn(raw)

	case *sdl2.MouseWheelEvent:
		dx, dy := float64(e.X), float64(e.Y)
		if e.Direction == sdl2.MOUSEWHEEL_FLIPPED {
			dx, dy = -dx, -dy
		}
		fn(platform.Event{
			Kind:    platform.Scroll,
			Window:  platform.WindowID(e.WindowID),
			Mods:    modifiers(sdl2.GetModState()),
			X:       p.mouseX,
			Y:       p.mouseY,
			Buttons: p.buttons,
			ScrollX: -dx,
			ScrollY: dy,
		})
	}
}

func (p *Platform) windowEvent(e *sdl2.WindowEvent, fn func(platform.Event)) {
	id := platform.WindowID(e.WindowID)
	w := p.windows[id]
	if w == nil {
		return
	}
	switch e.Event {
	case sdl2.WINDOWEVENT_SIZE_CHANGED:
		fn(platform.Event{Kind: platform.Resized, Window: id, Width: int(e.Data1), Height: int(e.Data2)})
	case sdl2.WINDOWEVENT_CLOSE:
		fn(platform.Event{Kind: platform.CloseRequested, Window: id})
	case sdl2.WINDOWEVENT_FOCUS_GAINED:
		fn(platform.Event{Kind: platform.FocusGained, Window: id})
	case sdl2.WINDOWEVENT_FOCUS_LOST:
		fn(platform.Event{Kind: platform.FocusLost, Window: id})
	case sdl2.WINDOWEVENT_HIDDEN, sdl2.WINDOWEVENT_MINIMIZED:
		w.chain.SetOccluded(true)
		fn(platform.Event{Kind: platform.Occluded, Window: id, Hidden: true})
	case sdl2.WINDOWEVENT_SHOWN, sdl2.WINDOWEVENT_RESTORED, sdl2.WINDOWEVENT_EXPOSED:
		w.chain.SetOccluded(false)
		fn(platform.Event{Kind: platform.Occluded, Window: id})
	}
}

func (p *Platform) textInput(e *sdl2.TextInputEvent, fn func(platform.Event)) {
	text := e.GetText()
	if p.pendingKey != nil {
		key := *p.pendingKey
		p.pendingKey = nil
		key.Text = text
		fn(key)
		return
	}
	// Text without a key press comes from an input method.
	raw := platform.Event{Kind: platform.KeyPress, Window: platform.WindowID(e.WindowID), Text: text}
	fn(raw)
	raw.Kind = platform.KeyRelease
	fn(raw)
}

// flushKey emits a held key press that produced no text.
func (p *Platform) flushKey(fn func(platform.Event)) {
	if p.pendingKey == nil {
		return
	}
	key := *p.pendingKey
	p.pendingKey = nil
	key.Text = keycodeText(p.pendingSym)
	fn(key)
}

// keycodeText returns the character a key types without modifiers, or
// "" for keys that type nothing.
func keycodeText(sym sdl2.Keycode) string {
	r := rune(sym)
	if sym&sdl2.K_SCANCODE_MASK != 0 || !unicode.IsPrint(r) {
		return ""
	}
	return string(r)
}

func modifiers(m sdl2.Keymod) gpucontext.Modifiers {
	var mods gpucontext.Modifiers
	if m&sdl2.KMOD_SHIFT != 0 {
		mods |= gpucontext.ModShift
	}
	if m&sdl2.KMOD_CTRL != 0 {
		mods |= gpucontext.ModControl
	}
	if m&sdl2.KMOD_ALT != 0 {
		mods |= gpucontext.ModAlt
	}
	if m&sdl2.KMOD_GUI != 0 {
		mods |= gpucontext.ModSuper
	}
	if m&sdl2.KMOD_CAPS != 0 {
		mods |= gpucontext.ModCapsLock
	}
	if m&sdl2.KMOD_NUM != 0 {
		mods |= gpucontext.ModNumLock
	}
	return mods
}

func mouseButton(b uint8) gpucontext.Button {
	switch b {
	case sdl2.BUTTON_LEFT:
		return gpucontext.ButtonLeft
	case sdl2.BUTTON_MIDDLE:
		return gpucontext.ButtonMiddle
	case sdl2.BUTTON_RIGHT:
		return gpucontext.ButtonRight
	case sdl2.BUTTON_X1:
		return gpucontext.ButtonX1
	case sdl2.BUTTON_X2:
		return gpucontext.ButtonX2
	default:
		return gpucontext.ButtonNone
	}
}
