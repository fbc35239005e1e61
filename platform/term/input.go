package term

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/platform"
)

// doubleClickTime bounds the gap between clicks counted together.
const doubleClickTime = 400 * time.Millisecond

var specialKeys = map[tcell.Key]gpucontext.Key{
	tcell.KeyEnter:      gpucontext.KeyEnter,
	tcell.KeyTab:        gpucontext.KeyTab,
	tcell.KeyBacktab:    gpucontext.KeyTab,
	tcell.KeyBackspace:  gpucontext.KeyBackspace,
	tcell.KeyBackspace2: gpucontext.KeyBackspace,
	tcell.KeyEscape:     gpucontext.KeyEscape,
	tcell.KeyInsert:     gpucontext.KeyInsert,
	tcell.KeyDelete:     gpucontext.KeyDelete,
	tcell.KeyHome:       gpucontext.KeyHome,
	tcell.KeyEnd:        gpucontext.KeyEnd,
	tcell.KeyPgUp:       gpucontext.KeyPageUp,
	tcell.KeyPgDn:       gpucontext.KeyPageDown,
	tcell.KeyLeft:       gpucontext.KeyLeft,
	tcell.KeyRight:      gpucontext.KeyRight,
	tcell.KeyUp:         gpucontext.KeyUp,
	tcell.KeyDown:       gpucontext.KeyDown,
	tcell.KeyF1:         gpucontext.KeyF1,
	tcell.KeyF2:         gpucontext.KeyF2,
	tcell.KeyF3:         gpucontext.KeyF3,
	tcell.KeyF4:         gpucontext.KeyF4,
	tcell.KeyF5:         gpucontext.KeyF5,
	tcell.KeyF6:         gpucontext.KeyF6,
	tcell.KeyF7:         gpucontext.KeyF7,
	tcell.KeyF8:         gpucontext.KeyF8,
	tcell.KeyF9:         gpucontext.KeyF9,
	tcell.KeyF10:        gpucontext.KeyF10,
	tcell.KeyF11:        gpucontext.KeyF11,
	tcell.KeyF12:        gpucontext.KeyF12,
}

var letterKeys = [26]gpucontext.Key{
	gpucontext.KeyA, gpucontext.KeyB, gpucontext.KeyC, gpucontext.KeyD,
	gpucontext.KeyE, gpucontext.KeyF, gpucontext.KeyG, gpucontext.KeyH,
	gpucontext.KeyI, gpucontext.KeyJ, gpucontext.KeyK, gpucontext.KeyL,
	gpucontext.KeyM, gpucontext.KeyN, gpucontext.KeyO, gpucontext.KeyP,
	gpucontext.KeyQ, gpucontext.KeyR, gpucontext.KeyS, gpucontext.KeyT,
	gpucontext.KeyU, gpucontext.KeyV, gpucontext.KeyW, gpucontext.KeyX,
	gpucontext.KeyY, gpucontext.KeyZ,
}

var digitKeys = [10]gpucontext.Key{
	gpucontext.Key0, gpucontext.Key1, gpucontext.Key2, gpucontext.Key3,
	gpucontext.Key4, gpucontext.Key5, gpucontext.Key6, gpucontext.Key7,
	gpucontext.Key8, gpucontext.Key9,
}

var punctKeys = map[rune]gpucontext.Key{
	' ':  gpucontext.KeySpace,
	'-':  gpucontext.KeyMinus,
	'=':  gpucontext.KeyEqual,
	'[':  gpucontext.KeyLeftBracket,
	']':  gpucontext.KeyRightBracket,
	'\\': gpucontext.KeyBackslash,
	';':  gpucontext.KeySemicolon,
	'\'': gpucontext.KeyApostrophe,
	'`':  gpucontext.KeyGrave,
	',':  gpucontext.KeyComma,
	'.':  gpucontext.KeyPeriod,
	'/':  gpucontext.KeySlash,
}

func modifiers(m tcell.ModMask) gpucontext.Modifiers {
	var mods gpucontext.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= gpucontext.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= gpucontext.ModControl
	}
	if m&tcell.ModAlt != 0 {
		mods |= gpucontext.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= gpucontext.ModSuper
	}
	return mods
}

// runeKey returns the physical key that most likely produced r.
func runeKey(r rune) gpucontext.Key {
	switch {
	case r >= 'a' && r <= 'z':
		return letterKeys[r-'a']
	case r >= 'A' && r <= 'Z':
		return letterKeys[r-'A']
	case r >= '0' && r <= '9':
		return digitKeys[r-'0']
	}
	if k, ok := punctKeys[r]; ok {
		return k
	}
	return gpucontext.KeyUnknown
}

// keyEvent converts a tcell key to a raw key press.
func keyEvent(ev *tcell.EventKey) platform.Event {
	e := platform.Event{Kind: platform.KeyPress, Mods: modifiers(ev.Modifiers())}
	k := ev.Key()

	if key, ok := specialKeys[k]; ok {
		e.Key = key
		if k == tcell.KeyBacktab {
			e.Mods |= gpucontext.ModShift
		}
		return e
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		i := int(k - tcell.KeyCtrlA)
		e.Key = letterKeys[i]
		e.Text = string(rune('a' + i))
		e.Mods |= gpucontext.ModControl
		return e
	}
	if k == tcell.KeyRune {
		r := ev.Rune()
		e.Key = runeKey(r)
		e.Text = string(r)
		if unicode.IsUpper(r) {
			e.Mods |= gpucontext.ModShift
		}
	}
	return e
}

// clickTracker counts consecutive clicks of one button in one cell.
type clickTracker struct {
	button gpucontext.Button
	x, y   int
	at     time.Time
	count  int
}

func (c *clickTracker) click(b gpucontext.Button, x, y int, at time.Time) int {
	if c.count > 0 && b == c.button && x == c.x && y == c.y && at.Sub(c.at) <= doubleClickTime {
		c.count++
	} else {
		c.count = 1
	}
	c.button, c.x, c.y, c.at = b, x, y, at
	return c.count
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button gpucontext.Button
}{
	{tcell.Button1, gpucontext.ButtonLeft},
	{tcell.Button2, gpucontext.ButtonRight},
	{tcell.Button3, gpucontext.ButtonMiddle},
	{tcell.Button4, gpucontext.ButtonX1},
	{tcell.Button5, gpucontext.ButtonX2},
}

const buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 | tcell.Button5

func pressedButtons(m tcell.ButtonMask) gpucontext.Buttons {
	var b gpucontext.Buttons
	for _, mb := range mouseButtons {
		if m&mb.mask != 0 {
			b |= platform.ButtonsFor(mb.button)
		}
	}
	return b
}

// translate converts one tcell event into zero or more raw events.
// tcell reports the mouse as a button state, so presses and releases
// are derived from the change against the previous state.
func (p *Platform) translate(ev tcell.Event, fn func(platform.Event)) {
	w := p.current()
	if w == nil {
		return
	}
	id := w.id

	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		width, height := w.setCells(cols, rows)
		fn(platform.Event{Kind: platform.Resized, Window: id, Width: width, Height: height})

	case *tcell.EventKey:
		e := keyEvent(ev)
		e.Window = id
		fn(e)
		e.Kind = platform.KeyRelease
		fn(e)

	case *tcell.EventMouse:
		p.mouse(ev, id, fn)

	case *tcell.EventFocus:
		kind := platform.FocusLost
		if ev.Focused {
			kind = platform.FocusGained
		}
		fn(platform.Event{Kind: kind, Window: id})
	}
}

func (p *Platform) mouse(ev *tcell.EventMouse, id platform.WindowID, fn func(platform.Event)) {
	cx, cy := ev.Position()
	mods := modifiers(ev.Modifiers())
	mask := ev.Buttons()
	x, y := float64(cx), float64(cy*2)

	base := platform.Event{Window: id, Mods: mods, X: x, Y: y, Buttons: pressedButtons(mask)}

	if cx != p.mouseX || cy != p.mouseY {
		p.mouseX, p.mouseY = cx, cy
		e := base
		e.Kind = platform.MouseMove
		e.Button = gpucontext.ButtonNone
		e.Buttons = pressedButtons(p.buttons & mask)
		fn(e)
	}

	changed := (p.buttons ^ mask) & buttonMask
	for _, mb := range mouseButtons {
		if changed&mb.mask == 0 || mask&mb.mask != 0 {
			continue
		}
		e := base
		e.Kind = platform.MouseUp
		e.Button = mb.button
		e.Clicks = p.clicks.count
		fn(e)
	}
	for _, mb := range mouseButtons {
		if changed&mb.mask == 0 || mask&mb.mask == 0 {
			continue
		}
		e := base
		e.Kind = platform.MouseDown
		e.Button = mb.button
		e.Clicks = p.clicks.click(mb.button, cx, cy, ev.When())
		fn(e)
	}
	p.buttons = mask & buttonMask

	var sx, sy float64
	if mask&tcell.WheelUp != 0 {
		sy++
	}
	if mask&tcell.WheelDown != 0 {
		sy--
	}
	if mask&tcell.WheelLeft != 0 {
		sx++
	}
	if mask&tcell.WheelRight != 0 {
		sx--
	}
	if sx != 0 || sy != 0 {
		e := base
		e.Kind = platform.Scroll
		e.Button = gpucontext.ButtonNone
		e.ScrollX, e.ScrollY = sx, sy
		fn(e)
	}
}
