//go:build sdl

package sdl

import (
	"github.com/gogpu/gpucontext"
	sdl2 "github.com/veandco/go-sdl2/sdl"
)

var scancodes = map[sdl2.Scancode]gpucontext.Key{
	sdl2.SCANCODE_A:            gpucontext.KeyA,
	sdl2.SCANCODE_B:            gpucontext.KeyB,
	sdl2.SCANCODE_C:            gpucontext.KeyC,
	sdl2.SCANCODE_D:            gpucontext.KeyD,
	sdl2.SCANCODE_E:            gpucontext.KeyE,
	sdl2.SCANCODE_F:            gpucontext.KeyF,
	sdl2.SCANCODE_G:            gpucontext.KeyG,
	sdl2.SCANCODE_H:            gpucontext.KeyH,
	sdl2.SCANCODE_I:            gpucontext.KeyI,
	sdl2.SCANCODE_J:            gpucontext.KeyJ,
	sdl2.SCANCODE_K:            gpucontext.KeyK,
	sdl2.SCANCODE_L:            gpucontext.KeyL,
	sdl2.SCANCODE_M:            gpucontext.KeyM,
	sdl2.SCANCODE_N:            gpucontext.KeyN,
	sdl2.SCANCODE_O:            gpucontext.KeyO,
	sdl2.SCANCODE_P:            gpucontext.KeyP,
	sdl2.SCANCODE_Q:            gpucontext.KeyQ,
	sdl2.SCANCODE_R:            gpucontext.KeyR,
	sdl2.SCANCODE_S:            gpucontext.KeyS,
	sdl2.SCANCODE_T:            gpucontext.KeyT,
	sdl2.SCANCODE_U:            gpucontext.KeyU,
	sdl2.SCANCODE_V:            gpucontext.KeyV,
	sdl2.SCANCODE_W:            gpucontext.KeyW,
	sdl2.SCANCODE_X:            gpucontext.KeyX,
	sdl2.SCANCODE_Y:            gpucontext.KeyY,
	sdl2.SCANCODE_Z:            gpucontext.KeyZ,
	sdl2.SCANCODE_0:            gpucontext.Key0,
	sdl2.SCANCODE_1:            gpucontext.Key1,
	sdl2.SCANCODE_2:            gpucontext.Key2,
	sdl2.SCANCODE_3:            gpucontext.Key3,
	sdl2.SCANCODE_4:            gpucontext.Key4,
	sdl2.SCANCODE_5:            gpucontext.Key5,
	sdl2.SCANCODE_6:            gpucontext.Key6,
	sdl2.SCANCODE_7:            gpucontext.Key7,
	sdl2.SCANCODE_8:            gpucontext.Key8,
	sdl2.SCANCODE_9:            gpucontext.Key9,
	sdl2.SCANCODE_F1:           gpucontext.KeyF1,
	sdl2.SCANCODE_F2:           gpucontext.KeyF2,
	sdl2.SCANCODE_F3:           gpucontext.KeyF3,
	sdl2.SCANCODE_F4:           gpucontext.KeyF4,
	sdl2.SCANCODE_F5:           gpucontext.KeyF5,
	sdl2.SCANCODE_F6:           gpucontext.KeyF6,
	sdl2.SCANCODE_F7:           gpucontext.KeyF7,
	sdl2.SCANCODE_F8:           gpucontext.KeyF8,
	sdl2.SCANCODE_F9:           gpucontext.KeyF9,
	sdl2.SCANCODE_F10:          gpucontext.KeyF10,
	sdl2.SCANCODE_F11:          gpucontext.KeyF11,
	sdl2.SCANCODE_F12:          gpucontext.KeyF12,
	sdl2.SCANCODE_ESCAPE:       gpucontext.KeyEscape,
	sdl2.SCANCODE_TAB:          gpucontext.KeyTab,
	sdl2.SCANCODE_BACKSPACE:    gpucontext.KeyBackspace,
	sdl2.SCANCODE_RETURN:       gpucontext.KeyEnter,
	sdl2.SCANCODE_SPACE:        gpucontext.KeySpace,
	sdl2.SCANCODE_INSERT:       gpucontext.KeyInsert,
	sdl2.SCANCODE_DELETE:       gpucontext.KeyDelete,
	sdl2.SCANCODE_HOME:         gpucontext.KeyHome,
	sdl2.SCANCODE_END:          gpucontext.KeyEnd,
	sdl2.SCANCODE_PAGEUP:       gpucontext.KeyPageUp,
	sdl2.SCANCODE_PAGEDOWN:     gpucontext.KeyPageDown,
	sdl2.SCANCODE_LEFT:         gpucontext.KeyLeft,
	sdl2.SCANCODE_RIGHT:        gpucontext.KeyRight,
	sdl2.SCANCODE_UP:           gpucontext.KeyUp,
	sdl2.SCANCODE_DOWN:         gpucontext.KeyDown,
	sdl2.SCANCODE_LSHIFT:       gpucontext.KeyLeftShift,
	sdl2.SCANCODE_RSHIFT:       gpucontext.KeyRightShift,
	sdl2.SCANCODE_LCTRL:        gpucontext.KeyLeftControl,
	sdl2.SCANCODE_RCTRL:        gpucontext.KeyRightControl,
	sdl2.SCANCODE_LALT:         gpucontext.KeyLeftAlt,
	sdl2.SCANCODE_RALT:         gpucontext.KeyRightAlt,
	sdl2.SCANCODE_LGUI:         gpucontext.KeyLeftSuper,
	sdl2.SCANCODE_RGUI:         gpucontext.KeyRightSuper,
	sdl2.SCANCODE_MINUS:        gpucontext.KeyMinus,
	sdl2.SCANCODE_EQUALS:       gpucontext.KeyEqual,
	sdl2.SCANCODE_LEFTBRACKET:  gpucontext.KeyLeftBracket,
	sdl2.SCANCODE_RIGHTBRACKET: gpucontext.KeyRightBracket,
	sdl2.SCANCODE_BACKSLASH:    gpucontext.KeyBackslash,
	sdl2.SCANCODE_SEMICOLON:    gpucontext.KeySemicolon,
	sdl2.SCANCODE_APOSTROPHE:   gpucontext.KeyApostrophe,
	sdl2.SCANCODE_GRAVE:        gpucontext.KeyGrave,
	sdl2.SCANCODE_COMMA:        gpucontext.KeyComma,
	sdl2.SCANCODE_PERIOD:       gpucontext.KeyPeriod,
	sdl2.SCANCODE_SLASH:        gpucontext.KeySlash,
	sdl2.SCANCODE_KP_0:         gpucontext.KeyNumpad0,
	sdl2.SCANCODE_KP_1:         gpucontext.KeyNumpad1,
	sdl2.SCANCODE_KP_2:         gpucontext.KeyNumpad2,
	sdl2.SCANCODE_KP_3:         gpucontext.KeyNumpad3,
	sdl2.SCANCODE_KP_4:         gpucontext.KeyNumpad4,
	sdl2.SCANCODE_KP_5:         gpucontext.KeyNumpad5,
	sdl2.SCANCODE_KP_6:         gpucontext.KeyNumpad6,
	sdl2.SCANCODE_KP_7:         gpucontext.KeyNumpad7,
	sdl2.SCANCODE_KP_8:         gpucontext.KeyNumpad8,
	sdl2.SCANCODE_KP_9:         gpucontext.KeyNumpad9,
	sdl2.SCANCODE_KP_PERIOD:    gpucontext.KeyNumpadDecimal,
	sdl2.SCANCODE_KP_DIVIDE:    gpucontext.KeyNumpadDivide,
	sdl2.SCANCODE_KP_MULTIPLY:  gpucontext.KeyNumpadMultiply,
	sdl2.SCANCODE_KP_MINUS:     gpucontext.KeyNumpadSubtract,
	sdl2.SCANCODE_KP_PLUS:      gpucontext.KeyNumpadAdd,
	sdl2.SCANCODE_KP_ENTER:     gpucontext.KeyNumpadEnter,
	sdl2.SCANCODE_CAPSLOCK:     gpucontext.KeyCapsLock,
	sdl2.SCANCODE_SCROLLLOCK:   gpucontext.KeyScrollLock,
	sdl2.SCANCODE_NUMLOCKCLEAR: gpucontext.KeyNumLock,
	sdl2.SCANCODE_PRINTSCREEN:  gpucontext.KeyPrintScreen,
	sdl2.SCANCODE_PAUSE:        gpucontext.KeyPause,
}

// scancodeKey maps a physical key position to its key.
func scancodeKey(sc sdl2.Scancode) gpucontext.Key {
	if k, ok := scancodes[sc]; ok {
		return k
	}
	return gpucontext.KeyUnknown
}
