package input

import (
	"unicode"
	"unicode/utf8"

	"github.com/gogpu/gpucontext"
	"golang.org/x/text/unicode/norm"
)

// Logical key names that are not taken from character data.
const (
	KeyDead         = "Dead"
	KeyUnidentified = "Unidentified"
)

// RawKey is a key record as delivered by a platform backend.
type RawKey struct {
	// Key is the platform-independent physical key.
	Key gpucontext.Key

	// Code is the backend's native key code, passed through untouched.
	Code uint16

	// Text is the composed character data produced by the key, if any.
	Text string

	// Mods is the platform modifier state at the time of the event.
	Mods gpucontext.Modifiers

	// Repeat is true for auto-repeat presses.
	Repeat bool
}

// Decoded is the normalized form of a RawKey.
type Decoded struct {
	Mods Modifiers

	// Key is the symbolic name of a special key, or the first scalar of
	// the raw character data exactly as the backend produced it.
	Key string

	// Text is the NFC-composed character data of a printable key. It is
	// empty for special, dead and unidentified keys.
	Text string

	Dead   bool
	Repeat bool
}

var specialKeys = map[gpucontext.Key]string{
	gpucontext.KeyEnter:        "Enter",
	gpucontext.KeyNumpadEnter:  "Enter",
	gpucontext.KeyTab:          "Tab",
	gpucontext.KeyBackspace:    "Backspace",
	gpucontext.KeyEscape:       "Escape",
	gpucontext.KeyCapsLock:     "CapsLock",
	gpucontext.KeyLeftShift:    "Shift",
	gpucontext.KeyRightShift:   "Shift",
	gpucontext.KeyLeftControl:  "Control",
	gpucontext.KeyRightControl: "Control",
	gpucontext.KeyLeftAlt:      "Alt",
	gpucontext.KeyRightAlt:     "Alt",
	gpucontext.KeyLeftSuper:    "Meta",
	gpucontext.KeyRightSuper:   "Meta",
	gpucontext.KeyLeft:         "ArrowLeft",
	gpucontext.KeyRight:        "ArrowRight",
	gpucontext.KeyUp:           "ArrowUp",
	gpucontext.KeyDown:         "ArrowDown",
	gpucontext.KeyHome:         "Home",
	gpucontext.KeyEnd:          "End",
	gpucontext.KeyPageUp:       "PageUp",
	gpucontext.KeyPageDown:     "PageDown",
	gpucontext.KeyDelete:       "Delete",
	gpucontext.KeyInsert:       "Insert",
	gpucontext.KeyF1:           "F1",
	gpucontext.KeyF2:           "F2",
	gpucontext.KeyF3:           "F3",
	gpucontext.KeyF4:           "F4",
	gpucontext.KeyF5:           "F5",
	gpucontext.KeyF6:           "F6",
	gpucontext.KeyF7:           "F7",
	gpucontext.KeyF8:           "F8",
	gpucontext.KeyF9:           "F9",
	gpucontext.KeyF10:          "F10",
	gpucontext.KeyF11:          "F11",
	gpucontext.KeyF12:          "F12",
}

// SpecialName returns the symbolic name of a non-printable key.
func SpecialName(k gpucontext.Key) (string, bool) {
	name, ok := specialKeys[k]
	return name, ok
}

// Decode normalizes a raw key record.
func Decode(raw RawKey) Decoded {
	d := Decoded{
		Mods:   ModifiersFrom(raw.Mods),
		Repeat: raw.Repeat,
	}
	if name, ok := specialKeys[raw.Key]; ok {
		d.Key = name
		return d
	}
	if raw.Text == "" {
		d.Key = KeyUnidentified
		return d
	}
	if allMarks(raw.Text) {
		d.Key = KeyDead
		d.Dead = true
		return d
	}
	r, _ := utf8.DecodeRuneInString(raw.Text)
	if r == utf8.RuneError {
		d.Key = KeyUnidentified
		return d
	}
	d.Key = string(r)
	d.Text = ComposeText(raw.Text)
	return d
}

// ComposeText returns s in Unicode normalization form C, so a base
// letter followed by combining marks becomes its precomposed form.
func ComposeText(s string) string {
	return norm.NFC.String(s)
}

// allMarks reports whether every scalar in s is a nonspacing, spacing
// or enclosing combining mark.
func allMarks(s string) bool {
	for _, r := range s {
		if !unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me) {
			return false
		}
	}
	return s != ""
}
