package input

import (
	"strings"

	"github.com/gogpu/gpucontext"
)

// Modifiers is the normalized modifier bitset carried by pointer, wheel
// and key events.
type Modifiers uint8

// Modifier bits. Any combination may be set.
const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModMeta
)

// ModifiersFrom converts platform modifier state. Lock keys are dropped.
func ModifiersFrom(m gpucontext.Modifiers) Modifiers {
	var out Modifiers
	if m.HasControl() {
		out |= ModCtrl
	}
	if m.HasShift() {
		out |= ModShift
	}
	if m.HasAlt() {
		out |= ModAlt
	}
	if m.HasSuper() {
		out |= ModMeta
	}
	return out
}

// Ctrl reports whether the control bit is set.
func (m Modifiers) Ctrl() bool { return m&ModCtrl != 0 }

// Shift reports whether the shift bit is set.
func (m Modifiers) Shift() bool { return m&ModShift != 0 }

// Alt reports whether the alt (option) bit is set.
func (m Modifiers) Alt() bool { return m&ModAlt != 0 }

// Meta reports whether the meta (command, super) bit is set.
func (m Modifiers) Meta() bool { return m&ModMeta != 0 }

// String returns the set bits joined with "+", or "none".
func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m.Ctrl() {
		parts = append(parts, "ctrl")
	}
	if m.Shift() {
		parts = append(parts, "shift")
	}
	if m.Alt() {
		parts = append(parts, "alt")
	}
	if m.Meta() {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}
