package ggwin

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Cursor is a window cursor kind. Names follow CSS cursor keywords.
type Cursor uint8

// Cursor kinds.
const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorText
	CursorCrosshair
	CursorRowResize
	CursorColResize
	CursorNResize
	CursorSResize
	CursorEResize
	CursorWResize
	CursorGrab
	CursorGrabbing
	CursorNotAllowed
)

var cursorNames = [...]string{
	CursorDefault:    "default",
	CursorPointer:    "pointer",
	CursorText:       "text",
	CursorCrosshair:  "crosshair",
	CursorRowResize:  "row-resize",
	CursorColResize:  "col-resize",
	CursorNResize:    "n-resize",
	CursorSResize:    "s-resize",
	CursorEResize:    "e-resize",
	CursorWResize:    "w-resize",
	CursorGrab:       "grab",
	CursorGrabbing:   "grabbing",
	CursorNotAllowed: "not-allowed",
}

func (c Cursor) String() string {
	if int(c) < len(cursorNames) {
		return cursorNames[c]
	}
	return fmt.Sprintf("Cursor(%d)", c)
}

// ParseCursor returns the cursor with the given CSS name.
func ParseCursor(name string) (Cursor, bool) {
	for i, n := range cursorNames {
		if n == name {
			return Cursor(i), true
		}
	}
	return CursorDefault, false
}

// Shape maps the cursor onto the closest platform shape.
func (c Cursor) Shape() gpucontext.CursorShape {
	switch c {
	case CursorPointer:
		return gpucontext.CursorPointer
	case CursorText:
		return gpucontext.CursorText
	case CursorCrosshair:
		return gpucontext.CursorCrosshair
	case CursorRowResize, CursorNResize, CursorSResize:
		return gpucontext.CursorResizeNS
	case CursorColResize, CursorEResize, CursorWResize:
		return gpucontext.CursorResizeEW
	case CursorGrab, CursorGrabbing:
		return gpucontext.CursorMove
	case CursorNotAllowed:
		return gpucontext.CursorNotAllowed
	default:
		return gpucontext.CursorDefault
	}
}
