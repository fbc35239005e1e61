package platform

import "github.com/gogpu/gpucontext"

// EventKind identifies a raw native event.
type EventKind uint8

// Raw event kinds.
const (
	MouseDown EventKind = iota + 1
	MouseUp
	MouseMove
	Scroll
	KeyPress
	KeyRelease
	Resized
	CloseRequested
	FocusGained
	FocusLost
	Occluded
)

// Event is a native event translated to the platform-independent
// vocabulary, before normalization.
//
// Coordinates are logical points from the top-left of the content area.
// ScrollX and ScrollY use the native convention: positive Y when the
// wheel moves away from the user. Width and Height of a Resized event
// are logical points.
type Event struct {
	Kind   EventKind
	Window WindowID
	Mods   gpucontext.Modifiers

	X, Y    float64
	Button  gpucontext.Button
	Buttons gpucontext.Buttons
	Clicks  int

	ScrollX, ScrollY float64

	Key    gpucontext.Key
	Code   uint16
	Text   string
	Repeat bool

	Width, Height int

	Hidden bool
}
