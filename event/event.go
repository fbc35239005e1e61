// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package event defines the normalized window event model and the
// per-window pull queue that carries it to the caller.
package event

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/ggwin/input"
)

// Kind identifies the variant of an Event.
type Kind uint8

// Event kinds. The zero Kind is never delivered.
const (
	Invalid Kind = iota
	PointerDown
	PointerUp
	PointerMove
	Wheel
	KeyDown
	KeyUp
	Resize
	Close
	Focus
	Blur
	FrameReady
	ContextMenu
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	PointerDown: "PointerDown",
	PointerUp:   "PointerUp",
	PointerMove: "PointerMove",
	Wheel:       "Wheel",
	KeyDown:     "KeyDown",
	KeyUp:       "KeyUp",
	Resize:      "Resize",
	Close:       "Close",
	Focus:       "Focus",
	Blur:        "Blur",
	FrameReady:  "FrameReady",
	ContextMenu: "ContextMenu",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Synthetic reports whether events of this kind are generated internally
// and coalesced rather than queued one per occurrence.
func (k Kind) Synthetic() bool {
	return k == Resize || k == FrameReady
}

// Event is a normalized window event. Fields that do not apply to the
// Kind are zero.
//
// Coordinates are window-local logical points with Y growing downward.
// Wheel deltas are sign-adjusted so that positive values move content
// with the natural scroll direction. Resize dimensions are physical
// pixels.
type Event struct {
	Kind Kind
	Mods input.Modifiers

	X, Y float64

	// Pointer fields. Button follows W3C numbering (left 0, middle 1,
	// right 2).
	Button     gpucontext.Button
	Buttons    gpucontext.Buttons
	ClickCount int

	// Key fields. Code is the physical key; Key is the logical key
	// name produced by input.Decode. Text is the NFC-composed character
	// data of a printable key.
	Code   gpucontext.Key
	Key    string
	Text   string
	Dead   bool
	Repeat bool

	DeltaX, DeltaY float64

	Width, Height int
}

func (e Event) String() string {
	switch e.Kind {
	case PointerDown, PointerUp, ContextMenu:
		return fmt.Sprintf("%s(x=%g y=%g button=%d clicks=%d mods=%s)", e.Kind, e.X, e.Y, e.Button, e.ClickCount, e.Mods)
	case PointerMove:
		return fmt.Sprintf("%s(x=%g y=%g buttons=%d)", e.Kind, e.X, e.Y, e.Buttons)
	case Wheel:
		return fmt.Sprintf("%s(dx=%g dy=%g)", e.Kind, e.DeltaX, e.DeltaY)
	case KeyDown, KeyUp:
		return fmt.Sprintf("%s(key=%q text=%q code=%d repeat=%v mods=%s)", e.Kind, e.Key, e.Text, e.Code, e.Repeat, e.Mods)
	case Resize:
		return fmt.Sprintf("%s(%dx%d)", e.Kind, e.Width, e.Height)
	default:
		return e.Kind.String()
	}
}

// sameMove reports whether two PointerMove events carry identical state.
func sameMove(a, b Event) bool {
	return a.Kind == PointerMove && b.Kind == PointerMove &&
		a.X == b.X && a.Y == b.Y && a.Buttons == b.Buttons && a.Mods == b.Mods
}
