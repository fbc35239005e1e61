// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform defines the native windowing surface ggwin runs on:
// window creation and chrome, the native event wait, clipboard, links
// and appearance.
//
// Backends live in sub-packages and register themselves by name:
//
//	import _ "github.com/gogpu/ggwin/platform/headless"
//
//	p, err := platform.Open("") // GGWIN_PLATFORM, else best registered
//
// Backends translate native events into [Event] values in window-local
// logical points with the origin at the top-left corner.
package platform

import (
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/frame"
)

// WindowID identifies a native window within one Platform.
type WindowID uint32

// Appearance selects the application color scheme.
type Appearance uint8

// Appearance values.
const (
	AppearanceAuto Appearance = iota
	AppearanceLight
	AppearanceDark
)

func (a Appearance) String() string {
	switch a {
	case AppearanceLight:
		return "light"
	case AppearanceDark:
		return "dark"
	default:
		return "auto"
	}
}

// ChromeButton names a title bar button.
type ChromeButton uint8

// Title bar buttons.
const (
	CloseButton ChromeButton = iota
	MiniaturizeButton
	ZoomButton
)

// WindowConfig describes a window to create. Width and Height are
// logical points.
type WindowConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Platform is a native windowing backend.
//
// Every method except Wake must be called from the thread running the
// application loop.
type Platform interface {
	gpucontext.PlatformProvider

	// Name returns the registry name of the backend.
	Name() string

	// CreateWindow creates a hidden window.
	CreateWindow(cfg WindowConfig) (Window, error)

	// WaitEvents blocks until at least one native event is available, the
	// timeout elapses or Wake is called, then delivers every pending event
	// to fn in the order the system produced them. A zero timeout never
	// blocks; a negative timeout waits without limit.
	WaitEvents(timeout time.Duration, fn func(Event)) error

	// Wake unblocks a pending WaitEvents. Safe to call from any goroutine
	// and when nothing is waiting.
	Wake()

	// OpenURL opens url with the system handler.
	OpenURL(url string) error

	// SetAppearance overrides the system color scheme.
	SetAppearance(a Appearance) error

	// RefreshInterval is the display refresh period driving frame ticks.
	RefreshInterval() time.Duration

	// Close shuts the backend down. Windows must be destroyed first.
	Close() error
}

// Window is a native window. Size reports logical points.
type Window interface {
	gpucontext.WindowProvider

	ID() WindowID

	// Show makes the window visible and gives it input focus.
	Show()

	// Destroy closes the native window. The window is unusable afterward.
	Destroy()

	Title() string
	SetTitle(title string)

	// SetSize resizes the content area, in logical points.
	SetSize(width, height int)

	Resizable() bool
	SetResizable(resizable bool)

	ButtonVisible(b ChromeButton) bool
	SetButtonVisible(b ChromeButton, visible bool)

	SetCursor(shape gpucontext.CursorShape)

	// Swapchain returns the presentation chain of the window.
	Swapchain() frame.Swapchain
}
