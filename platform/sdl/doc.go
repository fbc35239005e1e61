// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sdl is the desktop platform backend, built on SDL2 through
// go-sdl2.
//
// The backend needs the SDL2 development libraries and cgo, so it is
// only compiled with the sdl build tag:
//
//	go build -tags sdl ./...
//
// Without the tag the package is empty and registers nothing. Windows
// are created with high-DPI support; presented frames are uploaded to a
// streaming texture and copied to the window by the SDL renderer.
//
// SDL requires its calls on the main OS thread. The package locks the
// main goroutine to it during init, so the application loop must run on
// the main goroutine.
package sdl
