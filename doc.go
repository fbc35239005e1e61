// Package ggwin opens native windows backed by GPU-synchronized drawing
// surfaces and delivers their input as a normalized, ordered event stream.
//
// # Overview
//
// ggwin sits between three independently clocked actors: the native
// event loop, the frame swapchain, and the caller's own loop. It
// reconciles them so that the caller sees events and render
// opportunities in a deterministic order, never blocks except inside
// the event wait, and never crashes because a frame was unavailable.
//
// # Quick Start
//
//	import "github.com/gogpu/ggwin"
//
//	app := ggwin.Shared()
//	win := ggwin.NewWindow(400, 300, "demo")
//	win.Show()
//
//	_ = app.Run(ctx, func() error {
//	    for {
//	        ev, ok := win.PollEvent()
//	        if !ok {
//	            break
//	        }
//	        switch ev.Kind {
//	        case event.Close:
//	            app.Quit()
//	        case event.FrameReady:
//	            win.Frame(func(dc *gg.Context) {
//	                dc.ClearWithColor(gg.White)
//	                dc.SetRGB(1, 0, 0)
//	                dc.DrawRectangle(20, 50, 150, 150)
//	                _ = dc.Fill()
//	            })
//	        }
//	    }
//	    return nil
//	})
//
// # Architecture
//
// The library is organized into:
//   - ggwin: App (event pump, shared GPU device, cooperative loop) and Window
//   - event: normalized events and the per-window pull queue
//   - input: modifier and logical key decoding
//   - frame: acquire/present synchronization and preserve-drawing-buffer
//   - gpu: the shared wgpu device and queue
//   - platform: native backends (sdl, term, headless)
//
// # Threading
//
// Everything runs on the goroutine that calls Run or PollEvents.
// Only App.Quit and App.Post may be called from other goroutines.
package ggwin
