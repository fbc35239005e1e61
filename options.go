package ggwin

import (
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/frame"
	"github.com/gogpu/ggwin/gpu"
	"github.com/gogpu/ggwin/platform"
)

// Device is the shared GPU device: a gpucontext.DeviceProvider that can
// also submit each presented frame. A Device that also implements
// frame.SurfaceReleaser is told when a window's surface goes away.
type Device interface {
	gpucontext.DeviceProvider
	Submit(p frame.Presentation) error
	Release()
}

// AppOption configures an App during creation.
//
// Example:
//
//	// Default: best registered platform, GPU device from wgpu
//	app, err := ggwin.New()
//
//	// Headless platform for tests
//	app, err := ggwin.New(ggwin.WithPlatform(headless.New()))
type AppOption func(*appOptions)

type appOptions struct {
	platform     platform.Platform
	platformName string
	device       Device
	openDevice   func() (Device, error)
	gpuOpts      []gpu.Option
	clock        Clock
	fatal        FatalHandler
	pollTimeout  time.Duration
	interval     time.Duration
	queueCap     int
}

// DefaultPollTimeout bounds each native event wait inside Run.
const DefaultPollTimeout = time.Second / 60

func defaultAppOptions() appOptions {
	return appOptions{
		clock:       systemClock{},
		fatal:       defaultFatal,
		pollTimeout: DefaultPollTimeout,
	}
}

// WithPlatform uses an already opened platform. The App takes ownership
// and closes it in Close.
func WithPlatform(p platform.Platform) AppOption {
	return func(o *appOptions) {
		o.platform = p
	}
}

// WithPlatformName selects a registered platform backend by name.
func WithPlatformName(name string) AppOption {
	return func(o *appOptions) {
		o.platformName = name
	}
}

// WithDevice shares an existing GPU device. The App does not release it.
func WithDevice(d Device) AppOption {
	return func(o *appOptions) {
		o.device = d
	}
}

// WithDeviceOpener replaces the function that opens the GPU device.
func WithDeviceOpener(open func() (Device, error)) AppOption {
	return func(o *appOptions) {
		o.openDevice = open
	}
}

// WithGPUOptions passes options to gpu.Open.
func WithGPUOptions(opts ...gpu.Option) AppOption {
	return func(o *appOptions) {
		o.gpuOpts = append(o.gpuOpts, opts...)
	}
}

// WithClock sets the time source of the frame clock.
func WithClock(c Clock) AppOption {
	return func(o *appOptions) {
		o.clock = c
	}
}

// WithFatalHandler replaces the handler invoked by MustNewWindow and
// Shared on startup failure.
func WithFatalHandler(h FatalHandler) AppOption {
	return func(o *appOptions) {
		o.fatal = h
	}
}

// WithPollTimeout bounds each native event wait inside Run.
func WithPollTimeout(d time.Duration) AppOption {
	return func(o *appOptions) {
		o.pollTimeout = d
	}
}

// WithFrameInterval overrides the display refresh interval used by the
// frame clock.
func WithFrameInterval(d time.Duration) AppOption {
	return func(o *appOptions) {
		o.interval = d
	}
}

// WithQueueCapacity bounds the number of queued pointer moves per window.
func WithQueueCapacity(n int) AppOption {
	return func(o *appOptions) {
		o.queueCap = n
	}
}

// WindowOption configures a Window during creation.
type WindowOption func(*windowOptions)

type windowOptions struct {
	preserve  bool
	resizable bool
	hidden    [3]bool
	cursor    Cursor
}

func defaultWindowOptions() windowOptions {
	return windowOptions{resizable: true}
}

// WithPreserveDrawingBuffer makes drawing accumulate across frames.
func WithPreserveDrawingBuffer(preserve bool) WindowOption {
	return func(o *windowOptions) {
		o.preserve = preserve
	}
}

// WithResizable sets whether the user can resize the window.
func WithResizable(resizable bool) WindowOption {
	return func(o *windowOptions) {
		o.resizable = resizable
	}
}

// WithoutButton hides a title bar button.
func WithoutButton(b platform.ChromeButton) WindowOption {
	return func(o *windowOptions) {
		if int(b) < len(o.hidden) {
			o.hidden[b] = true
		}
	}
}

// WithCursor sets the initial cursor.
func WithCursor(c Cursor) WindowOption {
	return func(o *windowOptions) {
		o.cursor = c
	}
}
