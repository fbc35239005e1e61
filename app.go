package ggwin

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/event"
	"github.com/gogpu/ggwin/gpu"
	"github.com/gogpu/ggwin/platform"
)

// App owns the native event pump, the GPU device shared by all windows,
// and the running flag of the application loop.
//
// Create one with New, or use the lazily created process-wide Shared
// instance. Apart from Quit, Post and Running, App methods must be
// called from the goroutine that drives the loop.
type App struct {
	platform   platform.Platform
	device     Device
	ownsDevice bool

	clock       Clock
	fatal       FatalHandler
	pollTimeout time.Duration
	interval    time.Duration
	queueCap    int

	windows map[platform.WindowID]*Window
	order   []*Window

	running atomic.Bool

	taskMu sync.Mutex
	tasks  []func()

	closed bool
}

var (
	shared     *App
	sharedOnce sync.Once
)

// Shared returns the process-wide App, creating it on first use with
// default options. A failure to open a platform or GPU device is fatal.
func Shared() *App {
	sharedOnce.Do(func() {
		a, err := New()
		if err != nil {
			defaultFatal(err)
			return
		}
		shared = a
	})
	return shared
}

// New creates an App: it opens the platform backend and the shared GPU
// device.
func New(opts ...AppOption) (*App, error) {
	o := defaultAppOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := o.platform
	if p == nil {
		var err error
		if p, err = platform.Open(o.platformName); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoPlatform, err)
		}
	}

	dev, owns := o.device, false
	if dev == nil {
		open := o.openDevice
		if open == nil {
			open = func() (Device, error) {
				d, err := gpu.Open(o.gpuOpts...)
				if err != nil {
					return nil, err
				}
				return d, nil
			}
		}
		var err error
		if dev, err = open(); err != nil || dev == nil {
			if cerr := p.Close(); cerr != nil {
				Logger().Warn("ggwin: platform close failed", "err", cerr)
			}
			return nil, fmt.Errorf("%w: %v", ErrNoGPUDevice, err)
		}
		owns = true
	}

	interval := o.interval
	if interval <= 0 {
		interval = p.RefreshInterval()
	}
	if interval <= 0 {
		interval = DefaultPollTimeout
	}

	a := &App{
		platform:    p,
		device:      dev,
		ownsDevice:  owns,
		clock:       o.clock,
		fatal:       o.fatal,
		pollTimeout: o.pollTimeout,
		interval:    interval,
		queueCap:    o.queueCap,
		windows:     make(map[platform.WindowID]*Window),
	}
	Logger().Info("ggwin: app started",
		"platform", p.Name(),
		"adapter", dev.AdapterInfo().Name,
		"refresh", interval,
	)
	return a, nil
}

// Platform returns the native backend.
func (a *App) Platform() platform.Platform { return a.platform }

// Device returns the shared GPU device.
func (a *App) Device() gpucontext.DeviceProvider { return a.device }

// Queue returns the shared GPU command queue.
func (a *App) Queue() gpucontext.Queue { return a.device.Queue() }

// Windows returns the live windows in creation order.
func (a *App) Windows() []*Window { return slices.Clone(a.order) }

// Running reports whether Run is looping.
func (a *App) Running() bool { return a.running.Load() }

// Run drives the application loop until Quit is called, ctx is done or
// tick returns an error. Each iteration pumps native events into the
// windows' queues, waiting at most the poll timeout, then calls tick
// once. tick is not called after the loop has observed Quit.
//
// Run returns the error from tick, ctx.Err() if the context ended the
// loop, or nil after Quit.
func (a *App) Run(ctx context.Context, tick func() error) error {
	if a.closed {
		return ErrAppClosed
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	stop := context.AfterFunc(ctx, a.Quit)
	defer stop()

	for {
		a.PollEvents(a.pollTimeout)
		if !a.running.Load() {
			return ctx.Err()
		}
		if tick == nil {
			continue
		}
		if err := tick(); err != nil {
			a.running.Store(false)
			return err
		}
	}
}

// Quit stops Run. If the loop is blocked waiting for native events it is
// woken. Quit does nothing when the loop is not running, and is safe to
// call from any goroutine.
func (a *App) Quit() {
	if a.running.CompareAndSwap(true, false) {
		a.platform.Wake()
	}
}

// PollEvents pumps native events once, for callers that own their loop.
// It waits up to timeout for the first event (zero polls, negative
// waits indefinitely), cut short when a window's next frame is due or a
// task is posted. Every event delivered by the platform is routed into
// its window's queue before PollEvents returns. It returns the number of
// events queued, including FrameReady ticks.
func (a *App) PollEvents(timeout time.Duration) int {
	if a.closed {
		return 0
	}
	a.runTasks()

	wait := timeout
	if a.hasTasks() {
		wait = 0
	}
	now := a.clock.Now()
	for _, w := range a.order {
		if d, ok := w.clock.until(now); ok && (wait < 0 || d < wait) {
			wait = d
		}
	}

	n := 0
	err := a.platform.WaitEvents(wait, func(e platform.Event) {
		if a.dispatch(e) {
			n++
		}
	})
	if err != nil {
		Logger().Warn("ggwin: event wait failed", "err", err)
	}
	a.runTasks()

	now = a.clock.Now()
	for _, w := range a.order {
		if w.clock.due(now) && w.queue.Push(event.Event{Kind: event.FrameReady}) {
			n++
		}
	}
	return n
}

// Post schedules fn to run on the loop goroutine during the next
// PollEvents, waking it if it is blocked. Safe for concurrent use.
func (a *App) Post(fn func()) {
	a.taskMu.Lock()
	a.tasks = append(a.tasks, fn)
	a.taskMu.Unlock()
	a.platform.Wake()
}

func (a *App) hasTasks() bool {
	a.taskMu.Lock()
	defer a.taskMu.Unlock()
	return len(a.tasks) > 0
}

func (a *App) runTasks() {
	a.taskMu.Lock()
	tasks := a.tasks
	a.tasks = nil
	a.taskMu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

// dispatch routes a raw event to its window. Events for unknown windows
// are dropped.
func (a *App) dispatch(raw platform.Event) bool {
	w := a.windows[raw.Window]
	if w == nil {
		Logger().Debug("ggwin: event for unknown window", "window", raw.Window, "kind", raw.Kind)
		return false
	}
	return w.handle(raw)
}

func (a *App) remove(w *Window) {
	delete(a.windows, w.native.ID())
	if i := slices.Index(a.order, w); i >= 0 {
		a.order = slices.Delete(a.order, i, i+1)
	}
}

// Close stops the loop, destroys every window, releases the GPU device
// if the App opened it, and closes the platform.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.Quit()
	for _, w := range slices.Clone(a.order) {
		w.Destroy()
	}
	a.runTasks()
	a.closed = true
	if a.ownsDevice {
		a.device.Release()
	}
	return a.platform.Close()
}
