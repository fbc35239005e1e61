package ggwin

import (
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggwin/event"
	"github.com/gogpu/ggwin/frame"
	"github.com/gogpu/ggwin/platform/headless"
)

type fakeDevice struct {
	mu       sync.Mutex
	submits  []frame.Presentation
	surfaces []any
	released int
}

func (d *fakeDevice) Device() gpucontext.Device { return nil }

func (d *fakeDevice) Queue() gpucontext.Queue { return nil }

func (d *fakeDevice) Adapter() gpucontext.Adapter { return nil }

func (d *fakeDevice) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (d *fakeDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "fake", Type: gpucontext.AdapterTypeSoftware}
}

func (d *fakeDevice) Submit(p frame.Presentation) error {
	d.mu.Lock()
	d.submits = append(d.submits, p)
	d.mu.Unlock()
	return nil
}

func (d *fakeDevice) ReleaseSurface(surface any) {
	d.mu.Lock()
	d.surfaces = append(d.surfaces, surface)
	d.mu.Unlock()
}

func (d *fakeDevice) Release() {
	d.mu.Lock()
	d.released++
	d.mu.Unlock()
}

func (d *fakeDevice) Submits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.submits)
}

func (d *fakeDevice) LastSubmit() frame.Presentation {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.submits) == 0 {
		return frame.Presentation{}
	}
	return d.submits[len(d.submits)-1]
}

func (d *fakeDevice) ReleasedSurfaces() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.surfaces)
}

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

const testInterval = 16 * time.Millisecond

type testEnv struct {
	app    *App
	plat   *headless.Platform
	device *fakeDevice
	clock  *fakeClock
}

func newTestApp(t *testing.T, popts []headless.Option, opts ...AppOption) *testEnv {
	t.Helper()
	env := &testEnv{
		plat:   headless.New(popts...),
		device: &fakeDevice{},
		clock:  newFakeClock(),
	}
	base := []AppOption{
		WithPlatform(env.plat),
		WithDevice(env.device),
		WithClock(env.clock),
		WithFrameInterval(testInterval),
		WithFatalHandler(func(err error) { t.Errorf("unexpected fatal: %v", err) }),
	}
	a, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	env.app = a
	return env
}

func (env *testEnv) window(t *testing.T, w, h int, opts ...WindowOption) (*Window, *headless.Window) {
	t.Helper()
	win, err := env.app.NewWindow(w, h, t.Name(), opts...)
	if err != nil {
		t.Fatalf("NewWindow() = %v", err)
	}
	hw := env.plat.Window(win.ID())
	if hw == nil {
		t.Fatal("headless window not found")
	}
	return win, hw
}

func drain(w *Window) []event.Event {
	var out []event.Event
	for {
		e, ok := w.PollEvent()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func kinds(evs []event.Event) []event.Kind {
	out := make([]event.Kind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func sameKinds(a, b []event.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isColor(c color.RGBA, want color.RGBA) bool {
	near := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d >= -3 && d <= 3
	}
	return near(c.R, want.R) && near(c.G, want.G) && near(c.B, want.B) && near(c.A, want.A)
}
