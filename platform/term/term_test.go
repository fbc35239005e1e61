package term

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggwin/platform"
)

func newTestPlatform(t *testing.T, cols, rows int) (*Platform, tcell.SimulationScreen, platform.Window) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	p, err := New(sim)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	sim.SetSize(cols, rows)

	w, err := p.CreateWindow(platform.WindowConfig{Title: "test", Width: 400, Height: 300})
	if err != nil {
		t.Fatalf("CreateWindow() = %v", err)
	}
	return p, sim, w
}

// collect waits until n raw events have been delivered.
func collect(t *testing.T, p *Platform, n int) []platform.Event {
	t.Helper()
	var got []platform.Event
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < n {
		if time.Now().After(deadline) {
			t.Fatalf("got %d events %+v, want %d", len(got), got, n)
		}
		if err := p.WaitEvents(50*time.Millisecond, func(e platform.Event) {
			got = append(got, e)
		}); err != nil {
			t.Fatalf("WaitEvents() = %v", err)
		}
	}
	return got
}

func TestWindowCoversTerminal(t *testing.T) {
	p, _, w := newTestPlatform(t, 20, 5)

	if width, height := w.Size(); width != 20 || height != 10 {
		t.Errorf("Size() = %dx%d, want 20x10", width, height)
	}
	if w.ScaleFactor() != 1 {
		t.Errorf("ScaleFactor() = %v, want 1", w.ScaleFactor())
	}
	if w.Title() != "test" {
		t.Errorf("Title() = %q", w.Title())
	}
	if _, err := p.CreateWindow(platform.WindowConfig{}); !errors.Is(err, ErrWindowExists) {
		t.Errorf("second CreateWindow() = %v, want ErrWindowExists", err)
	}

	w.Destroy()
	if _, err := p.CreateWindow(platform.WindowConfig{}); err != nil {
		t.Errorf("CreateWindow() after Destroy = %v", err)
	}
}

func TestKeyEvents(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want platform.Event
	}{
		{"rune", tcell.KeyRune, 'a', tcell.ModNone,
			platform.Event{Key: gpucontext.KeyA, Text: "a"}},
		{"upper rune", tcell.KeyRune, 'Q', tcell.ModNone,
			platform.Event{Key: gpucontext.KeyQ, Text: "Q", Mods: gpucontext.ModShift}},
		{"non-ascii rune", tcell.KeyRune, '\u00e9', tcell.ModAlt,
			platform.Event{Key: gpucontext.KeyUnknown, Text: "\u00e9", Mods: gpucontext.ModAlt}},
		{"space", tcell.KeyRune, ' ', tcell.ModNone,
			platform.Event{Key: gpucontext.KeySpace, Text: " "}},
		{"ctrl letter", tcell.KeyCtrlC, 0, tcell.ModCtrl,
			platform.Event{Key: gpucontext.KeyC, Text: "c", Mods: gpucontext.ModControl}},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone,
			platform.Event{Key: gpucontext.KeyEnter}},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone,
			platform.Event{Key: gpucontext.KeyTab, Mods: gpucontext.ModShift}},
		{"arrow", tcell.KeyUp, 0, tcell.ModShift,
			platform.Event{Key: gpucontext.KeyUp, Mods: gpucontext.ModShift}},
		{"function", tcell.KeyF5, 0, tcell.ModNone,
			platform.Event{Key: gpucontext.KeyF5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keyEvent(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			want := tt.want
			want.Kind = platform.KeyPress
			if got != want {
				t.Errorf("keyEvent() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestKeyPressThenRelease(t *testing.T) {
	p, sim, w := newTestPlatform(t, 20, 5)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	evs := collect(t, p, 2)

	if evs[0].Kind != platform.KeyPress || evs[1].Kind != platform.KeyRelease {
		t.Fatalf("kinds = %v, %v, want press then release", evs[0].Kind, evs[1].Kind)
	}
	for _, e := range evs {
		if e.Window != w.ID() || e.Key != gpucontext.KeyX || e.Text != "x" {
			t.Errorf("event = %+v", e)
		}
	}
}

func TestMouseEvents(t *testing.T) {
	p, sim, _ := newTestPlatform(t, 20, 5)

	sim.InjectMouse(3, 2, tcell.Button1, tcell.ModNone)
	evs := collect(t, p, 2)
	if evs[0].Kind != platform.MouseMove || evs[0].X != 3 || evs[0].Y != 4 {
		t.Errorf("first event = %+v, want MouseMove(3,4)", evs[0])
	}
	down := evs[1]
	if down.Kind != platform.MouseDown || down.Button != gpucontext.ButtonLeft ||
		down.Buttons != gpucontext.ButtonsLeft || down.Clicks != 1 {
		t.Errorf("second event = %+v, want left MouseDown", down)
	}

	sim.InjectMouse(3, 2, tcell.ButtonNone, tcell.ModNone)
	evs = collect(t, p, 1)
	if up := evs[0]; up.Kind != platform.MouseUp || up.Button != gpucontext.ButtonLeft || up.Buttons != 0 {
		t.Errorf("release = %+v, want left MouseUp", up)
	}

	sim.InjectMouse(3, 2, tcell.Button1, tcell.ModNone)
	evs = collect(t, p, 1)
	if evs[0].Kind != platform.MouseDown || evs[0].Clicks != 2 {
		t.Errorf("second press = %+v, want double click", evs[0])
	}

	sim.InjectMouse(3, 2, tcell.WheelUp, tcell.ModNone)
	evs = collect(t, p, 2)
	if evs[0].Kind != platform.MouseUp {
		t.Errorf("event = %+v, want MouseUp", evs[0])
	}
	if s := evs[1]; s.Kind != platform.Scroll || s.ScrollY != 1 || s.ScrollX != 0 {
		t.Errorf("event = %+v, want Scroll up", s)
	}
}

func TestClickTracker(t *testing.T) {
	var c clickTracker
	t0 := time.Unix(100, 0)

	if n := c.click(gpucontext.ButtonLeft, 1, 1, t0); n != 1 {
		t.Errorf("first click = %d", n)
	}
	if n := c.click(gpucontext.ButtonLeft, 1, 1, t0.Add(100*time.Millisecond)); n != 2 {
		t.Errorf("second click = %d", n)
	}
	if n := c.click(gpucontext.ButtonLeft, 1, 1, t0.Add(200*time.Millisecond)); n != 3 {
		t.Errorf("third click = %d", n)
	}
	if n := c.click(gpucontext.ButtonRight, 1, 1, t0.Add(300*time.Millisecond)); n != 1 {
		t.Errorf("other button = %d", n)
	}
	if n := c.click(gpucontext.ButtonRight, 2, 1, t0.Add(400*time.Millisecond)); n != 1 {
		t.Errorf("other cell = %d", n)
	}
	if n := c.click(gpucontext.ButtonRight, 2, 1, t0.Add(time.Second)); n != 1 {
		t.Errorf("slow click = %d", n)
	}
}

func TestResizeAndFocus(t *testing.T) {
	p, sim, w := newTestPlatform(t, 20, 5)

	if err := sim.PostEvent(tcell.NewEventResize(30, 8)); err != nil {
		t.Fatalf("PostEvent() = %v", err)
	}
	evs := collect(t, p, 1)
	if e := evs[0]; e.Kind != platform.Resized || e.Width != 30 || e.Height != 16 {
		t.Errorf("event = %+v, want Resized(30x16)", e)
	}
	if width, height := w.Size(); width != 30 || height != 16 {
		t.Errorf("Size() = %dx%d, want 30x16", width, height)
	}

	if err := sim.PostEvent(tcell.NewEventFocus(false)); err != nil {
		t.Fatalf("PostEvent() = %v", err)
	}
	if e := collect(t, p, 1)[0]; e.Kind != platform.FocusLost {
		t.Errorf("event = %+v, want FocusLost", e)
	}

	w.Show()
	if e := collect(t, p, 1)[0]; e.Kind != platform.FocusGained {
		t.Errorf("event = %+v, want FocusGained", e)
	}
}

func TestPresentPaintsHalfBlocks(t *testing.T) {
	_, sim, w := newTestPlatform(t, 4, 2)

	chain := w.Swapchain()
	d, err := chain.NextDrawable(4, 4)
	if err != nil {
		t.Fatalf("NextDrawable() = %v", err)
	}
	img := d.Texture().RGBA()
	for x := range 4 {
		img.SetRGBA(x, 0, color.RGBA{R: 255, A: 255})
		img.SetRGBA(x, 1, color.RGBA{B: 255, A: 255})
	}
	if err := chain.Present(d); err != nil {
		t.Fatalf("Present() = %v", err)
	}

	cells, cols, _ := sim.GetContents()
	if cols != 4 {
		t.Fatalf("cols = %d, want 4", cols)
	}
	cell := cells[0]
	if len(cell.Runes) == 0 || cell.Runes[0] != upperHalf {
		t.Fatalf("cell runes = %q, want upper half block", cell.Runes)
	}
	fg, bg, _ := cell.Style.Decompose()
	if r, g, b := fg.RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("foreground = %d,%d,%d, want red", r, g, b)
	}
	if r, g, b := bg.RGB(); r != 0 || g != 0 || b != 255 {
		t.Errorf("background = %d,%d,%d, want blue", r, g, b)
	}
}

func TestWakeAndClose(t *testing.T) {
	p, _, _ := newTestPlatform(t, 10, 5)

	done := make(chan error, 1)
	go func() { done <- p.WaitEvents(-1, func(platform.Event) {}) }()
	time.Sleep(10 * time.Millisecond)
	p.Wake()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WaitEvents() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wake did not unblock WaitEvents")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := p.WaitEvents(0, func(platform.Event) {}); !errors.Is(err, ErrClosed) {
		t.Errorf("WaitEvents() after Close = %v, want ErrClosed", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestServices(t *testing.T) {
	p, _, _ := newTestPlatform(t, 10, 5)

	if err := p.ClipboardWrite("copied"); err != nil {
		t.Fatalf("ClipboardWrite() = %v", err)
	}
	if got, _ := p.ClipboardRead(); got != "copied" {
		t.Errorf("ClipboardRead() = %q", got)
	}
	if !p.DarkMode() {
		t.Error("DarkMode() = false by default")
	}
	_ = p.SetAppearance(platform.AppearanceLight)
	if p.DarkMode() {
		t.Error("DarkMode() = true after SetAppearance(light)")
	}
	if err := p.OpenURL("https://example.com"); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("OpenURL() = %v, want ErrUnsupported", err)
	}
}
