package frame

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
)

// fakeWindow is a mutable gpucontext.WindowProvider.
type fakeWindow struct {
	w, h  int
	scale float64
}

func (f *fakeWindow) Size() (int, int)     { return f.w, f.h }
func (f *fakeWindow) ScaleFactor() float64 { return f.scale }
func (f *fakeWindow) RequestRedraw()       {}

type mockSubmitter struct {
	calls    int
	err      error
	last     Presentation
	released []any
}

func (m *mockSubmitter) Submit(p Presentation) error {
	m.calls++
	m.last = p
	return m.err
}

func (m *mockSubmitter) ReleaseSurface(surface any) {
	m.released = append(m.released, surface)
}

// failingChain hands out drawables but refuses to present them.
type failingChain struct {
	*SoftwareSwapchain
}

func (f failingChain) Present(d *Drawable) error {
	_ = f.SoftwareSwapchain.Present(d)
	return errors.New("present failed")
}

func newTestSync(t *testing.T, w, h int, scale float64, opts ...Option) (*Synchronizer, *SoftwareSwapchain, *fakeWindow) {
	t.Helper()
	win := &fakeWindow{w: w, h: h, scale: scale}
	chain := NewSoftwareSwapchain(DefaultImageCount, nil)
	s := New(win, chain, opts...)
	t.Cleanup(s.Release)
	return s, chain, win
}

func isColor(c color.RGBA, want color.RGBA) bool {
	near := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d >= -3 && d <= 3
	}
	return near(c.R, want.R) && near(c.G, want.G) && near(c.B, want.B) && near(c.A, want.A)
}

var (
	red         = color.RGBA{R: 255, A: 255}
	blue        = color.RGBA{B: 255, A: 255}
	white       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	transparent = color.RGBA{}
)

func fillRect(t *testing.T, tex *Texture, x0, y0, x1, y1 float64, c gg.RGBA) {
	t.Helper()
	dc := tex.Context()
	dc.SetRGBA(c.R, c.G, c.B, c.A)
	dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	if err := dc.Fill(); err != nil {
		t.Fatalf("Fill() = %v", err)
	}
}

func TestAcquireSingleOutstanding(t *testing.T) {
	s, _, _ := newTestSync(t, 64, 32, 1)

	first := s.Acquire()
	if first == nil {
		t.Fatal("first Acquire() = nil")
	}
	if s.State() != Acquired {
		t.Errorf("State() = %v, want Acquired", s.State())
	}
	if second := s.Acquire(); second != nil {
		t.Fatal("second Acquire() without Present returned a texture")
	}

	s.Present()
	if s.State() != Idle {
		t.Errorf("State() after Present = %v, want Idle", s.State())
	}
	if s.Acquire() == nil {
		t.Fatal("Acquire() after Present = nil")
	}
	s.Present()
	if s.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", s.Frames())
	}
}

func TestPresentWithoutAcquire(t *testing.T) {
	s, chain, _ := newTestSync(t, 16, 16, 1)
	s.Present()
	s.Present()
	if s.Frames() != 0 || chain.Presented() != 0 {
		t.Errorf("frames presented = %d/%d, want 0", s.Frames(), chain.Presented())
	}
}

func TestAcquireDegenerateSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"minimized", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSync(t, tt.w, tt.h, 2)
			if tex := s.Acquire(); tex != nil {
				t.Fatalf("Acquire() = %dx%d, want nil", tex.Width(), tex.Height())
			}
			if s.State() != Idle {
				t.Errorf("State() = %v, want Idle", s.State())
			}
		})
	}
}

func TestAcquireScaleRoundTrip(t *testing.T) {
	tests := []struct {
		w, h         int
		scale        float64
		wantW, wantH int
	}{
		{400, 300, 1, 400, 300},
		{400, 300, 2, 800, 600},
		{101, 51, 1.5, 152, 77},
		{333, 100, 1.25, 416, 125},
		{10, 10, 0, 10, 10},
	}
	for _, tt := range tests {
		s, _, _ := newTestSync(t, tt.w, tt.h, tt.scale)
		tex := s.Acquire()
		if tex == nil {
			t.Fatalf("Acquire() at %dx%d@%g = nil", tt.w, tt.h, tt.scale)
		}
		if tex.Width() != tt.wantW || tex.Height() != tt.wantH {
			t.Errorf("%dx%d@%g: texture %dx%d, want %dx%d",
				tt.w, tt.h, tt.scale, tex.Width(), tex.Height(), tt.wantW, tt.wantH)
		}
		s.Present()
	}
}

func TestAcquireReadsScaleEachFrame(t *testing.T) {
	s, _, win := newTestSync(t, 100, 50, 1)

	tex := s.Acquire()
	if tex.Width() != 100 {
		t.Fatalf("width = %d, want 100", tex.Width())
	}
	s.Present()

	win.scale = 2
	tex = s.Acquire()
	if tex.Width() != 200 || tex.Height() != 100 {
		t.Errorf("after scale change: %dx%d, want 200x100", tex.Width(), tex.Height())
	}
	s.Present()
}

func drawTwoFrames(t *testing.T, s *Synchronizer) {
	t.Helper()
	tex := s.Acquire()
	if tex == nil {
		t.Fatal("frame 1: Acquire() = nil")
	}
	tex.Context().ClearWithColor(gg.White)
	fillRect(t, tex, 20, 50, 170, 200, gg.Red)
	s.Present()

	tex = s.Acquire()
	if tex == nil {
		t.Fatal("frame 2: Acquire() = nil")
	}
	fillRect(t, tex, 230, 50, 380, 200, gg.Blue)
	s.Present()
}

func TestPreserveDrawingBuffer(t *testing.T) {
	s, chain, _ := newTestSync(t, 400, 300, 1, WithPreserveDrawingBuffer(true))
	drawTwoFrames(t, s)

	front := chain.Front()
	if front == nil {
		t.Fatal("nothing presented")
	}
	if got := front.RGBAAt(95, 125); !isColor(got, red) {
		t.Errorf("red rect center = %v, want red", got)
	}
	if got := front.RGBAAt(305, 125); !isColor(got, blue) {
		t.Errorf("blue rect center = %v, want blue", got)
	}
	if got := front.RGBAAt(5, 5); !isColor(got, white) {
		t.Errorf("background = %v, want white", got)
	}
}

func TestDiscardDrawingBuffer(t *testing.T) {
	s, chain, _ := newTestSync(t, 400, 300, 1)
	drawTwoFrames(t, s)

	front := chain.Front()
	if got := front.RGBAAt(95, 125); !isColor(got, transparent) {
		t.Errorf("red rect center = %v, want transparent", got)
	}
	if got := front.RGBAAt(305, 125); !isColor(got, blue) {
		t.Errorf("blue rect center = %v, want blue", got)
	}
}

func TestDiscardClearsRecycledImage(t *testing.T) {
	s, _, _ := newTestSync(t, 8, 8, 1)

	tex := s.Acquire()
	tex.Clear(red)
	s.Present()

	for i := 0; i < DefaultImageCount; i++ {
		tex = s.Acquire()
		if got := tex.RGBA().RGBAAt(4, 4); got != transparent {
			t.Fatalf("frame %d: recycled pixel = %v, want transparent", i+2, got)
		}
		s.Present()
	}
}

func TestPreserveModeLatchedAtAcquire(t *testing.T) {
	s, chain, _ := newTestSync(t, 8, 8, 1)

	tex := s.Acquire()
	s.SetPreserveDrawingBuffer(true)
	tex.Clear(red)
	s.Present()
	if got := chain.Front().RGBAAt(1, 1); got != red {
		t.Fatalf("in-flight frame lost its pixels: %v", got)
	}

	a := s.Acquire()
	s.Present()
	b := s.Acquire()
	s.Present()
	if a != b {
		t.Error("preserve mode should return the same offscreen texture every frame")
	}
	if a == tex {
		t.Error("preserve mode returned a swapchain image")
	}

	s.SetPreserveDrawingBuffer(false)
	if s.PreserveDrawingBuffer() {
		t.Error("PreserveDrawingBuffer() = true after disabling")
	}
	c := s.Acquire()
	if c == a {
		t.Error("discard mode returned the offscreen texture")
	}
	s.Present()
}

func TestPreserveReallocatesOnResize(t *testing.T) {
	s, chain, win := newTestSync(t, 20, 20, 1, WithPreserveDrawingBuffer(true))

	tex := s.Acquire()
	tex.Clear(blue)
	s.Present()

	win.w, win.h = 30, 10
	tex = s.Acquire()
	if tex.Width() != 30 || tex.Height() != 10 {
		t.Fatalf("offscreen = %dx%d, want 30x10", tex.Width(), tex.Height())
	}
	s.Present()
	if b := chain.Front().Bounds(); b.Dx() != 30 || b.Dy() != 10 {
		t.Errorf("presented %v, want 30x10", b)
	}
}

func TestPresentSoftFailures(t *testing.T) {
	sub := &mockSubmitter{err: errors.New("queue lost")}
	win := &fakeWindow{w: 4, h: 4, scale: 1}
	chain := failingChain{NewSoftwareSwapchain(2, nil)}
	s := New(win, chain, WithSubmitter(sub))
	t.Cleanup(s.Release)

	for i := 0; i < 3; i++ {
		if s.Acquire() == nil {
			t.Fatalf("frame %d: Acquire() = nil", i)
		}
		s.Present()
		if s.State() != Idle {
			t.Fatalf("frame %d: State() = %v after failed present", i, s.State())
		}
	}
	if sub.calls != 3 {
		t.Errorf("submit calls = %d, want 3", sub.calls)
	}
	if s.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0 when every present fails", s.Frames())
	}
}

func TestAcquireWhileOccluded(t *testing.T) {
	s, chain, _ := newTestSync(t, 4, 4, 1)
	chain.SetOccluded(true)
	if s.Acquire() != nil {
		t.Fatal("Acquire() while occluded returned a texture")
	}
	chain.SetOccluded(false)
	if s.Acquire() == nil {
		t.Fatal("Acquire() after occlusion ended = nil")
	}
	s.Present()
}

func TestReleaseIdempotent(t *testing.T) {
	s, _, _ := newTestSync(t, 4, 4, 1, WithPreserveDrawingBuffer(true))
	s.Acquire()
	s.Release()
	s.Release()
	if s.Acquire() != nil {
		t.Error("Acquire() after Release returned a texture")
	}
	s.Present()
}

func TestPhysicalSize(t *testing.T) {
	w, h := PhysicalSize(3, 5, 1.5)
	if w != 5 || h != 8 {
		t.Errorf("PhysicalSize(3, 5, 1.5) = %d, %d, want 5, 8", w, h)
	}
}

func TestTextureCopyFromClamps(t *testing.T) {
	src := NewTexture(10, 10)
	src.Clear(red)
	dst := NewTexture(4, 6)
	r := dst.CopyFrom(src)
	if r != image.Rect(0, 0, 4, 6) {
		t.Errorf("copied %v, want (0,0)-(4,6)", r)
	}
	if got := dst.RGBA().RGBAAt(3, 5); got != red {
		t.Errorf("dst pixel = %v, want red", got)
	}

	big := NewTexture(12, 3)
	r = big.CopyFrom(dst)
	if r != image.Rect(0, 0, 4, 3) {
		t.Errorf("copied %v, want (0,0)-(4,3)", r)
	}
	if got := big.RGBA().RGBAAt(8, 1); got != transparent {
		t.Errorf("pixel outside copy = %v, want transparent", got)
	}
}

func TestDrawingStateResetsEachFrame(t *testing.T) {
	tests := []struct {
		name     string
		preserve bool
	}{
		{"discard", false},
		{"preserve", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, chain, _ := newTestSync(t, 40, 20, 1, WithPreserveDrawingBuffer(tt.preserve))

			// Frame 1 only changes state: a translation and a color.
			tex := s.Acquire()
			if tex == nil {
				t.Fatal("frame 1: Acquire() = nil")
			}
			tex.Context().Translate(30, 0)
			tex.Context().SetRGB(1, 0, 0)
			s.Present()

			// Cycle through every swapchain image, including the one
			// frame 1 drew into.
			for frame := 2; frame <= DefaultImageCount+2; frame++ {
				tex := s.Acquire()
				if tex == nil {
					t.Fatalf("frame %d: Acquire() = nil", frame)
				}
				dc := tex.Context()
				dc.DrawRectangle(0, 0, 10, 10)
				if err := dc.Fill(); err != nil {
					t.Fatalf("frame %d: Fill() = %v", frame, err)
				}
				s.Present()

				front := chain.Front()
				if got := front.RGBAAt(5, 5); !isColor(got, color.RGBA{A: 255}) {
					t.Errorf("frame %d: pixel (5,5) = %v, want opaque black", frame, got)
				}
				if got := front.RGBAAt(35, 5); !isColor(got, transparent) {
					t.Errorf("frame %d: pixel (35,5) = %v, want transparent", frame, got)
				}
			}
		})
	}
}

func TestPreserveOffDropsPreservedPixels(t *testing.T) {
	s, chain, _ := newTestSync(t, 20, 10, 1, WithPreserveDrawingBuffer(true))

	tex := s.Acquire()
	if tex == nil {
		t.Fatal("Acquire() = nil")
	}
	fillRect(t, tex, 0, 0, 20, 10, gg.Red)
	// Turned off while the frame is in flight.
	s.SetPreserveDrawingBuffer(false)
	s.Present()

	if s.Acquire() == nil {
		t.Fatal("Acquire() = nil")
	}
	s.Present()

	s.SetPreserveDrawingBuffer(true)
	if s.Acquire() == nil {
		t.Fatal("Acquire() = nil")
	}
	s.Present()

	if got := chain.Front().RGBAAt(10, 5); !isColor(got, transparent) {
		t.Errorf("pixel after re-enabling preserve = %v, want transparent", got)
	}
}

func TestPresentationHandedToSubmitter(t *testing.T) {
	sub := &mockSubmitter{}
	s, _, _ := newTestSync(t, 8, 4, 1, WithSubmitter(sub))

	if s.Acquire() == nil {
		t.Fatal("Acquire() = nil")
	}
	s.Present()
	if sub.last.Surface != s {
		t.Errorf("Surface = %v, want the synchronizer", sub.last.Surface)
	}
	if sub.last.Drawable == nil || sub.last.Drawable.Width() != 8 || sub.last.Drawable.Height() != 4 {
		t.Errorf("Drawable = %v, want an 8x4 texture", sub.last.Drawable)
	}
	if sub.last.Offscreen != nil {
		t.Error("Offscreen set while discarding the drawing buffer")
	}

	s.SetPreserveDrawingBuffer(true)
	tex := s.Acquire()
	s.Present()
	if sub.last.Offscreen != tex {
		t.Error("Offscreen is not the texture drawn into while preserving")
	}

	s.Release()
	s.Release()
	if len(sub.released) != 1 || sub.released[0] != s {
		t.Errorf("ReleaseSurface calls = %v, want one for the synchronizer", sub.released)
	}
}
