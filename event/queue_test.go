package event

import (
	"testing"

	"github.com/gogpu/gpucontext"
)

func drain(t *testing.T, q *Queue) []Event {
	t.Helper()
	var out []Event
	for {
		e, ok := q.Poll()
		if !ok {
			return out
		}
		out = append(out, e)
		if len(out) > 10000 {
			t.Fatal("queue did not drain")
		}
	}
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func equalKinds(a, b []Kind) bool {
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

func TestQueuePollEmpty(t *testing.T) {
	q := NewQueue(0)
	if e, ok := q.Poll(); ok {
		t.Fatalf("Poll() on empty queue = %v, true", e)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestQueueResizeCoalescing(t *testing.T) {
	q := NewQueue(0)
	q.Push(Event{Kind: Resize, Width: 100, Height: 100})
	q.Push(Event{Kind: Resize, Width: 300, Height: 200})
	q.Push(Event{Kind: Resize, Width: 640, Height: 480})

	got := drain(t, q)
	if len(got) != 1 {
		t.Fatalf("drained %d events, want 1: %v", len(got), got)
	}
	if got[0].Kind != Resize || got[0].Width != 640 || got[0].Height != 480 {
		t.Errorf("got %v, want Resize(640x480)", got[0])
	}
}

func TestQueuePointerOrdering(t *testing.T) {
	q := NewQueue(0)
	in := []Event{
		{Kind: PointerDown, X: 1, Y: 1, Button: gpucontext.ButtonLeft, ClickCount: 1},
		{Kind: PointerMove, X: 2, Y: 1},
		{Kind: PointerMove, X: 3, Y: 1},
		{Kind: PointerMove, X: 4, Y: 1},
		{Kind: PointerUp, X: 4, Y: 1, Button: gpucontext.ButtonLeft},
	}
	for _, e := range in {
		q.Push(e)
	}
	got := drain(t, q)
	if len(got) != len(in) {
		t.Fatalf("drained %d events, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestQueueMoveDedup(t *testing.T) {
	q := NewQueue(0)
	q.Push(Event{Kind: PointerMove, X: 5, Y: 5})
	if q.Push(Event{Kind: PointerMove, X: 5, Y: 5}) {
		t.Error("identical consecutive move was accepted")
	}
	q.Push(Event{Kind: PointerMove, X: 5, Y: 5, Buttons: gpucontext.ButtonsLeft})
	q.Push(Event{Kind: KeyDown, Key: "a"})
	q.Push(Event{Kind: PointerMove, X: 5, Y: 5, Buttons: gpucontext.ButtonsLeft})

	want := []Kind{PointerMove, PointerMove, KeyDown, PointerMove}
	if got := kinds(drain(t, q)); !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestQueueFrameReadyCoalescing(t *testing.T) {
	q := NewQueue(0)
	q.Push(Event{Kind: FrameReady})
	q.Push(Event{Kind: KeyDown, Key: "x"})
	q.Push(Event{Kind: FrameReady})

	want := []Kind{FrameReady, KeyDown}
	if got := kinds(drain(t, q)); !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	q.Push(Event{Kind: FrameReady})
	if !q.PendingFrame() {
		t.Error("PendingFrame() = false after drain and push")
	}
}

func TestQueueResizeBeforeFrame(t *testing.T) {
	tests := []struct {
		name string
		in   []Event
		want []Kind
	}{
		{
			name: "frame then resize",
			in:   []Event{{Kind: FrameReady}, {Kind: Resize, Width: 10, Height: 10}},
			want: []Kind{Resize, FrameReady},
		},
		{
			name: "resize frame resize",
			in: []Event{
				{Kind: Resize, Width: 10, Height: 10},
				{Kind: FrameReady},
				{Kind: Resize, Width: 20, Height: 20},
			},
			want: []Kind{Resize, FrameReady},
		},
		{
			name: "frame key resize",
			in: []Event{
				{Kind: FrameReady},
				{Kind: KeyDown, Key: "k"},
				{Kind: Resize, Width: 20, Height: 20},
			},
			want: []Kind{KeyDown, Resize, FrameReady},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue(0)
			for _, e := range tt.in {
				q.Push(e)
			}
			got := drain(t, q)
			if k := kinds(got); !equalKinds(k, tt.want) {
				t.Fatalf("kinds = %v, want %v", k, tt.want)
			}
			for _, e := range got {
				if e.Kind == Resize && (e.Width != tt.in[len(tt.in)-1].Width) {
					t.Errorf("resize width = %d, want latest", e.Width)
				}
			}
		})
	}
}

func TestQueueCloseIsLast(t *testing.T) {
	q := NewQueue(0)
	q.Push(Event{Kind: PointerMove, X: 1, Y: 1})
	q.Push(Event{Kind: Close})
	if q.Push(Event{Kind: KeyDown, Key: "a"}) {
		t.Error("event accepted after Close was pushed")
	}
	q.Push(Event{Kind: FrameReady})
	q.Push(Event{Kind: Resize, Width: 1, Height: 1})

	want := []Kind{PointerMove, Close}
	if got := kinds(drain(t, q)); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if !q.Sealed() {
		t.Error("Sealed() = false after Close delivered")
	}
	q.Push(Event{Kind: Focus})
	if _, ok := q.Poll(); ok {
		t.Error("event delivered after Close")
	}
}

func TestQueueOverflowDropsOnlyMoves(t *testing.T) {
	q := NewQueue(4)
	for i := 0; i < 4; i++ {
		q.Push(Event{Kind: PointerMove, X: float64(i)})
	}
	if q.Push(Event{Kind: PointerMove, X: 99}) {
		t.Error("move accepted at capacity")
	}
	if !q.Push(Event{Kind: PointerUp, Button: gpucontext.ButtonLeft}) {
		t.Error("PointerUp rejected at capacity")
	}
	if !q.Push(Event{Kind: Blur}) {
		t.Error("Blur rejected at capacity")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", q.Dropped())
	}
	got := drain(t, q)
	if len(got) != 6 {
		t.Fatalf("drained %d events, want 6", len(got))
	}
	if got[4].Kind != PointerUp || got[5].Kind != Blur {
		t.Errorf("tail = %v %v, want PointerUp Blur", got[4], got[5])
	}
}

func TestQueueCompaction(t *testing.T) {
	q := NewQueue(8)
	next := 0
	want := 0
	for round := 0; round < 50; round++ {
		for i := 0; i < 5; i++ {
			q.Push(Event{Kind: KeyDown, Code: gpucontext.Key(next)})
			next++
		}
		q.Push(Event{Kind: Resize, Width: round + 1, Height: 1})
		q.Push(Event{Kind: FrameReady})
		for i := 0; i < 6; i++ {
			e, ok := q.Poll()
			if !ok {
				break
			}
			if e.Kind == KeyDown {
				if int(e.Code) != want {
					t.Fatalf("key code = %d, want %d", e.Code, want)
				}
				want++
			}
		}
	}
	for _, e := range drain(t, q) {
		if e.Kind == KeyDown {
			if int(e.Code) != want {
				t.Fatalf("key code = %d, want %d", e.Code, want)
			}
			want++
		}
	}
	if want != next {
		t.Errorf("delivered %d keys, want %d", want, next)
	}
}

func TestKindString(t *testing.T) {
	if got := PointerDown.String(); got != "PointerDown" {
		t.Errorf("PointerDown.String() = %q", got)
	}
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Errorf("Kind(200).String() = %q", got)
	}
	if !Resize.Synthetic() || !FrameReady.Synthetic() || Close.Synthetic() {
		t.Error("Synthetic() classification wrong")
	}
}
