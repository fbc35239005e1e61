// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package event

// DefaultCapacity is the default bound on queued pointer moves.
const DefaultCapacity = 256

// compactThreshold is the number of consumed slots tolerated at the
// front of the buffer before it is shifted down.
const compactThreshold = 64

// Queue is a per-window FIFO of normalized events drained with Poll.
//
// Resize and FrameReady are coalesced: at most one of each is pending,
// and a pending Resize takes the dimensions of the latest notification.
// A pending FrameReady never precedes a pending Resize. Once Close has
// been pushed no further events are accepted, and once it has been
// polled the queue stays empty.
//
// Consecutive identical PointerMove events are deduplicated. When the
// queue holds capacity events, incoming PointerMove events are dropped;
// every other kind is always accepted.
//
// Queue is NOT safe for concurrent use. It is owned by the thread that
// runs the application loop.
type Queue struct {
	buf  []Event
	head int

	capacity int
	resizeAt int
	frameAt  int

	last    Event
	hasLast bool

	closing bool
	sealed  bool
	dropped int
}

// NewQueue creates a queue bounded at capacity pointer moves.
// A non-positive capacity selects DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		buf:      make([]Event, 0, capacity),
		capacity: capacity,
		resizeAt: -1,
		frameAt:  -1,
	}
}

// Push appends e, applying coalescing and deduplication. It reports
// whether the event was accepted (a coalesced synthetic event counts as
// accepted).
func (q *Queue) Push(e Event) bool {
	if e.Kind == Invalid || q.closing || q.sealed {
		return false
	}

	switch e.Kind {
	case Resize:
		q.pushResize(e)
		return true
	case FrameReady:
		if q.frameAt < 0 {
			q.frameAt = q.append(e)
		}
		return true
	case Close:
		q.append(e)
		q.closing = true
		return true
	case PointerMove:
		if q.hasLast && sameMove(q.last, e) {
			return false
		}
		if q.Len() >= q.capacity {
			q.dropped++
			return false
		}
	}

	q.append(e)
	return true
}

func (q *Queue) pushResize(e Event) {
	if q.resizeAt >= 0 {
		pending := &q.buf[q.resizeAt]
		pending.Width, pending.Height = e.Width, e.Height
	} else {
		q.resizeAt = q.append(e)
	}
	if q.frameAt >= 0 && q.frameAt < q.resizeAt {
		frame := q.buf[q.frameAt]
		q.buf[q.frameAt] = Event{}
		q.frameAt = q.append(frame)
	}
}

func (q *Queue) append(e Event) int {
	q.compact()
	q.buf = append(q.buf, e)
	q.last, q.hasLast = e, true
	return len(q.buf) - 1
}

func (q *Queue) compact() {
	if q.head < compactThreshold || q.head*2 < len(q.buf) {
		return
	}
	n := copy(q.buf, q.buf[q.head:])
	clear(q.buf[n:])
	q.buf = q.buf[:n]
	if q.resizeAt >= 0 {
		q.resizeAt -= q.head
	}
	if q.frameAt >= 0 {
		q.frameAt -= q.head
	}
	q.head = 0
}

// Poll removes and returns the oldest event. It never blocks; ok is
// false when nothing is queued.
func (q *Queue) Poll() (e Event, ok bool) {
	for q.head < len(q.buf) {
		i := q.head
		e = q.buf[i]
		q.buf[i] = Event{}
		q.head++

		if e.Kind == Invalid {
			continue
		}
		if i == q.resizeAt {
			q.resizeAt = -1
		}
		if i == q.frameAt {
			q.frameAt = -1
		}
		if e.Kind == Close {
			q.seal()
		}
		if q.head == len(q.buf) {
			q.reset()
		}
		return e, true
	}
	q.reset()
	return Event{}, false
}

func (q *Queue) seal() {
	q.sealed = true
	q.closing = false
	clear(q.buf[q.head:])
	q.buf = q.buf[:q.head]
}

func (q *Queue) reset() {
	q.buf = q.buf[:0]
	q.head = 0
	q.resizeAt = -1
	q.frameAt = -1
}

// Len returns the number of events Poll would currently return.
func (q *Queue) Len() int {
	n := 0
	for _, e := range q.buf[q.head:] {
		if e.Kind != Invalid {
			n++
		}
	}
	return n
}

// PendingFrame reports whether a FrameReady is waiting to be polled.
func (q *Queue) PendingFrame() bool { return q.frameAt >= 0 }

// Closing reports whether Close has been pushed.
func (q *Queue) Closing() bool { return q.closing || q.sealed }

// Sealed reports whether Close has been delivered.
func (q *Queue) Sealed() bool { return q.sealed }

// Dropped returns the number of pointer moves discarded for capacity.
func (q *Queue) Dropped() int { return q.dropped }
