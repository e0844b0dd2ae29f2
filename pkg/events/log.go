package events

import "github.com/aretw0/hfsm/pkg/domain"

// Entry is one recorded lifecycle event.
type Entry struct {
	Kind           domain.EventKind  `json:"kind"`
	State          domain.State      `json:"-"`
	StateName      string            `json:"state"`
	Transition     domain.Transition `json:"-"`
	TransitionName string            `json:"transition,omitempty"`
	Tick           uint64            `json:"tick"`
	LastTick       uint64            `json:"last_tick"`
	Repeat         int               `json:"repeat"`
}

func (e Entry) sameAs(other Entry) bool {
	return e.Kind == other.Kind &&
		domain.KeyOf(e.State) == domain.KeyOf(other.State) &&
		domain.KeyOf(e.Transition) == domain.KeyOf(other.Transition)
}

// Log is a bounded event buffer with an unbounded trail. It is not safe for
// concurrent use; it belongs to the goroutine driving its machine.
type Log struct {
	buf   []Entry
	head  int
	size  int
	trail []Entry
}

// NewLog creates a log keeping at most capacity buffered entries.
// A non-positive capacity selects domain.DefaultEventCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = domain.DefaultEventCapacity
	}
	return &Log{buf: make([]Entry, capacity)}
}

// Cap returns the buffer capacity.
func (l *Log) Cap() int {
	return len(l.buf)
}

// Len returns the number of buffered entries.
func (l *Log) Len() int {
	return l.size
}

// Record appends e, coalescing it into the newest entry when they match.
// When the buffer is full the oldest entry is overwritten.
func (l *Log) Record(e Entry) {
	e.Repeat = 1
	e.LastTick = e.Tick

	if n := len(l.trail); n > 0 && l.trail[n-1].sameAs(e) {
		l.trail[n-1].Repeat++
		l.trail[n-1].LastTick = e.Tick
	} else {
		l.trail = append(l.trail, e)
	}

	if l.size > 0 {
		last := &l.buf[(l.head+l.size-1)%len(l.buf)]
		if last.sameAs(e) {
			last.Repeat++
			last.LastTick = e.Tick
			return
		}
	}

	if l.size == len(l.buf) {
		l.buf[l.head] = e
		l.head = (l.head + 1) % len(l.buf)
		return
	}
	l.buf[(l.head+l.size)%len(l.buf)] = e
	l.size++
}

// Pop removes and returns the oldest buffered entry.
func (l *Log) Pop() (Entry, bool) {
	if l.size == 0 {
		return Entry{}, false
	}
	e := l.buf[l.head]
	l.buf[l.head] = Entry{}
	l.head = (l.head + 1) % len(l.buf)
	l.size--
	return e, true
}

// Drain removes and returns every buffered entry, oldest first.
func (l *Log) Drain() []Entry {
	out := make([]Entry, 0, l.size)
	for {
		e, ok := l.Pop()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

// Snapshot returns the buffered entries without consuming them.
func (l *Log) Snapshot() []Entry {
	out := make([]Entry, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	return out
}

// Trail returns a copy of the full history.
func (l *Log) Trail() []Entry {
	return append([]Entry(nil), l.trail...)
}

// Reset clears both the buffer and the trail.
func (l *Log) Reset() {
	clear(l.buf)
	l.head, l.size = 0, 0
	l.trail = nil
}
