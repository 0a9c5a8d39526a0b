// Package navigation carries one-shot cross-screen requests and the timed
// highlight and notice state they produce on the receiving screen.
package navigation

import (
	"sync"
	"time"
)

// Default lifetimes of the transient state.
const (
	DefaultHighlightWindow = 3 * time.Second
	DefaultNoticeWindow    = 5 * time.Second
)

// Scheduler runs fn once after d. The returned function cancels the call and
// reports whether it was still pending.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// RealScheduler schedules callbacks on the runtime timer heap.
type RealScheduler struct{}

// AfterFunc implements Scheduler with time.AfterFunc.
func (RealScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Kind says what the receiving screen should do with a request.
type Kind string

const (
	// KindHighlight pages to the target row and highlights it.
	KindHighlight Kind = "highlight"
	// KindOpen opens the target's detail view.
	KindOpen Kind = "open"
)

// Request is an inbound navigation payload. It is consumed by the first
// screen that reads it.
type Request struct {
	Target string
	Kind   Kind
	// Message is an optional success notice to show alongside the
	// highlight.
	Message string
}

// Highlight builds a highlight request for target.
func Highlight(target string) *Request {
	return &Request{Target: target, Kind: KindHighlight}
}

// Open builds a request to open target's detail view.
func Open(target string) *Request {
	return &Request{Target: target, Kind: KindOpen}
}

// Take consumes the request and returns its previous contents. A nil or
// empty request yields ok == false.
func (r *Request) Take() (Request, bool) {
	if r == nil || r.Target == "" {
		return Request{}, false
	}
	taken := *r
	*r = Request{}
	return taken, true
}

// timerSlot holds at most one pending expiry. Arming a new expiry or
// closing the slot cancels the previous one, and a generation counter keeps
// a late callback from clearing newer state.
type timerSlot struct {
	mu         sync.Mutex
	scheduler  Scheduler
	window     time.Duration
	stop       func() bool
	generation uint64
	closed     bool
}

func newTimerSlot(scheduler Scheduler, window time.Duration) *timerSlot {
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	return &timerSlot{scheduler: scheduler, window: window}
}

// arm runs set under the slot lock and schedules expire. It returns false
// once the slot is closed.
func (s *timerSlot) arm(set func(), expire func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	s.cancelLocked()
	set()
	s.generation++
	gen := s.generation
	s.stop = s.scheduler.AfterFunc(s.window, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation != gen {
			return
		}
		s.stop = nil
		expire()
	})
	return true
}

// clear cancels the pending expiry and runs reset under the lock.
func (s *timerSlot) clear(reset func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.generation++
	reset()
}

func (s *timerSlot) close(reset func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.generation++
	s.closed = true
	reset()
}

func (s *timerSlot) read(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *timerSlot) cancelLocked() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}
