package navigation

import (
	"time"

	"github.com/example/frontdesk/internal/listview"
)

// Highlighter tracks the row highlighted on one screen.
type Highlighter struct {
	slot   *timerSlot
	target string
}

// NewHighlighter returns a highlighter whose highlights clear after window.
// A nil scheduler uses RealScheduler; a non-positive window uses
// DefaultHighlightWindow.
func NewHighlighter(scheduler Scheduler, window time.Duration) *Highlighter {
	if window <= 0 {
		window = DefaultHighlightWindow
	}
	return &Highlighter{slot: newTimerSlot(scheduler, window)}
}

// Resolution reports what a navigation request did to the screen.
type Resolution struct {
	Target string
	Kind   Kind
	Found  bool
	Index  int
	Page   int
}

// Apply consumes req and, when its target is present in res.All, moves res
// to the page holding the target and highlights it. A missing target leaves
// the page and the current highlight untouched.
func Apply[T any](h *Highlighter, req *Request, res listview.Result[T], key func(T) string) (listview.Result[T], Resolution) {
	taken, ok := req.Take()
	if !ok {
		return res, Resolution{}
	}

	resolution := Resolution{Target: taken.Target, Kind: taken.Kind, Index: -1}
	idx := res.IndexOf(func(row T) bool { return key(row) == taken.Target })
	if idx < 0 {
		return res, resolution
	}

	size := res.PageSize
	if size <= 0 {
		size = listview.DefaultPageSize
	}
	page := idx/size + 1
	resolution.Found = true
	resolution.Index = idx
	resolution.Page = page

	if taken.Kind != KindOpen && h != nil {
		h.Set(taken.Target)
	}
	return res.WithPage(page), resolution
}

// Set highlights target and restarts the expiry timer.
func (h *Highlighter) Set(target string) {
	h.slot.arm(
		func() { h.target = target },
		func() { h.target = "" },
	)
}

// Target returns the highlighted key, or "".
func (h *Highlighter) Target() string {
	var target string
	h.slot.read(func() { target = h.target })
	return target
}

// IsHighlighted reports whether key is the highlighted row.
func (h *Highlighter) IsHighlighted(key string) bool {
	return key != "" && h.Target() == key
}

// Retain drops the highlight when present reports that its target no longer
// exists.
func (h *Highlighter) Retain(present func(key string) bool) {
	target := h.Target()
	if target == "" || present(target) {
		return
	}
	h.slot.clear(func() {
		if h.target == target {
			h.target = ""
		}
	})
}

// Clear removes the highlight and cancels its timer.
func (h *Highlighter) Clear() {
	h.slot.clear(func() { h.target = "" })
}

// Close cancels any pending timer. Later calls to Set are ignored.
func (h *Highlighter) Close() {
	h.slot.close(func() { h.target = "" })
}
