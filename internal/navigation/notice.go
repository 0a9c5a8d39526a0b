package navigation

import "time"

// NoticeKind distinguishes success from error notices.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Message is a transient notice.
type Message struct {
	Kind NoticeKind
	Text string
}

// Notice holds the single toast-style message of a screen.
type Notice struct {
	slot    *timerSlot
	current Message
	shown   bool
}

// NewNotice returns a notice that auto-dismisses after window. A
// non-positive window uses DefaultNoticeWindow.
func NewNotice(scheduler Scheduler, window time.Duration) *Notice {
	if window <= 0 {
		window = DefaultNoticeWindow
	}
	return &Notice{slot: newTimerSlot(scheduler, window)}
}

// Show replaces the current message and restarts the dismiss timer.
func (n *Notice) Show(kind NoticeKind, text string) {
	n.slot.arm(
		func() {
			n.current = Message{Kind: kind, Text: text}
			n.shown = true
		},
		func() {
			n.current = Message{}
			n.shown = false
		},
	)
}

// Success shows a success message.
func (n *Notice) Success(text string) { n.Show(NoticeSuccess, text) }

// Error shows an error message.
func (n *Notice) Error(text string) { n.Show(NoticeError, text) }

// Current returns the visible message.
func (n *Notice) Current() (Message, bool) {
	var (
		msg   Message
		shown bool
	)
	n.slot.read(func() {
		msg, shown = n.current, n.shown
	})
	return msg, shown
}

// Dismiss hides the message immediately.
func (n *Notice) Dismiss() {
	n.slot.clear(func() {
		n.current = Message{}
		n.shown = false
	})
}

// Close cancels the pending timer. Later calls to Show are ignored.
func (n *Notice) Close() {
	n.slot.close(func() {
		n.current = Message{}
		n.shown = false
	})
}
