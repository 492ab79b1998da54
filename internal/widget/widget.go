// Package widget models the chat widget's lifecycle as an explicit state
// machine. The browser script in web/chatbot.js drives the same transitions;
// keeping the machine here makes the transition rules testable server-side.
package widget

import "strings"

type State string

const (
	StateClosed        State = "closed"
	StateIdle          State = "idle"
	StateAwaitingReply State = "awaiting_reply"
	StateClosing       State = "closing"
)

type EntryKind string

const (
	EntryUser        EntryKind = "user"
	EntryBot         EntryKind = "bot"
	EntryPlaceholder EntryKind = "placeholder"
)

// Entry is one transcript line.
type Entry struct {
	Kind EntryKind
	Text string
}

// ThinkingText is the transient placeholder shown between submit and reply.
const ThinkingText = "Thinking..."

// Widget holds the machine state and the visible transcript.
type Widget struct {
	state      State
	transcript []Entry
}

func New() *Widget {
	return &Widget{state: StateClosed}
}

func (w *Widget) State() State { return w.state }

// Transcript returns a copy of the visible entries.
func (w *Widget) Transcript() []Entry {
	out := make([]Entry, len(w.transcript))
	copy(out, w.transcript)
	return out
}

// Open shows the panel. Opening a closing widget cancels the close.
func (w *Widget) Open() {
	if w.state == StateClosed || w.state == StateClosing {
		w.state = StateIdle
	}
}

// Submit appends the user's message and a thinking placeholder, and moves to
// AwaitingReply. Whitespace-only input is ignored silently, as is a submit
// while a reply is already pending. Returns true when the submit was accepted.
func (w *Widget) Submit(text string) bool {
	if w.state != StateIdle {
		return false
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	w.transcript = append(w.transcript,
		Entry{Kind: EntryUser, Text: trimmed},
		Entry{Kind: EntryPlaceholder, Text: ThinkingText},
	)
	w.state = StateAwaitingReply
	return true
}

// ReplyArrived resolves the placeholder into the bot's reply. A reply landing
// while the panel is closing still resolves; the browser script does the same.
func (w *Widget) ReplyArrived(text string) {
	if w.state != StateAwaitingReply && w.state != StateClosing {
		return
	}
	w.resolvePlaceholder(text)
}

// ReplyFailed resolves the placeholder into the fallback text so it never
// dangles in the transcript.
func (w *Widget) ReplyFailed(fallback string) {
	if w.state != StateAwaitingReply && w.state != StateClosing {
		return
	}
	w.resolvePlaceholder(fallback)
}

func (w *Widget) resolvePlaceholder(text string) {
	idx := -1
	for i := len(w.transcript) - 1; i >= 0; i-- {
		if w.transcript[i].Kind == EntryPlaceholder {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	w.transcript = append(w.transcript[:idx], w.transcript[idx+1:]...)
	w.transcript = append(w.transcript, Entry{Kind: EntryBot, Text: text})
	if w.state == StateAwaitingReply {
		w.state = StateIdle
	}
}

// Close begins hiding the panel; FinishClose completes it after the CSS
// transition delay.
func (w *Widget) Close() {
	if w.state == StateIdle || w.state == StateAwaitingReply {
		w.state = StateClosing
	}
}

func (w *Widget) FinishClose() {
	if w.state == StateClosing {
		w.state = StateClosed
	}
}
