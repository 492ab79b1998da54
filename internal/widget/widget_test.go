package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCloseCycle(t *testing.T) {
	w := New()
	assert.Equal(t, StateClosed, w.State())

	w.Open()
	assert.Equal(t, StateIdle, w.State())

	w.Close()
	assert.Equal(t, StateClosing, w.State())

	w.FinishClose()
	assert.Equal(t, StateClosed, w.State())
}

func TestReopenDuringCloseCancelsIt(t *testing.T) {
	w := New()
	w.Open()
	w.Close()
	w.Open()
	assert.Equal(t, StateIdle, w.State())

	// The stale close timer must not close a reopened widget.
	w.FinishClose()
	assert.Equal(t, StateIdle, w.State())
}

func TestSubmitAppendsUserEntryAndPlaceholder(t *testing.T) {
	w := New()
	w.Open()

	require.True(t, w.Submit("  hello there  "))
	assert.Equal(t, StateAwaitingReply, w.State())

	entries := w.Transcript()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Kind: EntryUser, Text: "hello there"}, entries[0])
	assert.Equal(t, Entry{Kind: EntryPlaceholder, Text: ThinkingText}, entries[1])
}

func TestSubmitIgnoresWhitespaceOnlyInput(t *testing.T) {
	w := New()
	w.Open()

	assert.False(t, w.Submit("   "))
	assert.False(t, w.Submit("\t\n"))
	assert.Equal(t, StateIdle, w.State())
	assert.Empty(t, w.Transcript())
}

func TestSubmitIgnoredWhileAwaitingReply(t *testing.T) {
	w := New()
	w.Open()
	require.True(t, w.Submit("first"))

	assert.False(t, w.Submit("second"))
	assert.Len(t, w.Transcript(), 2)
}

func TestSubmitIgnoredWhileClosed(t *testing.T) {
	w := New()
	assert.False(t, w.Submit("hello"))
}

func TestReplyArrivedResolvesPlaceholder(t *testing.T) {
	w := New()
	w.Open()
	w.Submit("how are you")

	w.ReplyArrived("I'm doing well, thanks for asking.")
	assert.Equal(t, StateIdle, w.State())

	entries := w.Transcript()
	require.Len(t, entries, 2)
	assert.Equal(t, EntryUser, entries[0].Kind)
	assert.Equal(t, Entry{Kind: EntryBot, Text: "I'm doing well, thanks for asking."}, entries[1])
	for _, e := range entries {
		assert.NotEqual(t, EntryPlaceholder, e.Kind)
	}
}

func TestReplyFailedResolvesPlaceholderWithFallback(t *testing.T) {
	w := New()
	w.Open()
	w.Submit("hello")

	w.ReplyFailed("I'm here to listen.")
	assert.Equal(t, StateIdle, w.State())

	entries := w.Transcript()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Kind: EntryBot, Text: "I'm here to listen."}, entries[1])
}

func TestReplyArrivedWhileClosingResolvesPlaceholder(t *testing.T) {
	w := New()
	w.Open()
	w.Submit("hello")
	w.Close()
	require.Equal(t, StateClosing, w.State())

	w.ReplyArrived("late reply")

	// The close continues, but the placeholder must not dangle.
	assert.Equal(t, StateClosing, w.State())
	entries := w.Transcript()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Kind: EntryBot, Text: "late reply"}, entries[1])

	w.FinishClose()
	assert.Equal(t, StateClosed, w.State())
}

func TestReplyArrivedWhileClosingWithoutPlaceholderIsNoop(t *testing.T) {
	w := New()
	w.Open()
	w.Close()

	w.ReplyArrived("stray")
	assert.Empty(t, w.Transcript())
	assert.Equal(t, StateClosing, w.State())
}

func TestConversationLoop(t *testing.T) {
	w := New()
	w.Open()

	for i := 0; i < 3; i++ {
		require.True(t, w.Submit("message"))
		w.ReplyArrived("reply")
	}

	entries := w.Transcript()
	assert.Len(t, entries, 6)
	assert.Equal(t, StateIdle, w.State())
}
