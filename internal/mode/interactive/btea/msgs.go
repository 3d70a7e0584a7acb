// ABOUTME: All custom tea.Msg types for the Bubble Tea TUI
// ABOUTME: Stream events are tagged with the stream ID so stale chunks are dropped

package btea

// --- Stream events (sent by the bridge goroutine via Program.Send) ---

// StreamChunkMsg carries streamed response text.
type StreamChunkMsg struct {
	ID   string
	Text string
}

// StreamDoneMsg signals the stream ended, normally or by cancellation.
type StreamDoneMsg struct {
	ID        string
	Cancelled bool
}

// --- Internal messages ---

// ConfigChangedMsg is sent by the config watcher when a watched file changes.
type ConfigChangedMsg struct{}

// statusExpiredMsg clears the status message it was scheduled for.
type statusExpiredMsg struct{ seq int }
