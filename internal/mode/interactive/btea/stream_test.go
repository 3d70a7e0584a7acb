// ABOUTME: Tests for the stream bridge goroutine and the echo producer
// ABOUTME: Verifies chunk forwarding, done handling on close/final/cancel, and pacing output

package btea

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// mockSender collects messages sent via Send for assertion.
type mockSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *mockSender) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *mockSender) Messages() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]tea.Msg, len(s.msgs))
	copy(cp, s.msgs)
	return cp
}

func TestRunStreamBridge_ForwardsUntilClose(t *testing.T) {
	t.Parallel()

	ch := make(chan Chunk, 3)
	ch <- Chunk{Text: "hel"}
	ch <- Chunk{Text: ""}
	ch <- Chunk{Text: "lo"}
	close(ch)

	sender := &mockSender{}
	done := RunStreamBridge(context.Background(), sender, "s1", ch)
	if done.ID != "s1" || done.Cancelled {
		t.Errorf("done = %+v", done)
	}

	msgs := sender.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages; want 2 (empty chunk skipped)", len(msgs))
	}
	var b strings.Builder
	for _, msg := range msgs {
		c, ok := msg.(StreamChunkMsg)
		if !ok {
			t.Fatalf("got %T; want StreamChunkMsg", msg)
		}
		if c.ID != "s1" {
			t.Errorf("chunk ID = %q", c.ID)
		}
		b.WriteString(c.Text)
	}
	if b.String() != "hello" {
		t.Errorf("text = %q", b.String())
	}
}

func TestRunStreamBridge_FinalEndsStream(t *testing.T) {
	t.Parallel()

	ch := make(chan Chunk, 2)
	ch <- Chunk{Text: "end", Final: true}
	ch <- Chunk{Text: "ignored"}

	sender := &mockSender{}
	done := RunStreamBridge(context.Background(), sender, "s2", ch)
	if done.Cancelled {
		t.Error("final chunk should not report cancellation")
	}
	if n := len(sender.Messages()); n != 1 {
		t.Errorf("got %d messages; want 1", n)
	}
}

func TestRunStreamBridge_Cancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := RunStreamBridge(ctx, &mockSender{}, "s3", make(chan Chunk))
	if !done.Cancelled || done.ID != "s3" {
		t.Errorf("done = %+v; want cancelled s3", done)
	}
}

func TestEchoProducer_StreamsReply(t *testing.T) {
	t.Parallel()

	ch, err := EchoProducer{Interval: time.Millisecond}.Start(context.Background(), "say hi\n")
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	var last Chunk
	for c := range ch {
		b.WriteString(c.Text)
		last = c
	}
	if b.String() != echoReply("say hi\n") {
		t.Errorf("reply = %q", b.String())
	}
	if !last.Final {
		t.Error("last chunk should be final")
	}
}

func TestEchoProducer_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := EchoProducer{Interval: time.Hour}.Start(ctx, "a b c")
	if err != nil {
		t.Fatal(err)
	}
	<-ch // the limiter allows one chunk immediately
	cancel()

	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestSplitWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one two", 2},
		{"a  b\n\nc ", 3},
		{"  lead", 2},
	}
	for _, tt := range tests {
		parts := splitWords(tt.in)
		if len(parts) != tt.want {
			t.Errorf("splitWords(%q) = %q; want %d parts", tt.in, parts, tt.want)
		}
		if strings.Join(parts, "") != tt.in {
			t.Errorf("splitWords(%q) does not rejoin", tt.in)
		}
	}
}
