// ABOUTME: Stream producer contract and the bridge goroutine into Bubble Tea
// ABOUTME: Producers never touch windows; chunks reach the response only through Update

package btea

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"
)

// ProgramSender is the interface for sending messages to Bubble Tea.
// Matches *tea.Program's Send method.
type ProgramSender interface {
	Send(msg tea.Msg)
}

// Chunk is one piece of a streamed response.
type Chunk struct {
	Text  string
	Final bool
}

// Producer answers a submitted prompt with streamed chunks. The returned
// channel is closed when the response ends; producers must stop sending
// once ctx is cancelled.
type Producer interface {
	Start(ctx context.Context, prompt string) (<-chan Chunk, error)
}

// RunStreamBridge forwards chunks to the program until the stream ends or
// ctx is cancelled, and returns the StreamDoneMsg for the caller to deliver.
func RunStreamBridge(ctx context.Context, program ProgramSender, id string, chunks <-chan Chunk) StreamDoneMsg {
	for {
		select {
		case <-ctx.Done():
			return StreamDoneMsg{ID: id, Cancelled: true}
		case c, ok := <-chunks:
			if !ok {
				return StreamDoneMsg{ID: id}
			}
			if c.Text != "" {
				program.Send(StreamChunkMsg{ID: id, Text: c.Text})
			}
			if c.Final {
				return StreamDoneMsg{ID: id}
			}
		}
	}
}

// DefaultEchoInterval paces EchoProducer chunks.
const DefaultEchoInterval = 30 * time.Millisecond

// EchoProducer streams the prompt back word by word. It stands in for a
// model backend when running without one.
type EchoProducer struct {
	Interval time.Duration
}

// Start implements Producer.
func (p EchoProducer) Start(ctx context.Context, prompt string) (<-chan Chunk, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultEchoInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	words := splitWords(echoReply(prompt))

	out := make(chan Chunk)
	go func() {
		defer close(out)
		for i, w := range words {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case out <- Chunk{Text: w, Final: i == len(words)-1}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func echoReply(prompt string) string {
	return "You wrote:\n\n" + strings.TrimRight(prompt, "\n") + "\n"
}

// splitWords cuts s after each run of whitespace, so joining the parts
// gives s back.
func splitWords(s string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := r == ' ' || r == '\n' || r == '\t'
		if inSpace && !space {
			out = append(out, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
