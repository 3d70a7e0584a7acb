// ABOUTME: KeyTrack holds the previous key, a pending numeric prefix and the confirmed count
// ABOUTME: Owned by the dispatcher and passed to handlers; never global state

package dispatch

import (
	"strconv"

	"github.com/mauromedda/panechat/pkg/tui/key"
)

// maxCount caps numeric prefixes so a held digit key cannot overflow.
const maxCount = 99999

// countUse tells Finish what a handler did with the confirmed count.
type countUse int

const (
	countDropped countUse = iota // key ignored the count
	countConsumed
	countKept // operator waiting for its second key
)

// KeyTrack accumulates key context across dispatches.
type KeyTrack struct {
	prev    rune
	digits  []byte
	count   int
	current key.Key
	seqDone bool
}

// Observe records k as the current key. When counting, digit keys extend
// the pending prefix and report true; '0' only counts once a prefix has
// started. A non-digit key confirms any pending prefix as the count.
func (t *KeyTrack) Observe(k key.Key, counting bool) bool {
	t.current = k
	t.seqDone = false
	if counting && k.IsDigit() && (k.Rune != '0' || len(t.digits) > 0) {
		if len(t.digits) < len(strconv.Itoa(maxCount)) {
			t.digits = append(t.digits, byte(k.Rune))
		}
		return true
	}
	if len(t.digits) > 0 {
		n, _ := strconv.Atoi(string(t.digits))
		t.count = min(n, maxCount)
		t.digits = t.digits[:0]
	}
	return false
}

// Take consumes the confirmed count, defaulting to 1.
func (t *KeyTrack) Take() int {
	n := t.count
	t.count = 0
	if n <= 0 {
		return 1
	}
	return n
}

// Peek returns the confirmed count without consuming it, or 0.
func (t *KeyTrack) Peek() int { return t.count }

// Pending returns the digits typed so far.
func (t *KeyTrack) Pending() string { return string(t.digits) }

// Previous returns the rune of the previous key, if it was a rune.
func (t *KeyTrack) Previous() (rune, bool) { return t.prev, t.prev != 0 }

// Current returns the key being dispatched.
func (t *KeyTrack) Current() key.Key { return t.current }

// completeSequence marks a two-key sequence as done so its second key does
// not start another.
func (t *KeyTrack) completeSequence() { t.seqDone = true }

// finish ends a dispatch. An unconsumed count is dropped unless an
// operator is waiting for its second key.
func (t *KeyTrack) finish(use countUse) {
	if use == countDropped {
		t.count = 0
	}
	switch {
	case t.seqDone:
		t.prev = 0
	case t.current.IsRune():
		t.prev = t.current.Rune
	default:
		t.prev = 0
	}
}

// Reset clears all tracked context.
func (t *KeyTrack) Reset() {
	*t = KeyTrack{digits: t.digits[:0]}
}
