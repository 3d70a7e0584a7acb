// ABOUTME: Tests for KeyTrack numeric prefixes and previous-key tracking
// ABOUTME: Covers '0' handling, count defaults and operator-pending counts

package dispatch

import (
	"testing"

	"github.com/mauromedda/panechat/pkg/tui/key"
)

func TestKeyTrack_CountDefaultsToOne(t *testing.T) {
	t.Parallel()

	var tr KeyTrack
	if tr.Observe(key.Rune('j'), true) {
		t.Fatal("j is not a digit")
	}
	if got := tr.Take(); got != 1 {
		t.Errorf("Take() = %d, want 1", got)
	}
}

func TestKeyTrack_Prefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys string
		want int
	}{
		{"single", "3j", 3},
		{"multi", "12j", 12},
		{"trailing zero", "10j", 10},
		{"leading zero is a key", "0", 1},
		{"capped", "9999999j", maxCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var tr KeyTrack
			for _, r := range tt.keys {
				tr.Observe(key.Rune(r), true)
			}
			if got := tr.Take(); got != tt.want {
				t.Errorf("Take() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKeyTrack_ZeroWithoutPrefixIsNotDigit(t *testing.T) {
	t.Parallel()

	var tr KeyTrack
	if tr.Observe(key.Rune('0'), true) {
		t.Error("'0' with no pending prefix should be dispatched as a key")
	}
	tr.Observe(key.Rune('2'), true)
	if !tr.Observe(key.Rune('0'), true) {
		t.Error("'0' after a digit should extend the prefix")
	}
	if tr.Pending() != "20" {
		t.Errorf("Pending() = %q, want 20", tr.Pending())
	}
}

func TestKeyTrack_NotCountingTreatsDigitsAsKeys(t *testing.T) {
	t.Parallel()

	var tr KeyTrack
	if tr.Observe(key.Rune('5'), false) {
		t.Error("digits typed in Insert must not become a count")
	}
	if tr.Take() != 1 {
		t.Error("count should stay at its default")
	}
}

func TestKeyTrack_KeptCountSurvivesOneKey(t *testing.T) {
	t.Parallel()

	var tr KeyTrack
	tr.Observe(key.Rune('3'), true)
	tr.Observe(key.Rune('d'), true)
	tr.finish(countKept)
	if prev, ok := tr.Previous(); !ok || prev != 'd' {
		t.Fatalf("Previous() = %q, %v; want 'd'", prev, ok)
	}
	tr.Observe(key.Rune('d'), true)
	if got := tr.Take(); got != 3 {
		t.Errorf("Take() = %d, want 3", got)
	}
	tr.completeSequence()
	tr.finish(countConsumed)
	if _, ok := tr.Previous(); ok {
		t.Error("a completed sequence should clear the previous key")
	}
}

func TestKeyTrack_DroppedCountIsCleared(t *testing.T) {
	t.Parallel()

	var tr KeyTrack
	tr.Observe(key.Rune('4'), true)
	tr.Observe(key.Rune('z'), true)
	tr.finish(countDropped)
	if tr.Peek() != 0 {
		t.Errorf("Peek() = %d, want 0", tr.Peek())
	}
}

func TestKeyTrack_Reset(t *testing.T) {
	t.Parallel()

	var tr KeyTrack
	tr.Observe(key.Rune('4'), true)
	tr.Observe(key.Rune('g'), true)
	tr.finish(countKept)
	tr.Reset()
	if _, ok := tr.Previous(); ok || tr.Peek() != 0 || tr.Pending() != "" {
		t.Error("Reset should clear all context")
	}
}
