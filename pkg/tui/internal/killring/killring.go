// ABOUTME: Yank register ring remembering recent yanks with a linewise flag
// ABOUTME: Fixed-size circular buffer; Latest returns the newest entry, Older cycles back

package killring

// DefaultSize is the ring capacity used by New.
const DefaultSize = 32

// Entry is one yanked text. Linewise entries came from whole-line yanks
// and paste below the cursor line.
type Entry struct {
	Text     string
	Linewise bool
}

// Ring is a fixed-size ring of yank entries.
type Ring struct {
	entries []Entry
	pos     int
	size    int
	cycle   int
}

// New creates a ring holding at most size entries.
func New(size int) *Ring {
	if size <= 0 {
		size = DefaultSize
	}
	return &Ring{entries: make([]Entry, 0, size), size: size}
}

// Push records an entry. Empty text and repeats of the newest entry are ignored.
func (r *Ring) Push(e Entry) {
	if e.Text == "" {
		return
	}
	if n := len(r.entries); n > 0 && r.entries[r.newest()] == e {
		return
	}
	if len(r.entries) < r.size {
		r.entries = append(r.entries, e)
	} else {
		r.entries[r.pos] = e
	}
	r.pos = (r.pos + 1) % r.size
	r.cycle = r.newest()
}

// Latest returns the newest entry and resets cycling.
func (r *Ring) Latest() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	r.cycle = r.newest()
	return r.entries[r.cycle], true
}

// Older steps one entry back from the last returned one, wrapping around.
func (r *Ring) Older() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	r.cycle = (r.cycle - 1 + len(r.entries)) % len(r.entries)
	return r.entries[r.cycle], true
}

// Len returns the number of entries in the ring.
func (r *Ring) Len() int {
	return len(r.entries)
}

func (r *Ring) newest() int {
	return (r.pos - 1 + len(r.entries)) % len(r.entries)
}
