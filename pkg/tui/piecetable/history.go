// ABOUTME: Bounded undo/redo history of piece-table edits
// ABOUTME: Records insert/delete operations; a new record invalidates redo

package piecetable

// DefaultDepth is the undo depth used by New.
const DefaultDepth = 200

type opKind uint8

const (
	opInsert opKind = iota
	opDelete
)

// op is one committed edit. Undoing an insert deletes text at pos; undoing
// a delete re-inserts it.
type op struct {
	kind opKind
	pos  int
	text []rune
}

// history keeps two stacks of ops. The oldest entry is evicted when the
// undo stack reaches its depth.
type history struct {
	undo  []op
	redo  []op
	depth int
}

func newHistory(depth int) *history {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &history{depth: depth}
}

func (h *history) record(o op) {
	h.push(o)
	h.redo = h.redo[:0]
}

// push adds o to the undo stack, evicting the oldest entries beyond depth.
func (h *history) push(o op) {
	if n := len(h.undo) + 1 - h.depth; n > 0 {
		h.undo = h.undo[n:]
	}
	h.undo = append(h.undo, o)
}

// setDepth changes the depth, dropping the oldest undo entries that no
// longer fit. Redo entries are kept; they are capped as they move back.
func (h *history) setDepth(depth int) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	h.depth = depth
	if n := len(h.undo) - depth; n > 0 {
		h.undo = h.undo[n:]
	}
}

func (h *history) popUndo() (op, bool) {
	if len(h.undo) == 0 {
		return op{}, false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, last)
	return last, true
}

func (h *history) popRedo() (op, bool) {
	if len(h.redo) == 0 {
		return op{}, false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.push(last)
	return last, true
}

func (h *history) reset() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
