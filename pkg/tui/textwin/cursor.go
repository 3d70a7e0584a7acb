// ABOUTME: Cursor in display coordinates with desired column and selection anchor
// ABOUTME: Motions are resolved against the current wrapped layout, never raw offsets

package textwin

import "unicode"

// Position is a display coordinate.
type Position struct {
	Row int
	Col int
}

// Less reports whether p precedes q in row-major order.
func (p Position) Less(q Position) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

// Layout is the view of wrapped lines a cursor moves over.
type Layout interface {
	Rows() int
	RowLength(row int) int
	RowRunes(row int) []rune
}

type motionKind int

const (
	motionLeft motionKind = iota
	motionRight
	motionUp
	motionDown
	motionLinesForward
	motionLinesBackward
	motionStartOfLine
	motionEndOfLine
	motionTopOfFile
	motionEndOfFile
	motionEndOfFileEndOfLine
	motionWordForward
	motionWordBackward
	motionWordEnd
)

// Motion is a cursor movement request.
type Motion struct {
	kind motionKind
	n    int
}

// Single-step and absolute motions.
var (
	Left               = Motion{kind: motionLeft, n: 1}
	Right              = Motion{kind: motionRight, n: 1}
	Up                 = Motion{kind: motionUp, n: 1}
	Down               = Motion{kind: motionDown, n: 1}
	StartOfLine        = Motion{kind: motionStartOfLine}
	EndOfLine          = Motion{kind: motionEndOfLine}
	TopOfFile          = Motion{kind: motionTopOfFile}
	EndOfFile          = Motion{kind: motionEndOfFile}
	EndOfFileEndOfLine = Motion{kind: motionEndOfFileEndOfLine}
	WordForward        = Motion{kind: motionWordForward, n: 1}
	WordBackward       = Motion{kind: motionWordBackward, n: 1}
	WordEnd            = Motion{kind: motionWordEnd, n: 1}
)

// LinesForward moves down n rows.
func LinesForward(n int) Motion { return Motion{kind: motionLinesForward, n: n} }

// LinesBackward moves up n rows.
func LinesBackward(n int) Motion { return Motion{kind: motionLinesBackward, n: n} }

// Times repeats a horizontal or word motion n times. Line motions already
// carry their count.
func (m Motion) Times(n int) Motion {
	if n > 1 {
		m.n = n
	}
	return m
}

// IsVertical reports whether the motion keeps the desired column.
func (m Motion) IsVertical() bool {
	switch m.kind {
	case motionUp, motionDown, motionLinesForward, motionLinesBackward:
		return true
	}
	return false
}

// Cursor tracks a display position, a desired column for vertical motion,
// and an optional selection anchor.
type Cursor struct {
	Row int
	Col int

	desiredCol int
	anchor     Position
	selecting  bool
}

// Position returns the current display position.
func (c *Cursor) Position() Position { return Position{Row: c.Row, Col: c.Col} }

// DesiredCol returns the column vertical moves try to return to.
func (c *Cursor) DesiredCol() int { return c.desiredCol }

// SetPosition places the cursor and resets the desired column.
func (c *Cursor) SetPosition(row, col int, l Layout) {
	c.Row, c.Col = row, col
	c.Clamp(l)
	c.desiredCol = c.Col
}

// Clamp restores row ∈ [0, rows-1] and col ∈ [0, len(row)].
func (c *Cursor) Clamp(l Layout) {
	c.Row = clamp(c.Row, 0, max(l.Rows()-1, 0))
	c.Col = clamp(c.Col, 0, l.RowLength(c.Row))
}

// Move applies m against layout l.
func (c *Cursor) Move(m Motion, l Layout) {
	last := max(l.Rows()-1, 0)
	n := max(m.n, 1)
	switch m.kind {
	case motionLeft:
		c.Col = max(c.Col-n, 0)
		c.desiredCol = c.Col
	case motionRight:
		c.Col = min(c.Col+n, l.RowLength(c.Row))
		c.desiredCol = c.Col
	case motionUp, motionLinesBackward:
		c.vertical(c.Row-n, l)
	case motionDown, motionLinesForward:
		c.vertical(c.Row+n, l)
	case motionStartOfLine:
		c.Col = 0
		c.desiredCol = 0
	case motionEndOfLine:
		c.Col = l.RowLength(c.Row)
		c.desiredCol = c.Col
	case motionTopOfFile:
		c.Row, c.Col, c.desiredCol = 0, 0, 0
	case motionEndOfFile:
		c.Row, c.Col, c.desiredCol = last, 0, 0
	case motionEndOfFileEndOfLine:
		c.Row = last
		c.Col = l.RowLength(last)
		c.desiredCol = c.Col
	case motionWordForward:
		for range n {
			c.wordForward(l)
		}
		c.desiredCol = c.Col
	case motionWordBackward:
		for range n {
			c.wordBackward(l)
		}
		c.desiredCol = c.Col
	case motionWordEnd:
		for range n {
			c.wordEnd(l)
		}
		c.desiredCol = c.Col
	}
}

// vertical moves to row keeping the desired column where the row allows it.
func (c *Cursor) vertical(row int, l Layout) {
	c.Row = clamp(row, 0, max(l.Rows()-1, 0))
	c.Col = min(c.desiredCol, l.RowLength(c.Row))
}

// SetSelection arms selection at the current position, or disarms it.
func (c *Cursor) SetSelection(enable bool) {
	c.selecting = enable
	if enable {
		c.anchor = c.Position()
	}
}

// Selecting reports whether a selection is armed.
func (c *Cursor) Selecting() bool { return c.selecting }

// SelectionBounds returns (startRow, startCol, endRow, endCol) in row-major
// order regardless of drag direction. Without a selection both ends are
// the cursor.
func (c *Cursor) SelectionBounds() (int, int, int, int) {
	a, b := c.anchor, c.Position()
	if !c.selecting {
		a = b
	}
	if b.Less(a) {
		a, b = b, a
	}
	return a.Row, a.Col, b.Row, b.Col
}

// ShouldSelect reports whether the glyph at (row, col) lies within the
// inclusive range (sr, sc)..(er, ec).
func ShouldSelect(row, col, sr, sc, er, ec int) bool {
	switch {
	case row < sr || row > er:
		return false
	case sr == er:
		return col >= sc && col <= ec
	case row == sr:
		return col >= sc
	case row == er:
		return col <= ec
	}
	return true
}

type runeClass int

const (
	classSpace runeClass = iota
	classWord
	classPunct
)

func classOf(l Layout, row, col int) runeClass {
	rs := l.RowRunes(row)
	if col >= len(rs) {
		return classSpace
	}
	r := rs[col]
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	}
	return classPunct
}

// next advances one position; the slot past a row's last rune is visited
// and counts as space. It returns false at the end of the last row.
func next(l Layout, row, col int) (int, int, bool) {
	if col < l.RowLength(row) {
		return row, col + 1, true
	}
	if row+1 < l.Rows() {
		return row + 1, 0, true
	}
	return row, col, false
}

func prev(l Layout, row, col int) (int, int, bool) {
	if col > 0 {
		return row, col - 1, true
	}
	if row > 0 {
		return row - 1, l.RowLength(row - 1), true
	}
	return row, col, false
}

func (c *Cursor) wordForward(l Layout) {
	r, col := c.Row, c.Col
	ok := true
	if cls := classOf(l, r, col); cls != classSpace {
		for ok && classOf(l, r, col) == cls {
			r, col, ok = next(l, r, col)
		}
	}
	for ok && classOf(l, r, col) == classSpace {
		r, col, ok = next(l, r, col)
	}
	c.Row, c.Col = r, col
}

func (c *Cursor) wordBackward(l Layout) {
	r, col, ok := prev(l, c.Row, c.Col)
	for ok && classOf(l, r, col) == classSpace {
		r, col, ok = prev(l, r, col)
	}
	cls := classOf(l, r, col)
	for cls != classSpace {
		pr, pc, pok := prev(l, r, col)
		if !pok || classOf(l, pr, pc) != cls {
			break
		}
		r, col = pr, pc
	}
	c.Row, c.Col = r, col
}

func (c *Cursor) wordEnd(l Layout) {
	r, col, ok := next(l, c.Row, c.Col)
	for ok && classOf(l, r, col) == classSpace {
		r, col, ok = next(l, r, col)
	}
	cls := classOf(l, r, col)
	for cls != classSpace {
		nr, nc, nok := next(l, r, col)
		if !nok || classOf(l, nr, nc) != cls {
			break
		}
		r, col = nr, nc
	}
	c.Row, c.Col = r, col
}
