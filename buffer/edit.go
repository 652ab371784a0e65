package buffer

import (
	"strings"

	"github.com/iw2rmb/nomad/internal/grapheme"
)

// InsertGrapheme inserts a single grapheme cluster at the cursor and advances
// the cursor one column with the same rules as a right move.
//
// A cluster that extends its neighbour (a combining mark typed after its
// base, a second regional indicator) is merged into that cluster, so the
// columns match what Load would produce for the same text. Merging into the
// preceding cluster leaves the cursor where it is.
func (b *Buffer) InsertGrapheme(g string) {
	if g == "" {
		return
	}
	if g == "\n" {
		b.InsertNewline()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	if row == len(b.lines) {
		b.lines = append(b.lines, nil)
	}

	line := b.lines[row]
	if col > 0 && grapheme.Count(line[col-1]+g) == 1 {
		next := append([]string(nil), line...)
		next[col-1] += g
		b.lines[row] = next
		b.version++
		return
	}
	if col < len(line) && grapheme.Count(g+line[col]) == 1 {
		next := append([]string(nil), line...)
		next[col] = g + line[col]
		b.lines[row] = next
		b.cursor = b.moveGrapheme(b.cursor, DirRight)
		b.version++
		return
	}

	next := make([]string, 0, len(line)+1)
	next = append(next, line[:col]...)
	next = append(next, g)
	next = append(next, line[col:]...)
	b.lines[row] = next

	b.cursor = b.moveGrapheme(b.cursor, DirRight)
	b.version++
}

// InsertText inserts s at the cursor. Every '\n' in s splits the line as
// InsertNewline does; the cursor ends after the inserted text.
func (b *Buffer) InsertText(s string) {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			b.InsertNewline()
		}
		for _, g := range grapheme.Split(part) {
			b.InsertGrapheme(g)
		}
	}
}

// InsertNewline splits the cursor line at the cursor. The text after the
// cursor becomes a new line directly below and the cursor moves to its start.
func (b *Buffer) InsertNewline() {
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]

	before := append([]string(nil), line[:col]...)
	after := append([]string(nil), line[col:]...)

	out := make([][]string, 0, len(b.lines)+1)
	out = append(out, b.lines[:row]...)
	out = append(out, before, after)
	out = append(out, b.lines[row+1:]...)
	b.lines = out

	b.cursor = Pos{Row: row + 1, Col: 0}
	b.version++
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		line := b.lines[row]
		next := make([]string, 0, len(line)-1)
		next = append(next, line[:col-1]...)
		next = append(next, line[col:]...)
		b.lines[row] = next
		b.cursor = Pos{Row: row, Col: col - 1}
		b.version++
		return
	}

	// Join with previous line (delete the newline).
	prevLen := len(b.lines[row-1])
	b.joinWithNext(row - 1)
	b.cursor = Pos{Row: row - 1, Col: prevLen}
	b.version++
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	row, col := b.cursor.Row, b.cursor.Col
	lastRow := len(b.lines) - 1
	if row == lastRow && col == len(b.lines[lastRow]) {
		return
	}

	if col < len(b.lines[row]) {
		line := b.lines[row]
		next := make([]string, 0, len(line)-1)
		next = append(next, line[:col]...)
		next = append(next, line[col+1:]...)
		b.lines[row] = next
		b.version++
		return
	}

	// Join with next line (delete the newline).
	b.joinWithNext(row)
	b.version++
}

// CutLine removes the cursor line and returns its text. The last remaining
// line is emptied instead of removed. The cursor moves to column 0 of the line
// that takes the cut line's place. Cutting the only line when it is already
// empty is a no-op.
func (b *Buffer) CutLine() string {
	if len(b.lines) == 1 && len(b.lines[0]) == 0 {
		return ""
	}
	row := b.cursor.Row
	text := grapheme.Join(b.lines[row])

	if len(b.lines) == 1 {
		b.lines = [][]string{nil}
	} else {
		out := make([][]string, 0, len(b.lines)-1)
		out = append(out, b.lines[:row]...)
		out = append(out, b.lines[row+1:]...)
		b.lines = out
	}

	b.cursor = b.clampPos(Pos{Row: row, Col: 0})
	b.version++
	return text
}

// PasteLine inserts s as whole line(s) above the cursor line. A '\n' in s
// yields several lines. The cursor keeps pointing at column 0 of the line it
// was on before.
func (b *Buffer) PasteLine(s string) {
	row := b.cursor.Row
	ins := splitLines(s)

	out := make([][]string, 0, len(b.lines)+len(ins))
	out = append(out, b.lines[:row]...)
	out = append(out, ins...)
	out = append(out, b.lines[row:]...)
	b.lines = out

	b.cursor = Pos{Row: row + len(ins), Col: 0}
	b.version++
}

// joinWithNext appends row+1 onto row and removes row+1.
func (b *Buffer) joinWithNext(row int) {
	joined := make([]string, 0, len(b.lines[row])+len(b.lines[row+1]))
	joined = append(joined, b.lines[row]...)
	joined = append(joined, b.lines[row+1]...)

	out := make([][]string, 0, len(b.lines)-1)
	out = append(out, b.lines[:row]...)
	out = append(out, joined)
	out = append(out, b.lines[row+2:]...)
	b.lines = out
}
