package buffer

import (
	"strings"

	"github.com/iw2rmb/nomad/internal/grapheme"
)

// Buffer is the pure document state: lines of grapheme clusters and a cursor.
type Buffer struct {
	lines   [][]string
	version uint64

	cursor Pos
}

// New returns a buffer holding text with the cursor at (0,0).
// New("") yields a single empty line.
func New(text string) *Buffer {
	return &Buffer{
		lines:  splitLines(text),
		cursor: Pos{Row: 0, Col: 0},
	}
}

// Text returns the document as lines joined by a single '\n'.
// No trailing newline is added.
func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(grapheme.Join(line))
	}
	return sb.String()
}

// Load replaces the whole document with text and resets the cursor to (0,0).
//
// Text is split on '\n' only; '\r' is kept as line content. A trailing
// newline produces a final empty line, so Load(Text()) round-trips lines but
// cannot tell "a\n" from a buffer whose last line is really empty.
func (b *Buffer) Load(text string) {
	b.lines = splitLines(text)
	b.cursor = Pos{}
	b.version++
}

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// LineCount returns the number of logical lines. It is always >= 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// LineLen returns the grapheme length of row, or 0 when row is out of range.
func (b *Buffer) LineLen(row int) int { return b.lineLen(row) }

// Line returns the text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return grapheme.Join(b.lines[row])
}

// Lines returns a copy of every line as a string.
func (b *Buffer) Lines() []string {
	out := make([]string, 0, len(b.lines))
	for _, line := range b.lines {
		out = append(out, grapheme.Join(line))
	}
	return out
}

// LineGraphemes returns a copy of the grapheme clusters of row.
func (b *Buffer) LineGraphemes(row int) []string {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return append([]string(nil), b.lines[row]...)
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func splitLines(text string) [][]string {
	parts := strings.Split(text, "\n")
	lines := make([][]string, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, grapheme.Split(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
