package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/nomad/buffer"
	"github.com/iw2rmb/nomad/internal/grapheme"
)

// chrome is the number of rows around the content area: title, status and
// legend.
const chrome = 3

func (m *Model) renderContent() string {
	buf := m.sess.Buffer()
	cursor := buf.Cursor()
	digits := 0
	if m.cfg.ShowLineNums {
		digits = gutterDigits(buf.LineCount())
	}
	width := m.contentWidth()

	out := make([]string, 0, buf.LineCount())
	for row := 0; row < buf.LineCount(); row++ {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}
		sb.WriteString(renderLine(m.cfg.Style, buf.LineGraphemes(row), row, cursor, m.cfg.TabWidth, m.xOffset, width))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderLine draws the cells [left, left+width) of one logical line. A width
// of 0 or less means unbounded. The cursor row uses the CurrentLine style and
// the cursor cell is drawn with the Cursor style, past the last grapheme if
// needed.
func renderLine(st Style, line []string, row int, cursor buffer.Pos, tabWidth, left, width int) string {
	onCursorRow := row == cursor.Row
	base := st.Text
	if onCursorRow {
		base = st.CurrentLine
	}
	right := left + width
	bounded := width > 0

	var (
		out strings.Builder
		run strings.Builder
	)
	flush := func() {
		if run.Len() > 0 {
			out.WriteString(base.Render(run.String()))
			run.Reset()
		}
	}

	cell := 0
	for col, g := range line {
		w := grapheme.Width(g, cell, tabWidth)
		start := cell
		cell += w
		if start < left {
			continue
		}
		if bounded && start+w > right {
			break
		}

		text := grapheme.Printable(g)
		if g == "\t" {
			text = strings.Repeat(" ", w)
		}
		if onCursorRow && col == cursor.Col {
			flush()
			out.WriteString(st.Cursor.Render(text))
			continue
		}
		run.WriteString(text)
	}
	flush()

	if onCursorRow && cursor.Col >= len(line) && cell >= left && (!bounded || cell < right) {
		out.WriteString(st.Cursor.Render(" "))
	}
	return out.String()
}

// cursorCell returns the cell offset of the cursor within its line.
func cursorCell(line []string, col, tabWidth int) int {
	cell := 0
	for i := 0; i < col && i < len(line); i++ {
		cell += grapheme.Width(line[i], cell, tabWidth)
	}
	return cell
}

func gutterDigits(lines int) int {
	d := 1
	for lines >= 10 {
		lines /= 10
		d++
	}
	return d
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width
	if m.cfg.ShowLineNums {
		w -= gutterDigits(m.sess.Buffer().LineCount()) + 1
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderTitle() string {
	title := m.cfg.Title
	if title == "" {
		title = "nomad"
	}
	name := m.sess.Filename()
	if name == "" {
		name = "[No Name]"
	}
	if m.sess.Dirty() {
		name += " [+]"
	}
	return m.cfg.Style.Title.Render(m.truncate(title + " | " + name))
}

func (m *Model) renderStatus() string {
	cur := m.sess.Buffer().Cursor()
	line := fmt.Sprintf("Cursor: (%d, %d)", cur.Col, cur.Row)
	if status := flatten(m.sess.Status()); status != "" {
		line += " | " + status
	}
	return m.cfg.Style.Status.Render(m.truncate(line))
}

func (m *Model) renderLegend() string {
	if kind, text, ok := m.sess.Prompt(); ok {
		p := m.cfg.Style.Prompt.Render(kind.Label()+text) + m.cfg.Style.Cursor.Render(" ")
		return p + "  " + m.help.ShortHelpView(m.cfg.KeyMap.PromptHelp())
	}
	return m.help.ShortHelpView(m.cfg.KeyMap.ShortHelp())
}

func (m *Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}

// flatten keeps multi-line status text (transform output) on one row.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ⏎ ")), " ")
}

func (m Model) frame() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.viewport.View(),
		m.renderStatus(),
		m.renderLegend(),
	)
}
