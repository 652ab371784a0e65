package editor

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestRender_LineNumberAlignment_1To120(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("x")
	}

	m := New(Config{Text: sb.String(), ShowLineNums: true, Files: newMemFiles(nil)})
	m = m.SetSize(10, 123)

	lines := strings.Split(ansi.Strip(m.renderContent()), "\n")
	if len(lines) != 120 {
		t.Fatalf("expected 120 lines, got %d", len(lines))
	}

	digits := 3
	for i, line := range lines {
		wantPrefix := fmt.Sprintf("%*d ", digits, i+1)
		if !strings.HasPrefix(line, wantPrefix) {
			t.Fatalf("line %d prefix: got %q, want prefix %q", i+1, line, wantPrefix)
		}
	}
}

func TestRender_CursorCellUsesCursorStyle(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{Text: lipgloss.NewStyle(), Cursor: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)},
		Files: newMemFiles(nil),
	})

	got := m.renderContent()
	want := " a b"
	if got != want {
		t.Fatalf("unexpected cursor rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CursorProducesANSI(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)

	st := Style{
		Text:        r.NewStyle(),
		CurrentLine: r.NewStyle(),
		Cursor:      r.NewStyle().Reverse(true),
	}
	got := renderLine(st, []string{"a", "b"}, 0, cursorAt(0, 1), 4, 0, 0)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escape for the cursor, got %q", got)
	}
	if stripped := ansi.Strip(got); stripped != "ab" {
		t.Fatalf("stripped: got %q, want %q", stripped, "ab")
	}
}

func TestRender_StatusIsTruncatedToWidth(t *testing.T) {
	tr := &recordingTransformer{reply: strings.Repeat("y", 100)}
	m := New(Config{Files: newMemFiles(nil), Transformer: tr})
	m = m.SetSize(30, 5)
	m, _ = m.Update(ctrl('l'))
	m, _ = m.Update(ctrl('m'))

	status := ansi.Strip(m.renderStatus())
	if w := ansi.StringWidth(status); w > 30 {
		t.Fatalf("status width: got %d, want <= 30 (%q)", w, status)
	}
	if !strings.HasSuffix(status, "…") {
		t.Fatalf("status: got %q, want ellipsis", status)
	}
}
