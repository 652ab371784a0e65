package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	g := uniseg.NewGraphemes(text)
	idx := 0
	var sb strings.Builder
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	if start >= idx {
		return ""
	}
	return sb.String()
}

// DropLast returns text without its final grapheme cluster.
func DropLast(text string) string {
	n := Count(text)
	if n == 0 {
		return ""
	}
	return Slice(text, 0, n-1)
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// isControl reports a single C0 control byte (other than tab) or DEL.
func isControl(cluster string) bool {
	if len(cluster) != 1 {
		return false
	}
	c := cluster[0]
	return (c < 0x20 && c != '\t') || c == 0x7f
}

// Printable returns the text drawn for cluster. Control characters use caret
// notation ("^M"); everything else, tabs included, is returned as is.
func Printable(cluster string) string {
	if !isControl(cluster) {
		return cluster
	}
	if cluster[0] == 0x7f {
		return "^?"
	}
	return "^" + string(rune(cluster[0]+'@'))
}

// Width returns the terminal cell width of cluster drawn at visualCol.
// Tabs advance to the next multiple of tabWidth. Control characters take the
// width of their caret notation.
func Width(cluster string, visualCol, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - visualCol%tabWidth
	}
	if isControl(cluster) {
		return 2
	}

	w := runewidth.StringWidth(cluster)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(cluster); fallback > w {
			w = fallback
		}
	}
	return w
}
