// Package buffer implements the pure, grapheme-accurate line model behind the
// nomad editor.
//
// Coordinates are 0-based (Row, Col). Col counts grapheme clusters, not bytes
// or runes. A Buffer always holds at least one line and its cursor is always
// inside the document.
package buffer
