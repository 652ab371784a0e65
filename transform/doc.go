// Package transform turns a note and a free-text instruction into a derived
// string, usually by asking a language model.
//
// The editor treats a Transformer as opaque: it hands over the whole buffer
// and shows whatever comes back (or the error) in its status line.
package transform
