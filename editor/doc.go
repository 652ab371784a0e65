// Package editor provides the nomad editing session and its Bubble Tea front
// end.
//
// A Session owns one buffer plus the session metadata (filename, status
// message, modal prompt). Every key press becomes a Command, and
// Session.Apply is the single place where commands change state. Model wraps
// a Session for Bubble Tea: it maps key messages to commands and repaints the
// whole frame after each one.
package editor
