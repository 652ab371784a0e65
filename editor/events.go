package editor

import "github.com/iw2rmb/nomad/buffer"

// ChangeEvent reports a buffer change (text or cursor) after an Update.
type ChangeEvent struct {
	Version  uint64
	Cursor   buffer.Pos
	Filename string
	Dirty    bool

	// Whole text; hosts diff if they need to.
	Text string
}

func buildChangeEvent(s *Session) ChangeEvent {
	b := s.Buffer()
	return ChangeEvent{
		Version:  b.Version(),
		Cursor:   b.Cursor(),
		Filename: s.Filename(),
		Dirty:    s.Dirty(),
		Text:     b.Text(),
	}
}
