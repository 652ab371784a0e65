package editor

import (
	"context"
	"errors"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/nomad/buffer"
)

type memFiles struct {
	files   map[string]string
	saves   int
	saveErr error
	loadErr error
	statErr error
}

func newMemFiles(files map[string]string) *memFiles {
	if files == nil {
		files = map[string]string{}
	}
	return &memFiles{files: files}
}

func (f *memFiles) Exists(name string) (bool, error) {
	if f.statErr != nil {
		return false, f.statErr
	}
	_, ok := f.files[name]
	return ok, nil
}

func (f *memFiles) Load(name string) (string, error) {
	if f.loadErr != nil {
		return "", f.loadErr
	}
	text, ok := f.files[name]
	if !ok {
		return "", fs.ErrNotExist
	}
	return text, nil
}

func (f *memFiles) Save(name, text string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.files[name] = text
	return nil
}

type memClipboard struct {
	s   string
	err error
}

func (c *memClipboard) ReadText() (string, error) { return c.s, c.err }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return c.err }

type recordingTransformer struct {
	instruction string
	content     string
	calls       int
	reply       string
	err         error
	wait        bool
}

func (r *recordingTransformer) Transform(ctx context.Context, instruction, content string) (string, error) {
	r.calls++
	r.instruction, r.content = instruction, content
	if r.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return r.reply, r.err
}

var errDisk = errors.New("disk on fire")

func cursorAt(row, col int) buffer.Pos { return buffer.Pos{Row: row, Col: col} }

// ctrl builds the key message for ctrl+<c>; ctrl+m is enter.
func ctrl(c byte) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyType(c - 'a' + 1)} }
