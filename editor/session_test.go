package editor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iw2rmb/nomad/buffer"
)

func apply(t *testing.T, s *Session, cmds ...Command) {
	t.Helper()
	for _, c := range cmds {
		if err := s.Apply(context.Background(), c); err != nil {
			t.Fatalf("apply %s: %v", c.Kind, err)
		}
	}
}

func typeText(s string) []Command {
	out := make([]Command, 0, len(s))
	for _, r := range s {
		out = append(out, Insert(string(r)))
	}
	return out
}

func promptText(s string) []Command {
	out := make([]Command, 0, len(s))
	for _, r := range s {
		out = append(out, PromptInput(string(r)))
	}
	return out
}

func assertLines(t *testing.T, s *Session, want ...string) {
	t.Helper()
	if got := s.Buffer().Lines(); strings.Join(got, "\n") != strings.Join(want, "\n") || len(got) != len(want) {
		t.Fatalf("lines=%q, want %q", got, want)
	}
}

func assertStatus(t *testing.T, s *Session, want string) {
	t.Helper()
	if got := s.Status(); got != want {
		t.Fatalf("status=%q, want %q", got, want)
	}
}

func assertMode(t *testing.T, s *Session, want Mode) {
	t.Helper()
	if got := s.Mode(); got != want {
		t.Fatalf("mode=%v, want %v", got, want)
	}
}

func TestSession_StartsEditingWithEmptyBuffer(t *testing.T) {
	s := NewSession(Config{Files: newMemFiles(nil)})
	assertMode(t, s, ModeEditing)
	assertLines(t, s, "")
	if got := s.Buffer().Cursor(); got != (buffer.Pos{}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
	if s.Filename() != "" || s.Status() != "" || s.Dirty() {
		t.Fatalf("fresh session: filename=%q status=%q dirty=%v", s.Filename(), s.Status(), s.Dirty())
	}
}

func TestSession_EditCommandsReachBuffer(t *testing.T) {
	s := NewSession(Config{Files: newMemFiles(nil)})
	apply(t, s, typeText("abc")...)
	apply(t, s,
		Command{Kind: CmdNewline},
		Insert("d"),
		MoveBy(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft}),
		Command{Kind: CmdBackspace},
	)
	if got := s.Buffer().Text(); got != "abcd" {
		t.Fatalf("text=%q, want %q", got, "abcd")
	}
	if got := s.Buffer().Cursor(); got != (buffer.Pos{Row: 0, Col: 3}) {
		t.Fatalf("cursor=%v, want %v", got, buffer.Pos{Row: 0, Col: 3})
	}
	if !s.Dirty() {
		t.Fatalf("dirty=false after edits")
	}
}

func TestSession_MoveDoesNotDirty(t *testing.T) {
	s := NewSession(Config{Text: "ab", Files: newMemFiles(nil)})
	apply(t, s, MoveBy(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd}))
	if s.Dirty() {
		t.Fatalf("dirty=true after a move")
	}
	if got := s.Buffer().Cursor(); got != (buffer.Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor=%v, want %v", got, buffer.Pos{Row: 0, Col: 2})
	}
}

func TestSession_SaveWithoutFilenameIsStatusOnly(t *testing.T) {
	files := newMemFiles(nil)
	s := NewSession(Config{Text: "x", Files: files})

	if err := s.Apply(context.Background(), Command{Kind: CmdSave}); err != nil {
		t.Fatalf("save without filename: err=%v, want nil", err)
	}
	assertStatus(t, s, statusNoFilename)
	assertMode(t, s, ModeEditing)
	if files.saves != 0 {
		t.Fatalf("saves=%d, want 0", files.saves)
	}
}

func TestSession_SaveWritesContent(t *testing.T) {
	files := newMemFiles(nil)
	s := NewSession(Config{Text: "a\nb", Filename: "note.txt", Files: files})
	apply(t, s, Insert("!"), Command{Kind: CmdSave})

	if got := files.files["note.txt"]; got != "!a\nb" {
		t.Fatalf("saved=%q, want %q", got, "!a\nb")
	}
	assertStatus(t, s, "Saved file: note.txt")
	if s.Dirty() {
		t.Fatalf("dirty=true after save")
	}
}

func TestSession_SaveErrorTerminates(t *testing.T) {
	files := newMemFiles(nil)
	files.saveErr = errDisk
	s := NewSession(Config{Filename: "note.txt", Files: files})

	if err := s.Apply(context.Background(), Command{Kind: CmdSave}); !errors.Is(err, errDisk) {
		t.Fatalf("save err=%v, want %v", err, errDisk)
	}
	assertMode(t, s, ModeTerminated)
	if !errors.Is(s.Err(), errDisk) {
		t.Fatalf("Err()=%v, want %v", s.Err(), errDisk)
	}

	// Terminated is absorbing.
	apply(t, s, Insert("x"))
	if got := s.Buffer().Text(); got != "" {
		t.Fatalf("text after terminate=%q, want empty", got)
	}
}

func TestSession_OpenPrompt_LoadsExistingFile(t *testing.T) {
	files := newMemFiles(map[string]string{"todo.txt": "x\ny\nz"})
	s := NewSession(Config{Text: "scratch", Files: files})

	apply(t, s, Command{Kind: CmdOpenPrompt})
	kind, text, ok := s.Prompt()
	if !ok || kind != PromptFilename || text != "" {
		t.Fatalf("prompt=(%v, %q, %v), want (filename, \"\", true)", kind, text, ok)
	}

	apply(t, s, promptText("todo.txt")...)
	apply(t, s, Command{Kind: CmdPromptCommit})

	assertMode(t, s, ModeEditing)
	assertLines(t, s, "x", "y", "z")
	if got := s.Buffer().Cursor(); got != (buffer.Pos{}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
	if s.Filename() != "todo.txt" {
		t.Fatalf("filename=%q, want %q", s.Filename(), "todo.txt")
	}
	assertStatus(t, s, "Opened file: todo.txt")
}

func TestSession_OpenPrompt_AdoptsMissingName(t *testing.T) {
	files := newMemFiles(nil)
	s := NewSession(Config{Text: "keep me", Files: files})

	apply(t, s, Command{Kind: CmdOpenPrompt})
	apply(t, s, promptText(" new.txt ")...)
	apply(t, s, Command{Kind: CmdPromptCommit})

	if s.Filename() != "new.txt" {
		t.Fatalf("filename=%q, want %q", s.Filename(), "new.txt")
	}
	if got := s.Buffer().Text(); got != "keep me" {
		t.Fatalf("text=%q, want %q", got, "keep me")
	}
	assertStatus(t, s, "File name set to: new.txt")

	apply(t, s, Command{Kind: CmdSave})
	if got := files.files["new.txt"]; got != "keep me" {
		t.Fatalf("saved=%q, want %q", got, "keep me")
	}
}

func TestSession_OpenPrompt_EmptyNameIsStatusOnly(t *testing.T) {
	s := NewSession(Config{Files: newMemFiles(nil)})
	apply(t, s, Command{Kind: CmdOpenPrompt}, Command{Kind: CmdPromptCommit})
	assertStatus(t, s, statusNoName)
	assertMode(t, s, ModeEditing)
	if s.Filename() != "" {
		t.Fatalf("filename=%q, want empty", s.Filename())
	}
}

func TestSession_OpenPrompt_LoadErrorTerminates(t *testing.T) {
	files := newMemFiles(map[string]string{"bad.txt": ""})
	files.loadErr = ErrNotUTF8
	s := NewSession(Config{Files: files})

	apply(t, s, Command{Kind: CmdOpenPrompt})
	apply(t, s, promptText("bad.txt")...)
	if err := s.Apply(context.Background(), Command{Kind: CmdPromptCommit}); !errors.Is(err, ErrNotUTF8) {
		t.Fatalf("commit err=%v, want %v", err, ErrNotUTF8)
	}
	assertMode(t, s, ModeTerminated)
}

func TestSession_PromptKeysDoNotTouchBuffer(t *testing.T) {
	s := NewSession(Config{Text: "abc", Files: newMemFiles(nil)})
	apply(t, s, Command{Kind: CmdOpenPrompt})
	apply(t, s, promptText("ab")...)
	apply(t, s,
		Command{Kind: CmdPromptBackspace},
		Insert("zzz"),
		Command{Kind: CmdNewline},
	)

	if _, text, ok := s.Prompt(); !ok || text != "a" {
		t.Fatalf("scratch=%q (open=%v), want %q", text, ok, "a")
	}
	if got := s.Buffer().Text(); got != "abc" {
		t.Fatalf("text=%q, want %q", got, "abc")
	}
}

func TestSession_PromptCancelDiscardsScratch(t *testing.T) {
	tr := &recordingTransformer{reply: "never"}
	s := NewSession(Config{Text: "abc", Files: newMemFiles(nil), Transformer: tr})

	apply(t, s, Command{Kind: CmdTransformPrompt})
	apply(t, s, promptText("do it")...)
	apply(t, s, Command{Kind: CmdPromptCancel})

	assertMode(t, s, ModeEditing)
	assertStatus(t, s, statusCancelled)
	if tr.calls != 0 {
		t.Fatalf("transform calls=%d, want 0", tr.calls)
	}

	apply(t, s, Command{Kind: CmdTransformPrompt})
	if _, text, _ := s.Prompt(); text != "" {
		t.Fatalf("new prompt scratch=%q, want empty", text)
	}
}

func TestSession_TransformSetsStatus(t *testing.T) {
	tr := &recordingTransformer{reply: "short version"}
	s := NewSession(Config{Text: "long\nnote", Files: newMemFiles(nil), Transformer: tr})

	apply(t, s, Command{Kind: CmdTransformPrompt})
	apply(t, s, promptText("@summarize")...)
	apply(t, s, Command{Kind: CmdPromptCommit})

	if tr.calls != 1 || tr.instruction != "summarize" || tr.content != "long\nnote" {
		t.Fatalf("transform call: calls=%d instruction=%q content=%q", tr.calls, tr.instruction, tr.content)
	}
	assertStatus(t, s, "short version")
	if got := s.Buffer().Text(); got != "long\nnote" {
		t.Fatalf("text=%q, transform must not edit the buffer", got)
	}
}

func TestSession_TransformFailureIsStatusOnly(t *testing.T) {
	tr := &recordingTransformer{err: errDisk}
	s := NewSession(Config{Files: newMemFiles(nil), Transformer: tr})

	apply(t, s, Command{Kind: CmdTransformPrompt}, Command{Kind: CmdPromptCommit})
	assertStatus(t, s, "Transform failed: "+errDisk.Error())
	assertMode(t, s, ModeEditing)
	if s.Err() != nil {
		t.Fatalf("Err()=%v, want nil", s.Err())
	}
}

func TestSession_TransformTimeout(t *testing.T) {
	tr := &recordingTransformer{wait: true}
	s := NewSession(Config{Files: newMemFiles(nil), Transformer: tr, TransformTimeout: 10 * time.Millisecond})

	apply(t, s, Command{Kind: CmdTransformPrompt}, Command{Kind: CmdPromptCommit})
	if st := s.Status(); !strings.Contains(st, "Transform failed") || !strings.Contains(st, "deadline exceeded") {
		t.Fatalf("status=%q, want a timeout failure", st)
	}
}

func TestSession_DefaultTransformerEchoes(t *testing.T) {
	s := NewSession(Config{Text: "hi", Files: newMemFiles(nil)})
	apply(t, s, Command{Kind: CmdTransformPrompt})
	apply(t, s, promptText("x")...)
	apply(t, s, Command{Kind: CmdPromptCommit})
	assertStatus(t, s, "Processed instruction: 'x' with context: 'hi'")
}

func TestSession_CutAndPasteLine(t *testing.T) {
	cb := &memClipboard{}
	s := NewSession(Config{Text: "one\ntwo\nthree", Files: newMemFiles(nil), Clipboard: cb})

	apply(t, s, Command{Kind: CmdCutLine})
	assertLines(t, s, "two", "three")
	if cb.s != "one" {
		t.Fatalf("clipboard=%q, want %q", cb.s, "one")
	}
	assertStatus(t, s, statusCut)

	apply(t, s,
		MoveBy(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown}),
		Command{Kind: CmdPasteLine},
	)
	assertLines(t, s, "two", "one", "three")
	assertStatus(t, s, statusPasted)
	if !s.Dirty() {
		t.Fatalf("dirty=false after cut/paste")
	}
}

func TestSession_CutEmptyBufferStaysClean(t *testing.T) {
	s := NewSession(Config{Files: newMemFiles(nil)})
	apply(t, s, Command{Kind: CmdCutLine})
	assertLines(t, s, "")
	if s.Dirty() {
		t.Fatalf("dirty=true after cutting the empty only line")
	}
}

func TestSession_PasteWithEmptyRegister(t *testing.T) {
	s := NewSession(Config{Text: "a", Files: newMemFiles(nil)})
	apply(t, s, Command{Kind: CmdPasteLine})
	assertStatus(t, s, statusNoPaste)
	assertLines(t, s, "a")
	if s.Dirty() {
		t.Fatalf("dirty=true after a failed paste")
	}
}

func TestSession_PasteFallsBackToSystemClipboard(t *testing.T) {
	cb := &memClipboard{s: "from\r\nclipboard\n"}
	s := NewSession(Config{Text: "end", Files: newMemFiles(nil), Clipboard: cb})

	apply(t, s, Command{Kind: CmdPasteLine})
	assertLines(t, s, "from", "clipboard", "end")
}

func TestSession_ClipboardErrorsAreIgnored(t *testing.T) {
	cb := &memClipboard{err: errDisk}
	s := NewSession(Config{Text: "a\nb", Files: newMemFiles(nil), Clipboard: cb})

	apply(t, s, Command{Kind: CmdCutLine}, Command{Kind: CmdPasteLine})
	assertLines(t, s, "a", "b")
	assertMode(t, s, ModeEditing)
}

func TestSession_QuitTerminatesFromAnyMode(t *testing.T) {
	s := NewSession(Config{Files: newMemFiles(nil)})
	apply(t, s, Command{Kind: CmdOpenPrompt}, Command{Kind: CmdQuit})
	assertMode(t, s, ModeTerminated)
	if s.Err() != nil {
		t.Fatalf("Err()=%v, want nil", s.Err())
	}
}

func TestSession_Load_MissingFileIsError(t *testing.T) {
	s := NewSession(Config{Files: newMemFiles(nil)})
	if err := s.Load("missing.txt"); err == nil {
		t.Fatalf("Load(missing) err=nil, want error")
	}
	// Load errors are returned, not recorded.
	assertMode(t, s, ModeEditing)
}

func TestSession_Open_StatError(t *testing.T) {
	files := newMemFiles(nil)
	files.statErr = errDisk
	s := NewSession(Config{Files: files})
	if err := s.Open("x"); !errors.Is(err, errDisk) {
		t.Fatalf("Open err=%v, want %v", err, errDisk)
	}
}

func TestCommandKind_String(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{CmdPromptCommit.String(), "prompt-commit"},
		{CommandKind(-1).String(), "unknown"},
		{ModeTerminated.String(), "terminated"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("String()=%q, want %q", tc.got, tc.want)
		}
	}
}
