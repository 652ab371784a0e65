package editor

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iw2rmb/nomad/buffer"
	"github.com/iw2rmb/nomad/transform"
)

// Mode is the state of the session machine.
type Mode int

const (
	ModeEditing Mode = iota
	ModePrompt
	ModeTerminated
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModePrompt:
		return "prompt"
	case ModeTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

const (
	statusNoFilename = "No filename set. Use Ctrl-O to set filename."
	statusNoName     = "No filename entered"
	statusCancelled  = "Cancelled"
	statusCut        = "Cut line"
	statusPasted     = "Pasted line"
	statusNoPaste    = "Nothing to paste"
)

// Session is one editing session: a buffer plus its filename, status message
// and modal prompt. It is not safe for concurrent use; a single input loop
// owns it.
type Session struct {
	buf      *buffer.Buffer
	filename string
	status   string
	mode     Mode
	prompt   prompt
	dirty    bool

	register    string
	registerSet bool

	files       Files
	transformer transform.Transformer
	timeout     time.Duration
	clipboard   Clipboard
	logger      *log.Logger

	err error
}

func NewSession(cfg Config) *Session {
	cfg = cfg.withDefaults()
	return &Session{
		buf:         buffer.New(cfg.Text),
		filename:    cfg.Filename,
		files:       cfg.Files,
		transformer: cfg.Transformer,
		timeout:     cfg.TransformTimeout,
		clipboard:   cfg.Clipboard,
		logger:      cfg.Logger,
	}
}

func (s *Session) Buffer() *buffer.Buffer { return s.buf }

func (s *Session) Filename() string { return s.filename }

func (s *Session) Status() string { return s.status }

func (s *Session) Mode() Mode { return s.mode }

// Dirty reports whether the text changed since the last load or save.
func (s *Session) Dirty() bool { return s.dirty }

// Err returns the I/O error that terminated the session, if any.
func (s *Session) Err() error { return s.err }

// Prompt returns the active modal prompt and its scratch text.
func (s *Session) Prompt() (kind PromptKind, text string, ok bool) {
	if s.mode != ModePrompt {
		return 0, "", false
	}
	return s.prompt.kind, s.prompt.scratch, true
}

// Open adopts name as the session file. An existing file is loaded into the
// buffer; a missing one becomes a new, unsaved file.
func (s *Session) Open(name string) error {
	if name == "" {
		s.status = statusNoName
		return nil
	}
	ok, err := s.files.Exists(name)
	if err != nil {
		return err
	}
	if !ok {
		s.filename = name
		s.status = "File name set to: " + name
		s.logger.Info("new file", "file", name)
		return nil
	}
	return s.Load(name)
}

// Load replaces the buffer with the content of name. Unlike Open, a missing
// file is an error.
func (s *Session) Load(name string) error {
	text, err := s.files.Load(name)
	if err != nil {
		return err
	}
	s.buf.Load(text)
	s.filename = name
	s.dirty = false
	s.status = "Opened file: " + name
	s.logger.Info("loaded", "file", name, "lines", s.buf.LineCount())
	return nil
}

// Apply runs one command. The returned error is fatal: the session records
// it, switches to ModeTerminated and ignores every later command. Recoverable
// outcomes (no filename, transform failure) only change the status message.
func (s *Session) Apply(ctx context.Context, cmd Command) error {
	if s.mode == ModeTerminated {
		return nil
	}
	if cmd.Kind == CmdQuit {
		s.mode = ModeTerminated
		s.logger.Debug("quit", "dirty", s.dirty)
		return nil
	}

	var err error
	if s.mode == ModePrompt {
		err = s.applyPrompt(ctx, cmd)
	} else {
		err = s.applyEditing(cmd)
	}
	if err != nil {
		s.fail(err)
	}
	return err
}

func (s *Session) applyEditing(cmd Command) error {
	before := s.buf.Version()

	switch cmd.Kind {
	case CmdSave:
		return s.save()
	case CmdOpenPrompt:
		s.openPrompt(PromptFilename)
	case CmdTransformPrompt:
		s.openPrompt(PromptInstruction)
	case CmdInsert:
		s.buf.InsertText(cmd.Text)
	case CmdNewline:
		s.buf.InsertNewline()
	case CmdBackspace:
		s.buf.DeleteBackward()
	case CmdDelete:
		s.buf.DeleteForward()
	case CmdMove:
		s.buf.Move(cmd.Move)
	case CmdCutLine:
		s.cutLine()
	case CmdPasteLine:
		s.pasteLine()
	}

	if cmd.edits() && s.buf.Version() != before {
		s.dirty = true
	}
	return nil
}

func (s *Session) applyPrompt(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CmdPromptInput:
		s.prompt.input(cmd.Text)
	case CmdPromptBackspace:
		s.prompt.backspace()
	case CmdPromptCancel:
		s.mode = ModeEditing
		s.prompt.reset(s.prompt.kind)
		s.status = statusCancelled
	case CmdPromptCommit:
		return s.commitPrompt(ctx)
	}
	return nil
}

func (s *Session) openPrompt(kind PromptKind) {
	s.prompt.reset(kind)
	s.mode = ModePrompt
}

func (s *Session) commitPrompt(ctx context.Context) error {
	kind, text := s.prompt.kind, s.prompt.scratch
	s.prompt.reset(kind)
	s.mode = ModeEditing

	switch kind {
	case PromptFilename:
		return s.Open(strings.TrimSpace(text))
	case PromptInstruction:
		s.runTransform(ctx, text)
	}
	return nil
}

func (s *Session) save() error {
	if s.filename == "" {
		s.status = statusNoFilename
		return nil
	}
	text := s.buf.Text()
	if err := s.files.Save(s.filename, text); err != nil {
		return err
	}
	s.dirty = false
	s.status = "Saved file: " + s.filename
	s.logger.Info("saved", "file", s.filename, "bytes", len(text))
	return nil
}

func (s *Session) runTransform(ctx context.Context, text string) {
	instruction := transform.Instruction(text)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.transformer.Transform(ctx, instruction, s.buf.Text())
	if err != nil {
		s.status = "Transform failed: " + err.Error()
		s.logger.Warn("transform failed", "instruction", instruction, "elapsed", time.Since(start), "err", err)
		return
	}
	s.status = out
	s.logger.Info("transform", "instruction", instruction, "elapsed", time.Since(start), "bytes", len(out))
}

func (s *Session) cutLine() {
	text := s.buf.CutLine()
	s.register, s.registerSet = text, true
	s.status = statusCut
	if s.clipboard != nil {
		if err := s.clipboard.WriteText(text); err != nil {
			s.logger.Debug("clipboard write failed", "err", err)
		}
	}
}

func (s *Session) pasteLine() {
	text, ok := s.register, s.registerSet
	if !ok && s.clipboard != nil {
		if clip, err := s.clipboard.ReadText(); err == nil && clip != "" {
			text, ok = strings.TrimSuffix(normalizeNewlines(clip), "\n"), true
		}
	}
	if !ok {
		s.status = statusNoPaste
		return
	}
	s.buf.PasteLine(text)
	s.status = statusPasted
}

func (s *Session) fail(err error) {
	if s.err == nil {
		s.err = err
	}
	s.mode = ModeTerminated
	s.status = "Error: " + err.Error()
	s.logger.Error("session terminated", "file", s.filename, "err", err)
}
