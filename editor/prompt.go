package editor

import "github.com/iw2rmb/nomad/internal/grapheme"

// PromptKind selects what committing a modal prompt does.
type PromptKind int

const (
	PromptFilename PromptKind = iota
	PromptInstruction
)

func (k PromptKind) Label() string {
	switch k {
	case PromptFilename:
		return "Enter filename: "
	case PromptInstruction:
		return "Enter instruction: "
	default:
		return "> "
	}
}

// prompt is the scratch state of the modal text entry.
type prompt struct {
	kind    PromptKind
	scratch string
}

func (p *prompt) reset(kind PromptKind) {
	p.kind = kind
	p.scratch = ""
}

func (p *prompt) input(s string) { p.scratch += s }

func (p *prompt) backspace() { p.scratch = grapheme.DropLast(p.scratch) }
