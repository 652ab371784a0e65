package editor

import "github.com/iw2rmb/nomad/buffer"

// CommandKind tags a Command.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdQuit
	CmdSave
	CmdOpenPrompt
	CmdTransformPrompt

	CmdInsert // Text
	CmdNewline
	CmdBackspace
	CmdDelete
	CmdMove // Move
	CmdCutLine
	CmdPasteLine

	CmdPromptInput // Text
	CmdPromptBackspace
	CmdPromptCommit
	CmdPromptCancel
)

var commandNames = [...]string{
	CmdNone:            "none",
	CmdQuit:            "quit",
	CmdSave:            "save",
	CmdOpenPrompt:      "open-prompt",
	CmdTransformPrompt: "transform-prompt",
	CmdInsert:          "insert",
	CmdNewline:         "newline",
	CmdBackspace:       "backspace",
	CmdDelete:          "delete",
	CmdMove:            "move",
	CmdCutLine:         "cut-line",
	CmdPasteLine:       "paste-line",
	CmdPromptInput:     "prompt-input",
	CmdPromptBackspace: "prompt-backspace",
	CmdPromptCommit:    "prompt-commit",
	CmdPromptCancel:    "prompt-cancel",
}

func (k CommandKind) String() string {
	if k < 0 || int(k) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[k]
}

// Command is one unit of input for Session.Apply. Text is used by CmdInsert
// and CmdPromptInput, Move by CmdMove.
type Command struct {
	Kind CommandKind
	Text string
	Move buffer.Move
}

func Insert(text string) Command      { return Command{Kind: CmdInsert, Text: text} }
func PromptInput(text string) Command { return Command{Kind: CmdPromptInput, Text: text} }
func MoveBy(m buffer.Move) Command    { return Command{Kind: CmdMove, Move: m} }

// edits reports whether the command may change buffer text.
func (c Command) edits() bool {
	switch c.Kind {
	case CmdInsert, CmdNewline, CmdBackspace, CmdDelete, CmdCutLine, CmdPasteLine:
		return true
	default:
		return false
	}
}
