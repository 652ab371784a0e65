package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/nomad/buffer"
)

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Quit, Save, Open, Transform key.Binding

	Left, Right, Up, Down key.Binding
	WordLeft, WordRight   key.Binding
	Home, End             key.Binding
	DocStart, DocEnd      key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding

	CutLine, PasteLine key.Binding

	// Cancel only applies while a prompt is open.
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Open:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Transform: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "llm")),

		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		// Portable word movement: terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),

		Home: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		DocStart: key.NewBinding(key.WithKeys("ctrl+a", "ctrl+home"), key.WithHelp("ctrl+a", "start")),
		DocEnd:   key.NewBinding(key.WithKeys("ctrl+g", "ctrl+end"), key.WithHelp("ctrl+g", "end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		CutLine:   key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "cut line")),
		PasteLine: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "paste line")),

		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp is the legend shown under the status line.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Quit, km.Save, km.Open, km.Transform, km.CutLine, km.PasteLine}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		km.ShortHelp(),
		{km.Left, km.Right, km.Up, km.Down, km.WordLeft, km.WordRight},
		{km.Home, km.End, km.DocStart, km.DocEnd},
		{km.Backspace, km.Delete, km.Enter},
	}
}

// PromptHelp is the legend shown while a prompt is open.
func (km KeyMap) PromptHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(km.Enter.Keys()...), key.WithHelp(km.Enter.Help().Key, "accept")),
		km.Cancel,
	}
}

// Command translates a key press into a session command for the given mode.
// Keys without a meaning in that mode yield CmdNone.
func (km KeyMap) Command(msg tea.KeyMsg, mode Mode) Command {
	if mode == ModeTerminated {
		return Command{}
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	// Terminals send pasted line breaks as CR.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		text := normalizeNewlines(string(msg.Runes))
		if mode == ModePrompt {
			return PromptInput(strings.ReplaceAll(text, "\n", " "))
		}
		return Insert(text)
	}

	if key.Matches(msg, km.Quit) {
		return Command{Kind: CmdQuit}
	}
	if mode == ModePrompt {
		return km.promptCommand(msg)
	}

	switch {
	case key.Matches(msg, km.Save):
		return Command{Kind: CmdSave}
	case key.Matches(msg, km.Open):
		return Command{Kind: CmdOpenPrompt}
	case key.Matches(msg, km.Transform):
		return Command{Kind: CmdTransformPrompt}

	case key.Matches(msg, km.Left):
		return MoveBy(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		return MoveBy(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		return MoveBy(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		return MoveBy(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})
	case key.Matches(msg, km.WordLeft):
		return MoveBy(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		return MoveBy(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})
	case key.Matches(msg, km.Home):
		return MoveBy(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		return MoveBy(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocStart):
		return MoveBy(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		return MoveBy(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Backspace):
		return Command{Kind: CmdBackspace}
	case key.Matches(msg, km.Delete):
		return Command{Kind: CmdDelete}
	case key.Matches(msg, km.Enter):
		return Command{Kind: CmdNewline}

	case key.Matches(msg, km.CutLine):
		return Command{Kind: CmdCutLine}
	case key.Matches(msg, km.PasteLine):
		return Command{Kind: CmdPasteLine}
	}

	switch msg.Type {
	case tea.KeyTab:
		return Insert("\t")
	case tea.KeySpace:
		return Insert(" ")
	case tea.KeyRunes:
		if len(msg.Runes) > 0 && !msg.Alt {
			return Insert(string(msg.Runes))
		}
	}
	return Command{}
}

func (km KeyMap) promptCommand(msg tea.KeyMsg) Command {
	switch {
	case key.Matches(msg, km.Enter):
		return Command{Kind: CmdPromptCommit}
	case key.Matches(msg, km.Cancel):
		return Command{Kind: CmdPromptCancel}
	case key.Matches(msg, km.Backspace):
		return Command{Kind: CmdPromptBackspace}
	}

	switch msg.Type {
	case tea.KeySpace:
		return PromptInput(" ")
	case tea.KeyRunes:
		if len(msg.Runes) > 0 && !msg.Alt {
			return PromptInput(string(msg.Runes))
		}
	}
	return Command{}
}

// normalizeNewlines turns CRLF and lone CR line breaks into LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
