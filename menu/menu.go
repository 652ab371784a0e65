// Package menu is the startup menu shown when nomad runs without a file
// argument.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Choice is what the user picked.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceEdit
	ChoiceLoad
	ChoiceExit
)

func (c Choice) String() string {
	switch c {
	case ChoiceEdit:
		return "edit"
	case ChoiceLoad:
		return "load"
	case ChoiceExit:
		return "exit"
	default:
		return "none"
	}
}

var items = []struct {
	label  string
	choice Choice
}{
	{"Create/Edit a note", ChoiceEdit},
	{"Load a note", ChoiceLoad},
	{"Exit", ChoiceExit},
}

const (
	noticeInvalid = "Invalid option. Please choose 1, 2, or 3."
	noticeNoName  = "No filename entered"
)

type KeyMap struct {
	Up, Down, Select, Back, Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "exit")),
	}
}

func (km KeyMap) ShortHelp() []key.Binding { return []key.Binding{km.Up, km.Down, km.Select, km.Quit} }

func (km KeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{km.ShortHelp(), {km.Back}} }

type Style struct {
	Header   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Notice   lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Item:     lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("14")).Bold(true),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Model is a Bubble Tea model that quits as soon as a choice is made. Result
// returns the choice and, for ChoiceLoad, the filename.
type Model struct {
	title  string
	notice string
	keys   KeyMap
	style  Style
	help   help.Model

	cursor    int
	prompting bool
	input     textinput.Model

	choice   Choice
	filename string
}

// New builds a menu. notice is shown under the items, e.g. the outcome of
// the last editing session.
func New(title, notice string) Model {
	ti := textinput.New()
	ti.Prompt = "Enter the filename to load: "
	ti.Placeholder = "notes.txt"
	ti.CharLimit = 4096

	return Model{
		title:  title,
		notice: notice,
		keys:   DefaultKeyMap(),
		style:  DefaultStyle(),
		help:   help.New(),
		input:  ti,
	}
}

func (m Model) Result() (Choice, string) { return m.choice, m.filename }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		if w := msg.Width - len(m.input.Prompt) - 1; w > 0 {
			m.input.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m.choose(ChoiceExit)
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateList(msg)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		return m.pick(items[m.cursor].choice)
	case key.Matches(msg, m.keys.Back):
		return m.choose(ChoiceExit)
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if n := int(msg.Runes[0] - '1'); n >= 0 && n < len(items) {
			m.cursor = n
			return m.pick(items[n].choice)
		}
	}
	m.notice = noticeInvalid
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.prompting = false
			m.input.Blur()
			m.notice = noticeNoName
			return m, nil
		}
		m.filename = name
		return m.choose(ChoiceLoad)
	case key.Matches(msg, m.keys.Back):
		m.prompting = false
		m.input.Blur()
		m.input.Reset()
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) pick(c Choice) (tea.Model, tea.Cmd) {
	if c != ChoiceLoad {
		return m.choose(c)
	}
	m.prompting = true
	m.notice = ""
	m.input.Reset()
	return m, m.input.Focus()
}

func (m Model) choose(c Choice) (tea.Model, tea.Cmd) {
	m.choice = c
	m.input.Blur()
	return m, tea.Quit
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.style.Header.Render(m.title))
	b.WriteString("\n\n")
	for i, it := range items {
		line := fmt.Sprintf("%d. %s", i+1, it.label)
		if i == m.cursor {
			b.WriteString(m.style.Selected.Render(line))
		} else {
			b.WriteString(m.style.Item.Render(line))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if m.prompting {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Select, m.keys.Back}))
		return b.String()
	}

	b.WriteString("Choose an option (1, 2, or 3)")
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.style.Notice.Render(m.notice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
