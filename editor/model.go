package editor

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is a Bubble Tea component that drives a Session and repaints the
// whole frame (title, buffer, status, legend) after every event.
type Model struct {
	cfg  Config
	sess *Session
	ctx  context.Context

	viewport viewport.Model
	help     help.Model

	width, height int
	xOffset       int
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	return NewWithSession(cfg, NewSession(cfg))
}

// NewWithSession wraps an existing session, e.g. one that already opened a
// file.
func NewWithSession(cfg Config, s *Session) Model {
	cfg = cfg.withDefaults()
	m := Model{
		cfg:      cfg,
		sess:     s,
		ctx:      context.Background(),
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
	m.rebuildContent()
	return m
}

// WithContext sets the context passed to blocking session work (the
// transform call).
func (m Model) WithContext(ctx context.Context) Model {
	m.ctx = ctx
	return m
}

func (m Model) Session() *Session { return m.sess }

// Err returns the I/O error that ended the session, if any.
func (m Model) Err() error { return m.sess.Err() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height
	m.help.Width = width

	m.viewport.Width = width
	m.viewport.Height = maxInt(height-chrome, 0)
	if height > 0 && m.viewport.Height == 0 {
		m.viewport.Height = 1
	}

	m.followCursor()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		before := m.sess.Buffer().Version()
		if cmd := m.cfg.KeyMap.Command(msg, m.sess.Mode()); cmd.Kind != CmdNone {
			// A returned error is kept by the session and surfaces via Err.
			_ = m.sess.Apply(m.ctx, cmd)
		}
		if m.cfg.OnChange != nil && m.sess.Buffer().Version() != before {
			m.cfg.OnChange(buildChangeEvent(m.sess))
		}
		m.followCursor()
		if m.sess.Mode() == ModeTerminated {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

// View repaints everything from the session state.
func (m Model) View() string {
	m.rebuildContent()
	return m.frame()
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// followCursor scrolls the content area so the cursor cell is visible.
func (m *Model) followCursor() {
	buf := m.sess.Buffer()
	cur := buf.Cursor()

	if w := m.contentWidth(); w > 0 {
		cell := cursorCell(buf.LineGraphemes(cur.Row), cur.Col, m.cfg.TabWidth)
		if cell < m.xOffset {
			m.xOffset = cell
		} else if cell >= m.xOffset+w {
			m.xOffset = cell - w + 1
		}
	} else {
		m.xOffset = 0
	}

	m.rebuildContent()

	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
