package editor

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/iw2rmb/nomad/internal/logging"
	"github.com/iw2rmb/nomad/transform"
)

// Config configures a Session and the Model that drives it.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Filename adopted at start. It is not loaded; use Session.Open for that.
	Filename string

	// Rendering options.
	Title        string
	ShowLineNums bool
	TabWidth     int // default: 4
	Style        Style
	KeyMap       KeyMap // default: DefaultKeyMap()

	// Collaborators. Files defaults to OSFiles and Transformer to
	// transform.Echo. A nil Clipboard keeps cuts inside the session.
	Files            Files
	Transformer      transform.Transformer
	TransformTimeout time.Duration // 0 = no bound
	Clipboard        Clipboard

	// Logger defaults to a discarding logger.
	Logger *log.Logger

	// OnChange is called after an Update that changed the buffer version.
	OnChange func(ChangeEvent)
}

func (c Config) withDefaults() Config {
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if len(c.KeyMap.Quit.Keys()) == 0 {
		c.KeyMap = DefaultKeyMap()
	}
	if c.Files == nil {
		c.Files = OSFiles{}
	}
	if c.Transformer == nil {
		c.Transformer = transform.Echo{}
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	return c
}
