// Command nomad is a terminal note editor with an LLM transform command.
//
// Usage:
//
//	nomad [flags] [file]
//
// Without a file argument a startup menu offers to create, load or exit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/iw2rmb/nomad"
	"github.com/iw2rmb/nomad/editor"
	"github.com/iw2rmb/nomad/internal/config"
	"github.com/iw2rmb/nomad/internal/logging"
	"github.com/iw2rmb/nomad/menu"
	"github.com/iw2rmb/nomad/transform"
)

const goodbye = "Thank you for using Nomad. Goodbye!"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nomad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: nomad [flags] [file]\n\nflags:\n")
		fs.PrintDefaults()
	}

	defaultPath, _ := config.DefaultPath()
	var (
		configPath  = fs.String("config", defaultPath, "settings file (JSON)")
		logFile     = fs.String("log", "", "write logs to this file")
		logLevel    = fs.String("log-level", "", "debug, info, warn or error")
		provider    = fs.String("provider", "", "transform backend: echo, openai, anthropic or ollama")
		model       = fs.String("model", "", "model name for the transform backend")
		timeout     = fs.Duration("timeout", 0, "transform timeout")
		lineNumbers = fs.Bool("line-numbers", false, "show line numbers")
		showVersion = fs.Bool("version", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, nomad.Banner())
		return 0
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "nomad:", err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log":
			cfg.LogFile = *logFile
		case "log-level":
			cfg.LogLevel = *logLevel
		case "provider":
			cfg.Provider = *provider
		case "model":
			cfg.Model = *model
		case "timeout":
			cfg.Timeout = config.Duration(*timeout)
		case "line-numbers":
			cfg.ShowLineNumbers = *lineNumbers
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "nomad:", err)
		return 1
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "nomad:", err)
		return 1
	}
	defer closer.Close()

	tr, err := transform.New(transform.Options{
		Provider:     cfg.Provider,
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		SystemPrompt: cfg.SystemPrompt,
	})
	if err != nil {
		fmt.Fprintln(stderr, "nomad:", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:    editorConfig(cfg, tr, logger),
		logger: logger,
	}
	logger.Info("start", "version", nomad.Version(), "provider", cfg.Provider, "config", *configPath)

	if fs.NArg() == 1 {
		_, err = a.edit(ctx, fs.Arg(0), false)
	} else {
		err = a.menuLoop(ctx, stdout)
	}
	if err != nil {
		logger.Error("exit", "err", err)
		fmt.Fprintln(stderr, "nomad:", err)
		return 1
	}
	return 0
}

func editorConfig(cfg config.Config, tr transform.Transformer, logger *log.Logger) editor.Config {
	ec := editor.Config{
		Title:            nomad.Banner(),
		ShowLineNums:     cfg.ShowLineNumbers,
		TabWidth:         cfg.TabWidth,
		Style:            editor.DefaultStyle(),
		Files:            editor.OSFiles{},
		Transformer:      tr,
		TransformTimeout: cfg.Timeout.Std(),
		Logger:           logger,
		OnChange: func(ev editor.ChangeEvent) {
			logger.Debug("change", "version", ev.Version, "row", ev.Cursor.Row, "col", ev.Cursor.Col, "dirty", ev.Dirty)
		},
	}
	if editor.SystemClipboardAvailable() {
		ec.Clipboard = editor.SystemClipboard{}
	}
	return ec
}

type app struct {
	cfg    editor.Config
	logger *log.Logger
}

// menuLoop shows the menu until the user exits. Each editing session returns
// here; its last status message becomes the menu notice.
func (a *app) menuLoop(ctx context.Context, stdout io.Writer) error {
	notice := ""
	for {
		p := tea.NewProgram(menu.New("Welcome to Nomad! ("+nomad.VersionTag()+")", notice),
			tea.WithAltScreen(), tea.WithContext(ctx))
		final, err := p.Run()
		if err != nil {
			return err
		}

		m, ok := final.(menu.Model)
		if !ok {
			return fmt.Errorf("menu: unexpected model %T", final)
		}
		choice, name := m.Result()
		a.logger.Debug("menu", "choice", choice, "file", name)

		switch choice {
		case menu.ChoiceEdit:
			notice, err = a.edit(ctx, "", false)
		case menu.ChoiceLoad:
			notice, err = a.edit(ctx, name, true)
		default:
			fmt.Fprintln(stdout, goodbye)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// edit runs one editing session on name ("" = unnamed). With strict set a
// missing file is an error; otherwise the name is adopted for a new file.
// It returns the session's last status message.
func (a *app) edit(ctx context.Context, name string, strict bool) (string, error) {
	sess := editor.NewSession(a.cfg)
	if name != "" {
		open := sess.Open
		if strict {
			open = sess.Load
		}
		if err := open(name); err != nil {
			return "", err
		}
	}

	start := time.Now()
	m := editor.NewWithSession(a.cfg, sess).WithContext(ctx)
	p := tea.NewProgram(program{editor: m}, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return "", err
	}
	a.logger.Info("session closed", "file", sess.Filename(), "dirty", sess.Dirty(), "elapsed", time.Since(start))

	if err := sess.Err(); err != nil {
		return "", err
	}
	return sess.Status(), nil
}

// program adapts editor.Model to tea.Model.
type program struct {
	editor editor.Model
}

func (p program) Init() tea.Cmd { return p.editor.Init() }

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return p, cmd
}

func (p program) View() string { return p.editor.View() }
