package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/logging"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/internal/tui"
	"github.com/colonyops/i18npeek/pkg/logutils"
	"github.com/colonyops/i18npeek/pkg/utils"
)

type TuiCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	noWatch bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *preview.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload when the file or dictionary changes on disk",
			Sources:     cli.EnvVars("I18NPEEK_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Preview a file interactively",
		UsageText: "i18npeek tui [--no-watch] FILE",
		Description: `Opens FILE with translation annotations, a list of the keys it uses,
and hover details for the selected call. Running i18npeek with only a FILE
argument does the same.`,
		Action: cmd.run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return errors.New("a FILE to preview is required; run 'i18npeek --help' for usage")
	}

	bufferPath, err := filepath.Abs(c.Args().First())
	if err != nil {
		return err
	}
	if info, err := os.Stat(bufferPath); err != nil {
		return err
	} else if info.IsDir() {
		return fmt.Errorf("%s is a directory", bufferPath)
	}

	ctx = logging.WithBuffer(ctx, bufferPath)

	// Console logs would corrupt the screen; hold them until exit.
	if cmd.flags.LogFile == "" {
		restore := cmd.deferLogs()
		defer restore()
	}

	opts := tui.Opts{BufferPath: bufferPath}

	err = cmd.app.Activate(ctx)
	switch {
	case err == nil:
	case errors.Is(err, preview.ErrSelectionRequired):
		cands, cerr := cmd.app.Session.Candidates(cmd.app.Root)
		if cerr != nil {
			return fmt.Errorf("discover dictionaries: %w", cerr)
		}
		opts.Candidates = cands
	case errors.Is(err, preview.ErrNoDictionaries):
		opts.Warnings = append(opts.Warnings, "No dictionary files found under "+cmd.app.Root)
	default:
		opts.Warnings = append(opts.Warnings, "Dictionary not loaded: "+err.Error())
	}

	deps := tui.Deps{App: cmd.app}
	if cmd.app.Config.WatchEnabled() && !cmd.noWatch {
		watcher, err := tui.NewFileWatcher(cmd.app.Config.TUI.Debounce)
		if err != nil {
			log.Warn().Ctx(ctx).Err(err).Msg("file watching disabled")
		} else {
			defer func() { _ = watcher.Close() }()
			deps.Watcher = watcher
		}
	}

	m := tui.New(deps, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

// deferLogs buffers console logging while the TUI owns the terminal. The
// returned func restores the previous loggers and prints what was held.
func (cmd *TuiCmd) deferLogs() func() {
	var (
		held    = &utils.DeferredWriter{}
		global  = log.Logger
		session = logging.Component("preview")
		color   = logutils.IsTerminal(os.Stderr)
	)

	log.Logger = log.Logger.Output(logutils.ConsoleWriter(held, color))
	cmd.app.Session.SetLogger(logging.Component("preview"))

	return func() {
		log.Logger = global
		cmd.app.Session.SetLogger(session)
		_ = held.Flush(os.Stderr)
	}
}
