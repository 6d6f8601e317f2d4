package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/commands"
	"github.com/colonyops/i18npeek/internal/core/config"
	"github.com/colonyops/i18npeek/internal/core/logging"
	"github.com/colonyops/i18npeek/internal/core/styles"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/internal/store/jsonfile"
	"github.com/colonyops/i18npeek/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser  func()
		previewApp = &preview.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "i18npeek",
		Usage:     "Preview translations of __('key') calls",
		UsageText: "i18npeek [global options] [FILE | command [command options]]",
		Description: `i18npeek shows what the __('key') calls in a source file translate to,
using a JavaScript dictionary file (export default { ... }) found in your
workspace.

Run 'i18npeek FILE' to open the interactive previewer.
Run 'i18npeek annotate FILE' to print the file with translations inline.
Run 'i18npeek select' to choose the dictionary when several exist.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("I18NPEEK_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("I18NPEEK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("I18NPEEK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("I18NPEEK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "root",
				Usage:       "workspace root searched for dictionaries",
				Sources:     cli.EnvVars("I18NPEEK_ROOT"),
				Value:       ".",
				Destination: &flags.Root,
			},
			&cli.StringFlag{
				Name:        "dict",
				Aliases:     []string{"d"},
				Usage:       "dictionary file to use instead of the remembered one",
				Sources:     cli.EnvVars("I18NPEEK_DICT"),
				Destination: &flags.Dict,
			},
			&cli.StringFlag{
				Name:        "locale",
				Usage:       "locale to report instead of the one derived from the dictionary file name",
				Sources:     cli.EnvVars("I18NPEEK_LOCALE"),
				Destination: &flags.Locale,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme; unknown names are reported by
			// 'config validate' and fall back to the default.
			if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
				styles.SetTheme(palette)
			}

			state := jsonfile.NewSelectionStore(cfg.StateFile())

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*previewApp = *preview.NewApp(cfg, state, flags.Root, logging.Component("preview"))
			previewApp.DictOverride = flags.Dict
			previewApp.LocaleOverride = flags.Locale

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, previewApp)

	app = commands.NewScanCmd(flags, previewApp).Register(app)
	app = commands.NewAnnotateCmd(flags, previewApp).Register(app)
	app = commands.NewHoverCmd(flags, previewApp).Register(app)
	app = commands.NewLookupCmd(flags, previewApp).Register(app)
	app = commands.NewKeysCmd(flags, previewApp).Register(app)
	app = commands.NewNextCmd(flags, previewApp).Register(app)
	app = commands.NewDictsCmd(flags, previewApp).Register(app)
	app = commands.NewSelectCmd(flags, previewApp).Register(app)
	app = commands.NewDoctorCmd(flags, previewApp).Register(app)
	app = commands.NewConfigValidateCmd(flags, previewApp).Register(app)
	app = tuiCmd.Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Open the TUI when a FILE is given without a subcommand
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() == 0 {
			return cli.ShowRootCommandHelp(c)
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
