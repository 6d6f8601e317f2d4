package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type LookupCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	jsonOutput bool
	strict     bool
	all        bool
}

// NewLookupCmd creates a new lookup command
func NewLookupCmd(flags *Flags, app *preview.App) *LookupCmd {
	return &LookupCmd{flags: flags, app: app}
}

// Register adds the lookup command to the application
func (cmd *LookupCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "lookup",
		Usage:         "Translate keys with the active dictionary",
		UsageText:     "i18npeek lookup [--json] [--strict] KEY...\n   i18npeek lookup --all [--json]",
		Description:   "Resolves each KEY against the active dictionary. Missing keys print the configured placeholder.\n\n--all lists every entry of the active dictionary.",
		ShellComplete: DictionaryKeyCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "exit 1 when any key is missing",
				Destination: &cmd.strict,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "list every dictionary entry",
				Destination: &cmd.all,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LookupCmd) run(ctx context.Context, c *cli.Command) error {
	keys := c.Args().Slice()
	if len(keys) == 0 && !cmd.all {
		return errors.New("at least one KEY is required")
	}

	if err := activate(ctx, cmd.app); err != nil {
		return err
	}

	if cmd.all {
		return cmd.listEntries(c)
	}

	translations := make([]dictionary.Translation, 0, len(keys))
	for _, key := range keys {
		tr, err := cmd.app.Session.Lookup(key)
		if err != nil {
			return err
		}
		translations = append(translations, tr)
	}

	out := c.Root().Writer
	missing := 0

	if cmd.jsonOutput {
		if err := iojson.WriteLines(out, translations); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, tr := range translations {
			text := tr.Text
			if !tr.Found {
				text = cmd.app.Config.Missing.Hover
			}
			_, _ = fmt.Fprintf(w, "%s\t%q\n", tr.Key, text)
		}
		_ = w.Flush()
	}

	for _, tr := range translations {
		if !tr.Found {
			missing++
		}
	}

	if missing > 0 && cmd.strict {
		fmt.Fprintf(os.Stderr, "%d of %d key(s) missing in %s\n", missing, len(keys), cmd.app.Session.Status().Locale)
		return cli.Exit("", 1)
	}
	return nil
}

// listEntries prints every entry of the active dictionary, sorted by key.
func (cmd *LookupCmd) listEntries(c *cli.Command) error {
	snap, ok := cmd.app.Session.Store().Snapshot()
	if !ok {
		return dictionary.ErrNoDictionaryLoaded
	}

	entries := snap.Dictionary.Entries()
	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteLines(out, entries)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%q\n", e.Key, e.Translation)
	}
	return w.Flush()
}
