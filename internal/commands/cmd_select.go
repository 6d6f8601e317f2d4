package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/discover"
	"github.com/colonyops/i18npeek/internal/core/styles"
	"github.com/colonyops/i18npeek/internal/preview"
)

type SelectCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	forget bool
	list   bool
	locale string
}

// NewSelectCmd creates a new select command
func NewSelectCmd(flags *Flags, app *preview.App) *SelectCmd {
	return &SelectCmd{flags: flags, app: app}
}

// Register adds the select command to the application
func (cmd *SelectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "select",
		Usage:     "Choose the dictionary for the workspace",
		UsageText: "i18npeek select [--locale LOCALE] [PATH]\n   i18npeek select --forget\n   i18npeek select --list",
		Description: `Loads PATH, or a dictionary picked from the discovered files, and
remembers it for --root. Later invocations load it automatically.

--forget drops the remembered selection. --list prints the selections
remembered for every workspace.`,
		ShellComplete: DictionaryPathCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "forget",
				Usage:       "forget the remembered selection",
				Destination: &cmd.forget,
			},
			&cli.BoolFlag{
				Name:        "list",
				Usage:       "list remembered selections for all workspaces",
				Destination: &cmd.list,
			},
			&cli.StringFlag{
				Name:        "locale",
				Usage:       "locale to record instead of the one derived from the file name",
				Destination: &cmd.locale,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SelectCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.list {
		return cmd.listSelections(ctx, c)
	}

	if cmd.forget {
		if err := cmd.app.State.Forget(ctx, cmd.app.Root); err != nil {
			return fmt.Errorf("forget selection: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Forgot dictionary selection for %s\n", cmd.app.Root)
		return nil
	}

	cand, err := cmd.candidate(c.Args().First())
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	if cmd.locale != "" {
		cand.Locale = cmd.locale
	}

	if err := cmd.app.Session.Select(ctx, cmd.app.Root, cand, cmd.app.State); err != nil {
		return err
	}

	st := cmd.app.Session.Status()
	_, _ = fmt.Fprintf(c.Root().Writer, "%s %s (%d entries)\n",
		styles.PassStyle.Render(styles.IconCheck), st.Source, st.Entries)
	fmt.Fprintln(os.Stderr, st.String())
	return nil
}

// candidate resolves the dictionary to select from the PATH argument, or
// asks when several files are discovered.
func (cmd *SelectCmd) candidate(arg string) (discover.Candidate, error) {
	if arg != "" {
		path, err := filepath.Abs(arg)
		if err != nil {
			return discover.Candidate{}, err
		}
		locale, _ := discover.LocaleOf(path, cmd.app.Config.Dictionaries.LocaleHeuristic)
		return discover.Candidate{Path: path, Locale: locale}, nil
	}

	cands, err := cmd.app.Session.Candidates(cmd.app.Root)
	if err != nil {
		return discover.Candidate{}, fmt.Errorf("discover dictionaries: %w", err)
	}

	switch len(cands) {
	case 0:
		return discover.Candidate{}, preview.ErrNoDictionaries
	case 1:
		return cands[0], nil
	}

	return pickCandidate(cands)
}

func (cmd *SelectCmd) listSelections(ctx context.Context, c *cli.Command) error {
	sels, err := cmd.app.State.List(ctx)
	if err != nil {
		return fmt.Errorf("list selections: %w", err)
	}

	out := c.Root().Writer
	if len(sels) == 0 {
		_, _ = fmt.Fprintln(out, "No remembered selections")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ROOT\tLOCALE\tPATH\tSELECTED")
	for _, sel := range sels {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sel.Root, sel.Locale, sel.Path, sel.SelectedAt.Format(time.DateTime))
	}
	return w.Flush()
}

func pickCandidate(cands []discover.Candidate) (discover.Candidate, error) {
	options := make([]huh.Option[string], len(cands))
	for i, cand := range cands {
		options[i] = huh.NewOption(cand.Label, cand.Path)
	}

	var path string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select dictionary").
				Description("Remembered for this workspace").
				Options(options...).
				Value(&path),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return discover.Candidate{}, err
	}

	cand, _ := discover.ByPath(cands, path)
	return cand, nil
}
