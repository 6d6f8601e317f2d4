package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/discover"
	"github.com/colonyops/i18npeek/internal/core/selection"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type DictsCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	jsonOutput bool
}

// NewDictsCmd creates a new dicts command
func NewDictsCmd(flags *Flags, app *preview.App) *DictsCmd {
	return &DictsCmd{flags: flags, app: app}
}

// Register adds the dicts command to the application
func (cmd *DictsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dicts",
		Usage:     "List dictionary files found in the workspace",
		UsageText: "i18npeek dicts [--json]",
		Description: `Discovers dictionary files under --root using the configured patterns.
The remembered selection for the workspace is marked with *.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// dictInfo is the JSON output format for dicts --json.
type dictInfo struct {
	discover.Candidate
	Selected bool `json:"selected"`
}

func (cmd *DictsCmd) run(ctx context.Context, c *cli.Command) error {
	cands, err := cmd.app.Session.Candidates(cmd.app.Root)
	if err != nil {
		return fmt.Errorf("discover dictionaries: %w", err)
	}

	remembered := ""
	sel, err := cmd.app.State.Get(ctx, cmd.app.Root)
	switch {
	case err == nil:
		remembered = sel.Path
	case errors.Is(err, selection.ErrNotFound):
	default:
		log.Warn().Err(err).Msg("read remembered selection")
	}

	infos := make([]dictInfo, len(cands))
	for i, cand := range cands {
		infos[i] = dictInfo{Candidate: cand, Selected: cand.Path == remembered}
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteLines(out, infos)
	}

	if len(infos) == 0 {
		_, _ = fmt.Fprintf(out, "No dictionary files found under %s\n", cmd.app.Root)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, " \tLOCALE\tPATH")
	for _, info := range infos {
		mark := " "
		if info.Selected {
			mark = "*"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", mark, info.Locale, info.Path)
	}
	return w.Flush()
}
