package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/scan"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type ScanCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	jsonOutput bool
}

// NewScanCmd creates a new scan command
func NewScanCmd(flags *Flags, app *preview.App) *ScanCmd {
	return &ScanCmd{flags: flags, app: app}
}

// Register adds the scan command to the application
func (cmd *ScanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "scan",
		Usage:     "List translation key calls in a file",
		UsageText: "i18npeek scan [--json] [FILE]",
		Description: `Finds every __('key') and __("key") call in FILE (or stdin) and prints
its key and 1-based line and column.

Use --json for one JSON document per occurrence including byte offsets.`,
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

// occurrenceInfo is the JSON output format for scan --json.
type occurrenceInfo struct {
	Key   string `json:"key"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
}

func (cmd *ScanCmd) run(_ context.Context, c *cli.Command) error {
	text, _, err := readBuffer(c.Args().First())
	if err != nil {
		return err
	}

	occs := scan.Collect(text)
	infos := make([]occurrenceInfo, len(occs))
	for i, occ := range occs {
		pos := scan.PositionOf(text, occ.Start)
		infos[i] = occurrenceInfo{
			Key:   occ.Key,
			Start: occ.Start,
			End:   occ.End,
			Line:  pos.Line + 1,
			Col:   pos.Col + 1,
		}
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteLines(out, infos)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LINE\tCOL\tKEY")
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%d\t%d\t%s\n", info.Line, info.Col, info.Key)
	}
	return w.Flush()
}
