package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/logging"
	"github.com/colonyops/i18npeek/internal/core/scan"
	"github.com/colonyops/i18npeek/internal/core/styles"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type HoverCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	line       int
	col        int
	offset     int
	raw        bool
	jsonOutput bool
}

// NewHoverCmd creates a new hover command
func NewHoverCmd(flags *Flags, app *preview.App) *HoverCmd {
	return &HoverCmd{flags: flags, app: app}
}

// Register adds the hover command to the application
func (cmd *HoverCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "hover",
		Usage:     "Show the translation of the key call at a position",
		UsageText: "i18npeek hover (--line L --col C | --offset N) [--raw] [--json] [FILE]",
		Description: `Prints hover content for the key call covering the position. Lines and
columns are 1-based; --offset is a 0-based byte offset. Output is rendered
markdown unless --raw or --json is given. Exits 1 when no key call is there.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "line",
				Aliases:     []string{"l"},
				Usage:       "1-based line number",
				Destination: &cmd.line,
			},
			&cli.IntFlag{
				Name:        "col",
				Usage:       "1-based column (bytes)",
				Destination: &cmd.col,
			},
			&cli.IntFlag{
				Name:        "offset",
				Usage:       "0-based byte offset, instead of --line/--col",
				Value:       -1,
				Destination: &cmd.offset,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown source without rendering",
				Destination: &cmd.raw,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HoverCmd) run(ctx context.Context, c *cli.Command) error {
	text, name, err := readBuffer(c.Args().First())
	if err != nil {
		return err
	}

	offset, err := cmd.resolveOffset(text)
	if err != nil {
		return err
	}

	ctx = logging.WithBuffer(ctx, name)
	if err := activate(ctx, cmd.app); err != nil {
		return err
	}

	out := c.Root().Writer

	info, ok := cmd.app.Session.Hover(text, offset)
	if !ok {
		if cmd.jsonOutput {
			_ = iojson.WriteError(out, "no translation key at position", map[string]any{"offset": offset})
		} else {
			fmt.Fprintln(os.Stderr, "No translation key at position")
		}
		return cli.Exit("", 1)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, info)
	}

	md := info.Markdown()
	if cmd.raw || !isTTY(out) {
		_, _ = fmt.Fprintln(out, md)
		return nil
	}

	rendered, err := styles.RenderMarkdown(md, 80)
	if err != nil {
		_, _ = fmt.Fprintln(out, md)
		return nil
	}
	_, _ = fmt.Fprintln(out, rendered)
	return nil
}

func (cmd *HoverCmd) resolveOffset(text string) (int, error) {
	if cmd.offset >= 0 {
		return cmd.offset, nil
	}
	if cmd.line < 1 || cmd.col < 1 {
		return 0, errors.New("either --offset or both --line and --col (1-based) are required")
	}

	offset, ok := scan.Offset(text, scan.Position{Line: cmd.line - 1, Col: cmd.col - 1})
	if !ok {
		return 0, fmt.Errorf("line %d is past the end of the file", cmd.line)
	}
	return offset, nil
}
