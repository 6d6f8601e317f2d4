package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/scan"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type NextCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	key        string
	line       int
	col        int
	offset     int
	jsonOutput bool
}

// NewNextCmd creates a new next command
func NewNextCmd(flags *Flags, app *preview.App) *NextCmd {
	return &NextCmd{flags: flags, app: app}
}

// Register adds the next command to the application
func (cmd *NextCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "next",
		Usage:     "Find the next call of a translation key",
		UsageText: "i18npeek next [--key KEY] [--line L --col C | --offset N] [--json] [FILE]",
		Description: `Prints the position of the next call of KEY after the given position,
wrapping to the top of the file. Without --key the key under the position
is used. Without a position the search starts at the top of the file.`,
		ShellComplete: DictionaryKeyCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "key",
				Aliases:     []string{"k"},
				Usage:       "translation key to find",
				Destination: &cmd.key,
			},
			&cli.IntFlag{
				Name:        "line",
				Aliases:     []string{"l"},
				Usage:       "1-based line to search after",
				Destination: &cmd.line,
			},
			&cli.IntFlag{
				Name:        "col",
				Usage:       "1-based column to search after",
				Destination: &cmd.col,
			},
			&cli.IntFlag{
				Name:        "offset",
				Usage:       "0-based byte offset to search after",
				Value:       -1,
				Destination: &cmd.offset,
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

func (cmd *NextCmd) run(_ context.Context, c *cli.Command) error {
	text, _, err := readBuffer(c.Args().First())
	if err != nil {
		return err
	}

	after, err := cmd.resolveAfter(text)
	if err != nil {
		return err
	}

	key := cmd.key
	if key == "" {
		occ, ok := scan.At(text, after)
		if !ok {
			return errors.New("--key is required when no key call is at the position")
		}
		key = occ.Key
		after = occ.Start
	}

	out := c.Root().Writer

	occ, ok := cmd.app.Session.NextOccurrence(text, key, after)
	if !ok {
		if cmd.jsonOutput {
			_ = iojson.WriteError(out, "key not used in file", map[string]any{"key": key})
		} else {
			fmt.Fprintf(os.Stderr, "No call of %q in file\n", key)
		}
		return cli.Exit("", 1)
	}

	pos := scan.PositionOf(text, occ.Start)
	info := occurrenceInfo{
		Key:   occ.Key,
		Start: occ.Start,
		End:   occ.End,
		Line:  pos.Line + 1,
		Col:   pos.Col + 1,
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, info)
	}

	_, _ = fmt.Fprintf(out, "%d:%d\n", info.Line, info.Col)
	return nil
}

// resolveAfter returns the byte offset to search after; -1 means the top
// of the file.
func (cmd *NextCmd) resolveAfter(text string) (int, error) {
	switch {
	case cmd.offset >= 0:
		return cmd.offset, nil
	case cmd.line == 0 && cmd.col == 0:
		return -1, nil
	case cmd.line < 1:
		return 0, errors.New("--line is 1-based")
	}

	col := max(cmd.col, 1)
	offset, ok := scan.Offset(text, scan.Position{Line: cmd.line - 1, Col: col - 1})
	if !ok {
		return 0, fmt.Errorf("line %d is past the end of the file", cmd.line)
	}
	return offset, nil
}
