package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/sahilm/fuzzy"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/logging"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type KeysCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	search      string
	missingOnly bool
	jsonOutput  bool
}

// NewKeysCmd creates a new keys command
func NewKeysCmd(flags *Flags, app *preview.App) *KeysCmd {
	return &KeysCmd{flags: flags, app: app}
}

// Register adds the keys command to the application
func (cmd *KeysCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "keys",
		Usage:     "List distinct translation keys used in a file",
		UsageText: "i18npeek keys [--search QUERY] [--missing] [--json] [FILE]",
		Description: `Lists each key called in FILE (or stdin) once, with its use count and
translation in the active dictionary.

--search fuzzy-filters keys and orders them by match quality.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "fuzzy filter keys",
				Destination: &cmd.search,
			},
			&cli.BoolFlag{
				Name:        "missing",
				Usage:       "only keys without a translation",
				Destination: &cmd.missingOnly,
			},
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

func (cmd *KeysCmd) run(ctx context.Context, c *cli.Command) error {
	text, name, err := readBuffer(c.Args().First())
	if err != nil {
		return err
	}

	ctx = logging.WithBuffer(ctx, name)
	if err := activate(ctx, cmd.app); err != nil {
		return err
	}

	entries := cmd.app.Session.KeysInBuffer(text)
	if cmd.missingOnly {
		entries = missingEntries(entries)
	}
	if cmd.search != "" {
		entries = filterEntries(entries, cmd.search)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteLines(out, entries)
	}

	loaded := cmd.app.Session.Status().Loaded
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tUSES\tTRANSLATION")
	for _, e := range entries {
		text := e.Translation
		switch {
		case !loaded:
			text = "-"
		case !e.Found:
			text = cmd.app.Config.Missing.Hover
		default:
			text = fmt.Sprintf("%q", text)
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", e.Key, e.Count, text)
	}
	return w.Flush()
}

func missingEntries(entries []preview.KeyEntry) []preview.KeyEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if !e.Found {
			out = append(out, e)
		}
	}
	return out
}

// keySource adapts entries for fuzzy matching on the key.
type keySource []preview.KeyEntry

func (s keySource) String(i int) string { return s[i].Key }
func (s keySource) Len() int            { return len(s) }

// filterEntries keeps entries whose key fuzzy-matches query, best first.
func filterEntries(entries []preview.KeyEntry, query string) []preview.KeyEntry {
	matches := fuzzy.FindFrom(query, keySource(entries))
	out := make([]preview.KeyEntry, len(matches))
	for i, m := range matches {
		out[i] = entries[m.Index]
	}
	return out
}
