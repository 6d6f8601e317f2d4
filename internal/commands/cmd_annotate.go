package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/annotate"
	"github.com/colonyops/i18npeek/internal/core/logging"
	"github.com/colonyops/i18npeek/internal/core/styles"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type AnnotateCmd struct {
	flags *Flags
	app   *preview.App

	// flags
	mode       string
	jsonOutput bool
}

// NewAnnotateCmd creates a new annotate command
func NewAnnotateCmd(flags *Flags, app *preview.App) *AnnotateCmd {
	return &AnnotateCmd{flags: flags, app: app}
}

// Register adds the annotate command to the application
func (cmd *AnnotateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "annotate",
		Usage:     "Print a file with translations inlined",
		UsageText: "i18npeek annotate [--mode keys|translations] [--json] [FILE]",
		Description: `Resolves every key call in FILE (or stdin) against the active dictionary.

In keys mode each call is followed by → "translation"; in translations mode the
call is replaced by the quoted translation. Missing keys use the configured
placeholders. Use --json to print the decoration plan instead.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "mode",
				Aliases:     []string{"m"},
				Usage:       "display mode (keys, translations)",
				Value:       annotate.KeysVisible.String(),
				Destination: &cmd.mode,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the decoration plan as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// annotateOutput is the JSON output format for annotate --json.
type annotateOutput struct {
	File         string                 `json:"file"`
	Mode         string                 `json:"mode"`
	Status       preview.Status         `json:"status"`
	Resolved     int                    `json:"resolved"`
	Missing      int                    `json:"missing"`
	Instructions []annotate.Instruction `json:"instructions"`
}

func (cmd *AnnotateCmd) run(ctx context.Context, c *cli.Command) error {
	mode, err := annotate.ParseMode(cmd.mode)
	if err != nil {
		return err
	}

	text, name, err := readBuffer(c.Args().First())
	if err != nil {
		return err
	}

	ctx = logging.WithBuffer(ctx, name)
	if err := activate(ctx, cmd.app); err != nil {
		return err
	}

	session := cmd.app.Session
	session.SetMode(mode)
	instrs := session.Annotate(text)
	resolved, missing := annotate.Counts(instrs)

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, annotateOutput{
			File:         name,
			Mode:         mode.String(),
			Status:       session.Status(),
			Resolved:     resolved,
			Missing:      missing,
			Instructions: instrs,
		})
	}

	if isTTY(out) {
		_, _ = fmt.Fprint(out, annotate.ApplyFunc(text, instrs, styledRender))
	} else {
		_, _ = fmt.Fprint(out, annotate.Apply(text, instrs))
	}

	fmt.Fprintf(os.Stderr, "%s  %d resolved, %d missing\n", session.Status(), resolved, missing)
	return nil
}

// styledRender colors annotations by resolution status.
func styledRender(in annotate.Instruction, span string) string {
	style := styles.ResolvedStyle
	if in.Status == annotate.StatusMissing {
		style = styles.MissingStyle
	}

	if in.Render == annotate.RenderReplace {
		return style.Render(in.Text)
	}
	return styles.KeyStyle.Render(span) + style.Render(in.Text)
}
