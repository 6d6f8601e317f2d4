package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/doctor"
	"github.com/colonyops/i18npeek/internal/core/styles"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *preview.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *preview.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your i18npeek setup",
		UsageText:   "i18npeek doctor [options]",
		Description: "Runs diagnostic checks on configuration, dictionary files, and the remembered selection.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (e.g., forget a stale selection)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	explicit := cmd.app.DictOverride
	if explicit == "" {
		explicit = cmd.app.Config.Dictionary
	}

	return []doctor.Check{
		doctor.NewConfigCheck(cmd.app.Config, cmd.flags.ConfigPath),
		doctor.NewDictionariesCheck(cmd.app.Root, explicit, cmd.app.Config.DiscoverOptions()),
		doctor.NewStateCheck(cmd.app.State, cmd.app.Root, cmd.autofix),
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputText(results []doctor.Result) error {
	w := os.Stderr
	divider := styles.DividerStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render(styles.IconTranslate+" i18npeek doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.CommandStyle.Bold(true).Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.HelpStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.PassStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarnStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.FailStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.PassStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarnStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.FailStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if !cmd.autofix {
		fixable := doctor.CountFixable(results)
		if fixable > 0 {
			_, _ = fmt.Fprintln(w)
			hint := styles.HelpStyle.Render(fmt.Sprintf("Run 'i18npeek doctor --autofix' to fix %d issue(s)", fixable))
			_, _ = fmt.Fprintln(w, hint)
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
