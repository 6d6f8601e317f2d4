package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/core/config"
	"github.com/colonyops/i18npeek/internal/core/styles"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	app    *preview.App
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags, app *preview.App) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags, app: app}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "i18npeek config validate [options]",
				Description: "Validates the configuration file, checking glob patterns, theme names, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// fieldError is the JSON output format of a single validation error.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.app.Config
	errs := validationErrors(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		return cmd.outputJSON(c, errs, warnings)
	}

	return cmd.outputText(errs, warnings)
}

// validationErrors flattens a ValidateDeep error into per-field errors.
func validationErrors(err error) []fieldError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []fieldError{{Field: "config", Message: err.Error()}}
	}

	out := make([]fieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = fieldError{Field: fe.Field, Message: fe.Err.Error()}
	}
	return out
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, errs []fieldError, warnings []config.ValidationWarning) error {
	out := struct {
		Valid    bool                       `json:"valid"`
		Errors   []fieldError               `json:"errors,omitempty"`
		Warnings []config.ValidationWarning `json:"warnings,omitempty"`
	}{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}
	if len(errs) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(errs []fieldError, warnings []config.ValidationWarning) error {
	w := os.Stderr

	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.WarnStyle.Render("●"), warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", styles.HelpStyle.Render("Item: "+warn.Item))
		}
	}

	for _, fe := range errs {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.FailStyle.Render("✘"), fe.Field, fe.Message)
	}

	_, _ = fmt.Fprintln(w)
	if len(errs) == 0 {
		_, _ = fmt.Fprintln(w, styles.PassStyle.Render("✔ Configuration is valid"))
		return nil
	}

	_, _ = fmt.Fprintln(w, styles.FailStyle.Render(fmt.Sprintf("%d error(s) found", len(errs))))
	return cli.Exit("", 1)
}
