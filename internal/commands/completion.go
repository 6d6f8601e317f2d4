package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/i18npeek/internal/preview"
)

// completeWith returns a ShellCompleteFunc that prints the values returned
// by list as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func completeWith(list func(ctx context.Context) []string) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		w := cmd.Root().Writer
		for _, v := range list(ctx) {
			_, _ = fmt.Fprintln(w, v)
		}
	}
}

// DictionaryKeyCompleter suggests keys of the active dictionary.
func DictionaryKeyCompleter(app *preview.App) cli.ShellCompleteFunc {
	return completeWith(func(ctx context.Context) []string {
		_ = app.Activate(ctx)
		snap, ok := app.Session.Store().Snapshot()
		if !ok {
			return nil
		}
		return snap.Dictionary.Keys()
	})
}

// DictionaryPathCompleter suggests discovered dictionary files.
func DictionaryPathCompleter(app *preview.App) cli.ShellCompleteFunc {
	return completeWith(func(context.Context) []string {
		cands, err := app.Session.Candidates(app.Root)
		if err != nil {
			return nil
		}
		paths := make([]string, len(cands))
		for i, c := range cands {
			paths[i] = c.Path
		}
		return paths
	})
}
