package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/i18npeek/internal/core/logging"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/iojson"
	"github.com/colonyops/i18npeek/pkg/logutils"
)

// readBuffer reads the FILE argument, or stdin when it is absent or "-".
func readBuffer(path string) (string, string, error) {
	data, name, err := iojson.ReadSource(path)
	if err != nil {
		return "", name, err
	}
	return string(data), name, nil
}

// activate loads the dictionary for a command. Running without a
// dictionary is reported on stderr but is not an error; load failures are.
func activate(ctx context.Context, app *preview.App) error {
	err := app.Activate(ctx)
	switch {
	case err == nil:
		if st := app.Session.Status(); st.Loaded {
			log.Debug().
				Ctx(logging.WithDictionary(ctx, st.Source)).
				Str("locale", st.Locale).
				Int("entries", st.Entries).
				Msg("dictionary active")
		}
		return nil
	case errors.Is(err, preview.ErrSelectionRequired):
		fmt.Fprintln(os.Stderr, "Several dictionaries found; run 'i18npeek select' or pass --dict")
		return nil
	case errors.Is(err, preview.ErrNoDictionaries):
		log.Debug().Ctx(ctx).Str("root", app.Root).Msg("no dictionaries discovered")
		return nil
	default:
		return fmt.Errorf("load dictionary: %w", err)
	}
}

// isTTY reports whether w is a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && logutils.IsTerminal(f)
}
