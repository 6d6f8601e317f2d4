package preview

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colonyops/i18npeek/internal/core/config"
	"github.com/colonyops/i18npeek/internal/core/selection"
)

// App aggregates what commands need for one invocation.
type App struct {
	Config  *config.Config
	Session *Session
	State   selection.Store
	Root    string

	// DictOverride and LocaleOverride come from global flags and win over
	// remembered selections for this invocation only.
	DictOverride   string
	LocaleOverride string
}

// NewApp creates an App with a fresh Session.
func NewApp(cfg *config.Config, state selection.Store, root string, logger zerolog.Logger) *App {
	return &App{
		Config:  cfg,
		Session: NewSession(cfg, logger),
		State:   state,
		Root:    selection.NormalizeRoot(root),
	}
}

// Activate loads the dictionary for this invocation: the override when
// given, otherwise whatever AutoLoad picks. ErrNoDictionaries and
// ErrSelectionRequired are returned unchanged so callers can decide
// whether running without a dictionary is acceptable.
func (a *App) Activate(ctx context.Context) error {
	if a.DictOverride != "" {
		return a.Session.LoadDictionary(a.DictOverride, a.LocaleOverride)
	}

	if !a.Config.AutoLoadEnabled() {
		return nil
	}

	if _, _, err := a.Session.AutoLoad(ctx, a.Root, a.State); err != nil {
		return err
	}

	if a.LocaleOverride != "" {
		if snap, ok := a.Session.Store().Snapshot(); ok {
			a.Session.Store().SetActive(snap.Dictionary, a.LocaleOverride, snap.Source)
		}
	}
	return nil
}
