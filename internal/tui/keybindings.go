package tui

import (
	"maps"
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/i18npeek/internal/core/config"
)

// Action is a resolved keybinding.
type Action struct {
	Name string
	Key  string
	Help string
}

// KeybindingHandler resolves key presses to configured actions.
type KeybindingHandler struct {
	keybindings map[string]config.Keybinding
}

// NewKeybindingHandler creates a handler for the merged keybindings.
func NewKeybindingHandler(keybindings map[string]config.Keybinding) *KeybindingHandler {
	return &KeybindingHandler{keybindings: keybindings}
}

// Resolve returns the action bound to key.
func (h *KeybindingHandler) Resolve(key string) (Action, bool) {
	kb, ok := h.keybindings[key]
	if !ok || kb.Action == "" {
		return Action{}, false
	}

	help := kb.Help
	if help == "" {
		help = kb.Action
	}
	return Action{Name: kb.Action, Key: key, Help: help}, true
}

// HelpBindings returns one key.Binding per bound key for the help line,
// ordered by key.
func (h *KeybindingHandler) HelpBindings() []key.Binding {
	bindings := make([]key.Binding, 0, len(h.keybindings))
	for _, k := range slices.Sorted(maps.Keys(h.keybindings)) {
		action, ok := h.Resolve(k)
		if !ok {
			continue
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, action.Help),
		))
	}
	return bindings
}
