package annotate

import "fmt"

// Mode selects how resolved keys are presented.
type Mode int

const (
	// KeysVisible keeps keys in the text and appends the translation.
	KeysVisible Mode = iota
	// TranslationsVisible replaces each call with its translation.
	TranslationsVisible
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == TranslationsVisible {
		return KeysVisible
	}
	return TranslationsVisible
}

func (m Mode) String() string {
	switch m {
	case KeysVisible:
		return "keys"
	case TranslationsVisible:
		return "translations"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the names produced by String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "keys", "":
		return KeysVisible, nil
	case "translations":
		return TranslationsVisible, nil
	default:
		return KeysVisible, fmt.Errorf("invalid mode %q (want keys or translations)", s)
	}
}
