// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    "#7aa2f7",
		Secondary:  "#7dcfff",
		Foreground: "#c0caf5",
		Muted:      "#565f89",
		Background: "#1a1b26",
		Surface:    "#3b4261",
		Success:    "#9ece6a",
		Warning:    "#e0af68",
		Error:      "#f7768e",
	},
	"gruvbox": {
		Primary:    "#83a598",
		Secondary:  "#8ec07c",
		Foreground: "#ebdbb2",
		Muted:      "#665c54",
		Background: "#282828",
		Surface:    "#3c3836",
		Success:    "#b8bb26",
		Warning:    "#fabd2f",
		Error:      "#fb4934",
	},
	"catppuccin": {
		Primary:    "#89b4fa", // Blue
		Secondary:  "#94e2d5", // Teal
		Foreground: "#cdd6f4", // Text
		Muted:      "#6c7086", // Overlay0
		Background: "#1e1e2e", // Base
		Surface:    "#313244", // Surface0
		Success:    "#a6e3a1", // Green
		Warning:    "#f9e2af", // Yellow
		Error:      "#f38ba8", // Red
	},
	"onedark": {
		Primary:    "#61afef",
		Secondary:  "#56b6c2",
		Foreground: "#abb2bf",
		Muted:      "#5c6370",
		Background: "#282c34",
		Surface:    "#3e4452",
		Success:    "#98c379",
		Warning:    "#e5c07b",
		Error:      "#e06c75",
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	PassStyle          lipgloss.Style
	WarnStyle          lipgloss.Style
	FailStyle          lipgloss.Style

	// Annotation styles.
	KeyStyle         lipgloss.Style
	ResolvedStyle    lipgloss.Style
	MissingStyle     lipgloss.Style
	TranslationStyle lipgloss.Style
	CursorStyle      lipgloss.Style

	// TUI chrome.
	StatusBarStyle    lipgloss.Style
	StatusLocaleStyle lipgloss.Style
	StatusMutedStyle  lipgloss.Style
	PaneBorderStyle   lipgloss.Style
	PaneFocusedStyle  lipgloss.Style
	PaneTitleStyle    lipgloss.Style
	LineNumberStyle   lipgloss.Style
	ListSelectedStyle lipgloss.Style
	ListNormalStyle   lipgloss.Style
	ListMatchStyle    lipgloss.Style
	HelpStyle         lipgloss.Style
	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style
	ErrorMessageStyle lipgloss.Style
	InfoMessageStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	PassStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarnStyle = lipgloss.NewStyle().Foreground(p.Warning)
	FailStyle = lipgloss.NewStyle().Foreground(p.Error)

	KeyStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	ResolvedStyle = lipgloss.NewStyle().Foreground(p.Success).Italic(true)
	MissingStyle = lipgloss.NewStyle().Foreground(p.Error).Italic(true)
	TranslationStyle = lipgloss.NewStyle().Foreground(p.Success)
	CursorStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Foreground)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Padding(0, 1)
	StatusLocaleStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	StatusMutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(p.Surface).
		Padding(0, 1)

	PaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted)
	PaneFocusedStyle = PaneBorderStyle.
		BorderForeground(p.Primary)
	PaneTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	LineNumberStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	ListSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.Primary).
		Foreground(p.Primary).
		PaddingLeft(1)
	ListNormalStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		PaddingLeft(2)
	ListMatchStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Underline(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	ErrorMessageStyle = lipgloss.NewStyle().Foreground(p.Error)
	InfoMessageStyle = lipgloss.NewStyle().Foreground(p.Secondary)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorPtr(CurrentPalette.Foreground)
	primary := colorPtr(CurrentPalette.Primary)
	secondary := colorPtr(CurrentPalette.Secondary)
	muted := colorPtr(CurrentPalette.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
