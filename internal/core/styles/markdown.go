package styles

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md with the active theme, wrapped to width.
// A width of zero disables wrapping.
func RenderMarkdown(md string, width int) (string, error) {
	style := GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(rendered), nil
}
