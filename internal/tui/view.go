package tui

import (
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/i18npeek/internal/core/annotate"
	"github.com/colonyops/i18npeek/internal/core/styles"
)

const (
	minSideWidth = 28
	statusHeight = 1
	helpHeight   = 1
	paneChrome   = 2 // border rows/cols
)

type layout struct {
	bufferWidth int
	sideWidth   int
	bodyHeight  int
	keysHeight  int
	hoverHeight int
}

func (m Model) computeLayout() layout {
	side := max(m.width/3, minSideWidth)
	body := max(m.height-statusHeight-helpHeight-paneChrome, 1)
	keys := max(body*3/5, 3)

	return layout{
		bufferWidth: max(m.width-side-2*paneChrome, 10),
		sideWidth:   side,
		bodyHeight:  body,
		keysHeight:  keys,
		hoverHeight: max(body-keys-paneChrome, 1),
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.picker != nil {
		return m.picker.Overlay(m.width, m.height)
	}

	l := m.computeLayout()

	bufferStyle := styles.PaneBorderStyle
	keysStyle := styles.PaneBorderStyle
	if m.focus == focusBuffer {
		bufferStyle = styles.PaneFocusedStyle
	} else {
		keysStyle = styles.PaneFocusedStyle
	}

	bufferPane := bufferStyle.
		Width(l.bufferWidth).
		Height(l.bodyHeight).
		Render(m.view.View())

	keysPane := keysStyle.
		Width(l.sideWidth).
		Height(l.keysHeight).
		Render(m.keys.View())

	hoverPane := styles.PaneBorderStyle.
		Width(l.sideWidth).
		Height(l.hoverHeight).
		MaxHeight(l.hoverHeight + paneChrome).
		Render(m.hover)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		bufferPane,
		lipgloss.JoinVertical(lipgloss.Left, keysPane, hoverPane),
	)

	parts := []string{body}
	if toasts := m.toasts.View(m.width); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, m.statusLine(), m.helpLine())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// statusLine shows the dictionary indicator, the mode, and annotation counts.
func (m Model) statusLine() string {
	st := m.session.Status()

	locale := styles.StatusLocaleStyle.Render(styles.IconTranslate + " " + st.String())
	mode := styles.StatusMutedStyle.Render(st.Mode.String())

	resolved, missing := annotate.Counts(m.instrs)
	info := filepath.Base(m.bufferPath)
	if st.Loaded {
		info += "  " + styles.PassStyle.Render(strconv.Itoa(resolved)+" resolved") +
			"  " + styles.FailStyle.Render(strconv.Itoa(missing)+" missing")
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top, locale, mode)
	rest := max(m.width-lipgloss.Width(left), 0)
	return left + styles.StatusBarStyle.Width(rest).MaxWidth(rest).Render(info)
}

func (m Model) helpLine() string {
	bindings := m.handler.HelpBindings()
	return m.help.ShortHelpView(bindings)
}
