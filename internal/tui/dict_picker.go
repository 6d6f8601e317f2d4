package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/i18npeek/internal/core/discover"
	"github.com/colonyops/i18npeek/internal/core/styles"
)

const (
	pickerMaxWidth  = 72
	pickerMaxHeight = 18
)

type candidateItem struct {
	cand     discover.Candidate
	selected bool
}

func (i candidateItem) FilterValue() string { return i.cand.Path }

func (i candidateItem) Title() string {
	title := styles.FileIcon(filepath.Ext(i.cand.Path)) + " " + i.cand.Locale
	if i.selected {
		title += " " + styles.IconCheck
	}
	return title
}

func (i candidateItem) Description() string { return i.cand.Path }

// DictPicker is the modal used to choose a dictionary.
type DictPicker struct {
	list list.Model
}

// NewDictPicker creates a picker over cands with active preselected.
func NewDictPicker(cands []discover.Candidate, active string, width, height int) *DictPicker {
	items := make([]list.Item, len(cands))
	cursor := 0
	for i, c := range cands {
		items[i] = candidateItem{cand: c, selected: c.Path == active}
		if c.Path == active {
			cursor = i
		}
	}

	l := list.New(items, newItemDelegate(), 0, 0)
	l.Title = styles.IconBook + " Select dictionary"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = styles.ModalTitleStyle
	l.Select(cursor)

	p := &DictPicker{list: l}
	p.SetSize(width, height)
	return p
}

// SetSize fits the picker into a width x height screen.
func (p *DictPicker) SetSize(width, height int) {
	w := min(pickerMaxWidth, max(width-8, 20))
	h := min(pickerMaxHeight, max(height-6, 6))
	p.list.SetSize(w, h)
}

// Selected returns the highlighted candidate.
func (p *DictPicker) Selected() (discover.Candidate, bool) {
	item, ok := p.list.SelectedItem().(candidateItem)
	if !ok {
		return discover.Candidate{}, false
	}
	return item.cand, true
}

// Filtering reports whether the user is typing a filter.
func (p *DictPicker) Filtering() bool {
	return p.list.SettingFilter()
}

// Update forwards msg to the list.
func (p *DictPicker) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

// Overlay renders the picker centered on a width x height screen.
func (p *DictPicker) Overlay(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		p.list.View(),
		styles.HelpStyle.Render("enter select • / filter • esc cancel"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.ModalStyle.Render(body))
}
