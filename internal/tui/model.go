// Package tui implements the interactive previewer: an annotated view of
// one buffer file, its keys, and hover details for the selected call.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/i18npeek/internal/core/annotate"
	"github.com/colonyops/i18npeek/internal/core/config"
	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/discover"
	"github.com/colonyops/i18npeek/internal/core/loader"
	"github.com/colonyops/i18npeek/internal/core/scan"
	"github.com/colonyops/i18npeek/internal/core/styles"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/pkg/kv"
)

const (
	keyCtrlC       = "ctrl+c"
	hoverCacheSize = 256
)

// hoverKey identifies a rendered hover panel.
type hoverKey struct {
	markdown string
	width    int
}

type focusArea int

const (
	focusBuffer focusArea = iota
	focusKeys
)

// Deps are the services the TUI runs against.
type Deps struct {
	App     *preview.App
	Watcher *FileWatcher // nil disables watching
}

// Opts configures a TUI run.
type Opts struct {
	BufferPath string
	// Candidates, when set, opens the dictionary picker on start.
	Candidates []discover.Candidate
	Warnings   []string
}

// Model is the bubbletea model of the previewer.
type Model struct {
	app     *preview.App
	session *preview.Session
	cfg     *config.Config
	handler *KeybindingHandler
	watcher *FileWatcher
	toasts  *ToastController

	bufferPath string
	buffer     string
	occs       []scan.Occurrence
	instrs     []annotate.Instruction
	cursor     int // index into occs, -1 for none

	focus  focusArea
	view   viewport.Model
	keys   list.Model
	help   help.Model
	hover  string
	picker *DictPicker

	rendered *kv.Store[hoverKey, string]

	width  int
	height int

	quitting bool
}

// New creates the model and reads the buffer file.
func New(deps Deps, opts Opts) Model {
	app := deps.App

	m := Model{
		app:        app,
		session:    app.Session,
		cfg:        app.Config,
		handler:    NewKeybindingHandler(app.Config.Keybindings),
		watcher:    deps.Watcher,
		toasts:     NewToastController(),
		bufferPath: opts.BufferPath,
		cursor:     -1,
		view:       viewport.New(0, 0),
		keys:       newKeyList(),
		help:       help.New(),
		rendered:   kv.New[hoverKey, string](hoverCacheSize),
	}

	for _, w := range opts.Warnings {
		m.toasts.Push(toastError, w)
	}

	text, err := readBuffer(opts.BufferPath)
	if err != nil {
		m.toasts.Push(toastError, err.Error())
	}
	m.buffer = text

	if len(opts.Candidates) > 0 {
		m.picker = NewDictPicker(opts.Candidates, "", m.width, m.height)
	}

	m.watchFiles()
	m.refresh()
	return m
}

// Init starts the file watcher and the toast timer.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Start())
	}
	if m.toasts.HasToasts() {
		m.toasts.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case bufferLoadedMsg:
		return m.handleBufferLoaded(msg)
	case dictionaryLoadedMsg:
		return m.handleDictionaryLoaded(msg)
	case candidatesLoadedMsg:
		return m.handleCandidatesLoaded(msg)
	case fileChangedMsg:
		return m.handleFileChanged(msg)
	case toastTickMsg:
		return m.handleToastTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	// renders are keyed by width
	m.rendered.Clear()

	l := m.computeLayout()
	m.view.Width = l.bufferWidth
	m.view.Height = l.bodyHeight
	m.keys.SetSize(l.sideWidth, l.keysHeight)
	if m.picker != nil {
		m.picker.SetSize(m.width, m.height)
	}

	m.refresh()
	return m, nil
}

func (m Model) handleBufferLoaded(msg bufferLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.notify(toastError, msg.err.Error())
	}
	m.buffer = msg.text
	m.refresh()
	return m, nil
}

func (m Model) handleDictionaryLoaded(msg dictionaryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.notify(toastError, "dictionary: "+msg.err.Error())
	}

	m.session.SetDictionary(msg.dict, msg.source, msg.locale)
	if msg.remember {
		if err := m.session.Remember(context.Background(), m.app.Root, m.app.State); err != nil {
			log.Warn().Err(err).Str("path", msg.source).Msg("remember dictionary")
		}
	}

	m.watchFiles()
	m.refresh()
	st := m.session.Status()
	return m.notify(toastInfo, fmt.Sprintf("%s (%d entries)", st.String(), st.Entries))
}

func (m Model) handleCandidatesLoaded(msg candidatesLoadedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err != nil:
		return m.notify(toastError, msg.err.Error())
	case len(msg.candidates) == 0:
		return m.notify(toastError, preview.ErrNoDictionaries.Error())
	}

	m.picker = NewDictPicker(msg.candidates, m.session.Status().Source, m.width, m.height)
	return m, nil
}

func (m Model) handleFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if msg.buffer {
		cmds = append(cmds, m.loadBuffer())
	}
	if msg.dictionary {
		cmds = append(cmds, m.reloadDictionary())
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Start())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toasts.Tick(toastTickInterval)
	if !m.toasts.HasToasts() {
		m.toasts.SetTicking(false)
		return m, nil
	}
	return m, scheduleToastTick()
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == keyCtrlC {
		return m.quit()
	}
	if m.picker != nil {
		return m.handlePickerKey(msg, keyStr)
	}
	if m.keys.SettingFilter() {
		var cmd tea.Cmd
		m.keys, cmd = m.keys.Update(msg)
		return m, cmd
	}

	if action, ok := m.handler.Resolve(keyStr); ok {
		return m.dispatchAction(action)
	}

	return m.handleNavigationKey(msg, keyStr)
}

func (m Model) handlePickerKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	if m.picker.Filtering() {
		return m, m.picker.Update(msg)
	}

	switch keyStr {
	case "esc", "q":
		m.picker = nil
		return m, nil
	case "enter":
		cand, ok := m.picker.Selected()
		m.picker = nil
		if !ok {
			return m, nil
		}
		return m, m.selectDictionary(cand)
	}

	return m, m.picker.Update(msg)
}

// dispatchAction runs a configured action.
func (m Model) dispatchAction(action Action) (tea.Model, tea.Cmd) {
	log.Debug().Str("key", action.Key).Str("action", action.Name).Msg("tui action")

	switch action.Name {
	case config.ActionToggle:
		mode := m.session.ToggleMode()
		m.refresh()
		return m.notify(toastInfo, "showing "+mode.String())

	case config.ActionSearch:
		m.focus = focusKeys
		var cmd tea.Cmd
		m.keys, cmd = m.keys.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
		return m, cmd

	case config.ActionNext:
		return m.nextOccurrence()

	case config.ActionPick:
		return m, m.loadCandidates()

	case config.ActionReload:
		cmds := []tea.Cmd{m.loadBuffer()}
		if m.session.Status().Loaded {
			cmds = append(cmds, m.reloadDictionary())
		}
		return m, tea.Batch(cmds...)

	case config.ActionQuit:
		return m.quit()
	}

	return m, nil
}

func (m Model) handleNavigationKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "tab":
		if m.focus == focusBuffer {
			m.focus = focusKeys
		} else {
			m.focus = focusBuffer
		}
		return m, nil
	case "esc":
		m.focus = focusBuffer
		m.keys.ResetFilter()
		m.toasts.DismissAll()
		return m, nil
	}

	if m.focus == focusKeys {
		var cmd tea.Cmd
		m.keys, cmd = m.keys.Update(msg)
		return m, cmd
	}

	switch keyStr {
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// moveCursor selects the occurrence delta calls away, clamped.
func (m *Model) moveCursor(delta int) {
	if len(m.occs) == 0 {
		return
	}
	m.setCursor(min(max(m.cursor+delta, 0), len(m.occs)-1))
}

// nextOccurrence jumps to the next call of the current key: the key
// highlighted in the keys pane when it has focus, otherwise the key under
// the cursor.
func (m Model) nextOccurrence() (tea.Model, tea.Cmd) {
	key, ok := m.currentKey()
	if !ok {
		return m, nil
	}

	after := -1
	if m.cursor >= 0 {
		after = m.occs[m.cursor].Start
	}

	occ, ok := m.session.NextOccurrence(m.buffer, key, after)
	if !ok {
		return m.notify(toastError, fmt.Sprintf("%q is not used in this file", key))
	}

	for i, o := range m.occs {
		if o.Start == occ.Start {
			m.setCursor(i)
			break
		}
	}
	return m, nil
}

func (m Model) currentKey() (string, bool) {
	if m.focus == focusKeys {
		if key, ok := selectedKey(m.keys); ok {
			return key, true
		}
	}
	if m.cursor >= 0 {
		return m.occs[m.cursor].Key, true
	}
	return selectedKey(m.keys)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// notify pushes a toast and starts the timer if needed.
func (m Model) notify(level toastLevel, message string) (tea.Model, tea.Cmd) {
	m.toasts.Push(level, message)
	if m.toasts.Ticking() {
		return m, nil
	}
	m.toasts.SetTicking(true)
	return m, scheduleToastTick()
}

// setCursor selects occurrence i and scrolls it into view.
func (m *Model) setCursor(i int) {
	m.cursor = i
	m.renderContent()
	m.refreshHover()

	if i < 0 || m.view.Height <= 0 {
		return
	}
	line := scan.PositionOf(m.buffer, m.occs[i].Start).Line
	switch {
	case line < m.view.YOffset:
		m.view.SetYOffset(line)
	case line >= m.view.YOffset+m.view.Height:
		m.view.SetYOffset(line - m.view.Height + 1)
	}
}

// refresh recomputes everything derived from the buffer, the dictionary and
// the mode.
func (m *Model) refresh() {
	m.occs = scan.Collect(m.buffer)
	m.instrs = m.session.Annotate(m.buffer)

	switch {
	case len(m.occs) == 0:
		m.cursor = -1
	case m.cursor < 0:
		m.cursor = 0
	case m.cursor >= len(m.occs):
		m.cursor = len(m.occs) - 1
	}

	st := m.session.Status()
	_ = m.keys.SetItems(keyItems(m.session.KeysInBuffer(m.buffer), st.Loaded, m.cfg.Missing.Hover))

	m.renderContent()
	m.refreshHover()
}

func (m *Model) renderContent() {
	var cursor *scan.Occurrence
	if m.cursor >= 0 {
		cursor = &m.occs[m.cursor]
	}
	m.view.SetContent(renderBuffer(m.buffer, m.instrs, cursor, m.view.Width))
}

func (m *Model) refreshHover() {
	if m.cursor < 0 {
		m.hover = styles.HelpStyle.Render("No translation keys in this file")
		return
	}

	md := m.session.HoverOccurrence(m.occs[m.cursor]).Markdown()
	width := max(m.computeLayout().sideWidth-2, 20)
	rendered, err := m.rendered.GetOrSet(hoverKey{markdown: md, width: width}, func() (string, error) {
		return styles.RenderMarkdown(md, width)
	})
	if err != nil {
		m.hover = md
		return
	}
	m.hover = rendered
}

// watchFiles points the watcher at the current buffer and dictionary.
func (m *Model) watchFiles() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.SetBuffer(m.bufferPath); err != nil {
		log.Warn().Err(err).Str("path", m.bufferPath).Msg("watch buffer")
	}
	if err := m.watcher.SetDictionary(m.session.Status().Source); err != nil {
		log.Warn().Err(err).Msg("watch dictionary")
	}
}

func (m Model) loadBuffer() tea.Cmd {
	path := m.bufferPath
	return func() tea.Msg {
		text, err := readBuffer(path)
		return bufferLoadedMsg{text: text, err: err}
	}
}

func (m Model) reloadDictionary() tea.Cmd {
	st := m.session.Status()
	if !st.Loaded {
		return func() tea.Msg {
			return dictionaryLoadedMsg{err: dictionary.ErrNoDictionaryLoaded}
		}
	}
	return parseDictionary(st.Source, st.Locale, false)
}

// parseDictionary reads and parses path off the event loop; the result is
// activated when the message arrives.
func parseDictionary(path, locale string, remember bool) tea.Cmd {
	return func() tea.Msg {
		dict, err := loader.Load(path)
		return dictionaryLoadedMsg{dict: dict, source: path, locale: locale, remember: remember, err: err}
	}
}

func (m Model) loadCandidates() tea.Cmd {
	session, root := m.session, m.app.Root
	return func() tea.Msg {
		cands, err := session.Candidates(root)
		return candidatesLoadedMsg{candidates: cands, err: err}
	}
}

func (m Model) selectDictionary(cand discover.Candidate) tea.Cmd {
	return parseDictionary(cand.Path, cand.Locale, true)
}

func readBuffer(path string) (string, error) {
	if path == "" {
		return "", errors.New("no file to preview")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}
