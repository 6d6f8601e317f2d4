package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/i18npeek/internal/core/annotate"
	"github.com/colonyops/i18npeek/internal/core/config"
	"github.com/colonyops/i18npeek/internal/core/discover"
	"github.com/colonyops/i18npeek/internal/preview"
	"github.com/colonyops/i18npeek/internal/store/jsonfile"
	"github.com/colonyops/i18npeek/pkg/tuitest"
)

const source = `import { __ } from './i18n';

title(__('greeting'));
footer(__('farewell'));
header(__("greeting"));
`

type fixture struct {
	root       string
	bufferPath string
	dictPath   string
	app        *preview.App
}

func writeFile(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	state := jsonfile.NewSelectionStore(cfg.StateFile())
	return fixture{
		root:       root,
		bufferPath: writeFile(t, root, "src/app.js", source),
		dictPath:   writeFile(t, root, "src/lang/es.js", `export default { greeting: 'Hola' }`),
		app:        preview.NewApp(cfg, state, root, zerolog.Nop()),
	}
}

// send applies msgs in order, returning the final model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_NoDictionary(t *testing.T) {
	f := newFixture(t)
	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(120, 40))

	assert.Len(t, m.occs, 3)
	assert.Equal(t, 0, m.cursor)
	assert.Empty(t, m.instrs)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "i18n: No Dictionary")
	assert.Contains(t, view, "__('greeting')")
	assert.Contains(t, view, "No dictionary selected")
}

func TestModel_WithDictionary(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Session.LoadDictionary(f.dictPath, ""))

	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(140, 40))

	resolved, missing := annotate.Counts(m.instrs)
	assert.Equal(t, 2, resolved)
	assert.Equal(t, 1, missing)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "i18n: es")
	assert.Contains(t, view, `→ "Hola"`)
	assert.Contains(t, view, `→ "MISSING"`)
	assert.Contains(t, view, "2 resolved")
}

func TestModel_ToggleMode(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Session.LoadDictionary(f.dictPath, ""))

	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(140, 40), tuitest.KeyPress('t'))

	assert.Equal(t, annotate.TranslationsVisible, f.app.Session.Mode())
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, `title("Hola")`)
	assert.Contains(t, view, `footer("MISSING TRANSLATION")`)

	m = send(t, m, tuitest.KeyPress('t'))
	assert.Equal(t, annotate.KeysVisible, f.app.Session.Mode())
}

func TestModel_CursorAndNext(t *testing.T) {
	f := newFixture(t)
	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(120, 40))

	require.Equal(t, "greeting", m.occs[m.cursor].Key)

	m = send(t, m, tuitest.KeyPress('n'))
	assert.Equal(t, 2, m.cursor, "next skips to the next call of the same key")

	m = send(t, m, tuitest.KeyPress('n'))
	assert.Equal(t, 0, m.cursor, "wraps to the top")

	m = send(t, m, tuitest.KeyDown())
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, "farewell", m.occs[m.cursor].Key)

	m = send(t, m, tuitest.KeyUp(), tuitest.KeyUp())
	assert.Equal(t, 0, m.cursor, "clamped at the first call")

	// resize drops the earlier render; cursor moves hit the cache
	assert.Equal(t, 1, m.rendered.Len())
}

func TestModel_SearchFocusesKeys(t *testing.T) {
	f := newFixture(t)
	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(120, 40), tuitest.KeyPress('/'))

	assert.Equal(t, focusKeys, m.focus)
	assert.True(t, m.keys.SettingFilter())

	// typed keys go to the filter, not to actions
	m = send(t, m, tuitest.KeyPress('q'))
	assert.False(t, m.quitting)
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t)
	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})

	next, cmd := m.Update(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}

func TestModel_PickDictionary(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.root, "src/lang/en.js", `export default { greeting: 'Hello', farewell: 'Bye' }`)

	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(120, 40))

	_, cmd := m.Update(tuitest.KeyPress('d'))
	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(candidatesLoadedMsg)
	require.True(t, ok)
	require.Len(t, loaded.candidates, 2)

	m = send(t, m, loaded)
	require.NotNil(t, m.picker)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Select dictionary")

	// first candidate is en.js
	next, cmd := m.Update(tuitest.KeyEnter())
	m = next.(Model)
	assert.Nil(t, m.picker)
	require.NotNil(t, cmd)

	parsed := cmd()
	assert.False(t, f.app.Session.Status().Loaded, "the store changes only when the message is handled")

	m = send(t, m, parsed)
	st := f.app.Session.Status()
	assert.Equal(t, "en", st.Locale)
	assert.Equal(t, "i18n: en", st.String())

	_, missing := annotate.Counts(m.instrs)
	assert.Zero(t, missing)

	remembered, err := f.app.State.Get(t.Context(), f.app.Root)
	require.NoError(t, err)
	assert.Equal(t, loaded.candidates[0].Path, remembered.Path)
}

func TestModel_PickerFromStartupCandidates(t *testing.T) {
	f := newFixture(t)
	cands := []discover.Candidate{{Path: f.dictPath, Locale: "es"}}

	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath, Candidates: cands})
	require.NotNil(t, m.picker)

	m = send(t, m, tuitest.WindowSize(100, 30), tuitest.KeyEsc())
	assert.Nil(t, m.picker)
	assert.False(t, f.app.Session.Status().Loaded)
}

func TestModel_HoverFollowsCursorOnAdjacentCalls(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.bufferPath, []byte("x(__('greeting')__('farewell'))\n"), 0o644))
	writeFile(t, f.root, "src/lang/es.js", `export default { greeting: 'Hola', farewell: 'Adiós' }`)
	require.NoError(t, f.app.Session.LoadDictionary(f.dictPath, ""))

	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(140, 40), tuitest.KeyDown())

	require.Equal(t, 1, m.cursor)
	hover := tuitest.StripANSI(m.hover)
	assert.Contains(t, hover, "Adiós")
	assert.NotContains(t, hover, "Hola")
}

func TestModel_ReloadOnFileChange(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Session.LoadDictionary(f.dictPath, ""))

	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(120, 40))

	require.NoError(t, os.WriteFile(f.dictPath, []byte(`export default { greeting: 'Hola', farewell: 'Adiós' }`), 0o644))
	require.NoError(t, os.WriteFile(f.bufferPath, []byte("x(__('farewell'))\n"), 0o644))

	_, cmd := m.Update(fileChangedMsg{buffer: true, dictionary: true})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		m = send(t, m, c())
	}

	require.Len(t, m.occs, 1)
	resolved, missing := annotate.Counts(m.instrs)
	assert.Equal(t, 1, resolved)
	assert.Zero(t, missing)
}

func TestModel_DictionaryReloadFailureKeepsPrevious(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Session.LoadDictionary(f.dictPath, ""))

	m := New(Deps{App: f.app}, Opts{BufferPath: f.bufferPath})
	m = send(t, m, tuitest.WindowSize(120, 40))

	require.NoError(t, os.WriteFile(f.dictPath, []byte(`export default { greeting: 'Buenas' }`), 0o644))
	parsed := m.reloadDictionary()()
	tr, err := f.app.Session.Lookup("greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hola", tr.Text, "parsing does not swap the active dictionary")

	m = send(t, m, parsed)
	tr, err = f.app.Session.Lookup("greeting")
	require.NoError(t, err)
	assert.Equal(t, "Buenas", tr.Text)

	require.NoError(t, os.WriteFile(f.dictPath, []byte(`export default { greeting: `), 0o644))
	m = send(t, m, m.reloadDictionary()())

	assert.Equal(t, "i18n: es", f.app.Session.Status().String())
	tr, err = f.app.Session.Lookup("greeting")
	require.NoError(t, err)
	assert.Equal(t, "Buenas", tr.Text)

	toasts := m.toasts.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, toastError, toasts[1].level)
	assert.Contains(t, toasts[1].message, "dictionary")
}

func TestModel_MissingBufferFile(t *testing.T) {
	f := newFixture(t)
	m := New(Deps{App: f.app}, Opts{BufferPath: filepath.Join(f.root, "nope.js")})

	assert.Equal(t, -1, m.cursor)
	require.True(t, m.toasts.HasToasts())
	assert.Contains(t, m.toasts.Toasts()[0].message, "nope.js")

	m = send(t, m, tuitest.KeyEsc())
	assert.False(t, m.toasts.HasToasts(), "esc dismisses toasts")
}
