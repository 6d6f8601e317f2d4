package preview

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/i18npeek/internal/core/annotate"
	"github.com/colonyops/i18npeek/internal/core/config"
	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/loader"
	"github.com/colonyops/i18npeek/internal/core/scan"
	"github.com/colonyops/i18npeek/internal/core/selection"
	"github.com/colonyops/i18npeek/internal/store/jsonfile"
)

const buffer = "title(__('greeting'));\nfooter(__('farewell'));\nheader(__(\"greeting\"));\n"

func newSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return NewSession(&cfg, zerolog.Nop())
}

func writeFile(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSession_EndToEnd(t *testing.T) {
	s := newSession(t)
	path := writeFile(t, t.TempDir(), "lang/es.js", `export default { greeting: 'Hola' };`)

	assert.Empty(t, s.Annotate(buffer))
	assert.Equal(t, "i18n: No Dictionary", s.Status().String())

	require.NoError(t, s.LoadDictionary(path, ""))

	st := s.Status()
	assert.True(t, st.Loaded)
	assert.Equal(t, "es", st.Locale)
	assert.Equal(t, path, st.Source)
	assert.Equal(t, 1, st.Entries)
	assert.Equal(t, "i18n: es", st.String())

	instrs := s.Annotate(buffer)
	require.Len(t, instrs, 3)
	resolved, missing := annotate.Counts(instrs)
	assert.Equal(t, 2, resolved)
	assert.Equal(t, 1, missing)
	assert.Equal(t, annotate.RenderSuffix, instrs[0].Render)

	assert.Equal(t, annotate.TranslationsVisible, s.ToggleMode())
	assert.Equal(t, `"MISSING TRANSLATION"`, s.Annotate(buffer)[1].Text)
	assert.Equal(t, annotate.KeysVisible, s.ToggleMode())

	s.Store().Clear()
	assert.Empty(t, s.Annotate(buffer))
	assert.False(t, s.Status().Loaded)
}

func TestSession_LoadFailureKeepsActiveDictionary(t *testing.T) {
	s := newSession(t)
	root := t.TempDir()
	good := writeFile(t, root, "lang/es.js", `export default { greeting: 'Hola' }`)
	bad := writeFile(t, root, "lang/en.js", `export default { greeting: t('x') }`)

	require.NoError(t, s.LoadDictionary(good, ""))

	err := s.LoadDictionary(bad, "")
	require.ErrorIs(t, err, loader.ErrParseFailure)

	err = s.LoadDictionary(filepath.Join(root, "lang", "fr.js"), "")
	require.ErrorIs(t, err, loader.ErrFileNotFound)

	st := s.Status()
	assert.Equal(t, good, st.Source)
	assert.Equal(t, "es", st.Locale)
}

func TestSession_LocaleFallsBackToDefault(t *testing.T) {
	s := newSession(t)
	path := writeFile(t, t.TempDir(), "messages.js", `export default {}`)

	require.NoError(t, s.LoadDictionary(path, ""))
	assert.Equal(t, "es", s.Status().Locale)

	require.NoError(t, s.LoadDictionary(path, "de"))
	assert.Equal(t, "de", s.Status().Locale)
}

func TestSession_SetDictionaryAndRemember(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	root := t.TempDir()
	state := jsonfile.NewSelectionStore(filepath.Join(t.TempDir(), "state.json"))

	require.ErrorIs(t, s.Remember(ctx, root, state), dictionary.ErrNoDictionaryLoaded)

	path := writeFile(t, root, "lang/pt_BR.js", `export default { greeting: 'Olá' }`)
	dict, err := loader.Load(path)
	require.NoError(t, err)

	s.SetDictionary(dict, path, "pt-BR")
	assert.Equal(t, "i18n: pt-BR", s.Status().String())

	require.NoError(t, s.Remember(ctx, root, state))
	sel, err := state.Get(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, path, sel.Path)
	assert.Equal(t, "pt-BR", sel.Locale)
}

func TestSession_HoverOccurrence(t *testing.T) {
	s := newSession(t)
	path := writeFile(t, t.TempDir(), "lang/es.js", `export default { a: 'uno', b: 'dos' }`)
	require.NoError(t, s.LoadDictionary(path, ""))

	text := `x(__('a')__('b'))`
	occs := scan.Collect(text)
	require.Len(t, occs, 2)

	info, ok := s.Hover(text, occs[1].Start)
	require.True(t, ok)
	assert.Equal(t, "a", info.Key, "offset lookup prefers the call ending at the offset")

	info = s.HoverOccurrence(occs[1])
	assert.Equal(t, "b", info.Key)
	assert.Equal(t, "dos", info.Text)
}

func TestSession_Hover(t *testing.T) {
	s := newSession(t)

	info, ok := s.Hover(buffer, 10)
	require.True(t, ok)
	assert.False(t, info.Loaded)
	assert.Equal(t, annotate.NoDictionaryHover, info.Markdown())

	_, ok = s.Hover(buffer, 0)
	assert.False(t, ok)

	path := writeFile(t, t.TempDir(), "lang/es.js", `export default { greeting: 'Hola' }`)
	require.NoError(t, s.LoadDictionary(path, ""))

	info, ok = s.Hover(buffer, 10)
	require.True(t, ok)
	assert.Equal(t, `greeting → "Hola"`, info.Summary())
}

func TestSession_KeysInBuffer(t *testing.T) {
	s := newSession(t)

	keys := s.KeysInBuffer(buffer)
	require.Len(t, keys, 2)
	assert.Equal(t, KeyEntry{Key: "farewell", Count: 1}, keys[0])
	assert.Equal(t, KeyEntry{Key: "greeting", Count: 2}, keys[1])

	path := writeFile(t, t.TempDir(), "lang/es.js", `export default { greeting: 'Hola' }`)
	require.NoError(t, s.LoadDictionary(path, ""))

	keys = s.KeysInBuffer(buffer)
	assert.Equal(t, KeyEntry{Key: "greeting", Translation: "Hola", Found: true, Count: 2}, keys[1])
	assert.False(t, keys[0].Found)
}

func TestSession_NextOccurrence(t *testing.T) {
	s := newSession(t)

	first, ok := s.NextOccurrence(buffer, "greeting", -1)
	require.True(t, ok)

	second, ok := s.NextOccurrence(buffer, "greeting", first.Start)
	require.True(t, ok)
	assert.Greater(t, second.Start, first.Start)

	wrapped, ok := s.NextOccurrence(buffer, "greeting", second.Start)
	require.True(t, ok)
	assert.Equal(t, first, wrapped)

	_, ok = s.NextOccurrence(buffer, "unknown", -1)
	assert.False(t, ok)
}

func TestSession_AutoLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("single candidate loads", func(t *testing.T) {
		s := newSession(t)
		root := t.TempDir()
		path := writeFile(t, root, "src/lang/en.js", `export default { greeting: 'Hello' }`)

		cand, cands, err := s.AutoLoad(ctx, root, nil)
		require.NoError(t, err)
		assert.Equal(t, path, cand.Path)
		assert.Len(t, cands, 1)
		assert.Equal(t, "i18n: en", s.Status().String())
	})

	t.Run("no candidates", func(t *testing.T) {
		s := newSession(t)
		_, _, err := s.AutoLoad(ctx, t.TempDir(), nil)
		require.ErrorIs(t, err, ErrNoDictionaries)
	})

	t.Run("several candidates need a selection", func(t *testing.T) {
		s := newSession(t)
		root := t.TempDir()
		writeFile(t, root, "lang/en.js", `export default {}`)
		es := writeFile(t, root, "lang/es.js", `export default { greeting: 'Hola' }`)
		state := jsonfile.NewSelectionStore(filepath.Join(t.TempDir(), "state.json"))

		_, cands, err := s.AutoLoad(ctx, root, state)
		require.ErrorIs(t, err, ErrSelectionRequired)
		require.Len(t, cands, 2)
		assert.False(t, s.Status().Loaded)

		require.NoError(t, s.Select(ctx, root, cands[1], state))
		remembered, err := state.Get(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, es, remembered.Path)
		assert.Equal(t, "es", remembered.Locale)

		fresh := newSession(t)
		cand, _, err := fresh.AutoLoad(ctx, root, state)
		require.NoError(t, err)
		assert.Equal(t, es, cand.Path)
		assert.True(t, fresh.Status().Loaded)
	})

	t.Run("explicit dictionary wins", func(t *testing.T) {
		s := newSession(t)
		root := t.TempDir()
		writeFile(t, root, "lang/en.js", `export default {}`)
		writeFile(t, root, "lang/es.js", `export default {}`)
		s.cfg.Dictionary = writeFile(t, t.TempDir(), "fr.js", `export default { a: 'b' }`)

		cand, _, err := s.AutoLoad(ctx, root, nil)
		require.NoError(t, err)
		assert.Equal(t, "fr", cand.Locale)
		assert.Equal(t, "fr", s.Status().Locale)
	})

	t.Run("remembered path outside discovery globs", func(t *testing.T) {
		s := newSession(t)
		root := t.TempDir()
		fr := writeFile(t, root, "messages/fr.js", `export default { greeting: 'Bonjour' }`)
		state := jsonfile.NewSelectionStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, state.Save(ctx, selection.Selection{Root: root, Path: fr, Locale: "fr"}))

		cands, err := s.Candidates(root)
		require.NoError(t, err)
		require.Empty(t, cands)

		cand, _, err := s.AutoLoad(ctx, root, state)
		require.NoError(t, err)
		assert.Equal(t, fr, cand.Path)

		tr, err := s.Lookup("greeting")
		require.NoError(t, err)
		assert.Equal(t, "Bonjour", tr.Text)
	})

	t.Run("remembered selection beats single candidate", func(t *testing.T) {
		s := newSession(t)
		root := t.TempDir()
		writeFile(t, root, "lang/en.js", `export default { greeting: 'Hello' }`)
		other := writeFile(t, root, "custom/de.js", `export default { greeting: 'Hallo' }`)
		state := jsonfile.NewSelectionStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, state.Save(ctx, selection.Selection{Root: root, Path: other, Locale: "de"}))

		cand, _, err := s.AutoLoad(ctx, root, state)
		require.NoError(t, err)
		assert.Equal(t, other, cand.Path)
		assert.Equal(t, "i18n: de", s.Status().String())
	})

	t.Run("remembered locale is restored", func(t *testing.T) {
		s := newSession(t)
		root := t.TempDir()
		es := writeFile(t, root, "lang/es.js", `export default { greeting: 'Hola' }`)
		state := jsonfile.NewSelectionStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, state.Save(ctx, selection.Selection{Root: root, Path: es, Locale: "es-MX"}))

		cand, _, err := s.AutoLoad(ctx, root, state)
		require.NoError(t, err)
		assert.Equal(t, "es-MX", cand.Locale)
		assert.Equal(t, "es-MX", s.Status().Locale)
	})

	t.Run("stale remembered selection falls back to discovery", func(t *testing.T) {
		s := newSession(t)
		root := t.TempDir()
		en := writeFile(t, root, "lang/en.js", `export default { greeting: 'Hello' }`)
		state := jsonfile.NewSelectionStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, state.Save(ctx, selection.Selection{Root: root, Path: filepath.Join(root, "lang", "gone.js")}))

		cand, cands, err := s.AutoLoad(ctx, root, state)
		require.NoError(t, err)
		assert.Equal(t, en, cand.Path)
		assert.Len(t, cands, 1)
	})
}

func TestSession_SelectFailureDoesNotRemember(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	root := t.TempDir()
	bad := writeFile(t, root, "lang/es.js", `module.exports = 42`)
	state := jsonfile.NewSelectionStore(filepath.Join(t.TempDir(), "state.json"))

	cands, err := s.Candidates(root)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	require.Equal(t, bad, cands[0].Path)

	require.Error(t, s.Select(ctx, root, cands[0], state))

	_, err = state.Get(ctx, root)
	require.ErrorIs(t, err, selection.ErrNotFound)
}
