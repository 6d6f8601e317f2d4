package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/i18npeek/internal/core/dictionary"
	"github.com/colonyops/i18npeek/internal/core/scan"
)

const scenario = "title(__('greeting'));\nfooter(__('farewell'));\nheader(__(\"greeting\"));\n"

func newStore(t *testing.T, entries map[string]string) *dictionary.Store {
	t.Helper()
	s := dictionary.NewStore("")
	s.SetActive(dictionary.New(entries), "es", "es.js")
	return s
}

func TestPlan_EndToEndScenario(t *testing.T) {
	store := newStore(t, map[string]string{"greeting": "Hola"})
	occs := scan.Collect(scenario)
	require.Len(t, occs, 3)

	keys := Plan(occs, store, KeysVisible, DefaultOptions())
	require.Len(t, keys, 3)

	resolved, missing := Counts(keys)
	assert.Equal(t, 2, resolved)
	assert.Equal(t, 1, missing)

	assert.Equal(t, Instruction{
		Key: "greeting", Start: occs[0].Start, End: occs[0].End,
		Status: StatusResolved, Render: RenderSuffix, Text: ` → "Hola"`,
	}, keys[0])
	assert.Equal(t, Instruction{
		Key: "farewell", Start: occs[1].Start, End: occs[1].End,
		Status: StatusMissing, Render: RenderSuffix, Text: ` → "MISSING"`,
	}, keys[1])
	assert.Equal(t, StatusResolved, keys[2].Status)

	translations := Plan(occs, store, TranslationsVisible, DefaultOptions())
	require.Len(t, translations, 3)
	for _, in := range translations {
		assert.Equal(t, RenderReplace, in.Render)
	}
	assert.Equal(t, `"Hola"`, translations[0].Text)
	assert.Equal(t, `"MISSING TRANSLATION"`, translations[1].Text)
	assert.Equal(t, `"Hola"`, translations[2].Text)
}

func TestPlan_NoDictionaryClears(t *testing.T) {
	store := dictionary.NewStore("")
	got := Plan(scan.Collect(scenario), store, KeysVisible, DefaultOptions())

	require.NotNil(t, got)
	assert.Empty(t, got)

	// Clearing after a load also clears instructions.
	store.SetActive(dictionary.New(map[string]string{"greeting": "Hola"}), "es", "")
	require.NotEmpty(t, Plan(scan.Collect(scenario), store, KeysVisible, DefaultOptions()))
	store.Clear()
	assert.Empty(t, Plan(scan.Collect(scenario), store, KeysVisible, DefaultOptions()))
}

func TestPlan_Idempotent(t *testing.T) {
	store := newStore(t, map[string]string{"greeting": "Hola", "farewell": "Adiós"})
	occs := scan.Collect(scenario)

	first := Plan(occs, store, TranslationsVisible, DefaultOptions())
	second := Plan(occs, store, TranslationsVisible, DefaultOptions())
	assert.Equal(t, first, second)
}

func TestPlan_ToggleIsInvolutive(t *testing.T) {
	store := newStore(t, map[string]string{"greeting": "Hola"})
	occs := scan.Collect(scenario)

	mode := KeysVisible
	before := Plan(occs, store, mode, DefaultOptions())

	mode = mode.Toggle()
	assert.Equal(t, TranslationsVisible, mode)
	assert.NotEqual(t, before, Plan(occs, store, mode, DefaultOptions()))

	mode = mode.Toggle()
	assert.Equal(t, KeysVisible, mode)
	assert.Equal(t, before, Plan(occs, store, mode, DefaultOptions()))
}

func TestPlan_CustomPlaceholders(t *testing.T) {
	store := newStore(t, map[string]string{})
	occs := scan.Collect(`__('x')`)
	opts := Options{MissingSuffix: "??", MissingReplace: "[x]"}

	assert.Equal(t, ` → "??"`, Plan(occs, store, KeysVisible, opts)[0].Text)
	assert.Equal(t, `"[x]"`, Plan(occs, store, TranslationsVisible, opts)[0].Text)
}

func TestApply(t *testing.T) {
	store := newStore(t, map[string]string{"greeting": "Hola"})
	text := `a(__('greeting'), __('farewell'))`
	occs := scan.Collect(text)

	keys := Apply(text, Plan(occs, store, KeysVisible, DefaultOptions()))
	assert.Equal(t, `a(__('greeting') → "Hola", __('farewell') → "MISSING")`, keys)

	translations := Apply(text, Plan(occs, store, TranslationsVisible, DefaultOptions()))
	assert.Equal(t, `a("Hola", "MISSING TRANSLATION")`, translations)

	assert.Equal(t, text, Apply(text, nil))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("translations")
	require.NoError(t, err)
	assert.Equal(t, TranslationsVisible, m)
	assert.Equal(t, "translations", m.String())

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, KeysVisible, m)

	_, err = ParseMode("nope")
	require.Error(t, err)
}

func TestApplyFunc(t *testing.T) {
	store := newStore(t, map[string]string{"greeting": "Hola"})
	text := `a(__('greeting'), __('farewell'))`
	instrs := Plan(scan.Collect(text), store, KeysVisible, DefaultOptions())

	got := ApplyFunc(text, instrs, func(in Instruction, span string) string {
		return "[" + string(in.Status) + ":" + Plain(in, span) + "]"
	})
	assert.Equal(t, `a([resolved:__('greeting') → "Hola"], [missing:__('farewell') → "MISSING"])`, got)
}
