package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/i18npeek/internal/core/annotate"
	"github.com/colonyops/i18npeek/internal/core/scan"
	"github.com/colonyops/i18npeek/pkg/tuitest"
)

func TestRenderBuffer(t *testing.T) {
	text := "a(__('x'))\nb(__('y'))\n"
	instrs := []annotate.Instruction{
		{Key: "x", Start: 2, End: 9, Status: annotate.StatusResolved, Render: annotate.RenderSuffix, Text: ` → "X"`},
		{Key: "y", Start: 13, End: 20, Status: annotate.StatusMissing, Render: annotate.RenderSuffix, Text: ` → "MISSING"`},
	}

	out := tuitest.StripANSI(renderBuffer(text, instrs, nil, 0))
	lines := strings.Split(out, "\n")

	assert.Equal(t, []string{
		`1 a(__('x') → "X")`,
		`2 b(__('y') → "MISSING")`,
	}, lines)
}

func TestRenderBuffer_CursorWithoutInstructions(t *testing.T) {
	text := "a(__('x'))"
	cursor := scan.Occurrence{Key: "x", Start: 2, End: 9}

	out := tuitest.StripANSI(renderBuffer(text, nil, &cursor, 0))
	assert.Equal(t, "1 a(__('x'))", out)
}

func TestRenderBuffer_MultilineTranslationStaysOnOneLine(t *testing.T) {
	text := "a(__('x'))\nnext"
	instrs := []annotate.Instruction{
		{Key: "x", Start: 2, End: 9, Status: annotate.StatusResolved, Render: annotate.RenderReplace, Text: "\"one\ntwo\""},
	}

	out := tuitest.StripANSI(renderBuffer(text, instrs, nil, 0))
	assert.Equal(t, "1 a(\"one↵two\")\n2 next", out)
}

func TestRenderBuffer_Truncates(t *testing.T) {
	out := tuitest.StripANSI(renderBuffer(strings.Repeat("x", 50), nil, nil, 12))
	assert.Equal(t, "1 xxxxxxxxx…", out)
}
