package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/i18npeek/internal/core/annotate"
	"github.com/colonyops/i18npeek/internal/core/scan"
	"github.com/colonyops/i18npeek/internal/core/styles"
)

// renderBuffer decorates text with instrs and prefixes line numbers. The
// occurrence cursor (nil for none) is highlighted even when no dictionary
// produced an instruction for it. Lines are truncated to width.
func renderBuffer(text string, instrs []annotate.Instruction, cursor *scan.Occurrence, width int) string {
	if cursor != nil && !hasInstruction(instrs, cursor.Start) {
		instrs = append(instrs[:len(instrs):len(instrs)], annotate.Instruction{
			Key:    cursor.Key,
			Start:  cursor.Start,
			End:    cursor.End,
			Render: annotate.RenderSuffix,
		})
	}

	cursorStart := -1
	if cursor != nil {
		cursorStart = cursor.Start
	}

	decorated := annotate.ApplyFunc(text, instrs, func(in annotate.Instruction, span string) string {
		return renderInstruction(in, span, in.Start == cursorStart)
	})

	lines := strings.Split(strings.TrimSuffix(decorated, "\n"), "\n")
	gutter := len(strconv.Itoa(len(lines)))

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		num := styles.LineNumberStyle.Render(fmt.Sprintf("%*d ", gutter, i+1))
		if width > 0 {
			line = ansi.Truncate(line, max(width-gutter-1, 1), "…")
		}
		sb.WriteString(num)
		sb.WriteString(line)
	}
	return sb.String()
}

func renderInstruction(in annotate.Instruction, span string, selected bool) string {
	style := styles.ResolvedStyle
	if in.Status == annotate.StatusMissing {
		style = styles.MissingStyle
	}
	text := singleLine(in.Text)

	if in.Render == annotate.RenderReplace {
		if selected {
			return styles.CursorStyle.Render(text)
		}
		return style.Render(text)
	}

	spanStyle := styles.KeyStyle
	if selected {
		spanStyle = styles.CursorStyle
	}
	if text == "" {
		return spanStyle.Render(span)
	}
	return spanStyle.Render(span) + style.Render(text)
}

// singleLine keeps annotations from breaking line numbering.
func singleLine(s string) string {
	return strings.NewReplacer("\r\n", "↵", "\n", "↵", "\r", "↵").Replace(s)
}

func hasInstruction(instrs []annotate.Instruction, start int) bool {
	for _, in := range instrs {
		if in.Start == start {
			return true
		}
	}
	return false
}
