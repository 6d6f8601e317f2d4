package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts buffer and dictionary paths from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if buffer := GetBuffer(ctx); buffer != "" {
		e.Str("buffer", buffer)
	}

	if dict := GetDictionary(ctx); dict != "" {
		e.Str("dictionary", dict)
	}
}
