package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "buffer and dictionary",
			setupCtx: func() context.Context {
				return WithDictionary(WithBuffer(context.Background(), "app.js"), "es.js")
			},
			wantKeys: []string{"buffer", "dictionary"},
		},
		{
			name: "only buffer",
			setupCtx: func() context.Context {
				return WithBuffer(context.Background(), "app.js")
			},
			wantKeys:  []string{"buffer"},
			wantEmpty: []string{"dictionary"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"buffer", "dictionary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, k := range tt.wantKeys {
				assert.Contains(t, entry, k)
			}
			for _, k := range tt.wantEmpty {
				assert.NotContains(t, entry, k)
			}
		})
	}
}
