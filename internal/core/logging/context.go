package logging

import "context"

type contextKey string

const (
	bufferKey     contextKey = "buffer"
	dictionaryKey contextKey = "dictionary"
)

// WithBuffer adds the path of the previewed source file to the context.
func WithBuffer(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, bufferKey, path)
}

// WithDictionary adds the active dictionary path to the context.
func WithDictionary(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, dictionaryKey, path)
}

// GetBuffer retrieves the buffer path from the context.
// Returns empty string if not present.
func GetBuffer(ctx context.Context) string {
	if p, ok := ctx.Value(bufferKey).(string); ok {
		return p
	}
	return ""
}

// GetDictionary retrieves the dictionary path from the context.
// Returns empty string if not present.
func GetDictionary(ctx context.Context) string {
	if p, ok := ctx.Value(dictionaryKey).(string); ok {
		return p
	}
	return ""
}
