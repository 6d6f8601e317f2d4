package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetBuffer(ctx))
	assert.Empty(t, GetDictionary(ctx))

	ctx = WithBuffer(ctx, "src/app.js")
	ctx = WithDictionary(ctx, "lang/es.js")

	assert.Equal(t, "src/app.js", GetBuffer(ctx))
	assert.Equal(t, "lang/es.js", GetDictionary(ctx))
}
