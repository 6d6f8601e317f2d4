package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantText string
		wantName string
	}{
		{
			name:     "export default",
			src:      `export default { a: 'b' };`,
			wantText: `{ a: 'b' }`,
		},
		{
			name:     "nested braces",
			src:      `export default { a: { b: 'c' } }; const x = {}`,
			wantText: `{ a: { b: 'c' } }`,
		},
		{
			name:     "named const exported later",
			src:      "const other = { z: 1 }\nconst es = { a: 'b' }\nexport default es",
			wantText: `{ a: 'b' }`,
			wantName: "es",
		},
		{
			name:     "export default preferred over const",
			src:      "const es = { a: 'b' }\nexport default { c: 'd' }",
			wantText: `{ c: 'd' }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := Locate(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, lit.Text)
			assert.Equal(t, tt.wantName, lit.Name)
			assert.Equal(t, tt.wantText, tt.src[lit.Offset:lit.Offset+len(lit.Text)])
		})
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(`{ a: 'x', "b": { c: 2, }, d: null, }`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":{"c":"2"},"d":null}`, got)
}

func TestNormalize_TrailingGarbage(t *testing.T) {
	_, err := Normalize(`{ a: 'x' } b`)
	require.ErrorIs(t, err, ErrParseFailure)
}
