package iojson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.js")
	require.NoError(t, os.WriteFile(path, []byte("__('greeting')"), 0o644))

	data, name, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "__('greeting')", string(data))
	assert.Equal(t, path, name)
}

func TestReadSource_MissingFile(t *testing.T) {
	_, _, err := ReadSource(filepath.Join(t.TempDir(), "nope.js"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
