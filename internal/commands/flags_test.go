package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPaths_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	assert.Equal(t, filepath.Join("/xdg/config", "i18npeek", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/xdg/data", "i18npeek"), DefaultDataDir())
}

func TestDefaultPaths_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/dev")

	assert.Equal(t, filepath.Join("/home/dev", ".config", "i18npeek", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/home/dev", ".local", "share", "i18npeek"), DefaultDataDir())
}
