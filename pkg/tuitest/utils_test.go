package tuitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[31mred\x1b[0m   \nplain  \n\n"
	assert.Equal(t, "red\nplain", StripANSI(in))
}

func TestKeyMessages(t *testing.T) {
	assert.Equal(t, "t", KeyPress('t').String())
	assert.Equal(t, "enter", KeyEnter().String())
	assert.Equal(t, "down", KeyDown().String())
	assert.Equal(t, "esc", KeyEsc().String())
	assert.Equal(t, "ctrl+c", KeyCtrlC().String())
	assert.Len(t, Type("abc"), 3)
}
