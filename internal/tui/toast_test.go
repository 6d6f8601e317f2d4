package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/i18npeek/pkg/tuitest"
)

func TestToastController_Push(t *testing.T) {
	c := NewToastController()

	c.Push(toastInfo, "hello")

	assert.True(t, c.HasToasts())
	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "hello", c.Toasts()[0].message)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_Push_evicts_oldest_at_max(t *testing.T) {
	c := NewToastController()

	for i := range defaultMaxToasts + 2 {
		c.Push(toastInfo, fmt.Sprintf("toast %d", i))
	}

	assert.Len(t, c.Toasts(), defaultMaxToasts)
	assert.Equal(t, "toast 2", c.Toasts()[0].message)
}

func TestToastController_Tick_removes_expired(t *testing.T) {
	c := NewToastController()
	c.Push(toastError, "expires")
	c.Push(toastInfo, "survives")

	c.toasts[0].remaining = 50 * time.Millisecond
	c.Tick(100 * time.Millisecond)

	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].message)
	assert.Equal(t, defaultToastTTL-100*time.Millisecond, c.Toasts()[0].remaining)
}

func TestToastController_View(t *testing.T) {
	c := NewToastController()
	assert.Empty(t, c.View(80))

	c.Push(toastInfo, "loaded")
	c.Push(toastError, "parse failed")

	out := tuitest.StripANSI(c.View(80))
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "parse failed")

	c.DismissAll()
	assert.False(t, c.HasToasts())
}
