package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/i18npeek/internal/core/styles"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 100 * time.Millisecond
)

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastError
)

type toast struct {
	level     toastLevel
	message   string
	remaining time.Duration
}

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastController manages the lifecycle of transient status messages.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a message to the stack, evicting the oldest past
// defaultMaxToasts.
func (c *ToastController) Push(level toastLevel, message string) {
	c.toasts = append(c.toasts, toast{
		level:     level,
		message:   message,
		remaining: defaultToastTTL,
	})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// DismissAll removes all active toasts.
func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the current active toast slice.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}

// View renders the toast stack, oldest first, one line per toast.
func (c *ToastController) View(width int) string {
	if len(c.toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(c.toasts))
	for _, t := range c.toasts {
		var style lipgloss.Style
		icon := styles.IconCheck
		switch t.level {
		case toastError:
			style = styles.ErrorMessageStyle
			icon = styles.IconMissing
		default:
			style = styles.InfoMessageStyle
		}
		lines = append(lines, style.MaxWidth(width).Render(icon+" "+t.message))
	}
	return strings.Join(lines, "\n")
}
