package widgets

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"paneboard/internal/module"
)

// DefaultClockLayout is used when a clock fragment is empty.
const DefaultClockLayout = "15:04:05"

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ClockPane shows the current time. The time only advances on Update.
type ClockPane struct {
	module.Base
	layout string
	clock  Clock
	now    time.Time
}

func newClock(fragment string, env module.Env) (module.Content, error) {
	c := &ClockPane{layout: fragment, clock: systemClock{}}
	if src, ok := env.Data.(Clock); ok {
		c.clock = src
	}
	c.now = c.clock.Now()
	return c, nil
}

func (c *ClockPane) Serialize() (string, error) { return module.Escape(c.layout), nil }

func (c *ClockPane) Render(width, height int) string {
	layout := c.layout
	if layout == "" {
		layout = DefaultClockLayout
	}
	return place(width, height, lipgloss.NewStyle().Bold(true).Render(c.now.Format(layout)))
}

func (c *ClockPane) Update() { c.now = c.clock.Now() }

func (c *ClockPane) Copy() (module.Content, error) {
	return &ClockPane{layout: c.layout, clock: c.clock, now: c.now}, nil
}
