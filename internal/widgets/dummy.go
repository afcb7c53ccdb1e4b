package widgets

import (
	"fmt"
	"strconv"

	"paneboard/internal/module"
)

// Dummy is a placeholder pane carrying a counter. It is the simplest module
// that supports Copy.
type Dummy struct {
	module.Base
	count     int
	destroyed bool
}

func newDummy(fragment string, env module.Env) (module.Content, error) {
	d := &Dummy{}
	if fragment == "" {
		return d, nil
	}
	n, err := strconv.Atoi(fragment)
	if err != nil {
		return nil, fmt.Errorf("dummy: counter %q: %w", fragment, err)
	}
	d.count = n
	return d, nil
}

// Serialize implements module.Content.
func (d *Dummy) Serialize() (string, error) {
	if d.count == 0 {
		return "", nil
	}
	return strconv.Itoa(d.count), nil
}

// Render implements module.Content.
func (d *Dummy) Render(width, height int) string {
	return place(width, height, mutedStyle.Render(fmt.Sprintf("dummy #%d", d.count)))
}

// Copy implements module.Content.
func (d *Dummy) Copy() (module.Content, error) {
	return &Dummy{count: d.count}, nil
}

// Destroy implements module.Content.
func (d *Dummy) Destroy() { d.destroyed = true }

// Bump increments the counter.
func (d *Dummy) Bump() { d.count++ }

// Count returns the counter.
func (d *Dummy) Count() int { return d.count }

// Destroyed reports whether Destroy was called.
func (d *Dummy) Destroyed() bool { return d.destroyed }
