// Package widgets holds the built-in content modules a board can place in its
// panes. Each one is registered under a short name and owns its own fragment
// format; the layout engine never looks inside a fragment.
package widgets

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"

	"paneboard/internal/module"
	"paneboard/internal/pty"
)

// Module names.
const (
	NameDummy = "dummy"
	NameText  = "text"
	NameMD    = "md"
	NameClock = "clock"
	NameState = "state"
	NameCmd   = "cmd"
)

// Clock supplies the current time to clock panes. Mount a tree with external
// data implementing Clock to drive them deterministically.
type Clock interface {
	Now() time.Time
}

// StateSource is the read side of the device-state mirror.
type StateSource interface {
	Lookup(key string) (string, bool)
}

// Deps are the collaborators widgets need from the composition root.
type Deps struct {
	// PTY spawns cmd panes. Nil disables them: they render a notice instead.
	PTY    pty.Runner
	Logger *slog.Logger
	// MarkdownStyle is a glamour standard style name ("dark", "light", "notty", ...).
	MarkdownStyle string
	// Shell runs cmd fragments. Defaults to "sh".
	Shell string
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.MarkdownStyle == "" {
		d.MarkdownStyle = "dark"
	}
	if d.Shell == "" {
		d.Shell = "sh"
	}
	return d
}

// Register adds every built-in module to reg.
func Register(reg *module.Registry, deps Deps) error {
	deps = deps.withDefaults()
	builders := map[string]module.Builder{
		NameDummy: module.Simple(newDummy),
		NameText:  module.Simple(newText),
		NameMD:    module.Simple(func(f string, env module.Env) (module.Content, error) { return newMarkdown(f, deps.MarkdownStyle), nil }),
		NameClock: module.Simple(newClock),
		NameState: module.Simple(newState),
		NameCmd:   module.Simple(func(f string, env module.Env) (module.Content, error) { return newCmd(f, deps) }),
	}
	for name, b := range builders {
		if err := reg.Register(name, b); err != nil {
			return err
		}
	}
	return nil
}

// Summaries describes each built-in module for the content picker and the
// modules command.
var Summaries = map[string]string{
	NameDummy: "placeholder with a counter",
	NameText:  "static wrapped text",
	NameMD:    "markdown rendered with glamour",
	NameClock: "current time in a Go time layout",
	NameState: "value of a device-state key; hidden while absent",
	NameCmd:   "command output in a pseudo-terminal",
}

// place centers s in a width x height area.
func place(width, height int, s string) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
