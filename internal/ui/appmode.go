package ui

// AppMode is the board's top-level mode.
type AppMode int

const (
	// ModeRun shows content only; keys go to the focused pane when unbound.
	ModeRun AppMode = iota
	// ModeAuthoring enables structural editing of the layout.
	ModeAuthoring
)

func (m AppMode) String() string {
	switch m {
	case ModeRun:
		return "Run"
	case ModeAuthoring:
		return "Authoring"
	default:
		return "Unknown"
	}
}
