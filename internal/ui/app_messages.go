package ui

import (
	"time"

	"paneboard/internal/layout"
)

// FocusMsg moves focus Delta leaves along the focus order (tab / shift+tab).
type FocusMsg struct {
	Delta int
}

// ToggleAuthoringMsg switches between Run and Authoring mode (SPC e).
type ToggleAuthoringMsg struct{}

// SplitMsg splits the focused pane (SPC s h / SPC s v).
type SplitMsg struct {
	Orientation layout.Orientation
}

// WrapTabsMsg wraps the focused pane in a Tabs container (SPC s t).
type WrapTabsMsg struct{}

// ShowPromoteMsg opens the promote chooser for the split enclosing the focused pane (SPC s x).
type ShowPromoteMsg struct{}

// PromoteMsg replaces Split with the content of its Keep side.
type PromoteMsg struct {
	Split layout.NodeID
	Keep  layout.Side
}

// SwapMsg exchanges the two sides of the enclosing split (SPC s w).
type SwapMsg struct{}

// CycleModeMsg steps the enclosing split through its orientation/dominance modes (SPC s m).
type CycleModeMsg struct{}

// ToggleUnitMsg flips the enclosing split between cells and percent (SPC s u).
type ToggleUnitMsg struct{}

// ShowContentPickerMsg opens the content picker for the focused pane (SPC c).
type ShowContentPickerMsg struct{}

// SetContentMsg replaces the content of Bin with a fresh instance of Module.
type SetContentMsg struct {
	Bin    layout.NodeID
	Module string
}

// AddPageMsg duplicates the focused page of the enclosing tabs (SPC t n).
type AddPageMsg struct{}

// DuplicatePageMsg inserts a copy of the focused page after it (SPC t d).
type DuplicatePageMsg struct{}

// ShowRemovePageMsg asks for confirmation before removing the focused page (SPC t x).
type ShowRemovePageMsg struct{}

// RemovePageMsg removes page Index of Tabs.
type RemovePageMsg struct {
	Tabs  layout.NodeID
	Index int
}

// MovePageMsg moves the focused page by Delta positions (SPC t h / SPC t l).
type MovePageMsg struct {
	Delta int
}

// CyclePageMsg selects the page Delta positions away in the enclosing tabs ([ / ]).
type CyclePageMsg struct {
	Delta int
}

// HideFocusedMsg hides the focused pane (SPC z).
type HideFocusedMsg struct{}

// ShowAllMsg clears every hide the user made (SPC u).
type ShowAllMsg struct{}

// ShowSaveProfileMsg opens the save-profile prompt (SPC w).
type ShowSaveProfileMsg struct{}

// SaveProfileMsg saves the current descriptor under Name.
type SaveProfileMsg struct {
	Name string
}

// ProfileSavedMsg reports the outcome of a save.
type ProfileSavedMsg struct {
	Name string
	Err  error
}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// tickMsg drives periodic content updates.
type tickMsg time.Time
