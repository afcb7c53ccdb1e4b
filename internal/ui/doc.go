// Package ui is the interactive board host built on Bubble Tea.
//
// Core pieces:
//   - AppModel: the root model; owns the mounted layout tree and routes keys,
//     mouse events and ticks to it
//   - Board: renders a layout frame with lipgloss and hit-tests the mouse
//   - KeybindRegistry / KeyHandler: leader-key (SPC) bindings filtered by mode
//   - FocusManager: rotates focus across the visible leaves
//   - Overlay: modals (content picker, promote chooser, confirm, save)
package ui
