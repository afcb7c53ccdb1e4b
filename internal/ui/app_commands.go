package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"paneboard/internal/layout"
	"paneboard/internal/module"
	"paneboard/internal/profile"
)

// tickCmd schedules the next content update.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// saveProfileCmd validates descriptor against reg and stores it under name.
// Validation mounts a throwaway tree so nothing unparsable is ever saved.
func saveProfileCmd(store profile.Store, reg *module.Registry, name, descriptor string) tea.Cmd {
	return func() tea.Msg {
		if reg != nil {
			t, err := layout.Parse(descriptor, reg)
			if err != nil {
				return ProfileSavedMsg{Name: name, Err: fmt.Errorf("save %s: %w", name, err)}
			}
			t.Destroy()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Save(ctx, name, descriptor); err != nil {
			return ProfileSavedMsg{Name: name, Err: fmt.Errorf("save %s: %w", name, err)}
		}
		return ProfileSavedMsg{Name: profile.Normalize(name)}
	}
}
