package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"paneboard/internal/layout"
)

// ContentPickerModal lists the registered content modules for a pane.
type ContentPickerModal struct {
	list list.Model
	bin  layout.NodeID
}

type moduleItem struct {
	name    string
	summary string
}

func (i moduleItem) FilterValue() string { return i.name }
func (i moduleItem) Title() string       { return i.name }
func (i moduleItem) Description() string { return i.summary }

var _ View = (*ContentPickerModal)(nil)

// NewContentPickerModal creates a picker that replaces the content of bin.
// summaries may be nil; current is preselected when present.
func NewContentPickerModal(bin layout.NodeID, names []string, summaries map[string]string, current string) *ContentPickerModal {
	items := make([]list.Item, len(names))
	selected := 0
	for i, n := range names {
		items[i] = moduleItem{name: n, summary: summaries[n]}
		if n == current {
			selected = i
		}
	}
	l := list.New(items, NewCompactListDelegate(summaries != nil), 48, 14)
	l.Title = "Content"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	l.Select(selected)
	return &ContentPickerModal{list: l, bin: bin}
}

// Selected returns the highlighted module name.
func (m *ContentPickerModal) Selected() string {
	if sel, ok := m.list.SelectedItem().(moduleItem); ok {
		return sel.name
	}
	return ""
}

// Init implements View.
func (m *ContentPickerModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ContentPickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if name := m.Selected(); name != "" {
				bin := m.bin
				return m, func() tea.Msg { return SetContentMsg{Bin: bin, Module: name} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *ContentPickerModal) View() string {
	return Styles.BoxCompact.Render(m.list.View() + "\n" + Styles.Hint.Render("Enter: select  /: filter  Esc: cancel"))
}
