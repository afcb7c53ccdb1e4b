package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"paneboard/internal/layout"
)

var (
	errNoFocus    = errors.New("no pane focused")
	errNoSplit    = errors.New("focused pane is not inside a split")
	errNoTabs     = errors.New("focused pane is not inside tabs")
	errNoStore    = errors.New("no profile store configured")
	errNoRegistry = errors.New("no module registry configured")
)

// handleAction applies the board actions bound in newKeybindRegistry and the
// results of modals. It reports false for messages it does not know.
func (a *AppModel) handleAction(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case FocusMsg:
		if msg.Delta < 0 {
			a.Focus.Prev()
		} else {
			a.Focus.Next()
		}

	case ToggleAuthoringMsg:
		a.endDrag()
		on := a.Mode != ModeAuthoring
		a.Tree.SetAuthoring(on)
		a.Mode = ModeRun
		if on {
			a.Mode = ModeAuthoring
		}
		a.apply(nil)

	case SplitMsg:
		bin, err := a.focusedBin()
		if err == nil {
			_, err = a.Tree.AddSplit(bin, msg.Orientation)
		}
		a.apply(err)

	case WrapTabsMsg:
		bin, err := a.focusedBin()
		if err == nil {
			_, err = a.Tree.AddTabs(bin)
		}
		a.apply(err)

	case ShowPromoteMsg:
		split, err := a.enclosingSplit()
		if err != nil {
			a.apply(err)
			break
		}
		first, second := a.Tree.Bins(split)
		modal := NewPromoteModal(split, a.describe(first), a.describe(second), a.sideOf(split, a.Focus.Current))
		a.pushOverlay(Overlay{View: modal, Dismiss: "esc"})

	case PromoteMsg:
		a.Overlays.Pop()
		a.apply(a.Tree.Promote(msg.Split, msg.Keep))

	case SwapMsg:
		a.applySplit(a.Tree.Swap)

	case CycleModeMsg:
		a.applySplit(a.Tree.CycleMode)

	case ToggleUnitMsg:
		a.applySplit(a.Tree.ToggleUnit)

	case ShowContentPickerMsg:
		bin, err := a.focusedBin()
		if err == nil && a.opts.Registry == nil {
			err = errNoRegistry
		}
		if err != nil {
			a.apply(err)
			break
		}
		modal := NewContentPickerModal(bin, a.opts.Registry.Names(), a.opts.Summaries, a.Tree.Module(a.Focus.Current))
		// The picker handles esc itself so it can cancel filtering first.
		a.pushOverlay(Overlay{View: modal})

	case SetContentMsg:
		a.Overlays.Pop()
		err := a.Tree.SetModule(msg.Bin, msg.Module)
		if err == nil {
			a.Focus.Current = a.Tree.Content(msg.Bin)
		}
		a.apply(err)

	case AddPageMsg:
		tabs, _, err := a.enclosingTabs()
		if err == nil {
			var idx int
			if idx, err = a.Tree.AddPage(tabs, a.opts.NewPage, ""); err == nil {
				a.focusPage(tabs, idx)
			}
		}
		a.apply(err)

	case DuplicatePageMsg:
		tabs, idx, err := a.enclosingTabs()
		if err == nil {
			if idx, err = a.Tree.DuplicatePage(tabs, idx); err == nil {
				a.focusPage(tabs, idx)
			}
		}
		a.apply(err)

	case ShowRemovePageMsg:
		tabs, idx, err := a.enclosingTabs()
		if err != nil {
			a.apply(err)
			break
		}
		remove := RemovePageMsg{Tabs: tabs, Index: idx}
		modal := NewRemovePageConfirmModal(a.Tree.PageLabel(tabs, idx), remove, len(a.Tree.Pages(tabs)))
		a.pushOverlay(Overlay{View: modal, Dismiss: "esc"})

	case RemovePageMsg:
		a.Overlays.Pop()
		a.apply(a.Tree.RemovePage(msg.Tabs, msg.Index))

	case MovePageMsg:
		tabs, idx, err := a.enclosingTabs()
		if err == nil {
			err = a.Tree.Reorder(tabs, idx, idx+msg.Delta)
		}
		a.apply(err)

	case CyclePageMsg:
		a.cyclePage(msg.Delta)

	case HideFocusedMsg:
		bin, err := a.focusedBin()
		if err == nil {
			err = a.Tree.Hide(bin, true)
		}
		a.apply(err)

	case ShowAllMsg:
		a.Tree.ShowAll()
		a.apply(nil)

	case ShowSaveProfileMsg:
		if a.opts.Store == nil {
			a.apply(errNoStore)
			break
		}
		a.pushOverlay(Overlay{View: NewSaveProfileModal(a.Profile), Dismiss: "esc"})
		return textinput.Blink, true

	case SaveProfileMsg:
		a.Overlays.Pop()
		descriptor, err := a.Tree.Serialize()
		if err != nil {
			a.apply(fmt.Errorf("save %s: %w", msg.Name, err))
			break
		}
		a.Status, a.StatusErr = "saving "+msg.Name+"…", false
		return saveProfileCmd(a.opts.Store, a.opts.Registry, msg.Name, descriptor), true

	default:
		return nil, false
	}
	return nil, true
}

func (a *AppModel) handleProfileSaved(msg ProfileSavedMsg) {
	if msg.Err != nil {
		a.Status, a.StatusErr = msg.Err.Error(), true
		a.logger.Warn("save profile", "profile", msg.Name, "err", msg.Err)
		return
	}
	a.Profile = msg.Name
	a.publish()
	a.Status, a.StatusErr = "saved "+msg.Name, false
	a.logger.Info("saved profile", "profile", msg.Name)
}

func (a *AppModel) applySplit(op func(layout.NodeID) error) {
	split, err := a.enclosingSplit()
	if err == nil {
		err = op(split)
	}
	a.apply(err)
}

func (a *AppModel) cyclePage(delta int) {
	tabs, idx, err := a.enclosingTabs()
	if err != nil {
		a.apply(err)
		return
	}
	sf, ok := a.Board.Strip(tabs)
	if !ok || len(sf.Pages) == 0 {
		return
	}
	pos := 0
	for i, p := range sf.Pages {
		if p == idx {
			pos = i
		}
	}
	n := len(sf.Pages)
	next := sf.Pages[((pos+delta)%n+n)%n]
	if err := a.Tree.SelectPage(tabs, next); err != nil {
		a.apply(err)
		return
	}
	a.focusPage(tabs, next)
	a.apply(nil)
}

// focusPage moves focus to the leaf of page index when the page holds one.
func (a *AppModel) focusPage(tabs layout.NodeID, index int) {
	pages := a.Tree.Pages(tabs)
	if index < 0 || index >= len(pages) {
		return
	}
	if c := a.Tree.Content(pages[index].Bin); a.Tree.Kind(c) == layout.KindLeaf {
		a.Focus.Current = c
	}
}

func (a *AppModel) focusedBin() (layout.NodeID, error) {
	bin := a.Tree.BinOf(a.Focus.Current)
	if bin == 0 {
		return 0, errNoFocus
	}
	return bin, nil
}

func (a *AppModel) enclosingSplit() (layout.NodeID, error) {
	if a.Focus.Current == 0 {
		return 0, errNoFocus
	}
	split := a.Tree.EnclosingSplit(a.Focus.Current)
	if split == 0 {
		return 0, errNoSplit
	}
	return split, nil
}

// enclosingTabs returns the nearest Tabs above the focused leaf and its
// selected page, which is the page holding the leaf.
func (a *AppModel) enclosingTabs() (layout.NodeID, int, error) {
	if a.Focus.Current == 0 {
		return 0, 0, errNoFocus
	}
	tabs := a.Tree.EnclosingTabs(a.Focus.Current)
	if tabs == 0 {
		return 0, 0, errNoTabs
	}
	return tabs, a.Tree.Active(tabs), nil
}

// sideOf reports which side of split contains id.
func (a *AppModel) sideOf(split, id layout.NodeID) layout.Side {
	for id != 0 && a.Tree.Parent(id) != split {
		id = a.Tree.Parent(id)
	}
	if first, _ := a.Tree.Bins(split); id == first {
		return layout.First
	}
	return layout.Second
}

func (a *AppModel) describe(bin layout.NodeID) string {
	c := a.Tree.Content(bin)
	switch k := a.Tree.Kind(c); k {
	case layout.KindLeaf:
		return a.Tree.Module(c)
	case layout.KindTabs:
		return fmt.Sprintf("tabs (%d pages)", len(a.Tree.Pages(c)))
	default:
		return k.String()
	}
}
