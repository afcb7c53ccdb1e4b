package ui

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"paneboard/internal/layout"
	"paneboard/internal/metrics"
	"paneboard/internal/module"
	"paneboard/internal/profile"
)

// DefaultTick is the content update interval when Options.Tick is unset.
const DefaultTick = time.Second

// DefaultNewPage is the descriptor of pages added with SPC t n.
const DefaultNewPage = "(dummy:)"

// Options are the collaborators of the board host.
type Options struct {
	// Registry is used to validate descriptors before saving.
	Registry *module.Registry
	// Store receives saved profiles. Nil disables SPC w.
	Store profile.Store
	// Status receives a snapshot after every change. May be nil.
	Status *metrics.Board
	Logger *slog.Logger
	// Profile is the name the board was loaded from, offered when saving.
	Profile string
	Tick    time.Duration
	// Summaries describe modules in the content picker.
	Summaries map[string]string
	// NewPage is the descriptor of pages added with SPC t n.
	NewPage string
}

// AppModel is the root model: it owns the mounted layout and routes keys,
// mouse events and ticks to it.
type AppModel struct {
	Mode       AppMode
	Tree       *layout.Tree
	Board      *Board
	Focus      FocusManager
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Profile    string

	// Status is the message on the status line; StatusErr marks it as an error.
	Status    string
	StatusErr bool

	opts     Options
	logger   *slog.Logger
	width    int
	height   int
	help     string
	dragging layout.NodeID
}

var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the board host for a mounted tree.
func NewAppModel(tree *layout.Tree, opts Options) *AppModel {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.NewPage == "" {
		opts.NewPage = DefaultNewPage
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	mode := ModeRun
	if tree.Authoring() {
		mode = ModeAuthoring
	}
	a := &AppModel{
		Mode:       mode,
		Tree:       tree,
		Board:      NewBoard(tree),
		KeyHandler: NewKeyHandler(newKeybindRegistry()),
		Profile:    opts.Profile,
		opts:       opts,
		logger:     logger,
	}
	a.Focus.OnChange = func(from, to layout.NodeID) {
		a.logger.Debug("focus", "from", from, "to", to)
	}
	a.relayout()
	a.publish()
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

func newKeybindRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	msg := func(m tea.Msg) tea.Cmd { return func() tea.Msg { return m } }
	authoring := []AppMode{ModeAuthoring}

	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("tab", msg(FocusMsg{Delta: 1}), "Next pane")
	reg.BindWithDesc("shift+tab", msg(FocusMsg{Delta: -1}), "Previous pane")
	reg.BindWithDesc("[", msg(CyclePageMsg{Delta: -1}), "Previous page")
	reg.BindWithDesc("]", msg(CyclePageMsg{Delta: 1}), "Next page")
	reg.BindWithDesc("SPC e", msg(ToggleAuthoringMsg{}), "Toggle authoring")
	reg.BindWithDesc("SPC w", msg(ShowSaveProfileMsg{}), "Save profile")

	reg.BindWithDescForMode("SPC s h", msg(SplitMsg{Orientation: layout.Horizontal}), "Split horizontally", authoring)
	reg.BindWithDescForMode("SPC s v", msg(SplitMsg{Orientation: layout.Vertical}), "Split vertically", authoring)
	reg.BindWithDescForMode("SPC s t", msg(WrapTabsMsg{}), "Wrap in tabs", authoring)
	reg.BindWithDescForMode("SPC s x", msg(ShowPromoteMsg{}), "Remove split", authoring)
	reg.BindWithDescForMode("SPC s w", msg(SwapMsg{}), "Swap sides", authoring)
	reg.BindWithDescForMode("SPC s m", msg(CycleModeMsg{}), "Cycle mode", authoring)
	reg.BindWithDescForMode("SPC s u", msg(ToggleUnitMsg{}), "Toggle unit", authoring)
	reg.BindWithDescForMode("SPC c", msg(ShowContentPickerMsg{}), "Content", authoring)
	reg.BindWithDescForMode("SPC t n", msg(AddPageMsg{}), "New page", authoring)
	reg.BindWithDescForMode("SPC t d", msg(DuplicatePageMsg{}), "Duplicate page", authoring)
	reg.BindWithDescForMode("SPC t x", msg(ShowRemovePageMsg{}), "Remove page", authoring)
	reg.BindWithDescForMode("SPC t h", msg(MovePageMsg{Delta: -1}), "Move page left", authoring)
	reg.BindWithDescForMode("SPC t l", msg(MovePageMsg{Delta: 1}), "Move page right", authoring)
	reg.BindWithDescForMode("SPC z", msg(HideFocusedMsg{}), "Hide pane", authoring)
	reg.BindWithDescForMode("SPC u", msg(ShowAllMsg{}), "Show all", authoring)
	return reg
}

// Init implements tea.Model. The first tick fires immediately so content
// such as cmd panes starts without waiting a full interval.
func (a *appModelAdapter) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.relayout()
	return a, cmd
}

func (a *AppModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return nil
	case tickMsg:
		a.Tree.Update()
		a.publish()
		return tickCmd(a.opts.Tick)
	case DismissModalMsg:
		a.Overlays.Pop()
		return nil
	case tea.MouseMsg:
		if a.Overlays.Len() > 0 {
			a.endDrag()
			return nil
		}
		a.handleMouse(msg)
		return nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	case ProfileSavedMsg:
		a.handleProfileSaved(msg)
		return nil
	}
	if cmd, handled := a.handleAction(msg); handled {
		return cmd
	}
	// Anything else (cursor blinks and the like) belongs to the top modal.
	cmd, _ := a.Overlays.UpdateTop(msg)
	return cmd
}

func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(msg.String()) {
			a.Overlays.Pop()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
		return cmd
	}
	if a.Mode == ModeRun {
		a.forwardKey(msg)
	}
	return nil
}

// forwardKey writes an unbound key to the focused pane when it accepts input.
func (a *AppModel) forwardKey(msg tea.KeyMsg) {
	w, ok := a.Tree.Instance(a.Focus.Current).(io.Writer)
	if !ok {
		return
	}
	b := keyToPTYBytes(msg)
	if len(b) == 0 {
		return
	}
	if _, err := w.Write(b); err != nil {
		a.logger.Debug("forward key", "leaf", a.Focus.Current, "err", err)
	}
}

// handleMouse drives drag-resize and click selection. Any sign
// that the pointer was lost mid-drag (a press, or motion with no button held)
// commits the drag as if it had been released.
func (a *AppModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		a.endDrag()
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if a.Mode == ModeAuthoring {
			if split, ok := a.Board.BoundaryAt(msg.X, msg.Y); ok {
				if err := a.Tree.BeginDrag(split, msg.X, msg.Y); err == nil {
					a.dragging = split
				}
				return
			}
		}
		if tabs, page, ok := a.Board.TabAt(msg.X, msg.Y); ok {
			a.apply(a.Tree.SelectPage(tabs, page))
			return
		}
		if leaf, ok := a.Board.LeafAt(msg.X, msg.Y); ok {
			a.Focus.SetFocus(leaf)
		}
	case tea.MouseActionMotion:
		if a.dragging == 0 {
			return
		}
		if msg.Button == tea.MouseButtonNone {
			a.endDrag()
			return
		}
		if _, err := a.Tree.DragTo(a.dragging, msg.X, msg.Y); err != nil {
			a.endDrag()
		}
	case tea.MouseActionRelease:
		a.endDrag()
	}
}

// endDrag commits the drag in progress, if any.
func (a *AppModel) endDrag() {
	if a.dragging == 0 {
		return
	}
	split := a.dragging
	a.dragging = 0
	a.apply(a.Tree.EndDrag(split))
}

// pushOverlay opens a modal. The modal takes the pointer, so a drag in
// progress is committed first.
func (a *AppModel) pushOverlay(o Overlay) {
	a.endDrag()
	a.Overlays.Push(o)
}

// apply reports the outcome of a mutation on the status line and publishes
// the new state on success.
func (a *AppModel) apply(err error) {
	if err != nil {
		a.Status, a.StatusErr = err.Error(), true
		a.logger.Debug("mutation failed", "err", err)
		return
	}
	a.Status, a.StatusErr = "", false
	a.publish()
}

func (a *AppModel) publish() {
	if a.opts.Status != nil {
		a.opts.Status.Publish(a.Tree, a.Profile)
	}
}

// relayout recomputes the board frame for the current window and leader
// state, and keeps focus on a visible leaf.
func (a *AppModel) relayout() {
	a.help = ""
	if a.KeyHandler.LeaderWaiting {
		a.help = RenderKeybindHelp(a.KeyHandler, a.Mode, a.width)
	}
	h := a.height - 1
	if a.help != "" {
		h -= lipgloss.Height(a.help)
	}
	a.Board.Relayout(layout.Rect{W: max(a.width, 0), H: max(h, 0)})
	a.Focus.Sync(a.Board.Frame.Leaves)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	main := a.Board.Render(a.Focus.Current)
	if top, ok := a.Overlays.Peek(); ok {
		main = lipgloss.Place(a.Board.Area.W, a.Board.Area.H, lipgloss.Center, lipgloss.Center, top.View.View())
	}
	parts := []string{main}
	if a.help != "" {
		parts = append(parts, a.help)
	}
	parts = append(parts, a.statusLine())
	return lipgloss.JoinVertical(lipgloss.Left, nonEmpty(parts...)...)
}

func (a *AppModel) statusLine() string {
	line := Styles.StatusMode.Render(a.Mode.String())
	if a.Profile != "" {
		line += " " + a.Profile
	}
	if a.Status != "" {
		style := Styles.Normal
		if a.StatusErr {
			style = Styles.Error
		}
		line += "  " + style.Render(a.Status)
	} else if a.KeyHandler.Sequence() == "" {
		line += "  " + Styles.Muted.Render("SPC: commands")
	}
	return Styles.StatusBar.Width(a.width).MaxWidth(a.width).MaxHeight(1).Render(line)
}
