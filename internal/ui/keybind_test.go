package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("space q", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("q", ModeRun) == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("SPC q", ModeRun) == nil {
		t.Error("expected space q to normalize to SPC q")
	}
	if reg.Lookup("unknown", ModeRun) != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeybindRegistry_ModeFilter(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDescForMode("SPC s h", tea.Quit, "Split horizontally", []AppMode{ModeAuthoring})

	if reg.Lookup("SPC s h", ModeRun) != nil {
		t.Error("authoring binding should not resolve in Run mode")
	}
	if reg.Lookup("SPC s h", ModeAuthoring) == nil {
		t.Error("authoring binding should resolve in Authoring mode")
	}
	if reg.HasPrefix("SPC s", ModeRun) {
		t.Error("SPC s should not be a prefix in Run mode")
	}
	if !reg.HasPrefix("SPC s", ModeAuthoring) {
		t.Error("SPC s should be a prefix in Authoring mode")
	}
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := newKeybindRegistry()

	top := reg.LeaderHints("", ModeAuthoring)
	if top["s"] != "Split" || top["t"] != "Tabs" {
		t.Errorf("submenus should show group labels, got s=%q t=%q", top["s"], top["t"])
	}
	if top["e"] != "Toggle authoring" {
		t.Errorf("e = %q", top["e"])
	}

	run := reg.LeaderHints("", ModeRun)
	if _, ok := run["s"]; ok {
		t.Error("split submenu should be hidden in Run mode")
	}
	if _, ok := run["w"]; !ok {
		t.Error("save should be available in Run mode")
	}

	split := reg.LeaderHints("SPC s", ModeAuthoring)
	for k, want := range map[string]string{"h": "Split horizontally", "x": "Remove split", "u": "Toggle unit"} {
		if split[k] != want {
			t.Errorf("SPC s %s = %q, want %q", k, split[k], want)
		}
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC x", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	// Bubble Tea reports space as " ".
	consumed, cmd := h.Handle(keyMsg(" "), ModeRun)
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after space")
	}

	consumed, cmd = h.Handle(keyMsg("x"), ModeRun)
	if !consumed {
		t.Errorf("x: expected consumed")
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd == nil {
		t.Fatal("expected a command for SPC x")
	}
	cmd()
	if !executed {
		t.Error("expected command to execute")
	}
}

func TestKeyHandler_MultiKeySequence(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC s h", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), ModeRun)
	consumed, cmd := h.Handle(keyMsg("s"), ModeRun)
	if !consumed || cmd != nil {
		t.Errorf("s: consumed=%v cmd=%v", consumed, cmd)
	}
	if got := h.Sequence(); got != "SPC s" {
		t.Errorf("Sequence = %q, want SPC s", got)
	}
	_, cmd = h.Handle(keyMsg("h"), ModeRun)
	if cmd == nil {
		t.Error("expected SPC s h to resolve")
	}
	if h.Sequence() != "" {
		t.Error("buffer should be cleared after a match")
	}
}

func TestKeyHandler_UnknownSequenceResets(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC s h", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), ModeRun)
	consumed, cmd := h.Handle(keyMsg("k"), ModeRun)
	if !consumed || cmd != nil {
		t.Errorf("k: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("an unknown sequence should leave leader mode")
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), ModeRun)
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"), ModeRun)
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}

	consumed, _ = h.Handle(keyMsg("esc"), ModeRun)
	if consumed {
		t.Error("esc outside leader mode should fall through")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("q"), ModeRun)
	if !consumed || cmd == nil {
		t.Errorf("q: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"), ModeRun)
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	h := NewKeyHandler(newKeybindRegistry())
	if RenderKeybindHelp(nil, ModeRun, 80) != "" {
		t.Error("nil handler should render nothing")
	}
	h.Handle(keyMsg(" "), ModeAuthoring)
	h.Handle(keyMsg("s"), ModeAuthoring)
	out := RenderKeybindHelp(h, ModeAuthoring, 200)
	for _, want := range []string{"SPC s", "Swap sides", "esc"} {
		if !strings.Contains(out, want) {
			t.Errorf("help should mention %q:\n%s", want, out)
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
