package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m menuModel, keys ...string) (menuModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(menuModel)
	}
	return m, cmd
}

func TestMenuNavigation(t *testing.T) {
	m := newMenuModel()
	if m.cursor != 0 || m.selected != -1 {
		t.Fatalf("fresh menu: cursor=%d selected=%d", m.cursor, m.selected)
	}

	m, _ = update(t, m, "down", "j")
	if m.cursor != 2 {
		t.Errorf("cursor = %d after two moves down, want 2", m.cursor)
	}

	m, _ = update(t, m, "up", "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d after two moves up, want 0", m.cursor)
	}

	// The cursor stays inside the list.
	m, _ = update(t, m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, must not move above the first item", m.cursor)
	}

	for range m.items {
		m, _ = update(t, m, "down")
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, must not move past the last item", m.cursor)
	}
}

func TestMenuSelect(t *testing.T) {
	m, cmd := update(t, newMenuModel(), "down", "enter")
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}
	if cmd == nil {
		t.Error("expected quit command after enter")
	}
}

func TestMenuQuitWithoutSelection(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m, cmd := update(t, newMenuModel(), "down", key)
		if m.selected != -1 {
			t.Errorf("%s: selected = %d, want -1", key, m.selected)
		}
		if cmd == nil {
			t.Errorf("%s: expected quit command", key)
		}
	}
}

func TestMenuView(t *testing.T) {
	view := newMenuModel().View()

	for _, want := range []string{"Merge images", "Merge text files", "History", "enter select"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenuItemsHaveCommands(t *testing.T) {
	for _, item := range newMenuModel().items {
		if !strings.HasPrefix(item.command, "filemerge ") {
			t.Errorf("%s: command %q does not invoke filemerge", item.title, item.command)
		}
	}
}
