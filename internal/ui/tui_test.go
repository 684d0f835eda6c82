package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/daylog/internal/todo"
)

const sampleLog = `[2024-03-07]
- task A

Done
- task 4

[2024-03-06]
Section 1
- task 1
`

var sampleToday = civil.Date{Year: 2024, Month: time.March, Day: 7}

func newSampleModel(t *testing.T, contents string) *tuiModel {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.txt")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	m := newTUIModel(path, todo.FixedClock(sampleToday), 0)
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("Init: expected no tick with refresh disabled")
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func press(m *tuiModel, key string) {
	switch key {
	case "left":
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	case "right":
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	default:
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

func TestTUIShowsLatestDay(t *testing.T) {
	m := newSampleModel(t, sampleLog)

	view := m.View()
	for _, want := range []string{"2024-03-07", "(1/2)", "- task A", "Done", "- task 4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "task 1") {
		t.Errorf("view shows an older day:\n%s", view)
	}
}

func TestTUINavigation(t *testing.T) {
	m := newSampleModel(t, sampleLog)

	press(m, "h")
	if m.index != 1 {
		t.Fatalf("after h: index = %d, want 1", m.index)
	}
	if view := m.View(); !strings.Contains(view, "Section 1") || !strings.Contains(view, "2024-03-06") {
		t.Errorf("older day not shown:\n%s", view)
	}

	press(m, "left")
	if m.index != 1 {
		t.Errorf("moving past the oldest day: index = %d, want 1", m.index)
	}

	press(m, "right")
	if m.index != 0 {
		t.Errorf("after right: index = %d, want 0", m.index)
	}
	press(m, "l")
	if m.index != 0 {
		t.Errorf("moving past the latest day: index = %d, want 0", m.index)
	}
}

func TestTUIRefreshKeepsSelection(t *testing.T) {
	m := newSampleModel(t, sampleLog)
	press(m, "h")

	updated := "[2024-03-07]\n- task B\n\n" + strings.TrimPrefix(sampleLog, "[2024-03-07]\n")
	if err := os.WriteFile(m.todoPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	press(m, "r")

	if m.index != 1 {
		t.Errorf("selection lost after reload: index = %d, want 1", m.index)
	}
	press(m, "l")
	if view := m.View(); !strings.Contains(view, "task B") {
		t.Errorf("reload did not pick up new task:\n%s", view)
	}
}

func TestTUILoadError(t *testing.T) {
	m := newSampleModel(t, "[2024-03-08]\n- from the future\n")

	if m.loadErr == nil {
		t.Fatal("expected clock skew error")
	}
	if view := m.View(); !strings.Contains(view, "Error loading todo file") {
		t.Errorf("error not shown:\n%s", view)
	}
}

func TestTUIEmptyLog(t *testing.T) {
	m := newSampleModel(t, "")
	if view := m.View(); !strings.Contains(view, "No days yet") {
		t.Errorf("empty log message not shown:\n%s", view)
	}
}

func TestTUIHelpAndQuit(t *testing.T) {
	m := newSampleModel(t, sampleLog)

	press(m, "?")
	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("help not shown:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q: expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q: expected tea.QuitMsg")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer reported as TTY")
	}
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("regular file reported as TTY")
	}
}
