package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}

	return model, cmd
}

func TestNewModel(t *testing.T) {
	model := NewModel("voice.wav", nil)

	if model.percent != 0 {
		t.Errorf("expected percent 0 initially, got %d", model.percent)
	}

	if model.state != stateConverting {
		t.Errorf("expected converting state initially, got %d", model.state)
	}

	if !strings.Contains(model.View(), "voice.wav") {
		t.Errorf("expected the file name in the view")
	}
}

func TestProgressMsg(t *testing.T) {
	model := NewModel("a.wav", nil)

	model, _ = update(t, model, ProgressMsg(40))
	if model.percent != 40 {
		t.Fatalf("expected percent 40, got %d", model.percent)
	}

	// stale and out of range values are ignored
	model, _ = update(t, model, ProgressMsg(10))
	model, _ = update(t, model, ProgressMsg(140))

	if model.percent != 40 {
		t.Fatalf("expected percent to stay at 40, got %d", model.percent)
	}

	if !strings.Contains(model.View(), " 40%") {
		t.Errorf("expected the percentage in the view:\n%s", model.View())
	}
}

func TestDoneMsg(t *testing.T) {
	model := NewModel("a.wav", nil)

	model, cmd := update(t, model, DoneMsg{OutPath: "a.ulaw", Bytes: 8044})
	if cmd == nil {
		t.Fatal("expected a quit command after completion")
	}

	if model.state != stateDone || model.percent != 100 {
		t.Fatalf("unexpected state %d at %d%%", model.state, model.percent)
	}

	if view := model.View(); !strings.Contains(view, "Conversion complete!") || !strings.Contains(view, "a.ulaw") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestErrMsg(t *testing.T) {
	model := NewModel("a.wav", nil)
	model, _ = update(t, model, ProgressMsg(70))

	model, cmd := update(t, model, ErrMsg{Err: errors.New("data chunk not found")})
	if cmd == nil {
		t.Fatal("expected a quit command after a failure")
	}

	if model.percent != 0 || model.Err() == nil {
		t.Fatalf("expected progress reset and error kept, got %d%% err=%v", model.percent, model.Err())
	}

	if !strings.Contains(model.View(), "Error: data chunk not found") {
		t.Errorf("unexpected view:\n%s", model.View())
	}
}

func TestQuitCancels(t *testing.T) {
	cancelled := false
	model := NewModel("a.wav", func() { cancelled = true })

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}

	if !cancelled || model.state != stateCancelled {
		t.Fatalf("expected the conversion to be cancelled")
	}
}

func TestQuitAfterDoneDoesNotCancel(t *testing.T) {
	cancelled := false
	model := NewModel("a.wav", func() { cancelled = true })

	model, _ = update(t, model, DoneMsg{OutPath: "a.ulaw"})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if cancelled || model.state != stateDone {
		t.Fatalf("quitting a finished conversion must not cancel it")
	}
}

func TestReset(t *testing.T) {
	model := NewModel("a.wav", nil)
	model, _ = update(t, model, ProgressMsg(55))

	model = model.Reset()
	if model.percent != 0 || model.fileName != "" || model.Err() != nil {
		t.Fatalf("Reset left state behind: %+v", model)
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value, width int
		want         string
	}{
		{0, 4, "░░░░"},
		{50, 4, "██░░"},
		{99, 4, "███░"},
		{100, 2, "██"},
		{150, 3, "███"},
		{-10, 3, "░░░"},
	}

	for _, tt := range tests {
		if got := renderBar(tt.value, 100, tt.width); got != tt.want {
			t.Fatalf("renderBar(%d, 100, %d)=%q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}
