package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/galdraw/pkg/lfsr"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m EditorModel, keys ...string) EditorModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(EditorModel)
	}
	return m
}

func newTestRegister(t *testing.T, taps, values string) lfsr.Register {
	t.Helper()
	reg, err := lfsr.NewRegister(taps, values)
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestEditorCursor(t *testing.T) {
	m := NewEditorModel(newTestRegister(t, "1001", "1111"), nil)

	m = press(m, "right")
	if m.Cursor != 0 {
		t.Errorf("cursor moved past cell 0: %d", m.Cursor)
	}
	m = press(m, "left", "left", "left", "left", "left")
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3 (highest cell)", m.Cursor)
	}
	m = press(m, "right")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
}

func TestEditorToggle(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantTaps   string
		wantValues string
		wantFB     uint8
	}{
		{"tap cell 0", []string{"t"}, "1000", "1111", 1},
		{"value cell 3", []string{"h", "h", "h", "v"}, "1001", "0111", 1},
		{"space on taps row", []string{"l", "h", " "}, "1011", "1111", 1},
		{"space on values row", []string{"down", " "}, "1001", "1110", 1},
		{"clear both contributors", []string{"v", "left", "left", "left", "v"}, "1001", "0110", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := newTestRegister(t, "1001", "1111")
			m := press(NewEditorModel(orig, nil), tt.keys...)

			if got := m.Register.Taps.String(); got != tt.wantTaps {
				t.Errorf("taps = %s, want %s", got, tt.wantTaps)
			}
			if got := m.Register.Values.String(); got != tt.wantValues {
				t.Errorf("values = %s, want %s", got, tt.wantValues)
			}
			if got := m.Register.Feedback(); got != tt.wantFB {
				t.Errorf("feedback = %d, want %d", got, tt.wantFB)
			}
			if orig.Taps.String() != "1001" || orig.Values.String() != "1111" {
				t.Error("editor mutated the caller's register")
			}
		})
	}
}

func TestEditorQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := NewEditorModel(newTestRegister(t, "11", "01"), nil)
		var msg tea.KeyMsg
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = key(k)
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestEditorRender(t *testing.T) {
	var got lfsr.Register
	render := func(reg lfsr.Register) ([]string, error) {
		got = reg
		return []string{"lfsr.pdf"}, nil
	}
	m := press(NewEditorModel(newTestRegister(t, "1001", "1111"), render), "t")

	next, cmd := m.Update(key("enter"))
	m = next.(EditorModel)
	if !m.Rendering || cmd == nil {
		t.Fatal("enter should start a render")
	}
	if _, again := m.Update(key("enter")); again != nil {
		t.Error("enter while rendering should be ignored")
	}

	next, _ = m.Update(cmd())
	m = next.(EditorModel)
	if got.Taps.String() != "1000" {
		t.Errorf("rendered taps = %s, want the edited 1000", got.Taps)
	}
	if m.Rendering || len(m.Files) != 1 || !strings.Contains(m.View(), "lfsr.pdf") {
		t.Errorf("render result not shown: %+v", m)
	}
}

func TestEditorRenderError(t *testing.T) {
	m := NewEditorModel(newTestRegister(t, "1", "1"), func(lfsr.Register) ([]string, error) {
		return nil, errors.New("pdflatex not found")
	})
	next, cmd := m.Update(key("enter"))
	next, _ = next.(EditorModel).Update(cmd())
	m = next.(EditorModel)
	if m.Err == nil || !strings.Contains(m.View(), "pdflatex not found") {
		t.Errorf("render error not shown:\n%s", m.View())
	}
}

func TestEditorView(t *testing.T) {
	m := NewEditorModel(newTestRegister(t, "1001", "1101"), nil)
	view := m.View()
	for _, want := range []string{"x3", "x0", "taps", "values", "x^4 + x^3 + 1", "feedback"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
