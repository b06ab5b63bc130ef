package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/napolitain/solver-wos/internal/calculator"
	"github.com/napolitain/solver-wos/internal/models"
)

func newModel() Model {
	return New(calculator.New(nil, nil, calculator.Options{}, nil))
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab  = tea.KeyMsg{Type: tea.KeyShiftTab}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	space     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func focus(m Model, f Field) Model {
	for m.Focused() != f {
		m = press(m, tab)
	}
	return m
}

func TestNewComputesSample(t *testing.T) {
	m := newModel()

	r := m.Result()
	if r == nil {
		t.Fatalf("No result: %v", m.Err())
	}
	if r.TotalCost() != 2030 {
		t.Errorf("Total cost %d, want 2030", r.TotalCost())
	}
	if !strings.Contains(m.View(), "2,030") {
		t.Error("View does not show the grouped total")
	}
}

func TestFocusWraps(t *testing.T) {
	m := newModel()

	m = press(m, shiftTab)
	if m.Focused() != DoubleTime {
		t.Errorf("Focus %d, want last field", m.Focused())
	}
	m = press(m, tab)
	if m.Focused() != BaseCost {
		t.Errorf("Focus %d, want first field", m.Focused())
	}
}

func TestEditingRecomputes(t *testing.T) {
	m := newModel()

	// "100" -> "10" -> "1000"
	m = press(m, backspace, runes("0"), runes("0"))
	if got := m.Result().TotalCost(); got != 20303 {
		t.Errorf("Total cost %d, want 20303", got)
	}
}

func TestTogglesApplyBonuses(t *testing.T) {
	m := focus(newModel(), President)
	m = press(m, space)

	r := m.Result()
	if r.Bonus.SpeedPercent != 10 {
		t.Errorf("Speed %v, want 10", r.Bonus.SpeedPercent)
	}
	if !strings.Contains(m.View(), "[x]") {
		t.Error("View does not show the toggle as set")
	}

	m = press(m, space)
	if m.Result().Bonus.SpeedPercent != 0 {
		t.Error("Second space should clear the toggle")
	}
}

func TestMalformedNumbersBecomeNotes(t *testing.T) {
	m := focus(newModel(), BaseSpeed)
	m = press(m, runes("x"))

	if m.Result() == nil {
		t.Fatalf("Malformed speed should fall back to zero, got %v", m.Err())
	}
	if m.Result().Bonus.SpeedPercent != 0 {
		t.Errorf("Speed %v, want 0", m.Result().Bonus.SpeedPercent)
	}
	if !strings.Contains(m.View(), "not a number") {
		t.Error("View does not list the malformed field")
	}
}

func TestInvalidRangeShowsError(t *testing.T) {
	m := focus(newModel(), ToLevel)
	m = press(m, backspace, backspace)

	if !errors.Is(m.Err(), models.ErrInvalidRange) {
		t.Fatalf("Err %v, want ErrInvalidRange", m.Err())
	}
	if m.Result() != nil {
		t.Error("Result should be nil while the range is invalid")
	}
	if !strings.Contains(m.View(), "invalid level range") {
		t.Error("View does not show the range error")
	}
}

func TestTargetLevelIsBounded(t *testing.T) {
	m := focus(newModel(), ToLevel)
	m = press(m, runes("000000"))

	if !errors.Is(m.Err(), models.ErrInvalidRange) {
		t.Fatalf("Err %v, want ErrInvalidRange", m.Err())
	}
	if m.Result() != nil {
		t.Error("Result should be nil past the maximum level")
	}

	m = press(m, backspace, backspace, backspace, backspace, backspace, backspace)
	if m.Err() != nil {
		t.Errorf("Unexpected error %v after restoring level 10", m.Err())
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := newModel().Update(k)
		if cmd == nil {
			t.Fatalf("%s should quit", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not return tea.Quit", k.String())
		}
	}
}
