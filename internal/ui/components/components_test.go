package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NumberKeyPicks(t *testing.T) {
	mc := NewMultiChoice("Symbol for sodium?", []string{"S", "Na", "So"})
	mc, _ = mc.Update(press('2'))
	got, ok := mc.Choice()
	if !ok || got != "Na" {
		t.Errorf("Choice = %q, %v", got, ok)
	}
}

func TestMultiChoice_OutOfRangeDigitIgnored(t *testing.T) {
	mc := NewMultiChoice("q", []string{"a", "b"})
	mc, _ = mc.Update(press('5'))
	if mc.Chosen() {
		t.Error("digit beyond option count should not pick")
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice("q", []string{"a", "b", "c"})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown}) // clamps at last
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got, _ := mc.Choice(); got != "c" {
		t.Errorf("Choice = %q, want c", got)
	}

	// Further keys are ignored once chosen.
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if mc.Selected != 2 {
		t.Errorf("Selected moved after choice: %d", mc.Selected)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("Enter did not run the action")
	}
}

func TestBarChart(t *testing.T) {
	out := BarChart([]float64{0, 50, 100}, 20, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if !strings.Contains(lines[0], "100") {
		t.Errorf("top line missing 100 label: %q", lines[0])
	}
}

func TestBarChart_KeepsMostRecent(t *testing.T) {
	values := make([]float64, 50)
	values[49] = 100
	out := BarChart(values, 10, 2)
	top := strings.Split(out, "\n")[0]
	if !strings.Contains(top, "█") {
		t.Errorf("latest value not drawn: %q", top)
	}
}

func TestCell(t *testing.T) {
	if got := cell(100, 3, 4); got != '█' {
		t.Errorf("full bar top = %q", got)
	}
	if got := cell(0, 0, 4); got != ' ' {
		t.Errorf("zero bar bottom = %q", got)
	}
	if got := cell(50, 1, 4); got != '█' {
		t.Errorf("half bar row 1 = %q", got)
	}
	if got := cell(50, 2, 4); got != ' ' {
		t.Errorf("half bar row 2 = %q", got)
	}
}
