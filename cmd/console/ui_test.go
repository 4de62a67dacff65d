package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/animus-mundi/pkg/conditionals"
	"github.com/jwebster45206/animus-mundi/pkg/content"
	"github.com/jwebster45206/animus-mundi/pkg/effects"
	"github.com/jwebster45206/animus-mundi/pkg/engine"
	"github.com/jwebster45206/animus-mundi/pkg/save"
	"github.com/jwebster45206/animus-mundi/pkg/storage"
)

func testEngine() *engine.Engine {
	c := content.New()
	c.Nodes["intro"] = content.Node{
		ID:   "intro",
		Text: "Rain on the shrine roof.",
		Choices: []content.Choice{
			{
				Label: "Speak a binding vow",
				Next:  "vow",
				Effects: []effects.Effect{
					effects.SetFlag("knows_crude_fox_seal", true),
					effects.AddItem("fox_charm", 1),
				},
			},
			{
				Label:    "Pay the ferryman",
				Next:     "intro",
				Requires: []conditionals.Condition{conditionals.RequireObols(5)},
			},
		},
	}
	c.Nodes["vow"] = content.Node{ID: "vow", Text: "The fox listens.", Choices: []content.Choice{{Label: "Return", Next: "intro"}}}
	c.Items["fox_charm"] = content.Item{ID: "fox_charm", Name: "Fox Charm"}
	c.Recipes["crude_fox_seal"] = content.Recipe{
		ID:       "crude_fox_seal",
		Name:     "Crude Fox Seal",
		Requires: []effects.ItemQty{{ItemID: "fox_charm", Qty: 1}, {ItemID: "dragons_blood_ink", Qty: 1}},
		Produces: []effects.ItemQty{{ItemID: "crude_seal", Qty: 1}},
	}

	return engine.New(c, save.NewAdapter(storage.NewMockStorage(), nil))
}

func sized(t *testing.T, e *engine.Engine) ConsoleUI {
	t.Helper()
	m, _ := NewConsoleUI(e).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(ConsoleUI)
}

func press(m ConsoleUI, msg tea.KeyMsg) (ConsoleUI, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(ConsoleUI), cmd
}

func TestConsoleUI_ChooseProducesToasts(t *testing.T) {
	e := testEngine()
	m := sized(t, e)

	if !strings.Contains(m.View(), "Speak a binding vow") {
		t.Fatalf("Expected intro choices in view")
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("Expected toast expiry commands")
	}
	if e.State().CurrentNodeID != "vow" {
		t.Errorf("Expected to move to vow, got %s", e.State().CurrentNodeID)
	}
	if len(m.toasts) != 1 || m.toasts[0].line.Text != "Item acquired: Fox Charm x1" {
		t.Errorf("Unexpected toasts: %+v", m.toasts)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	expired, _ := m.Update(toastExpiredMsg{id: m.toasts[0].id})
	if len(expired.(ConsoleUI).toasts) != 0 {
		t.Error("Expected toast to expire")
	}
}

func TestConsoleUI_UnavailableChoice(t *testing.T) {
	e := testEngine()
	m := sized(t, e)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if e.State().CurrentNodeID != "intro" {
		t.Error("Gated choice must not move the story")
	}
	if m.notice == "" {
		t.Error("Expected a refusal notice")
	}
}

func TestConsoleUI_Tabs(t *testing.T) {
	e := testEngine()
	m := sized(t, e)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != tabCraft {
		t.Fatalf("Expected shift+tab to wrap to craft, got %d", m.tab)
	}
	if !strings.Contains(m.mainViewport.View(), "don't know any recipes") {
		t.Error("Expected empty craft view")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabNarrative {
		t.Errorf("Expected tab to wrap to narrative, got %d", m.tab)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m.switchTab(tabCraft)
	view := m.mainViewport.View()
	if !strings.Contains(view, "Crude Fox Seal") || !strings.Contains(view, "missing materials") {
		t.Errorf("Expected known but uncraftable recipe, got:\n%s", view)
	}

	m.switchTab(tabInventory)
	if !strings.Contains(m.mainViewport.View(), "Fox Charm x1") {
		t.Error("Expected fox charm in inventory")
	}
}

func TestConsoleUI_Reset(t *testing.T) {
	e := testEngine()
	m := sized(t, e)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if !m.showResetModal {
		t.Fatal("Expected reset confirmation")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if m.showResetModal {
		t.Error("Expected modal to close")
	}
	if e.State().CurrentNodeID != "intro" || e.State().ItemQty("fox_charm") != 0 {
		t.Errorf("Expected initial state after reset, got %+v", e.State())
	}
}

func TestConsoleUI_QuitModal(t *testing.T) {
	m := sized(t, testEngine())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.showQuitModal {
		t.Fatal("Expected quit confirmation")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.showQuitModal {
		t.Error("Expected N to dismiss the quit modal")
	}
}
