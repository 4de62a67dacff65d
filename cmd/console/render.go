package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/animus-mundi/pkg/engine"
	"github.com/jwebster45206/animus-mundi/pkg/results"
	"github.com/jwebster45206/animus-mundi/pkg/state"
)

func renderNarrative(e *engine.Engine, selected, width int) string {
	var b strings.Builder
	node, ok := e.Node()
	if !ok {
		b.WriteString(errorStyle.Render(fmt.Sprintf("The path to '%s' is lost.", e.State().CurrentNodeID)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("Press R to reset your save."))
		return b.String()
	}

	b.WriteString(wordwrap.String(strings.TrimSpace(node.Text), width))
	b.WriteString("\n\n")

	for _, c := range e.Choices() {
		label := fmt.Sprintf("%d. %s", c.Index+1, c.Choice.Label)
		switch {
		case !c.Available:
			b.WriteString(disabledStyle.Render("  " + label + " (unavailable)"))
		case c.Index == selected:
			b.WriteString(selectedStyle.Render("▶ " + label))
		default:
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render("↑/↓ to select, Enter or a number to choose"))
	return b.String()
}

func renderGrimoire(e *engine.Engine, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GRIMOIRE") + "\n\n")

	entries := e.Grimoire()
	if len(entries) == 0 {
		b.WriteString("The pages are blank.\n")
		return b.String()
	}

	for _, g := range entries {
		name := g.Entry.Name
		if !g.Identified {
			name = "???"
		}
		b.WriteString(fmt.Sprintf("%s  clues %d/%d", name, g.Matched, g.Entry.IdentifyAt))
		if g.Entry.Horseman != "" && g.Identified {
			b.WriteString(promptStyle.Render("  herald of " + g.Entry.Horseman))
		}
		b.WriteString("\n")
		if g.Identified && g.Entry.Description != "" {
			b.WriteString(wordwrap.String(strings.TrimSpace(g.Entry.Description), width) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderIntel(e *engine.Engine, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("INTEL") + "\n\n")

	gs := e.State()
	if len(gs.IntelTags) > 0 {
		tags := make([]string, 0, len(gs.IntelTags))
		for _, tag := range slices.Sorted(maps.Keys(gs.IntelTags)) {
			tags = append(tags, fmt.Sprintf("%s x%d", tag, gs.IntelTags[tag]))
		}
		b.WriteString(promptStyle.Render(wordwrap.String("Tags: "+strings.Join(tags, ", "), width)) + "\n\n")
	}

	notes := e.IntelLog()
	if len(notes) == 0 {
		b.WriteString("No notes yet.\n")
		return b.String()
	}
	for _, entry := range notes {
		b.WriteString(entry.Title)
		b.WriteString(promptStyle.Render(fmt.Sprintf("  [%s]", entry.Reliability)))
		if entry.Source != "" {
			b.WriteString(promptStyle.Render(" from " + entry.Source))
		}
		b.WriteString("\n")
		b.WriteString(wordwrap.String(entry.Body, width) + "\n\n")
	}
	return b.String()
}

func renderLeads(e *engine.Engine, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("LEADS") + "\n\n")

	leads := e.Leads()
	if len(leads.Active) == 0 && len(leads.Resolved) == 0 {
		b.WriteString("No leads.\n")
		return b.String()
	}

	b.WriteString("Active:\n")
	if len(leads.Active) == 0 {
		b.WriteString(promptStyle.Render("  none") + "\n")
	}
	for _, l := range leads.Active {
		writeLead(&b, l, width, false)
	}

	if len(leads.Resolved) > 0 {
		b.WriteString("\nResolved:\n")
		for _, l := range leads.Resolved {
			writeLead(&b, l, width, true)
		}
	}
	return b.String()
}

func writeLead(b *strings.Builder, l state.Lead, width int, resolved bool) {
	title := "• " + l.Title
	if l.Location != "" {
		title += " (" + l.Location + ")"
	}
	if resolved {
		b.WriteString(disabledStyle.Render(title) + "\n")
		return
	}
	b.WriteString(title + "\n")
	if l.Body != "" {
		b.WriteString(wordwrap.String("  "+l.Body, width) + "\n")
	}
}

func renderCodex(e *engine.Engine, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CODEX") + "\n\n")

	entries := e.Codex()
	if len(entries) == 0 {
		b.WriteString("You have not discovered any spirits.\n")
		return b.String()
	}
	for _, c := range entries {
		b.WriteString(c.Species.Name)
		if c.Species.Category != "" {
			b.WriteString(promptStyle.Render("  " + c.Species.Category))
		}
		b.WriteString("\n")
		if c.Species.Lore != "" {
			b.WriteString(wordwrap.String(c.Species.Lore, width) + "\n")
		}
		for _, inst := range c.Bound {
			b.WriteString(fmt.Sprintf("  bound %s  loyalty %d\n", shortID(inst.InstanceID), inst.Loyalty))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderInventory(e *engine.Engine) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("INVENTORY") + "\n\n")

	items := e.Inventory()
	if len(items) == 0 {
		b.WriteString("Your pockets are empty.\n")
		return b.String()
	}
	for _, it := range items {
		b.WriteString(fmt.Sprintf("• %s x%d\n", it.Name, it.Qty))
	}
	return b.String()
}

func renderCraft(e *engine.Engine, selected, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CRAFT") + "\n\n")

	recipes := e.KnownRecipes()
	if len(recipes) == 0 {
		b.WriteString(wordwrap.String("You don't know any recipes yet.", width) + "\n")
		return b.String()
	}

	c := e.Content()
	for i, r := range recipes {
		label := fmt.Sprintf("%d. %s", i+1, r.Recipe.Name)
		switch {
		case !r.Craftable:
			b.WriteString(disabledStyle.Render("  " + label + " (missing materials)"))
		case i == selected:
			b.WriteString(selectedStyle.Render("▶ " + label))
		default:
			b.WriteString("  " + label)
		}
		b.WriteString("\n")

		parts := make([]string, 0, len(r.Recipe.Requires))
		for _, req := range r.Recipe.Requires {
			parts = append(parts, fmt.Sprintf("%s x%d", c.ItemName(req.ItemID), req.Qty))
		}
		b.WriteString(promptStyle.Render("    Requires: "+strings.Join(parts, ", ")) + "\n")

		parts = parts[:0]
		for _, p := range r.Recipe.Produces {
			parts = append(parts, fmt.Sprintf("%s x%d", c.ItemName(p.ItemID), p.Qty))
		}
		b.WriteString(promptStyle.Render("    Produces: "+strings.Join(parts, ", ")) + "\n\n")
	}
	return b.String()
}

// renderMeta draws the side panel: vitals, recent results and key help
func renderMeta(e *engine.Engine, toasts []toast, width int) string {
	gs := e.State()
	var b strings.Builder
	b.WriteString(titleStyle.Render("ANIMUS MUNDI") + "\n\n")

	b.WriteString(fmt.Sprintf("Humanity %d/%d\n", gs.Humanity, state.HumanityMax))
	b.WriteString(humanityBar(gs.Humanity, max(10, min(width, 30))) + "\n\n")
	b.WriteString(fmt.Sprintf("Obols: %d\n\n", gs.Obols))

	if len(toasts) > 0 {
		for _, t := range toasts {
			style, ok := toastStyles[t.line.Kind]
			if !ok {
				style = promptStyle
			}
			b.WriteString(style.Render(wordwrap.String(t.line.Text, max(10, width))) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Commands:\n")
	b.WriteString("• Tab: Next view\n")
	b.WriteString("• Enter: Choose\n")
	b.WriteString("• R: Reset save\n")
	b.WriteString("• Esc: Quit\n")
	return b.String()
}

func humanityBar(humanity, width int) string {
	filled := humanity * width / state.HumanityMax
	return toastStyles[results.KindHumanity].Render(strings.Repeat("█", filled)) +
		separatorStyle.Render(strings.Repeat("░", width-filled))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
