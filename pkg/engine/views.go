package engine

import (
	"cmp"
	"maps"
	"slices"

	"github.com/jwebster45206/animus-mundi/pkg/content"
	"github.com/jwebster45206/animus-mundi/pkg/state"
)

// ChoiceView is a choice of the current node with its gate evaluated.
// Unavailable choices are still listed so they can be rendered disabled.
type ChoiceView struct {
	Index     int
	Choice    content.Choice
	Available bool
}

type RecipeView struct {
	Recipe    content.Recipe
	Craftable bool
}

// GrimoireProgress is an antagonist entry with the player's clue count
type GrimoireProgress struct {
	Entry      content.GrimoireEntry
	Matched    int
	Identified bool
}

// CodexEntry is a discovered species and the instances bound from it
type CodexEntry struct {
	Species content.Species
	Bound   []state.BoundInstance
}

type LeadsView struct {
	Active   []state.Lead
	Resolved []state.Lead
}

// Choices lists the current node's choices; empty when the node is missing
func (e *Engine) Choices() []ChoiceView {
	node, ok := e.Node()
	if !ok {
		return nil
	}
	out := make([]ChoiceView, 0, len(node.Choices))
	for i, c := range node.Choices {
		out = append(out, ChoiceView{
			Index:     i,
			Choice:    c,
			Available: e.Meets(c.Requires),
		})
	}
	return out
}

// KnownRecipes lists the recipes whose knows_ flag is set, ordered by id
func (e *Engine) KnownRecipes() []RecipeView {
	var out []RecipeView
	for _, r := range e.content.SortedRecipes() {
		if !e.gs.Flag(KnowsRecipePrefix + r.ID) {
			continue
		}
		out = append(out, RecipeView{Recipe: r, Craftable: craftable(e.gs, r)})
	}
	return out
}

func (e *Engine) Grimoire() []GrimoireProgress {
	entries := e.content.SortedGrimoire()
	out := make([]GrimoireProgress, 0, len(entries))
	for _, g := range entries {
		out = append(out, GrimoireProgress{
			Entry:      g,
			Matched:    g.Matched(e.gs.IntelTags),
			Identified: g.Identified(e.gs.IntelTags),
		})
	}
	return out
}

// Codex lists discovered species ordered by id. Species missing from the
// catalog still appear, named from their id.
func (e *Engine) Codex() []CodexEntry {
	var out []CodexEntry
	for _, sp := range e.content.SortedSpecies() {
		if !e.gs.DiscoveredSpecies[sp.ID] {
			continue
		}
		out = append(out, CodexEntry{Species: sp, Bound: e.gs.BoundOfSpecies(sp.ID)})
	}
	for id, discovered := range e.gs.DiscoveredSpecies {
		if _, known := e.content.Species[id]; known || !discovered {
			continue
		}
		out = append(out, CodexEntry{
			Species: content.Species{ID: id, Name: content.Humanize(id)},
			Bound:   e.gs.BoundOfSpecies(id),
		})
	}
	slices.SortFunc(out, func(a, b CodexEntry) int {
		return cmp.Compare(a.Species.ID, b.Species.ID)
	})
	return out
}

func (e *Engine) Leads() LeadsView {
	return LeadsView{
		Active:   e.gs.ActiveLeads(),
		Resolved: e.gs.ResolvedLeads(),
	}
}

// IntelLog returns the intel journal, newest first
func (e *Engine) IntelLog() []state.IntelEntry {
	return e.gs.IntelLogNewestFirst()
}

// Inventory returns held items ordered by id with display names
func (e *Engine) Inventory() []InventoryLine {
	out := make([]InventoryLine, 0, len(e.gs.Inventory))
	for _, id := range slices.Sorted(maps.Keys(e.gs.Inventory)) {
		out = append(out, InventoryLine{ItemID: id, Name: e.content.ItemName(id), Qty: e.gs.Inventory[id]})
	}
	return out
}

type InventoryLine struct {
	ItemID string
	Name   string
	Qty    int
}
