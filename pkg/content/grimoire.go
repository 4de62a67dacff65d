package content

import (
	"maps"
	"slices"
)

// GrimoireEntry describes an antagonist that the player identifies by
// collecting intel tags
type GrimoireEntry struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Horseman      string   `json:"horseman,omitempty" yaml:"horseman,omitempty"`
	IntelRequired []string `json:"intel_required" yaml:"intel_required"`
	IdentifyAt    int      `json:"identify_at" yaml:"identify_at"`
	Description   string   `json:"description" yaml:"description"`
}

// Matched counts the required tags that have at least one piece of intel
func (g GrimoireEntry) Matched(intelTags map[string]int) int {
	matched := 0
	for _, tag := range g.IntelRequired {
		if intelTags[tag] > 0 {
			matched++
		}
	}
	return matched
}

// Identified reports whether enough clues are collected
func (g GrimoireEntry) Identified(intelTags map[string]int) bool {
	return g.Matched(intelTags) >= g.IdentifyAt
}

// SortedGrimoire returns all grimoire entries ordered by id
func (c *Content) SortedGrimoire() []GrimoireEntry {
	out := make([]GrimoireEntry, 0, len(c.Grimoire))
	for _, id := range slices.Sorted(maps.Keys(c.Grimoire)) {
		out = append(out, c.Grimoire[id])
	}
	return out
}
