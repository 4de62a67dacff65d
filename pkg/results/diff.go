package results

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jwebster45206/animus-mundi/pkg/state"
)

const (
	identifiedPrefix = "identified_"
	sealedPrefix     = "sealed_"
)

// Diff describes the difference between two snapshots in a fixed order:
// humanity, obols, intel, items gained, items consumed, new leads,
// resolved leads, flag narration.
func (r *Reporter) Diff(prev, next *state.GameState) []Line {
	var lines []Line

	if d := next.Humanity - prev.Humanity; d != 0 {
		lines = append(lines, Line{Kind: KindHumanity, Text: fmt.Sprintf("Humanity %+d", d)})
	}

	if d := next.Obols - prev.Obols; d != 0 {
		lines = append(lines, Line{Kind: KindCurrency, Text: fmt.Sprintf("Obols %+d", d)})
	}

	// Intel only ever goes up, so only increases are reported
	for _, tag := range unionKeys(prev.IntelTags, next.IntelTags) {
		if next.IntelTags[tag] > prev.IntelTags[tag] {
			lines = append(lines, Line{Kind: KindIntel, Text: "Intel gained: " + tag})
		}
	}

	items := unionKeys(prev.Inventory, next.Inventory)
	for _, id := range items {
		if d := next.Inventory[id] - prev.Inventory[id]; d > 0 {
			lines = append(lines, Line{Kind: KindItem, Text: fmt.Sprintf("Item acquired: %s x%d", r.itemName(id), d)})
		}
	}
	for _, id := range items {
		if d := next.Inventory[id] - prev.Inventory[id]; d < 0 {
			lines = append(lines, Line{Kind: KindItem, Text: fmt.Sprintf("Item consumed: %s x%d", r.itemName(id), -d)})
		}
	}

	for _, key := range slices.Sorted(maps.Keys(next.Leads)) {
		if _, existed := prev.Leads[key]; !existed {
			lines = append(lines, Line{Kind: KindIntel, Text: "New lead: " + leadTitle(next.Leads[key])})
		}
	}
	for _, key := range slices.Sorted(maps.Keys(next.Leads)) {
		before, existed := prev.Leads[key]
		after := next.Leads[key]
		if existed && before.Status != state.LeadResolved && after.Status == state.LeadResolved {
			lines = append(lines, Line{Kind: KindSystem, Text: "Lead resolved: " + leadTitle(after)})
		}
	}

	// Flag narration fires only on a false -> true transition
	for _, key := range unionKeys(prev.Flags, next.Flags) {
		if prev.Flags[key] || !next.Flags[key] {
			continue
		}
		switch {
		case strings.HasPrefix(key, identifiedPrefix):
			lines = append(lines, Line{Kind: KindSystem, Text: "Identification confirmed."})
		case strings.HasPrefix(key, sealedPrefix):
			lines = append(lines, Line{Kind: KindSystem, Text: "Sealed."})
		}
	}

	return lines
}

func leadTitle(l state.Lead) string {
	if l.Title != "" {
		return l.Title
	}
	return l.Key
}

func unionKeys[V any](a, b map[string]V) []string {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(keys))
}
