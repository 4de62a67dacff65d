package state

import (
	"slices"
	"strings"
)

// ActiveLeads returns active leads, newest first
func (gs *GameState) ActiveLeads() []Lead {
	return gs.leadsWithStatus(LeadActive)
}

// ResolvedLeads returns resolved leads, newest first
func (gs *GameState) ResolvedLeads() []Lead {
	return gs.leadsWithStatus(LeadResolved)
}

func (gs *GameState) leadsWithStatus(status LeadStatus) []Lead {
	leads := make([]Lead, 0, len(gs.Leads))
	for _, l := range gs.Leads {
		if l.Status == status {
			leads = append(leads, l)
		}
	}
	slices.SortFunc(leads, func(a, b Lead) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return leads
}

// IntelLogNewestFirst returns a reversed copy of the intel log
func (gs *GameState) IntelLogNewestFirst() []IntelEntry {
	entries := slices.Clone(gs.IntelLog)
	slices.Reverse(entries)
	return entries
}

// BoundOfSpecies returns the bound instances of one species in bind order
func (gs *GameState) BoundOfSpecies(speciesID string) []BoundInstance {
	var out []BoundInstance
	for _, b := range gs.BoundInstances {
		if b.SpeciesID == speciesID {
			out = append(out, b)
		}
	}
	return out
}
