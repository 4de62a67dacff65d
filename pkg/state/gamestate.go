package state

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"
)

const (
	// OpeningNode is the node every new game starts at
	OpeningNode = "intro"

	HumanityMin      = 0
	HumanityMax      = 100
	StartingHumanity = 50

	// StartingLoyalty is assigned to every freshly bound instance
	StartingLoyalty = 50
)

type Reliability string

const (
	ReliabilityLow    Reliability = "low"
	ReliabilityMedium Reliability = "medium"
	ReliabilityHigh   Reliability = "high"
)

type LeadStatus string

const (
	LeadActive   LeadStatus = "active"
	LeadResolved LeadStatus = "resolved"
)

// BoundInstance is a creature bound by the player. Instance IDs are never reused.
type BoundInstance struct {
	InstanceID string `json:"instance_id"`
	SpeciesID  string `json:"species_id"`
	Loyalty    int    `json:"loyalty"`
}

// IntelEntry is a single note in the intel log
type IntelEntry struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	Source      string      `json:"source,omitempty"`
	Reliability Reliability `json:"reliability"`
	Tags        []string    `json:"tags,omitempty"`
}

// Lead is a tracked narrative thread. Resolved is terminal.
type Lead struct {
	Key        string     `json:"key"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Location   string     `json:"location,omitempty"`
	Status     LeadStatus `json:"status"`
}

// GameState is the persisted player state. Engine code never mutates a GameState
// it did not just clone; every transition produces a new value.
type GameState struct {
	CurrentNodeID     string          `json:"current_node_id"`
	Humanity          int             `json:"humanity"`
	Obols             int             `json:"obols"`
	Inventory         map[string]int  `json:"inventory"`          // item id -> count, never zero
	Flags             map[string]bool `json:"flags"`              // mostly set-once, not enforced
	DiscoveredSpecies map[string]bool `json:"discovered_species"` // set membership
	BoundInstances    []BoundInstance `json:"bound_instances"`
	IntelTags         map[string]int  `json:"intel_tags"`
	IntelLog          []IntelEntry    `json:"intel_log"`
	Leads             map[string]Lead `json:"leads"`
}

// NewGameState returns the fixed initial state of a new game.
func NewGameState() *GameState {
	return &GameState{
		CurrentNodeID:     OpeningNode,
		Humanity:          StartingHumanity,
		Obols:             0,
		Inventory:         make(map[string]int),
		Flags:             make(map[string]bool),
		DiscoveredSpecies: make(map[string]bool),
		BoundInstances:    make([]BoundInstance, 0),
		IntelTags:         make(map[string]int),
		IntelLog:          make([]IntelEntry, 0),
		Leads:             make(map[string]Lead),
	}
}

// Decode rebuilds a GameState from a persisted record by shallow-merging it
// over the initial state, so fields missing from older saves keep their defaults.
func Decode(data []byte) (*GameState, error) {
	gs := NewGameState()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("gamestate record is not an object")
	}

	// Each present top-level field replaces the default wholesale
	for name, raw := range fields {
		var err error
		switch name {
		case "current_node_id":
			err = json.Unmarshal(raw, &gs.CurrentNodeID)
		case "humanity":
			err = json.Unmarshal(raw, &gs.Humanity)
		case "obols":
			err = json.Unmarshal(raw, &gs.Obols)
		case "inventory":
			gs.Inventory = nil
			err = json.Unmarshal(raw, &gs.Inventory)
		case "flags":
			gs.Flags = nil
			err = json.Unmarshal(raw, &gs.Flags)
		case "discovered_species":
			gs.DiscoveredSpecies = nil
			err = json.Unmarshal(raw, &gs.DiscoveredSpecies)
		case "bound_instances":
			gs.BoundInstances = nil
			err = json.Unmarshal(raw, &gs.BoundInstances)
		case "intel_tags":
			gs.IntelTags = nil
			err = json.Unmarshal(raw, &gs.IntelTags)
		case "intel_log":
			gs.IntelLog = nil
			err = json.Unmarshal(raw, &gs.IntelLog)
		case "leads":
			gs.Leads = nil
			err = json.Unmarshal(raw, &gs.Leads)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal gamestate field %s: %w", name, err)
		}
	}

	gs.ensureCollections()
	gs.normalize()
	return gs, nil
}

// normalize pulls a decoded record back inside the state bounds
func (gs *GameState) normalize() {
	gs.Humanity = max(HumanityMin, min(HumanityMax, gs.Humanity))
	gs.Obols = max(0, gs.Obols)
	maps.DeleteFunc(gs.Inventory, func(_ string, qty int) bool {
		return qty <= 0
	})
}

// Encode serializes the state for persistence.
func (gs *GameState) Encode() ([]byte, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gamestate: %w", err)
	}
	return data, nil
}

// Clone returns a deep copy that shares no maps or slices with gs.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	c.Inventory = maps.Clone(gs.Inventory)
	c.Flags = maps.Clone(gs.Flags)
	c.DiscoveredSpecies = maps.Clone(gs.DiscoveredSpecies)
	c.BoundInstances = slices.Clone(gs.BoundInstances)
	c.IntelTags = maps.Clone(gs.IntelTags)

	if gs.IntelLog != nil {
		c.IntelLog = make([]IntelEntry, len(gs.IntelLog))
		for i, e := range gs.IntelLog {
			e.Tags = slices.Clone(e.Tags)
			c.IntelLog[i] = e
		}
	}

	if gs.Leads != nil {
		c.Leads = make(map[string]Lead, len(gs.Leads))
		for k, l := range gs.Leads {
			if l.ResolvedAt != nil {
				at := *l.ResolvedAt
				l.ResolvedAt = &at
			}
			c.Leads[k] = l
		}
	}

	c.ensureCollections()
	return &c
}

// ensureCollections replaces nil collections so callers can write without checks
func (gs *GameState) ensureCollections() {
	if gs.Inventory == nil {
		gs.Inventory = make(map[string]int)
	}
	if gs.Flags == nil {
		gs.Flags = make(map[string]bool)
	}
	if gs.DiscoveredSpecies == nil {
		gs.DiscoveredSpecies = make(map[string]bool)
	}
	if gs.BoundInstances == nil {
		gs.BoundInstances = make([]BoundInstance, 0)
	}
	if gs.IntelTags == nil {
		gs.IntelTags = make(map[string]int)
	}
	if gs.IntelLog == nil {
		gs.IntelLog = make([]IntelEntry, 0)
	}
	if gs.Leads == nil {
		gs.Leads = make(map[string]Lead)
	}
}

// ItemQty returns the held quantity of an item; absence is zero.
func (gs *GameState) ItemQty(itemID string) int {
	return gs.Inventory[itemID]
}

// Flag reports whether the flag is set to true.
func (gs *GameState) Flag(key string) bool {
	return gs.Flags[key]
}

// IntelCount returns the counter for an intel tag.
func (gs *GameState) IntelCount(tag string) int {
	return gs.IntelTags[tag]
}
