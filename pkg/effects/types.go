package effects

import "github.com/jwebster45206/animus-mundi/pkg/state"

type EffectType string

const (
	HumanityDelta     EffectType = "humanity_delta"
	ItemAdd           EffectType = "item_add"
	ItemRemove        EffectType = "item_remove"
	FlagSet           EffectType = "flag_set"
	DiscoverSpecies   EffectType = "discover_species"
	BindSpecies       EffectType = "bind_species"
	Craft             EffectType = "craft"
	IntelAdd          EffectType = "intel_add"
	IntelNote         EffectType = "intel_note"
	LeadAdd           EffectType = "lead_add"
	LeadResolve       EffectType = "lead_resolve"
	CurrencyAdd       EffectType = "currency_add"
	CurrencySpend     EffectType = "currency_spend"
	CurrencyAddChance EffectType = "currency_add_chance"
)

// Effect is one unit of state mutation, authored in content as part of a
// choice's effect batch. Which fields are read depends on Type.
type Effect struct {
	Type EffectType `json:"type" yaml:"type"`

	Delta     int    `json:"delta,omitempty" yaml:"delta,omitempty"`           // humanity_delta
	ItemID    string `json:"item_id,omitempty" yaml:"item_id,omitempty"`       // item_add, item_remove
	Qty       int    `json:"qty,omitempty" yaml:"qty,omitempty"`               // item_*, intel_add, currency_*
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`               // flag_set, lead_*
	Value     bool   `json:"value,omitempty" yaml:"value,omitempty"`           // flag_set
	SpeciesID string `json:"species_id,omitempty" yaml:"species_id,omitempty"` // discover_species, bind_species
	RecipeID  string `json:"recipe_id,omitempty" yaml:"recipe_id,omitempty"`   // craft
	Tag       string `json:"tag,omitempty" yaml:"tag,omitempty"`               // intel_add

	// intel_note and lead_add
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`
	Tags        []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source      string            `json:"source,omitempty" yaml:"source,omitempty"`
	Reliability state.Reliability `json:"reliability,omitempty" yaml:"reliability,omitempty"`
	Location    string            `json:"location,omitempty" yaml:"location,omitempty"`

	Chance float64 `json:"chance,omitempty" yaml:"chance,omitempty"` // currency_add_chance, in [0,1]
}

// Known reports whether the worker has a handler for the effect type.
func (e Effect) Known() bool {
	switch e.Type {
	case HumanityDelta, ItemAdd, ItemRemove, FlagSet, DiscoverSpecies, BindSpecies, Craft,
		IntelAdd, IntelNote, LeadAdd, LeadResolve, CurrencyAdd, CurrencySpend, CurrencyAddChance:
		return true
	default:
		return false
	}
}

// ItemQty is an item requirement or product of a recipe
type ItemQty struct {
	ItemID string `json:"item_id" yaml:"item_id"`
	Qty    int    `json:"qty" yaml:"qty"`
}

// Recipe turns required items into produced items
type Recipe struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Requires []ItemQty `json:"requires" yaml:"requires"`
	Produces []ItemQty `json:"produces" yaml:"produces"`
}

// RecipeBook looks up recipes for the craft effect.
type RecipeBook interface {
	Recipe(id string) (Recipe, bool)
}

func AdjustHumanity(delta int) Effect {
	return Effect{Type: HumanityDelta, Delta: delta}
}

func AddItem(itemID string, qty int) Effect {
	return Effect{Type: ItemAdd, ItemID: itemID, Qty: qty}
}

func RemoveItem(itemID string, qty int) Effect {
	return Effect{Type: ItemRemove, ItemID: itemID, Qty: qty}
}

func SetFlag(key string, value bool) Effect {
	return Effect{Type: FlagSet, Key: key, Value: value}
}

func Discover(speciesID string) Effect {
	return Effect{Type: DiscoverSpecies, SpeciesID: speciesID}
}

func Bind(speciesID string) Effect {
	return Effect{Type: BindSpecies, SpeciesID: speciesID}
}

func CraftRecipe(recipeID string) Effect {
	return Effect{Type: Craft, RecipeID: recipeID}
}

func AddIntel(tag string, qty int) Effect {
	return Effect{Type: IntelAdd, Tag: tag, Qty: qty}
}

func Note(title, body string, tags ...string) Effect {
	return Effect{Type: IntelNote, Title: title, Body: body, Tags: tags}
}

func AddLead(key, title, body, location string) Effect {
	return Effect{Type: LeadAdd, Key: key, Title: title, Body: body, Location: location}
}

func ResolveLead(key string) Effect {
	return Effect{Type: LeadResolve, Key: key}
}

func AddObols(qty int) Effect {
	return Effect{Type: CurrencyAdd, Qty: qty}
}

func SpendObols(qty int) Effect {
	return Effect{Type: CurrencySpend, Qty: qty}
}

func AddObolsChance(qty int, chance float64) Effect {
	return Effect{Type: CurrencyAddChance, Qty: qty, Chance: chance}
}
