package content

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/animus-mundi/pkg/conditionals"
	"github.com/jwebster45206/animus-mundi/pkg/effects"
)

// Recipe is re-exported so content authors only need this package
type Recipe = effects.Recipe

// Node is a narrative unit: text plus the choices leading out of it
type Node struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Choices []Choice `json:"choices" yaml:"choices"`
}

// Choice is an edge to another node, gated by Requires and carrying an effect batch
type Choice struct {
	Label    string                   `json:"label" yaml:"label"`
	Next     string                   `json:"next" yaml:"next"`
	Requires []conditionals.Condition `json:"requires,omitempty" yaml:"requires,omitempty"`
	Effects  []effects.Effect         `json:"effects,omitempty" yaml:"effects,omitempty"`
}

type Item struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"` // e.g. "material", "charm", "seal"
}

// Species is a codex entry for a bindable creature
type Species struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Rarity   string `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Lore     string `json:"lore,omitempty" yaml:"lore,omitempty"`
}

// Content holds the static tables the engine reads. It is never modified after loading.
type Content struct {
	Nodes    map[string]Node          `json:"nodes"`
	Recipes  map[string]Recipe        `json:"recipes"`
	Items    map[string]Item          `json:"items"`
	Species  map[string]Species       `json:"species"`
	Grimoire map[string]GrimoireEntry `json:"grimoire"`
}

// Ensure Content can back the craft effect
var _ effects.RecipeBook = (*Content)(nil)

// New returns an empty content set
func New() *Content {
	return &Content{
		Nodes:    make(map[string]Node),
		Recipes:  make(map[string]Recipe),
		Items:    make(map[string]Item),
		Species:  make(map[string]Species),
		Grimoire: make(map[string]GrimoireEntry),
	}
}

func (c *Content) Node(id string) (Node, bool) {
	n, ok := c.Nodes[id]
	return n, ok
}

func (c *Content) Recipe(id string) (Recipe, bool) {
	r, ok := c.Recipes[id]
	return r, ok
}

func (c *Content) Item(id string) (Item, bool) {
	it, ok := c.Items[id]
	return it, ok
}

// ItemName returns the catalog name of an item, or a readable form of the id
// when the catalog has no entry
func (c *Content) ItemName(id string) string {
	if it, ok := c.Items[id]; ok && it.Name != "" {
		return it.Name
	}
	return Humanize(id)
}

// SortedRecipes returns all recipes ordered by id
func (c *Content) SortedRecipes() []Recipe {
	out := make([]Recipe, 0, len(c.Recipes))
	for _, id := range slices.Sorted(maps.Keys(c.Recipes)) {
		out = append(out, c.Recipes[id])
	}
	return out
}

// SortedSpecies returns all species ordered by id
func (c *Content) SortedSpecies() []Species {
	out := make([]Species, 0, len(c.Species))
	for _, id := range slices.Sorted(maps.Keys(c.Species)) {
		out = append(out, c.Species[id])
	}
	return out
}

// Humanize turns a snake_case id into a title, e.g. "fox_charm" -> "Fox Charm"
func Humanize(id string) string {
	// Casers are stateful, so each call gets its own
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}
