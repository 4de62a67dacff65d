package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/animus-mundi/pkg/conditionals"
	"github.com/jwebster45206/animus-mundi/pkg/content"
	"github.com/jwebster45206/animus-mundi/pkg/effects"
	"github.com/jwebster45206/animus-mundi/pkg/state"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var tables = []string{
	content.NodesTable,
	content.RecipesTable,
	content.ItemsTable,
	content.SpeciesTable,
	content.GrimoireTable,
}

// ContentValidator checks a content directory in two passes: each table
// against its JSON schema, then references between tables
type ContentValidator struct {
	schemas map[string]*jsonschema.Schema
	errors  []string
}

func NewContentValidator() (*ContentValidator, error) {
	v := &ContentValidator{schemas: make(map[string]*jsonschema.Schema)}
	for _, table := range tables {
		name := "schemas/" + table + ".schema.json"
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		s, err := jsonschema.CompileString(name, string(data))
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}
		v.schemas[table] = s
	}
	return v, nil
}

// Validate returns an error listing every problem found in fsys
func (v *ContentValidator) Validate(fsys fs.FS) error {
	v.errors = nil

	for _, table := range tables {
		v.validateSchema(fsys, table)
	}
	if len(v.errors) > 0 {
		return fmt.Errorf("schema errors:\n%s", strings.Join(v.errors, "\n"))
	}

	c, err := content.Load(fsys, nil)
	if err != nil {
		return err
	}
	v.validateContent(c)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *ContentValidator) validateSchema(fsys fs.FS, table string) {
	p, found := content.TablePath(fsys, table)
	if !found {
		if table == content.NodesTable {
			v.addError("missing nodes table")
		}
		return
	}

	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		v.addError(fmt.Sprintf("%s: %v", p, err))
		return
	}

	doc, err := toJSONValue(p, data)
	if err != nil {
		v.addError(fmt.Sprintf("%s: %v", p, err))
		return
	}
	if err := v.schemas[table].Validate(doc); err != nil {
		v.addError(fmt.Sprintf("%s: %v", p, err))
	}
}

// toJSONValue decodes a table into the generic form the schema validator
// expects. YAML goes through a JSON round trip so numbers and maps match.
func toJSONValue(name string, data []byte) (any, error) {
	if path.Ext(name) != ".json" {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		converted, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("YAML is not representable as JSON: %w", err)
		}
		data = converted
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return doc, nil
}

func (v *ContentValidator) validateContent(c *content.Content) {
	if _, ok := c.Nodes[state.OpeningNode]; !ok {
		v.addError(fmt.Sprintf("opening node '%s' is not defined", state.OpeningNode))
	}

	for _, id := range slices.Sorted(maps.Keys(c.Nodes)) {
		v.validateIDFormat("node ID", id)
		v.validateNode(c, c.Nodes[id])
	}

	for _, id := range slices.Sorted(maps.Keys(c.Recipes)) {
		v.validateIDFormat("recipe ID", id)
		r := c.Recipes[id]
		for _, iq := range slices.Concat(r.Requires, r.Produces) {
			v.validateItemRef(c, fmt.Sprintf("recipe %s", id), iq.ItemID)
		}
	}

	for id := range c.Items {
		v.validateIDFormat("item ID", id)
	}
	for id := range c.Species {
		v.validateIDFormat("species ID", id)
	}

	for _, id := range slices.Sorted(maps.Keys(c.Grimoire)) {
		v.validateIDFormat("grimoire ID", id)
		g := c.Grimoire[id]
		if g.IdentifyAt > len(g.IntelRequired) {
			v.addError(fmt.Sprintf("grimoire %s identify_at %d exceeds its %d required tags", id, g.IdentifyAt, len(g.IntelRequired)))
		}
		for _, tag := range g.IntelRequired {
			v.validateIDFormat(fmt.Sprintf("grimoire %s intel tag", id), tag)
		}
	}
}

func (v *ContentValidator) validateNode(c *content.Content, node content.Node) {
	for i, choice := range node.Choices {
		where := fmt.Sprintf("node %s choice %d (%s)", node.ID, i, choice.Label)

		if _, ok := c.Nodes[choice.Next]; !ok {
			v.addError(fmt.Sprintf("%s leads to undefined node '%s'", where, choice.Next))
		}
		for _, cond := range choice.Requires {
			v.validateCondition(c, where, cond)
		}
		for _, e := range choice.Effects {
			v.validateEffect(c, where, e)
		}
	}
}

func (v *ContentValidator) validateCondition(c *content.Content, where string, cond conditionals.Condition) {
	if !cond.Known() {
		v.addError(fmt.Sprintf("%s has unknown condition type '%s'", where, cond.Type))
		return
	}
	switch cond.Type {
	case conditionals.HasItem:
		v.validateItemRef(c, where, cond.ItemID)
	case conditionals.FlagTrue, conditionals.FlagFalse:
		v.validateIDFormat(where+" flag", cond.Key)
	}
}

func (v *ContentValidator) validateEffect(c *content.Content, where string, e effects.Effect) {
	if !e.Known() {
		v.addError(fmt.Sprintf("%s has unknown effect type '%s'", where, e.Type))
		return
	}

	switch e.Type {
	case effects.ItemAdd, effects.ItemRemove:
		v.validateItemRef(c, where, e.ItemID)
		if e.Qty <= 0 {
			v.addError(fmt.Sprintf("%s %s needs a positive qty", where, e.Type))
		}
	case effects.FlagSet:
		v.validateIDFormat(where+" flag", e.Key)
	case effects.DiscoverSpecies, effects.BindSpecies:
		if _, ok := c.Species[e.SpeciesID]; !ok {
			v.addError(fmt.Sprintf("%s references undefined species '%s'", where, e.SpeciesID))
		}
	case effects.Craft:
		if _, ok := c.Recipes[e.RecipeID]; !ok {
			v.addError(fmt.Sprintf("%s references undefined recipe '%s'", where, e.RecipeID))
		}
	case effects.IntelAdd:
		v.validateIDFormat(where+" intel tag", e.Tag)
		if e.Qty < 0 {
			v.addError(fmt.Sprintf("%s intel_add qty must not be negative", where))
		}
	case effects.IntelNote:
		for _, tag := range e.Tags {
			v.validateIDFormat(where+" intel tag", tag)
		}
	case effects.LeadAdd, effects.LeadResolve:
		v.validateIDFormat(where+" lead key", e.Key)
	case effects.CurrencyAddChance:
		if e.Chance < 0 || e.Chance > 1 {
			v.addError(fmt.Sprintf("%s chance %.2f is outside [0,1]", where, e.Chance))
		}
	}
}

func (v *ContentValidator) validateItemRef(c *content.Content, where, itemID string) {
	if _, ok := c.Items[itemID]; !ok {
		v.addError(fmt.Sprintf("%s references undefined item '%s'", where, itemID))
	}
}

func (v *ContentValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		v.addError(fmt.Sprintf("%s is empty", fieldName))
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *ContentValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
