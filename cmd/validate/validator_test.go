package main

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"
)

const validNodes = `{
  "intro": {
    "text": "Smoke curls from the shrine.",
    "choices": [
      {
        "label": "Speak a binding vow",
        "next": "vow",
        "effects": [
          {"type": "flag_set", "key": "knows_crude_fox_seal", "value": true},
          {"type": "item_add", "item_id": "fox_charm", "qty": 1},
          {"type": "currency_add_chance", "qty": 5, "chance": 0.25}
        ]
      }
    ]
  },
  "vow": {
    "text": "The fox listens.",
    "choices": [
      {"label": "Return", "next": "intro", "requires": [{"type": "has_item", "item_id": "fox_charm", "qty": 1}]},
      {"label": "Bind", "next": "intro", "effects": [{"type": "bind_species", "species_id": "kitsune"}]}
    ]
  }
}`

const validRecipes = `
crude_fox_seal:
  name: Crude Fox Seal
  requires:
    - item_id: fox_charm
      qty: 1
  produces:
    - item_id: crude_seal
      qty: 1
`

const validItems = `{
  "fox_charm": {"name": "Fox Charm", "type": "charm"},
  "crude_seal": {"name": "Crude Seal", "type": "seal"}
}`

const validSpecies = `{"kitsune": {"name": "Kitsune", "category": "yokai"}}`

const validGrimoire = `
herald:
  name: The Herald
  intel_required: [iron, ash]
  identify_at: 2
`

func validFS() fstest.MapFS {
	return fstest.MapFS{
		"nodes.json":   {Data: []byte(validNodes)},
		"recipes.yaml": {Data: []byte(validRecipes)},
		"items.json":   {Data: []byte(validItems)},
		"species.json": {Data: []byte(validSpecies)},
		"grimoire.yml": {Data: []byte(validGrimoire)},
	}
}

func newValidator(t *testing.T) *ContentValidator {
	t.Helper()
	v, err := NewContentValidator()
	if err != nil {
		t.Fatalf("Failed to compile schemas: %v", err)
	}
	return v
}

func TestValidate_ValidContent(t *testing.T) {
	if err := newValidator(t).Validate(validFS()); err != nil {
		t.Errorf("Expected valid content, got: %v", err)
	}
}

func TestValidate_ShippedContent(t *testing.T) {
	if err := newValidator(t).Validate(os.DirFS("../../data")); err != nil {
		t.Errorf("Shipped content failed validation: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr string
	}{
		{
			name:    "missing opening node",
			file:    "nodes.json",
			data:    `{"start": {"text": "x", "choices": [{"label": "go", "next": "start"}]}}`,
			wantErr: "opening node 'intro' is not defined",
		},
		{
			name:    "dangling next",
			file:    "nodes.json",
			data:    `{"intro": {"text": "x", "choices": [{"label": "go", "next": "nowhere"}]}}`,
			wantErr: "leads to undefined node 'nowhere'",
		},
		{
			name:    "unknown effect type",
			file:    "nodes.json",
			data:    `{"intro": {"text": "x", "choices": [{"label": "go", "next": "intro", "effects": [{"type": "summon"}]}]}}`,
			wantErr: "unknown effect type 'summon'",
		},
		{
			name:    "unknown condition type",
			file:    "nodes.json",
			data:    `{"intro": {"text": "x", "choices": [{"label": "go", "next": "intro", "requires": [{"type": "moon_phase"}]}]}}`,
			wantErr: "unknown condition type 'moon_phase'",
		},
		{
			name:    "undefined item",
			file:    "nodes.json",
			data:    `{"intro": {"text": "x", "choices": [{"label": "go", "next": "intro", "effects": [{"type": "item_add", "item_id": "moon_salt", "qty": 1}]}]}}`,
			wantErr: "undefined item 'moon_salt'",
		},
		{
			name:    "undefined recipe",
			file:    "nodes.json",
			data:    `{"intro": {"text": "x", "choices": [{"label": "go", "next": "intro", "effects": [{"type": "craft", "recipe_id": "oni_seal"}]}]}}`,
			wantErr: "undefined recipe 'oni_seal'",
		},
		{
			name:    "bad node id",
			file:    "nodes.json",
			data:    `{"intro": {"text": "x", "choices": [{"label": "go", "next": "Dark-Wood"}]}, "Dark-Wood": {"text": "y", "choices": []}}`,
			wantErr: "node ID 'Dark-Wood' should be lowercase snake_case",
		},
		{
			name:    "chance out of range",
			file:    "nodes.json",
			data:    `{"intro": {"text": "x", "choices": [{"label": "go", "next": "intro", "effects": [{"type": "currency_add_chance", "qty": 1, "chance": 1.5}]}]}}`,
			wantErr: "schema errors",
		},
		{
			name:    "unknown field",
			file:    "items.json",
			data:    `{"fox_charm": {"name": "Fox Charm", "weight": 2}, "crude_seal": {"name": "Crude Seal"}}`,
			wantErr: "items.json",
		},
		{
			name:    "identify_at too high",
			file:    "grimoire.yml",
			data:    "herald:\n  name: The Herald\n  intel_required: [iron]\n  identify_at: 3\n",
			wantErr: "identify_at 3 exceeds its 1 required tags",
		},
		{
			name:    "recipe needs produces",
			file:    "recipes.yaml",
			data:    "crude_fox_seal:\n  name: Crude Fox Seal\n  requires: []\n  produces: []\n",
			wantErr: "recipes.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := validFS()
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}

			err := newValidator(t).Validate(fsys)
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_MissingNodes(t *testing.T) {
	fsys := validFS()
	delete(fsys, "nodes.json")

	err := newValidator(t).Validate(fsys)
	if err == nil || !strings.Contains(err.Error(), "missing nodes table") {
		t.Errorf("Expected missing nodes error, got %v", err)
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"intro", true},
		{"crude_fox_seal", true},
		{"a", true},
		{"fox2", true},
		{"Fox", false},
		{"fox-charm", false},
		{"_fox", false},
		{"fox_", false},
		{"2fox", false},
	}
	for _, tt := range tests {
		if got := isValidID(tt.id); got != tt.want {
			t.Errorf("isValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
