package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"gopkg.in/yaml.v3"
)

// Table file names, without extension. Each may be .json, .yaml or .yml.
const (
	NodesTable    = "nodes"
	RecipesTable  = "recipes"
	ItemsTable    = "items"
	SpeciesTable  = "species"
	GrimoireTable = "grimoire"
)

var tableExtensions = []string{".json", ".yaml", ".yml"}

// Load reads every content table from fsys. Missing tables are left empty;
// malformed tables are an error. Entries without an id take their map key.
func Load(fsys fs.FS, logger *slog.Logger) (*Content, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := New()

	if err := loadTable(fsys, NodesTable, &c.Nodes, logger); err != nil {
		return nil, err
	}
	if err := loadTable(fsys, RecipesTable, &c.Recipes, logger); err != nil {
		return nil, err
	}
	if err := loadTable(fsys, ItemsTable, &c.Items, logger); err != nil {
		return nil, err
	}
	if err := loadTable(fsys, SpeciesTable, &c.Species, logger); err != nil {
		return nil, err
	}
	if err := loadTable(fsys, GrimoireTable, &c.Grimoire, logger); err != nil {
		return nil, err
	}

	c.fillIDs()

	logger.Info("Content loaded",
		"nodes", len(c.Nodes),
		"recipes", len(c.Recipes),
		"items", len(c.Items),
		"species", len(c.Species),
		"grimoire", len(c.Grimoire))
	return c, nil
}

// TablePath returns the file that holds a table, if any
func TablePath(fsys fs.FS, table string) (string, bool) {
	for _, ext := range tableExtensions {
		p := table + ext
		if _, err := fs.Stat(fsys, p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Decode unmarshals a table file by extension
func Decode(name string, data []byte, target any) error {
	switch path.Ext(name) {
	case ".json":
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", name, err)
		}
	default:
		return fmt.Errorf("unsupported content file extension: %s", name)
	}
	return nil
}

func loadTable[T any](fsys fs.FS, table string, target *map[string]T, logger *slog.Logger) error {
	p, found := TablePath(fsys, table)
	if !found {
		logger.Warn("Content table not found", "table", table)
		return nil
	}

	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read content table %s: %w", p, err)
	}

	loaded := make(map[string]T)
	if err := Decode(p, data, &loaded); err != nil {
		return err
	}
	if loaded == nil {
		loaded = make(map[string]T)
	}
	*target = loaded
	return nil
}

func (c *Content) fillIDs() {
	for id, n := range c.Nodes {
		if n.ID == "" {
			n.ID = id
			c.Nodes[id] = n
		}
	}
	for id, r := range c.Recipes {
		if r.ID == "" {
			r.ID = id
			c.Recipes[id] = r
		}
	}
	for id, it := range c.Items {
		if it.ID == "" {
			it.ID = id
			c.Items[id] = it
		}
	}
	for id, s := range c.Species {
		if s.ID == "" {
			s.ID = id
			c.Species[id] = s
		}
	}
	for id, g := range c.Grimoire {
		if g.ID == "" {
			g.ID = id
			c.Grimoire[id] = g
		}
	}
}
