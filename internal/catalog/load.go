package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a catalog from a YAML file. Sections absent from the file
// fall back to the built-in defaults so partial overrides stay playable.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes catalog YAML.
func Parse(b []byte) (*Catalog, error) {
	var loaded Catalog
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	def := Default()
	if len(loaded.Goods) == 0 {
		loaded.Goods = def.Goods
	}
	if len(loaded.Upgrades) == 0 {
		loaded.Upgrades = def.Upgrades
	}
	if len(loaded.Recipes) == 0 {
		loaded.Recipes = def.Recipes
	}
	if len(loaded.Archetypes) == 0 {
		loaded.Archetypes = def.Archetypes
	}
	if len(loaded.Tiers) == 0 {
		loaded.Tiers = def.Tiers
	}

	if err := validate(&loaded); err != nil {
		return nil, err
	}

	loaded.index()
	return &loaded, nil
}

func validate(c *Catalog) error {
	seen := map[string]bool{}
	for _, g := range c.Goods {
		if g.ID == "" {
			return fmt.Errorf("catalog goods entry missing id")
		}
		if seen[g.ID] {
			return fmt.Errorf("duplicate goods id: %s", g.ID)
		}
		seen[g.ID] = true
		if g.BasePrice < 0 || g.MaterialCost < 0 {
			return fmt.Errorf("negative price on goods %s", g.ID)
		}
	}
	for _, r := range c.Recipes {
		found := false
		for _, g := range c.Goods {
			if g.ID == r.GoodsID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("recipe %s references unknown goods %s", r.ID, r.GoodsID)
		}
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("catalog has no tiers")
	}
	return nil
}
