package loader

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/solver-wos/internal/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry describes one building or troop line and where its table lives
type Entry struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	MinLevel int    `yaml:"min_level"`
	MaxLevel int    `yaml:"max_level"`
}

// Bounds reports whether r lies inside the entry's level bounds
func (e Entry) Bounds(r models.LevelRange) error {
	if r.Start < e.MinLevel || r.End > e.MaxLevel {
		return fmt.Errorf("%w: %s accepts levels %d to %d, got %d to %d",
			models.ErrInvalidRange, e.Name, e.MinLevel, e.MaxLevel, r.Start, r.End)
	}
	return nil
}

// Catalog lists the buildings and troop lines in display order
type Catalog struct {
	Buildings []Entry `yaml:"buildings"`
	Troops    []Entry `yaml:"troops"`
}

// DefaultCatalog parses the embedded catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog decodes a YAML catalog and checks its entries
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for _, group := range [][]Entry{c.Buildings, c.Troops} {
		seen := make(map[string]bool)
		for _, e := range group {
			if e.Key == "" || e.File == "" {
				return nil, fmt.Errorf("catalog entry %q needs a key and a file", e.Name)
			}
			if seen[e.Key] {
				return nil, fmt.Errorf("duplicate catalog key %q", e.Key)
			}
			if e.MaxLevel <= e.MinLevel {
				return nil, fmt.Errorf("catalog entry %q has empty level bounds", e.Key)
			}
			seen[e.Key] = true
		}
	}
	return &c, nil
}

// Building finds a building by key or display name (case-insensitive)
func (c *Catalog) Building(name string) (Entry, error) {
	if e, ok := find(c.Buildings, name); ok {
		return e, nil
	}
	return Entry{}, fmt.Errorf("%w: %q", models.ErrUnknownBuilding, name)
}

// Troop finds a troop line by key or display name (case-insensitive)
func (c *Catalog) Troop(name string) (Entry, error) {
	if e, ok := find(c.Troops, name); ok {
		return e, nil
	}
	return Entry{}, fmt.Errorf("%w: %q", models.ErrUnknownTroop, name)
}

func find(entries []Entry, name string) (Entry, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	for _, e := range entries {
		if e.Key == key || strings.EqualFold(e.Name, strings.TrimSpace(name)) {
			return e, true
		}
	}
	return Entry{}, false
}
