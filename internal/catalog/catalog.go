package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalidCatalog indicates a catalog that cannot drive dataset generation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog holds the reference lists project records are drawn from.
type Catalog struct {
	RepositoryBase string   `yaml:"repository_base"`
	Prefixes       []string `yaml:"prefixes"`
	Names          []string `yaml:"names"`
	Teams          []string `yaml:"teams"`
	Templates      []string `yaml:"templates"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	var cat Catalog
	if err := yaml.Unmarshal(defaultYAML, &cat); err != nil {
		panic(fmt.Sprintf("catalog: embedded default is malformed: %v", err))
	}
	return cat
}

// Load reads a catalog from a YAML file. Keys missing from the file keep
// their built-in values.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML on top of the built-in defaults and validates
// the result.
func Parse(data []byte) (Catalog, error) {
	cat := Default()
	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	if override.RepositoryBase != "" {
		cat.RepositoryBase = override.RepositoryBase
	}
	if override.Prefixes != nil {
		cat.Prefixes = override.Prefixes
	}
	if override.Names != nil {
		cat.Names = override.Names
	}
	if override.Teams != nil {
		cat.Teams = override.Teams
	}
	if override.Templates != nil {
		cat.Templates = override.Templates
	}

	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate checks that every list is populated and template types are unique.
func (c Catalog) Validate() error {
	lists := []struct {
		key    string
		values []string
	}{
		{"prefixes", c.Prefixes},
		{"names", c.Names},
		{"teams", c.Teams},
		{"templates", c.Templates},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			return fmt.Errorf("%w: %s is empty", ErrInvalidCatalog, l.key)
		}
	}

	seen := make(map[string]struct{}, len(c.Templates))
	for _, tmpl := range c.Templates {
		key := strings.ToLower(tmpl)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate template %q", ErrInvalidCatalog, tmpl)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// RepositoryURL derives the repository URL for a project name.
func (c Catalog) RepositoryURL(projectName string) string {
	return strings.TrimSuffix(c.RepositoryBase, "/") + "/" + projectName
}
