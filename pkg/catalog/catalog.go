package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/themesmith/themesmith/pkg/validation"
)

// Common errors for catalog loading.
var (
	ErrInvalidCatalog = errors.New("invalid component catalog")
	ErrEmptyDocument  = errors.New("catalog document is empty")
)

//go:embed data/components.yaml
var defaultComponents []byte

//go:embed data/components.schema.json
var componentsSchema []byte

var documentSchema = sync.OnceValue(func() *validation.Schema {
	return validation.MustCompile("components.schema.json", componentsSchema)
})

// Catalog is the read-only component metadata registry. A Catalog is never
// mutated after Load returns and is safe for concurrent use.
type Catalog struct {
	components map[string]*ComponentMetadata
	names      []string

	// derivations is compound -> child theme -> child token -> rule.
	derivations map[string]map[string]map[string]TokenDerivation
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded data file. The embedded
// data is part of the binary, so an integrity violation there is a programming
// error and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultComponents)
		if err != nil {
			panic(fmt.Sprintf("embedded component catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultData returns the raw embedded catalog document.
func DefaultData() []byte {
	out := make([]byte, len(defaultComponents))
	copy(out, defaultComponents)
	return out
}

// Load parses one or more YAML catalog documents and validates the result.
// Later documents add components or replace earlier entries with the same
// name. Invariants are checked on the merged set, so an overlay may rely on
// components defined by the base document.
func Load(base []byte, overlays ...[]byte) (*Catalog, error) {
	components := make(map[string]*ComponentMetadata)

	for i, data := range append([][]byte{base}, overlays...) {
		doc, err := parseDocument(data)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("base catalog: %w", err)
			}
			return nil, fmt.Errorf("catalog overlay %d: %w", i, err)
		}
		for name, m := range doc.Components {
			m.Name = name
			components[name] = m
		}
	}

	if err := Validate(components); err != nil {
		return nil, err
	}

	return build(components), nil
}

func parseDocument(data []byte) (*document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %v", ErrInvalidCatalog, err)
	}
	if result := documentSchema().Validate(raw); result.HasErrors() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, result.Err())
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &doc, nil
}

func build(components map[string]*ComponentMetadata) *Catalog {
	c := &Catalog{
		components:  components,
		names:       sortedKeys(components),
		derivations: make(map[string]map[string]map[string]TokenDerivation),
	}

	for name, m := range components {
		if m.Compound == nil || len(m.Compound.TokenDerivations) == 0 {
			continue
		}
		byChild := make(map[string]map[string]TokenDerivation)
		for key, d := range m.Compound.TokenDerivations {
			child, token, _ := strings.Cut(key, ".")
			if byChild[child] == nil {
				byChild[child] = make(map[string]TokenDerivation)
			}
			byChild[child][token] = d
		}
		c.derivations[name] = byChild
	}
	return c
}

// Len returns the number of components in the catalog.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Names returns every component name, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Has reports whether name is a catalog component. Names are case-sensitive.
func (c *Catalog) Has(name string) bool {
	_, ok := c.components[name]
	return ok
}

// Component returns a copy of the metadata for name.
func (c *Catalog) Component(name string) (ComponentMetadata, bool) {
	m, ok := c.components[name]
	if !ok {
		return ComponentMetadata{}, false
	}
	return m.clone(), true
}

// Compound returns a copy of the compound metadata for name, or nil when the
// component is unknown or not compound.
func (c *Catalog) Compound(name string) *CompoundInfo {
	m, ok := c.components[name]
	if !ok {
		return nil
	}
	return m.Compound.clone()
}

// Compounds returns the names of every compound component, sorted.
func (c *Catalog) Compounds() []string {
	var out []string
	for _, name := range c.names {
		if c.components[name].Compound != nil {
			out = append(out, name)
		}
	}
	return out
}

// VariantOf returns the base components that list name as a variant, in
// catalog order.
func (c *Catalog) VariantOf(name string) []string {
	var bases []string
	for _, base := range c.names {
		for _, v := range c.components[base].Variants {
			if v == name {
				bases = append(bases, base)
				break
			}
		}
	}
	return bases
}
