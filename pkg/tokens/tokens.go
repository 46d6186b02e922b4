package tokens

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/themesmith/themesmith/pkg/validation"
)

// Common errors for token catalog loading.
var (
	ErrInvalidTokens  = errors.New("invalid token catalog")
	ErrDuplicateTheme = errors.New("duplicate theme")
)

//go:embed data/themes.json
var defaultThemes []byte

//go:embed data/themes.schema.json
var themesSchema []byte

var documentSchema = sync.OnceValue(func() *validation.Schema {
	return validation.MustCompile("themes.schema.json", themesSchema)
})

// Token is one themeable design property of a component.
type Token struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ComponentTheme lists the tokens accepted by one component theme function.
type ComponentTheme struct {
	Name              string  `json:"name"`
	ThemeFunctionName string  `json:"themeFunctionName"`
	Description       string  `json:"description,omitempty"`
	Tokens            []Token `json:"tokens"`

	// PrimaryTokens is a curated subset worth setting first.
	PrimaryTokens        []string `json:"primaryTokens,omitempty"`
	PrimaryTokensSummary string   `json:"primaryTokensSummary,omitempty"`
}

// Token returns the named token of the theme.
func (t ComponentTheme) Token(name string) (Token, bool) {
	for _, tok := range t.Tokens {
		if tok.Name == name {
			return tok, true
		}
	}
	return Token{}, false
}

// TokenNames returns the token names in catalog order.
func (t ComponentTheme) TokenNames() []string {
	names := make([]string, len(t.Tokens))
	for i, tok := range t.Tokens {
		names[i] = tok.Name
	}
	return names
}

func (t *ComponentTheme) clone() ComponentTheme {
	out := *t
	out.Tokens = append([]Token(nil), t.Tokens...)
	out.PrimaryTokens = append([]string(nil), t.PrimaryTokens...)
	return out
}

type document struct {
	GeneratedBy string            `json:"generatedBy,omitempty"`
	Themes      []*ComponentTheme `json:"themes"`
}

// Catalog is the read-only token catalog, keyed by component name.
type Catalog struct {
	themes map[string]*ComponentTheme
	names  []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded, generated data file.
// It panics if the embedded data is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultThemes)
		if err != nil {
			panic(fmt.Sprintf("embedded token catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses and validates a token catalog document.
func Load(data []byte) (*Catalog, error) {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidTokens, err)
	}
	if result := documentSchema().Validate(raw); result.HasErrors() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTokens, result.Err())
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTokens, err)
	}

	c := &Catalog{themes: make(map[string]*ComponentTheme, len(doc.Themes))}
	for _, theme := range doc.Themes {
		if _, exists := c.themes[theme.Name]; exists {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidTokens, ErrDuplicateTheme, theme.Name)
		}
		seen := make(map[string]bool, len(theme.Tokens))
		for _, tok := range theme.Tokens {
			if seen[tok.Name] {
				return nil, fmt.Errorf("%w: %s: token %q is listed twice", ErrInvalidTokens, theme.Name, tok.Name)
			}
			seen[tok.Name] = true
		}
		for _, p := range theme.PrimaryTokens {
			if !seen[p] {
				return nil, fmt.Errorf("%w: %s: primary token %q is not a token of the theme", ErrInvalidTokens, theme.Name, p)
			}
		}
		c.themes[theme.Name] = theme
		c.names = append(c.names, theme.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Names returns every component name, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Lookup returns a copy of the theme for a component. The name must match
// exactly; callers normalize user input first.
func (c *Catalog) Lookup(name string) (ComponentTheme, bool) {
	t, ok := c.themes[name]
	if !ok {
		return ComponentTheme{}, false
	}
	return t.clone(), true
}

// HasToken reports whether component's theme defines token.
func (c *Catalog) HasToken(component, token string) bool {
	t, ok := c.themes[component]
	if !ok {
		return false
	}
	_, ok = t.Token(token)
	return ok
}

// Search returns the component names containing query, case-insensitively.
// Names starting with query come first; each group is sorted. An empty query
// matches nothing.
func (c *Catalog) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []string{}
	if q == "" {
		return out
	}
	var rest []string
	for _, name := range c.names {
		switch {
		case strings.HasPrefix(name, q):
			out = append(out, name)
		case strings.Contains(name, q):
			rest = append(rest, name)
		}
	}
	return append(out, rest...)
}

// CleanDescription collapses a token description onto a single line so it
// fits in a table cell.
func CleanDescription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
