package sassgen

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/platform"
	"github.com/themesmith/themesmith/pkg/tokens"
)

// Errors returned by Generate.
var (
	ErrUnknownComponent = errors.New("unknown component")
	ErrBaseComponent    = errors.New("component has variants; theme a variant instead")
	ErrUnavailable      = errors.New("component is not available on this platform")
	ErrUnknownToken     = errors.New("unknown token")
	ErrNoTokens         = errors.New("no token values given")
	ErrInvalidName      = errors.New("invalid theme name")
	ErrInvalidValue     = errors.New("invalid token value")
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// Request describes one component theme to generate.
type Request struct {
	Component string
	Platform  platform.Platform

	// Name is the theme variable base name. Defaults to "custom-<component>".
	Name string

	// Tokens maps token names to Sass values, emitted verbatim.
	Tokens map[string]string
}

// Note explains that a token set by the caller is computed automatically
// when the component is used inside a compound component.
type Note struct {
	Compound   string                  `json:"compound"`
	Token      string                  `json:"token"`
	Derivation catalog.TokenDerivation `json:"derivation"`
}

func (n Note) String() string {
	return fmt.Sprintf("inside %s, `%s` is derived: %s", n.Compound, n.Token, n.Derivation.Describe())
}

// Result is the generated Sass source and what went into it.
type Result struct {
	Component    string            `json:"component"`
	Platform     platform.Platform `json:"platform"`
	Variable     string            `json:"variable"`
	Function     string            `json:"function"`
	Selectors    []string          `json:"selectors"`
	CSSVariables []string          `json:"cssVariables"`
	Notes        []Note            `json:"notes,omitempty"`
	Source       string            `json:"source"`
}

// Generator produces component theme Sass from the catalogs.
type Generator struct {
	components *catalog.Catalog
	tokens     *tokens.Catalog
}

// New returns a Generator over the given catalogs.
func New(components *catalog.Catalog, themes *tokens.Catalog) *Generator {
	return &Generator{components: components, tokens: themes}
}

// Generate validates the request and renders the theme source. Base
// components that only stand for their variants are rejected, so one token
// set never silently applies to every button flavour at once.
func (g *Generator) Generate(req Request) (*Result, error) {
	name := strings.ToLower(strings.TrimSpace(req.Component))
	meta, ok := g.components.Component(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, req.Component)
	}
	if meta.HasVariants() {
		return nil, fmt.Errorf("%w: %s (variants: %s)", ErrBaseComponent, name, strings.Join(meta.Variants, ", "))
	}

	info, ok := platform.Lookup(req.Platform)
	if !ok {
		return nil, fmt.Errorf("unknown platform %q", req.Platform)
	}

	selectors := g.components.ResolveSelectors(name, req.Platform)
	if len(selectors) == 0 {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnavailable, name, req.Platform)
	}

	theme, ok := g.tokens.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no token theme", ErrUnknownComponent, name)
	}

	if len(req.Tokens) == 0 {
		return nil, fmt.Errorf("%w for %s (available: %s)", ErrNoTokens, name, strings.Join(theme.TokenNames(), ", "))
	}
	keys := make([]string, 0, len(req.Tokens))
	for k := range req.Tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var unknown []string
	for _, k := range keys {
		if _, ok := theme.Token(k); !ok {
			unknown = append(unknown, k)
			continue
		}
		if err := checkValue(req.Tokens[k]); err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidValue, k, err)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w for %s: %s", ErrUnknownToken, name, strings.Join(unknown, ", "))
	}

	base := req.Name
	if base == "" {
		base = "custom-" + name
	}
	if !namePattern.MatchString(base) {
		return nil, fmt.Errorf("%w: %q must be lowercase kebab-case", ErrInvalidName, base)
	}

	res := &Result{
		Component: name,
		Platform:  req.Platform,
		Variable:  "$" + base + "-theme",
		Function:  theme.ThemeFunctionName,
		Selectors: selectors,
		Notes:     g.derivedNotes(name, keys),
	}
	for _, k := range keys {
		res.CSSVariables = append(res.CSSVariables, info.VariablePrefix+name+"-"+k)
	}
	res.Source = render(info, res, keys, req.Tokens)
	return res, nil
}

// derivedNotes reports the requested tokens that a compound component
// derives on its own.
func (g *Generator) derivedNotes(component string, keys []string) []Note {
	var notes []Note
	for _, compound := range g.components.Compounds() {
		rules := g.components.DerivationsForChild(compound, component)
		for _, k := range keys {
			if d, ok := rules[k]; ok {
				notes = append(notes, Note{Compound: compound, Token: k, Derivation: d})
			}
		}
	}
	return notes
}

func checkValue(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("value is empty")
	}
	if strings.ContainsAny(v, ";{}\r\n") {
		return errors.New("value must be a single Sass expression")
	}
	if strings.Contains(v, "/*") || strings.Contains(v, "//") {
		return errors.New("value must not contain a comment")
	}
	return nil
}

func render(info platform.Info, res *Result, keys []string, values map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@use '%s' as *;\n\n", info.ImportPath)
	fmt.Fprintf(&b, "// %s theme for %s.\n", res.Component, info.DisplayName)
	for _, n := range res.Notes {
		fmt.Fprintf(&b, "// Note: %s\n", n)
	}

	fmt.Fprintf(&b, "%s: %s(\n", res.Variable, res.Function)
	for i, k := range keys {
		sep := ","
		if i == len(keys)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    $%s: %s%s\n", k, strings.TrimSpace(values[k]), sep)
	}
	b.WriteString(");\n\n")

	b.WriteString(strings.Join(res.Selectors, ",\n"))
	b.WriteString(" {\n")
	fmt.Fprintf(&b, "    @include tokens(%s);\n", res.Variable)
	b.WriteString("}\n")

	return b.String()
}
