// Package query filters catalog components with expr-lang boolean
// expressions such as
//
//	compound && "calendar" in relatedThemes
//	"react" in platforms && len(tokens) > 10
//
// Each component is evaluated against an environment with these fields:
//
//	name           string    component name
//	compound       bool      built from other themeable components
//	base           bool      has variants and is not themed directly
//	variants       []string  variant component names
//	relatedThemes  []string  child themes of a compound component
//	platforms      []string  platforms the component is available on
//	tokens         []string  token names of the component's theme
package query

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/platform"
	"github.com/themesmith/themesmith/pkg/tokens"
)

// ErrEmptyExpression is returned by Compile for a blank expression.
var ErrEmptyExpression = errors.New("filter expression is empty")

// Filter is a compiled component filter.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile type-checks expression against the component environment. The
// expression must evaluate to a bool.
func Compile(expression string) (*Filter, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	program, err := expr.Compile(expression, expr.Env(sampleEnv()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.source
}

// Match reports whether env satisfies the filter.
func (f *Filter) Match(env map[string]interface{}) (bool, error) {
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", f.source, err)
	}
	return out.(bool), nil
}

// Select returns the names that satisfy the filter, in the given order.
func (f *Filter) Select(c *catalog.Catalog, t *tokens.Catalog, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		ok, err := f.Match(Env(c, t, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// Env builds the expression environment for one component. Unknown names
// get an environment with only the name set.
func Env(c *catalog.Catalog, t *tokens.Catalog, name string) map[string]interface{} {
	env := sampleEnv()
	env["name"] = name

	m, ok := c.Component(name)
	if !ok {
		return env
	}
	env["compound"] = m.IsCompound()
	env["base"] = m.HasVariants()
	env["variants"] = nonNil(m.Variants)
	if m.Compound != nil {
		env["relatedThemes"] = nonNil(m.Compound.RelatedThemes)
	}

	platforms := []string{}
	for _, p := range platform.Targets() {
		if c.IsAvailable(name, p) {
			platforms = append(platforms, string(p))
		}
	}
	env["platforms"] = platforms

	if theme, ok := t.Lookup(name); ok {
		env["tokens"] = theme.TokenNames()
	}
	return env
}

func sampleEnv() map[string]interface{} {
	return map[string]interface{}{
		"name":          "",
		"compound":      false,
		"base":          false,
		"variants":      []string{},
		"relatedThemes": []string{},
		"platforms":     []string{},
		"tokens":        []string{},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
