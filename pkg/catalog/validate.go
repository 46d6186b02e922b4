package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Integrity rules checked by Validate.
const (
	RuleSelectors        = "selectors"
	RuleVariantClosure   = "variant-closure"
	RuleRelatedThemes    = "related-themes"
	RuleChildCoverage    = "child-scope-coverage"
	RuleScopeReference   = "scope-reference"
	RuleReservedScope    = "reserved-scope"
	RuleDerivationKey    = "derivation-key"
	RuleDerivationSource = "derivation-source"
	RuleDerivationArgs   = "derivation-args"
)

// tokenRefPattern matches "component.token" with lowercase kebab segments.
var tokenRefPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*\.[a-z0-9]+(-[a-z0-9]+)*$`)

// Violation is one broken catalog invariant.
type Violation struct {
	Component string `json:"component"`
	Rule      string `json:"rule"`
	Detail    string `json:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: [%s] %s", v.Component, v.Rule, v.Detail)
}

// ValidationError reports every broken invariant of a catalog.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.String()
	}
	return fmt.Sprintf("%s: %d violation(s):\n  %s", ErrInvalidCatalog, len(e.Violations), strings.Join(lines, "\n  "))
}

// Unwrap lets callers match the error with errors.Is(err, ErrInvalidCatalog).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidCatalog
}

// Validate checks the catalog invariants over a set of components and returns
// a *ValidationError listing every violation, or nil.
func Validate(components map[string]*ComponentMetadata) error {
	var violations []Violation
	add := func(component, rule, format string, args ...interface{}) {
		violations = append(violations, Violation{
			Component: component,
			Rule:      rule,
			Detail:    fmt.Sprintf(format, args...),
		})
	}

	for _, name := range sortedKeys(components) {
		m := components[name]
		if m == nil {
			add(name, RuleSelectors, "entry is empty")
			continue
		}

		for _, f := range []struct {
			family string
			value  SelectorValue
		}{
			{"angular", m.Selectors.Angular},
			{"webcomponents", m.Selectors.WebComponents},
		} {
			if f.value != nil && len(f.value) == 0 {
				add(name, RuleSelectors, "%s selector list is empty; use null for an unavailable component", f.family)
			}
			for _, sel := range f.value {
				if strings.TrimSpace(sel) == "" {
					add(name, RuleSelectors, "%s selector list contains a blank selector", f.family)
				}
			}
		}

		for _, variant := range m.Variants {
			if variant == name {
				add(name, RuleVariantClosure, "component lists itself as a variant")
				continue
			}
			if _, ok := components[variant]; !ok {
				add(name, RuleVariantClosure, "variant %q is not a catalog component", variant)
			}
		}

		if m.Compound != nil {
			violations = append(violations, validateCompound(name, m.Compound)...)
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func validateCompound(name string, c *CompoundInfo) []Violation {
	var violations []Violation
	add := func(rule, format string, args ...interface{}) {
		violations = append(violations, Violation{
			Component: name,
			Rule:      rule,
			Detail:    fmt.Sprintf(format, args...),
		})
	}

	related := make(map[string]bool, len(c.RelatedThemes))
	for _, theme := range c.RelatedThemes {
		if related[theme] {
			add(RuleRelatedThemes, "related theme %q is listed twice", theme)
		}
		related[theme] = true
	}

	if _, ok := c.AdditionalScopes[ScopeInline]; ok {
		add(RuleReservedScope, "additionalScopes must not define the reserved scope %q", ScopeInline)
	}

	for _, child := range sortedKeys(c.ChildScopes) {
		if !related[child] {
			add(RuleChildCoverage, "childScopes entry %q is not in relatedThemes", child)
		}
		scope := c.ChildScopes[child]
		for _, f := range []struct {
			family string
			ref    string
		}{
			{"angular", scope.Angular},
			{"webcomponents", scope.WebComponents},
		} {
			if f.ref == "" || f.ref == ScopeInline {
				continue
			}
			if _, ok := c.AdditionalScopes[f.ref]; !ok {
				add(RuleScopeReference, "child %q uses undeclared %s scope %q", child, f.family, f.ref)
			}
		}
	}

	for _, key := range sortedKeys(c.TokenDerivations) {
		d := c.TokenDerivations[key]
		if !tokenRefPattern.MatchString(key) {
			add(RuleDerivationKey, "derivation key %q is not of the form childTheme.tokenName", key)
		} else if child, _, _ := strings.Cut(key, "."); !related[child] {
			add(RuleDerivationKey, "derivation key %q targets %q which is not in relatedThemes", key, child)
		}
		if !tokenRefPattern.MatchString(d.From) {
			add(RuleDerivationSource, "derivation %q has source %q, want component.tokenName", key, d.From)
		}
		if !d.Transform.Valid() {
			add(RuleDerivationSource, "derivation %q has unknown transform %q", key, d.Transform)
		}
		if d.Transform == TransformDynamicShade && len(d.Args) == 0 {
			add(RuleDerivationArgs, "derivation %q uses %s without args", key, d.Transform)
		}
		for _, arg := range sortedKeys(d.Args) {
			switch v := d.Args[arg]; v.(type) {
			case string, int, int64, float64:
			default:
				add(RuleDerivationArgs, "derivation %q arg %q must be a string or number, got %T", key, arg, v)
			}
		}
	}

	return violations
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
