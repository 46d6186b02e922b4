package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/themesmith/themesmith/pkg/platform"
)

// ResolveSelectors returns the CSS selectors for a component on a platform.
// The name must match a catalog key exactly. An unknown component or one that
// is unavailable on the platform yields an empty, non-nil slice.
func (c *Catalog) ResolveSelectors(name string, p platform.Platform) []string {
	m, ok := c.components[name]
	if !ok {
		return []string{}
	}
	return m.Selectors.For(platform.FamilyOf(p)).List()
}

// IsAvailable reports whether the component has at least one selector on p.
func (c *Catalog) IsAvailable(name string, p platform.Platform) bool {
	return len(c.ResolveSelectors(name, p)) > 0
}

// ComponentsForPlatform returns every component available on p, sorted.
func (c *Catalog) ComponentsForPlatform(p platform.Platform) []string {
	out := []string{}
	for _, name := range c.names {
		if c.IsAvailable(name, p) {
			out = append(out, name)
		}
	}
	return out
}

// Match returns the component names matching a glob pattern such as
// "*-button" or "date-*", sorted. An empty pattern matches everything.
func (c *Catalog) Match(pattern string) ([]string, error) {
	if pattern == "" {
		return c.Names(), nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid component pattern %q", pattern)
	}
	out := []string{}
	for _, name := range c.names {
		if ok, _ := doublestar.Match(pattern, name); ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// ChildScopeName returns the scope a child theme occupies inside a compound
// component on p. Children without an explicit assignment for the platform's
// family are applied inline; the default is per family, so a child can be
// inline on webcomponents while living in an overlay on angular.
func ChildScopeName(info *CompoundInfo, child string, p platform.Platform) string {
	if info == nil {
		return ScopeInline
	}
	scope, ok := info.ChildScopes[child]
	if !ok {
		return ScopeInline
	}
	if ref := scope.For(platform.FamilyOf(p)); ref != "" {
		return ref
	}
	return ScopeInline
}

// ScopeSelectors resolves a scope name of a compound component to concrete
// selectors on p. The inline scope is the component's own selectors. An empty
// slice means the scope is not defined for the platform.
func (c *Catalog) ScopeSelectors(info *CompoundInfo, name, scope string, p platform.Platform) []string {
	if scope == ScopeInline {
		return c.ResolveSelectors(name, p)
	}
	if info == nil {
		return []string{}
	}
	sel, ok := info.AdditionalScopes[scope]
	if !ok {
		return []string{}
	}
	return sel.For(platform.FamilyOf(p)).List()
}

// ResolveScopeSelector is ScopeSelectors formatted for display: selectors are
// joined with " | " and a missing scope reads NotApplicable.
func (c *Catalog) ResolveScopeSelector(info *CompoundInfo, name, scope string, p platform.Platform) string {
	return FormatSelectors(c.ScopeSelectors(info, name, scope, p))
}

// ScopeRow is one line of a compound component's scope table.
type ScopeRow struct {
	Scope    string `json:"scope"`
	Selector string `json:"selector"`
}

// RelatedThemeRow is one line of a compound component's related-theme table.
type RelatedThemeRow struct {
	Theme    string `json:"theme"`
	Scope    string `json:"scope"`
	Selector string `json:"selector"`
}

// RelatedThemeTable lists every related theme of a compound component with
// the scope it occupies on p and that scope's selector. Rows whose selector
// is NotApplicable are kept so the relationship stays visible. Unknown or
// non-compound components yield an empty table.
func (c *Catalog) RelatedThemeTable(name string, p platform.Platform) []RelatedThemeRow {
	m, ok := c.components[name]
	if !ok || m.Compound == nil {
		return []RelatedThemeRow{}
	}

	rows := make([]RelatedThemeRow, 0, len(m.Compound.RelatedThemes))
	for _, theme := range m.Compound.RelatedThemes {
		scope := ChildScopeName(m.Compound, theme, p)
		rows = append(rows, RelatedThemeRow{
			Theme:    theme,
			Scope:    scope,
			Selector: c.ResolveScopeSelector(m.Compound, name, scope, p),
		})
	}
	return rows
}

// ScopeTable lists the scopes actually used by a compound component's related
// themes on p, in order of first use. Scopes that do not resolve on p are
// left out.
func (c *Catalog) ScopeTable(name string, p platform.Platform) []ScopeRow {
	rows := []ScopeRow{}
	seen := make(map[string]bool)
	for _, r := range c.RelatedThemeTable(name, p) {
		if seen[r.Scope] || r.Selector == NotApplicable {
			continue
		}
		seen[r.Scope] = true
		rows = append(rows, ScopeRow{Scope: r.Scope, Selector: r.Selector})
	}
	return rows
}

// DerivationsForChild returns the token derivation rules a compound component
// declares for one child theme, keyed by bare child token name. Unknown
// compounds and children without rules both yield an empty map.
func (c *Catalog) DerivationsForChild(compound, child string) map[string]TokenDerivation {
	out := make(map[string]TokenDerivation)
	for token, d := range c.derivations[compound][child] {
		out[token] = d.clone()
	}
	return out
}

// DerivationRow is one flattened derivation rule of a compound component.
type DerivationRow struct {
	Theme      string          `json:"theme"`
	Token      string          `json:"token"`
	Derivation TokenDerivation `json:"derivation"`
}

// Key returns the "childTheme.childToken" form of the row.
func (r DerivationRow) Key() string {
	return r.Theme + "." + r.Token
}

// Derivations flattens the derivation rules of a compound component by
// calling DerivationsForChild once per related theme. Rows follow the
// relatedThemes order, then token name.
func (c *Catalog) Derivations(compound string) []DerivationRow {
	rows := []DerivationRow{}
	m, ok := c.components[compound]
	if !ok || m.Compound == nil {
		return rows
	}
	for _, theme := range m.Compound.RelatedThemes {
		rules := c.DerivationsForChild(compound, theme)
		for _, token := range sortedKeys(rules) {
			rows = append(rows, DerivationRow{Theme: theme, Token: token, Derivation: rules[token]})
		}
	}
	return rows
}

func formatArgs(args map[string]interface{}) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, args[k])
	}
	return strings.Join(parts, ", ")
}
