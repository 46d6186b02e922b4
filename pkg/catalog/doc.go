// Package catalog is the component metadata registry and the selector,
// scope and token-derivation resolution built on it.
//
// The catalog is loaded once from an embedded YAML document (see
// data/components.yaml), optionally extended with overlay documents, and is
// immutable afterwards. Every accessor returns copies, so a *Catalog can be
// shared between goroutines without locking.
//
// # Selectors
//
// Each component has selectors per selector family (see package platform).
// A family value is null (unavailable), one selector, or an ordered list of
// selectors the same theme applies to. ResolveSelectors always returns a
// slice; an empty slice is the "not applicable" answer for unknown
// components as well as unavailable ones.
//
// # Compound components
//
// A compound component lists the child themes it embeds (relatedThemes),
// optional named scopes beyond its own selector (additionalScopes), the
// scope each child is rendered in (childScopes, defaulting to "inline") and
// token derivation rules keyed by "childTheme.childToken".
//
// # Integrity
//
// Load checks every document against a JSON Schema and then checks the
// cross-reference invariants (variant closure, scope references, the reserved
// "inline" scope name, derivation key shapes). A violation fails the load;
// it is never a per-request condition.
package catalog
