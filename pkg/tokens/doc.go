// Package tokens is the platform-independent catalog of themeable design
// tokens, keyed by component name.
//
// The catalog is produced by an offline extraction step and embedded as
// data/themes.json. It is validated against data/themes.schema.json when
// loaded and is immutable afterwards.
package tokens
