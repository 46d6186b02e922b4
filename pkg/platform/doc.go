// Package platform is the static registry of rendering platforms themesmith
// generates theme code for.
//
// Four component platforms are supported (Angular, Web Components, React and
// Blazor) plus a generic target for framework-agnostic Sass. Each platform
// carries its Sass import path and CSS variable prefix.
//
// # Selector families
//
// Component selectors and compound scopes are stored per selector family, not
// per platform. Angular is its own family; React, Blazor and generic resolve
// through the webcomponents family. FamilyOf is the only place that mapping is
// made, so a platform can be given its own family later without touching
// callers.
package platform
