// Package guidance assembles the per-component theming guide served to
// assistants: tokens, variants, and for compound components the scope and
// derivation tables of every platform.
//
// Build never fails. An unknown component yields a not-found Document that
// carries suggestions. Documents render to Markdown, or to HTML via goldmark.
package guidance
