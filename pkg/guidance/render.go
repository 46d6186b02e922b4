package guidance

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/tokens"
)

// Fixed headings and statements of a guidance document.
const (
	NotFoundHeading = "Component not found"
	NoDerivations   = "None."
	NoTokens        = "This component has no customizable tokens."
)

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

func htmlRenderer() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdown
}

// HTML renders the document's markdown to HTML with GitHub-flavored tables.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer().Convert([]byte(d.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("failed to render guidance HTML: %w", err)
	}
	return buf.String(), nil
}

// Markdown renders the document.
func (d *Document) Markdown() string {
	var w mdWriter
	if !d.Found {
		d.writeNotFound(&w)
		return w.String()
	}

	w.line("# %s", d.Query)
	if d.Theme.Description != "" {
		w.blank()
		w.line("%s", d.Theme.Description)
	}
	w.blank()
	w.line("Theme function: `%s`", d.Theme.ThemeFunctionName)

	if len(d.Variants) > 0 {
		w.blank()
		w.line("> **Variants available.** `%s` is a base component with variant-specific themes: %s.",
			d.Query, codeList(d.Variants))
		w.line("> The tokens below belong to the base theme. Prefer a variant theme for targeted styling.")
	}

	if len(d.VariantOf) > 0 {
		w.blank()
		w.line("> **Variant theme.** `%s` is a variant of %s; it only styles this variant's selectors.",
			d.Query, codeList(d.VariantOf))
	}

	if d.Compound != nil {
		d.writeCompound(&w)
	}

	d.writeTokens(&w)

	w.blank()
	w.line("## Next step")
	w.blank()
	w.line("Apply these tokens with `%s` (component `%s`, a target platform, and the token values to set).",
		NextActionTool, d.Query)

	return w.String()
}

func (d *Document) writeNotFound(w *mdWriter) {
	w.line("# %s: `%s`", NotFoundHeading, d.Query)
	w.blank()
	w.line("No component named `%s` exists in the theming catalog.", d.Query)
	w.blank()
	if d.GenericListing {
		w.line("## Available components (first %d of %d)", len(d.Suggestions), d.CatalogSize)
	} else {
		w.line("## Did you mean")
	}
	w.blank()
	for _, name := range d.Suggestions {
		w.line("- `%s`", name)
	}
	w.blank()
	w.line("Retry with one of the names above, or narrow the query to a more specific component name.")
}

func (d *Document) writeCompound(w *mdWriter) {
	c := d.Compound

	w.blank()
	w.line("## Compound component")
	w.blank()
	w.line("%s", c.Description)
	w.blank()
	w.line("Related themes: %s.", codeList(c.RelatedThemes))
	w.blank()
	w.line("### How to theme it")
	w.blank()
	w.line("1. Choose the target platform.")
	w.line("2. Look up the tokens of each related theme.")
	w.line("3. Apply each related theme's tokens inside the scope selector listed for it below.")

	for _, p := range c.Platforms {
		w.blank()
		w.line("### %s (%s)", p.Platform, p.DisplayName)
		w.blank()
		w.line("**Scopes**")
		w.blank()
		if len(p.Scopes) == 0 {
			w.line("No scope selectors are defined for this platform.")
		} else {
			w.line("| Scope | Selector |")
			w.line("| --- | --- |")
			for _, s := range p.Scopes {
				w.line("| %s | %s |", s.Scope, selectorCell(s.Selector))
			}
		}
		w.blank()
		w.line("**Related themes**")
		w.blank()
		w.line("| Theme | Scope | Selector |")
		w.line("| --- | --- | --- |")
		for _, r := range p.RelatedThemes {
			w.line("| %s | %s | %s |", r.Theme, r.Scope, selectorCell(r.Selector))
		}
	}

	w.blank()
	w.line("### Token derivations")
	w.blank()
	if len(c.Derivations) == 0 {
		w.line("%s", NoDerivations)
	} else {
		w.line("| Child token | Derived from |")
		w.line("| --- | --- |")
		for _, row := range c.Derivations {
			w.line("| `%s` | %s |", row.Key(), escapeCell(row.Derivation.Describe()))
		}
	}

	if c.Guidance != "" {
		w.blank()
		w.line("### Guidance")
		w.blank()
		w.line("%s", c.Guidance)
	}
}

func (d *Document) writeTokens(w *mdWriter) {
	t := d.Theme

	if len(t.PrimaryTokens) > 0 {
		w.blank()
		w.line("## Primary tokens")
		w.blank()
		if t.PrimaryTokensSummary != "" {
			w.line("%s", t.PrimaryTokensSummary)
			w.blank()
		}
		for _, name := range t.PrimaryTokens {
			w.line("- `%s`", name)
		}
	}

	w.blank()
	w.line("## Tokens")
	w.blank()
	if len(t.Tokens) == 0 {
		w.line("%s", NoTokens)
		return
	}
	w.line("| Name | Type | Description |")
	w.line("| --- | --- | --- |")
	for _, tok := range t.Tokens {
		w.line("| `%s` | %s | %s |", tok.Name, tok.Type, tokens.CleanDescription(tok.Description))
	}
}

func selectorCell(sel string) string {
	if sel == catalog.NotApplicable {
		return sel
	}
	return "`" + escapeCell(sel) + "`"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func codeList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}

type mdWriter struct {
	b strings.Builder
}

func (w *mdWriter) line(format string, args ...interface{}) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *mdWriter) blank() {
	w.b.WriteByte('\n')
}

func (w *mdWriter) String() string {
	return w.b.String()
}
