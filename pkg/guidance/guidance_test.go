package guidance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/platform"
	"github.com/themesmith/themesmith/pkg/tokens"
)

func TestBuild_NotFound(t *testing.T) {
	b := NewDefaultBuilder()

	doc := b.Build("unknown-component-xyz")
	require.NotNil(t, doc)
	assert.False(t, doc.Found)
	assert.True(t, doc.GenericListing)
	assert.Len(t, doc.Suggestions, GenericListingSize)
	assert.Equal(t, tokens.Default().Names()[:GenericListingSize], doc.Suggestions)

	md := doc.Markdown()
	assert.Contains(t, md, NotFoundHeading)
	assert.Contains(t, md, "`unknown-component-xyz`")
	assert.Contains(t, md, "Available components (first 20 of 50)")
	assert.Contains(t, md, "- `action-strip`")
	assert.Contains(t, md, "narrow the query")
}

func TestBuild_NotFoundSuggestions(t *testing.T) {
	b := NewDefaultBuilder()

	doc := b.Build("picker")
	assert.False(t, doc.Found)
	assert.False(t, doc.GenericListing)
	assert.Equal(t, []string{"date-picker", "date-range-picker", "time-picker"}, doc.Suggestions)
	assert.Contains(t, doc.Markdown(), "## Did you mean")

	// "t" matches far more than ten names; the list is capped.
	doc = b.Build("t")
	assert.False(t, doc.Found)
	assert.Len(t, doc.Suggestions, MaxSuggestions)
}

func TestBuild_EmptyNameIsNotFound(t *testing.T) {
	doc := NewDefaultBuilder().Build("   ")
	assert.False(t, doc.Found)
	assert.True(t, doc.GenericListing)
	assert.NotEmpty(t, doc.Suggestions)
}

func TestBuild_NormalizesName(t *testing.T) {
	doc := NewDefaultBuilder().Build("  Avatar ")
	require.True(t, doc.Found)
	assert.Equal(t, "avatar", doc.Query)
	assert.Nil(t, doc.Compound)
	assert.Empty(t, doc.Variants)
}

func TestBuild_Simple(t *testing.T) {
	doc := NewDefaultBuilder().Build("avatar")
	md := doc.Markdown()

	assert.Contains(t, md, "# avatar")
	assert.Contains(t, md, "Theme function: `avatar-theme`")
	assert.Contains(t, md, "## Primary tokens")
	assert.Contains(t, md, "- `background`")
	assert.Contains(t, md, "| `color` | color | The text color of the avatar initials or icon. |")
	assert.NotContains(t, md, "## Compound component")
	assert.Contains(t, md, NextActionTool)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(md), "and the token values to set)."))
}

func TestBuild_Variants(t *testing.T) {
	doc := NewDefaultBuilder().Build("button")
	require.True(t, doc.Found)
	assert.Equal(t, []string{"flat-button", "contained-button", "outlined-button", "fab-button"}, doc.Variants)

	md := doc.Markdown()
	assert.Contains(t, md, "Variants available")
	assert.Contains(t, md, "`flat-button`, `contained-button`, `outlined-button`, `fab-button`")
	// The base tokens are still described.
	assert.Contains(t, md, "| `background` | color |")
}

func TestBuild_VariantOf(t *testing.T) {
	doc := NewDefaultBuilder().Build("flat-button")
	require.True(t, doc.Found)
	assert.Equal(t, []string{"button"}, doc.VariantOf)
	assert.Contains(t, doc.Markdown(), "`flat-button` is a variant of `button`")

	base := NewDefaultBuilder().Build("button")
	assert.Empty(t, base.VariantOf)
	assert.NotContains(t, base.Markdown(), "Variant theme")
}

func TestBuild_Compound(t *testing.T) {
	doc := NewDefaultBuilder().Build("date-picker")
	require.True(t, doc.Found)
	require.NotNil(t, doc.Compound)

	c := doc.Compound
	assert.Equal(t, []string{"input-group", "calendar", "flat-button"}, c.RelatedThemes)
	require.Len(t, c.Platforms, 4)

	got := make([]platform.Platform, len(c.Platforms))
	for i, p := range c.Platforms {
		got[i] = p.Platform
	}
	assert.Equal(t, []platform.Platform{platform.Angular, platform.WebComponents, platform.Blazor, platform.React}, got)

	angular := c.Platforms[0]
	assert.Equal(t, []catalog.ScopeRow{
		{Scope: catalog.ScopeInline, Selector: "igx-date-picker"},
		{Scope: "overlay", Selector: ".igx-date-picker"},
	}, angular.Scopes)
	assert.Len(t, angular.RelatedThemes, 3)

	require.Len(t, c.Derivations, 1)
	assert.Equal(t, "flat-button.foreground", c.Derivations[0].Key())

	md := doc.Markdown()
	assert.Contains(t, md, "## Compound component")
	assert.Contains(t, md, "1. Choose the target platform.")
	assert.Contains(t, md, "### angular (Ignite UI for Angular)")
	assert.Contains(t, md, "### react (Ignite UI for React)")
	assert.Contains(t, md, "| overlay | `.igx-date-picker` |")
	assert.Contains(t, md, "| calendar | overlay | `.igx-date-picker` |")
	assert.Contains(t, md, "| input-group | inline | `igx-date-picker` |")
	assert.Contains(t, md, "| calendar | inline | `igc-date-picker` |")
	assert.Contains(t, md, "| `flat-button.foreground` | `adaptive-contrast` of `calendar.content-background` |")
	assert.Contains(t, md, "### Guidance")
}

func TestBuild_CompoundWithUnavailablePlatform(t *testing.T) {
	doc := NewDefaultBuilder().Build("time-picker")
	require.NotNil(t, doc.Compound)

	wc := doc.Compound.Platforms[1]
	assert.Equal(t, platform.WebComponents, wc.Platform)
	assert.Empty(t, wc.Scopes)
	require.Len(t, wc.RelatedThemes, 2)

	md := doc.Markdown()
	assert.Contains(t, md, "No scope selectors are defined for this platform.")
	assert.Contains(t, md, "| flat-button | inline | N/A |")
}

func TestBuild_MultiSelectorCellsAreEscaped(t *testing.T) {
	md := NewDefaultBuilder().Build("grid").Markdown()
	assert.Contains(t, md, "`igx-grid \\| igx-tree-grid \\| igx-hierarchical-grid")
	assert.Contains(t, md, "(shade: 600)")
}

func TestBuild_NoDerivations(t *testing.T) {
	overlay := `
components:
  chip-list:
    selectors:
      angular: igx-chips-area
      webcomponents: null
    compound:
      description: A group of chips.
      relatedThemes: [chip]
`
	components, err := catalog.Load(catalog.DefaultData(), []byte(overlay))
	require.NoError(t, err)

	themes, err := tokens.Load([]byte(`{"themes": [
		{"name": "chip-list", "themeFunctionName": "chip-list-theme", "tokens": []}
	]}`))
	require.NoError(t, err)

	doc := NewBuilder(components, themes).Build("chip-list")
	require.NotNil(t, doc.Compound)
	assert.Empty(t, doc.Compound.Derivations)

	md := doc.Markdown()
	assert.Contains(t, md, "### Token derivations\n\n"+NoDerivations)
	assert.Contains(t, md, NoTokens)
	assert.NotContains(t, md, "## Primary tokens")
	assert.NotContains(t, md, "### Guidance")
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewDefaultBuilder()
	for _, name := range []string{"grid", "combo", "date-range-picker", "avatar", "nope"} {
		assert.Equal(t, b.Build(name).Markdown(), b.Build(name).Markdown(), name)
	}
}

func TestDocument_HTML(t *testing.T) {
	html, err := NewDefaultBuilder().Build("date-picker").HTML()
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>date-picker</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<code>.igx-date-picker</code>")
	assert.Contains(t, html, "<li>Choose the target platform.</li>")
}

// Every token a derivation reads or writes must exist in the token catalog,
// and every related theme must have a theme of its own.
func TestCatalogs_CrossReferences(t *testing.T) {
	components := catalog.Default()
	themes := tokens.Default()

	for _, name := range components.Names() {
		_, ok := themes.Lookup(name)
		assert.True(t, ok, "component %s has no token theme", name)
	}

	for _, name := range components.Compounds() {
		info := components.Compound(name)
		for _, related := range info.RelatedThemes {
			assert.True(t, components.Has(related), "%s: related theme %s is not a component", name, related)
		}
		for key, d := range info.TokenDerivations {
			for _, ref := range []string{key, d.From} {
				theme, token, _ := strings.Cut(ref, ".")
				assert.True(t, themes.HasToken(theme, token), "%s: %s is not a known token", name, ref)
			}
		}
	}
}
