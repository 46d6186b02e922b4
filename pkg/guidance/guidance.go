package guidance

import (
	"strings"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/platform"
	"github.com/themesmith/themesmith/pkg/tokens"
)

const (
	// MaxSuggestions caps the fuzzy-search suggestions of a not-found result.
	MaxSuggestions = 10

	// GenericListingSize is how many catalog names a not-found result lists
	// when the search finds nothing.
	GenericListingSize = 20

	// NextActionTool is the tool a guidance document points to.
	NextActionTool = "create_component_theme"
)

// PlatformSection holds the compound scope tables for one platform.
type PlatformSection struct {
	Platform      platform.Platform         `json:"platform"`
	DisplayName   string                    `json:"displayName"`
	Scopes        []catalog.ScopeRow        `json:"scopes"`
	RelatedThemes []catalog.RelatedThemeRow `json:"relatedThemes"`
}

// CompoundSection is the compound-component part of a guidance document.
type CompoundSection struct {
	Description   string                  `json:"description"`
	RelatedThemes []string                `json:"relatedThemes"`
	Platforms     []PlatformSection       `json:"platforms"`
	Derivations   []catalog.DerivationRow `json:"derivations"`
	Guidance      string                  `json:"guidance,omitempty"`
}

// Document is the assembled guidance for one component. A document for an
// unknown component is still complete: Found is false and Suggestions lists
// names to try instead.
type Document struct {
	// Query is the normalized component name that was looked up.
	Query string `json:"query"`
	Found bool   `json:"found"`

	// Suggestions are search matches, or a generic listing when
	// GenericListing is set. Only used when Found is false.
	Suggestions    []string `json:"suggestions,omitempty"`
	GenericListing bool     `json:"genericListing,omitempty"`
	CatalogSize    int      `json:"catalogSize,omitempty"`

	Theme    *tokens.ComponentTheme `json:"theme,omitempty"`
	Variants []string               `json:"variants,omitempty"`
	Compound *CompoundSection       `json:"compound,omitempty"`

	// VariantOf names the base components this component is a variant of.
	VariantOf []string `json:"variantOf,omitempty"`
}

// Builder assembles guidance documents from the component and token catalogs.
// It holds no mutable state and is safe for concurrent use.
type Builder struct {
	components *catalog.Catalog
	tokens     *tokens.Catalog
}

// NewBuilder returns a Builder over the given catalogs.
func NewBuilder(components *catalog.Catalog, themes *tokens.Catalog) *Builder {
	return &Builder{components: components, tokens: themes}
}

// NewDefaultBuilder returns a Builder over the embedded catalogs.
func NewDefaultBuilder() *Builder {
	return NewBuilder(catalog.Default(), tokens.Default())
}

// Normalize lower-cases and trims a user-supplied component name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Build assembles the guidance document for a component. It never fails: an
// unknown name produces a not-found document with suggestions.
func (b *Builder) Build(name string) *Document {
	query := Normalize(name)
	doc := &Document{Query: query}

	theme, ok := b.tokens.Lookup(query)
	if !ok {
		b.fillSuggestions(doc)
		return doc
	}
	doc.Found = true
	doc.Theme = &theme

	meta, ok := b.components.Component(query)
	if !ok {
		return doc
	}
	if meta.HasVariants() {
		doc.Variants = meta.Variants
	}
	doc.VariantOf = b.components.VariantOf(query)
	if meta.IsCompound() {
		doc.Compound = b.compoundSection(query, meta.Compound)
	}
	return doc
}

func (b *Builder) fillSuggestions(doc *Document) {
	doc.CatalogSize = b.tokens.Len()

	matches := b.tokens.Search(doc.Query)
	if len(matches) > 0 {
		if len(matches) > MaxSuggestions {
			matches = matches[:MaxSuggestions]
		}
		doc.Suggestions = matches
		return
	}

	names := b.tokens.Names()
	if len(names) > GenericListingSize {
		names = names[:GenericListingSize]
	}
	doc.Suggestions = names
	doc.GenericListing = true
}

func (b *Builder) compoundSection(name string, info *catalog.CompoundInfo) *CompoundSection {
	section := &CompoundSection{
		Description:   info.Description,
		RelatedThemes: info.RelatedThemes,
		Derivations:   b.components.Derivations(name),
		Guidance:      strings.TrimSpace(info.Guidance),
	}
	for _, p := range platform.Targets() {
		section.Platforms = append(section.Platforms, PlatformSection{
			Platform:      p,
			DisplayName:   p.DisplayName(),
			Scopes:        b.components.ScopeTable(name, p),
			RelatedThemes: b.components.RelatedThemeTable(name, p),
		})
	}
	return section
}
