package mcp

import (
	"encoding/json"
	"strings"

	"github.com/themesmith/themesmith/pkg/guidance"
	"github.com/themesmith/themesmith/pkg/platform"
)

// Resource URIs. Guidance documents are addressed per component through
// the templates below.
const (
	URIPlatforms      = "theming://platforms"
	URIComponents     = "theming://components"
	guidanceURIPrefix = "theming://guidance/"
	htmlSuffix        = ".html"
)

// ComponentSummary is one entry of the theming://components resource.
type ComponentSummary struct {
	Name      string   `json:"name"`
	Compound  bool     `json:"compound"`
	Variants  []string `json:"variants,omitempty"`
	Platforms []string `json:"platforms"`
}

// ResourceProvider serves the read-only theming resources.
type ResourceProvider struct {
	server *Server
}

// NewResourceProvider creates a new resource provider.
func NewResourceProvider(server *Server) *ResourceProvider {
	return &ResourceProvider{server: server}
}

// List returns the fixed resources.
func (p *ResourceProvider) List() []ResourceDefinition {
	return []ResourceDefinition{
		{
			URI:         URIPlatforms,
			Name:        "Platforms",
			Description: "Target platforms with their Sass import path, selector prefix and CSS variable prefix",
			MimeType:    ContentTypeJSON,
		},
		{
			URI:         URIComponents,
			Name:        "Components",
			Description: "Every catalog component with its variants and the platforms it is available on",
			MimeType:    ContentTypeJSON,
		},
	}
}

// Templates returns the parameterized guidance resources.
func (p *ResourceProvider) Templates() []ResourceTemplate {
	return []ResourceTemplate{
		{
			URITemplate: guidanceURIPrefix + "{component}",
			Name:        "Component guidance",
			Description: "Theming guidance for one component as markdown",
			MimeType:    ContentTypeMarkdown,
		},
		{
			URITemplate: guidanceURIPrefix + "{component}" + htmlSuffix,
			Name:        "Component guidance (HTML)",
			Description: "Theming guidance for one component rendered to HTML",
			MimeType:    ContentTypeHTML,
		},
	}
}

// Read returns the contents of a resource.
func (p *ResourceProvider) Read(uri string) ([]ResourceContent, *JSONRPCError) {
	switch {
	case uri == URIPlatforms:
		return p.readJSON(uri, p.platforms())
	case uri == URIComponents:
		return p.readJSON(uri, p.componentSummaries())
	case strings.HasPrefix(uri, guidanceURIPrefix):
		return p.readGuidance(uri)
	default:
		return nil, ResourceNotFoundError(uri)
	}
}

func (p *ResourceProvider) readJSON(uri string, v interface{}) ([]ResourceContent, *JSONRPCError) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, InternalError(err)
	}
	return []ResourceContent{{URI: uri, MimeType: ContentTypeJSON, Text: string(data)}}, nil
}

// readGuidance serves guidance only for names in the token catalog; the
// not-found document with suggestions is reserved for the tool.
func (p *ResourceProvider) readGuidance(uri string) ([]ResourceContent, *JSONRPCError) {
	name := strings.TrimPrefix(uri, guidanceURIPrefix)
	asHTML := strings.HasSuffix(name, htmlSuffix)
	name = guidance.Normalize(strings.TrimSuffix(name, htmlSuffix))

	if _, ok := p.server.themes.Lookup(name); !ok {
		return nil, ResourceNotFoundError(uri)
	}

	if !asHTML {
		return []ResourceContent{{
			URI:      uri,
			MimeType: ContentTypeMarkdown,
			Text:     p.server.guidance.Markdown(name),
		}}, nil
	}

	html, err := p.server.guidance.HTML(name)
	if err != nil {
		return nil, InternalError(err)
	}
	return []ResourceContent{{URI: uri, MimeType: ContentTypeHTML, Text: html}}, nil
}

func (p *ResourceProvider) platforms() []platform.Info {
	out := make([]platform.Info, 0, len(platform.All()))
	for _, pl := range platform.All() {
		if info, ok := platform.Lookup(pl); ok {
			out = append(out, info)
		}
	}
	return out
}

func (p *ResourceProvider) componentSummaries() []ComponentSummary {
	components := p.server.components
	names := components.Names()
	out := make([]ComponentSummary, 0, len(names))
	for _, name := range names {
		meta, _ := components.Component(name)
		summary := ComponentSummary{
			Name:      name,
			Compound:  meta.IsCompound(),
			Variants:  meta.Variants,
			Platforms: []string{},
		}
		for _, target := range platform.Targets() {
			if components.IsAvailable(name, target) {
				summary.Platforms = append(summary.Platforms, target.String())
			}
		}
		out = append(out, summary)
	}
	return out
}
