package mcp

import (
	"errors"
	"strings"

	"github.com/themesmith/themesmith/pkg/guidance"
	"github.com/themesmith/themesmith/pkg/platform"
	"github.com/themesmith/themesmith/pkg/query"
	"github.com/themesmith/themesmith/pkg/sassgen"
)

// =============================================================================
// Precondition Helpers
// =============================================================================

// requireComponent reads the named argument and checks it against the
// catalog. The error result lists close matches when there are any.
func requireComponent(args map[string]interface{}, key string, server *Server) (string, *ToolResult) {
	raw, err := requireString(args, key)
	if err != nil {
		return "", ToolResultError(err.Error())
	}
	name := guidance.Normalize(raw)
	if server.components.Has(name) {
		return name, nil
	}
	if hits := server.themes.Search(name); len(hits) > 0 {
		if len(hits) > guidance.MaxSuggestions {
			hits = hits[:guidance.MaxSuggestions]
		}
		return "", ToolResultErrorf("unknown component %q; did you mean: %s", raw, strings.Join(hits, ", "))
	}
	return "", ToolResultErrorf("unknown component %q; use list_components to see valid names", raw)
}

// optionalPlatform parses a platform argument. ok is false when it is absent.
func optionalPlatform(args map[string]interface{}) (p platform.Platform, ok bool, errResult *ToolResult) {
	raw := getString(args, "platform", "")
	if strings.TrimSpace(raw) == "" {
		return "", false, nil
	}
	p, err := platform.Parse(raw)
	if err != nil {
		return "", false, ToolResultError(err.Error())
	}
	return p, true, nil
}

func requirePlatform(args map[string]interface{}) (platform.Platform, *ToolResult) {
	p, ok, errResult := optionalPlatform(args)
	if errResult != nil {
		return "", errResult
	}
	if !ok {
		return "", ToolResultErrorf("platform is required (valid: %s)", strings.Join(platform.Names(), ", "))
	}
	return p, nil
}

// =============================================================================
// Tool Handlers
// =============================================================================

// handleGetComponentDesignTokens returns the guidance document. It never
// fails on an unknown name: the document itself carries the suggestions.
func handleGetComponentDesignTokens(args map[string]interface{}, _ *MCPSession, server *Server) (*ToolResult, error) {
	name, err := requireString(args, "component")
	if err != nil {
		return ToolResultError(err.Error()), nil
	}
	return ToolResultText(server.guidance.Markdown(name)), nil
}

func handleResolveComponentSelectors(args map[string]interface{}, _ *MCPSession, server *Server) (*ToolResult, error) {
	name, errResult := requireComponent(args, "component", server)
	if errResult != nil {
		return errResult, nil
	}
	p, ok, errResult := optionalPlatform(args)
	if errResult != nil {
		return errResult, nil
	}

	resolve := func(p platform.Platform) SelectorResult {
		selectors := server.components.ResolveSelectors(name, p)
		return SelectorResult{
			Component: name,
			Platform:  p.String(),
			Selectors: selectors,
			Available: len(selectors) > 0,
		}
	}

	if ok {
		return ToolResultJSON(resolve(p))
	}
	results := make([]SelectorResult, 0, len(platform.Targets()))
	for _, target := range platform.Targets() {
		results = append(results, resolve(target))
	}
	return ToolResultJSON(results)
}

func handleListComponents(args map[string]interface{}, _ *MCPSession, server *Server) (*ToolResult, error) {
	p, byPlatform, errResult := optionalPlatform(args)
	if errResult != nil {
		return errResult, nil
	}
	match := strings.TrimSpace(getString(args, "match", ""))

	names, err := server.components.Match(match)
	if err != nil {
		return ToolResultError(err.Error()), nil
	}
	if byPlatform {
		filtered := make([]string, 0, len(names))
		for _, name := range names {
			if server.components.IsAvailable(name, p) {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}
	where := strings.TrimSpace(getString(args, "where", ""))
	if where != "" {
		filter, err := query.Compile(where)
		if err != nil {
			return ToolResultError(err.Error()), nil
		}
		if names, err = filter.Select(server.components, server.themes, names); err != nil {
			return ToolResultError(err.Error()), nil
		}
	}

	return ToolResultJSON(ComponentList{
		Platform:   p.String(),
		Match:      match,
		Where:      where,
		Count:      len(names),
		Components: names,
	})
}

// handleGetChildTokenDerivations reports the derivation rules for one child.
// Unknown pairs are not errors; they simply have no rules.
func handleGetChildTokenDerivations(args map[string]interface{}, _ *MCPSession, server *Server) (*ToolResult, error) {
	compound, err := requireString(args, "compound")
	if err != nil {
		return ToolResultError(err.Error()), nil
	}
	child, err := requireString(args, "child")
	if err != nil {
		return ToolResultError(err.Error()), nil
	}
	compound, child = guidance.Normalize(compound), guidance.Normalize(child)

	return ToolResultJSON(DerivationsResult{
		Compound:    compound,
		Child:       child,
		Derivations: server.components.DerivationsForChild(compound, child),
	})
}

func handleGetCompoundScopes(args map[string]interface{}, _ *MCPSession, server *Server) (*ToolResult, error) {
	name, errResult := requireComponent(args, "component", server)
	if errResult != nil {
		return errResult, nil
	}
	p, errResult := requirePlatform(args)
	if errResult != nil {
		return errResult, nil
	}

	return ToolResultJSON(CompoundScopesResult{
		Component:     name,
		Platform:      p.String(),
		Compound:      server.components.Compound(name) != nil,
		Scopes:        server.components.ScopeTable(name, p),
		RelatedThemes: server.components.RelatedThemeTable(name, p),
	})
}

// handleCreateComponentTheme renders Sass for one component. Generator
// errors become tool errors so the caller can correct the request.
func handleCreateComponentTheme(args map[string]interface{}, _ *MCPSession, server *Server) (*ToolResult, error) {
	name, errResult := requireComponent(args, "component", server)
	if errResult != nil {
		return errResult, nil
	}
	p, errResult := requirePlatform(args)
	if errResult != nil {
		return errResult, nil
	}
	values, err := getStringMap(args, "tokens")
	if err != nil {
		return ToolResultError(err.Error()), nil
	}

	res, err := server.generator.Generate(sassgen.Request{
		Component: name,
		Platform:  p,
		Name:      strings.TrimSpace(getString(args, "name", "")),
		Tokens:    values,
	})
	if err != nil {
		if errors.Is(err, sassgen.ErrBaseComponent) {
			return ToolResultErrorf("%v. Call get_component_design_tokens on a variant to see its tokens.", err), nil
		}
		return ToolResultError(err.Error()), nil
	}

	return ToolResultText(res.Source), nil
}
