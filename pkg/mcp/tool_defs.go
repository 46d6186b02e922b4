package mcp

import "github.com/themesmith/themesmith/pkg/platform"

// allToolDefinitions returns every tool definition in display order: lookup
// tools first, then compound tools, then generation.
func allToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		defGetComponentDesignTokens,
		defResolveComponentSelectors,
		defListComponents,

		defGetChildTokenDerivations,
		defGetCompoundScopes,

		defCreateComponentTheme,
	}
}

func platformProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        platform.Names(),
	}
}

var defGetComponentDesignTokens = ToolDefinition{
	Name: "get_component_design_tokens",
	Description: "Get the theming guidance for a component: its theme function, design tokens, variants, and, " +
		"for compound components, the scope selectors and related themes per platform plus the child tokens " +
		"derived automatically. Returns markdown. Unknown names return suggestions instead of an error.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"component": map[string]interface{}{
				"type":        "string",
				"description": "Component name (e.g., avatar, date-picker, flat-button)",
			},
		},
		"required": []string{"component"},
	},
}

var defResolveComponentSelectors = ToolDefinition{
	Name: "resolve_component_selectors",
	Description: "Resolve the CSS selectors that host a component on a platform. Omit platform to resolve " +
		"for every target platform. An empty selector list means the component is not available there.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"component": map[string]interface{}{
				"type":        "string",
				"description": "Component name",
			},
			"platform": platformProperty("Target platform; all targets when omitted"),
		},
		"required": []string{"component"},
	},
}

var defListComponents = ToolDefinition{
	Name: "list_components",
	Description: "List component names, sorted. Filter by platform availability, a glob pattern such as \"*-button\" " +
		"and/or a filter expression.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"platform": platformProperty("Only components available on this platform"),
			"match": map[string]interface{}{
				"type":        "string",
				"description": "Glob pattern on component names (e.g., date-*, *-button)",
			},
			"where": map[string]interface{}{
				"type": "string",
				"description": "Boolean filter expression over name, compound, base, variants, relatedThemes, platforms " +
					"and tokens (e.g., compound && \"calendar\" in relatedThemes)",
			},
		},
	},
}

var defGetChildTokenDerivations = ToolDefinition{
	Name: "get_child_token_derivations",
	Description: "Get the tokens of a child theme that a compound component computes from other tokens. " +
		"Returns a JSON object keyed by child token name. Setting one of these tokens yourself overrides the derivation.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"compound": map[string]interface{}{
				"type":        "string",
				"description": "Compound component name (e.g., date-picker)",
			},
			"child": map[string]interface{}{
				"type":        "string",
				"description": "Child theme name (e.g., flat-button)",
			},
		},
		"required": []string{"compound", "child"},
	},
}

var defGetCompoundScopes = ToolDefinition{
	Name: "get_compound_scopes",
	Description: "Get the scope selectors of a compound component on a platform and the scope each related " +
		"theme must be applied in. Selectors that do not exist on the platform are reported as N/A.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"component": map[string]interface{}{
				"type":        "string",
				"description": "Compound component name",
			},
			"platform": platformProperty("Target platform"),
		},
		"required": []string{"component", "platform"},
	},
}

var defCreateComponentTheme = ToolDefinition{
	Name: "create_component_theme",
	Description: "Generate Sass that themes one component on a platform. Token values are emitted verbatim. " +
		"Base components with variants (e.g., button) are rejected; theme a variant such as flat-button instead. " +
		"Tokens that compound components derive automatically are reported as notes in the output.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"component": map[string]interface{}{
				"type":        "string",
				"description": "Component name",
			},
			"platform": platformProperty("Target platform"),
			"tokens": map[string]interface{}{
				"type":                 "object",
				"description":          "Token name to Sass value (e.g., {\"background\": \"#ff0000\"})",
				"additionalProperties": map[string]interface{}{"type": []string{"string", "number"}},
			},
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Theme variable base name in kebab-case; defaults to custom-<component>",
			},
		},
		"required": []string{"component", "platform", "tokens"},
	},
}
