package mcp

import (
	"fmt"
	"strings"
)

// ToolHandler is the signature for tool execution functions.
type ToolHandler func(args map[string]interface{}, session *MCPSession, server *Server) (*ToolResult, error)

// Tool represents a registered MCP tool.
type Tool struct {
	Definition ToolDefinition
	Handler    ToolHandler
}

// ToolRegistry manages all registered MCP tools.
// Tools are stored in a slice to preserve registration order for tools/list.
type ToolRegistry struct {
	tools  []*Tool
	byName map[string]*Tool
	server *Server
}

// NewToolRegistry creates a new tool registry and registers all built-in tools.
func NewToolRegistry(server *Server) *ToolRegistry {
	r := &ToolRegistry{
		tools:  make([]*Tool, 0, 8),
		byName: make(map[string]*Tool, 8),
		server: server,
	}

	r.registerBuiltinTools()
	return r
}

func (r *ToolRegistry) registerBuiltinTools() {
	handlers := map[string]ToolHandler{
		"get_component_design_tokens": handleGetComponentDesignTokens,
		"resolve_component_selectors": handleResolveComponentSelectors,
		"list_components":             handleListComponents,
		"get_child_token_derivations": handleGetChildTokenDerivations,
		"get_compound_scopes":         handleGetCompoundScopes,
		"create_component_theme":      handleCreateComponentTheme,
	}

	// Register in definition order (from tool_defs.go) to guarantee
	// consistent ordering in tools/list responses.
	for _, def := range allToolDefinitions() {
		handler, ok := handlers[def.Name]
		if !ok {
			continue
		}
		r.Register(&Tool{
			Definition: def,
			Handler:    handler,
		})
	}
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(tool *Tool) {
	r.tools = append(r.tools, tool)
	r.byName[tool.Definition.Name] = tool
}

// Get retrieves a tool by name.
func (r *ToolRegistry) Get(name string) *Tool {
	return r.byName[name]
}

// List returns all tool definitions in registration order.
func (r *ToolRegistry) List() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.Definition)
	}
	return defs
}

// Execute executes a tool by name.
func (r *ToolRegistry) Execute(name string, args map[string]interface{}, session *MCPSession) (*ToolResult, error) {
	tool := r.byName[name]
	if tool == nil {
		return ToolResultError("tool not found: " + name), nil
	}
	return tool.Handler(args, session, r.server)
}

// =============================================================================
// Argument extraction helpers
// =============================================================================

func getString(args map[string]interface{}, key, defaultVal string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}

// requireString returns a trimmed, non-empty string argument.
func requireString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}
	return s, nil
}

// getStringMap converts an object argument to a string map. Numbers and
// booleans are formatted so that `"size": 2` is accepted as the Sass value 2.
func getStringMap(args map[string]interface{}, key string) (map[string]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an object", key)
	}
	result := make(map[string]string, len(m))
	for k, val := range m {
		switch x := val.(type) {
		case string:
			result[k] = x
		case float64, bool:
			result[k] = fmt.Sprint(x)
		default:
			return nil, fmt.Errorf("%s.%s must be a string", key, k)
		}
	}
	return result, nil
}
