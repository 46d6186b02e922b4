// Package mcp implements the Model Context Protocol (MCP) server for themesmith.
//
// MCP lets AI agents look up component theming metadata (design tokens,
// platform selectors, compound-component scopes and derived child tokens) and
// generate component theme Sass through JSON-RPC 2.0.
//
// # Protocol Version
//
// The server prefers protocol version 2025-06-18 and negotiates any version in
// SupportedProtocolVersions. It offers Streamable HTTP and stdio transports.
//
// # Tools
//
// Lookup:
//   - get_component_design_tokens, resolve_component_selectors, list_components
//
// Compound components:
//   - get_child_token_derivations, get_compound_scopes
//
// Generation:
//   - create_component_theme
//
// # Resources
//
// Resources use the theming:// URI scheme:
//   - theming://platforms - Platform registry
//   - theming://components - Component summaries
//   - theming://guidance/{component} - Guidance markdown
//   - theming://guidance/{component}.html - Guidance rendered to HTML
//
// # Transports
//
// Stdio (primary): themesmith mcp, newline-delimited JSON-RPC over stdin/stdout.
// HTTP (secondary): themesmith serve, Streamable HTTP on :9091/mcp.
//
// # Security
//
// By default, the HTTP transport only accepts connections from localhost.
package mcp
