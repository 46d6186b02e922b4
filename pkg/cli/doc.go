// Package cli provides the command-line interface for themesmith.
//
// Commands:
//   - mcp: Run the MCP server over stdio for editors and AI assistants
//   - serve: Run the MCP server over Streamable HTTP
//   - components: List catalog components, filtered by platform or glob
//   - selectors: Show a component's selectors per platform
//   - scopes: Show a compound component's scopes on one platform
//   - derivations: Show the child tokens a compound derives
//   - guidance: Print the guidance document an agent receives
//   - theme: Generate component theme Sass
//   - validate: Check the component catalog and overlays
//   - config: Show the effective configuration and config file paths
//   - topics: Longer help on theming concepts
//   - version: Show version information
//
// Every command reads the layered configuration from package cliconfig and
// accepts --json for machine-readable output.
//
// Usage:
//
//	themesmith mcp
//	themesmith serve --port 9091
//	themesmith components --platform react --match '*-button'
//	themesmith derivations date-picker flat-button
//	themesmith theme avatar --platform angular --set background='#09f'
//	themesmith validate overlays/brand.yaml
package cli
