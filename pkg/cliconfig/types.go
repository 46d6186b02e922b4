// Package cliconfig provides configuration types and loading for the themesmith CLI.
package cliconfig

// CLIConfig represents the complete configuration for the themesmith CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (THEMESMITH_*)
// 3. Local config file (.themesmithrc.yaml in current directory)
// 4. Global config file (~/.config/themesmith/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// MCP HTTP transport settings
	Port           int      `yaml:"port" json:"port"`
	Path           string   `yaml:"path" json:"path"`
	AllowRemote    bool     `yaml:"allowRemote" json:"allowRemote"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty" json:"allowedOrigins,omitempty"`
	SessionTimeout int      `yaml:"sessionTimeout" json:"sessionTimeout"`
	MaxSessions    int      `yaml:"maxSessions" json:"maxSessions"`

	// GuidanceCacheTTL is in seconds; 0 disables the guidance cache.
	GuidanceCacheTTL int `yaml:"guidanceCacheTtl" json:"guidanceCacheTtl"`

	// Catalog settings
	DefaultPlatform string   `yaml:"defaultPlatform" json:"defaultPlatform"`
	CatalogOverlays []string `yaml:"catalogOverlays,omitempty" json:"catalogOverlays,omitempty"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Source tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records the keys present in a loaded file, so an explicit
	// false or 0 can override a lower-precedence value.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)
