package cliconfig

// DefaultLogLevel is the default minimum log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log output format.
const DefaultLogFormat = "text"

// DefaultPort is the default MCP HTTP port.
const DefaultPort = 9091

// DefaultPath is the default MCP HTTP endpoint path.
const DefaultPath = "/mcp"

// DefaultSessionTimeout is the default MCP session idle timeout in seconds.
const DefaultSessionTimeout = 1800

// DefaultMaxSessions is the default maximum number of MCP HTTP sessions.
const DefaultMaxSessions = 100

// DefaultGuidanceCacheTTL is the default guidance cache lifetime in seconds.
const DefaultGuidanceCacheTTL = 600

// DefaultPlatform is the platform used when a command needs one and none is given.
const DefaultPlatform = "angular"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
		Port:             DefaultPort,
		Path:             DefaultPath,
		SessionTimeout:   DefaultSessionTimeout,
		MaxSessions:      DefaultMaxSessions,
		GuidanceCacheTTL: DefaultGuidanceCacheTTL,
		DefaultPlatform:  DefaultPlatform,
		Sources:          make(map[string]string),
	}

	for _, key := range []string{
		"logLevel", "logFormat", "port", "path", "allowRemote",
		"sessionTimeout", "maxSessions", "guidanceCacheTtl", "defaultPlatform", "json",
	} {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
