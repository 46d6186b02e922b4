package cliconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/themesmith/themesmith/pkg/platform"
)

// Validate checks value ranges and enumerations. All problems are reported
// together.
func (c *CLIConfig) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range (1-65535)", c.Port))
	}
	if !strings.HasPrefix(c.Path, "/") {
		errs = append(errs, fmt.Errorf("path %q must start with '/'", c.Path))
	}
	if c.SessionTimeout < 1 {
		errs = append(errs, fmt.Errorf("sessionTimeout %d must be at least 1 second", c.SessionTimeout))
	}
	if c.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("maxSessions %d must be at least 1", c.MaxSessions))
	}
	if c.GuidanceCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("guidanceCacheTtl %d cannot be negative", c.GuidanceCacheTTL))
	}
	if _, err := platform.Parse(c.DefaultPlatform); err != nil {
		errs = append(errs, fmt.Errorf("defaultPlatform: %w", err))
	}

	return errors.Join(errs...)
}
