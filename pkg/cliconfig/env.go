package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variables read by LoadEnvConfig.
const (
	EnvLogLevel         = "THEMESMITH_LOG_LEVEL"
	EnvLogFormat        = "THEMESMITH_LOG_FORMAT"
	EnvLogFile          = "THEMESMITH_LOG_FILE"
	EnvPort             = "THEMESMITH_PORT"
	EnvPath             = "THEMESMITH_PATH"
	EnvAllowRemote      = "THEMESMITH_ALLOW_REMOTE"
	EnvGuidanceCacheTTL = "THEMESMITH_GUIDANCE_CACHE_TTL"
	EnvPlatform         = "THEMESMITH_PLATFORM"
	EnvCatalogOverlays  = "THEMESMITH_CATALOG_OVERLAYS"
	EnvJSON             = "THEMESMITH_JSON"
)

// LoadEnvConfig applies THEMESMITH_* environment variables to cfg.
// THEMESMITH_CATALOG_OVERLAYS is a list separated like PATH.
func LoadEnvConfig(cfg *CLIConfig) error {
	env := &CLIConfig{SetFields: make(map[string]bool)}

	env.LogLevel = os.Getenv(EnvLogLevel)
	env.LogFormat = os.Getenv(EnvLogFormat)
	env.LogFile = os.Getenv(EnvLogFile)
	env.Path = os.Getenv(EnvPath)
	env.DefaultPlatform = os.Getenv(EnvPlatform)

	if v, ok := os.LookupEnv(EnvPort); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvPort, v)
		}
		env.Port = n
	}
	if v, ok := os.LookupEnv(EnvGuidanceCacheTTL); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a number of seconds", EnvGuidanceCacheTTL, v)
		}
		env.GuidanceCacheTTL = n
		env.SetFields["guidanceCacheTtl"] = true
	}
	for name, target := range map[string]*bool{EnvAllowRemote: &env.AllowRemote, EnvJSON: &env.JSON} {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", name, v)
		}
		*target = b
	}
	_, env.SetFields["allowRemote"] = os.LookupEnv(EnvAllowRemote)
	_, env.SetFields["json"] = os.LookupEnv(EnvJSON)

	if v := os.Getenv(EnvCatalogOverlays); v != "" {
		for _, p := range filepath.SplitList(v) {
			if p = strings.TrimSpace(p); p != "" {
				env.CatalogOverlays = append(env.CatalogOverlays, p)
			}
		}
	}

	MergeConfig(cfg, env, SourceEnv)
	return nil
}
