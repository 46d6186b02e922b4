package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied, unless the key was
// explicitly present in a loaded file.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.LogFile != "" {
		target.LogFile = source.LogFile
		target.Sources["logFile"] = sourceType
	}
	if source.Port != 0 {
		target.Port = source.Port
		target.Sources["port"] = sourceType
	}
	if source.Path != "" {
		target.Path = source.Path
		target.Sources["path"] = sourceType
	}
	if boolIsSet(source, "allowRemote") {
		target.AllowRemote = source.AllowRemote
		target.Sources["allowRemote"] = sourceType
	}
	if len(source.AllowedOrigins) > 0 {
		target.AllowedOrigins = append([]string(nil), source.AllowedOrigins...)
		target.Sources["allowedOrigins"] = sourceType
	}
	if source.SessionTimeout != 0 {
		target.SessionTimeout = source.SessionTimeout
		target.Sources["sessionTimeout"] = sourceType
	}
	if source.MaxSessions != 0 {
		target.MaxSessions = source.MaxSessions
		target.Sources["maxSessions"] = sourceType
	}
	// 0 is meaningful here (cache off), so presence decides.
	if source.GuidanceCacheTTL != 0 || source.SetFields["guidanceCacheTtl"] {
		target.GuidanceCacheTTL = source.GuidanceCacheTTL
		target.Sources["guidanceCacheTtl"] = sourceType
	}
	if source.DefaultPlatform != "" {
		target.DefaultPlatform = source.DefaultPlatform
		target.Sources["defaultPlatform"] = sourceType
	}
	// Overlays accumulate: a local file adds to the global list.
	if len(source.CatalogOverlays) > 0 {
		target.CatalogOverlays = append(target.CatalogOverlays, source.CatalogOverlays...)
		target.Sources["catalogOverlays"] = sourceType
	}
	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. When SetFields is available (file-loaded
// configs), it checks for the key's presence. Otherwise only true counts as set.
func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "allowRemote":
		return cfg.AllowRemote
	case "json":
		return cfg.JSON
	}
	return false
}
