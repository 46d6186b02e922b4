package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CLIConfig)
		wantErr string
	}{
		{name: "valid defaults", mutate: func(*CLIConfig) {}},
		{name: "mixed case level", mutate: func(c *CLIConfig) { c.LogLevel = "DEBUG"; c.LogFormat = "JSON" }},
		{name: "cache disabled", mutate: func(c *CLIConfig) { c.GuidanceCacheTTL = 0 }},
		{name: "bad level", mutate: func(c *CLIConfig) { c.LogLevel = "trace" }, wantErr: `logLevel "trace"`},
		{name: "bad format", mutate: func(c *CLIConfig) { c.LogFormat = "yaml" }, wantErr: `logFormat "yaml"`},
		{name: "port too high", mutate: func(c *CLIConfig) { c.Port = 70000 }, wantErr: "port 70000 is out of range"},
		{name: "port zero", mutate: func(c *CLIConfig) { c.Port = 0 }, wantErr: "port 0 is out of range"},
		{name: "relative path", mutate: func(c *CLIConfig) { c.Path = "mcp" }, wantErr: `path "mcp"`},
		{name: "session timeout", mutate: func(c *CLIConfig) { c.SessionTimeout = 0 }, wantErr: "sessionTimeout 0"},
		{name: "max sessions", mutate: func(c *CLIConfig) { c.MaxSessions = -1 }, wantErr: "maxSessions -1"},
		{name: "negative ttl", mutate: func(c *CLIConfig) { c.GuidanceCacheTTL = -5 }, wantErr: "guidanceCacheTtl -5"},
		{name: "unknown platform", mutate: func(c *CLIConfig) { c.DefaultPlatform = "vue" }, wantErr: `unknown platform "vue"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Errorf("expected error containing %q, got nil", tt.wantErr)
			} else if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestCLIConfig_Validate_ReportsAll(t *testing.T) {
	cfg := NewDefault()
	cfg.Port = -1
	cfg.Path = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"port -1", `path ""`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestMergeConfig_BasicFields(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		source := &CLIConfig{
			Port:            9000,
			DefaultPlatform: "react",
		}

		MergeConfig(target, source, SourceLocal)

		if target.Port != 9000 {
			t.Errorf("expected port 9000, got %d", target.Port)
		}
		if target.DefaultPlatform != "react" {
			t.Errorf("expected react, got %q", target.DefaultPlatform)
		}
		if target.Sources["port"] != SourceLocal {
			t.Errorf("expected source 'local', got %q", target.Sources["port"])
		}
		if target.Sources["path"] != SourceDefault {
			t.Errorf("expected path to stay default, got %q", target.Sources["path"])
		}
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{}, SourceLocal)

		if target.Port != DefaultPort {
			t.Errorf("expected default port %d, got %d", DefaultPort, target.Port)
		}
		if target.GuidanceCacheTTL != DefaultGuidanceCacheTTL {
			t.Errorf("expected default ttl, got %d", target.GuidanceCacheTTL)
		}
	})

	t.Run("explicit zero ttl disables the cache", func(t *testing.T) {
		target := NewDefault()
		source := &CLIConfig{SetFields: map[string]bool{"guidanceCacheTtl": true}}

		MergeConfig(target, source, SourceLocal)

		if target.GuidanceCacheTTL != 0 {
			t.Errorf("expected ttl 0, got %d", target.GuidanceCacheTTL)
		}
	})

	t.Run("handles boolean false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.AllowRemote = true

		MergeConfig(target, &CLIConfig{SetFields: map[string]bool{"allowRemote": true}}, SourceLocal)

		if target.AllowRemote {
			t.Error("expected allowRemote to be false after merge")
		}
	})

	t.Run("does not merge boolean false without SetFields", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true

		MergeConfig(target, &CLIConfig{}, SourceLocal)

		if !target.JSON {
			t.Error("expected json to remain true without SetFields")
		}
	})

	t.Run("overlays accumulate", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{CatalogOverlays: []string{"/a.yaml"}}, SourceGlobal)
		MergeConfig(target, &CLIConfig{CatalogOverlays: []string{"/b.yaml"}}, SourceLocal)

		if strings.Join(target.CatalogOverlays, ",") != "/a.yaml,/b.yaml" {
			t.Errorf("overlays = %v", target.CatalogOverlays)
		}
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceLocal)

		if target.Port != DefaultPort {
			t.Errorf("expected port unchanged, got %d", target.Port)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".themesmithrc.yaml")
	writeFile(t, path, `
logLevel: debug
allowRemote: false
guidanceCacheTtl: 0
catalogOverlays:
  - overlays/brand.yaml
  - /abs/extra.yaml
`)

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	for _, key := range []string{"logLevel", "allowRemote", "guidanceCacheTtl", "catalogOverlays"} {
		if !cfg.SetFields[key] {
			t.Errorf("SetFields[%s] should be true", key)
		}
	}
	if cfg.SetFields["port"] {
		t.Error("SetFields[port] should be false")
	}
	want := []string{filepath.Join(dir, "overlays", "brand.yaml"), "/abs/extra.yaml"}
	if strings.Join(cfg.CatalogOverlays, ",") != strings.Join(want, ",") {
		t.Errorf("CatalogOverlays = %v, want %v", cfg.CatalogOverlays, want)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfigFile(filepath.Join(dir, "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "port: 9091\nport: [unclosed\n")
	_, err := LoadConfigFile(path)
	if !IsConfigError(err) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), path) {
		t.Errorf("error %q should start with the path", err)
	}

	writeFile(t, path, "port: abc\n")
	_, err = LoadConfigFile(path)
	ce, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if ce.Line != 1 {
		t.Errorf("Line = %d, want 1 (%s)", ce.Line, ce.Message)
	}
}

func TestLoadAll_Precedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	writeFile(t, filepath.Join(home, GlobalConfigDir, "config.yaml"), "port: 9100\nlogFormat: json\ndefaultPlatform: blazor\n")

	work := t.TempDir()
	t.Chdir(work)
	writeFile(t, filepath.Join(work, ".themesmithrc.yaml"), "port: 9200\njson: true\n")

	t.Setenv(EnvPort, "9300")
	t.Setenv(EnvJSON, "false")

	cfg, err := LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	checks := []struct {
		key    string
		got    interface{}
		want   interface{}
		source string
	}{
		{"port", cfg.Port, 9300, SourceEnv},
		{"json", cfg.JSON, false, SourceEnv},
		{"logFormat", cfg.LogFormat, "json", SourceGlobal},
		{"defaultPlatform", cfg.DefaultPlatform, "blazor", SourceGlobal},
		{"path", cfg.Path, DefaultPath, SourceDefault},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.key, c.got, c.want)
		}
		if cfg.Sources[c.key] != c.source {
			t.Errorf("%s source = %q, want %q", c.key, cfg.Sources[c.key], c.source)
		}
	}
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvAllowRemote, "true")
	t.Setenv(EnvGuidanceCacheTTL, "0")
	t.Setenv(EnvCatalogOverlays, "/one.yaml"+string(os.PathListSeparator)+" /two.yaml ")

	cfg := NewDefault()
	if err := LoadEnvConfig(cfg); err != nil {
		t.Fatalf("LoadEnvConfig() error = %v", err)
	}

	if cfg.LogLevel != "warn" || cfg.Sources["logLevel"] != SourceEnv {
		t.Errorf("LogLevel = %q from %q", cfg.LogLevel, cfg.Sources["logLevel"])
	}
	if !cfg.AllowRemote {
		t.Error("AllowRemote should be true")
	}
	if cfg.GuidanceCacheTTL != 0 {
		t.Errorf("GuidanceCacheTTL = %d, want 0", cfg.GuidanceCacheTTL)
	}
	if strings.Join(cfg.CatalogOverlays, ",") != "/one.yaml,/two.yaml" {
		t.Errorf("CatalogOverlays = %v", cfg.CatalogOverlays)
	}
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		EnvPort:             "ninety",
		EnvGuidanceCacheTTL: "10m",
		EnvAllowRemote:      "maybe",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			err := LoadEnvConfig(NewDefault())
			if err == nil || !strings.Contains(err.Error(), name) {
				t.Errorf("expected error naming %s, got %v", name, err)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
