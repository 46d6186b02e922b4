package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		// Lowercase
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},

		// Uppercase
		{"DEBUG", LevelDebug},
		{"INFO", LevelInfo},
		{"WARN", LevelWarn},
		{"WARNING", LevelWarn},
		{"ERROR", LevelError},

		// Mixed case (the fix: these should all work now)
		{"Debug", LevelDebug},
		{"Info", LevelInfo},
		{"Warn", LevelWarn},
		{"Warning", LevelWarn},
		{"Error", LevelError},
		{"dEbUg", LevelDebug},

		// Empty string defaults to Info
		{"", LevelInfo},

		// Unrecognized defaults to Info
		{"trace", LevelInfo},
		{"fatal", LevelInfo},
		{"unknown", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"Json", FormatJSON},
		{"text", FormatText},
		{"TEXT", FormatText},
		{"", FormatText},
		{"yaml", FormatText}, // unrecognized defaults to text
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewTee(t *testing.T) {
	var console, file bytes.Buffer

	logger := NewTee(Config{Level: LevelInfo, Format: FormatText, Output: &console}, &file)
	logger.Debug("hidden")
	logger.Info("catalog loaded", "components", 50)

	if strings.Contains(console.String(), "hidden") || strings.Contains(file.String(), "hidden") {
		t.Error("debug record should be filtered on both outputs")
	}
	if !strings.Contains(console.String(), "msg=\"catalog loaded\" components=50") {
		t.Errorf("console output = %q", console.String())
	}

	var rec map[string]interface{}
	if err := json.Unmarshal(file.Bytes(), &rec); err != nil {
		t.Fatalf("file output is not JSON: %v (%q)", err, file.String())
	}
	if rec["msg"] != "catalog loaded" || rec["components"] != float64(50) {
		t.Errorf("file record = %v", rec)
	}
}

func TestNewTee_NilFile(t *testing.T) {
	var console bytes.Buffer
	logger := NewTee(Config{Level: LevelInfo, Format: FormatJSON, Output: &console}, nil)
	logger.With("component", "mcp").WithGroup("req").Info("ok", "id", 1)

	if !strings.Contains(console.String(), `"req":{"id":1}`) {
		t.Errorf("output = %q", console.String())
	}
}

func TestNewTee_WithAttrsReachBothOutputs(t *testing.T) {
	var console, file bytes.Buffer
	logger := NewTee(Config{Level: LevelWarn, Format: FormatText, Output: &console}, &file).
		With("session", "s1")

	logger.Info("info only")
	logger.Warn("overlay rejected")

	if strings.Contains(console.String(), "info only") || strings.Contains(file.String(), "info only") {
		t.Error("records below the level should be dropped on both outputs")
	}
	if !strings.Contains(console.String(), `msg="overlay rejected" session=s1`) {
		t.Errorf("console output = %q", console.String())
	}
	if !strings.Contains(file.String(), `"session":"s1"`) {
		t.Errorf("file output = %q", file.String())
	}
	if !logger.Enabled(context.Background(), LevelWarn) {
		t.Error("tee logger should accept records at its level")
	}
}
