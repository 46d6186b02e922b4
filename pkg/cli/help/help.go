// Package help provides embedded documentation for themesmith CLI help topics.
package help

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed topics/*.md
var Topics embed.FS

// AvailableTopics lists all available help topics.
var AvailableTopics = []string{"compound", "platforms", "query", "overlays", "config", "mcp"}

// TopicDescriptions provides short descriptions for each topic.
var TopicDescriptions = map[string]string{
	"compound":  "Compound components, scopes and token derivations",
	"platforms": "Platforms and selector families",
	"query":     "Component filter expressions",
	"overlays":  "Component catalog overlay files",
	"config":    "Configuration files and environment",
	"mcp":       "Connecting MCP clients",
}

// GetTopic retrieves the content of a help topic by name.
func GetTopic(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := TopicDescriptions[name]; !ok {
		return "", fmt.Errorf("unknown help topic: %s\n\nAvailable topics:\n%s", name, ListTopics())
	}

	content, err := Topics.ReadFile("topics/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("failed to read topic %s: %w", name, err)
	}
	return string(content), nil
}

// ListTopics returns a formatted list of available topics.
func ListTopics() string {
	var sb strings.Builder
	for _, topic := range AvailableTopics {
		fmt.Fprintf(&sb, "  %-12s %s\n", topic, TopicDescriptions[topic])
	}
	return sb.String()
}
