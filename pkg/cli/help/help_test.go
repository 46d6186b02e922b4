package help

import (
	"strings"
	"testing"
)

func TestGetTopic_AllTopicsEmbedded(t *testing.T) {
	for _, topic := range AvailableTopics {
		content, err := GetTopic(topic)
		if err != nil {
			t.Errorf("GetTopic(%q) error = %v", topic, err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			t.Errorf("topic %q is empty", topic)
		}
		if TopicDescriptions[topic] == "" {
			t.Errorf("topic %q has no description", topic)
		}
	}
}

func TestGetTopic_Normalizes(t *testing.T) {
	content, err := GetTopic("  Compound ")
	if err != nil {
		t.Fatalf("GetTopic() error = %v", err)
	}
	if !strings.Contains(content, "adaptive-contrast") {
		t.Error("compound topic should describe the transforms")
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	_, err := GetTopic("templating")
	if err == nil {
		t.Fatal("expected error for unknown topic")
	}
	if !strings.Contains(err.Error(), "overlays") {
		t.Errorf("error should list the available topics, got %q", err)
	}
}
