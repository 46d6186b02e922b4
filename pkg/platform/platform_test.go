package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		platform Platform
		want     Family
	}{
		{Angular, FamilyAngular},
		{WebComponents, FamilyWebComponents},
		{React, FamilyWebComponents},
		{Blazor, FamilyWebComponents},
		{Generic, FamilyWebComponents},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			assert.Equal(t, tt.want, FamilyOf(tt.platform))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Platform
		wantErr bool
	}{
		{"angular", Angular, false},
		{"  Angular ", Angular, false},
		{"WEBCOMPONENTS", WebComponents, false},
		{"react", React, false},
		{"blazor", Blazor, false},
		{"generic", Generic, false},
		{"vue", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown platform")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_EveryPlatformRegistered(t *testing.T) {
	for _, p := range All() {
		info, ok := Lookup(p)
		require.True(t, ok, "platform %s missing from registry", p)
		assert.Equal(t, p, info.Platform)
		assert.NotEmpty(t, info.ImportPath)
		assert.NotEmpty(t, info.VariablePrefix)
		assert.Equal(t, FamilyOf(p), info.Family, "registry family disagrees with FamilyOf for %s", p)
	}
}

func TestTargets_GuidanceOrder(t *testing.T) {
	assert.Equal(t, []Platform{Angular, WebComponents, Blazor, React}, Targets())

	// Callers must not be able to mutate the shared order.
	targets := Targets()
	targets[0] = Generic
	assert.Equal(t, Angular, Targets()[0])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ignite UI for Angular", Angular.DisplayName())
	assert.Equal(t, "unknown", Platform("unknown").DisplayName())
}
