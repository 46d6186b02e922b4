package sassgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/platform"
	"github.com/themesmith/themesmith/pkg/tokens"
)

func newGenerator() *Generator {
	return New(catalog.Default(), tokens.Default())
}

func TestGenerate_Angular(t *testing.T) {
	res, err := newGenerator().Generate(Request{
		Component: "avatar",
		Platform:  platform.Angular,
		Tokens: map[string]string{
			"color":      "white",
			"background": "#09f",
		},
	})
	require.NoError(t, err)

	want := `@use 'igniteui-angular/theming' as *;

// avatar theme for Ignite UI for Angular.
$custom-avatar-theme: avatar-theme(
    $background: #09f,
    $color: white
);

igx-avatar {
    @include tokens($custom-avatar-theme);
}
`
	assert.Equal(t, want, res.Source)
	assert.Equal(t, "$custom-avatar-theme", res.Variable)
	assert.Equal(t, []string{"--igx-avatar-background", "--igx-avatar-color"}, res.CSSVariables)
	assert.Empty(t, res.Notes)
}

func TestGenerate_ReactUsesWebComponentSelectors(t *testing.T) {
	res, err := newGenerator().Generate(Request{
		Component: " Slider ",
		Platform:  platform.React,
		Name:      "brand-slider",
		Tokens:    map[string]string{"thumb-color": "var(--brand)"},
	})
	require.NoError(t, err)

	assert.Equal(t, "slider", res.Component)
	assert.Equal(t, []string{"igc-slider", "igc-range-slider"}, res.Selectors)
	assert.Contains(t, res.Source, "@use 'igniteui-theming' as *;")
	assert.Contains(t, res.Source, "$brand-slider-theme: slider-theme(\n    $thumb-color: var(--brand)\n);")
	assert.Contains(t, res.Source, "igc-slider,\nigc-range-slider {")
	assert.Equal(t, []string{"--ig-slider-thumb-color"}, res.CSSVariables)
}

func TestGenerate_DerivedTokenNotes(t *testing.T) {
	res, err := newGenerator().Generate(Request{
		Component: "flat-button",
		Platform:  platform.Angular,
		Tokens:    map[string]string{"foreground": "red"},
	})
	require.NoError(t, err)

	compounds := make([]string, len(res.Notes))
	for i, n := range res.Notes {
		compounds[i] = n.Compound
		assert.Equal(t, "foreground", n.Token)
	}
	assert.Equal(t, []string{"date-picker", "date-range-picker", "time-picker"}, compounds)
	assert.Contains(t, res.Source, "// Note: inside date-picker, `foreground` is derived: `adaptive-contrast` of `calendar.content-background`")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{
			name: "unknown component",
			req:  Request{Component: "nope", Platform: platform.Angular, Tokens: map[string]string{"a": "b"}},
			want: ErrUnknownComponent,
		},
		{
			name: "base component",
			req:  Request{Component: "button", Platform: platform.Angular, Tokens: map[string]string{"background": "red"}},
			want: ErrBaseComponent,
		},
		{
			name: "unavailable on platform",
			req:  Request{Component: "action-strip", Platform: platform.WebComponents, Tokens: map[string]string{"background": "red"}},
			want: ErrUnavailable,
		},
		{
			name: "no tokens",
			req:  Request{Component: "avatar", Platform: platform.Angular},
			want: ErrNoTokens,
		},
		{
			name: "unknown token",
			req:  Request{Component: "avatar", Platform: platform.Angular, Tokens: map[string]string{"sparkle": "yes"}},
			want: ErrUnknownToken,
		},
		{
			name: "empty value",
			req:  Request{Component: "avatar", Platform: platform.Angular, Tokens: map[string]string{"background": " "}},
			want: ErrInvalidValue,
		},
		{
			name: "injected rule",
			req:  Request{Component: "avatar", Platform: platform.Angular, Tokens: map[string]string{"background": "red; } body { color: red"}},
			want: ErrInvalidValue,
		},
		{
			name: "block comment opener",
			req:  Request{Component: "avatar", Platform: platform.Angular, Tokens: map[string]string{"background": "red /* x"}},
			want: ErrInvalidValue,
		},
		{
			name: "line comment",
			req:  Request{Component: "avatar", Platform: platform.Angular, Tokens: map[string]string{"background": "red // x"}},
			want: ErrInvalidValue,
		},
		{
			name: "carriage return",
			req:  Request{Component: "avatar", Platform: platform.Angular, Tokens: map[string]string{"background": "red\r"}},
			want: ErrInvalidValue,
		},
		{
			name: "bad name",
			req:  Request{Component: "avatar", Platform: platform.Angular, Name: "My Theme", Tokens: map[string]string{"background": "red"}},
			want: ErrInvalidName,
		},
	}

	g := newGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestGenerate_BaseComponentListsVariants(t *testing.T) {
	_, err := newGenerator().Generate(Request{
		Component: "icon-button",
		Platform:  platform.Angular,
		Tokens:    map[string]string{"background": "red"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flat-icon-button, contained-icon-button, outlined-icon-button")
}

func TestGenerate_UnknownPlatform(t *testing.T) {
	_, err := newGenerator().Generate(Request{
		Component: "avatar",
		Platform:  platform.Platform("vue"),
		Tokens:    map[string]string{"background": "red"},
	})
	assert.ErrorContains(t, err, "unknown platform")
}
