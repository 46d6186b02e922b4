package platform

import (
	"fmt"
	"strings"
)

// Platform identifies a rendering platform targeted by generated theme code.
type Platform string

// Supported platforms.
const (
	Angular       Platform = "angular"
	WebComponents Platform = "webcomponents"
	React         Platform = "react"
	Blazor        Platform = "blazor"
	Generic       Platform = "generic"
)

// Family is the selector-syntax grouping a platform belongs to.
// Catalog selector and scope data is keyed by family, not by platform.
type Family string

// Selector families.
const (
	FamilyAngular       Family = "angular"
	FamilyWebComponents Family = "webcomponents"
)

// Info describes the conventions of one platform.
type Info struct {
	// Platform is the platform identifier.
	Platform Platform `json:"platform"`

	// DisplayName is the human-readable platform name.
	DisplayName string `json:"displayName"`

	// Family is the selector family used for catalog lookups.
	Family Family `json:"family"`

	// ImportPath is the Sass module path loaded with @use.
	ImportPath string `json:"importPath"`

	// SelectorPrefix is the element prefix of component selectors (e.g. "igx-").
	SelectorPrefix string `json:"selectorPrefix"`

	// VariablePrefix is the CSS custom property prefix exposed at runtime.
	VariablePrefix string `json:"variablePrefix"`
}

var registry = map[Platform]Info{
	Angular: {
		Platform:       Angular,
		DisplayName:    "Ignite UI for Angular",
		Family:         FamilyAngular,
		ImportPath:     "igniteui-angular/theming",
		SelectorPrefix: "igx-",
		VariablePrefix: "--igx-",
	},
	WebComponents: {
		Platform:       WebComponents,
		DisplayName:    "Ignite UI for Web Components",
		Family:         FamilyWebComponents,
		ImportPath:     "igniteui-theming",
		SelectorPrefix: "igc-",
		VariablePrefix: "--ig-",
	},
	React: {
		Platform:       React,
		DisplayName:    "Ignite UI for React",
		Family:         FamilyWebComponents,
		ImportPath:     "igniteui-theming",
		SelectorPrefix: "igc-",
		VariablePrefix: "--ig-",
	},
	Blazor: {
		Platform:       Blazor,
		DisplayName:    "Ignite UI for Blazor",
		Family:         FamilyWebComponents,
		ImportPath:     "igniteui-theming",
		SelectorPrefix: "igc-",
		VariablePrefix: "--ig-",
	},
	Generic: {
		Platform:       Generic,
		DisplayName:    "Generic (Ignite UI Theming)",
		Family:         FamilyWebComponents,
		ImportPath:     "igniteui-theming",
		SelectorPrefix: "igc-",
		VariablePrefix: "--ig-",
	},
}

// guidanceOrder is the order in which guidance documents list platforms.
var guidanceOrder = []Platform{Angular, WebComponents, Blazor, React}

// All returns every registered platform, in a stable order.
func All() []Platform {
	return []Platform{Angular, WebComponents, React, Blazor, Generic}
}

// Targets returns the concrete component platforms, in guidance order.
// Generic is excluded because it has no component library of its own.
func Targets() []Platform {
	out := make([]Platform, len(guidanceOrder))
	copy(out, guidanceOrder)
	return out
}

// Lookup returns the conventions for p.
func Lookup(p Platform) (Info, bool) {
	info, ok := registry[p]
	return info, ok
}

// Parse converts a user-supplied platform name into a Platform.
// Matching is case-insensitive and ignores surrounding whitespace.
func Parse(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := registry[p]; !ok {
		return "", fmt.Errorf("unknown platform %q (valid: %s)", s, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the string form of every registered platform.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = string(p)
	}
	return names
}

// FamilyOf maps a platform to the selector family it resolves through.
// Angular is its own family; every other platform currently shares the
// webcomponents selectors and scopes.
func FamilyOf(p Platform) Family {
	if p == Angular {
		return FamilyAngular
	}
	return FamilyWebComponents
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the human-readable name of p, or p itself if unknown.
func (p Platform) DisplayName() string {
	if info, ok := registry[p]; ok {
		return info.DisplayName
	}
	return string(p)
}
