package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/themesmith/themesmith/pkg/platform"
)

// ScopeInline is the reserved scope name meaning "the compound component's
// own base selectors".
const ScopeInline = "inline"

// NotApplicable is the display value for a selector that is not defined on a
// platform.
const NotApplicable = "N/A"

// SelectorValue is the selector(s) a theme applies to on one selector family.
// A nil value means the component is not available on that family. The three
// source shapes (null, a single string, a list) are normalized here at decode
// time so the rest of the package only deals with an ordered list.
type SelectorValue []string

// UnmarshalYAML accepts a single selector string or a list of selectors.
// A YAML null never reaches this method and leaves the value nil.
func (s *SelectorValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*s = SelectorValue{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = SelectorValue(list)
		return nil
	default:
		return fmt.Errorf("line %d: selector must be a string or a list of strings", node.Line)
	}
}

// MarshalJSON renders an unavailable selector as null.
func (s SelectorValue) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal([]string(s))
}

// List returns a copy of the selectors. It never returns nil.
func (s SelectorValue) List() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// FormatSelectors joins selectors for display, or returns NotApplicable when
// there are none.
func FormatSelectors(selectors []string) string {
	if len(selectors) == 0 {
		return NotApplicable
	}
	return strings.Join(selectors, " | ")
}

// FamilySelectors holds one SelectorValue per selector family. It is used
// both for component selectors and for compound additional scopes.
type FamilySelectors struct {
	Angular       SelectorValue `yaml:"angular" json:"angular"`
	WebComponents SelectorValue `yaml:"webcomponents" json:"webcomponents"`
}

// For returns the selectors of the given family.
func (f FamilySelectors) For(family platform.Family) SelectorValue {
	switch family {
	case platform.FamilyAngular:
		return f.Angular
	case platform.FamilyWebComponents:
		return f.WebComponents
	default:
		return nil
	}
}

func (f FamilySelectors) clone() FamilySelectors {
	return FamilySelectors{
		Angular:       cloneSelectorValue(f.Angular),
		WebComponents: cloneSelectorValue(f.WebComponents),
	}
}

func cloneSelectorValue(s SelectorValue) SelectorValue {
	if s == nil {
		return nil
	}
	return SelectorValue(s.List())
}

// ChildScope assigns a child theme to a scope per selector family. An empty
// field means no explicit assignment, which resolves to ScopeInline.
type ChildScope struct {
	Angular       string `yaml:"angular,omitempty" json:"angular,omitempty"`
	WebComponents string `yaml:"webcomponents,omitempty" json:"webcomponents,omitempty"`
}

// For returns the scope reference for the given family.
func (c ChildScope) For(family platform.Family) string {
	switch family {
	case platform.FamilyAngular:
		return c.Angular
	case platform.FamilyWebComponents:
		return c.WebComponents
	default:
		return ""
	}
}

// Transform names how a derived token is computed from its source.
type Transform string

// Supported derivation transforms.
const (
	TransformIdentity         Transform = "identity"
	TransformAdaptiveContrast Transform = "adaptive-contrast"
	TransformDynamicShade     Transform = "dynamic-shade"
)

// Valid reports whether t is a known transform.
func (t Transform) Valid() bool {
	switch t {
	case TransformIdentity, TransformAdaptiveContrast, TransformDynamicShade:
		return true
	}
	return false
}

// TokenDerivation states that a child token is computed from another token
// instead of being chosen independently.
type TokenDerivation struct {
	// From is the source token as "component.token".
	From string `yaml:"from" json:"from"`

	// Transform is applied to the resolved value of From.
	Transform Transform `yaml:"transform" json:"transform"`

	// Args holds transform parameters; values are strings or numbers.
	Args map[string]interface{} `yaml:"args,omitempty" json:"args,omitempty"`
}

// Describe renders the derivation for humans: identity reads as
// "same as `from`", anything else as "`transform` of `from`".
func (d TokenDerivation) Describe() string {
	if d.Transform == TransformIdentity {
		return fmt.Sprintf("same as `%s`", d.From)
	}
	desc := fmt.Sprintf("`%s` of `%s`", d.Transform, d.From)
	if len(d.Args) > 0 {
		desc += " (" + formatArgs(d.Args) + ")"
	}
	return desc
}

func (d TokenDerivation) clone() TokenDerivation {
	out := TokenDerivation{From: d.From, Transform: d.Transform}
	if d.Args != nil {
		out.Args = make(map[string]interface{}, len(d.Args))
		for k, v := range d.Args {
			out.Args[k] = v
		}
	}
	return out
}

// CompoundInfo describes a component built from other themeable components.
type CompoundInfo struct {
	Description      string                     `yaml:"description" json:"description"`
	RelatedThemes    []string                   `yaml:"relatedThemes" json:"relatedThemes"`
	AdditionalScopes map[string]FamilySelectors `yaml:"additionalScopes,omitempty" json:"additionalScopes,omitempty"`
	ChildScopes      map[string]ChildScope      `yaml:"childScopes,omitempty" json:"childScopes,omitempty"`

	// TokenDerivations is keyed by "childTheme.childToken".
	TokenDerivations map[string]TokenDerivation `yaml:"tokenDerivations,omitempty" json:"tokenDerivations,omitempty"`

	Guidance string `yaml:"guidance,omitempty" json:"guidance,omitempty"`
}

func (c *CompoundInfo) clone() *CompoundInfo {
	if c == nil {
		return nil
	}
	out := &CompoundInfo{
		Description:   c.Description,
		RelatedThemes: append([]string(nil), c.RelatedThemes...),
		Guidance:      c.Guidance,
	}
	if c.AdditionalScopes != nil {
		out.AdditionalScopes = make(map[string]FamilySelectors, len(c.AdditionalScopes))
		for k, v := range c.AdditionalScopes {
			out.AdditionalScopes[k] = v.clone()
		}
	}
	if c.ChildScopes != nil {
		out.ChildScopes = make(map[string]ChildScope, len(c.ChildScopes))
		for k, v := range c.ChildScopes {
			out.ChildScopes[k] = v
		}
	}
	if c.TokenDerivations != nil {
		out.TokenDerivations = make(map[string]TokenDerivation, len(c.TokenDerivations))
		for k, v := range c.TokenDerivations {
			out.TokenDerivations[k] = v.clone()
		}
	}
	return out
}

// ComponentMetadata is one entry of the component catalog.
type ComponentMetadata struct {
	Name      string          `yaml:"-" json:"name"`
	Selectors FamilySelectors `yaml:"selectors" json:"selectors"`

	// Variants lists the concrete components a base component stands for.
	Variants []string `yaml:"variants,omitempty" json:"variants,omitempty"`

	Compound *CompoundInfo `yaml:"compound,omitempty" json:"compound,omitempty"`
}

// IsCompound reports whether the component has compound metadata.
func (m ComponentMetadata) IsCompound() bool {
	return m.Compound != nil
}

// HasVariants reports whether the component is a base for concrete variants.
func (m ComponentMetadata) HasVariants() bool {
	return len(m.Variants) > 0
}

func (m *ComponentMetadata) clone() ComponentMetadata {
	return ComponentMetadata{
		Name:      m.Name,
		Selectors: m.Selectors.clone(),
		Variants:  append([]string(nil), m.Variants...),
		Compound:  m.Compound.clone(),
	}
}

// document is the on-disk shape of a catalog data file.
type document struct {
	Components map[string]*ComponentMetadata `yaml:"components"`
}
