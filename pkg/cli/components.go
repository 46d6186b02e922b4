package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/cli/internal/output"
	"github.com/themesmith/themesmith/pkg/guidance"
	"github.com/themesmith/themesmith/pkg/mcp"
	"github.com/themesmith/themesmith/pkg/platform"
	"github.com/themesmith/themesmith/pkg/query"
	"github.com/themesmith/themesmith/pkg/tokens"
)

var (
	componentsPlatform string
	componentsMatch    string
	componentsWhere    string
	selectorsPlatform  string
	scopesPlatform     string
)

var componentsCmd = &cobra.Command{
	Use:     "components",
	Aliases: []string{"ls"},
	Short:   "List catalog components",
	Example: `  themesmith components
  themesmith components --platform webcomponents --match '*-button'
  themesmith components --where 'compound && "calendar" in relatedThemes'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, t, err := loadCatalogs()
		if err != nil {
			return err
		}

		names := c.Names()
		if componentsMatch != "" {
			if names, err = c.Match(componentsMatch); err != nil {
				return err
			}
		}
		var p platform.Platform
		if componentsPlatform != "" {
			if p, err = platform.Parse(componentsPlatform); err != nil {
				return err
			}
			names = filterAvailable(c, names, p)
		}
		if componentsWhere != "" {
			filter, err := query.Compile(componentsWhere)
			if err != nil {
				return err
			}
			if names, err = filter.Select(c, t, names); err != nil {
				return err
			}
		}

		if jsonOutput {
			return writeJSON(cmd, mcp.ComponentList{
				Platform:   string(p),
				Match:      componentsMatch,
				Where:      componentsWhere,
				Count:      len(names),
				Components: names,
			})
		}

		tw := output.Table(cmd.OutOrStdout())
		output.Row(tw, "NAME", "KIND", "PLATFORMS")
		for _, name := range names {
			output.Row(tw, name, componentKind(c, name), strings.Join(availablePlatforms(c, name), ","))
		}
		return tw.Flush()
	},
}

var selectorsCmd = &cobra.Command{
	Use:   "selectors <component>",
	Short: "Show the CSS selectors of a component on each platform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, t, err := loadCatalogs()
		if err != nil {
			return err
		}
		name, err := lookupComponent(c, t, args[0])
		if err != nil {
			return err
		}

		targets := platform.Targets()
		if selectorsPlatform != "" {
			p, err := platform.Parse(selectorsPlatform)
			if err != nil {
				return err
			}
			targets = []platform.Platform{p}
		}

		results := make([]mcp.SelectorResult, 0, len(targets))
		for _, p := range targets {
			results = append(results, mcp.SelectorResult{
				Component: name,
				Platform:  string(p),
				Selectors: c.ResolveSelectors(name, p),
				Available: c.IsAvailable(name, p),
			})
		}

		if jsonOutput {
			return writeJSON(cmd, results)
		}

		tw := output.Table(cmd.OutOrStdout())
		output.Row(tw, "PLATFORM", "SELECTORS")
		for _, r := range results {
			output.Row(tw, r.Platform, catalog.FormatSelectors(r.Selectors))
		}
		return tw.Flush()
	},
}

var scopesCmd = &cobra.Command{
	Use:   "scopes <component>",
	Short: "Show where a compound component's child themes apply",
	Long: `Show the scopes of a compound component on one platform and, for each
related child theme, the scope and selector its theme is included under.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, t, err := loadCatalogs()
		if err != nil {
			return err
		}
		name, err := lookupComponent(c, t, args[0])
		if err != nil {
			return err
		}
		p, err := platformOrDefault(scopesPlatform)
		if err != nil {
			return err
		}

		result := mcp.CompoundScopesResult{
			Component:     name,
			Platform:      string(p),
			Compound:      c.Compound(name) != nil,
			Scopes:        c.ScopeTable(name, p),
			RelatedThemes: c.RelatedThemeTable(name, p),
		}
		if jsonOutput {
			return writeJSON(cmd, result)
		}

		w := cmd.OutOrStdout()
		if !result.Compound {
			fmt.Fprintf(w, "%s is not a compound component\n", name)
			return nil
		}
		tw := output.Table(w)
		output.Row(tw, "THEME", "SCOPE", "SELECTOR")
		for _, r := range result.RelatedThemes {
			output.Row(tw, r.Theme, r.Scope, r.Selector)
		}
		return tw.Flush()
	},
}

var derivationsCmd = &cobra.Command{
	Use:   "derivations <compound> [child]",
	Short: "Show the child tokens a compound component derives",
	Example: `  themesmith derivations date-picker
  themesmith derivations date-picker flat-button`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, t, err := loadCatalogs()
		if err != nil {
			return err
		}
		compound, err := lookupComponent(c, t, args[0])
		if err != nil {
			return err
		}

		if len(args) == 2 {
			child := guidance.Normalize(args[1])
			result := mcp.DerivationsResult{
				Compound:    compound,
				Child:       child,
				Derivations: c.DerivationsForChild(compound, child),
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			rows := make([]catalog.DerivationRow, 0, len(result.Derivations))
			for _, r := range c.Derivations(compound) {
				if r.Theme == child {
					rows = append(rows, r)
				}
			}
			return writeDerivations(cmd, compound, rows)
		}

		rows := c.Derivations(compound)
		if jsonOutput {
			return writeJSON(cmd, rows)
		}
		return writeDerivations(cmd, compound, rows)
	},
}

func init() {
	componentsCmd.Flags().StringVar(&componentsPlatform, "platform", "", "Only components available on this platform")
	componentsCmd.Flags().StringVar(&componentsMatch, "match", "", "Glob pattern on component names (e.g. '*-button')")
	componentsCmd.Flags().StringVar(&componentsWhere, "where", "", "Filter expression (see 'themesmith topics query')")
	selectorsCmd.Flags().StringVar(&selectorsPlatform, "platform", "", "Only this platform")
	scopesCmd.Flags().StringVar(&scopesPlatform, "platform", "", "Target platform (default from config)")

	rootCmd.AddCommand(componentsCmd)
	rootCmd.AddCommand(selectorsCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(derivationsCmd)
}

func writeDerivations(cmd *cobra.Command, compound string, rows []catalog.DerivationRow) error {
	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintf(w, "%s derives no child tokens\n", compound)
		return nil
	}
	tw := output.Table(w)
	output.Row(tw, "TOKEN", "DERIVATION")
	for _, r := range rows {
		output.Row(tw, r.Key(), r.Derivation.Describe())
	}
	return tw.Flush()
}

// lookupComponent normalizes name and checks it against the catalog. The
// error for an unknown name suggests close matches from the token catalog.
func lookupComponent(c *catalog.Catalog, t *tokens.Catalog, name string) (string, error) {
	normalized := guidance.Normalize(name)
	if normalized == "" {
		return "", errors.New("component name cannot be empty")
	}
	if c.Has(normalized) {
		return normalized, nil
	}
	suggestions := t.Search(normalized)
	if len(suggestions) > guidance.MaxSuggestions {
		suggestions = suggestions[:guidance.MaxSuggestions]
	}
	if len(suggestions) == 0 {
		return "", fmt.Errorf("unknown component %q; run 'themesmith components' to see valid names", normalized)
	}
	return "", fmt.Errorf("unknown component %q; did you mean: %s", normalized, strings.Join(suggestions, ", "))
}

func platformOrDefault(flag string) (platform.Platform, error) {
	if flag == "" {
		flag = cfg.DefaultPlatform
	}
	return platform.Parse(flag)
}

func filterAvailable(c *catalog.Catalog, names []string, p platform.Platform) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if c.IsAvailable(name, p) {
			out = append(out, name)
		}
	}
	return out
}

func availablePlatforms(c *catalog.Catalog, name string) []string {
	var out []string
	for _, p := range platform.Targets() {
		if c.IsAvailable(name, p) {
			out = append(out, string(p))
		}
	}
	return out
}

func componentKind(c *catalog.Catalog, name string) string {
	m, _ := c.Component(name)
	switch {
	case m.IsCompound():
		return "compound"
	case m.HasVariants():
		return "base"
	default:
		return "-"
	}
}
