package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/cli/internal/output"
)

// ValidateOutput is the JSON form of a catalog check.
type ValidateOutput struct {
	Valid      bool                `json:"valid"`
	Overlays   []string            `json:"overlays"`
	Components int                 `json:"components,omitempty"`
	Compounds  int                 `json:"compounds,omitempty"`
	Violations []catalog.Violation `json:"violations,omitempty"`
	Warnings   []string            `json:"warnings,omitempty"`
	Error      string              `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [overlay...]",
	Short: "Check the component catalog and overlays for broken invariants",
	Long: `Load the built-in component catalog with the configured overlays plus any
overlay files given as arguments, and report every broken invariant
without starting any services.

This command checks:
  - YAML syntax of every document
  - Selectors and variant closure
  - Compound scopes, related themes and child-scope coverage
  - Token derivation keys, sources and arguments

Components without a token theme are reported as warnings.`,
	Example: `  themesmith validate
  themesmith validate overlays/brand.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overlays := append(append([]string(nil), cfg.CatalogOverlays...), args...)
		out := ValidateOutput{Overlays: overlays}

		c, err := loadComponentCatalog(overlays)
		if err != nil {
			var verr *catalog.ValidationError
			if errors.As(err, &verr) {
				out.Violations = verr.Violations
			} else {
				out.Error = err.Error()
			}
			return reportValidation(cmd, out)
		}

		t, err := loadTokenCatalog()
		if err != nil {
			return err
		}
		out.Valid = true
		out.Components = c.Len()
		out.Compounds = len(c.Compounds())
		for _, name := range c.Names() {
			if _, ok := t.Lookup(name); !ok {
				out.Warnings = append(out.Warnings, fmt.Sprintf("%s has no token theme", name))
			}
		}
		return reportValidation(cmd, out)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func reportValidation(cmd *cobra.Command, out ValidateOutput) error {
	w := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(cmd, out); err != nil {
			return err
		}
	} else {
		for _, msg := range out.Warnings {
			output.Warn(cmd.ErrOrStderr(), "%s", msg)
		}
		switch {
		case out.Valid:
			fmt.Fprintf(w, "Catalog OK: %d components (%d compound), %d overlay(s)\n",
				out.Components, out.Compounds, len(out.Overlays))
		case out.Error != "":
			fmt.Fprintf(w, "Catalog invalid: %s\n", out.Error)
		default:
			fmt.Fprintf(w, "Catalog invalid: %d violation(s)\n", len(out.Violations))
			tw := output.Table(w)
			output.Row(tw, "COMPONENT", "RULE", "DETAIL")
			for _, v := range out.Violations {
				output.Row(tw, v.Component, v.Rule, v.Detail)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
	}

	if !out.Valid {
		return errors.New("catalog validation failed")
	}
	return nil
}
