package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/themesmith/themesmith/pkg/cli/internal/output"
	"github.com/themesmith/themesmith/pkg/guidance"
	"github.com/themesmith/themesmith/pkg/platform"
	"github.com/themesmith/themesmith/pkg/sassgen"
)

var (
	guidanceHTML bool

	themePlatform string
	themeName     string
	themeSet      []string
	themeOutput   string
)

var guidanceCmd = &cobra.Command{
	Use:   "guidance <component>",
	Short: "Print the design-token guidance for a component",
	Long: `Print the design-token guidance an AI agent receives for a component:
its tokens, platform selectors and, for compound components, scopes and
derived child tokens. Unknown names print suggestions instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, t, err := loadCatalogs()
		if err != nil {
			return err
		}
		doc := guidance.NewBuilder(c, t).Build(args[0])

		w := cmd.OutOrStdout()
		if guidanceHTML {
			html, err := doc.HTML()
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, html)
			return err
		}
		_, err = io.WriteString(w, doc.Markdown())
		return err
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme <component>",
	Short: "Generate component theme Sass",
	Example: `  themesmith theme avatar --set background='#09f' --set color=white
  themesmith theme flat-button --platform webcomponents --name brand-button --set foreground=black -o button.scss`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, t, err := loadCatalogs()
		if err != nil {
			return err
		}
		p, err := platformOrDefault(themePlatform)
		if err != nil {
			return err
		}
		values, err := parseTokenValues(themeSet)
		if err != nil {
			return err
		}

		res, err := sassgen.New(c, t).Generate(sassgen.Request{
			Component: args[0],
			Platform:  p,
			Name:      themeName,
			Tokens:    values,
		})
		if err != nil {
			return themeError(err)
		}
		log.Debug("theme generated", "component", res.Component, "platform", p, "tokens", len(values))

		if jsonOutput {
			return writeJSON(cmd, res)
		}
		if themeOutput != "" {
			if err := os.WriteFile(themeOutput, []byte(res.Source), 0o644); err != nil {
				return fmt.Errorf("writing theme: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", themeOutput)
		} else if _, err := io.WriteString(cmd.OutOrStdout(), res.Source); err != nil {
			return err
		}
		for _, n := range res.Notes {
			output.Warn(cmd.ErrOrStderr(), "%s", n)
		}
		return nil
	},
}

func init() {
	guidanceCmd.Flags().BoolVar(&guidanceHTML, "html", false, "Render the guidance as HTML")

	themeCmd.Flags().StringVar(&themePlatform, "platform", "", fmt.Sprintf("Target platform: %s (default from config)", strings.Join(platform.Names(), ", ")))
	themeCmd.Flags().StringVar(&themeName, "name", "", "Theme variable base name (default custom-<component>)")
	themeCmd.Flags().StringArrayVar(&themeSet, "set", nil, "Token value as name=value (repeatable)")
	themeCmd.Flags().StringVarP(&themeOutput, "output", "o", "", "Write the Sass to this file")

	rootCmd.AddCommand(guidanceCmd)
	rootCmd.AddCommand(themeCmd)
}

// parseTokenValues turns repeated name=value flags into a token map. Values
// may contain '='.
func parseTokenValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", pair)
		}
		values[name] = strings.TrimSpace(value)
	}
	return values, nil
}

func themeError(err error) error {
	if errors.Is(err, sassgen.ErrBaseComponent) {
		return fmt.Errorf("%w; generate the theme for one of the variants", err)
	}
	return err
}
