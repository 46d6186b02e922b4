package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/themesmith/themesmith/pkg/cli/internal/output"
	"github.com/themesmith/themesmith/pkg/cliconfig"
)

// ConfigShowOutput is the JSON form of "config show".
type ConfigShowOutput struct {
	Config  *cliconfig.CLIConfig `json:"config"`
	Sources map[string]string    `json:"sources"`
}

var configSources bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect themesmith configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the configuration after merging defaults, the global config file,
the local .themesmithrc.yaml, THEMESMITH_* environment variables and flags.`,
	Example: `  themesmith config show
  themesmith config show --sources
  themesmith config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(cmd, ConfigShowOutput{Config: cfg, Sources: cfg.Sources})
		}

		if configSources {
			keys := make([]string, 0, len(cfg.Sources))
			for k := range cfg.Sources {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			tw := output.Table(w)
			output.Row(tw, "KEY", "SOURCE")
			for _, k := range keys {
				output.Row(tw, k, cfg.Sources[k])
			}
			return tw.Flush()
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = w.Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "List the config files themesmith reads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		tw := output.Table(w)
		output.Row(tw, "SCOPE", "PATH", "FOUND")

		local, _ := cliconfig.FindLocalConfig()
		output.Row(tw, cliconfig.SourceLocal, orDash(local), foundMark(local != ""))

		global, _ := cliconfig.FindGlobalConfig()
		for _, p := range cliconfig.GetGlobalConfigSearchPaths() {
			output.Row(tw, cliconfig.SourceGlobal, p, foundMark(p == global))
		}
		return tw.Flush()
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configSources, "sources", false, "Show where each value came from")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func foundMark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
