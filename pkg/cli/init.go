package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/themesmith/themesmith/pkg/cliconfig"
	"github.com/themesmith/themesmith/pkg/platform"
)

var (
	initForce    bool
	initOutput   string
	initPlatform string
	initOverlay  string
	initPrompt   bool
)

const starterOverlay = `# Component catalog overlay. Entries are added to the built-in catalog or
# replace components with the same name. Check with: themesmith validate
components: {}
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter .themesmithrc.yaml",
	Example: `  themesmith init
  themesmith init --platform react --overlay catalog/brand.yaml
  themesmith init --force
  themesmith init -i`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initPrompt {
			if err := promptInit(); err != nil {
				return err
			}
		}

		p := platform.Platform(cliconfig.DefaultPlatform)
		if initPlatform != "" {
			var err error
			if p, err = platform.Parse(initPlatform); err != nil {
				return err
			}
		}

		if err := checkWritable(initOutput); err != nil {
			return err
		}

		starter := cliconfig.NewDefault()
		starter.DefaultPlatform = string(p)
		if initOverlay != "" {
			if err := checkWritable(initOverlay); err != nil {
				return err
			}
			rel, err := filepath.Rel(filepath.Dir(initOutput), initOverlay)
			if err != nil {
				rel = initOverlay
			}
			starter.CatalogOverlays = []string{filepath.ToSlash(rel)}
		}

		data, err := starterConfig(starter)
		if err != nil {
			return err
		}
		if err := os.WriteFile(initOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", initOutput)

		if initOverlay != "" {
			if err := os.MkdirAll(filepath.Dir(initOverlay), 0o755); err != nil {
				return fmt.Errorf("creating overlay directory: %w", err)
			}
			if err := os.WriteFile(initOverlay, []byte(starterOverlay), 0o644); err != nil {
				return fmt.Errorf("writing overlay: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", initOverlay)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", cliconfig.LocalConfigFileNames[0], "Config file to write")
	initCmd.Flags().StringVar(&initPlatform, "platform", "", "Default platform for commands")
	initCmd.Flags().StringVar(&initOverlay, "overlay", "", "Also create a starter catalog overlay at this path")
	initCmd.Flags().BoolVarP(&initPrompt, "interactive", "i", false, "Prompt for the settings")

	rootCmd.AddCommand(initCmd)
}

// promptInit asks for the platform and overlay path, starting from the
// values given as flags.
func promptInit() error {
	if initPlatform == "" {
		initPlatform = cliconfig.DefaultPlatform
	}
	options := make([]huh.Option[string], 0, len(platform.All()))
	for _, p := range platform.All() {
		options = append(options, huh.NewOption(p.DisplayName(), string(p)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which platform do you theme most often?").
				Options(options...).
				Value(&initPlatform),
			huh.NewInput().
				Title("Catalog overlay file (leave empty for none)").
				Placeholder("catalog/brand.yaml").
				Value(&initOverlay),
		),
	)
	return form.Run()
}

func checkWritable(path string) error {
	if initForce {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// starterConfig encodes cfg with a header comment pointing at the docs.
func starterConfig(cfg *cliconfig.CLIConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# themesmith configuration. Run 'themesmith topics config' for every key.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
